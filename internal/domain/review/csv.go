package review

import (
	"strconv"
	"strings"
)

// Exported spreadsheets open in tools that sniff encoding; the BOM keeps
// non-ASCII names intact in them.
const csvBOM = "\uFEFF"

// csvDateFormat is a fixed short date so output is deterministic.
const csvDateFormat = "1/2/2006"

var applicationColumns = []string{
	"ID", "Full Name", "Topic", "Gender", "Job", "Mobile Phone", "WeChat ID",
	"Prior TED Talk", "Status", "Flagged", "Rating", "Notes", "Submission Date",
}

var nominationColumns = []string{
	"ID", "Full Name", "Topic", "Nominated By", "Contact",
	"Prior TED Talk", "Status", "Flagged", "Rating", "Notes", "Submission Date",
}

// ExportCSV serializes the given (already filtered) entries for the active
// tab. Every field is double-quoted with embedded quotes doubled. On the
// combined tab the nomination section follows the applications after a blank
// line and a NOMINATIONS marker row; a kind with zero rows contributes no
// section at all.
//
// encoding/csv is not used on purpose: it quotes minimally and cannot emit
// the BOM, the marker row or rows of differing widths in one stream.
func ExportCSV(entries []Entry, tab Tab) []byte {
	var applications []Application
	var nominations []Nomination
	for _, entry := range entries {
		switch concrete := entry.(type) {
		case Application:
			applications = append(applications, concrete)
		case Nomination:
			nominations = append(nominations, concrete)
		}
	}

	var builder strings.Builder
	builder.WriteString(csvBOM)

	if tab != TabNominations && len(applications) > 0 {
		writeCSVRow(&builder, applicationColumns)
		for _, application := range applications {
			writeCSVRow(&builder, applicationRow(application))
		}
	}

	if tab == TabAll && len(nominations) > 0 {
		if len(applications) > 0 {
			builder.WriteString("\n")
		}
		writeCSVRow(&builder, []string{"NOMINATIONS"})
		writeCSVRow(&builder, nominationColumns)
		for _, nomination := range nominations {
			writeCSVRow(&builder, nominationRow(nomination))
		}
	}

	if tab == TabNominations && len(nominations) > 0 {
		writeCSVRow(&builder, nominationColumns)
		for _, nomination := range nominations {
			writeCSVRow(&builder, nominationRow(nomination))
		}
	}

	return []byte(builder.String())
}

// ExportFilename derives the download name for a tab from the base name.
func ExportFilename(base string, tab Tab) string {
	base = strings.TrimSpace(base)
	if base == "" {
		base = "speakers"
	}
	switch tab {
	case TabApplications:
		return base + "_applications.csv"
	case TabNominations:
		return base + "_nominations.csv"
	default:
		return base + ".csv"
	}
}

func applicationRow(a Application) []string {
	return []string{
		a.ID,
		a.FullName,
		a.Topic,
		a.Gender,
		a.Job,
		a.MobilePhone,
		a.WeChatID,
		a.PriorTEDTalk,
		a.Status.Display(),
		yesNo(a.Flagged),
		strconv.Itoa(a.Rating),
		a.Notes,
		a.SubmittedAt.Format(csvDateFormat),
	}
}

func nominationRow(n Nomination) []string {
	return []string{
		n.ID,
		n.FullName,
		n.Topic,
		n.NominatedBy,
		n.Contact,
		n.PriorTEDTalk,
		n.Status.Display(),
		yesNo(n.Flagged),
		strconv.Itoa(n.Rating),
		n.Notes,
		n.SubmittedAt.Format(csvDateFormat),
	}
}

func writeCSVRow(builder *strings.Builder, fields []string) {
	for index, field := range fields {
		if index > 0 {
			builder.WriteString(",")
		}
		builder.WriteString(quoteCSVField(field))
	}
	builder.WriteString("\n")
}

func quoteCSVField(field string) string {
	return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
}

func yesNo(value bool) string {
	if value {
		return "Yes"
	}
	return "No"
}
