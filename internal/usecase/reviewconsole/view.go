package reviewconsole

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	domainreview "speakerdesk/internal/domain/review"
)

func (m *dashboardModel) View() string {
	titleStyle := lipgloss.NewStyle().Bold(true)
	sectionStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	selectedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Background(lipgloss.Color("62"))

	if m.mode == modeForm && m.form != nil {
		return m.renderForm(titleStyle, sectionStyle, dimStyle)
	}

	var builder strings.Builder
	builder.WriteString(titleStyle.Render(m.profile.Event.Name + " Review Console"))
	builder.WriteString("\n")

	stats := domainreview.ComputeStats(m.entries, m.now(), m.profile.Review.InviteCapacity)
	builder.WriteString(dimStyle.Render(fmt.Sprintf(
		"applications=%d (+%d this week)  nominations=%d (+%d this week)  shortlisted=%d (%d%%)  invited=%d/%d",
		stats.TotalApplications, stats.ApplicationsThisWeek,
		stats.TotalNominations, stats.NominationsThisWeek,
		stats.TotalShortlisted, stats.PercentShortlisted,
		stats.TotalInvited, stats.InviteCapacity,
	)))
	builder.WriteString("\n")
	builder.WriteString(dimStyle.Render(fmt.Sprintf(
		"tab=%s statuses=%s search=%q",
		m.filter.Tab,
		statusFilterLabel(m.filter.Statuses),
		m.filter.Query,
	)))
	builder.WriteString("\n\n")

	builder.WriteString(sectionStyle.Render("Entries"))
	builder.WriteString("\n")
	visible := m.visibleEntries()
	if len(visible) == 0 {
		builder.WriteString(dimStyle.Render("- no entries match"))
		builder.WriteString("\n\n")
	} else {
		for index, entry := range visible {
			line := m.entryLine(entry)
			if index == m.cursor {
				builder.WriteString(selectedStyle.Render("> " + line))
			} else {
				builder.WriteString("  " + line)
			}
			builder.WriteString("\n")
		}
		builder.WriteString("\n")
	}

	builder.WriteString(sectionStyle.Render("Detail"))
	builder.WriteString("\n")
	if entry, ok := m.cursorEntry(); ok {
		m.writeDetail(&builder, entry)
	} else {
		builder.WriteString(dimStyle.Render("- no entry selected"))
		builder.WriteString("\n")
	}
	builder.WriteString("\n")

	builder.WriteString(sectionStyle.Render("Activity"))
	builder.WriteString("\n")
	m.writeActivity(&builder, dimStyle)
	builder.WriteString("\n")

	switch m.mode {
	case modeSearch:
		builder.WriteString(m.search.View())
		builder.WriteString("\n\n")
	case modeNotes:
		builder.WriteString(m.notes.View())
		builder.WriteString("\n\n")
	case modeStatusFilter:
		builder.WriteString(sectionStyle.Render("Filter by status"))
		builder.WriteString("\n")
		for index, status := range domainreview.AllStatuses {
			marker := " "
			if m.filter.Statuses.Contains(status) {
				marker = "x"
			}
			builder.WriteString(fmt.Sprintf("- %d [%s] %s\n", index+1, marker, status.Display()))
		}
		builder.WriteString(dimStyle.Render("0/a all  esc done"))
		builder.WriteString("\n\n")
	case modeStatusPick, modeBulkPick:
		label := "Set status"
		if m.mode == modeBulkPick {
			label = fmt.Sprintf("Set status for %d selected", len(m.selected))
		}
		builder.WriteString(sectionStyle.Render(label))
		builder.WriteString("\n")
		for index, status := range domainreview.AllStatuses {
			builder.WriteString(fmt.Sprintf("- %d %s\n", index+1, status.Display()))
		}
		builder.WriteString(dimStyle.Render("esc cancel"))
		builder.WriteString("\n\n")
	}

	builder.WriteString(sectionStyle.Render("Status"))
	builder.WriteString("\n")
	status := m.status
	if status == "" {
		status = "ready"
	}
	if m.updating {
		status = status + " ..."
	}
	builder.WriteString("- " + status)
	builder.WriteString("\n\n")

	builder.WriteString(dimStyle.Render(
		"Keys: ↑/↓ move  J/K reorder  1/2/3/tab tabs  / search  S statuses  s status  f flag  +/- rate  n notes  space/a/u select  b bulk  c new  enter edit  e export  g refresh  q quit",
	))
	return builder.String()
}

func (m *dashboardModel) entryLine(entry domainreview.Entry) string {
	core := entry.Core()

	kindMark := "A"
	if entry.Kind() == domainreview.KindNomination {
		kindMark = "N"
	}
	selectMark := " "
	if _, picked := m.selected[core.ID]; picked {
		selectMark = "*"
	}
	flagMark := " "
	if core.Flagged {
		flagMark = "!"
	}

	return fmt.Sprintf("[%s] %s %s r%d %s %-14s %s",
		selectMark, kindMark, flagMark, core.Rating, core.SubmittedAt.Format("2006-01-02"), core.Status.Display(), core.FullName)
}

func (m *dashboardModel) writeDetail(builder *strings.Builder, entry domainreview.Entry) {
	core := entry.Core()
	builder.WriteString(fmt.Sprintf("Name: %s\n", core.FullName))
	builder.WriteString(fmt.Sprintf("Topic: %s\n", core.Topic))
	builder.WriteString(fmt.Sprintf("Status: %s  Rating: %d  Flagged: %t\n", core.Status.Display(), core.Rating, core.Flagged))

	switch concrete := entry.(type) {
	case domainreview.Application:
		builder.WriteString(fmt.Sprintf("Contact: %s %s %s\n", concrete.Email, concrete.MobilePhone, concrete.WeChatID))
		builder.WriteString(fmt.Sprintf("Job: %s  Gender: %s\n", concrete.Job, concrete.Gender))
		if concrete.RehearsalAvailability != "" {
			builder.WriteString(fmt.Sprintf("Rehearsal: %s\n", concrete.RehearsalAvailability))
		}
		if concrete.Idea.CoreIdea != "" {
			builder.WriteString(fmt.Sprintf("Idea: %s\n", concrete.Idea.CoreIdea))
		}
	case domainreview.Nomination:
		builder.WriteString(fmt.Sprintf("Nominated by: %s\n", concrete.NominatedBy))
		builder.WriteString(fmt.Sprintf("Contact: %s\n", concrete.Contact))
	}

	if core.PriorTEDTalk != "" {
		builder.WriteString(fmt.Sprintf("Prior TED talk: %s\n", core.PriorTEDTalk))
	}
	if core.Notes != "" {
		builder.WriteString(fmt.Sprintf("Notes: %s\n", core.Notes))
	}
}

// writeActivity renders review events, falling back to the most recent
// submissions while no status has changed this session.
func (m *dashboardModel) writeActivity(builder *strings.Builder, dimStyle lipgloss.Style) {
	events := m.activity.Events()
	if len(events) > 0 {
		shown := events
		if len(shown) > maxActivityLines {
			shown = shown[:maxActivityLines]
		}
		for _, event := range shown {
			builder.WriteString(fmt.Sprintf("- %s %s\n", event.Timestamp.Format("15:04:05"), event.Text))
		}
		return
	}

	recent := make([]domainreview.Entry, len(m.entries))
	copy(recent, m.entries)
	sort.SliceStable(recent, func(i int, j int) bool {
		return recent[i].Core().SubmittedAt.After(recent[j].Core().SubmittedAt)
	})
	if len(recent) > maxRecentFallback {
		recent = recent[:maxRecentFallback]
	}
	if len(recent) == 0 {
		builder.WriteString(dimStyle.Render("- nothing yet"))
		builder.WriteString("\n")
		return
	}
	for _, entry := range recent {
		core := entry.Core()
		builder.WriteString(fmt.Sprintf("- %s submitted %s\n", core.FullName, core.SubmittedAt.Format("2006-01-02")))
	}
}

func (m *dashboardModel) renderForm(titleStyle lipgloss.Style, sectionStyle lipgloss.Style, dimStyle lipgloss.Style) string {
	form := m.form

	var builder strings.Builder
	label := "New application"
	switch {
	case form.mode == formCreate && form.kind == domainreview.KindNomination:
		label = "New nomination"
	case form.mode == formEdit && form.kind == domainreview.KindApplication:
		label = "Edit application"
	case form.mode == formEdit && form.kind == domainreview.KindNomination:
		label = "Edit nomination"
	}
	builder.WriteString(titleStyle.Render(label))
	builder.WriteString("\n")
	if form.mode == formEdit && !form.editing {
		builder.WriteString(dimStyle.Render("read-only, ctrl+e to edit"))
		builder.WriteString("\n")
	}
	builder.WriteString("\n")

	for index, field := range form.fields {
		marker := "  "
		if index == form.focus {
			marker = "> "
		}
		name := field.label
		if field.required {
			name = name + "*"
		}
		builder.WriteString(fmt.Sprintf("%s%-24s %s\n", marker, name, field.input.View()))
	}

	statusMarker := "  "
	if form.focus == form.statusRow() {
		statusMarker = "> "
	}
	builder.WriteString(fmt.Sprintf("%s%-24s ◀ %s ▶\n", statusMarker, "Status", form.status.Display()))

	if form.errMsg != "" {
		builder.WriteString("\n")
		builder.WriteString(sectionStyle.Render("! " + form.errMsg))
		builder.WriteString("\n")
	}

	builder.WriteString("\n")
	hint := "Keys: tab/↑/↓ move  ←/→ status  enter save  esc cancel"
	if form.mode == formCreate {
		hint = hint + "  ctrl+t switch kind"
	} else {
		hint = hint + "  ctrl+e toggle edit"
	}
	builder.WriteString(dimStyle.Render(hint))
	return builder.String()
}

func statusFilterLabel(filter domainreview.StatusFilter) string {
	if filter.All() {
		return "all"
	}
	picked := filter.Selected()
	names := make([]string, 0, len(picked))
	for _, status := range picked {
		names = append(names, string(status))
	}
	return strings.Join(names, ",")
}
