package review

import (
	"strings"
	"testing"
	"time"
)

func csvFixture() []Entry {
	return []Entry{
		Application{
			EntryCore: EntryCore{
				ID:          "a1",
				FullName:    `Jane "JJ" Doe`,
				Topic:       "Ocean cleanup, at scale",
				Status:      StatusShortlisted,
				Flagged:     true,
				Rating:      4,
				Notes:       "strong opener",
				SubmittedAt: time.Date(2026, 3, 5, 10, 0, 0, 0, time.UTC),
			},
			Gender:      "female",
			Job:         "marine biologist",
			MobilePhone: "555-0100",
			WeChatID:    "jjdoe",
		},
		Nomination{
			EntryCore: EntryCore{
				ID:          "n1",
				FullName:    "Ada Li",
				Topic:       "Quiet leadership",
				Status:      StatusUnderReview,
				SubmittedAt: time.Date(2026, 11, 21, 8, 0, 0, 0, time.UTC),
			},
			Contact:     "ada@example.com",
			NominatedBy: "Sam Wu",
		},
	}
}

func TestExportCSVCombinedTab(t *testing.T) {
	payload := string(ExportCSV(csvFixture(), TabAll))

	if !strings.HasPrefix(payload, "\uFEFF") {
		t.Fatalf("payload must start with the BOM")
	}

	body := strings.TrimPrefix(payload, "\uFEFF")
	lines := strings.Split(strings.TrimRight(body, "\n"), "\n")
	// header, one application, blank, marker, header, one nomination
	if len(lines) != 6 {
		t.Fatalf("line count = %d, want 6:\n%s", len(lines), body)
	}

	if !strings.HasPrefix(lines[0], `"ID","Full Name","Topic","Gender"`) {
		t.Fatalf("application header = %q", lines[0])
	}
	if !strings.Contains(lines[1], `"Jane ""JJ"" Doe"`) {
		t.Fatalf("embedded quotes must be doubled: %q", lines[1])
	}
	if !strings.Contains(lines[1], `"Ocean cleanup, at scale"`) {
		t.Fatalf("comma-bearing field must stay one field: %q", lines[1])
	}
	if !strings.Contains(lines[1], `"Yes"`) || !strings.Contains(lines[1], `"4"`) {
		t.Fatalf("flag and rating missing: %q", lines[1])
	}
	if !strings.Contains(lines[1], `"3/5/2026"`) {
		t.Fatalf("date format wrong: %q", lines[1])
	}

	if lines[2] != "" {
		t.Fatalf("blank separator expected, got %q", lines[2])
	}
	if lines[3] != `"NOMINATIONS"` {
		t.Fatalf("marker row = %q", lines[3])
	}
	if !strings.HasPrefix(lines[4], `"ID","Full Name","Topic","Nominated By","Contact"`) {
		t.Fatalf("nomination header = %q", lines[4])
	}
	if !strings.Contains(lines[5], `"11/21/2026"`) {
		t.Fatalf("nomination date = %q", lines[5])
	}
	if !strings.Contains(lines[5], `"under review"`) {
		t.Fatalf("status display = %q", lines[5])
	}
}

func TestExportCSVSingleKindTabs(t *testing.T) {
	entries := csvFixture()

	applications := string(ExportCSV(entries, TabApplications))
	if strings.Contains(applications, "NOMINATIONS") || strings.Contains(applications, "Ada Li") {
		t.Fatalf("applications tab must not include nominations:\n%s", applications)
	}

	nominations := string(ExportCSV(entries, TabNominations))
	if strings.Contains(nominations, "Jane") {
		t.Fatalf("nominations tab must not include applications:\n%s", nominations)
	}
	if strings.Contains(nominations, `"NOMINATIONS"`) {
		t.Fatalf("nominations-only tab needs no marker row:\n%s", nominations)
	}
	if !strings.HasPrefix(nominations, "\uFEFF\"ID\"") {
		t.Fatalf("nominations tab must start with BOM and header:\n%s", nominations)
	}
}

func TestExportCSVEmptyKindContributesNoSection(t *testing.T) {
	onlyApplications := []Entry{csvFixture()[0]}

	payload := string(ExportCSV(onlyApplications, TabAll))
	if strings.Contains(payload, "NOMINATIONS") {
		t.Fatalf("empty nominations must contribute no section:\n%s", payload)
	}
	if strings.Contains(payload, "\n\n") {
		t.Fatalf("no blank separator without a second section:\n%s", payload)
	}

	empty := string(ExportCSV(nil, TabAll))
	if empty != "\uFEFF" {
		t.Fatalf("empty export = %q, want bare BOM", empty)
	}
}

func TestExportFilename(t *testing.T) {
	testCases := []struct {
		base string
		tab  Tab
		want string
	}{
		{base: "speakers", tab: TabAll, want: "speakers.csv"},
		{base: "speakers", tab: TabApplications, want: "speakers_applications.csv"},
		{base: "speakers", tab: TabNominations, want: "speakers_nominations.csv"},
		{base: "", tab: TabAll, want: "speakers.csv"},
		{base: "summit26", tab: TabNominations, want: "summit26_nominations.csv"},
	}

	for _, testCase := range testCases {
		got := ExportFilename(testCase.base, testCase.tab)
		if got != testCase.want {
			t.Fatalf("ExportFilename(%q, %s) = %q, want %q", testCase.base, testCase.tab, got, testCase.want)
		}
	}
}
