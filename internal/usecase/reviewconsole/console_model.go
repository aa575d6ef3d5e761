package reviewconsole

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"speakerdesk/internal/bootstrap/logging"
	domainreview "speakerdesk/internal/domain/review"
	"speakerdesk/internal/usecase/review"
)

const maxActivityLines = 8
const maxRecentFallback = 5

type Options struct {
	Profile   review.Profile
	ExportDir string
}

// reviewService is the slice of the review service the console needs. Tests
// substitute failing implementations to exercise the error paths.
type reviewService interface {
	ListEntries(ctx context.Context) ([]domainreview.Entry, error)
	CreateEntry(ctx context.Context, input review.CreateEntryInput) (domainreview.Entry, error)
	UpdateDetails(ctx context.Context, input review.UpdateDetailsInput) error
	UpdateStatus(ctx context.Context, kind domainreview.EntryKind, id string, status domainreview.Status) error
	UpdateRating(ctx context.Context, kind domainreview.EntryKind, id string, rating int) error
	UpdateNotes(ctx context.Context, kind domainreview.EntryKind, id string, notes string) error
	ToggleFlag(ctx context.Context, kind domainreview.EntryKind, id string) (bool, error)
}

type consoleMode int

const (
	modeTable consoleMode = iota
	modeSearch
	modeStatusFilter
	modeStatusPick
	modeBulkPick
	modeNotes
	modeForm
)

// dashboardModel holds the review console state. The entry collection is
// loaded once at startup and mutated in memory: every persisted change is
// applied locally only after the service call succeeded, so the screen never
// shows an update the store rejected.
type dashboardModel struct {
	ctx       context.Context
	service   reviewService
	profile   review.Profile
	exportDir string
	now       func() time.Time

	entries  []domainreview.Entry
	filter   domainreview.Filter
	rowOrder []string
	cursor   int
	selected map[string]struct{}
	activity *domainreview.ActivityLog
	updating bool
	status   string

	mode      consoleMode
	search    textinput.Model
	notes     textinput.Model
	notesID   string
	notesKind domainreview.EntryKind
	form      *entryForm
}

type entriesLoadedMsg struct {
	entries []domainreview.Entry
	err     error
}

type statusAppliedMsg struct {
	id     string
	name   string
	status domainreview.Status
	err    error
}

type ratingAppliedMsg struct {
	id     string
	name   string
	rating int
	err    error
}

type notesAppliedMsg struct {
	id    string
	name  string
	notes string
	err   error
}

type flagToggledMsg struct {
	id      string
	name    string
	flagged bool
	err     error
}

type bulkAppliedMsg struct {
	status     domainreview.Status
	appliedIDs []string
	failed     int
}

type createDoneMsg struct {
	entry domainreview.Entry
	err   error
}

type editDoneMsg struct {
	updated       domainreview.Entry
	statusChanged bool
	err           error
}

type exportDoneMsg struct {
	path string
	err  error
}

func NewDashboardModel(ctx context.Context, service *review.Service, options Options) tea.Model {
	return newDashboard(ctx, service, options)
}

func newDashboard(ctx context.Context, service reviewService, options Options) *dashboardModel {
	profile := options.Profile
	if profile.Version == 0 {
		profile = review.DefaultProfile()
	}
	exportDir := strings.TrimSpace(options.ExportDir)
	if exportDir == "" {
		exportDir = "."
	}

	search := textinput.New()
	search.Prompt = "search: "
	search.CharLimit = 200
	search.Width = 40

	notes := textinput.New()
	notes.Prompt = "notes: "
	notes.CharLimit = 1000
	notes.Width = 60

	return &dashboardModel{
		ctx:       ctx,
		service:   service,
		profile:   profile,
		exportDir: exportDir,
		now:       time.Now,
		filter:    domainreview.NewFilter(),
		selected:  map[string]struct{}{},
		activity:  domainreview.NewActivityLog(profile.Review.ActivityLogLimit),
		status:    "loading",
		search:    search,
		notes:     notes,
	}
}

func (m *dashboardModel) Init() tea.Cmd {
	return m.loadEntriesCmd()
}

func (m *dashboardModel) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := message.(type) {
	case entriesLoadedMsg:
		if msg.err != nil {
			m.status = "Load failed: " + msg.err.Error()
			return m, nil
		}
		m.entries = msg.entries
		m.rowOrder = nil
		m.pruneSelection()
		m.clampCursor()
		m.status = fmt.Sprintf("Loaded %d entries", len(m.entries))
		return m, nil

	case statusAppliedMsg:
		m.updating = false
		if msg.err != nil {
			m.status = "Status update failed for " + msg.name
			logging.Warn(m.ctx, "status update failed",
				slog.String("entry_id", msg.id),
				slog.String("error", msg.err.Error()),
			)
			return m, nil
		}
		m.applyStatus(msg.id, msg.status)
		m.status = msg.name + " is now " + msg.status.Display()
		return m, nil

	case ratingAppliedMsg:
		m.updating = false
		if msg.err != nil {
			m.status = "Rating update failed for " + msg.name
			return m, nil
		}
		m.replaceCore(msg.id, func(core domainreview.EntryCore) domainreview.EntryCore {
			core.Rating = msg.rating
			return core
		})
		m.status = fmt.Sprintf("%s rated %d", msg.name, msg.rating)
		return m, nil

	case notesAppliedMsg:
		m.updating = false
		if msg.err != nil {
			m.status = "Notes update failed for " + msg.name
			return m, nil
		}
		m.replaceCore(msg.id, func(core domainreview.EntryCore) domainreview.EntryCore {
			core.Notes = msg.notes
			return core
		})
		m.status = "Notes saved for " + msg.name
		return m, nil

	case flagToggledMsg:
		m.updating = false
		if msg.err != nil {
			m.status = "Flag toggle failed for " + msg.name
			return m, nil
		}
		m.replaceCore(msg.id, func(core domainreview.EntryCore) domainreview.EntryCore {
			core.Flagged = msg.flagged
			return core
		})
		if msg.flagged {
			m.status = msg.name + " flagged"
		} else {
			m.status = msg.name + " unflagged"
		}
		return m, nil

	case bulkAppliedMsg:
		m.updating = false
		for _, id := range msg.appliedIDs {
			m.applyStatus(id, msg.status)
		}
		total := len(msg.appliedIDs) + msg.failed
		if msg.failed > 0 {
			m.status = fmt.Sprintf("Bulk update failed for %d of %d entries", msg.failed, total)
		} else {
			m.status = fmt.Sprintf("Updated %d entries to %s", len(msg.appliedIDs), msg.status.Display())
		}
		m.selected = map[string]struct{}{}
		m.mode = modeTable
		return m, nil

	case createDoneMsg:
		m.updating = false
		if msg.err != nil {
			if m.form != nil {
				m.form.errMsg = msg.err.Error()
			}
			m.status = "Create failed"
			return m, nil
		}
		m.entries = domainreview.PrependEntry(m.entries, msg.entry)
		m.rowOrder = nil
		m.form = nil
		m.mode = modeTable
		m.cursor = 0
		m.status = "Added " + msg.entry.Core().FullName
		return m, nil

	case editDoneMsg:
		m.updating = false
		if msg.err != nil {
			if m.form != nil {
				m.form.errMsg = msg.err.Error()
			}
			m.status = "Update failed"
			return m, nil
		}
		updatedCore := msg.updated.Core()
		m.entries, _ = domainreview.ReplaceEntry(m.entries, updatedCore.ID, func(domainreview.Entry) domainreview.Entry {
			return msg.updated
		})
		if msg.statusChanged {
			m.activity.Append(m.entries, updatedCore.ID, updatedCore.Status)
		}
		m.form = nil
		m.mode = modeTable
		m.status = "Updated " + updatedCore.FullName
		return m, nil

	case exportDoneMsg:
		if msg.err != nil {
			m.status = "Export failed: " + msg.err.Error()
			return m, nil
		}
		m.status = "Exported " + msg.path
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *dashboardModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case modeSearch:
		return m.handleSearchKey(msg)
	case modeStatusFilter:
		return m.handleStatusFilterKey(msg)
	case modeStatusPick:
		return m.handleStatusPickKey(msg)
	case modeBulkPick:
		return m.handleBulkPickKey(msg)
	case modeNotes:
		return m.handleNotesKey(msg)
	case modeForm:
		return m.handleFormKey(msg)
	}
	return m.handleTableKey(msg)
}

func (m *dashboardModel) handleTableKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "g":
		m.status = "Refreshing"
		return m, m.loadEntriesCmd()
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case "down", "j":
		if m.cursor < len(m.visibleEntries())-1 {
			m.cursor++
		}
		return m, nil
	case "K":
		m.moveRow(-1)
		return m, nil
	case "J":
		m.moveRow(1)
		return m, nil
	case "tab":
		m.setTab(nextTab(m.filter.Tab))
		return m, nil
	case "1":
		m.setTab(domainreview.TabAll)
		return m, nil
	case "2":
		m.setTab(domainreview.TabApplications)
		return m, nil
	case "3":
		m.setTab(domainreview.TabNominations)
		return m, nil
	case "/":
		m.mode = modeSearch
		m.search.SetValue(m.filter.Query)
		m.search.Focus()
		return m, nil
	case "S":
		m.mode = modeStatusFilter
		return m, nil
	case " ":
		if entry, ok := m.cursorEntry(); ok {
			m.toggleSelected(entry.Core().ID)
		}
		return m, nil
	case "a":
		for _, entry := range m.visibleEntries() {
			m.selected[entry.Core().ID] = struct{}{}
		}
		return m, nil
	case "u":
		m.selected = map[string]struct{}{}
		return m, nil
	case "e":
		return m, m.exportCmd()
	}

	if m.updating {
		return m, nil
	}

	switch msg.String() {
	case "s":
		if _, ok := m.cursorEntry(); ok {
			m.mode = modeStatusPick
		}
		return m, nil
	case "b":
		if len(m.selected) == 0 {
			m.status = "No entries selected"
			return m, nil
		}
		m.mode = modeBulkPick
		return m, nil
	case "f":
		return m, m.toggleFlagCmd()
	case "+", "=":
		return m, m.ratingCmd(1)
	case "-":
		return m, m.ratingCmd(-1)
	case "n":
		if entry, ok := m.cursorEntry(); ok {
			core := entry.Core()
			m.notesID = core.ID
			m.notesKind = entry.Kind()
			m.notes.SetValue(core.Notes)
			m.notes.Focus()
			m.mode = modeNotes
		}
		return m, nil
	case "c":
		m.form = newCreateForm(domainreview.KindApplication)
		m.mode = modeForm
		return m, nil
	case "enter":
		if entry, ok := m.cursorEntry(); ok {
			m.form = newEditForm(entry)
			m.mode = modeForm
		}
		return m, nil
	}
	return m, nil
}

func (m *dashboardModel) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.mode = modeTable
		m.search.Blur()
		return m, nil
	case "esc":
		m.search.SetValue("")
		m.filter.Query = ""
		m.afterFilterChange()
		m.mode = modeTable
		m.search.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.filter.Query != m.search.Value() {
		m.filter.Query = m.search.Value()
		m.afterFilterChange()
	}
	return m, cmd
}

func (m *dashboardModel) handleStatusFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch key {
	case "esc", "enter", "S":
		m.mode = modeTable
		return m, nil
	case "0", "a":
		m.filter.Statuses = m.filter.Statuses.Reset()
		m.afterFilterChange()
		return m, nil
	}
	if status, ok := statusForDigit(key); ok {
		m.filter.Statuses = m.filter.Statuses.Toggle(status)
		m.afterFilterChange()
	}
	return m, nil
}

func (m *dashboardModel) handleStatusPickKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "esc" {
		m.mode = modeTable
		return m, nil
	}
	if status, ok := statusForDigit(key); ok {
		if m.updating {
			return m, nil
		}
		m.mode = modeTable
		return m, m.statusCmd(status)
	}
	return m, nil
}

func (m *dashboardModel) handleBulkPickKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch key {
	case "esc":
		m.mode = modeTable
		return m, nil
	case "enter":
		m.status = "Select a status for the bulk update"
		return m, nil
	}
	if status, ok := statusForDigit(key); ok {
		if m.updating {
			return m, nil
		}
		return m, m.bulkCmd(status)
	}
	return m, nil
}

func (m *dashboardModel) handleNotesKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeTable
		m.notes.Blur()
		return m, nil
	case "enter":
		if m.updating {
			return m, nil
		}
		m.mode = modeTable
		m.notes.Blur()
		return m, m.notesCmd(m.notes.Value())
	}

	var cmd tea.Cmd
	m.notes, cmd = m.notes.Update(msg)
	return m, cmd
}

func (m *dashboardModel) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.form == nil {
		m.mode = modeTable
		return m, nil
	}

	switch msg.String() {
	case "esc":
		m.form = nil
		m.mode = modeTable
		return m, nil
	case "ctrl+e":
		if m.form.mode == formEdit {
			m.form.editing = !m.form.editing
		}
		return m, nil
	}

	if !m.form.editing {
		return m, nil
	}

	switch msg.String() {
	case "ctrl+t":
		m.form.switchKind()
		return m, nil
	case "tab", "down":
		m.form.focusNext()
		return m, nil
	case "shift+tab", "up":
		m.form.focusPrevious()
		return m, nil
	case "left":
		if m.form.focus == m.form.statusRow() {
			m.form.cycleStatus(-1)
		}
		return m, nil
	case "right":
		if m.form.focus == m.form.statusRow() {
			m.form.cycleStatus(1)
		}
		return m, nil
	case "enter":
		if m.updating {
			return m, nil
		}
		return m, m.submitFormCmd()
	}

	if m.form.focus < len(m.form.fields) {
		var cmd tea.Cmd
		m.form.fields[m.form.focus].input, cmd = m.form.fields[m.form.focus].input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *dashboardModel) loadEntriesCmd() tea.Cmd {
	return func() tea.Msg {
		entries, err := m.service.ListEntries(m.ctx)
		return entriesLoadedMsg{entries: entries, err: err}
	}
}

// statusCmd dispatches a status change for the cursor entry. A change to the
// current status is a no-op: no call, no notification.
func (m *dashboardModel) statusCmd(status domainreview.Status) tea.Cmd {
	entry, ok := m.cursorEntry()
	if !ok {
		return nil
	}
	core := entry.Core()
	if core.Status == status {
		return nil
	}

	m.updating = true
	m.status = "Updating " + core.FullName
	id, kind, name := core.ID, entry.Kind(), core.FullName
	return func() tea.Msg {
		err := m.service.UpdateStatus(m.ctx, kind, id, status)
		return statusAppliedMsg{id: id, name: name, status: status, err: err}
	}
}

func (m *dashboardModel) ratingCmd(delta int) tea.Cmd {
	entry, ok := m.cursorEntry()
	if !ok {
		return nil
	}
	core := entry.Core()
	rating := core.Rating + delta
	if rating < domainreview.MinRating {
		rating = domainreview.MinRating
	}
	if rating > domainreview.MaxRating {
		rating = domainreview.MaxRating
	}
	if rating == core.Rating {
		return nil
	}

	m.updating = true
	id, kind, name := core.ID, entry.Kind(), core.FullName
	return func() tea.Msg {
		err := m.service.UpdateRating(m.ctx, kind, id, rating)
		return ratingAppliedMsg{id: id, name: name, rating: rating, err: err}
	}
}

func (m *dashboardModel) notesCmd(value string) tea.Cmd {
	entry, found := domainreview.FindEntry(m.entries, m.notesID)
	if !found {
		return nil
	}
	core := entry.Core()
	if core.Notes == value {
		return nil
	}

	m.updating = true
	id, kind, name := core.ID, m.notesKind, core.FullName
	return func() tea.Msg {
		err := m.service.UpdateNotes(m.ctx, kind, id, value)
		return notesAppliedMsg{id: id, name: name, notes: value, err: err}
	}
}

func (m *dashboardModel) toggleFlagCmd() tea.Cmd {
	entry, ok := m.cursorEntry()
	if !ok {
		return nil
	}
	core := entry.Core()

	m.updating = true
	id, kind, name := core.ID, entry.Kind(), core.FullName
	return func() tea.Msg {
		flagged, err := m.service.ToggleFlag(m.ctx, kind, id)
		return flagToggledMsg{id: id, name: name, flagged: flagged, err: err}
	}
}

// bulkCmd applies a status to every selected entry, one call per entry.
// Entries already carrying the status are skipped without a store call. The
// selection always resolves by id against the full collection, so entries
// hidden by the current filter are still covered.
func (m *dashboardModel) bulkCmd(status domainreview.Status) tea.Cmd {
	type bulkTarget struct {
		id   string
		kind domainreview.EntryKind
	}

	targets := make([]bulkTarget, 0, len(m.selected))
	for _, entry := range m.entries {
		core := entry.Core()
		if _, picked := m.selected[core.ID]; !picked {
			continue
		}
		if core.Status == status {
			continue
		}
		targets = append(targets, bulkTarget{id: core.ID, kind: entry.Kind()})
	}

	if len(targets) == 0 {
		m.selected = map[string]struct{}{}
		m.mode = modeTable
		m.status = "Nothing to update"
		return nil
	}

	m.updating = true
	m.status = fmt.Sprintf("Updating %d entries", len(targets))
	return func() tea.Msg {
		applied := make([]string, 0, len(targets))
		failed := 0
		for _, target := range targets {
			if err := m.service.UpdateStatus(m.ctx, target.kind, target.id, status); err != nil {
				failed++
				continue
			}
			applied = append(applied, target.id)
		}
		return bulkAppliedMsg{status: status, appliedIDs: applied, failed: failed}
	}
}

func (m *dashboardModel) submitFormCmd() tea.Cmd {
	form := m.form
	if message := form.validate(); message != "" {
		form.errMsg = message
		return nil
	}
	form.errMsg = ""
	m.updating = true

	if form.mode == formCreate {
		input := form.buildCreateInput()
		return func() tea.Msg {
			entry, err := m.service.CreateEntry(m.ctx, input)
			return createDoneMsg{entry: entry, err: err}
		}
	}

	input := form.buildDetailsInput()
	updated := form.editedEntry()
	statusChanged := form.statusChanged()
	status := form.status
	kind := form.kind
	return func() tea.Msg {
		if err := m.service.UpdateDetails(m.ctx, input); err != nil {
			return editDoneMsg{err: err}
		}
		if statusChanged {
			if err := m.service.UpdateStatus(m.ctx, kind, input.ID, status); err != nil {
				return editDoneMsg{err: err}
			}
		}
		return editDoneMsg{updated: updated, statusChanged: statusChanged}
	}
}

func (m *dashboardModel) exportCmd() tea.Cmd {
	visible := m.visibleEntries()
	tab := m.filter.Tab
	base := m.profile.Exports.BaseName
	directory := m.exportDir
	return func() tea.Msg {
		payload := domainreview.ExportCSV(visible, tab)
		path := filepath.Join(directory, domainreview.ExportFilename(base, tab))
		if err := os.WriteFile(path, payload, 0o644); err != nil {
			return exportDoneMsg{err: err}
		}
		return exportDoneMsg{path: path}
	}
}

// visibleEntries applies the filter, then the manual row order on top. The
// order is a display-only permutation: it never persists and filter or tab
// changes discard it.
func (m *dashboardModel) visibleEntries() []domainreview.Entry {
	filtered := domainreview.ApplyFilter(m.entries, m.filter)
	if len(m.rowOrder) == 0 {
		return filtered
	}

	position := make(map[string]int, len(m.rowOrder))
	for index, id := range m.rowOrder {
		position[id] = index
	}
	ordered := make([]domainreview.Entry, len(filtered))
	copy(ordered, filtered)
	sort.SliceStable(ordered, func(i int, j int) bool {
		left, leftKnown := position[ordered[i].Core().ID]
		right, rightKnown := position[ordered[j].Core().ID]
		if leftKnown && rightKnown {
			return left < right
		}
		return leftKnown && !rightKnown
	})
	return ordered
}

func (m *dashboardModel) cursorEntry() (domainreview.Entry, bool) {
	visible := m.visibleEntries()
	if len(visible) == 0 || m.cursor < 0 || m.cursor >= len(visible) {
		return nil, false
	}
	return visible[m.cursor], true
}

func (m *dashboardModel) moveRow(delta int) {
	visible := m.visibleEntries()
	target := m.cursor + delta
	if len(visible) == 0 || target < 0 || target >= len(visible) {
		return
	}

	order := make([]string, 0, len(visible))
	for _, entry := range visible {
		order = append(order, entry.Core().ID)
	}
	order[m.cursor], order[target] = order[target], order[m.cursor]
	m.rowOrder = order
	m.cursor = target
}

func (m *dashboardModel) setTab(tab domainreview.Tab) {
	if m.filter.Tab == tab {
		return
	}
	m.filter.Tab = tab
	m.afterFilterChange()
}

func (m *dashboardModel) afterFilterChange() {
	m.rowOrder = nil
	m.cursor = 0
}

func (m *dashboardModel) toggleSelected(id string) {
	if _, picked := m.selected[id]; picked {
		delete(m.selected, id)
		return
	}
	m.selected[id] = struct{}{}
}

func (m *dashboardModel) pruneSelection() {
	kept := map[string]struct{}{}
	for id := range m.selected {
		if _, found := domainreview.FindEntry(m.entries, id); found {
			kept[id] = struct{}{}
		}
	}
	m.selected = kept
}

func (m *dashboardModel) clampCursor() {
	visible := m.visibleEntries()
	if m.cursor >= len(visible) {
		m.cursor = len(visible) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *dashboardModel) applyStatus(id string, status domainreview.Status) {
	m.replaceCore(id, func(core domainreview.EntryCore) domainreview.EntryCore {
		core.Status = status
		return core
	})
	m.activity.Append(m.entries, id, status)
}

func (m *dashboardModel) replaceCore(id string, apply func(domainreview.EntryCore) domainreview.EntryCore) {
	m.entries, _ = domainreview.ReplaceEntry(m.entries, id, func(entry domainreview.Entry) domainreview.Entry {
		return entry.WithCore(apply(entry.Core()))
	})
}

func nextTab(tab domainreview.Tab) domainreview.Tab {
	switch tab {
	case domainreview.TabAll:
		return domainreview.TabApplications
	case domainreview.TabApplications:
		return domainreview.TabNominations
	default:
		return domainreview.TabAll
	}
}

func statusForDigit(key string) (domainreview.Status, bool) {
	if len(key) != 1 || key[0] < '1' || key[0] > '6' {
		return "", false
	}
	index := int(key[0] - '1')
	if index >= len(domainreview.AllStatuses) {
		return "", false
	}
	return domainreview.AllStatuses[index], true
}
