package reviewconsole

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"

	domainreview "speakerdesk/internal/domain/review"
	"speakerdesk/internal/usecase/review"
)

type formMode int

const (
	formCreate formMode = iota
	formEdit
)

// Field keys shared by both kinds plus the kind-specific sets. The order here
// is the order the form walks them and the order validation reports them.
const (
	fieldFullName        = "fullName"
	fieldTopic           = "topic"
	fieldEmail           = "email"
	fieldMobilePhone     = "mobilePhone"
	fieldWeChatID        = "wechatId"
	fieldGender          = "gender"
	fieldJob             = "job"
	fieldRehearsal       = "rehearsalAvailability"
	fieldCommonBelief    = "commonBelief"
	fieldCoreIdea        = "coreIdea"
	fieldPersonalInsight = "personalInsight"
	fieldPotentialImpact = "potentialImpact"
	fieldNominatedBy     = "nominatedBy"
	fieldContact         = "contact"
	fieldPriorTEDTalk    = "priorTedTalk"
)

type formField struct {
	key      string
	label    string
	required bool
	input    textinput.Model
}

// entryForm manages the create/edit modal. The field set branches on the
// entry kind; the kind itself is immutable once an entry exists. In edit mode
// fields stay read-only until the explicit edit toggle is turned on.
type entryForm struct {
	mode     formMode
	kind     domainreview.EntryKind
	original domainreview.Entry
	editing  bool
	status   domainreview.Status
	fields   []formField
	focus    int
	errMsg   string
}

func newCreateForm(kind domainreview.EntryKind) *entryForm {
	form := &entryForm{
		mode:    formCreate,
		kind:    kind,
		editing: true,
		status:  domainreview.StatusUnderReview,
	}
	form.fields = buildFields(kind, nil)
	form.focusField(0)
	return form
}

func newEditForm(entry domainreview.Entry) *entryForm {
	form := &entryForm{
		mode:     formEdit,
		kind:     entry.Kind(),
		original: entry,
		editing:  false,
		status:   entry.Core().Status,
	}
	form.fields = buildFields(entry.Kind(), entry)
	form.focusField(0)
	return form
}

type fieldSpec struct {
	key      string
	label    string
	required bool
}

func buildFields(kind domainreview.EntryKind, entry domainreview.Entry) []formField {
	specs := []fieldSpec{
		{fieldFullName, "Full Name", true},
		{fieldTopic, "Topic", true},
	}

	switch kind {
	case domainreview.KindApplication:
		specs = append(specs,
			fieldSpec{fieldEmail, "Email", false},
			fieldSpec{fieldMobilePhone, "Mobile Phone", true},
			fieldSpec{fieldWeChatID, "WeChat ID", false},
			fieldSpec{fieldGender, "Gender", false},
			fieldSpec{fieldJob, "Job", true},
			fieldSpec{fieldRehearsal, "Rehearsal Availability", false},
			fieldSpec{fieldCommonBelief, "Common Belief", false},
			fieldSpec{fieldCoreIdea, "Core Idea", false},
			fieldSpec{fieldPersonalInsight, "Personal Insight", false},
			fieldSpec{fieldPotentialImpact, "Potential Impact", false},
		)
	case domainreview.KindNomination:
		specs = append(specs,
			fieldSpec{fieldNominatedBy, "Nominated By", true},
			fieldSpec{fieldContact, "Contact", true},
		)
	}

	specs = append(specs, fieldSpec{fieldPriorTEDTalk, "Prior TED Talk", false})

	fields := make([]formField, 0, len(specs))
	for _, spec := range specs {
		input := textinput.New()
		input.Prompt = ""
		input.CharLimit = 500
		input.Width = 48
		input.SetValue(fieldValueFromEntry(entry, spec.key))
		fields = append(fields, formField{
			key:      spec.key,
			label:    spec.label,
			required: spec.required,
			input:    input,
		})
	}
	return fields
}

func fieldValueFromEntry(entry domainreview.Entry, key string) string {
	if entry == nil {
		return ""
	}
	core := entry.Core()
	switch key {
	case fieldFullName:
		return core.FullName
	case fieldTopic:
		return core.Topic
	case fieldPriorTEDTalk:
		return core.PriorTEDTalk
	}

	switch concrete := entry.(type) {
	case domainreview.Application:
		switch key {
		case fieldEmail:
			return concrete.Email
		case fieldMobilePhone:
			return concrete.MobilePhone
		case fieldWeChatID:
			return concrete.WeChatID
		case fieldGender:
			return concrete.Gender
		case fieldJob:
			return concrete.Job
		case fieldRehearsal:
			return concrete.RehearsalAvailability
		case fieldCommonBelief:
			return concrete.Idea.CommonBelief
		case fieldCoreIdea:
			return concrete.Idea.CoreIdea
		case fieldPersonalInsight:
			return concrete.Idea.PersonalInsight
		case fieldPotentialImpact:
			return concrete.Idea.PotentialImpact
		}
	case domainreview.Nomination:
		switch key {
		case fieldNominatedBy:
			return concrete.NominatedBy
		case fieldContact:
			return concrete.Contact
		}
	}
	return ""
}

func (f *entryForm) value(key string) string {
	for _, field := range f.fields {
		if field.key == key {
			return strings.TrimSpace(field.input.Value())
		}
	}
	return ""
}

// switchKind rebuilds the field set for the other kind, keeping the shared
// values. Only legal while creating.
func (f *entryForm) switchKind() {
	if f.mode != formCreate {
		return
	}

	fullName := f.value(fieldFullName)
	topic := f.value(fieldTopic)
	prior := f.value(fieldPriorTEDTalk)

	if f.kind == domainreview.KindApplication {
		f.kind = domainreview.KindNomination
	} else {
		f.kind = domainreview.KindApplication
	}

	f.fields = buildFields(f.kind, nil)
	f.setValue(fieldFullName, fullName)
	f.setValue(fieldTopic, topic)
	f.setValue(fieldPriorTEDTalk, prior)
	f.errMsg = ""
	f.focusField(0)
}

func (f *entryForm) setValue(key string, value string) {
	for index := range f.fields {
		if f.fields[index].key == key {
			f.fields[index].input.SetValue(value)
			return
		}
	}
}

// statusRow is the focus index of the status selector, one past the fields.
func (f *entryForm) statusRow() int {
	return len(f.fields)
}

func (f *entryForm) focusField(index int) {
	if index < 0 {
		index = f.statusRow()
	}
	if index > f.statusRow() {
		index = 0
	}
	f.focus = index
	for i := range f.fields {
		if i == index {
			f.fields[i].input.Focus()
		} else {
			f.fields[i].input.Blur()
		}
	}
}

func (f *entryForm) focusNext()     { f.focusField(f.focus + 1) }
func (f *entryForm) focusPrevious() { f.focusField(f.focus - 1) }

// cycleStatus steps the status selector. Only meaningful when the status row
// has focus.
func (f *entryForm) cycleStatus(delta int) {
	index := 0
	for i, status := range domainreview.AllStatuses {
		if status == f.status {
			index = i
			break
		}
	}
	index = (index + delta + len(domainreview.AllStatuses)) % len(domainreview.AllStatuses)
	f.status = domainreview.AllStatuses[index]
}

// validate returns the first failing field's message, or "" when the form may
// be submitted. Order matches the required-field contract.
func (f *entryForm) validate() string {
	if f.value(fieldFullName) == "" {
		return "Full Name is required"
	}
	if f.value(fieldTopic) == "" {
		return "Topic is required"
	}

	switch f.kind {
	case domainreview.KindApplication:
		if f.value(fieldMobilePhone) == "" {
			return "Mobile Phone is required"
		}
		if f.value(fieldJob) == "" {
			return "Job is required"
		}
	case domainreview.KindNomination:
		if f.value(fieldNominatedBy) == "" {
			return "Nominated By is required"
		}
		if f.value(fieldContact) == "" {
			return "Contact is required"
		}
	}
	return ""
}

func (f *entryForm) applicationDetails() review.ApplicationDetails {
	return review.ApplicationDetails{
		Email:                 f.value(fieldEmail),
		MobilePhone:           f.value(fieldMobilePhone),
		WeChatID:              f.value(fieldWeChatID),
		Gender:                f.value(fieldGender),
		Job:                   f.value(fieldJob),
		RehearsalAvailability: f.value(fieldRehearsal),
		Idea: domainreview.IdeaOutline{
			CommonBelief:    f.value(fieldCommonBelief),
			CoreIdea:        f.value(fieldCoreIdea),
			PersonalInsight: f.value(fieldPersonalInsight),
			PotentialImpact: f.value(fieldPotentialImpact),
		},
	}
}

func (f *entryForm) nominationDetails() review.NominationDetails {
	return review.NominationDetails{
		Contact:     f.value(fieldContact),
		NominatedBy: f.value(fieldNominatedBy),
	}
}

func (f *entryForm) buildCreateInput() review.CreateEntryInput {
	return review.CreateEntryInput{
		Kind:         f.kind,
		FullName:     f.value(fieldFullName),
		Topic:        f.value(fieldTopic),
		Status:       f.status,
		PriorTEDTalk: f.value(fieldPriorTEDTalk),
		Application:  f.applicationDetails(),
		Nomination:   f.nominationDetails(),
	}
}

func (f *entryForm) buildDetailsInput() review.UpdateDetailsInput {
	id := ""
	if f.original != nil {
		id = f.original.Core().ID
	}
	return review.UpdateDetailsInput{
		ID:           id,
		Kind:         f.kind,
		FullName:     f.value(fieldFullName),
		Topic:        f.value(fieldTopic),
		PriorTEDTalk: f.value(fieldPriorTEDTalk),
		Application:  f.applicationDetails(),
		Nomination:   f.nominationDetails(),
	}
}

func (f *entryForm) statusChanged() bool {
	if f.original == nil {
		return false
	}
	return f.original.Core().Status != f.status
}

// editedEntry builds the locally-applied entry after a successful edit
// submission: the original with the form's structural fields and status.
func (f *entryForm) editedEntry() domainreview.Entry {
	if f.original == nil {
		return nil
	}

	core := f.original.Core()
	core.FullName = f.value(fieldFullName)
	core.Topic = f.value(fieldTopic)
	core.PriorTEDTalk = f.value(fieldPriorTEDTalk)
	core.Status = f.status

	switch concrete := f.original.(type) {
	case domainreview.Application:
		details := f.applicationDetails()
		concrete.EntryCore = core
		concrete.Email = details.Email
		concrete.MobilePhone = details.MobilePhone
		concrete.WeChatID = details.WeChatID
		concrete.Gender = details.Gender
		concrete.Job = details.Job
		concrete.RehearsalAvailability = details.RehearsalAvailability
		concrete.Idea = details.Idea
		return concrete
	case domainreview.Nomination:
		details := f.nominationDetails()
		concrete.EntryCore = core
		concrete.Contact = details.Contact
		concrete.NominatedBy = details.NominatedBy
		return concrete
	default:
		return f.original
	}
}
