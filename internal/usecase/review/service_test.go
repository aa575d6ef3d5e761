package review

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	gormsqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"

	domainreview "speakerdesk/internal/domain/review"
	cacheinfra "speakerdesk/internal/infrastructure/cache"
	"speakerdesk/internal/infrastructure/persistence/sqlite/model"
	sqliterepo "speakerdesk/internal/infrastructure/persistence/sqlite/repository"
	sqliteuow "speakerdesk/internal/infrastructure/persistence/sqlite/uow"
	"speakerdesk/internal/ports"
)

func setupService(t *testing.T) *Service {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "review.sqlite")
	db, err := gorm.Open(gormsqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&model.SpeakerApplication{}, &model.SpeakerNomination{}, &model.ReviewKV{}); err != nil {
		t.Fatalf("auto migrate: %v", err)
	}

	return NewService(
		sqliterepo.NewSpeakerRepository(db),
		sqliteuow.NewUnitOfWork(db),
		cacheinfra.NewSQLiteCache(db),
	)
}

func applicationInput(name string) CreateEntryInput {
	return CreateEntryInput{
		Kind:     domainreview.KindApplication,
		FullName: name,
		Topic:    "topic for " + name,
		Application: ApplicationDetails{
			MobilePhone: "555-0100",
			Job:         "engineer",
		},
	}
}

func nominationInput(name string) CreateEntryInput {
	return CreateEntryInput{
		Kind:     domainreview.KindNomination,
		FullName: name,
		Topic:    "topic for " + name,
		Nomination: NominationDetails{
			Contact:     "contact@example.com",
			NominatedBy: "Sam Wu",
		},
	}
}

func TestCreateEntryValidationOrder(t *testing.T) {
	service := setupService(t)
	ctx := context.Background()

	testCases := []struct {
		name    string
		input   CreateEntryInput
		wantErr string
	}{
		{
			name:    "missing full name",
			input:   CreateEntryInput{Kind: domainreview.KindApplication},
			wantErr: "full name is required",
		},
		{
			name:    "missing topic",
			input:   CreateEntryInput{Kind: domainreview.KindApplication, FullName: "Jane Doe"},
			wantErr: "topic is required",
		},
		{
			name: "application missing phone",
			input: CreateEntryInput{
				Kind: domainreview.KindApplication, FullName: "Jane Doe", Topic: "t",
				Application: ApplicationDetails{Job: "engineer"},
			},
			wantErr: "mobile phone is required",
		},
		{
			name: "application missing job",
			input: CreateEntryInput{
				Kind: domainreview.KindApplication, FullName: "Jane Doe", Topic: "t",
				Application: ApplicationDetails{MobilePhone: "555-0100"},
			},
			wantErr: "job is required",
		},
		{
			name: "nomination missing nominator",
			input: CreateEntryInput{
				Kind: domainreview.KindNomination, FullName: "Ada Li", Topic: "t",
				Nomination: NominationDetails{Contact: "c"},
			},
			wantErr: "nominated by is required",
		},
		{
			name: "nomination missing contact",
			input: CreateEntryInput{
				Kind: domainreview.KindNomination, FullName: "Ada Li", Topic: "t",
				Nomination: NominationDetails{NominatedBy: "Sam Wu"},
			},
			wantErr: "contact is required",
		},
		{
			name:    "unknown kind",
			input:   CreateEntryInput{Kind: "panel", FullName: "Jane Doe", Topic: "t"},
			wantErr: "unknown entry kind",
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			_, err := service.CreateEntry(ctx, testCase.input)
			if err == nil || err.Error() != testCase.wantErr {
				t.Fatalf("CreateEntry() error = %v, want %q", err, testCase.wantErr)
			}
		})
	}
}

func TestCreateAndListEntries(t *testing.T) {
	service := setupService(t)
	ctx := context.Background()

	created, err := service.CreateEntry(ctx, applicationInput("Jane Doe"))
	if err != nil {
		t.Fatalf("CreateEntry(application) error = %v", err)
	}
	if created.Core().ID == "" {
		t.Fatalf("repository must assign an id")
	}
	if created.Core().Status != domainreview.StatusUnderReview {
		t.Fatalf("default status = %s, want under_review", created.Core().Status)
	}
	if created.Core().SubmittedAt.IsZero() {
		t.Fatalf("submission instant must be set")
	}

	if _, err := service.CreateEntry(ctx, nominationInput("Ada Li")); err != nil {
		t.Fatalf("CreateEntry(nomination) error = %v", err)
	}

	entries, err := service.ListEntries(ctx)
	if err != nil {
		t.Fatalf("ListEntries() error = %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("len(entries) = %d, want 2", len(entries))
	}

	kinds := map[domainreview.EntryKind]int{}
	for _, entry := range entries {
		kinds[entry.Kind()]++
	}
	if kinds[domainreview.KindApplication] != 1 || kinds[domainreview.KindNomination] != 1 {
		t.Fatalf("kinds = %v", kinds)
	}
}

func TestUpdateStatus(t *testing.T) {
	service := setupService(t)
	ctx := context.Background()

	created, err := service.CreateEntry(ctx, applicationInput("Jane Doe"))
	if err != nil {
		t.Fatalf("CreateEntry() error = %v", err)
	}
	id := created.Core().ID

	if err := service.UpdateStatus(ctx, domainreview.KindApplication, id, domainreview.StatusShortlisted); err != nil {
		t.Fatalf("UpdateStatus() error = %v", err)
	}

	entry, err := service.GetEntry(ctx, domainreview.KindApplication, id)
	if err != nil {
		t.Fatalf("GetEntry() error = %v", err)
	}
	if entry.Core().Status != domainreview.StatusShortlisted {
		t.Fatalf("status = %s, want shortlisted", entry.Core().Status)
	}

	if err := service.UpdateStatus(ctx, domainreview.KindApplication, id, "archived"); !errors.Is(err, errInvalidStatus) {
		t.Fatalf("UpdateStatus(invalid) error = %v, want errInvalidStatus", err)
	}
	if err := service.UpdateStatus(ctx, domainreview.KindApplication, "missing", domainreview.StatusInvited); !errors.Is(err, ports.ErrEntryNotFound) {
		t.Fatalf("UpdateStatus(missing) error = %v, want ErrEntryNotFound", err)
	}
}

func TestUpdateRatingBounds(t *testing.T) {
	service := setupService(t)
	ctx := context.Background()

	created, err := service.CreateEntry(ctx, nominationInput("Ada Li"))
	if err != nil {
		t.Fatalf("CreateEntry() error = %v", err)
	}
	id := created.Core().ID

	if err := service.UpdateRating(ctx, domainreview.KindNomination, id, 7); !errors.Is(err, errInvalidRating) {
		t.Fatalf("UpdateRating(7) error = %v, want errInvalidRating", err)
	}
	if err := service.UpdateRating(ctx, domainreview.KindNomination, id, -1); !errors.Is(err, errInvalidRating) {
		t.Fatalf("UpdateRating(-1) error = %v, want errInvalidRating", err)
	}
	if err := service.UpdateRating(ctx, domainreview.KindNomination, id, 5); err != nil {
		t.Fatalf("UpdateRating(5) error = %v", err)
	}

	entry, err := service.GetEntry(ctx, domainreview.KindNomination, id)
	if err != nil {
		t.Fatalf("GetEntry() error = %v", err)
	}
	if entry.Core().Rating != 5 {
		t.Fatalf("rating = %d, want 5", entry.Core().Rating)
	}
}

func TestToggleFlagFlipsTwice(t *testing.T) {
	service := setupService(t)
	ctx := context.Background()

	created, err := service.CreateEntry(ctx, applicationInput("Jane Doe"))
	if err != nil {
		t.Fatalf("CreateEntry() error = %v", err)
	}
	id := created.Core().ID

	flagged, err := service.ToggleFlag(ctx, domainreview.KindApplication, id)
	if err != nil {
		t.Fatalf("ToggleFlag() error = %v", err)
	}
	if !flagged {
		t.Fatalf("first toggle = false, want true")
	}

	flagged, err = service.ToggleFlag(ctx, domainreview.KindApplication, id)
	if err != nil {
		t.Fatalf("ToggleFlag() error = %v", err)
	}
	if flagged {
		t.Fatalf("second toggle = true, want false")
	}

	if _, err := service.ToggleFlag(ctx, domainreview.KindApplication, "missing"); !errors.Is(err, ports.ErrEntryNotFound) {
		t.Fatalf("ToggleFlag(missing) error = %v, want ErrEntryNotFound", err)
	}
}

func TestUpdateNotes(t *testing.T) {
	service := setupService(t)
	ctx := context.Background()

	created, err := service.CreateEntry(ctx, nominationInput("Ada Li"))
	if err != nil {
		t.Fatalf("CreateEntry() error = %v", err)
	}
	id := created.Core().ID

	if err := service.UpdateNotes(ctx, domainreview.KindNomination, id, "ask for video"); err != nil {
		t.Fatalf("UpdateNotes() error = %v", err)
	}

	entry, err := service.GetEntry(ctx, domainreview.KindNomination, id)
	if err != nil {
		t.Fatalf("GetEntry() error = %v", err)
	}
	if entry.Core().Notes != "ask for video" {
		t.Fatalf("notes = %q", entry.Core().Notes)
	}
}

func TestUpdateDetailsKeepsReviewFields(t *testing.T) {
	service := setupService(t)
	ctx := context.Background()

	created, err := service.CreateEntry(ctx, applicationInput("Jane Doe"))
	if err != nil {
		t.Fatalf("CreateEntry() error = %v", err)
	}
	id := created.Core().ID

	if err := service.UpdateStatus(ctx, domainreview.KindApplication, id, domainreview.StatusInvited); err != nil {
		t.Fatalf("UpdateStatus() error = %v", err)
	}
	if err := service.UpdateRating(ctx, domainreview.KindApplication, id, 3); err != nil {
		t.Fatalf("UpdateRating() error = %v", err)
	}

	err = service.UpdateDetails(ctx, UpdateDetailsInput{
		ID:       id,
		Kind:     domainreview.KindApplication,
		FullName: "Jane Q. Doe",
		Topic:    "Rewritten topic",
		Application: ApplicationDetails{
			MobilePhone: "555-0199",
			Job:         "researcher",
		},
	})
	if err != nil {
		t.Fatalf("UpdateDetails() error = %v", err)
	}

	entry, err := service.GetEntry(ctx, domainreview.KindApplication, id)
	if err != nil {
		t.Fatalf("GetEntry() error = %v", err)
	}
	core := entry.Core()
	if core.FullName != "Jane Q. Doe" || core.Topic != "Rewritten topic" {
		t.Fatalf("structural fields not updated: %+v", core)
	}
	// Review state travels through its own operations, never through details.
	if core.Status != domainreview.StatusInvited || core.Rating != 3 {
		t.Fatalf("review fields must survive a details update: %+v", core)
	}
	if entry.(domainreview.Application).Job != "researcher" {
		t.Fatalf("variant fields not updated")
	}
}

func TestUpdateDetailsRequiresID(t *testing.T) {
	service := setupService(t)

	err := service.UpdateDetails(context.Background(), UpdateDetailsInput{
		Kind:       domainreview.KindNomination,
		FullName:   "Ada Li",
		Topic:      "t",
		Nomination: NominationDetails{Contact: "c", NominatedBy: "Sam Wu"},
	})
	if err == nil || err.Error() != "entry id is required" {
		t.Fatalf("UpdateDetails() error = %v, want id required", err)
	}
}

func TestMutationGuards(t *testing.T) {
	service := setupService(t)

	if err := service.UpdateStatus(nil, domainreview.KindApplication, "a1", domainreview.StatusInvited); err == nil {
		t.Fatalf("nil context must fail")
	}

	cancelled, cancel := context.WithCancel(context.Background())
	cancel()
	if err := service.UpdateStatus(cancelled, domainreview.KindApplication, "a1", domainreview.StatusInvited); err == nil {
		t.Fatalf("cancelled context must fail")
	}
}
