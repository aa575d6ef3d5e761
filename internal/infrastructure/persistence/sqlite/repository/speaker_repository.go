package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"speakerdesk/internal/errs"
	"speakerdesk/internal/infrastructure/persistence/sqlite/model"
	"speakerdesk/internal/ports"
)

type SpeakerRepository struct {
	db *gorm.DB
}

var _ ports.SpeakerRepository = (*SpeakerRepository)(nil)

func NewSpeakerRepository(db *gorm.DB) *SpeakerRepository {
	return &SpeakerRepository{db: db}
}

func (r *SpeakerRepository) dbFromContext(ctx context.Context) (*gorm.DB, error) {
	if ctx == nil {
		return nil, errors.New("context is required")
	}

	tx := ports.TxFromContext(ctx)
	if tx == nil {
		return r.db.WithContext(ctx), nil
	}

	gormTx, ok := tx.(*gorm.DB)
	if !ok || gormTx == nil {
		return nil, fmt.Errorf("invalid tx in context: %T", tx)
	}
	return gormTx.WithContext(ctx), nil
}

func (r *SpeakerRepository) ListApplications(ctx context.Context) ([]ports.SpeakerApplication, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return nil, err
	}

	var rows []model.SpeakerApplication
	if err := db.Order("submitted_at desc").Find(&rows).Error; err != nil {
		return nil, errs.Wrap(err, "query applications")
	}

	items := make([]ports.SpeakerApplication, 0, len(rows))
	for _, row := range rows {
		items = append(items, mapApplication(row))
	}
	return items, nil
}

func (r *SpeakerRepository) ListNominations(ctx context.Context) ([]ports.SpeakerNomination, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return nil, err
	}

	var rows []model.SpeakerNomination
	if err := db.Order("submitted_at desc").Find(&rows).Error; err != nil {
		return nil, errs.Wrap(err, "query nominations")
	}

	items := make([]ports.SpeakerNomination, 0, len(rows))
	for _, row := range rows {
		items = append(items, mapNomination(row))
	}
	return items, nil
}

func (r *SpeakerRepository) GetApplication(ctx context.Context, id string) (ports.SpeakerApplication, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return ports.SpeakerApplication{}, err
	}

	var row model.SpeakerApplication
	if err := db.Where("id = ?", id).Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.SpeakerApplication{}, ports.ErrEntryNotFound
		}
		return ports.SpeakerApplication{}, errs.Wrap(err, "query application by id")
	}
	return mapApplication(row), nil
}

func (r *SpeakerRepository) GetNomination(ctx context.Context, id string) (ports.SpeakerNomination, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return ports.SpeakerNomination{}, err
	}

	var row model.SpeakerNomination
	if err := db.Where("id = ?", id).Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.SpeakerNomination{}, ports.ErrEntryNotFound
		}
		return ports.SpeakerNomination{}, errs.Wrap(err, "query nomination by id")
	}
	return mapNomination(row), nil
}

func (r *SpeakerRepository) CreateApplication(ctx context.Context, application ports.SpeakerApplication) (ports.SpeakerApplication, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return ports.SpeakerApplication{}, err
	}

	row := applicationModel(application)
	if strings.TrimSpace(row.ID) == "" {
		row.ID = uuid.NewString()
	}

	if err := db.Create(&row).Error; err != nil {
		return ports.SpeakerApplication{}, errs.Wrap(err, "insert application")
	}
	return mapApplication(row), nil
}

func (r *SpeakerRepository) CreateNomination(ctx context.Context, nomination ports.SpeakerNomination) (ports.SpeakerNomination, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return ports.SpeakerNomination{}, err
	}

	row := nominationModel(nomination)
	if strings.TrimSpace(row.ID) == "" {
		row.ID = uuid.NewString()
	}

	if err := db.Create(&row).Error; err != nil {
		return ports.SpeakerNomination{}, errs.Wrap(err, "insert nomination")
	}
	return mapNomination(row), nil
}

func (r *SpeakerRepository) UpdateApplicationStatus(ctx context.Context, id string, status string) error {
	return r.updateApplicationColumns(ctx, id, map[string]any{"status": status}, "update application status")
}

func (r *SpeakerRepository) UpdateNominationStatus(ctx context.Context, id string, status string) error {
	return r.updateNominationColumns(ctx, id, map[string]any{"status": status}, "update nomination status")
}

func (r *SpeakerRepository) UpdateApplicationRating(ctx context.Context, id string, rating int) error {
	return r.updateApplicationColumns(ctx, id, map[string]any{"rating": rating}, "update application rating")
}

func (r *SpeakerRepository) UpdateNominationRating(ctx context.Context, id string, rating int) error {
	return r.updateNominationColumns(ctx, id, map[string]any{"rating": rating}, "update nomination rating")
}

func (r *SpeakerRepository) UpdateApplicationNotes(ctx context.Context, id string, notes string) error {
	return r.updateApplicationColumns(ctx, id, map[string]any{"notes": notes}, "update application notes")
}

func (r *SpeakerRepository) UpdateNominationNotes(ctx context.Context, id string, notes string) error {
	return r.updateNominationColumns(ctx, id, map[string]any{"notes": notes}, "update nomination notes")
}

func (r *SpeakerRepository) SetApplicationFlagged(ctx context.Context, id string, flagged bool) error {
	return r.updateApplicationColumns(ctx, id, map[string]any{"flagged": flagged}, "set application flag")
}

func (r *SpeakerRepository) SetNominationFlagged(ctx context.Context, id string, flagged bool) error {
	return r.updateNominationColumns(ctx, id, map[string]any{"flagged": flagged}, "set nomination flag")
}

func (r *SpeakerRepository) UpdateApplicationDetails(ctx context.Context, application ports.SpeakerApplication) error {
	return r.updateApplicationColumns(ctx, application.ID, map[string]any{
		"full_name":              application.FullName,
		"topic":                  application.Topic,
		"email":                  application.Email,
		"mobile_phone":           application.MobilePhone,
		"wechat_id":              application.WeChatID,
		"gender":                 application.Gender,
		"job":                    application.Job,
		"rehearsal_availability": application.RehearsalAvailability,
		"common_belief":          application.CommonBelief,
		"core_idea":              application.CoreIdea,
		"personal_insight":       application.PersonalInsight,
		"potential_impact":       application.PotentialImpact,
		"prior_ted_talk":         application.PriorTEDTalk,
	}, "update application details")
}

func (r *SpeakerRepository) UpdateNominationDetails(ctx context.Context, nomination ports.SpeakerNomination) error {
	return r.updateNominationColumns(ctx, nomination.ID, map[string]any{
		"full_name":      nomination.FullName,
		"topic":          nomination.Topic,
		"contact":        nomination.Contact,
		"nominated_by":   nomination.NominatedBy,
		"prior_ted_talk": nomination.PriorTEDTalk,
	}, "update nomination details")
}

func (r *SpeakerRepository) updateApplicationColumns(ctx context.Context, id string, columns map[string]any, action string) error {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return err
	}

	result := db.Model(&model.SpeakerApplication{}).Where("id = ?", id).Updates(columns)
	if result.Error != nil {
		return errs.Wrap(result.Error, action)
	}
	if result.RowsAffected == 0 {
		return ports.ErrEntryNotFound
	}
	return nil
}

func (r *SpeakerRepository) updateNominationColumns(ctx context.Context, id string, columns map[string]any, action string) error {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return err
	}

	result := db.Model(&model.SpeakerNomination{}).Where("id = ?", id).Updates(columns)
	if result.Error != nil {
		return errs.Wrap(result.Error, action)
	}
	if result.RowsAffected == 0 {
		return ports.ErrEntryNotFound
	}
	return nil
}

func mapApplication(row model.SpeakerApplication) ports.SpeakerApplication {
	return ports.SpeakerApplication{
		ID:                    row.ID,
		FullName:              row.FullName,
		Topic:                 row.Topic,
		Email:                 row.Email,
		MobilePhone:           row.MobilePhone,
		WeChatID:              row.WeChatID,
		Gender:                row.Gender,
		Job:                   row.Job,
		RehearsalAvailability: row.RehearsalAvailability,
		CommonBelief:          row.CommonBelief,
		CoreIdea:              row.CoreIdea,
		PersonalInsight:       row.PersonalInsight,
		PotentialImpact:       row.PotentialImpact,
		PriorTEDTalk:          row.PriorTEDTalk,
		Status:                row.Status,
		Flagged:               row.Flagged,
		Notes:                 row.Notes,
		Rating:                row.Rating,
		SubmittedAt:           row.SubmittedAt,
	}
}

func applicationModel(item ports.SpeakerApplication) model.SpeakerApplication {
	return model.SpeakerApplication{
		ID:                    item.ID,
		FullName:              item.FullName,
		Topic:                 item.Topic,
		Email:                 item.Email,
		MobilePhone:           item.MobilePhone,
		WeChatID:              item.WeChatID,
		Gender:                item.Gender,
		Job:                   item.Job,
		RehearsalAvailability: item.RehearsalAvailability,
		CommonBelief:          item.CommonBelief,
		CoreIdea:              item.CoreIdea,
		PersonalInsight:       item.PersonalInsight,
		PotentialImpact:       item.PotentialImpact,
		PriorTEDTalk:          item.PriorTEDTalk,
		Status:                item.Status,
		Flagged:               item.Flagged,
		Notes:                 item.Notes,
		Rating:                item.Rating,
		SubmittedAt:           item.SubmittedAt,
	}
}

func mapNomination(row model.SpeakerNomination) ports.SpeakerNomination {
	return ports.SpeakerNomination{
		ID:           row.ID,
		FullName:     row.FullName,
		Topic:        row.Topic,
		Contact:      row.Contact,
		NominatedBy:  row.NominatedBy,
		PriorTEDTalk: row.PriorTEDTalk,
		Status:       row.Status,
		Flagged:      row.Flagged,
		Notes:        row.Notes,
		Rating:       row.Rating,
		SubmittedAt:  row.SubmittedAt,
	}
}

func nominationModel(item ports.SpeakerNomination) model.SpeakerNomination {
	return model.SpeakerNomination{
		ID:           item.ID,
		FullName:     item.FullName,
		Topic:        item.Topic,
		Contact:      item.Contact,
		NominatedBy:  item.NominatedBy,
		PriorTEDTalk: item.PriorTEDTalk,
		Status:       item.Status,
		Flagged:      item.Flagged,
		Notes:        item.Notes,
		Rating:       item.Rating,
		SubmittedAt:  item.SubmittedAt,
	}
}
