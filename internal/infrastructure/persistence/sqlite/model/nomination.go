package model

type SpeakerNomination struct {
	ID           string `gorm:"column:id;type:text;primaryKey"`
	FullName     string `gorm:"column:full_name;type:text;not null"`
	Topic        string `gorm:"column:topic;type:text;not null"`
	Contact      string `gorm:"column:contact;type:text;not null"`
	NominatedBy  string `gorm:"column:nominated_by;type:text;not null"`
	PriorTEDTalk string `gorm:"column:prior_ted_talk;type:text"`
	Status       string `gorm:"column:status;type:text;not null;index"`
	Flagged      bool   `gorm:"column:flagged;not null;default:0"`
	Notes        string `gorm:"column:notes;type:text;not null;default:''"`
	Rating       int    `gorm:"column:rating;not null;default:0"`
	SubmittedAt  string `gorm:"column:submitted_at;type:text;not null"`
}

func (SpeakerNomination) TableName() string {
	return "speaker_nominations"
}
