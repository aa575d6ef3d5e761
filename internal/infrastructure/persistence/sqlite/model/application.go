package model

type SpeakerApplication struct {
	ID                    string `gorm:"column:id;type:text;primaryKey"`
	FullName              string `gorm:"column:full_name;type:text;not null"`
	Topic                 string `gorm:"column:topic;type:text;not null"`
	Email                 string `gorm:"column:email;type:text;not null"`
	MobilePhone           string `gorm:"column:mobile_phone;type:text;not null"`
	WeChatID              string `gorm:"column:wechat_id;type:text"`
	Gender                string `gorm:"column:gender;type:text"`
	Job                   string `gorm:"column:job;type:text;not null"`
	RehearsalAvailability string `gorm:"column:rehearsal_availability;type:text"`
	CommonBelief          string `gorm:"column:common_belief;type:text"`
	CoreIdea              string `gorm:"column:core_idea;type:text"`
	PersonalInsight       string `gorm:"column:personal_insight;type:text"`
	PotentialImpact       string `gorm:"column:potential_impact;type:text"`
	PriorTEDTalk          string `gorm:"column:prior_ted_talk;type:text"`
	Status                string `gorm:"column:status;type:text;not null;index"`
	Flagged               bool   `gorm:"column:flagged;not null;default:0"`
	Notes                 string `gorm:"column:notes;type:text;not null;default:''"`
	Rating                int    `gorm:"column:rating;not null;default:0"`
	SubmittedAt           string `gorm:"column:submitted_at;type:text;not null"`
}

func (SpeakerApplication) TableName() string {
	return "speaker_applications"
}
