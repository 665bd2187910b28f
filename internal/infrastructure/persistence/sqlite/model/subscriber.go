package model

// Subscriber is a weekly-alert email recipient.
type Subscriber struct {
	ID        string `gorm:"column:id;primaryKey"`
	Email     string `gorm:"column:email;uniqueIndex;not null"`
	Sign      string `gorm:"column:sign;not null"`
	Language  string `gorm:"column:language;not null"`
	CreatedAt string `gorm:"column:created_at;not null"`
}

func (Subscriber) TableName() string { return "subscribers" }
