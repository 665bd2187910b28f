package model

// NatalChart is a saved sun/rising combination keyed by email.
type NatalChart struct {
	ID        string `gorm:"column:id;primaryKey"`
	Email     string `gorm:"column:email;uniqueIndex;not null"`
	Sun       string `gorm:"column:sun;not null"`
	Rising    string `gorm:"column:rising"`
	BirthDate string `gorm:"column:birth_date"`
	UpdatedAt string `gorm:"column:updated_at;not null"`
}

func (NatalChart) TableName() string { return "natal_charts" }
