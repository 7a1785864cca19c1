package models

import "time"

type Profile struct {
	ID           int64      `gorm:"primaryKey;autoIncrement"`
	FullName     string     `gorm:"type:varchar(200)"`
	Email        string     `gorm:"type:varchar(255)"`
	Phone        string     `gorm:"type:varchar(50)"`
	Gender       string     `gorm:"type:varchar(50)"`
	Preference   string     `gorm:"type:varchar(100)"`
	City         string     `gorm:"type:varchar(200);index"`
	FBLink       string     `gorm:"column:fb_link;type:varchar(500)"`
	SearchType   string     `gorm:"type:varchar(50)"`
	ConsentGDPR  bool       `gorm:"column:consent_gdpr;not null;default:false"`
	IsPaused     bool       `gorm:"not null;default:false"`
	IsBanned     bool       `gorm:"not null;default:false"`
	LastActiveAt *time.Time `gorm:"column:last_active_at"`
	CreatedAt    time.Time
}

func (Profile) TableName() string {
	return "profiles"
}
