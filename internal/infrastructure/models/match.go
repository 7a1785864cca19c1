package models

import "time"

type Match struct {
	ID         int64     `gorm:"primaryKey;autoIncrement"`
	ProfileAID int64     `gorm:"column:profile_a_id;not null;index"`
	ProfileBID int64     `gorm:"column:profile_b_id;not null;index"`
	PairKey    *string   `gorm:"type:varchar(50);uniqueIndex:ux_matches_pair"`
	City       string    `gorm:"type:varchar(200)"`
	SearchType string    `gorm:"type:varchar(50)"`
	Status     string    `gorm:"type:varchar(20);not null;default:'Pending';index"`
	CreatedAt  time.Time `gorm:"not null"`
	ExpiresAt  *time.Time
}

func (Match) TableName() string {
	return "matches"
}
