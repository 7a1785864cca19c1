package models

import "time"

type MatchOptIn struct {
	ID         int64   `gorm:"primaryKey;autoIncrement"`
	MatchID    int64   `gorm:"not null;index"`
	ProfileID  int64   `gorm:"not null"`
	Token      string  `gorm:"type:varchar(200);not null;uniqueIndex:ix_match_opt_in_token"`
	Answer     *string `gorm:"type:varchar(10)"`
	AnsweredAt *time.Time
	CreatedAt  time.Time
}

func (MatchOptIn) TableName() string {
	return "match_opt_in"
}
