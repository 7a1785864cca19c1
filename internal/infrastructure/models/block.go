package models

import "time"

type Block struct {
	ID               int64 `gorm:"primaryKey;autoIncrement"`
	BlockerProfileID int64 `gorm:"not null;uniqueIndex:ux_blocks_pair,priority:1"`
	BlockedProfileID int64 `gorm:"not null;uniqueIndex:ux_blocks_pair,priority:2"`
	CreatedAt        time.Time
}

func (Block) TableName() string {
	return "blocks"
}
