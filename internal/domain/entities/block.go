package entities

import "time"

// Block records that one profile does not want to be matched with another
type Block struct {
	ID               int64     `json:"id"`
	BlockerProfileID int64     `json:"blockerId"`
	BlockedProfileID int64     `json:"blockedId"`
	CreatedAt        time.Time `json:"createdAt"`
}
