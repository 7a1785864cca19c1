package entities

import (
	"fmt"
	"time"
)

// MatchStatus represents the lifecycle state of a match
type MatchStatus string

const (
	MatchStatusPending   MatchStatus = "Pending"
	MatchStatusConfirmed MatchStatus = "Confirmed"
	MatchStatusCancelled MatchStatus = "Cancelled"
	MatchStatusExpired   MatchStatus = "Expired"
)

// Match represents a generated pairing of two profiles
type Match struct {
	ID         int64       `json:"id"`
	ProfileAID int64       `json:"profileAId"`
	ProfileBID int64       `json:"profileBId"`
	City       string      `json:"city"`
	SearchType string      `json:"searchType"`
	Status     MatchStatus `json:"status"`
	CreatedAt  time.Time   `json:"createdAt"`
	ExpiresAt  time.Time   `json:"expiresAt"`
}

// ProfilePair is an ordered pair of profile ids
type ProfilePair struct {
	A int64
	B int64
}

// PairKey returns the order-independent key for two profile ids
func PairKey(a, b int64) string {
	if a > b {
		a, b = b, a
	}
	return fmt.Sprintf("%d:%d", a, b)
}

// Reasons reported when a generation run creates no match
const (
	ReasonNotEnoughProfiles = "Not enough eligible profiles"
	ReasonNoEligiblePair    = "No eligible pair found"
)

// MatchParticipant is the redacted view of one party
type MatchParticipant struct {
	ID        int64  `json:"id"`
	FirstName string `json:"firstName"`
}

// MatchSummary is returned to the caller of a generation run
type MatchSummary struct {
	MatchID    int64            `json:"matchId"`
	City       string           `json:"city"`
	SearchType string           `json:"searchType"`
	A          MatchParticipant `json:"a"`
	B          MatchParticipant `json:"b"`
}

// GenerationResult carries either the created match or the reason none was made
type GenerationResult struct {
	Match  *MatchSummary `json:"match"`
	Reason string        `json:"reason,omitempty"`
}

// ExpiryResult lists the matches moved to Expired by one sweep
type ExpiryResult struct {
	ExpiredCount    int     `json:"expiredCount"`
	ExpiredMatchIDs []int64 `json:"expiredMatchIds"`
}

// OptInResult is the match state after recording an answer
type OptInResult struct {
	MatchID int64       `json:"matchId"`
	Status  MatchStatus `json:"status"`
}
