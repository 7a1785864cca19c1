package entities

import (
	"time"

	"github.com/volatiletech/null/v8"
)

// OptInAnswer is a party's response to a proposed match
type OptInAnswer string

const (
	OptInAnswerYes OptInAnswer = "yes"
	OptInAnswerNo  OptInAnswer = "no"
)

// MatchOptIn correlates one profile's response token with one match
type MatchOptIn struct {
	ID         int64       `json:"id"`
	MatchID    int64       `json:"matchId"`
	ProfileID  int64       `json:"profileId"`
	Token      string      `json:"-"`
	Answer     null.String `json:"answer,omitempty"`
	AnsweredAt null.Time   `json:"answeredAt,omitempty"`
	CreatedAt  time.Time   `json:"createdAt"`
}
