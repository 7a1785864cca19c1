package entities

import (
	"strings"
	"time"

	"github.com/volatiletech/null/v8"
)

// DefaultSearchType is used when a submission leaves the meeting type blank
const DefaultSearchType = "Dejt"

// Profile represents a member profile
type Profile struct {
	ID           int64     `json:"id"`
	FullName     string    `json:"fullName"`
	Email        string    `json:"email,omitempty"`
	Phone        string    `json:"phone,omitempty"`
	Gender       string    `json:"gender,omitempty"`
	Preference   string    `json:"preference,omitempty"`
	City         string    `json:"city"`
	FBLink       string    `json:"fbLink,omitempty"`
	SearchType   string    `json:"searchType"`
	ConsentGDPR  bool      `json:"consentGdpr"`
	IsPaused     bool      `json:"isPaused"`
	IsBanned     bool      `json:"isBanned"`
	LastActiveAt null.Time `json:"lastActiveAt,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// IsEligible reports whether the profile may take part in matching
func (p *Profile) IsEligible() bool {
	return p.ConsentGDPR && !p.IsPaused && !p.IsBanned
}

// FirstName returns the first whitespace-delimited token of the full name
func (p *Profile) FirstName() string {
	fields := strings.Fields(p.FullName)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// ProfileSummary is the admin listing view of a profile
type ProfileSummary struct {
	ID         int64  `json:"id"`
	FullName   string `json:"fullName"`
	City       string `json:"city"`
	SearchType string `json:"searchType"`
}

// SubmitProfileInput is a profile submission. ConsentGDPR is set only when the
// submitted value was the boolean true.
type SubmitProfileInput struct {
	FullName    string
	Email       string
	Phone       string
	Gender      string
	Preference  string
	City        string
	FBLink      string
	SearchType  string
	ConsentGDPR bool
}
