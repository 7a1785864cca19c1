package usecases

import (
	"strings"

	"motes-generator.backend/internal/domain/entities"
)

// anyGenderTokens accept every gender when found in a preference
var anyGenderTokens = []string{"båda", "alla", "both", "all"}

// PairIndex is an unordered lookup set of profile pairs
type PairIndex struct {
	pairs map[entities.ProfilePair]struct{}
}

// NewPairIndex indexes pairs in both directions
func NewPairIndex(pairs []entities.ProfilePair) *PairIndex {
	idx := &PairIndex{pairs: make(map[entities.ProfilePair]struct{}, len(pairs)*2)}
	for _, p := range pairs {
		idx.pairs[p] = struct{}{}
		idx.pairs[entities.ProfilePair{A: p.B, B: p.A}] = struct{}{}
	}
	return idx
}

// Has reports whether a and b appear together in either order
func (idx *PairIndex) Has(a, b int64) bool {
	if idx == nil {
		return false
	}
	_, ok := idx.pairs[entities.ProfilePair{A: a, B: b}]
	return ok
}

// Len returns the number of unordered pairs
func (idx *PairIndex) Len() int {
	if idx == nil {
		return 0
	}
	return len(idx.pairs) / 2
}

// PreferenceAccepts reports whether preference is satisfied by gender.
// An empty preference accepts anyone.
func PreferenceAccepts(preference, gender string) bool {
	p := strings.ToLower(strings.TrimSpace(preference))
	if p == "" {
		return true
	}
	for _, token := range anyGenderTokens {
		if strings.Contains(p, token) {
			return true
		}
	}
	return strings.Contains(p, strings.ToLower(strings.TrimSpace(gender)))
}

func sameNonEmpty(a, b string) bool {
	return a != "" && b != "" && strings.EqualFold(a, b)
}

// IsCompatible applies the matching rules to a and b: same city, same search
// type, no block either way, never matched before, mutual preference.
func IsCompatible(a, b *entities.Profile, blocks, matched *PairIndex) bool {
	if a == nil || b == nil || a.ID == b.ID {
		return false
	}
	if !sameNonEmpty(a.City, b.City) {
		return false
	}
	if !sameNonEmpty(a.SearchType, b.SearchType) {
		return false
	}
	if blocks.Has(a.ID, b.ID) {
		return false
	}
	if matched.Has(a.ID, b.ID) {
		return false
	}
	return PreferenceAccepts(a.Preference, b.Gender) && PreferenceAccepts(b.Preference, a.Gender)
}

// CompatiblePairs enumerates every unordered pair of profiles and keeps the
// compatible ones, in enumeration order.
func CompatiblePairs(profiles []*entities.Profile, blocks, matched *PairIndex) [][2]*entities.Profile {
	var out [][2]*entities.Profile
	for i := 0; i < len(profiles); i++ {
		for j := i + 1; j < len(profiles); j++ {
			if IsCompatible(profiles[i], profiles[j], blocks, matched) {
				out = append(out, [2]*entities.Profile{profiles[i], profiles[j]})
			}
		}
	}
	return out
}
