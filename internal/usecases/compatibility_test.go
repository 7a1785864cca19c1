package usecases_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"motes-generator.backend/internal/domain/entities"
	"motes-generator.backend/internal/usecases"
)

func profile(id int64, city, searchType, gender, pref string) *entities.Profile {
	return &entities.Profile{ID: id, FullName: "P", City: city, SearchType: searchType, Gender: gender, Preference: pref, ConsentGDPR: true}
}

func TestPreferenceAccepts(t *testing.T) {
	cases := []struct {
		pref, gender string
		want         bool
	}{
		{"", "man", true},
		{"   ", "kvinna", true},
		{"kvinna", "Kvinna", true},
		{"Man", "man", true},
		{"kvinna", "man", false},
		{"båda", "man", true},
		{"Alla", "icke-binär", true},
		{"both", "woman", true},
		{"All genders", "man", true},
		{"kvinnor eller män", "man", false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, usecases.PreferenceAccepts(tc.pref, tc.gender), "%q accepts %q", tc.pref, tc.gender)
	}
}

func TestIsCompatible_Rules(t *testing.T) {
	none := usecases.NewPairIndex(nil)
	a := profile(1, "Lund", "Dejt", "kvinna", "")
	b := profile(2, "lund", "dejt", "man", "kvinna")

	assert.True(t, usecases.IsCompatible(a, b, none, none))
	assert.True(t, usecases.IsCompatible(b, a, none, none), "symmetric")

	assert.False(t, usecases.IsCompatible(a, profile(3, "Malmö", "Dejt", "man", ""), none, none), "city differs")
	assert.False(t, usecases.IsCompatible(profile(4, "", "Dejt", "man", ""), profile(5, "", "Dejt", "man", ""), none, none), "empty city")
	assert.False(t, usecases.IsCompatible(a, profile(6, "Lund", "Vänskap", "man", ""), none, none), "search type differs")
	assert.False(t, usecases.IsCompatible(profile(7, "Lund", "", "man", ""), profile(8, "Lund", "", "man", ""), none, none), "empty search type")
	assert.False(t, usecases.IsCompatible(a, a, none, none), "self")
	assert.False(t, usecases.IsCompatible(a, profile(10, "Lund ", "Dejt", "man", ""), none, none), "city compared untrimmed")
	assert.False(t, usecases.IsCompatible(a, profile(11, "Lund", " Dejt", "man", ""), none, none), "search type compared untrimmed")

	blockedBA := usecases.NewPairIndex([]entities.ProfilePair{{A: 2, B: 1}})
	assert.False(t, usecases.IsCompatible(a, b, blockedBA, none), "block in either direction")

	matchedAB := usecases.NewPairIndex([]entities.ProfilePair{{A: 1, B: 2}})
	assert.False(t, usecases.IsCompatible(b, a, none, matchedAB), "previous match in either order")

	picky := profile(9, "Lund", "Dejt", "man", "man")
	assert.False(t, usecases.IsCompatible(a, picky, none, none), "preference must hold both ways")
}

func TestCompatiblePairs(t *testing.T) {
	profiles := []*entities.Profile{
		profile(1, "Lund", "Dejt", "kvinna", ""),
		profile(2, "Lund", "Dejt", "man", "kvinna"),
		profile(3, "Lund", "Dejt", "man", "kvinna"),
		profile(4, "Malmö", "Dejt", "kvinna", ""),
	}
	blocks := usecases.NewPairIndex([]entities.ProfilePair{{A: 3, B: 1}})
	matched := usecases.NewPairIndex(nil)

	pairs := usecases.CompatiblePairs(profiles, blocks, matched)
	// 2 and 3 are both men who only want women
	assert.Len(t, pairs, 1)
	assert.Equal(t, int64(1), pairs[0][0].ID)
	assert.Equal(t, int64(2), pairs[0][1].ID)
	assert.Equal(t, 1, blocks.Len())
}
