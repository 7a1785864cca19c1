package utils

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// ParsePositiveID parses a decimal id string. It reports false for anything
// that is not a whole number greater than zero.
func ParsePositiveID(raw string) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// FlexibleID accepts a JSON number or a numeric string
type FlexibleID struct {
	Value int64
	Valid bool
}

// UnmarshalJSON never fails; malformed input leaves Valid false
func (f *FlexibleID) UnmarshalJSON(data []byte) error {
	f.Value, f.Valid = 0, false

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		f.Value, f.Valid = ParsePositiveID(s)
		return nil
	}

	var n float64
	if err := json.Unmarshal(data, &n); err != nil {
		return nil
	}
	if n <= 0 || n != math.Trunc(n) || n >= math.MaxInt64 {
		return nil
	}
	f.Value, f.Valid = int64(n), true
	return nil
}
