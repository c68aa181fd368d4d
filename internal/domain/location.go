package domain

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"strings"
)

// Location identifies a market. Matching compares city+state
// case-insensitively; zip and country are carried for display only.
type Location struct {
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zip_code,omitempty"`
	Country string `json:"country,omitempty"`
}

// SameCityState reports a full market match (case-insensitive city+state).
func (l Location) SameCityState(o Location) bool {
	return strings.EqualFold(strings.TrimSpace(l.City), strings.TrimSpace(o.City)) &&
		l.SameState(o)
}

// SameState reports a state-level match only.
func (l Location) SameState(o Location) bool {
	return strings.EqualFold(strings.TrimSpace(l.State), strings.TrimSpace(o.State))
}

// LocationList stores an ordered list of market preferences as a JSON column
// (first entry is the primary market).
type LocationList []Location

// Scan implements sql.Scanner for reading from DB (json column).
func (l *LocationList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return errors.New("unsupported type for LocationList")
	}
}

// Value implements driver.Valuer for writing to DB.
func (l LocationList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// States returns the distinct (lowercased) states across the preferences,
// used to pre-index off-platform candidates by state.
func (l LocationList) States() []string {
	seen := make(map[string]struct{}, len(l))
	var out []string
	for _, loc := range l {
		s := strings.ToLower(strings.TrimSpace(loc.State))
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
