package domain

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// StringList stores the DB json value as a []string but marshals to JSON as
// an array so API consumers get ["a","b"] not "[\"a\",\"b\"]".
type StringList []string

// Scan implements sql.Scanner for reading from DB (json column).
func (s *StringList) Scan(value interface{}) error {
	if value == nil {
		*s = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	default:
		return errors.New("unsupported type for StringList")
	}
}

// Value implements driver.Valuer for writing to DB.
func (s StringList) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	b, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// PropertyTypeList stores a buyer's property-type preferences as a JSON
// column. Empty means match all types.
type PropertyTypeList []PropertyType

func (p *PropertyTypeList) Scan(value interface{}) error {
	if value == nil {
		*p = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, p)
	case string:
		return json.Unmarshal([]byte(v), p)
	default:
		return errors.New("unsupported type for PropertyTypeList")
	}
}

func (p PropertyTypeList) Value() (driver.Value, error) {
	if p == nil {
		return "[]", nil
	}
	b, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Accepts reports whether the preference set admits the given type.
func (p PropertyTypeList) Accepts(t PropertyType) bool {
	if len(p) == 0 {
		return true
	}
	for _, pt := range p {
		if pt == t {
			return true
		}
	}
	return false
}
