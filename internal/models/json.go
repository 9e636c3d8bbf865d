package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// StringList is a []string stored as a JSON array in a TEXT column.
type StringList []string

// Value implements driver.Valuer, serializing the list to JSON.
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, fmt.Errorf("marshal string list: %w", err)
	}
	return string(b), nil
}

// Scan implements sql.Scanner, decoding a JSON array from the column.
func (l *StringList) Scan(src any) error {
	return scanJSON(src, l)
}

// ParamMap is a map[string]any stored as a JSON object in a TEXT column.
// Used for generation parameters (temperature, max_tokens, seed, steps, ...).
type ParamMap map[string]any

// Value implements driver.Valuer, serializing the map to JSON.
func (m ParamMap) Value() (driver.Value, error) {
	if m == nil {
		m = ParamMap{}
	}
	b, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("marshal param map: %w", err)
	}
	return string(b), nil
}

// Scan implements sql.Scanner, decoding a JSON object from the column.
func (m *ParamMap) Scan(src any) error {
	return scanJSON(src, m)
}

// scanJSON decodes a TEXT/BLOB column into dst. NULL leaves dst zeroed.
func scanJSON(src, dst any) error {
	switch v := src.(type) {
	case nil:
		return nil
	case string:
		return json.Unmarshal([]byte(v), dst)
	case []byte:
		return json.Unmarshal(v, dst)
	default:
		return fmt.Errorf("scan json: unsupported column type %T", src)
	}
}
