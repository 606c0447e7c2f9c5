package store

import (
	"encoding/json"
	"fmt"
	"maps"
	"strings"
)

// IDField is the record field holding the identifier.
const IDField = "id"

// Record is a JSON object persisted as one file.
type Record map[string]any

// ID returns the record identifier, or "" if it has none.
func (r Record) ID() string {
	if r == nil {
		return ""
	}
	id, _ := r[IDField].(string)
	return id
}

// SetID assigns the identifier.
func (r Record) SetID(id string) {
	r[IDField] = id
}

// IsNew reports whether the record was never persisted.
func (r Record) IsNew() bool {
	return r.ID() == ""
}

// Clone returns a shallow copy. Nested values are shared.
func (r Record) Clone() Record {
	if r == nil {
		return Record{}
	}
	return maps.Clone(r)
}

func marshalRecord(r Record) ([]byte, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal record: %w", err)
	}
	return data, nil
}

// CheckID fails with ErrInvalidID when the record carries an id that is not
// a string. A missing or null id is fine: the record is new.
func (r Record) CheckID() error {
	if v, ok := r[IDField]; ok && v != nil {
		if _, isString := v.(string); !isString {
			return fmt.Errorf("id of type %T: %w", v, ErrInvalidID)
		}
	}
	return nil
}

// validateName checks that s can be used as a single path element that does
// not collide with temp files.
func validateName(s string) bool {
	if s == "" || s == "." || s == ".." || strings.HasPrefix(s, TempFilePrefix) {
		return false
	}
	return !strings.ContainsAny(s, `/\`+"\x00")
}
