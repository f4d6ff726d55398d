package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// Metadata keys of a ContentSection. They are never stored inside Fields.
const (
	KeySection   = "section"
	KeyCreatedAt = "createdAt"
	KeyUpdatedAt = "updatedAt"
)

// ContentSection is one editable block of site content keyed by Section.
// Fields is schema-less; each consumer reads the subset it knows about.
type ContentSection struct {
	Section   string            `gorm:"size:128;primaryKey" bson:"section"`
	Fields    datatypes.JSONMap `bson:"fields"`
	CreatedAt time.Time         `bson:"createdAt"`
	UpdatedAt time.Time         `bson:"updatedAt"`
}

// IsReservedKey reports whether key collides with document metadata.
func IsReservedKey(key string) bool {
	switch key {
	case KeySection, KeyCreatedAt, KeyUpdatedAt, "_id", "id":
		return true
	}
	return false
}

// MarshalJSON flattens the document: {"section": ..., <fields>, "createdAt": ..., "updatedAt": ...}.
func (s ContentSection) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(s.Fields)+3)
	for k, v := range s.Fields {
		out[k] = v
	}
	out[KeySection] = s.Section
	out[KeyCreatedAt] = s.CreatedAt
	out[KeyUpdatedAt] = s.UpdatedAt
	return json.Marshal(out)
}

func (s *ContentSection) UnmarshalJSON(b []byte) error {
	raw := map[string]json.RawMessage{}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	var out ContentSection
	if v, ok := raw[KeySection]; ok {
		if err := json.Unmarshal(v, &out.Section); err != nil {
			return err
		}
	}
	if v, ok := raw[KeyCreatedAt]; ok {
		if err := json.Unmarshal(v, &out.CreatedAt); err != nil {
			return err
		}
	}
	if v, ok := raw[KeyUpdatedAt]; ok {
		if err := json.Unmarshal(v, &out.UpdatedAt); err != nil {
			return err
		}
	}
	out.Fields = datatypes.JSONMap{}
	for k, v := range raw {
		if IsReservedKey(k) {
			continue
		}
		var val any
		if err := json.Unmarshal(v, &val); err != nil {
			return err
		}
		out.Fields[k] = val
	}
	*s = out
	return nil
}
