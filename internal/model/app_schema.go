package model

import (
	"fmt"

	appErr "github.com/formdeck/formdeck/internal/pkg/errors"
)

type FormFieldType string

const (
	FieldTypeText       FormFieldType = "text"
	FieldTypeTextarea   FormFieldType = "textarea"
	FieldTypeNumber     FormFieldType = "number"
	FieldTypeDate       FormFieldType = "date"
	FieldTypeCheckbox   FormFieldType = "checkbox"
	FieldTypeSelect     FormFieldType = "select"
	FieldTypeRadio      FormFieldType = "radio"
	FieldTypeEmail      FormFieldType = "email"
	FieldTypeLookup     FormFieldType = "lookup"
	FieldTypeTable      FormFieldType = "table"
	FieldTypeUserSelect FormFieldType = "user_select"
)

func (t FormFieldType) Valid() bool {
	switch t {
	case FieldTypeText, FieldTypeTextarea, FieldTypeNumber, FieldTypeDate,
		FieldTypeCheckbox, FieldTypeSelect, FieldTypeRadio, FieldTypeEmail,
		FieldTypeLookup, FieldTypeTable, FieldTypeUserSelect:
		return true
	}
	return false
}

type FieldDefinition struct {
	Name      string              `json:"name"`
	Label     string              `json:"label"`
	Type      FormFieldType       `json:"type"`
	Required  bool                `json:"required,omitempty"`
	Unique    bool                `json:"unique,omitempty"`
	Component string              `json:"component,omitempty"`
	Options   []map[string]string `json:"options,omitempty"`
	// Lookup references point at another schema by id. They are plain
	// strings: no cross-schema referential integrity is enforced.
	LookupAppID          string      `json:"lookupAppId,omitempty"`
	LookupAppFieldID     string      `json:"lookupAppFieldId,omitempty"`
	LookupDisplayFieldID string      `json:"lookupDisplayFieldId,omitempty"`
	InitialValue         interface{} `json:"initialValue,omitempty"`
	Width                string      `json:"width,omitempty"`
	MinWidth             string      `json:"minWidth,omitempty"`
	MaxWidth             string      `json:"maxWidth,omitempty"`
	ReadOnly             bool        `json:"readOnly,omitempty"`
}

func (f FieldDefinition) Validate() error {
	if f.Name == "" {
		return fmt.Errorf("%w: field name required", appErr.ErrInvalid)
	}
	if f.Label == "" {
		return fmt.Errorf("%w: field label required", appErr.ErrInvalid)
	}
	if !f.Type.Valid() {
		return fmt.Errorf("%w: unknown field type %q", appErr.ErrInvalid, f.Type)
	}
	return nil
}

// AppSchema describes one dynamic application form. The id is assigned by
// the client on create and never changes afterwards.
type AppSchema struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description,omitempty"`
	Fields      []FieldDefinition `json:"fields"`
}

func (s AppSchema) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("%w: schema id required", appErr.ErrInvalid)
	}
	if s.Name == "" {
		return fmt.Errorf("%w: schema name required", appErr.ErrInvalid)
	}
	for i := range s.Fields {
		if err := s.Fields[i].Validate(); err != nil {
			return fmt.Errorf("field %d: %w", i, err)
		}
	}
	return nil
}
