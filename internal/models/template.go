package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FieldType represents the input type of a template field
type FieldType string

const (
	FieldTypeNumber FieldType = "number"
	FieldTypeSelect FieldType = "select"
	FieldTypeText   FieldType = "text"
)

// TemplateField describes one field of a result form. Number fields carry an
// optional min/max range; going outside it warns rather than rejects, since
// clinical values can be legitimately abnormal.
type TemplateField struct {
	Name        string    `json:"name"`
	Label       string    `json:"label"`
	Type        FieldType `json:"type"`
	Min         *float64  `json:"min,omitempty"`
	Max         *float64  `json:"max,omitempty"`
	Step        float64   `json:"step,omitempty"`
	Unit        string    `json:"unit,omitempty"`
	NormalRange string    `json:"normal_range,omitempty"`
	Options     []string  `json:"options,omitempty"`
	Required    bool      `json:"required"`
}

// ResultTemplate is a data-driven schema describing the fields of a specific
// lab/dental result form, fetched by technicians instead of hard-coding forms
// per test type.
type ResultTemplate struct {
	ID       uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name     string          `gorm:"type:varchar(255);not null" json:"name"`
	Category OrderCategory   `gorm:"type:varchar(20);not null;index" json:"category"`
	Fields   []TemplateField `gorm:"serializer:json" json:"fields"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName overrides the table name
func (ResultTemplate) TableName() string {
	return "result_templates"
}

// BeforeCreate hook
func (t *ResultTemplate) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// TemplateRequest creates or replaces a result template
type TemplateRequest struct {
	Name     string          `json:"name"`
	Category OrderCategory   `json:"category"`
	Fields   []TemplateField `json:"fields"`
}
