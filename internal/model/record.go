package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"idcard/internal/attr"
)

// UnknownDisplayName is shown for records without a "name" attribute.
const UnknownDisplayName = "Unknown User"

// Record is one person's data bound to a template by reference. TemplateID is
// not a foreign key: it may point at a template that no longer exists.
type Record struct {
	ID           uuid.UUID     `json:"id" gorm:"type:char(36);primaryKey"`
	Data         attr.Bag      `json:"data" gorm:"not null"`
	TemplateID   uuid.UUID     `json:"templateId" gorm:"type:char(36);not null;index"`
	TemplateName string        `json:"templateName,omitempty" gorm:"size:255"`
	Template     *TemplateView `json:"template" gorm:"-"`
	CreatedAt    time.Time     `json:"createdAt" gorm:"index"`
	UpdatedAt    time.Time     `json:"updatedAt"`
}

// BeforeCreate sets UUID before creating the record.
func (r *Record) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	if r.Data == nil {
		r.Data = attr.Bag{}
	}
	return nil
}

// DisplayName returns data["name"], or UnknownDisplayName when it is missing.
func (r *Record) DisplayName() string {
	if v, ok := r.Data.Get("name"); ok && !v.IsNull() {
		if text := v.Text(); text != "" {
			return text
		}
	}
	return UnknownDisplayName
}

// MarshalJSON adds the derived displayName.
func (r Record) MarshalJSON() ([]byte, error) {
	type plain Record
	return json.Marshal(struct {
		plain
		DisplayName string `json:"displayName"`
	}{plain(r), r.DisplayName()})
}
