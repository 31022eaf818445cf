package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Element types.
const (
	ElementText  = "text"
	ElementImage = "image"
	ElementQR    = "qr"
)

// Border styles. BorderSides narrows "one" (left/right/top/bottom) and
// "two" (vertical/horizontal).
const (
	BorderNone = "none"
	BorderOne  = "one"
	BorderTwo  = "two"
	BorderAll  = "all"
)

const (
	DefaultBackgroundColor   = "#ffffff"
	DefaultBackgroundOpacity = 1.0
	DefaultBorderColor       = "#000000"
	DefaultBorderWidth       = 1.0
)

// Canvas is the card surface of a template.
type Canvas struct {
	Width             *float64 `json:"width" validate:"required"`
	Height            *float64 `json:"height" validate:"required"`
	BackgroundColor   string   `json:"backgroundColor"`
	BackgroundOpacity *float64 `json:"backgroundOpacity" validate:"omitempty,min=0,max=1"`
	BackgroundImage   *string  `json:"backgroundImage"`
	BorderStyle       string   `json:"borderStyle" validate:"omitempty,oneof=none one two all"`
	BorderWidth       *float64 `json:"borderWidth"`
	BorderColor       string   `json:"borderColor"`
	BorderSides       string   `json:"borderSides"`
}

// Element is one positioned item on the canvas. Type decides which of the
// optional fields are meaningful.
type Element struct {
	ID     string   `json:"id"`
	Type   string   `json:"type" validate:"required,oneof=text image qr"`
	X      *float64 `json:"x,omitempty"`
	Y      *float64 `json:"y,omitempty"`
	ZIndex *float64 `json:"zIndex,omitempty"`

	// text
	Value      *string  `json:"value,omitempty"`
	Label      *string  `json:"label,omitempty"`
	FontSize   *float64 `json:"fontSize,omitempty"`
	FontFamily *string  `json:"fontFamily,omitempty"`
	FontWeight *string  `json:"fontWeight,omitempty"`
	Color      *string  `json:"color,omitempty"`
	Align      *string  `json:"align,omitempty"`

	// image
	Src          *string  `json:"src,omitempty"`
	Width        *float64 `json:"width,omitempty"`
	Height       *float64 `json:"height,omitempty"`
	BorderRadius *float64 `json:"borderRadius,omitempty"`

	// qr
	Data *string  `json:"data,omitempty"`
	Size *float64 `json:"size,omitempty"`

	BorderStyle string   `json:"borderStyle" validate:"omitempty,oneof=none one two all"`
	BorderWidth *float64 `json:"borderWidth"`
	BorderColor string   `json:"borderColor"`
	BorderSides string   `json:"borderSides"`
}

// TemplateData is the full layout: canvas plus elements in stacking order.
type TemplateData struct {
	Canvas   *Canvas   `json:"canvas" validate:"required"`
	Elements []Element `json:"elements" validate:"dive"`
}

// Clone returns a copy of d that shares no canvas or element storage with it.
func (d TemplateData) Clone() TemplateData {
	out := TemplateData{}
	if d.Canvas != nil {
		c := *d.Canvas
		out.Canvas = &c
	}
	if d.Elements != nil {
		out.Elements = make([]Element, len(d.Elements))
		copy(out.Elements, d.Elements)
	}
	return out
}

// ApplyDefaults fills unset canvas and element fields with their defaults.
func (d *TemplateData) ApplyDefaults() {
	if d.Canvas != nil {
		c := d.Canvas
		if c.BackgroundColor == "" {
			c.BackgroundColor = DefaultBackgroundColor
		}
		if c.BackgroundOpacity == nil {
			c.BackgroundOpacity = ptr(DefaultBackgroundOpacity)
		}
		c.BorderStyle, c.BorderWidth, c.BorderColor = borderDefaults(c.BorderStyle, c.BorderWidth, c.BorderColor)
	}
	if d.Elements == nil {
		d.Elements = []Element{}
	}
	for i := range d.Elements {
		e := &d.Elements[i]
		e.BorderStyle, e.BorderWidth, e.BorderColor = borderDefaults(e.BorderStyle, e.BorderWidth, e.BorderColor)
	}
}

func borderDefaults(style string, width *float64, color string) (string, *float64, string) {
	if style == "" {
		style = BorderNone
	}
	if width == nil {
		width = ptr(DefaultBorderWidth)
	}
	if color == "" {
		color = DefaultBorderColor
	}
	return style, width, color
}

func ptr[T any](v T) *T { return &v }

// Template is a reusable ID card layout.
type Template struct {
	ID           uuid.UUID                        `json:"id" gorm:"type:char(36);primaryKey"`
	Name         string                           `json:"name" gorm:"size:255;not null;uniqueIndex"`
	Thumbnail    *string                          `json:"thumbnail" gorm:"type:text"`
	TemplateData datatypes.JSONType[TemplateData] `json:"templateData" gorm:"not null"`
	CreatedAt    time.Time                        `json:"createdAt" gorm:"index"`
	UpdatedAt    time.Time                        `json:"updatedAt"`
}

// BeforeCreate sets UUID before creating the record.
func (t *Template) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// TemplateSummary is the list projection of a template, without its layout.
type TemplateSummary struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Thumbnail *string   `json:"thumbnail"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TemplateView is a template reference as embedded in a record. Shallow views
// only carry id and name.
type TemplateView struct {
	ID           uuid.UUID     `json:"id"`
	Name         string        `json:"name"`
	Thumbnail    *string       `json:"thumbnail,omitempty"`
	TemplateData *TemplateData `json:"templateData,omitempty"`
	CreatedAt    *time.Time    `json:"createdAt,omitempty"`
	UpdatedAt    *time.Time    `json:"updatedAt,omitempty"`
}

// ShallowView returns the id+name view of t.
func ShallowView(id uuid.UUID, name string) *TemplateView {
	return &TemplateView{ID: id, Name: name}
}

// FullView returns the complete view of t.
func FullView(t *Template) *TemplateView {
	data := t.TemplateData.Data()
	createdAt, updatedAt := t.CreatedAt, t.UpdatedAt
	return &TemplateView{
		ID:           t.ID,
		Name:         t.Name,
		Thumbnail:    t.Thumbnail,
		TemplateData: &data,
		CreatedAt:    &createdAt,
		UpdatedAt:    &updatedAt,
	}
}
