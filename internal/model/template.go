package model

import (
	"time"

	"github.com/google/uuid"
)

// TemplateDocuments holds the single DOCX slot of a template.
type TemplateDocuments struct {
	Template *string `json:"templateDocument,omitempty"`
}

func (d *TemplateDocuments) Slot(key SlotKey) (string, bool) {
	if key != SlotTemplate {
		return "", false
	}
	return slotValue(d.Template)
}

func (d *TemplateDocuments) SetSlot(key SlotKey, filename *string) {
	if key == SlotTemplate {
		d.Template = filename
	}
}

// Template is the letter template registered for a (kind, slot) pair, e.g.
// the solicitude letter of optional mobilities.
type Template struct {
	ID           uuid.UUID         `json:"id"`
	DocumentKind Category          `json:"documentKind"`
	SlotKey      SlotKey           `json:"slotKey"`
	Documents    TemplateDocuments `json:"documents"`
	UpdatedAt    time.Time         `json:"updatedAt"`
}
