package model

import (
	"time"

	"github.com/google/uuid"
)

// AttachmentDocuments holds the two slots of an attachment.
type AttachmentDocuments struct {
	Solicitude *string `json:"solicitudeDocument,omitempty"`
	Acceptance *string `json:"acceptanceDocument,omitempty"`
}

func (d *AttachmentDocuments) Slot(key SlotKey) (string, bool) {
	switch key {
	case SlotSolicitude:
		return slotValue(d.Solicitude)
	case SlotAcceptance:
		return slotValue(d.Acceptance)
	}
	return "", false
}

func (d *AttachmentDocuments) SetSlot(key SlotKey, filename *string) {
	switch key {
	case SlotSolicitude:
		d.Solicitude = filename
	case SlotAcceptance:
		d.Acceptance = filename
	}
}

// Attachment authorizes placements of a specialty at a hospital for a period.
// Its relation to mobilities is derived on read.
type Attachment struct {
	ID          uuid.UUID           `json:"id"`
	HospitalID  uuid.UUID           `json:"hospitalId"`
	SpecialtyID uuid.UUID           `json:"specialtyId"`
	InitialDate time.Time           `json:"initialDate"`
	FinalDate   time.Time           `json:"finalDate"`
	Documents   AttachmentDocuments `json:"documents"`
	CreatedAt   time.Time           `json:"createdAt"`
}

// Interval returns the authorized period.
func (a Attachment) Interval() Interval {
	return Interval{InitialDate: a.InitialDate, FinalDate: a.FinalDate}
}
