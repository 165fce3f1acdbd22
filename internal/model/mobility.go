package model

import (
	"time"

	"github.com/google/uuid"
)

// MobilityDocuments holds the slots of a mobility. Only the slots of the
// owning category are ever populated: obligatory mobilities use
// PresentationOffice and Evaluation, optional ones use all four.
type MobilityDocuments struct {
	Solicitude         *string `json:"solicitudeDocument,omitempty"`
	PresentationOffice *string `json:"presentationOfficeDocument,omitempty"`
	Acceptance         *string `json:"acceptanceDocument,omitempty"`
	Evaluation         *string `json:"evaluationDocument,omitempty"`
}

func (d *MobilityDocuments) field(key SlotKey) **string {
	switch key {
	case SlotSolicitude:
		return &d.Solicitude
	case SlotPresentationOffice:
		return &d.PresentationOffice
	case SlotAcceptance:
		return &d.Acceptance
	case SlotEvaluation:
		return &d.Evaluation
	}
	return nil
}

func (d *MobilityDocuments) Slot(key SlotKey) (string, bool) {
	f := d.field(key)
	if f == nil {
		return "", false
	}
	return slotValue(*f)
}

func (d *MobilityDocuments) SetSlot(key SlotKey, filename *string) {
	if f := d.field(key); f != nil {
		*f = filename
	}
}

// Mobility is a resident placement at a hospital. Kind is either
// CategoryObligatory or CategoryOptional.
type Mobility struct {
	ID                uuid.UUID         `json:"id"`
	Kind              Category          `json:"kind"`
	StudentID         uuid.UUID         `json:"studentId"`
	HospitalID        uuid.UUID         `json:"hospitalId"`
	RotationServiceID uuid.UUID         `json:"rotationServiceId"`
	InitialDate       time.Time         `json:"initialDate"`
	FinalDate         time.Time         `json:"finalDate"`
	Canceled          bool              `json:"canceled"`
	Documents         MobilityDocuments `json:"documents"`
	CreatedAt         time.Time         `json:"createdAt"`
}

// Interval returns the placement period.
func (m Mobility) Interval() Interval {
	return Interval{InitialDate: m.InitialDate, FinalDate: m.FinalDate}
}

// PlacementView is a mobility joined with its reference data. Specialty is
// the resident's specialty, reached through the student.
type PlacementView struct {
	ID              uuid.UUID         `json:"id"`
	Kind            Category          `json:"kind"`
	InitialDate     time.Time         `json:"initialDate"`
	FinalDate       time.Time         `json:"finalDate"`
	Canceled        bool              `json:"canceled"`
	Student         Student           `json:"student"`
	Hospital        Hospital          `json:"hospital"`
	RotationService RotationService   `json:"rotationService"`
	Specialty       Specialty         `json:"specialty"`
	Documents       MobilityDocuments `json:"documents"`

	SolicitudeAttachments []uuid.UUID `json:"solicitudeAttachments"`
	AcceptanceAttachments []uuid.UUID `json:"acceptanceAttachments"`
}

// Interval returns the placement period.
func (v PlacementView) Interval() Interval {
	return Interval{InitialDate: v.InitialDate, FinalDate: v.FinalDate}
}

// SpecialtyID is the specialty used to match attachments and to group reports.
func (v PlacementView) SpecialtyID() uuid.UUID {
	if v.Specialty.ID != uuid.Nil {
		return v.Specialty.ID
	}
	if v.Student.SpecialtyID != uuid.Nil {
		return v.Student.SpecialtyID
	}
	return v.RotationService.SpecialtyID
}
