// Package repository defines data access for mobilities, attachments,
// templates and the reference entities they point at. Implementations live
// in subpackages and contain no business logic. Lookups of a missing row
// return sql.ErrNoRows; updates and deletes return the number of affected
// rows and leave its interpretation to the caller.
package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"mobilityapi/internal/model"
)

// PlacementQuery selects mobilities whose period overlaps [InitialDate, FinalDate].
type PlacementQuery struct {
	InitialDate     time.Time
	FinalDate       time.Time
	HospitalID      *uuid.UUID
	SpecialtyID     *uuid.UUID
	ExcludeCanceled bool
}

// AttachmentQuery selects attachments whose period overlaps [InitialDate, FinalDate].
type AttachmentQuery struct {
	InitialDate time.Time
	FinalDate   time.Time
	HospitalID  *uuid.UUID
	SpecialtyID *uuid.UUID
}

// SlotRepository is the persistence side of document slots.
type SlotRepository interface {
	// Documents returns the slot values of the record.
	Documents(ctx context.Context, id uuid.UUID) (model.DocumentSet, error)
	// UpdateDocument stores filename (nil clears) in the slot. It affects zero
	// rows when the record is missing or already holds the same value.
	UpdateDocument(ctx context.Context, id uuid.UUID, key model.SlotKey, filename *string) (int64, error)
}

// MobilityRepository stores the mobilities of one kind.
type MobilityRepository interface {
	SlotRepository

	Kind() model.Category
	Create(ctx context.Context, m *model.Mobility) (*model.Mobility, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Mobility, error)
	// Update writes dates, hospital, student and rotation service. Zero rows
	// are affected when nothing changed.
	Update(ctx context.Context, m *model.Mobility) (int64, error)
	// SetCanceled flips the flag only when it differs from canceled.
	SetCanceled(ctx context.Context, id uuid.UUID, canceled bool) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	// ListViews joins overlapping mobilities with their reference data, ordered
	// by initial date, final date and id.
	ListViews(ctx context.Context, q PlacementQuery) ([]model.PlacementView, error)
	FindView(ctx context.Context, id uuid.UUID) (*model.PlacementView, error)
}

// AttachmentRepository stores attachments.
type AttachmentRepository interface {
	SlotRepository

	Create(ctx context.Context, a *model.Attachment) (*model.Attachment, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Attachment, error)
	Update(ctx context.Context, a *model.Attachment) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	List(ctx context.Context, q AttachmentQuery) ([]model.Attachment, error)
}

// TemplateRepository stores one template record per (kind, slot).
type TemplateRepository interface {
	SlotRepository

	Find(ctx context.Context, kind model.Category, slot model.SlotKey) (*model.Template, error)
	// Ensure returns the record of (kind, slot), creating an empty one if needed.
	Ensure(ctx context.Context, kind model.Category, slot model.SlotKey) (*model.Template, error)
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
}

// ReferenceRepository reads hospitals, specialties, students and rotation services.
type ReferenceRepository interface {
	Exists(ctx context.Context, ref model.Reference, id uuid.UUID) (bool, error)
	FindHospital(ctx context.Context, id uuid.UUID) (*model.Hospital, error)
	ListHospitals(ctx context.Context) ([]model.Hospital, error)
}
