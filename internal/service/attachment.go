package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"mobilityapi/internal/model"
	"mobilityapi/internal/reconcile"
	"mobilityapi/internal/repository"
	"mobilityapi/internal/slot"
)

type AttachmentInput struct {
	HospitalID  uuid.UUID
	SpecialtyID uuid.UUID
	InitialDate time.Time
	FinalDate   time.Time
}

// AttachmentService defines the use cases of attachments. Deleting an
// attachment never touches the placements it covers.
type AttachmentService interface {
	Create(ctx context.Context, in AttachmentInput) (*model.Attachment, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Attachment, error)
	List(ctx context.Context, q repository.AttachmentQuery) ([]model.Attachment, error)
	Update(ctx context.Context, id uuid.UUID, in AttachmentInput) (*model.Attachment, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// Covering returns the attachments of hospital and specialty overlapping [from, to].
	Covering(ctx context.Context, hospital, specialty uuid.UUID, from, to time.Time) ([]model.Attachment, error)
	// Placements returns the placements of every kind the attachment covers.
	Placements(ctx context.Context, id uuid.UUID) ([]model.PlacementView, error)

	GetDocument(ctx context.Context, id uuid.UUID, key model.SlotKey) (*slot.File, error)
	SetDocument(ctx context.Context, id uuid.UUID, key model.SlotKey, up slot.Upload) (*model.Attachment, error)
	ClearDocument(ctx context.Context, id uuid.UUID, key model.SlotKey) (*model.Attachment, error)
}

type attachmentService struct {
	repo  repository.AttachmentRepository
	refs  repository.ReferenceRepository
	slots *slot.Manager
	rec   *reconcile.Reconciler
	log   *logrus.Entry
	now   func() time.Time
}

func NewAttachmentService(repo repository.AttachmentRepository, refs repository.ReferenceRepository, slots *slot.Manager, rec *reconcile.Reconciler, log *logrus.Entry) AttachmentService {
	return &attachmentService{repo: repo, refs: refs, slots: slots, rec: rec, log: log, now: time.Now}
}

func (s *attachmentService) check(ctx context.Context, in AttachmentInput) error {
	if err := validInterval(in.InitialDate, in.FinalDate); err != nil {
		return err
	}
	return requireRefs(ctx, s.refs,
		refCheck{model.RefHospital, in.HospitalID},
		refCheck{model.RefSpecialty, in.SpecialtyID},
	)
}

func (s *attachmentService) Create(ctx context.Context, in AttachmentInput) (*model.Attachment, error) {
	if err := s.check(ctx, in); err != nil {
		return nil, err
	}
	a := &model.Attachment{
		ID:          uuid.New(),
		HospitalID:  in.HospitalID,
		SpecialtyID: in.SpecialtyID,
		InitialDate: model.DateOf(in.InitialDate),
		FinalDate:   model.DateOf(in.FinalDate),
		CreatedAt:   s.now().UTC(),
	}
	stored, err := s.repo.Create(ctx, a)
	if err != nil {
		return nil, fmt.Errorf("create attachment: %w", err)
	}
	return stored, nil
}

func (s *attachmentService) Get(ctx context.Context, id uuid.UUID) (*model.Attachment, error) {
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return a, nil
}

func (s *attachmentService) List(ctx context.Context, q repository.AttachmentQuery) ([]model.Attachment, error) {
	if err := validInterval(q.InitialDate, q.FinalDate); err != nil {
		return nil, err
	}
	list, err := s.repo.List(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list attachments: %w", err)
	}
	return list, nil
}

func (s *attachmentService) Update(ctx context.Context, id uuid.UUID, in AttachmentInput) (*model.Attachment, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.check(ctx, in); err != nil {
		return nil, err
	}
	current.HospitalID = in.HospitalID
	current.SpecialtyID = in.SpecialtyID
	current.InitialDate = model.DateOf(in.InitialDate)
	current.FinalDate = model.DateOf(in.FinalDate)

	n, err := s.repo.Update(ctx, current)
	if err != nil {
		return nil, fmt.Errorf("update attachment: %w", err)
	}
	if n == 0 {
		return nil, model.ErrNotModified
	}
	return s.Get(ctx, id)
}

func (s *attachmentService) Delete(ctx context.Context, id uuid.UUID) error {
	ok, err := s.repo.Exists(ctx, id)
	if err != nil {
		return fmt.Errorf("check attachment: %w", err)
	}
	if !ok {
		return model.ErrNotFound
	}
	if err := s.slots.DeleteAll(ctx, id); err != nil {
		return fmt.Errorf("delete documents: %w", err)
	}
	if _, err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete attachment: %w", err)
	}
	still, err := s.repo.Exists(ctx, id)
	if err != nil {
		return fmt.Errorf("verify delete: %w", err)
	}
	if still {
		return model.ErrNotDeleted
	}
	s.log.WithField("id", id.String()).Info("attachment deleted")
	return nil
}

func (s *attachmentService) Covering(ctx context.Context, hospital, specialty uuid.UUID, from, to time.Time) ([]model.Attachment, error) {
	return s.rec.AttachmentsCovering(ctx, hospital, specialty, from, to)
}

func (s *attachmentService) Placements(ctx context.Context, id uuid.UUID) ([]model.PlacementView, error) {
	a, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.rec.PlacementsCoveredBy(ctx, *a)
}

func (s *attachmentService) GetDocument(ctx context.Context, id uuid.UUID, key model.SlotKey) (*slot.File, error) {
	return s.slots.Get(ctx, id, key)
}

func (s *attachmentService) SetDocument(ctx context.Context, id uuid.UUID, key model.SlotKey, up slot.Upload) (*model.Attachment, error) {
	if _, err := s.slots.Set(ctx, id, key, up); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *attachmentService) ClearDocument(ctx context.Context, id uuid.UUID, key model.SlotKey) (*model.Attachment, error) {
	if err := s.slots.Clear(ctx, id, key); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}
