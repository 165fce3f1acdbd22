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

// MobilityInput carries the editable fields of a mobility.
type MobilityInput struct {
	StudentID         uuid.UUID
	HospitalID        uuid.UUID
	RotationServiceID uuid.UUID
	InitialDate       time.Time
	FinalDate         time.Time
}

// MobilityService defines the use cases of one mobility kind.
type MobilityService interface {
	Kind() model.Category
	// Create checks that student, hospital and rotation service exist.
	Create(ctx context.Context, in MobilityInput) (*model.Mobility, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Mobility, error)
	// List returns the mobilities overlapping the query interval with their
	// derived attachment lists. Canceled mobilities are included.
	List(ctx context.Context, q repository.PlacementQuery) ([]model.PlacementView, error)
	// Update fails with model.ErrNotModified when nothing changes.
	Update(ctx context.Context, id uuid.UUID, in MobilityInput) (*model.Mobility, error)
	Cancel(ctx context.Context, id uuid.UUID) (*model.Mobility, error)
	Uncancel(ctx context.Context, id uuid.UUID) (*model.Mobility, error)
	// Delete removes every slot file, then the record, and verifies it is gone.
	Delete(ctx context.Context, id uuid.UUID) error

	GetDocument(ctx context.Context, id uuid.UUID, key model.SlotKey) (*slot.File, error)
	SetDocument(ctx context.Context, id uuid.UUID, key model.SlotKey, up slot.Upload) (*model.Mobility, error)
	ClearDocument(ctx context.Context, id uuid.UUID, key model.SlotKey) (*model.Mobility, error)
}

type mobilityService struct {
	repo  repository.MobilityRepository
	refs  repository.ReferenceRepository
	slots *slot.Manager
	rec   *reconcile.Reconciler
	log   *logrus.Entry
	now   func() time.Time
}

// NewMobilityService constructs the service of the kind served by repo.
func NewMobilityService(repo repository.MobilityRepository, refs repository.ReferenceRepository, slots *slot.Manager, rec *reconcile.Reconciler, log *logrus.Entry) MobilityService {
	return &mobilityService{
		repo:  repo,
		refs:  refs,
		slots: slots,
		rec:   rec,
		log:   log.WithField("kind", string(repo.Kind())),
		now:   time.Now,
	}
}

func (s *mobilityService) Kind() model.Category { return s.repo.Kind() }

func (s *mobilityService) check(ctx context.Context, in MobilityInput) error {
	if err := validInterval(in.InitialDate, in.FinalDate); err != nil {
		return err
	}
	return requireRefs(ctx, s.refs,
		refCheck{model.RefStudent, in.StudentID},
		refCheck{model.RefHospital, in.HospitalID},
		refCheck{model.RefRotationService, in.RotationServiceID},
	)
}

func (s *mobilityService) Create(ctx context.Context, in MobilityInput) (*model.Mobility, error) {
	if err := s.check(ctx, in); err != nil {
		return nil, err
	}
	m := &model.Mobility{
		ID:                uuid.New(),
		Kind:              s.repo.Kind(),
		StudentID:         in.StudentID,
		HospitalID:        in.HospitalID,
		RotationServiceID: in.RotationServiceID,
		InitialDate:       model.DateOf(in.InitialDate),
		FinalDate:         model.DateOf(in.FinalDate),
		CreatedAt:         s.now().UTC(),
	}
	stored, err := s.repo.Create(ctx, m)
	if err != nil {
		return nil, fmt.Errorf("create mobility: %w", err)
	}
	return stored, nil
}

func (s *mobilityService) Get(ctx context.Context, id uuid.UUID) (*model.Mobility, error) {
	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return m, nil
}

func (s *mobilityService) List(ctx context.Context, q repository.PlacementQuery) ([]model.PlacementView, error) {
	if err := validInterval(q.InitialDate, q.FinalDate); err != nil {
		return nil, err
	}
	views, err := s.repo.ListViews(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list mobilities: %w", err)
	}
	return s.rec.Annotate(ctx, views)
}

func (s *mobilityService) Update(ctx context.Context, id uuid.UUID, in MobilityInput) (*model.Mobility, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.check(ctx, in); err != nil {
		return nil, err
	}
	current.StudentID = in.StudentID
	current.HospitalID = in.HospitalID
	current.RotationServiceID = in.RotationServiceID
	current.InitialDate = model.DateOf(in.InitialDate)
	current.FinalDate = model.DateOf(in.FinalDate)

	n, err := s.repo.Update(ctx, current)
	if err != nil {
		return nil, fmt.Errorf("update mobility: %w", err)
	}
	if n == 0 {
		return nil, model.ErrNotModified
	}
	return s.Get(ctx, id)
}

func (s *mobilityService) Cancel(ctx context.Context, id uuid.UUID) (*model.Mobility, error) {
	return s.setCanceled(ctx, id, true)
}

func (s *mobilityService) Uncancel(ctx context.Context, id uuid.UUID) (*model.Mobility, error) {
	return s.setCanceled(ctx, id, false)
}

// setCanceled is strict: repeating a transition fails with model.ErrNotModified.
func (s *mobilityService) setCanceled(ctx context.Context, id uuid.UUID, canceled bool) (*model.Mobility, error) {
	ok, err := s.repo.Exists(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("check mobility: %w", err)
	}
	if !ok {
		return nil, model.ErrNotFound
	}
	n, err := s.repo.SetCanceled(ctx, id, canceled)
	if err != nil {
		return nil, fmt.Errorf("set canceled: %w", err)
	}
	if n == 0 {
		return nil, model.ErrNotModified
	}
	return s.Get(ctx, id)
}

func (s *mobilityService) Delete(ctx context.Context, id uuid.UUID) error {
	ok, err := s.repo.Exists(ctx, id)
	if err != nil {
		return fmt.Errorf("check mobility: %w", err)
	}
	if !ok {
		return model.ErrNotFound
	}
	if err := s.slots.DeleteAll(ctx, id); err != nil {
		return fmt.Errorf("delete documents: %w", err)
	}
	if _, err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete mobility: %w", err)
	}
	still, err := s.repo.Exists(ctx, id)
	if err != nil {
		return fmt.Errorf("verify delete: %w", err)
	}
	if still {
		return model.ErrNotDeleted
	}
	s.log.WithField("id", id.String()).Info("mobility deleted")
	return nil
}

func (s *mobilityService) GetDocument(ctx context.Context, id uuid.UUID, key model.SlotKey) (*slot.File, error) {
	return s.slots.Get(ctx, id, key)
}

func (s *mobilityService) SetDocument(ctx context.Context, id uuid.UUID, key model.SlotKey, up slot.Upload) (*model.Mobility, error) {
	if _, err := s.slots.Set(ctx, id, key, up); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *mobilityService) ClearDocument(ctx context.Context, id uuid.UUID, key model.SlotKey) (*model.Mobility, error) {
	if err := s.slots.Clear(ctx, id, key); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}
