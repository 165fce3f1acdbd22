package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"mobilityapi/internal/model"
	"mobilityapi/internal/repository"
)

type MockSlotRepository struct {
	mock.Mock
}

func (m *MockSlotRepository) Documents(ctx context.Context, id uuid.UUID) (model.DocumentSet, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(model.DocumentSet), args.Error(1)
}

func (m *MockSlotRepository) UpdateDocument(ctx context.Context, id uuid.UUID, key model.SlotKey, filename *string) (int64, error) {
	args := m.Called(ctx, id, key, filename)
	return args.Get(0).(int64), args.Error(1)
}

type MockMobilityRepository struct {
	MockSlotRepository
	Category model.Category
}

func (m *MockMobilityRepository) Kind() model.Category { return m.Category }

func (m *MockMobilityRepository) Create(ctx context.Context, mob *model.Mobility) (*model.Mobility, error) {
	args := m.Called(ctx, mob)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Mobility), args.Error(1)
}

func (m *MockMobilityRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Mobility, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Mobility), args.Error(1)
}

func (m *MockMobilityRepository) Update(ctx context.Context, mob *model.Mobility) (int64, error) {
	args := m.Called(ctx, mob)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockMobilityRepository) SetCanceled(ctx context.Context, id uuid.UUID, canceled bool) (int64, error) {
	args := m.Called(ctx, id, canceled)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockMobilityRepository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockMobilityRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockMobilityRepository) ListViews(ctx context.Context, q repository.PlacementQuery) ([]model.PlacementView, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.PlacementView), args.Error(1)
}

func (m *MockMobilityRepository) FindView(ctx context.Context, id uuid.UUID) (*model.PlacementView, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PlacementView), args.Error(1)
}

type MockAttachmentRepository struct {
	MockSlotRepository
}

func (m *MockAttachmentRepository) Create(ctx context.Context, a *model.Attachment) (*model.Attachment, error) {
	args := m.Called(ctx, a)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Attachment), args.Error(1)
}

func (m *MockAttachmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Attachment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Attachment), args.Error(1)
}

func (m *MockAttachmentRepository) Update(ctx context.Context, a *model.Attachment) (int64, error) {
	args := m.Called(ctx, a)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAttachmentRepository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAttachmentRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockAttachmentRepository) List(ctx context.Context, q repository.AttachmentQuery) ([]model.Attachment, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Attachment), args.Error(1)
}

type MockTemplateRepository struct {
	MockSlotRepository
}

func (m *MockTemplateRepository) Find(ctx context.Context, kind model.Category, slot model.SlotKey) (*model.Template, error) {
	args := m.Called(ctx, kind, slot)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Template), args.Error(1)
}

func (m *MockTemplateRepository) Ensure(ctx context.Context, kind model.Category, slot model.SlotKey) (*model.Template, error) {
	args := m.Called(ctx, kind, slot)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Template), args.Error(1)
}

func (m *MockTemplateRepository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

type MockReferenceRepository struct {
	mock.Mock
}

func (m *MockReferenceRepository) Exists(ctx context.Context, ref model.Reference, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, ref, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockReferenceRepository) FindHospital(ctx context.Context, id uuid.UUID) (*model.Hospital, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Hospital), args.Error(1)
}

func (m *MockReferenceRepository) ListHospitals(ctx context.Context) ([]model.Hospital, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Hospital), args.Error(1)
}

var (
	_ repository.MobilityRepository   = (*MockMobilityRepository)(nil)
	_ repository.AttachmentRepository = (*MockAttachmentRepository)(nil)
	_ repository.TemplateRepository   = (*MockTemplateRepository)(nil)
	_ repository.ReferenceRepository  = (*MockReferenceRepository)(nil)
)
