package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"mobilityapi/internal/model"
	"mobilityapi/internal/report"
	"mobilityapi/internal/repository"
	"mobilityapi/internal/service"
	"mobilityapi/internal/slot"
)

func mobility(args mock.Arguments) (*model.Mobility, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Mobility), args.Error(1)
}

func attachment(args mock.Arguments) (*model.Attachment, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Attachment), args.Error(1)
}

func file(args mock.Arguments) (*slot.File, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*slot.File), args.Error(1)
}

func result(args mock.Arguments) (*service.FileResult, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.FileResult), args.Error(1)
}

func views(args mock.Arguments) ([]model.PlacementView, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.PlacementView), args.Error(1)
}

type MockMobilityService struct {
	mock.Mock
	Category model.Category
}

var _ service.MobilityService = (*MockMobilityService)(nil)

func (m *MockMobilityService) Kind() model.Category { return m.Category }

func (m *MockMobilityService) Create(ctx context.Context, in service.MobilityInput) (*model.Mobility, error) {
	return mobility(m.Called(ctx, in))
}

func (m *MockMobilityService) Get(ctx context.Context, id uuid.UUID) (*model.Mobility, error) {
	return mobility(m.Called(ctx, id))
}

func (m *MockMobilityService) List(ctx context.Context, q repository.PlacementQuery) ([]model.PlacementView, error) {
	return views(m.Called(ctx, q))
}

func (m *MockMobilityService) Update(ctx context.Context, id uuid.UUID, in service.MobilityInput) (*model.Mobility, error) {
	return mobility(m.Called(ctx, id, in))
}

func (m *MockMobilityService) Cancel(ctx context.Context, id uuid.UUID) (*model.Mobility, error) {
	return mobility(m.Called(ctx, id))
}

func (m *MockMobilityService) Uncancel(ctx context.Context, id uuid.UUID) (*model.Mobility, error) {
	return mobility(m.Called(ctx, id))
}

func (m *MockMobilityService) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockMobilityService) GetDocument(ctx context.Context, id uuid.UUID, key model.SlotKey) (*slot.File, error) {
	return file(m.Called(ctx, id, key))
}

func (m *MockMobilityService) SetDocument(ctx context.Context, id uuid.UUID, key model.SlotKey, up slot.Upload) (*model.Mobility, error) {
	return mobility(m.Called(ctx, id, key, up))
}

func (m *MockMobilityService) ClearDocument(ctx context.Context, id uuid.UUID, key model.SlotKey) (*model.Mobility, error) {
	return mobility(m.Called(ctx, id, key))
}

type MockAttachmentService struct {
	mock.Mock
}

var _ service.AttachmentService = (*MockAttachmentService)(nil)

func (m *MockAttachmentService) Create(ctx context.Context, in service.AttachmentInput) (*model.Attachment, error) {
	return attachment(m.Called(ctx, in))
}

func (m *MockAttachmentService) Get(ctx context.Context, id uuid.UUID) (*model.Attachment, error) {
	return attachment(m.Called(ctx, id))
}

func (m *MockAttachmentService) List(ctx context.Context, q repository.AttachmentQuery) ([]model.Attachment, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Attachment), args.Error(1)
}

func (m *MockAttachmentService) Update(ctx context.Context, id uuid.UUID, in service.AttachmentInput) (*model.Attachment, error) {
	return attachment(m.Called(ctx, id, in))
}

func (m *MockAttachmentService) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockAttachmentService) Covering(ctx context.Context, hospital, specialty uuid.UUID, from, to time.Time) ([]model.Attachment, error) {
	args := m.Called(ctx, hospital, specialty, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Attachment), args.Error(1)
}

func (m *MockAttachmentService) Placements(ctx context.Context, id uuid.UUID) ([]model.PlacementView, error) {
	return views(m.Called(ctx, id))
}

func (m *MockAttachmentService) GetDocument(ctx context.Context, id uuid.UUID, key model.SlotKey) (*slot.File, error) {
	return file(m.Called(ctx, id, key))
}

func (m *MockAttachmentService) SetDocument(ctx context.Context, id uuid.UUID, key model.SlotKey, up slot.Upload) (*model.Attachment, error) {
	return attachment(m.Called(ctx, id, key, up))
}

func (m *MockAttachmentService) ClearDocument(ctx context.Context, id uuid.UUID, key model.SlotKey) (*model.Attachment, error) {
	return attachment(m.Called(ctx, id, key))
}

type MockTemplateService struct {
	mock.Mock
}

var _ service.TemplateService = (*MockTemplateService)(nil)

func (m *MockTemplateService) Get(ctx context.Context, kind model.Category, key model.SlotKey) (*model.Template, error) {
	args := m.Called(ctx, kind, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Template), args.Error(1)
}

func (m *MockTemplateService) Download(ctx context.Context, kind model.Category, key model.SlotKey) (*slot.File, error) {
	return file(m.Called(ctx, kind, key))
}

func (m *MockTemplateService) Upload(ctx context.Context, kind model.Category, key model.SlotKey, up slot.Upload) (*model.Template, error) {
	args := m.Called(ctx, kind, key, up)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Template), args.Error(1)
}

func (m *MockTemplateService) Delete(ctx context.Context, kind model.Category, key model.SlotKey) error {
	return m.Called(ctx, kind, key).Error(0)
}

func (m *MockTemplateService) Load(ctx context.Context, kind model.Category, key model.SlotKey) ([]byte, error) {
	args := m.Called(ctx, kind, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

type MockReportService struct {
	mock.Mock
}

var _ service.ReportService = (*MockReportService)(nil)

func (m *MockReportService) Group(ctx context.Context, q service.ReportQuery) ([]report.Group, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]report.Group), args.Error(1)
}

func (m *MockReportService) Export(ctx context.Context, q service.ReportQuery, format string) (*service.FileResult, error) {
	return result(m.Called(ctx, q, format))
}

type MockBatchService struct {
	mock.Mock
}

var _ service.BatchService = (*MockBatchService)(nil)

func (m *MockBatchService) GenerateBatch(ctx context.Context, req service.BatchRequest) (*service.FileResult, error) {
	return result(m.Called(ctx, req))
}

func (m *MockBatchService) GenerateDocument(ctx context.Context, req service.DocumentRequest) (*service.FileResult, error) {
	return result(m.Called(ctx, req))
}
