package reconcile

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"mobilityapi/internal/model"
	"mobilityapi/internal/repository"
	"mobilityapi/internal/repository/mocks"
)

func day(s string) time.Time {
	t, err := model.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return t
}

func str(s string) *string { return &s }

var (
	hospitalH  = uuid.MustParse("11111111-1111-1111-1111-111111111111")
	hospitalK  = uuid.MustParse("22222222-2222-2222-2222-222222222222")
	specialtyS = uuid.MustParse("33333333-3333-3333-3333-333333333333")
	specialtyT = uuid.MustParse("44444444-4444-4444-4444-444444444444")
)

func view(hospital, specialty uuid.UUID, from, to string) model.PlacementView {
	return model.PlacementView{
		ID:          uuid.New(),
		InitialDate: day(from),
		FinalDate:   day(to),
		Hospital:    model.Hospital{ID: hospital},
		Student:     model.Student{ID: uuid.New(), SpecialtyID: specialty},
	}
}

func attachment(hospital, specialty uuid.UUID, from, to string) model.Attachment {
	return model.Attachment{
		ID:          uuid.New(),
		HospitalID:  hospital,
		SpecialtyID: specialty,
		InitialDate: day(from),
		FinalDate:   day(to),
	}
}

func TestAttachmentsCovering(t *testing.T) {
	ctx := context.Background()
	a := attachment(hospitalH, specialtyS, "2024-02-15", "2024-07-01")
	otherHospital := attachment(hospitalK, specialtyS, "2024-02-15", "2024-07-01")
	tooEarly := attachment(hospitalH, specialtyS, "2023-01-01", "2024-02-29")

	repo := new(mocks.MockAttachmentRepository)
	repo.On("List", ctx, repository.AttachmentQuery{
		InitialDate: day("2024-03-01"),
		FinalDate:   day("2024-06-30"),
		HospitalID:  &hospitalH,
		SpecialtyID: &specialtyS,
	}).Return([]model.Attachment{a, otherHospital, tooEarly}, nil)

	got, err := New(repo).AttachmentsCovering(ctx, hospitalH, specialtyS, day("2024-03-01"), day("2024-06-30"))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, a.ID, got[0].ID)
}

func TestAttachmentsCovering_InvalidInterval(t *testing.T) {
	repo := new(mocks.MockAttachmentRepository)
	_, err := New(repo).AttachmentsCovering(context.Background(), hospitalH, specialtyS, day("2024-06-30"), day("2024-03-01"))
	assert.ErrorIs(t, err, model.ErrInvalidInterval)
	repo.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}

func TestPlacementsCoveredBy(t *testing.T) {
	ctx := context.Background()
	att := attachment(hospitalH, specialtyS, "2024-03-01", "2024-03-31")

	covered := view(hospitalH, specialtyS, "2024-03-31", "2024-04-30")
	otherSpecialty := view(hospitalH, specialtyT, "2024-03-01", "2024-03-10")
	outside := view(hospitalH, specialtyS, "2024-04-01", "2024-04-30")
	optional := view(hospitalH, specialtyS, "2024-02-01", "2024-03-01")

	obligatory := &mocks.MockMobilityRepository{Category: model.CategoryObligatory}
	obligatory.On("ListViews", ctx, mock.Anything).Return([]model.PlacementView{covered, otherSpecialty, outside}, nil)
	opt := &mocks.MockMobilityRepository{Category: model.CategoryOptional}
	opt.On("ListViews", ctx, mock.Anything).Return([]model.PlacementView{optional}, nil)

	got, err := New(new(mocks.MockAttachmentRepository), obligatory, opt).PlacementsCoveredBy(ctx, att)
	require.NoError(t, err)

	ids := make([]uuid.UUID, 0, len(got))
	for _, v := range got {
		ids = append(ids, v.ID)
	}
	assert.Equal(t, []uuid.UUID{covered.ID, optional.ID}, ids)
}

func TestPlacementsCoveredBy_RepositoryError(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.MockMobilityRepository{Category: model.CategoryObligatory}
	repo.On("ListViews", ctx, mock.Anything).Return(nil, errors.New("db down"))

	_, err := New(new(mocks.MockAttachmentRepository), repo).
		PlacementsCoveredBy(ctx, attachment(hospitalH, specialtyS, "2024-01-01", "2024-01-31"))
	assert.ErrorContains(t, err, "db down")
}

func TestFilterCovered_UsesStudentSpecialty(t *testing.T) {
	att := attachment(hospitalH, specialtyS, "2024-01-01", "2024-12-31")
	v := view(hospitalH, specialtyT, "2024-05-01", "2024-05-31")
	v.RotationService = model.RotationService{SpecialtyID: specialtyS}

	assert.Empty(t, FilterCovered([]model.PlacementView{v}, att))
}

func TestAnnotate(t *testing.T) {
	v := view(hospitalH, specialtyS, "2024-03-01", "2024-06-30")

	both := attachment(hospitalH, specialtyS, "2024-02-15", "2024-03-15")
	both.Documents = model.AttachmentDocuments{Solicitude: str("a.pdf"), Acceptance: str("b.pdf")}

	endOnly := attachment(hospitalH, specialtyS, "2024-06-30", "2024-07-31")
	endOnly.Documents = model.AttachmentDocuments{Acceptance: str("c.pdf")}

	// Overlaps, but contains neither endpoint.
	inside := attachment(hospitalH, specialtyS, "2024-04-01", "2024-04-30")
	inside.Documents = model.AttachmentDocuments{Solicitude: str("d.pdf")}

	empty := attachment(hospitalH, specialtyS, "2024-01-01", "2024-12-31")
	wrongHospital := attachment(hospitalK, specialtyS, "2024-01-01", "2024-12-31")
	wrongHospital.Documents = model.AttachmentDocuments{Solicitude: str("e.pdf")}

	views := []model.PlacementView{v}
	Annotate(views, []model.Attachment{both, endOnly, inside, empty, wrongHospital})

	assert.Equal(t, []uuid.UUID{both.ID}, views[0].SolicitudeAttachments)
	assert.Equal(t, []uuid.UUID{both.ID, endOnly.ID}, views[0].AcceptanceAttachments)
}

func TestReconciler_Annotate(t *testing.T) {
	ctx := context.Background()
	a := view(hospitalH, specialtyS, "2024-03-01", "2024-03-31")
	b := view(hospitalH, specialtyS, "2024-01-10", "2024-02-10")
	att := attachment(hospitalH, specialtyS, "2024-01-01", "2024-01-31")
	att.Documents.Solicitude = str("s.pdf")

	repo := new(mocks.MockAttachmentRepository)
	repo.On("List", ctx, repository.AttachmentQuery{
		InitialDate: day("2024-01-10"),
		FinalDate:   day("2024-03-31"),
	}).Return([]model.Attachment{att}, nil)

	got, err := New(repo).Annotate(ctx, []model.PlacementView{a, b})
	require.NoError(t, err)
	assert.Empty(t, got[0].SolicitudeAttachments)
	assert.Equal(t, []uuid.UUID{att.ID}, got[1].SolicitudeAttachments)
}
