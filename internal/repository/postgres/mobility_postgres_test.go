package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mobilityapi/internal/model"
	"mobilityapi/internal/repository"
)

var optionalColumns = []string{
	"id", "student_id", "hospital_id", "rotation_service_id", "initial_date", "final_date", "canceled", "created_at",
	"solicitude_document", "presentation_office_document", "acceptance_document", "evaluation_document",
}

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func TestMobilityPostgres_Create(t *testing.T) {
	db, mock := newMock(t)
	repo := NewOptionalMobilityPostgres(db)
	ctx := context.Background()

	now := time.Now().UTC()
	m := &model.Mobility{
		ID:                uuid.New(),
		StudentID:         uuid.New(),
		HospitalID:        uuid.New(),
		RotationServiceID: uuid.New(),
		InitialDate:       time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		FinalDate:         time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC),
		CreatedAt:         now,
	}

	rows := sqlmock.NewRows(optionalColumns).
		AddRow(m.ID.String(), m.StudentID.String(), m.HospitalID.String(), m.RotationServiceID.String(),
			m.InitialDate, m.FinalDate, false, now, nil, nil, nil, nil)

	mock.ExpectQuery("INSERT INTO optional_mobilities").
		WithArgs(m.ID, m.StudentID, m.HospitalID, m.RotationServiceID, m.InitialDate, m.FinalDate, false, now).
		WillReturnRows(rows)

	got, err := repo.Create(ctx, m)
	require.NoError(t, err)
	assert.Equal(t, m.ID, got.ID)
	assert.Equal(t, model.CategoryOptional, got.Kind)
	assert.Nil(t, got.Documents.Solicitude)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMobilityPostgres_FindByID(t *testing.T) {
	db, mock := newMock(t)
	repo := NewObligatoryMobilityPostgres(db)
	ctx := context.Background()

	id := uuid.New()

	t.Run("found with slots", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{
			"id", "student_id", "hospital_id", "rotation_service_id", "initial_date", "final_date", "canceled", "created_at",
			"presentation_office_document", "evaluation_document",
		}).AddRow(id.String(), uuid.NewString(), uuid.NewString(), uuid.NewString(),
			time.Now(), time.Now(), true, time.Now(), "abc.pdf", nil)

		mock.ExpectQuery("SELECT (.+) FROM obligatory_mobilities WHERE id = ?").
			WithArgs(id).
			WillReturnRows(rows)

		m, err := repo.FindByID(ctx, id)
		require.NoError(t, err)
		assert.True(t, m.Canceled)
		name, ok := m.Documents.Slot(model.SlotPresentationOffice)
		assert.True(t, ok)
		assert.Equal(t, "abc.pdf", name)
		_, ok = m.Documents.Slot(model.SlotEvaluation)
		assert.False(t, ok)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM obligatory_mobilities WHERE id = ?").
			WithArgs(id).
			WillReturnError(sql.ErrNoRows)

		m, err := repo.FindByID(ctx, id)
		assert.ErrorIs(t, err, sql.ErrNoRows)
		assert.Nil(t, m)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMobilityPostgres_SetCanceled(t *testing.T) {
	db, mock := newMock(t)
	repo := NewOptionalMobilityPostgres(db)
	id := uuid.New()

	mock.ExpectExec("UPDATE optional_mobilities SET canceled = (.+) AND canceled <> ").
		WithArgs(id, true).
		WillReturnResult(sqlmock.NewResult(0, 0))

	n, err := repo.SetCanceled(context.Background(), id, true)
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMobilityPostgres_UpdateDocument(t *testing.T) {
	db, mock := newMock(t)
	repo := NewObligatoryMobilityPostgres(db)
	id := uuid.New()
	name := "0123456789abcdef0123456789abcdef.pdf"

	t.Run("set", func(t *testing.T) {
		mock.ExpectExec("UPDATE obligatory_mobilities SET evaluation_document = (.+) IS DISTINCT FROM").
			WithArgs(id, name).
			WillReturnResult(sqlmock.NewResult(0, 1))

		n, err := repo.UpdateDocument(context.Background(), id, model.SlotEvaluation, &name)
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)
	})

	t.Run("clear", func(t *testing.T) {
		mock.ExpectExec("UPDATE obligatory_mobilities SET evaluation_document").
			WithArgs(id, nil).
			WillReturnResult(sqlmock.NewResult(0, 1))

		_, err := repo.UpdateDocument(context.Background(), id, model.SlotEvaluation, nil)
		require.NoError(t, err)
	})

	t.Run("slot of another kind", func(t *testing.T) {
		_, err := repo.UpdateDocument(context.Background(), id, model.SlotSolicitude, &name)
		assert.ErrorIs(t, err, model.ErrInvalidSlot)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMobilityPostgres_ListViews(t *testing.T) {
	db, mock := newMock(t)
	repo := NewOptionalMobilityPostgres(db)

	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)
	hospital := uuid.New()
	specialty := uuid.New()

	cols := []string{
		"id", "initial_date", "final_date", "canceled",
		"solicitude_document", "presentation_office_document", "acceptance_document", "evaluation_document",
		"s_id", "first_name", "last_name", "s_specialty_id",
		"h_id", "h_name", "principal_name", "principal_position",
		"rs_id", "rs_name", "rs_specialty_id",
		"sp_id", "sp_name",
	}
	rows := sqlmock.NewRows(cols).AddRow(
		uuid.NewString(), from, to, false,
		nil, nil, "acc.pdf", nil,
		uuid.NewString(), "Ana", "López", specialty.String(),
		hospital.String(), "Hospital Central", "Dr. Ruiz", "Director",
		uuid.NewString(), "Urgencias", specialty.String(),
		specialty.String(), "Pediatría",
	)

	mock.ExpectQuery("FROM optional_mobilities m (.+) m.hospital_id = (.+) s.specialty_id = (.+) m.canceled = false").
		WithArgs(to, from, hospital, specialty).
		WillReturnRows(rows)

	views, err := repo.ListViews(context.Background(), repository.PlacementQuery{
		InitialDate:     from,
		FinalDate:       to,
		HospitalID:      &hospital,
		SpecialtyID:     &specialty,
		ExcludeCanceled: true,
	})
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "Hospital Central", views[0].Hospital.Name)
	assert.Equal(t, specialty, views[0].SpecialtyID())
	assert.Equal(t, "acc.pdf", *views[0].Documents.Acceptance)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMobilityPostgres_FindView(t *testing.T) {
	db, mock := newMock(t)
	repo := NewObligatoryMobilityPostgres(db)
	id := uuid.New()

	cols := []string{
		"id", "initial_date", "final_date", "canceled",
		"presentation_office_document", "evaluation_document",
		"s_id", "first_name", "last_name", "s_specialty_id",
		"h_id", "h_name", "principal_name", "principal_position",
		"rs_id", "rs_name", "rs_specialty_id",
		"sp_id", "sp_name",
	}
	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	specialty := uuid.NewString()

	mock.ExpectQuery("FROM obligatory_mobilities m (.+) WHERE m.id = \\$1").
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows(cols).AddRow(
			id.String(), day, day, false,
			"po.pdf", nil,
			uuid.NewString(), "Luis", "Díaz", specialty,
			uuid.NewString(), "Hospital Norte", "Dra. Vega", "Directora",
			uuid.NewString(), "Cirugía", specialty,
			specialty, "Cirugía General",
		))

	v, err := repo.FindView(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, id, v.ID)
	assert.Equal(t, model.CategoryObligatory, v.Kind)
	assert.Equal(t, "Luis Díaz", v.Student.FullName())

	mock.ExpectQuery("FROM obligatory_mobilities m").
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows(cols))

	_, err = repo.FindView(context.Background(), id)
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}
