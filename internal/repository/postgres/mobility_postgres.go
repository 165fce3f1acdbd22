package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"mobilityapi/internal/model"
	"mobilityapi/internal/repository"
)

// MobilityPostgres is a PostgreSQL implementation of repository.MobilityRepository.
// One instance serves one mobility kind and its table.
type MobilityPostgres struct {
	db    *sql.DB
	kind  model.Category
	table string
}

// NewObligatoryMobilityPostgres returns the repository of obligatory mobilities.
func NewObligatoryMobilityPostgres(db *sql.DB) *MobilityPostgres {
	return &MobilityPostgres{db: db, kind: model.CategoryObligatory, table: "obligatory_mobilities"}
}

// NewOptionalMobilityPostgres returns the repository of optional mobilities.
func NewOptionalMobilityPostgres(db *sql.DB) *MobilityPostgres {
	return &MobilityPostgres{db: db, kind: model.CategoryOptional, table: "optional_mobilities"}
}

var _ repository.MobilityRepository = (*MobilityPostgres)(nil)

func (r *MobilityPostgres) Kind() model.Category { return r.kind }

func (r *MobilityPostgres) columns() string {
	return "id, student_id, hospital_id, rotation_service_id, initial_date, final_date, canceled, created_at, " +
		slotColumnList(r.kind, "")
}

func (r *MobilityPostgres) scan(row scanner) (*model.Mobility, error) {
	m := model.Mobility{Kind: r.kind}
	slots, fill := slotDest(r.kind)
	dest := append([]any{
		&m.ID,
		&m.StudentID,
		&m.HospitalID,
		&m.RotationServiceID,
		&m.InitialDate,
		&m.FinalDate,
		&m.Canceled,
		&m.CreatedAt,
	}, slots...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	fill(&m.Documents)
	return &m, nil
}

// Create inserts a new mobility with empty slots and returns the stored record.
func (r *MobilityPostgres) Create(ctx context.Context, m *model.Mobility) (*model.Mobility, error) {
	q := fmt.Sprintf(`
		INSERT INTO %s (id, student_id, hospital_id, rotation_service_id, initial_date, final_date, canceled, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING %s
	`, r.table, r.columns())
	row := r.db.QueryRowContext(ctx, q,
		m.ID,
		m.StudentID,
		m.HospitalID,
		m.RotationServiceID,
		m.InitialDate,
		m.FinalDate,
		m.Canceled,
		m.CreatedAt,
	)
	return r.scan(row)
}

// FindByID fetches a single mobility by its ID.
func (r *MobilityPostgres) FindByID(ctx context.Context, id uuid.UUID) (*model.Mobility, error) {
	q := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1`, r.columns(), r.table)
	return r.scan(r.db.QueryRowContext(ctx, q, id))
}

func (r *MobilityPostgres) Update(ctx context.Context, m *model.Mobility) (int64, error) {
	q := fmt.Sprintf(`
		UPDATE %s
		SET student_id = $2, hospital_id = $3, rotation_service_id = $4, initial_date = $5, final_date = $6
		WHERE id = $1
		  AND (student_id, hospital_id, rotation_service_id, initial_date, final_date)
		      IS DISTINCT FROM ($2::uuid, $3::uuid, $4::uuid, $5::date, $6::date)
	`, r.table)
	return execAffected(ctx, r.db, q,
		m.ID,
		m.StudentID,
		m.HospitalID,
		m.RotationServiceID,
		m.InitialDate,
		m.FinalDate,
	)
}

func (r *MobilityPostgres) SetCanceled(ctx context.Context, id uuid.UUID, canceled bool) (int64, error) {
	q := fmt.Sprintf(`UPDATE %s SET canceled = $2 WHERE id = $1 AND canceled <> $2`, r.table)
	return execAffected(ctx, r.db, q, id, canceled)
}

func (r *MobilityPostgres) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	q := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.table)
	return execAffected(ctx, r.db, q, id)
}

func (r *MobilityPostgres) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	q := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE id = $1)`, r.table)
	var ok bool
	err := r.db.QueryRowContext(ctx, q, id).Scan(&ok)
	return ok, err
}

func (r *MobilityPostgres) Documents(ctx context.Context, id uuid.UUID) (model.DocumentSet, error) {
	q := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1`, slotColumnList(r.kind, ""), r.table)
	slots, fill := slotDest(r.kind)
	if err := r.db.QueryRowContext(ctx, q, id).Scan(slots...); err != nil {
		return nil, err
	}
	docs := &model.MobilityDocuments{}
	fill(docs)
	return docs, nil
}

func (r *MobilityPostgres) UpdateDocument(ctx context.Context, id uuid.UUID, key model.SlotKey, filename *string) (int64, error) {
	col, err := slotColumn(r.kind, key)
	if err != nil {
		return 0, err
	}
	q := fmt.Sprintf(`UPDATE %s SET %s = $2 WHERE id = $1 AND %s IS DISTINCT FROM $2::text`, r.table, col, col)
	return execAffected(ctx, r.db, q, id, nullString(filename))
}

// ListViews returns overlapping mobilities joined with student, hospital,
// rotation service and the student's specialty.
func (r *MobilityPostgres) ListViews(ctx context.Context, pq repository.PlacementQuery) ([]model.PlacementView, error) {
	var w whereBuilder
	w.add("m.initial_date <= $%d", pq.FinalDate)
	w.add("m.final_date >= $%d", pq.InitialDate)
	if pq.HospitalID != nil {
		w.add("m.hospital_id = $%d", *pq.HospitalID)
	}
	if pq.SpecialtyID != nil {
		w.add("s.specialty_id = $%d", *pq.SpecialtyID)
	}
	if pq.ExcludeCanceled {
		w.raw("m.canceled = false")
	}
	return r.queryViews(ctx, w)
}

// FindView returns the joined view of one mobility.
func (r *MobilityPostgres) FindView(ctx context.Context, id uuid.UUID) (*model.PlacementView, error) {
	var w whereBuilder
	w.add("m.id = $%d", id)
	items, err := r.queryViews(ctx, w)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, sql.ErrNoRows
	}
	return &items[0], nil
}

func (r *MobilityPostgres) queryViews(ctx context.Context, w whereBuilder) ([]model.PlacementView, error) {
	q := fmt.Sprintf(`
		SELECT m.id, m.initial_date, m.final_date, m.canceled, %s,
		       s.id, s.first_name, s.last_name, s.specialty_id,
		       h.id, h.name, h.principal_name, h.principal_position,
		       rs.id, rs.name, rs.specialty_id,
		       sp.id, sp.name
		FROM %s m
		JOIN students s ON s.id = m.student_id
		JOIN hospitals h ON h.id = m.hospital_id
		JOIN rotation_services rs ON rs.id = m.rotation_service_id
		JOIN specialties sp ON sp.id = s.specialty_id
		%s
		ORDER BY m.initial_date, m.final_date, m.id
	`, slotColumnList(r.kind, "m."), r.table, w.String())

	rows, err := r.db.QueryContext(ctx, q, w.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.PlacementView, 0)
	for rows.Next() {
		v := model.PlacementView{Kind: r.kind}
		slots, fill := slotDest(r.kind)
		dest := []any{&v.ID, &v.InitialDate, &v.FinalDate, &v.Canceled}
		dest = append(dest, slots...)
		dest = append(dest,
			&v.Student.ID, &v.Student.FirstName, &v.Student.LastName, &v.Student.SpecialtyID,
			&v.Hospital.ID, &v.Hospital.Name, &v.Hospital.PrincipalName, &v.Hospital.PrincipalPosition,
			&v.RotationService.ID, &v.RotationService.Name, &v.RotationService.SpecialtyID,
			&v.Specialty.ID, &v.Specialty.Name,
		)
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		fill(&v.Documents)
		items = append(items, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func execAffected(ctx context.Context, db *sql.DB, q string, args ...any) (int64, error) {
	res, err := db.ExecContext(ctx, q, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
