package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"mobilityapi/internal/model"
	"mobilityapi/internal/repository"
)

// ReferencePostgres reads the reference tables.
type ReferencePostgres struct {
	db *sql.DB
}

// NewReferencePostgres creates a new ReferencePostgres repository.
func NewReferencePostgres(db *sql.DB) *ReferencePostgres {
	return &ReferencePostgres{db: db}
}

var _ repository.ReferenceRepository = (*ReferencePostgres)(nil)

var referenceTables = map[model.Reference]string{
	model.RefHospital:        "hospitals",
	model.RefSpecialty:       "specialties",
	model.RefStudent:         "students",
	model.RefRotationService: "rotation_services",
}

func (r *ReferencePostgres) Exists(ctx context.Context, ref model.Reference, id uuid.UUID) (bool, error) {
	table, ok := referenceTables[ref]
	if !ok {
		return false, fmt.Errorf("unknown reference %q", ref)
	}
	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM `+table+` WHERE id = $1)`, id).Scan(&exists)
	return exists, err
}

func (r *ReferencePostgres) FindHospital(ctx context.Context, id uuid.UUID) (*model.Hospital, error) {
	const q = `SELECT id, name, principal_name, principal_position FROM hospitals WHERE id = $1`
	var h model.Hospital
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&h.ID, &h.Name, &h.PrincipalName, &h.PrincipalPosition); err != nil {
		return nil, err
	}
	return &h, nil
}

// ListHospitals returns every hospital ordered by name then id.
func (r *ReferencePostgres) ListHospitals(ctx context.Context) ([]model.Hospital, error) {
	const q = `SELECT id, name, principal_name, principal_position FROM hospitals ORDER BY name, id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Hospital, 0)
	for rows.Next() {
		var h model.Hospital
		if err := rows.Scan(&h.ID, &h.Name, &h.PrincipalName, &h.PrincipalPosition); err != nil {
			return nil, err
		}
		items = append(items, h)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
