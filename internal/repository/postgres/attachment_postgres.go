package postgres

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"mobilityapi/internal/model"
	"mobilityapi/internal/repository"
)

// AttachmentPostgres is a PostgreSQL implementation of repository.AttachmentRepository.
type AttachmentPostgres struct {
	db *sql.DB
}

// NewAttachmentPostgres creates a new AttachmentPostgres repository.
func NewAttachmentPostgres(db *sql.DB) *AttachmentPostgres {
	return &AttachmentPostgres{db: db}
}

var _ repository.AttachmentRepository = (*AttachmentPostgres)(nil)

const attachmentColumns = `id, hospital_id, specialty_id, initial_date, final_date, created_at, solicitude_document, acceptance_document`

func scanAttachment(row scanner) (*model.Attachment, error) {
	var a model.Attachment
	var solicitude, acceptance sql.NullString
	if err := row.Scan(
		&a.ID,
		&a.HospitalID,
		&a.SpecialtyID,
		&a.InitialDate,
		&a.FinalDate,
		&a.CreatedAt,
		&solicitude,
		&acceptance,
	); err != nil {
		return nil, err
	}
	if solicitude.Valid {
		a.Documents.Solicitude = &solicitude.String
	}
	if acceptance.Valid {
		a.Documents.Acceptance = &acceptance.String
	}
	return &a, nil
}

func (r *AttachmentPostgres) Create(ctx context.Context, a *model.Attachment) (*model.Attachment, error) {
	const q = `
		INSERT INTO attachments (id, hospital_id, specialty_id, initial_date, final_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + attachmentColumns
	row := r.db.QueryRowContext(ctx, q,
		a.ID,
		a.HospitalID,
		a.SpecialtyID,
		a.InitialDate,
		a.FinalDate,
		a.CreatedAt,
	)
	return scanAttachment(row)
}

func (r *AttachmentPostgres) FindByID(ctx context.Context, id uuid.UUID) (*model.Attachment, error) {
	const q = `SELECT ` + attachmentColumns + ` FROM attachments WHERE id = $1`
	return scanAttachment(r.db.QueryRowContext(ctx, q, id))
}

func (r *AttachmentPostgres) Update(ctx context.Context, a *model.Attachment) (int64, error) {
	const q = `
		UPDATE attachments
		SET hospital_id = $2, specialty_id = $3, initial_date = $4, final_date = $5
		WHERE id = $1
		  AND (hospital_id, specialty_id, initial_date, final_date)
		      IS DISTINCT FROM ($2::uuid, $3::uuid, $4::date, $5::date)
	`
	return execAffected(ctx, r.db, q, a.ID, a.HospitalID, a.SpecialtyID, a.InitialDate, a.FinalDate)
}

func (r *AttachmentPostgres) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	return execAffected(ctx, r.db, `DELETE FROM attachments WHERE id = $1`, id)
}

func (r *AttachmentPostgres) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var ok bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM attachments WHERE id = $1)`, id).Scan(&ok)
	return ok, err
}

// List returns attachments overlapping the query period, ordered by period.
func (r *AttachmentPostgres) List(ctx context.Context, aq repository.AttachmentQuery) ([]model.Attachment, error) {
	var w whereBuilder
	w.add("initial_date <= $%d", aq.FinalDate)
	w.add("final_date >= $%d", aq.InitialDate)
	if aq.HospitalID != nil {
		w.add("hospital_id = $%d", *aq.HospitalID)
	}
	if aq.SpecialtyID != nil {
		w.add("specialty_id = $%d", *aq.SpecialtyID)
	}
	q := `SELECT ` + attachmentColumns + ` FROM attachments ` + w.String() + ` ORDER BY initial_date, final_date, id`

	rows, err := r.db.QueryContext(ctx, q, w.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Attachment, 0)
	for rows.Next() {
		a, err := scanAttachment(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *AttachmentPostgres) Documents(ctx context.Context, id uuid.UUID) (model.DocumentSet, error) {
	const q = `SELECT solicitude_document, acceptance_document FROM attachments WHERE id = $1`
	var solicitude, acceptance sql.NullString
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&solicitude, &acceptance); err != nil {
		return nil, err
	}
	docs := &model.AttachmentDocuments{}
	if solicitude.Valid {
		docs.Solicitude = &solicitude.String
	}
	if acceptance.Valid {
		docs.Acceptance = &acceptance.String
	}
	return docs, nil
}

func (r *AttachmentPostgres) UpdateDocument(ctx context.Context, id uuid.UUID, key model.SlotKey, filename *string) (int64, error) {
	col, err := slotColumn(model.CategoryAttachment, key)
	if err != nil {
		return 0, err
	}
	q := `UPDATE attachments SET ` + col + ` = $2 WHERE id = $1 AND ` + col + ` IS DISTINCT FROM $2::text`
	return execAffected(ctx, r.db, q, id, nullString(filename))
}
