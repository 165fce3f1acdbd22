package postgres

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"mobilityapi/internal/model"
	"mobilityapi/internal/repository"
)

// TemplatePostgres is a PostgreSQL implementation of repository.TemplateRepository.
type TemplatePostgres struct {
	db *sql.DB
}

// NewTemplatePostgres creates a new TemplatePostgres repository.
func NewTemplatePostgres(db *sql.DB) *TemplatePostgres {
	return &TemplatePostgres{db: db}
}

var _ repository.TemplateRepository = (*TemplatePostgres)(nil)

const templateColumns = `id, document_kind, slot_key, template_document, updated_at`

func scanTemplate(row scanner) (*model.Template, error) {
	var t model.Template
	var doc sql.NullString
	if err := row.Scan(&t.ID, &t.DocumentKind, &t.SlotKey, &doc, &t.UpdatedAt); err != nil {
		return nil, err
	}
	if doc.Valid {
		t.Documents.Template = &doc.String
	}
	return &t, nil
}

func (r *TemplatePostgres) Find(ctx context.Context, kind model.Category, slot model.SlotKey) (*model.Template, error) {
	const q = `SELECT ` + templateColumns + ` FROM templates WHERE document_kind = $1 AND slot_key = $2`
	return scanTemplate(r.db.QueryRowContext(ctx, q, string(kind), string(slot)))
}

// Ensure inserts the (kind, slot) row if missing. The no-op DO UPDATE makes
// RETURNING yield the existing row on conflict.
func (r *TemplatePostgres) Ensure(ctx context.Context, kind model.Category, slot model.SlotKey) (*model.Template, error) {
	const q = `
		INSERT INTO templates (id, document_kind, slot_key, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (document_kind, slot_key) DO UPDATE SET document_kind = EXCLUDED.document_kind
		RETURNING ` + templateColumns
	return scanTemplate(r.db.QueryRowContext(ctx, q, uuid.New(), string(kind), string(slot)))
}

func (r *TemplatePostgres) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	return execAffected(ctx, r.db, `DELETE FROM templates WHERE id = $1`, id)
}

func (r *TemplatePostgres) Documents(ctx context.Context, id uuid.UUID) (model.DocumentSet, error) {
	var doc sql.NullString
	if err := r.db.QueryRowContext(ctx, `SELECT template_document FROM templates WHERE id = $1`, id).Scan(&doc); err != nil {
		return nil, err
	}
	docs := &model.TemplateDocuments{}
	if doc.Valid {
		docs.Template = &doc.String
	}
	return docs, nil
}

func (r *TemplatePostgres) UpdateDocument(ctx context.Context, id uuid.UUID, key model.SlotKey, filename *string) (int64, error) {
	if _, err := slotColumn(model.CategoryTemplate, key); err != nil {
		return 0, err
	}
	const q = `
		UPDATE templates SET template_document = $2, updated_at = now()
		WHERE id = $1 AND template_document IS DISTINCT FROM $2::text
	`
	return execAffected(ctx, r.db, q, id, nullString(filename))
}
