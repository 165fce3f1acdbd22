// Package migration creates the schema on first start.
package migration

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

type migrationStep struct {
	Name string
	SQL  string
}

// sentinelTable exists once the schema has been applied.
const sentinelTable = "public.obligatory_mobilities"

func mobilityTable(name, slots string) string {
	return fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
  id                  UUID        PRIMARY KEY,
  student_id          UUID        NOT NULL REFERENCES students (id),
  hospital_id         UUID        NOT NULL REFERENCES hospitals (id),
  rotation_service_id UUID        NOT NULL REFERENCES rotation_services (id),
  initial_date        DATE        NOT NULL,
  final_date          DATE        NOT NULL,
  canceled            BOOLEAN     NOT NULL DEFAULT false,
%s
  created_at          TIMESTAMPTZ NOT NULL DEFAULT now(),
  CHECK (initial_date <= final_date)
);`, name, slots)
}

var steps = []migrationStep{
	{
		Name: "create_table_specialties",
		SQL: `CREATE TABLE IF NOT EXISTS specialties (
  id   UUID PRIMARY KEY,
  name TEXT NOT NULL
);`,
	},
	{
		Name: "create_table_hospitals",
		SQL: `CREATE TABLE IF NOT EXISTS hospitals (
  id                 UUID PRIMARY KEY,
  name               TEXT NOT NULL,
  principal_name     TEXT NOT NULL DEFAULT '',
  principal_position TEXT NOT NULL DEFAULT ''
);`,
	},
	{
		Name: "create_table_students",
		SQL: `CREATE TABLE IF NOT EXISTS students (
  id           UUID PRIMARY KEY,
  first_name   TEXT NOT NULL,
  last_name    TEXT NOT NULL,
  specialty_id UUID NOT NULL REFERENCES specialties (id)
);`,
	},
	{
		Name: "create_table_rotation_services",
		SQL: `CREATE TABLE IF NOT EXISTS rotation_services (
  id           UUID PRIMARY KEY,
  name         TEXT NOT NULL,
  specialty_id UUID NOT NULL REFERENCES specialties (id)
);`,
	},
	{
		Name: "create_table_obligatory_mobilities",
		SQL: mobilityTable("obligatory_mobilities", `  presentation_office_document TEXT,
  evaluation_document          TEXT,`),
	},
	{
		Name: "create_table_optional_mobilities",
		SQL: mobilityTable("optional_mobilities", `  solicitude_document          TEXT,
  presentation_office_document TEXT,
  acceptance_document          TEXT,
  evaluation_document          TEXT,`),
	},
	{
		Name: "create_table_attachments",
		SQL: `CREATE TABLE IF NOT EXISTS attachments (
  id                  UUID        PRIMARY KEY,
  hospital_id         UUID        NOT NULL REFERENCES hospitals (id),
  specialty_id        UUID        NOT NULL REFERENCES specialties (id),
  initial_date        DATE        NOT NULL,
  final_date          DATE        NOT NULL,
  solicitude_document TEXT,
  acceptance_document TEXT,
  created_at          TIMESTAMPTZ NOT NULL DEFAULT now(),
  CHECK (initial_date <= final_date)
);`,
	},
	{
		Name: "create_table_templates",
		SQL: `CREATE TABLE IF NOT EXISTS templates (
  id                UUID        PRIMARY KEY,
  document_kind     TEXT        NOT NULL,
  slot_key          TEXT        NOT NULL,
  template_document TEXT,
  updated_at        TIMESTAMPTZ NOT NULL DEFAULT now(),
  UNIQUE (document_kind, slot_key)
);`,
	},
	{
		Name: "create_index_obligatory_mobilities_dates",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_obligatory_mobilities_dates ON obligatory_mobilities (hospital_id, initial_date, final_date);`,
	},
	{
		Name: "create_index_optional_mobilities_dates",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_optional_mobilities_dates ON optional_mobilities (hospital_id, initial_date, final_date);`,
	},
	{
		Name: "create_index_attachments_scope",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_attachments_scope ON attachments (hospital_id, specialty_id, initial_date, final_date);`,
	},
}

// EnsureMigrated applies every step unless the sentinel table already exists.
func EnsureMigrated(ctx context.Context, db *sql.DB, log *logrus.Entry, dbHost string) error {
	start := time.Now()
	log = log.WithFields(logrus.Fields{"component": "database", "db_host": dbHost})
	log.WithField("event", "db_migration_check").Info("checking schema")

	var exists bool
	if err := db.QueryRowContext(ctx, "SELECT to_regclass($1) IS NOT NULL", sentinelTable).Scan(&exists); err != nil {
		log.WithFields(logrus.Fields{
			"event":       "db_migration_failed",
			"duration_ms": time.Since(start).Milliseconds(),
		}).WithError(err).Error("failed to check sentinel table")
		return fmt.Errorf("check sentinel table: %w", err)
	}
	if exists {
		log.WithFields(logrus.Fields{
			"event":       "db_migration_skip",
			"duration_ms": time.Since(start).Milliseconds(),
		}).Info("schema already exists, skipping migration")
		return nil
	}

	for _, step := range steps {
		stepStart := time.Now()
		if _, err := db.ExecContext(ctx, step.SQL); err != nil {
			log.WithFields(logrus.Fields{
				"event":          "db_migration_failed",
				"migration_step": step.Name,
				"duration_ms":    time.Since(start).Milliseconds(),
			}).WithError(err).Error("migration step failed")
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}
		log.WithFields(logrus.Fields{
			"event":            "db_migration_step",
			"migration_step":   step.Name,
			"step_duration_ms": time.Since(stepStart).Milliseconds(),
		}).Debug("migration step applied")
	}

	log.WithFields(logrus.Fields{
		"event":       "db_migration_success",
		"steps":       len(steps),
		"duration_ms": time.Since(start).Milliseconds(),
	}).Info("schema migrated")
	return nil
}
