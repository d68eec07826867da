package migration

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"
)

type migrationStep struct {
	Name string
	SQL  string
}

// sentinelTable is created by the last step; its presence means the schema is complete.
const sentinelTable = "public.contacts"

var steps = []migrationStep{
	{
		Name: "create_table_realtors",
		SQL: `CREATE TABLE IF NOT EXISTS realtors (
  id          BIGSERIAL PRIMARY KEY,
  name        TEXT      NOT NULL CHECK (name <> ''),
  description TEXT      NOT NULL DEFAULT '',
  phone       TEXT      NOT NULL DEFAULT '',
  email       TEXT      NOT NULL DEFAULT '',
  is_mvp      BOOLEAN   NOT NULL DEFAULT false
);`,
	},
	{
		Name: "create_table_listings",
		SQL: `CREATE TABLE IF NOT EXISTS listings (
  id           BIGSERIAL        PRIMARY KEY,
  realtor_id   BIGINT           NOT NULL REFERENCES realtors (id),
  title        TEXT             NOT NULL CHECK (title <> ''),
  address      TEXT             NOT NULL DEFAULT '',
  city         TEXT             NOT NULL DEFAULT '',
  state        TEXT             NOT NULL DEFAULT '',
  zipcode      TEXT             NOT NULL DEFAULT '',
  description  TEXT             NOT NULL DEFAULT '',
  price        INTEGER          NOT NULL DEFAULT 0 CHECK (price >= 0),
  bedrooms     INTEGER          NOT NULL DEFAULT 0 CHECK (bedrooms >= 0),
  bathrooms    DOUBLE PRECISION NOT NULL DEFAULT 0,
  garage       INTEGER          NOT NULL DEFAULT 0,
  sqft         INTEGER          NOT NULL DEFAULT 0,
  lot_size     DOUBLE PRECISION NOT NULL DEFAULT 0,
  is_published BOOLEAN          NOT NULL DEFAULT true,
  list_date    TIMESTAMPTZ      NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_listings_published_list_date",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_listings_published_list_date ON listings (is_published, list_date DESC);`,
	},
	{
		Name: "create_index_listings_realtor_list_date",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_listings_realtor_list_date ON listings (realtor_id, list_date DESC);`,
	},
	{
		Name: "create_index_listings_city",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_listings_city ON listings (lower(city));`,
	},
	{
		Name: "create_table_property_images",
		SQL: `CREATE TABLE IF NOT EXISTS property_images (
  id           UUID        PRIMARY KEY,
  listing_id   BIGINT      NOT NULL REFERENCES listings (id) ON DELETE CASCADE,
  filename     TEXT        NOT NULL,
  storage_path TEXT        NOT NULL UNIQUE,
  size         BIGINT      NOT NULL CHECK (size >= 0),
  content_type TEXT        NOT NULL DEFAULT 'image/jpeg',
  featured     BOOLEAN     NOT NULL DEFAULT false,
  sort_order   INTEGER     NOT NULL DEFAULT 0,
  created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_property_images_listing",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_property_images_listing ON property_images (listing_id, sort_order);`,
	},
	{
		Name: "create_unique_index_property_images_featured",
		SQL:  `CREATE UNIQUE INDEX IF NOT EXISTS uq_property_images_featured ON property_images (listing_id) WHERE featured;`,
	},
	{
		Name: "create_table_contacts",
		SQL: `CREATE TABLE IF NOT EXISTS contacts (
  id            BIGSERIAL   PRIMARY KEY,
  listing_id    BIGINT      NOT NULL,
  listing_title TEXT        NOT NULL DEFAULT '',
  name          TEXT        NOT NULL,
  email         TEXT        NOT NULL,
  phone         TEXT        NOT NULL,
  message       TEXT        NOT NULL DEFAULT '',
  user_id       BIGINT,
  contact_date  TIMESTAMPTZ DEFAULT now()
);`,
	},
	{
		Name: "create_index_contacts_contact_date",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_contacts_contact_date ON contacts (contact_date DESC NULLS LAST, id DESC);`,
	},
}

// EnsureMigrated runs the schema steps unless the sentinel table already exists.
// Every step is idempotent, so a run interrupted halfway is completed on the next start.
func EnsureMigrated(ctx context.Context, db *sql.DB, log *zap.Logger, dbHost string) error {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.With(zap.String("component", "database"), zap.String("db_host", dbHost))
	start := time.Now()

	log.Info("db migration check", zap.String("event", "db_migration_check"))

	var exists bool
	query := "SELECT to_regclass('" + sentinelTable + "') IS NOT NULL"
	if err := db.QueryRowContext(ctx, query).Scan(&exists); err != nil {
		log.Error("db migration failed",
			zap.String("event", "db_migration_failed"),
			zap.Error(err),
			zap.Int64("duration_ms", time.Since(start).Milliseconds()))
		return fmt.Errorf("failed to check sentinel table: %w", err)
	}

	if exists {
		log.Info("schema already exists, skipping migration",
			zap.String("event", "db_migration_skip"),
			zap.Int64("duration_ms", time.Since(start).Milliseconds()))
		return nil
	}

	log.Info("db migration start", zap.String("event", "db_migration_start"), zap.Int("steps", len(steps)))

	for _, step := range steps {
		stepStart := time.Now()
		if _, err := db.ExecContext(ctx, step.SQL); err != nil {
			log.Error("db migration failed",
				zap.String("event", "db_migration_failed"),
				zap.String("migration_step", step.Name),
				zap.Error(err),
				zap.Int64("duration_ms", time.Since(start).Milliseconds()),
				zap.Int64("step_duration_ms", time.Since(stepStart).Milliseconds()))
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}

		log.Info("db migration step",
			zap.String("event", "db_migration_step"),
			zap.String("migration_step", step.Name),
			zap.Int64("step_duration_ms", time.Since(stepStart).Milliseconds()))
	}

	log.Info("db migration success",
		zap.String("event", "db_migration_success"),
		zap.Int64("duration_ms", time.Since(start).Milliseconds()))

	return nil
}
