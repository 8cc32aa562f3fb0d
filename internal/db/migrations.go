package db

import (
	"strings"

	"github.com/cockroachdb/errors"
	zlog "github.com/rs/zerolog/log"
)

// RunMigrations applies any pending database migrations
func (db *DB) RunMigrations() error {
	if err := db.runSettingsTableMigration(); err != nil {
		return err
	}

	if err := db.runUpdatedAtMigration(); err != nil {
		return err
	}

	return nil
}

// runSettingsTableMigration creates the settings table in files created by other tools
func (db *DB) runSettingsTableMigration() error {
	var count int
	err := db.conn.QueryRow(`
		SELECT COUNT(*)
		FROM sqlite_master
		WHERE type = 'table' AND name = 'settings'
	`).Scan(&count)
	if err != nil {
		return errors.Wrap(err, "checking for settings table")
	}

	if count == 0 {
		zlog.Info().Msg("Running migration: creating settings table")
		_, err := db.conn.Exec(`CREATE TABLE settings (key TEXT PRIMARY KEY, value TEXT NOT NULL)`)
		if err != nil {
			return errors.Wrap(err, "creating settings table")
		}
	}

	return nil
}

func (db *DB) runUpdatedAtMigration() error {
	var count int
	err := db.conn.QueryRow(`
		SELECT COUNT(*)
		FROM pragma_table_info('settings')
		WHERE name = 'updated_at'
	`).Scan(&count)
	if err != nil {
		return errors.Wrap(err, "checking for updated_at column")
	}

	if count == 0 {
		zlog.Info().Msg("Running migration: adding updated_at column")

		tx, err := db.conn.Begin()
		if err != nil {
			return errors.Wrap(err, "starting transaction")
		}
		defer tx.Rollback()

		// SQLite refuses non-constant defaults in ALTER TABLE, so backfill instead
		_, err = tx.Exec(`ALTER TABLE settings ADD COLUMN updated_at DATETIME`)
		if err != nil && !strings.Contains(err.Error(), "duplicate column name") {
			return errors.Wrap(err, "adding updated_at column")
		}
		if _, err := tx.Exec(`UPDATE settings SET updated_at = CURRENT_TIMESTAMP WHERE updated_at IS NULL`); err != nil {
			return errors.Wrap(err, "backfilling updated_at")
		}

		if err := tx.Commit(); err != nil {
			return errors.Wrap(err, "committing migration")
		}

		zlog.Info().Msg("Migration completed successfully")
	}

	return nil
}
