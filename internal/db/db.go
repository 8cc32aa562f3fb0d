package db

import (
	"database/sql"
	"os"

	"github.com/cockroachdb/errors"
	_ "github.com/mattn/go-sqlite3"
)

// DB wraps the database connection
type DB struct {
	conn *sql.DB
}

// Open creates a new database connection
func Open(dbPath string) (*DB, error) {
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		return nil, errors.Newf("database not found at %s\nRun 'callsim init' to create it", dbPath)
	}

	conn, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, errors.Wrap(err, "opening database")
	}

	db := &DB{conn: conn}

	if err := db.RunMigrations(); err != nil {
		conn.Close()
		return nil, errors.Wrap(err, "running migrations")
	}

	return db, nil
}

// OpenOrInitialize opens dbPath, creating the schema first when the file does not exist
func OpenOrInitialize(dbPath string) (*DB, error) {
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		if err := Initialize(dbPath); err != nil {
			return nil, err
		}
	}
	return Open(dbPath)
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.conn.Close()
}

// GetValue returns the value stored under key. ok is false when no record exists.
func (db *DB) GetValue(key string) (value string, ok bool, err error) {
	err = db.conn.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, errors.Wrapf(err, "reading %s", key)
	}
	return value, true, nil
}

// SetValue overwrites the record stored under key
func (db *DB) SetValue(key, value string) error {
	query := `
		INSERT INTO settings (key, value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = CURRENT_TIMESTAMP
	`
	if _, err := db.conn.Exec(query, key, value); err != nil {
		return errors.Wrapf(err, "writing %s", key)
	}
	return nil
}

// DeleteValue removes the record stored under key, if any
func (db *DB) DeleteValue(key string) error {
	if _, err := db.conn.Exec(`DELETE FROM settings WHERE key = ?`, key); err != nil {
		return errors.Wrapf(err, "deleting %s", key)
	}
	return nil
}

// ListRecords returns every record ordered by key
func (db *DB) ListRecords() ([]Record, error) {
	rows, err := db.conn.Query(`SELECT key, value, updated_at FROM settings ORDER BY key`)
	if err != nil {
		return nil, errors.Wrap(err, "querying settings")
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var r Record
		var updated sql.NullTime
		if err := rows.Scan(&r.Key, &r.Value, &updated); err != nil {
			return nil, errors.Wrap(err, "scanning setting")
		}
		if updated.Valid {
			r.UpdatedAt = updated.Time
		}
		records = append(records, r)
	}

	return records, rows.Err()
}
