package hashmyfiles

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // pure Go sqlite driver
)

// FileRecord represents a known-good hash persisted for a file.
// At most one record exists per path.
type FileRecord struct {
	Path     string
	Hash     string // lowercase hex digest
	HashType uint16
	LastSeen time.Time
}

// HashStore persists known-good file hashes in a local SQLite database.
// A store is opened once per run and closed on exit.
type HashStore struct {
	path string
	db   *sql.DB
}

// OpenStore opens or creates the hash database at path and ensures the schema
func OpenStore(path string) (*HashStore, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open hash database %s: %w", path, err)
	}

	store := &HashStore{path: path, db: db}
	if err := store.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}

	return store, nil
}

// ensureSchema creates the hashes table if missing
func (hs *HashStore) ensureSchema() error {
	_, err := hs.db.Exec(`CREATE TABLE IF NOT EXISTS hashes (
		path      TEXT PRIMARY KEY,
		hash      TEXT NOT NULL,
		hash_type INTEGER NOT NULL,
		last_seen DATETIME NOT NULL
	)`)
	if err != nil {
		return fmt.Errorf("failed to create hashes table: %w", err)
	}
	return nil
}

// Path returns the database file path
func (hs *HashStore) Path() string {
	return hs.path
}

// Get returns the record for a path, or nil if no record exists
func (hs *HashStore) Get(path string) (*FileRecord, error) {
	record := &FileRecord{}
	err := hs.db.QueryRow(
		`SELECT path, hash, hash_type, last_seen FROM hashes WHERE path = ?`, path,
	).Scan(&record.Path, &record.Hash, &record.HashType, &record.LastSeen)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query hash for %s: %w", path, err)
	}
	return record, nil
}

// Upsert inserts or replaces the record for a path
func (hs *HashStore) Upsert(record *FileRecord) error {
	_, err := hs.db.Exec(
		`INSERT INTO hashes(path, hash, hash_type, last_seen) VALUES(?, ?, ?, ?)
		 ON CONFLICT(path) DO UPDATE SET
			hash = excluded.hash,
			hash_type = excluded.hash_type,
			last_seen = excluded.last_seen`,
		record.Path, record.Hash, record.HashType, record.LastSeen,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert hash for %s: %w", record.Path, err)
	}
	if IsDebugEnabled("store") {
		VerboseLog(3, "Upsert: %s = %s", record.Path, record.Hash)
	}
	return nil
}

// All returns every record in the store, ordered by path
func (hs *HashStore) All() ([]FileRecord, error) {
	rows, err := hs.db.Query(`SELECT path, hash, hash_type, last_seen FROM hashes ORDER BY path`)
	if err != nil {
		return nil, fmt.Errorf("failed to list hashes: %w", err)
	}
	defer rows.Close()

	var records []FileRecord
	for rows.Next() {
		var record FileRecord
		if err := rows.Scan(&record.Path, &record.Hash, &record.HashType, &record.LastSeen); err != nil {
			return nil, fmt.Errorf("failed to scan hash row: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate hashes: %w", err)
	}

	return records, nil
}

// Count returns the number of records in the store
func (hs *HashStore) Count() (int, error) {
	var count int
	if err := hs.db.QueryRow(`SELECT COUNT(*) FROM hashes`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count hashes: %w", err)
	}
	return count, nil
}

// Close closes the underlying database connection
func (hs *HashStore) Close() error {
	return hs.db.Close()
}
