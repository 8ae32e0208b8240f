package store

import (
	"database/sql"
	"errors"
	"fmt"

	"cafe-order/pkg/database"
	"cafe-order/pkg/logger"
)

// PostgresStore keeps every collection as a single JSONB row, so the
// Postgres backend presents the same whole-collection-overwrite
// contract as the file store.
type PostgresStore struct {
	db     *database.DB
	logger *logger.Logger
}

const createCollectionsTable = `
CREATE TABLE IF NOT EXISTS collections (
	key        TEXT PRIMARY KEY,
	data       JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

func NewPostgresStore(db *database.DB, log *logger.Logger) (*PostgresStore, error) {
	if _, err := db.Exec(createCollectionsTable); err != nil {
		log.Error("Failed to ensure collections table", "error", err)
		return nil, fmt.Errorf("failed to ensure collections table: %v", err)
	}
	return &PostgresStore{
		db:     db,
		logger: log.WithComponent("postgres_store"),
	}, nil
}

func (s *PostgresStore) Get(key string) ([]byte, error) {
	var data []byte
	err := s.db.QueryRow(`SELECT data FROM collections WHERE key = $1`, key).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrKeyNotFound, key)
	}
	if err != nil {
		s.logger.Error("Failed to read collection", "key", key, "error", err)
		return nil, fmt.Errorf("failed to read collection %s: %v", key, err)
	}
	return data, nil
}

func (s *PostgresStore) Put(key string, data []byte) error {
	_, err := s.db.Exec(`
		INSERT INTO collections (key, data, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET data = EXCLUDED.data, updated_at = now()`,
		key, data)
	if err != nil {
		s.logger.Error("Failed to write collection", "key", key, "error", err)
		return fmt.Errorf("failed to write collection %s: %v", key, err)
	}

	s.logger.Debug("Collection written", "key", key, "bytes", len(data))
	return nil
}
