package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-site-forms/internal/config"
	"github.com/MKhiriev/go-site-forms/internal/logger"
)

// Storages groups the server repositories.
type Storages struct {
	AdminRepository      AdminRepository
	FormRepository       FormRepository
	SubmissionRepository SubmissionRepository
	ContentRepository    ContentRepository
	FileStorage          FileStorage

	db *DB
}

// NewStorages connects to PostgreSQL, applies migrations and wires every
// repository.
func NewStorages(ctx context.Context, cfg config.Storage, logger *logger.Logger) (*Storages, error) {
	logger.Info().Msg("creating new storages...")

	db, err := NewConnectPostgres(ctx, cfg.DB, logger)
	if err != nil {
		return nil, fmt.Errorf("postgres connection error: %w", err)
	}

	if err = db.Migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	files, err := NewLocalFileStorage(cfg.Files.UploadDir, logger)
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Storages{
		AdminRepository:      NewAdminRepository(db, logger),
		FormRepository:       NewFormRepository(db, logger),
		SubmissionRepository: NewSubmissionRepository(db, logger),
		ContentRepository:    NewContentRepository(db, logger),
		FileStorage:          files,
		db:                   db,
	}, nil
}

// Close releases the database connection.
func (s *Storages) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
