package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-site-forms/internal/logger"
	"github.com/MKhiriev/go-site-forms/models"
)

// contentRepository is the PostgreSQL-backed implementation of
// [ContentRepository] over the "page_contents" table.
type contentRepository struct {
	*DB
	logger *logger.Logger
}

// NewContentRepository constructs a [ContentRepository] backed by db.
func NewContentRepository(db *DB, logger *logger.Logger) ContentRepository {
	return &contentRepository{
		DB:     db,
		logger: logger,
	}
}

// GetContent returns the document of pageKey in locale or
// [ErrContentNotFound].
func (c *contentRepository) GetContent(ctx context.Context, pageKey, locale string) (models.PageContent, error) {
	query, args, err := buildGetContentQuery(pageKey, locale)
	if err != nil {
		return models.PageContent{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var (
		content models.PageContent
		data    []byte
	)
	err = c.withRetry(ctx, func() error {
		return c.QueryRowContext(ctx, query, args...).
			Scan(&content.PageKey, &content.Locale, &data, &content.UpdatedAt)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return models.PageContent{}, ErrContentNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "contentRepository.GetContent").
			Str("page_key", pageKey).
			Str("locale", locale).
			Msg("failed to get page content")
		return models.PageContent{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}
	content.Data = data

	return content, nil
}

// UpdateContent locks the stored documents of pageKey, passes them to update
// keyed by locale and upserts the documents update returns. A locale with no
// stored document is absent from the map. An error from update is returned
// unwrapped and nothing is written.
func (c *contentRepository) UpdateContent(ctx context.Context, pageKey string, update ContentUpdate) error {
	log := logger.FromContext(ctx).WithPage(pageKey)

	tx, err := c.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "contentRepository.UpdateContent").Msg("failed to begin transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	docs, err := lockContents(ctx, tx, pageKey)
	if err != nil {
		log.Err(err).Str("func", "contentRepository.UpdateContent").Msg("failed to lock page contents")
		return err
	}

	contents, err := update(docs)
	if err != nil {
		return err
	}

	for _, content := range contents {
		query, args, buildErr := buildUpsertContentQuery(content)
		if buildErr != nil {
			return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, buildErr)
		}

		if _, err = tx.ExecContext(ctx, query, args...); err != nil {
			log.Err(err).
				Str("func", "contentRepository.UpdateContent").
				Str("locale", content.Locale).
				Msg("failed to upsert page content")
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
	}

	if err = tx.Commit(); err != nil {
		log.Err(err).Str("func", "contentRepository.UpdateContent").Msg("failed to commit transaction")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return nil
}

func lockContents(ctx context.Context, tx *sql.Tx, pageKey string) (map[string]models.PageContent, error) {
	query, args, err := buildLockContentsQuery(pageKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := tx.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	docs := make(map[string]models.PageContent)
	for rows.Next() {
		var (
			doc  models.PageContent
			data []byte
		)
		if err = rows.Scan(&doc.PageKey, &doc.Locale, &data, &doc.UpdatedAt); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		doc.Data = data
		docs[doc.Locale] = doc
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return docs, nil
}
