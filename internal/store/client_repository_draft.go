package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-site-forms/internal/logger"
	"github.com/MKhiriev/go-site-forms/models"
)

// draftRepository is the SQLite-backed [DraftRepository] of the terminal
// client. There is at most one draft per page key.
type draftRepository struct {
	db     *DB
	logger *logger.Logger
	now    func() time.Time
}

// NewDraftRepository constructs a [DraftRepository] backed by db.
func NewDraftRepository(db *DB, logger *logger.Logger) DraftRepository {
	return &draftRepository{db: db, logger: logger, now: time.Now}
}

// SaveDraft inserts or replaces the draft of draft.PageKey.
func (r *draftRepository) SaveDraft(ctx context.Context, draft models.Draft) error {
	data, err := json.Marshal(draft.Data)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrEncodingJSON, err)
	}

	_, err = r.db.ExecContext(ctx, saveDraft,
		draft.PageKey,
		draft.Locale,
		draft.Step,
		draft.SchemaVersion,
		string(data),
		r.now().UTC(),
	)
	if err != nil {
		r.logger.Err(err).Str("func", "draftRepository.SaveDraft").Str("page_key", draft.PageKey).Msg("failed to save draft")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// GetDraft returns the draft of pageKey or [ErrDraftNotFound].
func (r *draftRepository) GetDraft(ctx context.Context, pageKey string) (models.Draft, error) {
	var (
		draft models.Draft
		data  string
	)
	err := r.db.QueryRowContext(ctx, getDraft, pageKey).
		Scan(&draft.PageKey, &draft.Locale, &draft.Step, &draft.SchemaVersion, &data, &draft.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Draft{}, ErrDraftNotFound
	}
	if err != nil {
		r.logger.Err(err).Str("func", "draftRepository.GetDraft").Str("page_key", pageKey).Msg("failed to get draft")
		return models.Draft{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	if err = json.Unmarshal([]byte(data), &draft.Data); err != nil {
		return models.Draft{}, fmt.Errorf("%w: %w", ErrEncodingJSON, err)
	}

	return draft, nil
}

// DeleteDraft removes the draft of pageKey. Deleting a missing draft is not
// an error.
func (r *draftRepository) DeleteDraft(ctx context.Context, pageKey string) error {
	if _, err := r.db.ExecContext(ctx, deleteDraft, pageKey); err != nil {
		r.logger.Err(err).Str("func", "draftRepository.DeleteDraft").Str("page_key", pageKey).Msg("failed to delete draft")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}
