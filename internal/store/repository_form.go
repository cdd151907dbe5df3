// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-site-forms/internal/logger"
	"github.com/MKhiriev/go-site-forms/models"
	"github.com/jackc/pgerrcode"
)

// formRepository is the PostgreSQL-backed implementation of
// [FormRepository]. Steps are stored as one JSONB document per form.
type formRepository struct {
	*DB
	logger *logger.Logger
}

// NewFormRepository constructs a [FormRepository] backed by db.
func NewFormRepository(db *DB, logger *logger.Logger) FormRepository {
	return &formRepository{
		DB:     db,
		logger: logger,
	}
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanForm(row rowScanner) (models.Form, error) {
	var (
		form  models.Form
		steps []byte
	)
	if err := row.Scan(&form.ID, &form.PageKey, &steps, &form.Version, &form.CreatedAt, &form.UpdatedAt); err != nil {
		return models.Form{}, err
	}
	if err := json.Unmarshal(steps, &form.Steps); err != nil {
		return models.Form{}, fmt.Errorf("%w: %w", ErrEncodingJSON, err)
	}
	return form, nil
}

// GetForm returns the form of pageKey or [ErrFormNotFound].
func (f *formRepository) GetForm(ctx context.Context, pageKey string) (models.Form, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildGetFormQuery(pageKey)
	if err != nil {
		return models.Form{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var form models.Form
	err = f.withRetry(ctx, func() error {
		var scanErr error
		form, scanErr = scanForm(f.QueryRowContext(ctx, query, args...))
		return scanErr
	})
	if errors.Is(err, sql.ErrNoRows) {
		return models.Form{}, ErrFormNotFound
	}
	if err != nil {
		log.Err(err).
			Str("func", "formRepository.GetForm").
			Str("page_key", pageKey).
			Msg("failed to get form")
		return models.Form{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return form, nil
}

// ListForms returns every stored form ordered by page key.
func (f *formRepository) ListForms(ctx context.Context) ([]models.Form, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListFormsQuery()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := f.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "formRepository.ListForms").Msg("failed to execute query for listing forms")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	forms := make([]models.Form, 0, 16)
	for rows.Next() {
		form, scanErr := scanForm(rows)
		if scanErr != nil {
			log.Err(scanErr).Str("func", "formRepository.ListForms").Msg("failed to scan form row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		forms = append(forms, form)
	}

	if err = rows.Err(); err != nil {
		log.Err(err).Str("func", "formRepository.ListForms").Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return forms, nil
}

// SaveForm stores form.Steps under optimistic locking.
//
// Within one transaction the stored version is locked and compared with
// form.Version:
//   - no row and version 0 → the form is created with version 1;
//   - row with the same version → steps replaced, version incremented;
//   - anything else → [ErrVersionConflict].
func (f *formRepository) SaveForm(ctx context.Context, form models.Form) (models.Form, error) {
	log := logger.FromContext(ctx).WithPage(form.PageKey)

	steps, err := json.Marshal(stepsOrEmpty(form.Steps))
	if err != nil {
		return models.Form{}, fmt.Errorf("%w: %w", ErrEncodingJSON, err)
	}

	tx, err := f.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "formRepository.SaveForm").Msg("failed to begin transaction")
		return models.Form{}, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	lockQuery, lockArgs, err := buildLockFormVersionQuery(form.PageKey)
	if err != nil {
		return models.Form{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var stored int64
	err = tx.QueryRowContext(ctx, lockQuery, lockArgs...).Scan(&stored)
	exists := true
	switch {
	case errors.Is(err, sql.ErrNoRows):
		exists = false
	case err != nil:
		log.Err(err).Str("func", "formRepository.SaveForm").Msg("failed to read stored version")
		return models.Form{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	if (!exists && form.Version != 0) || (exists && stored != form.Version) {
		log.Warn().
			Str("func", "formRepository.SaveForm").
			Int64("db_version", stored).
			Int64("provided_version", form.Version).
			Msg("optimistic lock failed: version mismatch on save")
		return models.Form{}, ErrVersionConflict
	}

	var query string
	var args []any
	if exists {
		query, args, err = buildUpdateFormQuery(form.PageKey, steps, form.Version)
	} else {
		query, args, err = buildInsertFormQuery(form.PageKey, steps)
	}
	if err != nil {
		return models.Form{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	saved, err := scanForm(tx.QueryRowContext(ctx, query, args...))
	if err != nil {
		if postgresError(err) == pgerrcode.UniqueViolation || errors.Is(err, sql.ErrNoRows) {
			// a concurrent editor created or bumped the form first
			return models.Form{}, ErrVersionConflict
		}
		log.Err(err).Str("func", "formRepository.SaveForm").Msg("failed to write form")
		return models.Form{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if err = tx.Commit(); err != nil {
		log.Err(err).Str("func", "formRepository.SaveForm").Msg("failed to commit transaction")
		return models.Form{}, fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	log.Info().Int64("version", saved.Version).Msg("form saved")
	return saved, nil
}

// DeleteForm removes the form of pageKey. Its submissions are kept.
func (f *formRepository) DeleteForm(ctx context.Context, pageKey string) error {
	query, args, err := buildDeleteFormQuery(pageKey)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := f.ExecContext(ctx, query, args...)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "formRepository.DeleteForm").Str("page_key", pageKey).Msg("failed to delete form")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrFormNotFound
	}

	return nil
}

func stepsOrEmpty(steps []models.FormStep) []models.FormStep {
	if steps == nil {
		return []models.FormStep{}
	}
	return steps
}
