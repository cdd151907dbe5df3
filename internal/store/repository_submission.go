package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-site-forms/internal/logger"
	"github.com/MKhiriev/go-site-forms/models"
)

// submissionRepository is the PostgreSQL-backed implementation of
// [SubmissionRepository]. Answers are stored as a JSONB document.
type submissionRepository struct {
	*DB
	logger *logger.Logger
}

// NewSubmissionRepository constructs a [SubmissionRepository] backed by db.
func NewSubmissionRepository(db *DB, logger *logger.Logger) SubmissionRepository {
	return &submissionRepository{
		DB:     db,
		logger: logger,
	}
}

func scanSubmission(row rowScanner) (models.Submission, error) {
	var (
		s    models.Submission
		data []byte
	)
	err := row.Scan(&s.ID, &s.FormID, &s.PageKey, &s.SchemaVersion, &s.UserEmail, &s.UserName, &data, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return models.Submission{}, err
	}
	if err = json.Unmarshal(data, &s.Data); err != nil {
		return models.Submission{}, fmt.Errorf("%w: %w", ErrEncodingJSON, err)
	}
	return s, nil
}

// CreateSubmission inserts one submission. Every call is an independent
// insert; there is no idempotency key.
func (s *submissionRepository) CreateSubmission(ctx context.Context, submission models.Submission) (models.Submission, error) {
	log := logger.FromContext(ctx).WithPage(submission.PageKey)

	data, err := json.Marshal(submission.Data)
	if err != nil {
		return models.Submission{}, fmt.Errorf("%w: %w", ErrEncodingJSON, err)
	}

	query, args, err := buildCreateSubmissionQuery(submission, data)
	if err != nil {
		return models.Submission{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	created, err := scanSubmission(s.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Submission{}, ErrSubmissionNotSaved
	}
	if err != nil {
		log.Err(err).Str("func", "submissionRepository.CreateSubmission").Msg("failed to insert submission")
		return models.Submission{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	log.Info().Int64("submission_id", created.ID).Msg("submission saved")
	return created, nil
}

// ListSubmissions returns a page of submissions, newest first.
func (s *submissionRepository) ListSubmissions(ctx context.Context, filter models.SubmissionFilter) ([]models.Submission, error) {
	log := logger.FromContext(ctx).WithPage(filter.PageKey)

	query, args, err := buildListSubmissionsQuery(filter)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var rows *sql.Rows
	err = s.withRetry(ctx, func() error {
		var queryErr error
		rows, queryErr = s.QueryContext(ctx, query, args...)
		return queryErr
	})
	if err != nil {
		log.Err(err).Str("func", "submissionRepository.ListSubmissions").Msg("failed to execute query for listing submissions")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	result := make([]models.Submission, 0, filter.Limit)
	for rows.Next() {
		item, scanErr := scanSubmission(rows)
		if scanErr != nil {
			log.Err(scanErr).Str("func", "submissionRepository.ListSubmissions").Msg("failed to scan submission row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		result = append(result, item)
	}

	if err = rows.Err(); err != nil {
		log.Err(err).Str("func", "submissionRepository.ListSubmissions").Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return result, nil
}

// CountSubmissions returns the number of submissions of a page.
func (s *submissionRepository) CountSubmissions(ctx context.Context, pageKey string) (int64, error) {
	query, args, err := buildCountSubmissionsQuery(pageKey)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var count int64
	err = s.withRetry(ctx, func() error {
		return s.QueryRowContext(ctx, query, args...).Scan(&count)
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "submissionRepository.CountSubmissions").Str("page_key", pageKey).Msg("failed to count submissions")
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return count, nil
}
