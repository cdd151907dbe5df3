package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-site-forms/internal/logger"
	"github.com/MKhiriev/go-site-forms/internal/store"
	"github.com/MKhiriev/go-site-forms/internal/utils"
	"github.com/MKhiriev/go-site-forms/internal/validators"
	"github.com/MKhiriev/go-site-forms/models"
)

const (
	DefaultSubmissionsLimit uint64 = 50
	MaxSubmissionsLimit     uint64 = 500
)

type submissionService struct {
	formRepository       store.FormRepository
	submissionRepository store.SubmissionRepository
	validator            validators.Validator

	logger *logger.Logger
}

func NewSubmissionService(formRepository store.FormRepository, submissionRepository store.SubmissionRepository, logger *logger.Logger) SubmissionService {
	return &submissionService{
		formRepository:       formRepository,
		submissionRepository: submissionRepository,
		validator:            validators.NewSubmissionValidator(),
		logger:               logger,
	}
}

// Submit checks data against the current schema of pageKey and stores it.
// The submitter is taken from a verified session in ctx, if there is one.
func (s *submissionService) Submit(ctx context.Context, pageKey string, data models.SubmissionData) (models.Submission, error) {
	log := logger.FromContext(ctx).WithPage(pageKey)

	if !ValidPageKey(pageKey) {
		return models.Submission{}, ErrInvalidPageKey
	}

	form, err := s.formRepository.GetForm(ctx, pageKey)
	if err != nil {
		return models.Submission{}, fmt.Errorf("error getting form for submission: %w", err)
	}
	if form.IsEmpty() {
		return models.Submission{}, store.ErrFormNotFound
	}

	if err = s.validator.Validate(ctx, validators.FormAnswers{Form: form, Data: data}); err != nil {
		log.Debug().Err(err).Msg("submission rejected")
		return models.Submission{}, fmt.Errorf("%w: %w", ErrSubmissionValidation, err)
	}

	submission := models.Submission{
		FormID:        form.ID,
		PageKey:       pageKey,
		SchemaVersion: form.Version,
		Data:          data,
	}
	if user, ok := utils.GetSessionUserFromContext(ctx); ok {
		submission.UserEmail = user.Email
		submission.UserName = user.Name
	}

	created, err := s.submissionRepository.CreateSubmission(ctx, submission)
	if err != nil {
		return models.Submission{}, fmt.Errorf("error saving submission: %w", err)
	}

	return created, nil
}

// ListSubmissions returns one page of submissions, newest first, with the
// total count of the page key.
func (s *submissionService) ListSubmissions(ctx context.Context, filter models.SubmissionFilter) (models.SubmissionsResponse, error) {
	if !ValidPageKey(filter.PageKey) {
		return models.SubmissionsResponse{}, ErrInvalidPageKey
	}

	switch {
	case filter.Limit == 0:
		filter.Limit = DefaultSubmissionsLimit
	case filter.Limit > MaxSubmissionsLimit:
		filter.Limit = MaxSubmissionsLimit
	}

	submissions, err := s.submissionRepository.ListSubmissions(ctx, filter)
	if err != nil {
		return models.SubmissionsResponse{}, fmt.Errorf("error listing submissions: %w", err)
	}

	total, err := s.submissionRepository.CountSubmissions(ctx, filter.PageKey)
	if err != nil {
		return models.SubmissionsResponse{}, fmt.Errorf("error counting submissions: %w", err)
	}

	return models.SubmissionsResponse{
		Submissions: submissions,
		Total:       total,
		Offset:      filter.Offset,
		Limit:       filter.Limit,
	}, nil
}
