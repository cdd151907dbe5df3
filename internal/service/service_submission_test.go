package service

import (
	"context"
	"testing"

	"github.com/MKhiriev/go-site-forms/internal/logger"
	"github.com/MKhiriev/go-site-forms/internal/mock"
	"github.com/MKhiriev/go-site-forms/internal/store"
	"github.com/MKhiriev/go-site-forms/internal/utils"
	"github.com/MKhiriev/go-site-forms/internal/validators"
	"github.com/MKhiriev/go-site-forms/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestSubmissionSvc(t *testing.T) (SubmissionService, *mock.MockFormRepository, *mock.MockSubmissionRepository) {
	t.Helper()
	ctrl := gomock.NewController(t)
	forms := mock.NewMockFormRepository(ctrl)
	submissions := mock.NewMockSubmissionRepository(ctrl)

	return NewSubmissionService(forms, submissions, logger.Nop()), forms, submissions
}

// ── Submit ───────────────────────────────────────────────────────────────────

func TestSubmissionService_Submit_Anonymous(t *testing.T) {
	svc, forms, submissions := newTestSubmissionSvc(t)
	ctx := context.Background()
	data := models.SubmissionData{"step_0": {"field_0": "a@b.com"}}

	forms.EXPECT().GetForm(ctx, "contact").Return(contactForm(), nil)
	submissions.EXPECT().CreateSubmission(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, s models.Submission) (models.Submission, error) {
			assert.Equal(t, int64(7), s.FormID)
			assert.Equal(t, int64(3), s.SchemaVersion)
			assert.Equal(t, data, s.Data)
			assert.Empty(t, s.UserEmail)
			s.ID = 1
			return s, nil
		},
	)

	created, err := svc.Submit(ctx, "contact", data)
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)
}

func TestSubmissionService_Submit_AttributesSessionUser(t *testing.T) {
	svc, forms, submissions := newTestSubmissionSvc(t)
	ctx := utils.WithSessionUser(context.Background(), models.GoogleUser{Email: "ann@example.com", Name: "Ann"})

	forms.EXPECT().GetForm(ctx, "contact").Return(contactForm(), nil)
	submissions.EXPECT().CreateSubmission(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, s models.Submission) (models.Submission, error) {
			assert.Equal(t, "ann@example.com", s.UserEmail)
			assert.Equal(t, "Ann", s.UserName)
			return s, nil
		},
	)

	_, err := svc.Submit(ctx, "contact", models.SubmissionData{"step_0": {"field_0": "x"}})
	require.NoError(t, err)
}

func TestSubmissionService_Submit_RequiredAnswerMissing(t *testing.T) {
	svc, forms, submissions := newTestSubmissionSvc(t)
	ctx := context.Background()

	forms.EXPECT().GetForm(ctx, "contact").Return(contactForm(), nil)
	submissions.EXPECT().CreateSubmission(gomock.Any(), gomock.Any()).Times(0)

	_, err := svc.Submit(ctx, "contact", models.SubmissionData{"step_0": {"field_0": "   "}})
	require.ErrorIs(t, err, ErrSubmissionValidation)
	require.ErrorIs(t, err, validators.ErrRequiredAnswerMissing)
}

func TestSubmissionService_Submit_FormNotFound(t *testing.T) {
	svc, forms, _ := newTestSubmissionSvc(t)
	ctx := context.Background()

	forms.EXPECT().GetForm(ctx, "contact").Return(models.Form{}, store.ErrFormNotFound)

	_, err := svc.Submit(ctx, "contact", models.SubmissionData{"step_0": {"field_0": "x"}})
	require.ErrorIs(t, err, store.ErrFormNotFound)
}

func TestSubmissionService_Submit_EmptyForm(t *testing.T) {
	svc, forms, _ := newTestSubmissionSvc(t)
	ctx := context.Background()

	forms.EXPECT().GetForm(ctx, "contact").Return(models.Form{ID: 1, PageKey: "contact"}, nil)

	_, err := svc.Submit(ctx, "contact", models.SubmissionData{"step_0": {"field_0": "x"}})
	require.ErrorIs(t, err, store.ErrFormNotFound)
}

// ── ListSubmissions ──────────────────────────────────────────────────────────

func TestSubmissionService_ListSubmissions_Limits(t *testing.T) {
	tests := []struct {
		name      string
		limit     uint64
		wantLimit uint64
	}{
		{name: "default", limit: 0, wantLimit: DefaultSubmissionsLimit},
		{name: "as requested", limit: 20, wantLimit: 20},
		{name: "capped", limit: 10_000, wantLimit: MaxSubmissionsLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, submissions := newTestSubmissionSvc(t)
			ctx := context.Background()

			want := models.SubmissionFilter{PageKey: "contact", Offset: 5, Limit: tt.wantLimit}
			submissions.EXPECT().ListSubmissions(ctx, want).Return([]models.Submission{{ID: 9}}, nil)
			submissions.EXPECT().CountSubmissions(ctx, "contact").Return(int64(6), nil)

			page, err := svc.ListSubmissions(ctx, models.SubmissionFilter{PageKey: "contact", Offset: 5, Limit: tt.limit})
			require.NoError(t, err)
			assert.Equal(t, int64(6), page.Total)
			assert.Equal(t, tt.wantLimit, page.Limit)
			assert.Equal(t, uint64(5), page.Offset)
			assert.Len(t, page.Submissions, 1)
		})
	}
}
