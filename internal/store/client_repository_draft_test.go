package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/MKhiriev/go-site-forms/internal/logger"
	"github.com/MKhiriev/go-site-forms/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDraftRepo(t *testing.T, now time.Time) (*draftRepository, sqlmock.Sqlmock) {
	db, mock := newTestDB(t)
	return &draftRepository{db: db, logger: logger.Nop(), now: func() time.Time { return now }}, mock
}

func TestSaveDraft(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	repo, mock := newTestDraftRepo(t, now)

	draft := models.Draft{
		PageKey:       "contact",
		Locale:        "hy",
		Step:          1,
		SchemaVersion: 3,
		Data:          models.SubmissionData{"step_0": {"field_0": "Անի"}},
	}

	mock.ExpectExec("INSERT INTO drafts").
		WithArgs("contact", "hy", 1, int64(3), `{"step_0":{"field_0":"Անի"}}`, now).
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, repo.SaveDraft(context.Background(), draft))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetDraft(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	repo, mock := newTestDraftRepo(t, now)

	mock.ExpectQuery("SELECT (.+) FROM drafts").
		WithArgs("contact").
		WillReturnRows(sqlmock.NewRows([]string{"page_key", "locale", "step", "schema_version", "data", "updated_at"}).
			AddRow("contact", "en", 2, 3, `{"step_0":{"field_0":"Ann"}}`, now))

	draft, err := repo.GetDraft(context.Background(), "contact")
	require.NoError(t, err)

	assert.Equal(t, 2, draft.Step)
	assert.Equal(t, int64(3), draft.SchemaVersion)
	v, ok := draft.Data.Answer(0, 0)
	assert.True(t, ok)
	assert.Equal(t, "Ann", v)
}

func TestGetDraft_NotFound(t *testing.T) {
	repo, mock := newTestDraftRepo(t, time.Now())

	mock.ExpectQuery("SELECT (.+) FROM drafts").
		WithArgs("contact").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetDraft(context.Background(), "contact")
	require.ErrorIs(t, err, ErrDraftNotFound)
}

func TestDeleteDraft(t *testing.T) {
	repo, mock := newTestDraftRepo(t, time.Now())

	mock.ExpectExec("DELETE FROM drafts").
		WithArgs("contact").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.DeleteDraft(context.Background(), "contact"))
}

func TestDeleteDraft_Error(t *testing.T) {
	repo, mock := newTestDraftRepo(t, time.Now())

	mock.ExpectExec("DELETE FROM drafts").
		WithArgs("contact").
		WillReturnError(errors.New("locked"))

	require.ErrorIs(t, repo.DeleteDraft(context.Background(), "contact"), ErrExecutingStatement)
}
