package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/MKhiriev/go-site-forms/internal/logger"
	"github.com/MKhiriev/go-site-forms/models"
)

func newTestContentRepo(t *testing.T) (*contentRepository, sqlmock.Sqlmock) {
	db, mock := newTestDB(t)
	return &contentRepository{DB: db, logger: logger.Nop()}, mock
}

func TestGetContent_Success(t *testing.T) {
	repo, mock := newTestContentRepo(t)

	now := time.Now()
	mock.ExpectQuery("SELECT page_key, locale, data, updated_at FROM page_contents").
		WithArgs("hy", "home").
		WillReturnRows(sqlmock.NewRows([]string{"page_key", "locale", "data", "updated_at"}).
			AddRow("home", "hy", []byte(`{"title":"Բարև"}`), now))

	content, err := repo.GetContent(context.Background(), "home", "hy")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(content.Data) != `{"title":"Բարև"}` {
		t.Errorf("unexpected data %s", content.Data)
	}
	if content.Locale != "hy" {
		t.Errorf("expected locale hy, got %s", content.Locale)
	}
}

func TestGetContent_NotFound(t *testing.T) {
	repo, mock := newTestContentRepo(t)

	mock.ExpectQuery("SELECT page_key").
		WithArgs("en", "home").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetContent(context.Background(), "home", "en")
	if !errors.Is(err, ErrContentNotFound) {
		t.Fatalf("expected ErrContentNotFound, got %v", err)
	}
}

func contentRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"page_key", "locale", "data", "updated_at"})
}

func TestUpdateContent_ReadsAndWritesUnderOneLock(t *testing.T) {
	repo, mock := newTestContentRepo(t)

	now := time.Now()
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("FROM page_contents WHERE page_key = $1 ORDER BY locale FOR UPDATE")).
		WithArgs("home").
		WillReturnRows(contentRows().
			AddRow("home", "en", []byte(`{"title":"Hi"}`), now).
			AddRow("home", "hy", []byte(`{"title":"Բարև"}`), now))
	mock.ExpectExec("INSERT INTO page_contents").
		WithArgs("home", "en", []byte(`{"title":"Hello"}`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO page_contents").
		WithArgs("home", "hy", []byte(`{"title":"Բարև"}`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.UpdateContent(context.Background(), "home", func(docs map[string]models.PageContent) ([]models.PageContent, error) {
		if len(docs) != 2 {
			t.Fatalf("expected both locales, got %v", docs)
		}
		if string(docs["hy"].Data) != `{"title":"Բարև"}` {
			t.Errorf("unexpected hy data %s", docs["hy"].Data)
		}
		en := docs["en"]
		en.Data = json.RawMessage(`{"title":"Hello"}`)
		return []models.PageContent{en, docs["hy"]}, nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err = mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestUpdateContent_NoStoredDocuments(t *testing.T) {
	repo, mock := newTestContentRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery("FOR UPDATE").WithArgs("home").WillReturnRows(contentRows())
	mock.ExpectExec("INSERT INTO page_contents").
		WithArgs("home", "en", []byte(`{}`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.UpdateContent(context.Background(), "home", func(docs map[string]models.PageContent) ([]models.PageContent, error) {
		if len(docs) != 0 {
			t.Errorf("expected no documents, got %v", docs)
		}
		return []models.PageContent{{PageKey: "home", Locale: "en", Data: json.RawMessage(`{}`)}}, nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err = mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestUpdateContent_UpdateErrorRollsBack(t *testing.T) {
	repo, mock := newTestContentRepo(t)

	errRejected := errors.New("rejected")
	mock.ExpectBegin()
	mock.ExpectQuery("FOR UPDATE").WithArgs("home").WillReturnRows(contentRows())
	mock.ExpectRollback()

	err := repo.UpdateContent(context.Background(), "home", func(map[string]models.PageContent) ([]models.PageContent, error) {
		return nil, errRejected
	})
	if !errors.Is(err, errRejected) {
		t.Fatalf("expected the update error, got %v", err)
	}
	if err = mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestUpdateContent_UpsertErrorRollsBack(t *testing.T) {
	repo, mock := newTestContentRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery("FOR UPDATE").WithArgs("home").WillReturnRows(contentRows())
	mock.ExpectExec("INSERT INTO page_contents").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO page_contents").
		WillReturnError(errors.New("constraint"))
	mock.ExpectRollback()

	err := repo.UpdateContent(context.Background(), "home", func(map[string]models.PageContent) ([]models.PageContent, error) {
		return []models.PageContent{
			{PageKey: "home", Locale: "en", Data: json.RawMessage(`{}`)},
			{PageKey: "home", Locale: "hy", Data: json.RawMessage(`{}`)},
		}, nil
	})
	if !errors.Is(err, ErrExecutingStatement) {
		t.Fatalf("expected ErrExecutingStatement, got %v", err)
	}
	if err = mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestUpdateContent_LockError(t *testing.T) {
	repo, mock := newTestContentRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery("FOR UPDATE").WillReturnError(errors.New("lock timeout"))
	mock.ExpectRollback()

	err := repo.UpdateContent(context.Background(), "home", func(map[string]models.PageContent) ([]models.PageContent, error) {
		t.Fatal("update must not run without the lock")
		return nil, nil
	})
	if !errors.Is(err, ErrExecutingQuery) {
		t.Fatalf("expected ErrExecutingQuery, got %v", err)
	}
}
