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
	"github.com/jackc/pgerrcode"
)

func newTestFormRepo(t *testing.T) (*formRepository, sqlmock.Sqlmock) {
	db, mock := newTestDB(t)
	return &formRepository{DB: db, logger: logger.Nop()}, mock
}

var formRowColumns = []string{"id", "page_key", "steps", "version", "created_at", "updated_at"}

const contactSteps = `[{"id":"s1","title":"Contact","fields":[{"id":"f1","type":"input","label":"Name","required":true}]}]`

func TestGetForm_Success(t *testing.T) {
	repo, mock := newTestFormRepo(t)

	now := time.Now()
	mock.ExpectQuery("SELECT id, page_key, steps, version, created_at, updated_at FROM forms").
		WithArgs("contact").
		WillReturnRows(sqlmock.NewRows(formRowColumns).AddRow(1, "contact", []byte(contactSteps), 3, now, now))

	form, err := repo.GetForm(context.Background(), "contact")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if form.Version != 3 {
		t.Errorf("expected version 3, got %d", form.Version)
	}
	if len(form.Steps) != 1 || form.Steps[0].Fields[0].Label != "Name" {
		t.Errorf("unexpected steps %+v", form.Steps)
	}
}

func TestGetForm_NotFound(t *testing.T) {
	repo, mock := newTestFormRepo(t)

	mock.ExpectQuery("SELECT id").
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetForm(context.Background(), "missing")
	if !errors.Is(err, ErrFormNotFound) {
		t.Fatalf("expected ErrFormNotFound, got %v", err)
	}
}

func TestGetForm_BrokenStepsJSON(t *testing.T) {
	repo, mock := newTestFormRepo(t)

	now := time.Now()
	mock.ExpectQuery("SELECT id").
		WithArgs("contact").
		WillReturnRows(sqlmock.NewRows(formRowColumns).AddRow(1, "contact", []byte(`{`), 1, now, now))

	_, err := repo.GetForm(context.Background(), "contact")
	if !errors.Is(err, ErrEncodingJSON) {
		t.Fatalf("expected ErrEncodingJSON, got %v", err)
	}
}

func TestListForms(t *testing.T) {
	repo, mock := newTestFormRepo(t)

	now := time.Now()
	rows := sqlmock.NewRows(formRowColumns).
		AddRow(1, "about", []byte(`[]`), 1, now, now).
		AddRow(2, "contact", []byte(contactSteps), 2, now, now)

	mock.ExpectQuery("SELECT id, page_key, steps, version, created_at, updated_at FROM forms ORDER BY page_key").
		WillReturnRows(rows)

	forms, err := repo.ListForms(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(forms) != 2 || forms[0].PageKey != "about" || forms[1].PageKey != "contact" {
		t.Fatalf("unexpected forms %+v", forms)
	}
}

func TestSaveForm_UpdatesMatchingVersion(t *testing.T) {
	repo, mock := newTestFormRepo(t)

	now := time.Now()
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT version FROM forms").
		WithArgs("contact").
		WillReturnRows(sqlmock.NewRows([]string{"version"}).AddRow(3))
	mock.ExpectQuery("UPDATE forms").
		WithArgs(sqlmock.AnyArg(), "contact", int64(3)).
		WillReturnRows(sqlmock.NewRows(formRowColumns).AddRow(1, "contact", []byte(contactSteps), 4, now, now))
	mock.ExpectCommit()

	saved, err := repo.SaveForm(context.Background(), models.Form{PageKey: "contact", Version: 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if saved.Version != 4 {
		t.Errorf("expected version 4, got %d", saved.Version)
	}
	if err = mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestSaveForm_InsertsNewForm(t *testing.T) {
	repo, mock := newTestFormRepo(t)

	now := time.Now()
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT version FROM forms").
		WithArgs("contact").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery("INSERT INTO forms").
		WithArgs("contact", []byte(`[]`), 1).
		WillReturnRows(sqlmock.NewRows(formRowColumns).AddRow(5, "contact", []byte(`[]`), 1, now, now))
	mock.ExpectCommit()

	saved, err := repo.SaveForm(context.Background(), models.Form{PageKey: "contact"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if saved.ID != 5 || saved.Version != 1 {
		t.Errorf("unexpected saved form %+v", saved)
	}
	if err = mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestSaveForm_VersionMismatch(t *testing.T) {
	repo, mock := newTestFormRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT version FROM forms").
		WithArgs("contact").
		WillReturnRows(sqlmock.NewRows([]string{"version"}).AddRow(5))
	mock.ExpectRollback()

	_, err := repo.SaveForm(context.Background(), models.Form{PageKey: "contact", Version: 3})
	if !errors.Is(err, ErrVersionConflict) {
		t.Fatalf("expected ErrVersionConflict, got %v", err)
	}
	if err = mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestSaveForm_MissingFormWithVersion(t *testing.T) {
	repo, mock := newTestFormRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT version FROM forms").
		WithArgs("contact").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	_, err := repo.SaveForm(context.Background(), models.Form{PageKey: "contact", Version: 2})
	if !errors.Is(err, ErrVersionConflict) {
		t.Fatalf("expected ErrVersionConflict, got %v", err)
	}
}

func TestSaveForm_ConcurrentCreate(t *testing.T) {
	repo, mock := newTestFormRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT version FROM forms").
		WithArgs("contact").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery("INSERT INTO forms").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnError(pgError(pgerrcode.UniqueViolation))
	mock.ExpectRollback()

	_, err := repo.SaveForm(context.Background(), models.Form{PageKey: "contact"})
	if !errors.Is(err, ErrVersionConflict) {
		t.Fatalf("expected ErrVersionConflict, got %v", err)
	}
}

func TestSaveForm_BeginError(t *testing.T) {
	repo, mock := newTestFormRepo(t)

	mock.ExpectBegin().WillReturnError(errors.New("no connection"))

	_, err := repo.SaveForm(context.Background(), models.Form{PageKey: "contact"})
	if !errors.Is(err, ErrBeginningTransaction) {
		t.Fatalf("expected ErrBeginningTransaction, got %v", err)
	}
}

func TestDeleteForm(t *testing.T) {
	repo, mock := newTestFormRepo(t)

	mock.ExpectExec("DELETE FROM forms").
		WithArgs("contact").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.DeleteForm(context.Background(), "contact"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDeleteForm_NotFound(t *testing.T) {
	repo, mock := newTestFormRepo(t)

	mock.ExpectExec("DELETE FROM forms").
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.DeleteForm(context.Background(), "missing")
	if !errors.Is(err, ErrFormNotFound) {
		t.Fatalf("expected ErrFormNotFound, got %v", err)
	}
}
