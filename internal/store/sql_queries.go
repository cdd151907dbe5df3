package store

import (
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/MKhiriev/go-site-forms/models"
)

// psql builds PostgreSQL statements with $n placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var (
	adminColumns      = []string{"admin_id", "login", "password_hash", "created_at"}
	formColumns       = []string{"id", "page_key", "steps", "version", "created_at", "updated_at"}
	submissionColumns = []string{"id", "form_id", "page_key", "schema_version", "user_email", "user_name", "data", "created_at", "updated_at"}
	contentColumns    = []string{"page_key", "locale", "data", "updated_at"}
)

// ─── admins ──────────────────────────────────────────────────────────────────

func buildCreateAdminQuery(admin models.Admin) (string, []any, error) {
	return psql.Insert("admins").
		Columns("login", "password_hash").
		Values(admin.Login, admin.PasswordHash).
		Suffix("RETURNING " + joinColumns(adminColumns)).
		ToSql()
}

func buildFindAdminByLoginQuery(login string) (string, []any, error) {
	return psql.Select(adminColumns...).
		From("admins").
		Where(sq.Eq{"login": login}).
		ToSql()
}

func buildCountAdminsQuery() (string, []any, error) {
	return psql.Select("COUNT(*)").From("admins").ToSql()
}

// ─── forms ───────────────────────────────────────────────────────────────────

func buildGetFormQuery(pageKey string) (string, []any, error) {
	return psql.Select(formColumns...).
		From("forms").
		Where(sq.Eq{"page_key": pageKey}).
		ToSql()
}

func buildListFormsQuery() (string, []any, error) {
	return psql.Select(formColumns...).
		From("forms").
		OrderBy("page_key").
		ToSql()
}

// buildLockFormVersionQuery reads the stored version and locks the row for
// the rest of the save transaction.
func buildLockFormVersionQuery(pageKey string) (string, []any, error) {
	return psql.Select("version").
		From("forms").
		Where(sq.Eq{"page_key": pageKey}).
		Suffix("FOR UPDATE").
		ToSql()
}

func buildInsertFormQuery(pageKey string, steps []byte) (string, []any, error) {
	return psql.Insert("forms").
		Columns("page_key", "steps", "version").
		Values(pageKey, steps, 1).
		Suffix("RETURNING " + joinColumns(formColumns)).
		ToSql()
}

// buildUpdateFormQuery bumps the version only when it still equals the
// version the editor loaded.
func buildUpdateFormQuery(pageKey string, steps []byte, version int64) (string, []any, error) {
	return psql.Update("forms").
		Set("steps", steps).
		Set("version", sq.Expr("version + 1")).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"page_key": pageKey, "version": version}).
		Suffix("RETURNING " + joinColumns(formColumns)).
		ToSql()
}

func buildDeleteFormQuery(pageKey string) (string, []any, error) {
	return psql.Delete("forms").
		Where(sq.Eq{"page_key": pageKey}).
		ToSql()
}

// ─── submissions ─────────────────────────────────────────────────────────────

func buildCreateSubmissionQuery(s models.Submission, data []byte) (string, []any, error) {
	return psql.Insert("submissions").
		Columns("form_id", "page_key", "schema_version", "user_email", "user_name", "data").
		Values(s.FormID, s.PageKey, s.SchemaVersion, s.UserEmail, s.UserName, data).
		Suffix("RETURNING " + joinColumns(submissionColumns)).
		ToSql()
}

func buildListSubmissionsQuery(filter models.SubmissionFilter) (string, []any, error) {
	query := psql.Select(submissionColumns...).
		From("submissions").
		Where(sq.Eq{"page_key": filter.PageKey}).
		OrderBy("created_at DESC", "id DESC").
		Offset(filter.Offset)

	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	return query.ToSql()
}

func buildCountSubmissionsQuery(pageKey string) (string, []any, error) {
	return psql.Select("COUNT(*)").
		From("submissions").
		Where(sq.Eq{"page_key": pageKey}).
		ToSql()
}

// ─── page contents ───────────────────────────────────────────────────────────

func buildGetContentQuery(pageKey, locale string) (string, []any, error) {
	return psql.Select(contentColumns...).
		From("page_contents").
		Where(sq.Eq{"page_key": pageKey, "locale": locale}).
		ToSql()
}

// buildLockContentsQuery reads every locale of a page and locks the rows for
// the rest of the update transaction.
func buildLockContentsQuery(pageKey string) (string, []any, error) {
	return psql.Select(contentColumns...).
		From("page_contents").
		Where(sq.Eq{"page_key": pageKey}).
		OrderBy("locale").
		Suffix("FOR UPDATE").
		ToSql()
}

func buildUpsertContentQuery(content models.PageContent) (string, []any, error) {
	return psql.Insert("page_contents").
		Columns("page_key", "locale", "data").
		Values(content.PageKey, content.Locale, []byte(content.Data)).
		Suffix("ON CONFLICT (page_key, locale) DO UPDATE SET data = EXCLUDED.data, updated_at = NOW()").
		ToSql()
}

func joinColumns(columns []string) string {
	return strings.Join(columns, ", ")
}
