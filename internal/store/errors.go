package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrLoginAlreadyExists is returned when an admin with the same login
	// already exists.
	ErrLoginAlreadyExists = errors.New("login already exists")

	// ErrAdminNotFound is returned when no admin matches the given login.
	ErrAdminNotFound = errors.New("admin was not found")

	// ErrFormNotFound is returned when no form is stored for a page key.
	ErrFormNotFound = errors.New("form was not found")

	// ErrVersionConflict is returned when an optimistic-locking check fails:
	// the version the editor loaded no longer matches the stored version.
	ErrVersionConflict = errors.New("form version conflict occurred")

	// ErrSubmissionNotSaved is returned when an INSERT of a submission
	// completes without returning the created row.
	ErrSubmissionNotSaved = errors.New("submission was not saved")

	// ErrContentNotFound is returned when a page has no document for a locale.
	ErrContentNotFound = errors.New("page content was not found")

	// ErrDraftNotFound is returned by the client draft store when the page
	// has no saved draft.
	ErrDraftNotFound = errors.New("draft was not found")

	// ErrInvalidFileName is returned when an upload name would escape the
	// upload directory.
	ErrInvalidFileName = errors.New("invalid file name")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails (e.g. invalid argument count or unsupported type).
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or similar
	// read-only query against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRow is returned when scanning a single result row fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when iterating a multi-row result fails.
	ErrScanningRows = errors.New("failed to scan rows")

	// ErrEncodingJSON is returned when a JSONB column cannot be encoded or
	// decoded.
	ErrEncodingJSON = errors.New("failed to encode json column")
)
