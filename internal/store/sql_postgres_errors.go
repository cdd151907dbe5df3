package store

import (
	"database/sql/driver"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrorClassification tells [DB.withRetry] whether a failed statement is
// worth another attempt.
type ErrorClassification int

const (
	NonRetryable ErrorClassification = iota
	Retryable
)

// PostgresErrorClassifier implements [ErrorClassificator] on SQLSTATE codes.
type PostgresErrorClassifier struct{}

func NewPostgresErrorClassifier() *PostgresErrorClassifier {
	return &PostgresErrorClassifier{}
}

// Classify marks broken connections, serialization failures, deadlocks and
// server restarts as [Retryable]. Constraint, data and syntax errors, and
// anything that is not a PostgreSQL error, are [NonRetryable].
func (c *PostgresErrorClassifier) Classify(err error) ErrorClassification {
	switch {
	case err == nil:
		return NonRetryable
	case errors.Is(err, driver.ErrBadConn):
		return Retryable
	}

	code := postgresError(err)
	if code == "" {
		return NonRetryable
	}
	return ClassifyPgError(&pgconn.PgError{Code: code})
}

// ClassifyPgError classifies one SQLSTATE. All of class 08 is retryable; of
// classes 40 and 57 only the codes a new attempt can resolve are.
func ClassifyPgError(pgErr *pgconn.PgError) ErrorClassification {
	if pgerrcode.IsConnectionException(pgErr.Code) {
		return Retryable
	}

	switch pgErr.Code {
	case pgerrcode.TransactionRollback,
		pgerrcode.SerializationFailure,
		pgerrcode.DeadlockDetected,
		pgerrcode.AdminShutdown,
		pgerrcode.CannotConnectNow:
		return Retryable
	}
	return NonRetryable
}

// postgresError returns the SQLSTATE code of err, or "" when err does not
// come from PostgreSQL.
func postgresError(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}
