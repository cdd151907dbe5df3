package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-site-forms/internal/logger"
	"github.com/MKhiriev/go-site-forms/models"
	"github.com/jackc/pgerrcode"
)

// adminRepository is the PostgreSQL-backed implementation of
// [AdminRepository] over the "admins" table.
type adminRepository struct {
	db     *DB
	logger *logger.Logger
}

// NewAdminRepository constructs an [AdminRepository] backed by db.
func NewAdminRepository(db *DB, logger *logger.Logger) AdminRepository {
	logger.Debug().Msg("creating admin repository")
	return &adminRepository{
		db:     db,
		logger: logger,
	}
}

// CreateAdmin persists a new admin and returns it with the server-assigned
// AdminID and CreatedAt.
//
// Error handling:
//   - PostgreSQL unique_violation (23505) → [ErrLoginAlreadyExists].
//   - Any other driver-level error → wrapped as "unexpected DB error".
func (r *adminRepository) CreateAdmin(ctx context.Context, admin models.Admin) (models.Admin, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildCreateAdminQuery(admin)
	if err != nil {
		return models.Admin{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var created models.Admin
	err = r.db.QueryRowContext(ctx, query, args...).
		Scan(&created.AdminID, &created.Login, &created.PasswordHash, &created.CreatedAt)
	if err != nil {
		log.Err(err).Str("func", "*adminRepository.CreateAdmin").Str("login", admin.Login).Msg("error creating admin")

		switch postgresError(err) {
		case pgerrcode.UniqueViolation:
			return models.Admin{}, ErrLoginAlreadyExists
		default:
			return models.Admin{}, fmt.Errorf("unexpected DB error: %w", err)
		}
	}

	return created, nil
}

// FindAdminByLogin returns the admin with the given login or
// [ErrAdminNotFound].
func (r *adminRepository) FindAdminByLogin(ctx context.Context, login string) (models.Admin, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildFindAdminByLoginQuery(login)
	if err != nil {
		return models.Admin{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var found models.Admin
	err = r.db.withRetry(ctx, func() error {
		return r.db.QueryRowContext(ctx, query, args...).
			Scan(&found.AdminID, &found.Login, &found.PasswordHash, &found.CreatedAt)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return models.Admin{}, ErrAdminNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "*adminRepository.FindAdminByLogin").Str("login", login).Msg("error finding admin")
		return models.Admin{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return found, nil
}

// CountAdmins returns the number of registered admins.
func (r *adminRepository) CountAdmins(ctx context.Context) (int64, error) {
	query, args, err := buildCountAdminsQuery()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var count int64
	err = r.db.withRetry(ctx, func() error {
		return r.db.QueryRowContext(ctx, query, args...).Scan(&count)
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*adminRepository.CountAdmins").Msg("error counting admins")
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return count, nil
}
