package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-site-forms/internal/config"
	"github.com/MKhiriev/go-site-forms/internal/logger"
	"github.com/MKhiriev/go-site-forms/internal/store"
	"github.com/MKhiriev/go-site-forms/internal/utils"
	"github.com/MKhiriev/go-site-forms/models"
	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLength is the shortest admin password accepted on registration.
const MinPasswordLength = 8

// authService is the concrete implementation of AuthService.
// Passwords are stored as bcrypt hashes; sessions are HS256 JWTs.
type authService struct {
	// adminRepository is the data-access layer used to create and look up admins.
	adminRepository store.AdminRepository

	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	// Tokens whose issuer does not match this value are rejected during parsing.
	tokenIssuer string

	// tokenDuration controls how long a newly issued JWT remains valid.
	tokenDuration time.Duration

	// bcryptCost is the work factor of new password hashes.
	bcryptCost int

	logger *logger.Logger
}

// NewAuthService constructs a new AuthService wired to the given
// AdminRepository and populated with token parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only
// after construction.
func NewAuthService(adminRepository store.AdminRepository, cfg config.App, logger *logger.Logger) AuthService {
	return &authService{
		adminRepository: adminRepository,
		tokenSignKey:    cfg.TokenSignKey,
		tokenIssuer:     cfg.TokenIssuer,
		tokenDuration:   cfg.TokenDuration,
		bcryptCost:      bcrypt.DefaultCost,
		logger:          logger,
	}
}

// RegisterAdmin creates a new admin account.
//
// Returns the persisted admin (with a server-assigned AdminID) or:
//   - ErrInvalidDataProvided if Login is empty or Password is too short.
//   - A wrapped storage error if the repository call fails (e.g. login already
//     taken, see store.ErrLoginAlreadyExists).
func (a *authService) RegisterAdmin(ctx context.Context, admin models.Admin) (models.Admin, error) {
	log := logger.FromContext(ctx)

	admin.Login = strings.TrimSpace(admin.Login)
	if admin.Login == "" || len(admin.Password) < MinPasswordLength {
		log.Error().Str("login", admin.Login).Msg("invalid admin data provided")
		return models.Admin{}, ErrInvalidDataProvided
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(admin.Password), a.bcryptCost)
	if err != nil {
		return models.Admin{}, fmt.Errorf("error hashing password: %w", err)
	}
	admin.PasswordHash = string(hash)
	admin.Password = ""

	registered, err := a.adminRepository.CreateAdmin(ctx, admin)
	if err != nil {
		log.Err(err).Str("login", admin.Login).Msg("admin creation ended with error")
		return models.Admin{}, fmt.Errorf("admin creation ended with error: %w", err)
	}

	log.Info().Str("login", registered.Login).Msg("admin registered")
	return registered, nil
}

// Login authenticates an existing admin.
//
// Returns the stored admin or:
//   - ErrInvalidDataProvided if Login or Password is empty.
//   - A wrapped store.ErrAdminNotFound if no such login exists.
//   - ErrWrongPassword if the password does not match the stored hash.
func (a *authService) Login(ctx context.Context, admin models.Admin) (models.Admin, error) {
	log := logger.FromContext(ctx)

	if strings.TrimSpace(admin.Login) == "" || admin.Password == "" {
		log.Error().Str("login", admin.Login).Msg("invalid admin data provided")
		return models.Admin{}, ErrInvalidDataProvided
	}

	found, err := a.adminRepository.FindAdminByLogin(ctx, strings.TrimSpace(admin.Login))
	if err != nil {
		log.Err(err).Str("login", admin.Login).Msg("admin search by login failed")
		return models.Admin{}, fmt.Errorf("admin search by login failed: %w", err)
	}

	err = bcrypt.CompareHashAndPassword([]byte(found.PasswordHash), []byte(admin.Password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		log.Warn().Int64("id", found.AdminID).Str("login", found.Login).Msg("wrong password")
		return models.Admin{}, ErrWrongPassword
	}
	if err != nil {
		return models.Admin{}, fmt.Errorf("error comparing password: %w", err)
	}

	return found, nil
}

// RegistrationOpen reports whether an admin may register without a token.
// That is only the case until the first admin exists.
func (a *authService) RegistrationOpen(ctx context.Context) (bool, error) {
	count, err := a.adminRepository.CountAdmins(ctx)
	if err != nil {
		return false, fmt.Errorf("error counting admins: %w", err)
	}
	return count == 0, nil
}

// CreateToken issues a signed JWT for the given admin.
func (a *authService) CreateToken(ctx context.Context, admin models.Admin) (models.Token, error) {
	token, err := utils.GenerateJWTToken(a.tokenIssuer, admin.AdminID, a.tokenDuration, a.tokenSignKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// ParseToken validates and parses a raw JWT string. Any validation failure
// (expired, wrong issuer, malformed) is normalised to
// ErrTokenIsExpiredOrInvalid.
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	return token, nil
}
