package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")
	ErrWrongPassword       = errors.New("wrong password")

	ErrTokenCreationFailed     = errors.New("token creation failed")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")
	ErrRegistrationClosed      = errors.New("admin registration requires an authorized admin")

	ErrVersionIsNotSpecified = errors.New("app version is not specified")
)

// Form and submission errors.
var (
	ErrInvalidPageKey       = errors.New("invalid page key")
	ErrFormValidation       = errors.New("form validation failed")
	ErrSubmissionValidation = errors.New("submission validation failed")
)

// Content errors.
var (
	ErrInvalidLocale  = errors.New("unsupported locale")
	ErrInvalidContent = errors.New("invalid content document")
)

// Identity errors.
var (
	ErrSessionInvalid = errors.New("session is missing or invalid")
)

// Upload errors.
var (
	ErrUnsupportedUpload = errors.New("unsupported upload type")
	ErrEmptyUpload       = errors.New("upload is empty")
)
