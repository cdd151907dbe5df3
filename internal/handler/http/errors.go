// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors of the transport layer. Callers can match against them
// with [errors.Is].
var (
	// ErrEmptyAuthorizationHeader is returned by the admin auth middleware
	// when the request has no "Authorization" header at all.
	ErrEmptyAuthorizationHeader = errors.New("empty `Authorization` header")

	// ErrInvalidAuthorizationHeader is returned when the "Authorization"
	// header is not of the form "Bearer <token>".
	ErrInvalidAuthorizationHeader = errors.New("invalid `Authorization` header")

	// ErrInvalidJSON is returned when a request body does not decode.
	ErrInvalidJSON = errors.New("invalid JSON was passed")

	// ErrInvalidQueryParam is returned for a malformed paging parameter.
	ErrInvalidQueryParam = errors.New("invalid query parameter")

	// ErrNoSession is returned by /auth/me for an anonymous visitor.
	ErrNoSession = errors.New("not signed in")

	// ErrNoUploadFile is returned when a multipart upload has no "file" part.
	ErrNoUploadFile = errors.New("upload has no file part")
)
