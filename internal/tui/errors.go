// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"errors"
	"net"
	"syscall"

	"github.com/MKhiriev/go-site-forms/internal/adapter"
	"github.com/MKhiriev/go-site-forms/internal/locale"
)

var ErrUserQuit = errors.New("user quit")

var (
	msgServerUnavailable = [2]string{
		"Network is down or the server is unavailable",
		"Ցանցը հասանելի չէ կամ սերվերը չի պատասխանում",
	}
	msgServerFailed = [2]string{
		"The server could not handle the request, try again later",
		"Սերվերը չկարողացավ մշակել հարցումը, փորձեք ավելի ուշ",
	}
)

// humanizeError turns transport failures into a sentence in locale l. Any
// other error is shown as is.
func humanizeError(err error, l locale.Locale) string {
	if err == nil {
		return ""
	}

	var netErr net.Error
	switch {
	case errors.As(err, &netErr),
		errors.Is(err, syscall.ECONNREFUSED),
		errors.Is(err, context.DeadlineExceeded):
		return locale.Resolve(msgServerUnavailable[0], msgServerUnavailable[1], l)
	case errors.Is(err, adapter.ErrInternalServerError),
		errors.Is(err, adapter.ErrBadGateway):
		return locale.Resolve(msgServerFailed[0], msgServerFailed[1], l)
	}

	return err.Error()
}
