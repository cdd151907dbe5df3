package identity

import (
	"errors"
	"fmt"

	"github.com/MKhiriev/go-site-forms/internal/locale"
)

var ErrInvalidRedirect = errors.New("invalid redirect url")

// Category classifies a failed sign-in. Each category maps to its own
// user-visible message.
type Category string

const (
	// CategoryConfig means the provider client id or secret is not configured.
	CategoryConfig Category = "config"
	// CategoryNoCode means the provider returned without an authorization code.
	CategoryNoCode Category = "no_code"
	// CategoryTokenExchange means the code could not be exchanged for tokens
	// or the user profile could not be fetched.
	CategoryTokenExchange Category = "token_exchange"
	// CategoryCancelled covers a cancelled sign-in and every other failure.
	CategoryCancelled Category = "cancelled"
)

// ParseCategory maps a redirect "reason" parameter to a Category. Unknown
// values map to CategoryCancelled.
func ParseCategory(raw string) Category {
	switch c := Category(raw); c {
	case CategoryConfig, CategoryNoCode, CategoryTokenExchange:
		return c
	}
	return CategoryCancelled
}

var categoryMessages = map[Category][2]string{
	CategoryConfig: {
		"Sign-in is not configured. Please contact the site administrator.",
		"Մուտքը կարգավորված չէ։ Խնդրում ենք կապվել կայքի ադմինիստրատորի հետ։",
	},
	CategoryNoCode: {
		"The sign-in provider did not return an authorization code. Please try again.",
		"Մուտքի մատակարարը չվերադարձրեց թույլտվության կոդ։ Խնդրում ենք կրկին փորձել։",
	},
	CategoryTokenExchange: {
		"Could not complete sign-in with the provider.",
		"Չհաջողվեց ավարտել մուտքը մատակարարի միջոցով։",
	},
	CategoryCancelled: {
		"Sign-in was cancelled or failed. Please try again.",
		"Մուտքը չեղարկվեց կամ ձախողվեց։ Խնդրում ենք կրկին փորձել։",
	},
}

// Message returns the user-visible message of c in locale l.
func (c Category) Message(l locale.Locale) string {
	m, ok := categoryMessages[c]
	if !ok {
		m = categoryMessages[CategoryCancelled]
	}
	return locale.Resolve(m[0], m[1], l)
}

// AuthError is a categorized sign-in failure. Detail carries the
// provider-supplied description, when there is one.
type AuthError struct {
	Category Category
	Detail   string
}

func (e *AuthError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("sign-in failed (%s): %s", e.Category, e.Detail)
	}
	return fmt.Sprintf("sign-in failed (%s)", e.Category)
}

// Message returns the message shown to the user, including the provider
// detail for token exchange failures.
func (e *AuthError) Message(l locale.Locale) string {
	msg := e.Category.Message(l)
	if e.Category == CategoryTokenExchange && e.Detail != "" {
		msg += " (" + e.Detail + ")"
	}
	return msg
}

// NewAuthError returns an *AuthError of category c.
func NewAuthError(c Category, detail string) *AuthError {
	return &AuthError{Category: c, Detail: detail}
}
