package identity

import (
	"net/url"
	"testing"

	"github.com/MKhiriev/go-site-forms/internal/locale"
	"github.com/MKhiriev/go-site-forms/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserCookie_RoundTrip(t *testing.T) {
	u := models.GoogleUser{Email: "ani@example.com", Name: "Ani Petrosyan", Picture: "https://example.com/a.png"}

	value, err := EncodeUser(u)
	require.NoError(t, err)
	assert.NotContains(t, value, `"`)
	assert.NotContains(t, value, " ")

	got, ok := DecodeUser(value)
	require.True(t, ok)
	assert.Equal(t, u, got)
}

func TestEncodeUser_IsEscapedJSON(t *testing.T) {
	value, err := EncodeUser(models.GoogleUser{Email: "ani@example.com", Name: "Ani"})
	require.NoError(t, err)

	raw, err := url.QueryUnescape(value)
	require.NoError(t, err)
	assert.JSONEq(t, `{"email":"ani@example.com","name":"Ani","picture":""}`, raw)
}

func TestDecodeUser_Rejects(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{name: "empty", value: ""},
		{name: "not json", value: "hello"},
		{name: "bad escape", value: "%zz"},
		{name: "no email", value: url.QueryEscape(`{"name":"Ani"}`)},
		{name: "blank email", value: url.QueryEscape(`{"email":"  "}`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := DecodeUser(tt.value)
			assert.False(t, ok)
		})
	}
}

func TestDecodeUser_AcceptsRawJSON(t *testing.T) {
	u, ok := DecodeUser(`{"email":"ani@example.com","name":"Ani"}`)
	require.True(t, ok)
	assert.Equal(t, "ani@example.com", u.Email)
}

func TestGate_FromCookie(t *testing.T) {
	g := NewGate()
	assert.Equal(t, StateAnonymous, g.State())

	assert.False(t, g.FromCookie("garbage"))
	assert.Equal(t, StateAnonymous, g.State())

	value, err := EncodeUser(models.GoogleUser{Email: "ani@example.com"})
	require.NoError(t, err)
	assert.True(t, g.FromCookie(value))
	assert.True(t, g.Authenticated())
	assert.Equal(t, "ani@example.com", g.User().Email)
}

func TestGate_HandleRedirect_Success(t *testing.T) {
	g := NewGate()
	g.BeginSignIn()
	require.Equal(t, StateRedirected, g.State())

	scrubbed, err := g.HandleRedirect("https://site.am/hy/register?auth=success&email=ani%40example.com&name=Ani&tab=2")
	require.NoError(t, err)

	assert.Equal(t, "https://site.am/hy/register?tab=2", scrubbed)
	assert.Equal(t, StateAuthenticated, g.State())
	assert.Equal(t, models.GoogleUser{Email: "ani@example.com", Name: "Ani"}, g.User())
	assert.Nil(t, g.Err())
}

func TestGate_HandleRedirect_Errors(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		category Category
		detail   string
	}{
		{name: "missing config", query: "auth=error&reason=config", category: CategoryConfig},
		{name: "no code", query: "auth=error&reason=no_code", category: CategoryNoCode},
		{name: "token exchange", query: "auth=error&reason=token_exchange&detail=invalid_grant", category: CategoryTokenExchange, detail: "invalid_grant"},
		{name: "cancelled", query: "auth=error&reason=access_denied", category: CategoryCancelled},
		{name: "success without email", query: "auth=success&name=Ani", category: CategoryCancelled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGate()
			g.BeginSignIn()

			scrubbed, err := g.HandleRedirect("/en/register?" + tt.query)
			require.NoError(t, err)
			assert.Equal(t, "/en/register", scrubbed)

			assert.Equal(t, StateAnonymous, g.State())
			require.NotNil(t, g.Err())
			assert.Equal(t, tt.category, g.Err().Category)
			assert.Equal(t, tt.detail, g.Err().Detail)
		})
	}
}

func TestGate_HandleRedirect_NoOutcome(t *testing.T) {
	g := NewGate()
	g.BeginSignIn()

	out, err := g.HandleRedirect("/en/register?tab=1")
	require.NoError(t, err)
	assert.Equal(t, "/en/register?tab=1", out)
	assert.Equal(t, StateRedirected, g.State())

	_, err = g.HandleRedirect("://bad")
	require.ErrorIs(t, err, ErrInvalidRedirect)
}

func TestGate_SignOut(t *testing.T) {
	g := NewGate()
	_, err := g.HandleRedirect("/en?auth=success&email=a%40b.com")
	require.NoError(t, err)
	require.True(t, g.Authenticated())

	g.SignOut()
	assert.Equal(t, StateAnonymous, g.State())
	assert.Empty(t, g.User())
}

func TestCategory_Messages(t *testing.T) {
	seen := map[string]bool{}
	for _, c := range []Category{CategoryConfig, CategoryNoCode, CategoryTokenExchange, CategoryCancelled} {
		msg := c.Message(locale.English)
		assert.NotEmpty(t, msg)
		assert.False(t, seen[msg], "duplicate message for %s", c)
		seen[msg] = true
		assert.NotEqual(t, msg, c.Message(locale.Armenian))
	}

	err := NewAuthError(CategoryTokenExchange, "invalid_grant")
	assert.Contains(t, err.Message(locale.English), "invalid_grant")
	assert.Contains(t, err.Error(), "token_exchange")
	assert.Equal(t, CategoryCancelled, ParseCategory("whatever"))
}

func TestRedirectURLs(t *testing.T) {
	ok := SuccessURL("https://site.am/hy/register", models.GoogleUser{Email: "a@b.com", Name: "Ani"})
	g := NewGate()
	_, err := g.HandleRedirect(ok)
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", g.User().Email)

	failed := ErrorURL("/en/register", NewAuthError(CategoryNoCode, ""))
	parsed, err := url.Parse(failed)
	require.NoError(t, err)
	assert.Equal(t, AuthFailure, parsed.Query().Get(ParamAuth))

	scrubbed, err := g.HandleRedirect(failed)
	require.NoError(t, err)
	assert.Equal(t, "/en/register", scrubbed)
	assert.Equal(t, StateAnonymous, g.State())
	assert.Equal(t, CategoryNoCode, g.Err().Category)
}

func TestReturnPath(t *testing.T) {
	assert.Equal(t, "/hy/register", ReturnPath(models.OAuthState{Locale: "hy", PageKey: "register"}))
	assert.Equal(t, "/en", ReturnPath(models.OAuthState{}))
	assert.Equal(t, "/en/evil.com", ReturnPath(models.OAuthState{Locale: "//x", PageKey: "//evil.com"}))
}

func TestState(t *testing.T) {
	s, err := EncodeState(models.OAuthState{Locale: "hy", PageKey: "register", Nonce: "n"})
	require.NoError(t, err)
	assert.Equal(t, models.OAuthState{Locale: "hy", PageKey: "register", Nonce: "n"}, DecodeState(s))
	assert.Equal(t, models.OAuthState{}, DecodeState("{"))
}
