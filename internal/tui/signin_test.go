package tui

import (
	"context"
	"errors"
	"testing"

	"github.com/MKhiriev/go-site-forms/internal/identity"
	"github.com/MKhiriev/go-site-forms/internal/locale"
	"github.com/MKhiriev/go-site-forms/internal/logger"
	"github.com/MKhiriev/go-site-forms/internal/mock"
	"github.com/MKhiriev/go-site-forms/models"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const testSignInURL = "http://localhost:8080/auth/google?locale=en&pageKey=register"

func newTestSignInModel(copied *string) *SignInModel {
	m := NewSignInModel(identity.NewGate(), testSignInURL, locale.English, nil)
	m.copyToClipboard = func(s string) error {
		if copied == nil {
			return errors.New("no clipboard")
		}
		*copied = s
		return nil
	}
	return m
}

func TestSignInModel_CopyMarksRedirected(t *testing.T) {
	var copied string
	m := newTestSignInModel(&copied)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlY})
	require.NotNil(t, cmd)
	m.Update(cmd())

	assert.Equal(t, testSignInURL, copied)
	assert.Equal(t, identity.StateRedirected, m.gate.State())
	assert.Contains(t, m.View(), "Sign-in address copied")
}

func TestSignInModel_CopyFailure(t *testing.T) {
	m := newTestSignInModel(nil)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlY})
	m.Update(cmd())

	assert.Contains(t, m.View(), "no clipboard")
}

func TestSignInModel_RedirectSuccess(t *testing.T) {
	m := newTestSignInModel(nil)
	m.input.SetValue("https://forms.example/register?auth=success&email=ani%40example.am&name=Ani")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, NavigateTo{Page: pageWizard}, cmd())
	assert.Equal(t, models.GoogleUser{Email: "ani@example.am", Name: "Ani"}, m.gate.User())
}

func TestSignInModel_RedirectError(t *testing.T) {
	m := newTestSignInModel(nil)
	m.input.SetValue("https://forms.example/register?auth=error&reason=config")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.False(t, m.gate.Authenticated())
	assert.Contains(t, m.View(), identity.CategoryConfig.Message(locale.English))

	m.Update(tea.KeyMsg{Type: tea.KeyCtrlL})
	assert.Contains(t, m.View(), identity.CategoryConfig.Message(locale.Armenian))
}

func TestSignInModel_Cookie(t *testing.T) {
	value, err := identity.EncodeUser(models.GoogleUser{Email: "ani@example.am", Name: "Ani"})
	require.NoError(t, err)

	m := newTestSignInModel(nil)
	m.input.SetValue(value)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.True(t, m.gate.Authenticated())

	bad := newTestSignInModel(nil)
	bad.input.SetValue("not-a-cookie")
	_, cmd = bad.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.Contains(t, bad.View(), "This is not a valid sign-in cookie")
}

func TestSignInModel_CookieHeaderSetsSession(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mock.NewMockServerAdapter(ctrl)
	api.EXPECT().SetSession("signed.session.value")

	value, err := identity.EncodeUser(models.GoogleUser{Email: "ani@example.am"})
	require.NoError(t, err)

	m := NewSignInModel(identity.NewGate(), testSignInURL, locale.English, api.SetSession)
	m.input.SetValue("Cookie: theme=dark; " + identity.UserCookieName + "=" + value + "; " + identity.SessionCookieName + "=signed.session.value")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, NavigateTo{Page: pageWizard}, cmd())
	assert.Equal(t, "ani@example.am", m.gate.User().Email)
}

func TestSignInModel_CookieHeaderWithoutUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mock.NewMockServerAdapter(ctrl)

	m := NewSignInModel(identity.NewGate(), testSignInURL, locale.English, api.SetSession)
	m.input.SetValue(identity.UserCookieName + "=; " + identity.SessionCookieName + "=x")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.False(t, m.gate.Authenticated())
	assert.Contains(t, m.View(), "This is not a valid sign-in cookie")
}

func TestTUI_ServerVersion(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mock.NewMockServerAdapter(ctrl)
	ui := New(api, nil, models.NewAppBuildInfo("1.0.0", "", ""), logger.Nop())

	gomock.InOrder(
		api.EXPECT().Version(gomock.Any()).Return("2.1.0", nil),
		api.EXPECT().Version(gomock.Any()).Return("", errors.New("dial tcp: connection refused")),
	)

	assert.Equal(t, "2.1.0", ui.serverVersion(context.Background()))
	assert.Empty(t, ui.serverVersion(context.Background()))
}

func TestSignInModel_InitSkipsWhenAuthenticated(t *testing.T) {
	m := newTestSignInModel(nil)
	value, err := identity.EncodeUser(models.GoogleUser{Email: "ani@example.am"})
	require.NoError(t, err)
	require.True(t, m.gate.FromCookie(value))

	cmd := m.Init()
	require.NotNil(t, cmd)
	assert.Equal(t, NavigateTo{Page: pageWizard}, cmd())
}

func TestRootModel_NavigationAndAbout(t *testing.T) {
	signIn := newTestSignInModel(nil)
	pages := map[string]tea.Model{pageSignIn: signIn}
	root := NewRootModel(pages, pageSignIn, models.NewAppBuildInfo("1.0.0", "", ""), "2.1.0")

	updated, _ := root.Update(tea.KeyMsg{Type: tea.KeyCtrlV})
	root = updated.(RootModel)
	view := root.View()
	assert.Regexp(t, `Version:\s+1\.0\.0`, view)
	assert.Regexp(t, `Date:\s+N/A`, view)
	assert.Regexp(t, `Server version:\s+2\.1\.0`, view)

	updated, _ = root.Update(tea.KeyMsg{Type: tea.KeyEsc})
	root = updated.(RootModel)
	assert.Contains(t, root.View(), "SIGN IN")

	updated, cmd := root.Update(NavigateTo{Page: "missing"})
	assert.Nil(t, cmd)
	assert.Same(t, signIn, updated.(RootModel).current)

	updated, cmd = root.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	assert.True(t, updated.(RootModel).quitByUser)
	require.NotNil(t, cmd)
}
