// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"net/http"
	"strings"

	"github.com/MKhiriev/go-site-forms/internal/identity"
	"github.com/MKhiriev/go-site-forms/internal/locale"
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// SignInModel puts the identity gate in front of the wizard. The user opens
// the sign-in URL in a browser and pastes back the URL the browser landed
// on, the value of the google_user cookie, or the whole Cookie header of the
// site. Only the header carries the session, so only then are submissions
// attributed to the user.
type SignInModel struct {
	gate      *identity.Gate
	signInURL string
	locale    locale.Locale

	input  textinput.Model
	status string
	errMsg string

	copyToClipboard func(string) error
	setSession      func(string)
}

// NewSignInModel hands a pasted session cookie to setSession, which may be
// nil.
func NewSignInModel(gate *identity.Gate, signInURL string, l locale.Locale, setSession func(string)) *SignInModel {
	input := textinput.New()
	input.Placeholder = "https://…?auth=success&email=…"
	input.CharLimit = 2048
	input.Width = 60
	input.Focus()

	return &SignInModel{
		gate:            gate,
		signInURL:       signInURL,
		locale:          l,
		input:           input,
		copyToClipboard: clipboard.WriteAll,
		setSession:      setSession,
	}
}

func (m *SignInModel) Init() tea.Cmd {
	if m.gate.Authenticated() {
		return navigateToWizard
	}
	return textinput.Blink
}

// Update handles:
//   - ctrl+y  copies the sign-in URL and marks the gate as redirected
//   - ctrl+l  switches the message locale
//   - enter   applies the pasted redirect URL or cookie value
func (m *SignInModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case signInCopiedMsg:
		if msg.err != nil {
			m.status = ""
			m.errMsg = msg.err.Error()
			return m, nil
		}
		m.status = m.text(msgCopied)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.copy):
			m.gate.BeginSignIn()
			return m, m.cmdCopy()
		case key.Matches(msg, keys.locale):
			m.locale = otherLocale(m.locale)
			if authErr := m.gate.Err(); authErr != nil {
				m.errMsg = authErr.Message(m.locale)
			}
			return m, nil
		case key.Matches(msg, keys.enter):
			return m, m.apply(strings.TrimSpace(m.input.Value()))
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *SignInModel) apply(value string) tea.Cmd {
	m.status = ""
	m.errMsg = ""
	if value == "" {
		return nil
	}

	switch {
	case strings.Contains(value, "://"):
		if _, err := m.gate.HandleRedirect(value); err != nil {
			m.errMsg = err.Error()
			return nil
		}
	case strings.Contains(value, identity.UserCookieName+"="):
		if !m.applyCookieHeader(value) {
			m.errMsg = m.text(msgBadCookie)
			return nil
		}
	case !m.gate.FromCookie(value):
		m.errMsg = m.text(msgBadCookie)
		return nil
	}

	if m.gate.Authenticated() {
		m.input.SetValue("")
		return navigateToWizard
	}
	if authErr := m.gate.Err(); authErr != nil {
		m.errMsg = authErr.Message(m.locale)
	}
	return nil
}

// applyCookieHeader reads a "name=value; name=value" header as copied from
// the browser.
func (m *SignInModel) applyCookieHeader(header string) bool {
	cookies, err := http.ParseCookie(strings.TrimPrefix(header, "Cookie: "))
	if err != nil {
		return false
	}

	var user, session string
	for _, c := range cookies {
		switch c.Name {
		case identity.UserCookieName:
			user = c.Value
		case identity.SessionCookieName:
			session = c.Value
		}
	}

	if !m.gate.FromCookie(user) {
		return false
	}
	if session != "" && m.setSession != nil {
		m.setSession(session)
	}
	return true
}

func (m *SignInModel) View() string {
	var b strings.Builder

	b.WriteString(m.text(msgOpenURL))
	b.WriteString("\n\n")
	b.WriteString(focusedStyle.Render(m.signInURL))
	b.WriteString("\n\n")
	b.WriteString(m.text(msgPasteBack))
	b.WriteString("\n[")
	b.WriteString(m.input.View())
	b.WriteString("]\n")

	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(okStyle.Render(m.status))
		b.WriteString("\n")
	}
	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(m.errMsg))
		b.WriteString("\n")
	}

	return renderPage(
		strings.ToUpper(m.text(msgSignInTitle)),
		strings.TrimRight(b.String(), "\n"),
		"ctrl+y: copy URL │ enter: confirm │ ctrl+l: EN/HY │ ctrl+v: about",
	)
}

func (m *SignInModel) cmdCopy() tea.Cmd {
	url := m.signInURL
	copyFn := m.copyToClipboard

	return func() tea.Msg {
		return signInCopiedMsg{err: copyFn(url)}
	}
}

func (m *SignInModel) text(msg [2]string) string {
	return locale.Resolve(msg[0], msg[1], m.locale)
}

func navigateToWizard() tea.Msg {
	return NavigateTo{Page: pageWizard}
}
