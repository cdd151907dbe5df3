package tui

import (
	"github.com/MKhiriev/go-site-forms/models"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	pageSignIn = "signin"
	pageWizard = "wizard"
)

// RootModel owns the pages of one client run. It switches pages on
// [NavigateTo], handles quit and the about window, and forwards everything
// else to the active page.
type RootModel struct {
	pages   map[string]tea.Model
	current tea.Model

	quitByUser bool

	about         bool
	buildInfo     models.AppBuildInfo
	serverVersion string
}

// NewRootModel opens startPage. A start page missing from pages renders an
// empty frame.
func NewRootModel(pages map[string]tea.Model, startPage string, buildInfo models.AppBuildInfo, serverVersion string) RootModel {
	return RootModel{
		pages:         pages,
		current:       pages[startPage],
		buildInfo:     buildInfo,
		serverVersion: serverVersion,
	}
}

func (r RootModel) Init() tea.Cmd {
	if r.current == nil {
		return nil
	}
	return r.current.Init()
}

func (r RootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if handled, cmd := r.handleGlobalKey(msg); handled {
			return r, cmd
		}
	case NavigateTo:
		return r.navigate(msg)
	}

	if r.current == nil {
		return r, nil
	}

	var cmd tea.Cmd
	r.current, cmd = r.current.Update(msg)
	return r, cmd
}

// handleGlobalKey reports whether msg was consumed before reaching the page.
// While the about window is open the page receives no keys.
func (r *RootModel) handleGlobalKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.quit):
		r.quitByUser = true
		return true, tea.Quit
	case key.Matches(msg, keys.about):
		r.about = !r.about
		return true, nil
	case r.about && key.Matches(msg, keys.back):
		r.about = false
		return true, nil
	}
	return r.about, nil
}

func (r RootModel) navigate(nav NavigateTo) (tea.Model, tea.Cmd) {
	next, ok := r.pages[nav.Page]
	if !ok {
		return r, nil
	}

	r.about = false
	r.current = next

	if nav.Payload != nil {
		payload := nav.Payload
		return r, func() tea.Msg { return payload }
	}
	return r, r.current.Init()
}

func (r RootModel) View() string {
	switch {
	case r.about:
		return renderBuildInfoWindow(r.buildInfo, r.serverVersion)
	case r.current == nil:
		return renderPage("SITE FORMS", "", "")
	}
	return r.current.View()
}

// Submitted reports whether the wizard page finished with a stored
// submission.
func (r RootModel) Submitted() bool {
	w, ok := r.pages[pageWizard].(*WizardModel)
	return ok && w.Submitted()
}
