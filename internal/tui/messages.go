package tui

import tea "github.com/charmbracelet/bubbletea"

// NavigateTo switches the active page of [RootModel]. A non-nil Payload is
// delivered to the new page instead of calling its Init.
type NavigateTo struct {
	Page    string
	Payload tea.Msg
}

type wizardLoadedMsg struct {
	restored bool
	err      error
}

type stepDoneMsg struct {
	err error
}

type draftSavedMsg struct {
	err error
}

type draftDeletedMsg struct {
	err error
}

type signInCopiedMsg struct {
	err error
}
