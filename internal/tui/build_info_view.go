package tui

import (
	"fmt"
	"strings"

	"github.com/MKhiriev/go-site-forms/models"
)

func renderBuildInfoWindow(info models.AppBuildInfo, serverVersion string) string {
	if strings.TrimSpace(serverVersion) == "" {
		serverVersion = "unreachable"
	}

	rows := [][2]string{
		{"Application", "site forms client"},
		{"Version", info.Version},
		{"Date", info.Date},
		{"Commit", info.Commit},
		{"Server version", serverVersion},
	}

	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		lines = append(lines, fmt.Sprintf("%-15s %s", row[0]+":", row[1]))
	}
	return renderPage("ABOUT", strings.Join(lines, "\n"), "ctrl+v/esc: back")
}
