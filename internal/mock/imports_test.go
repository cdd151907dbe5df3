package mock

import (
	"go/parser"
	"go/token"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Packages whose own tests use these mocks. Importing any of them from here
// is an import cycle in their test builds.
var mockedFrom = []string{
	"github.com/MKhiriev/go-site-forms/internal/service",
	"github.com/MKhiriev/go-site-forms/internal/tui",
	"github.com/MKhiriev/go-site-forms/internal/handler/http",
	"github.com/MKhiriev/go-site-forms/internal/publisher",
}

func TestMocksDoNotImportTheirUsers(t *testing.T) {
	files, err := filepath.Glob("*_mock.go")
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for _, name := range files {
		f, err := parser.ParseFile(token.NewFileSet(), name, nil, parser.ImportsOnly)
		require.NoError(t, err, name)

		for _, spec := range f.Imports {
			path, err := strconv.Unquote(spec.Path.Value)
			require.NoError(t, err)
			assert.NotContains(t, mockedFrom, path, "%s imports %s", name, path)
		}
	}
}
