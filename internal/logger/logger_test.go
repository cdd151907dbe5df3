package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeEntry(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	return entry
}

func TestNewLogger_EntryShape(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(&buf, "site-forms-server")

	l.Info().Msg("form saved")

	entry := decodeEntry(t, &buf)
	assert.Equal(t, "site-forms-server", entry["role"])
	assert.Equal(t, "form saved", entry["message"])
	assert.Contains(t, entry, "time")

	caller, ok := entry["func"].(string)
	require.True(t, ok, "caller is recorded under func")
	assert.True(t, strings.HasSuffix(caller, "TestNewLogger_EntryShape"), caller)

	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())
}

func TestNop_DiscardsOutput(t *testing.T) {
	var buf bytes.Buffer
	l := Nop()
	l.Logger = l.Output(&buf)

	l.Info().Msg("dropped")

	assert.Empty(t, buf.String())
}

func TestChildLoggers(t *testing.T) {
	var buf bytes.Buffer
	parent := newLogger(&buf, "wizard")

	t.Run("child keeps parent fields", func(t *testing.T) {
		buf.Reset()
		child := parent.GetChildLogger()
		assert.NotSame(t, parent, child)

		child.Info().Msg("child")
		assert.Equal(t, "wizard", decodeEntry(t, &buf)["role"])
	})

	t.Run("page key is added to the child only", func(t *testing.T) {
		buf.Reset()
		parent.WithPage("contact").Info().Msg("scoped")
		assert.Equal(t, "contact", decodeEntry(t, &buf)["page_key"])

		buf.Reset()
		parent.Info().Msg("unscoped")
		assert.NotContains(t, decodeEntry(t, &buf), "page_key")
	})
}

func TestNewClientLogger(t *testing.T) {
	t.Run("writes to the log file", func(t *testing.T) {
		dir := t.TempDir()
		NewClientLogger("site-forms-client", dir).Info().Msg("draft saved")

		data, err := os.ReadFile(filepath.Join(dir, ClientLogFile))
		require.NoError(t, err)
		entry := decodeEntry(t, bytes.NewBuffer(data))
		assert.Equal(t, "site-forms-client", entry["role"])
		assert.Equal(t, "draft saved", entry["message"])
	})

	t.Run("missing directory discards", func(t *testing.T) {
		l := NewClientLogger("site-forms-client", filepath.Join(t.TempDir(), "missing", "dir"))
		require.NotNil(t, l)
		assert.NotPanics(t, func() { l.Info().Msg("dropped") })
	})
}

func TestFromContext(t *testing.T) {
	t.Run("nothing attached", func(t *testing.T) {
		assert.NotNil(t, FromContext(context.Background()))
	})

	t.Run("attached logger", func(t *testing.T) {
		var buf bytes.Buffer
		ctx := zerolog.New(&buf).With().Str("trace_id", "t-1").Logger().WithContext(context.Background())

		FromContext(ctx).Info().Msg("from context")
		assert.Equal(t, "t-1", decodeEntry(t, &buf)["trace_id"])
	})
}

func TestFromRequest(t *testing.T) {
	var buf bytes.Buffer
	ctx := zerolog.New(&buf).With().Str("trace_id", "t-2").Logger().WithContext(context.Background())
	req := httptest.NewRequest(http.MethodGet, "/forms/register", nil).WithContext(ctx)

	FromRequest(req).Info().Msg("from request")

	assert.Equal(t, "t-2", decodeEntry(t, &buf)["trace_id"])
	assert.NotNil(t, FromRequest(httptest.NewRequest(http.MethodGet, "/", nil)))
}
