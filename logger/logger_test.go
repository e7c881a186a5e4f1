package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel(" error "))
	assert.Equal(t, slog.LevelInfo, ParseLevel(""))
	assert.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
}

func TestNew_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: slog.LevelInfo, Format: "json", Component: ComponentSchedule, Output: &buf})

	l.Info("calculated", FieldTermMonths, 120)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "calculated", entry["msg"])
	assert.Equal(t, ComponentSchedule, entry[FieldComponent])
	assert.Equal(t, float64(120), entry[FieldTermMonths])
}

func TestNew_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: slog.LevelWarn, Output: &buf})

	l.Info("hidden")
	l.Warn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestWithComponent_ReplacesComponent(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: slog.LevelInfo, Output: &buf}).With(FieldRequestID, "r-1")

	child := l.WithComponent(ComponentHTTP)
	child.Info("hello")

	line := buf.String()
	assert.Equal(t, ComponentHTTP, child.Component())
	assert.Equal(t, 1, strings.Count(line, FieldComponent+"="))
	assert.Contains(t, line, "component=http")
	assert.Contains(t, line, "request_id=r-1")
}

func TestContextRoundTrip(t *testing.T) {
	l := New(DefaultConfig())
	ctx := IntoContext(context.Background(), l)
	assert.Same(t, l, FromContext(ctx))

	fallback := FromContext(context.Background())
	require.NotNil(t, fallback)
	assert.Equal(t, "unknown", fallback.Component())
}
