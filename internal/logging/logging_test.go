package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Makepad-fr/tada/internal/config"
)

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(&buf, config.LogConfig{Level: "warn", Format: "text"})
	require.NoError(t, err)

	l.Info("hidden")
	l.Warn("save todos failed", "key", "todo-storage")
	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "save todos failed")
	assert.Contains(t, out, "key=todo-storage")
}

func TestJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(&buf, config.LogConfig{Level: "INFO", Format: "json"})
	require.NoError(t, err)

	l.Info("loaded todos", "count", 3)
	var rec map[string]any
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(buf.String())), &rec))
	assert.Equal(t, "loaded todos", rec["msg"])
	assert.EqualValues(t, 3, rec["count"])
}

func TestBadConfig(t *testing.T) {
	_, err := New(&bytes.Buffer{}, config.LogConfig{Level: "loud"})
	assert.Error(t, err)
	_, err = New(&bytes.Buffer{}, config.LogConfig{Level: "info", Format: "xml"})
	assert.Error(t, err)
}
