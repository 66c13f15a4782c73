package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewLevels(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, false)

	logger.Debug("hidden")
	logger.Info("saved", "file", "show.mp4")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "saved")
	assert.Contains(t, out, "file=show.mp4")
	assert.NotContains(t, out, "\x1b[", "non-terminal output must be plain")
}

func TestNewDebug(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, true)

	logger.Debug("skipping", "url", "https://example.com/ep1")

	assert.Contains(t, buf.String(), "skipping")
	assert.Contains(t, buf.String(), "url=https://example.com/ep1")
}

func TestIsTerminal(t *testing.T) {
	assert.False(t, isTerminal(&bytes.Buffer{}))
}
