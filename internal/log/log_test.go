package log

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnableSection(t *testing.T) {
	out := bytes.NewBuffer(nil)
	logger := slog.New(&filteringHandler{underlying: slog.NewTextHandler(out, &slog.HandlerOptions{Level: slog.LevelDebug})})
	sectioned := logger.With("section", "transform")

	sectioned.Debug("before")
	assert.NotContains(t, out.String(), "before")

	EnableSection("transform")
	sectioned.Debug("after")
	assert.Contains(t, out.String(), "after")

	logger.Warn("warnings always pass", "section", "elsewhere")
	assert.Contains(t, out.String(), "warnings always pass")
}
