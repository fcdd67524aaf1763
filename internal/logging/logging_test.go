package logging

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithStaff_AddsField(t *testing.T) {
	var buf bytes.Buffer
	prev := Logger
	Logger = slog.New(slog.NewTextHandler(&buf, nil))
	t.Cleanup(func() { Logger = prev })

	WithStaff("staff-123").Warn("persist failed")

	assert.Contains(t, buf.String(), "staff_id=staff-123")
	assert.Contains(t, buf.String(), "persist failed")
}

func TestWithSpin_AddsField(t *testing.T) {
	var buf bytes.Buffer
	prev := Logger
	Logger = slog.New(slog.NewTextHandler(&buf, nil))
	t.Cleanup(func() { Logger = prev })

	WithSpin("spin-456").Warn("quote fallback")

	assert.Contains(t, buf.String(), "spin_id=spin-456")
}

func TestHelpers_BeforeInit(t *testing.T) {
	prev := Logger
	Logger = nil
	t.Cleanup(func() { Logger = prev })

	// Must not panic and must hand back a usable logger.
	require.NotNil(t, WithStaff("staff-123"))
	require.NotNil(t, WithSpin("spin-456"))
}
