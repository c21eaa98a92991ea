package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		email   string
		wantErr bool
	}{
		{"awa@example.com", false},
		{"AWA.DIALLO@Example.GN", false},
		{"first+tag@mail.example.org", false},
		{"", true},
		{"awa@", true},
		{"awa@example", true},
		{"awa example@x.com", true},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			err := ValidateEmail(tt.email)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateOptionalEmail(t *testing.T) {
	assert.NoError(t, ValidateOptionalEmail(""))
	assert.NoError(t, ValidateOptionalEmail("awa@example.com"))
	assert.Error(t, ValidateOptionalEmail("not-an-email"))
}

func TestValidateAmount(t *testing.T) {
	assert.NoError(t, ValidateAmount("quantity", decimal.Zero))
	assert.NoError(t, ValidateAmount("unitPrice", decimal.RequireFromString("12.5")))

	err := ValidateAmount("quantity", decimal.NewFromInt(-1))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quantity must not be negative")
}

func TestNewLogger(t *testing.T) {
	t.Run("stdout console", func(t *testing.T) {
		logger, err := NewLogger(LoggerConfig{Level: "debug", Format: "console"})
		require.NoError(t, err)
		assert.NotNil(t, logger)
	})

	t.Run("unknown level falls back to info", func(t *testing.T) {
		logger, err := NewLogger(LoggerConfig{Level: "chatty", OutputPath: "stderr", Format: "json"})
		require.NoError(t, err)
		assert.False(t, logger.Core().Enabled(-1))
		assert.True(t, logger.Core().Enabled(0))
	})

	t.Run("file output", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "logs", "server.log")
		logger, err := NewLogger(LoggerConfig{Level: "info", OutputPath: path, Format: "json"})
		require.NoError(t, err)

		logger.Info("invoice created")
		require.NoError(t, logger.Sync())

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), `"msg":"invoice created"`)
		assert.Contains(t, string(data), `"timestamp"`)
	})
}

func TestNewRequestLogger(t *testing.T) {
	base, err := NewLogger(LoggerConfig{Level: "info"})
	require.NoError(t, err)

	assert.Same(t, base, NewRequestLogger(base, ""))
	assert.NotSame(t, base, NewRequestLogger(base, "req-1"))
}
