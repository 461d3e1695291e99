package common

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserError(t *testing.T) {
	inner := fmt.Errorf("%w: open dognames.txt", ErrDogFile)
	err := NewUserError("cannot load dog names", inner)

	assert.Equal(t, "cannot load dog names: dog name file unreadable: open dognames.txt", err.Error())
	assert.True(t, errors.Is(err, ErrDogFile))

	var userErr *UserError
	require.True(t, errors.As(err, &userErr))
	assert.Equal(t, "cannot load dog names", userErr.UserMessage)

	bare := NewUserError("nothing to do", nil)
	assert.Equal(t, "nothing to do", bare.Error())
}

func TestIsConfigError(t *testing.T) {
	assert.True(t, IsConfigError(fmt.Errorf("wrap: %w", ErrImageDir)))
	assert.True(t, IsConfigError(ErrNoImages))
	assert.True(t, IsConfigError(ErrInvalidConfig))
	assert.False(t, IsConfigError(ErrClassificationFailed))
	assert.False(t, IsConfigError(errors.New("other")))
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    slog.Level
		wantErr bool
	}{
		{input: "debug", want: slog.LevelDebug},
		{input: "INFO", want: slog.LevelInfo},
		{input: "", want: slog.LevelInfo},
		{input: "warn", want: slog.LevelWarn},
		{input: "error", want: slog.LevelError},
		{input: "trace", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer

	logger, err := NewLogger(&buf, slog.LevelInfo, "json")
	require.NoError(t, err)
	logger.Debug("hidden")
	logger.Warn("Duplicate dog name", "name", "beagle")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"msg":"Duplicate dog name"`)
	assert.Contains(t, out, `"name":"beagle"`)

	_, err = NewLogger(&buf, slog.LevelInfo, "xml")
	assert.Error(t, err)
}
