package core

import (
	"bytes"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLogError_KeepsPercentInErrors(t *testing.T) {
	var buf bytes.Buffer
	SetLogOutput(&buf)
	defer SetLogOutput(os.Stderr)

	LogError("%s", errors.New("open /tmp/no%dfile.toml: no such file"))
	require.Contains(t, buf.String(), "/tmp/no%dfile.toml")
	require.NotContains(t, buf.String(), "MISSING")
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want LogLevel
	}{
		{"debug", DebugLevel},
		{" WARN ", WarnLevel},
		{"warning", WarnLevel},
		{"error", ErrorLevel},
		{"", InfoLevel},
		{"loud", InfoLevel},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, ParseLogLevel(tt.in), tt.in)
	}
}
