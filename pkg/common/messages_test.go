// Package common provides tests for message and logging functionality
package common

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetLogOutput(&buf)
	t.Cleanup(func() { SetLogOutput(os.Stderr) })
	return &buf
}

func TestSetVerboseMode(t *testing.T) {
	defer SetVerboseMode(false)

	SetVerboseMode(true)
	if !VerboseMode {
		t.Error("SetVerboseMode(true) should enable verbose mode")
	}

	SetVerboseMode(false)
	if VerboseMode {
		t.Error("SetVerboseMode(false) should disable verbose mode")
	}
}

func TestLogDebug_VerboseEnabled(t *testing.T) {
	buf := captureLogs(t)
	SetVerboseMode(true)
	defer SetVerboseMode(false)

	LogDebug("Test debug message with value: %d", 42)

	output := buf.String()
	if !strings.Contains(output, "Test debug message with value: 42") {
		t.Errorf("LogDebug output should contain formatted message, got: %q", output)
	}
	if !strings.Contains(output, "DEBUG") {
		t.Errorf("LogDebug output should carry the debug level, got: %q", output)
	}
}

func TestLogDebug_VerboseDisabled(t *testing.T) {
	buf := captureLogs(t)
	SetVerboseMode(false)

	LogDebug("This should not appear", 42)

	if output := buf.String(); output != "" {
		t.Errorf("LogDebug should be silent when verbose mode is disabled, got: %q", output)
	}
}

func TestLogLevels(t *testing.T) {
	tests := []struct {
		name  string
		log   func(string, ...interface{})
		level string
	}{
		{"info", LogInfo, "INFO"},
		{"warn", LogWarn, "WARN"},
		{"error", LogError, "ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := captureLogs(t)
			tt.log("message with value: %s", "test")

			output := buf.String()
			if !strings.Contains(output, "message with value: test") {
				t.Errorf("output should contain formatted message, got: %q", output)
			}
			if !strings.Contains(output, tt.level) {
				t.Errorf("output should contain level %s, got: %q", tt.level, output)
			}
		})
	}
}

func TestLogFunctions_NoArgs(t *testing.T) {
	buf := captureLogs(t)

	LogInfo("Simple message without formatting %d")

	expected := "Simple message without formatting %d"
	if output := buf.String(); !strings.Contains(output, expected) {
		t.Errorf("LogInfo without args should contain %q, got: %q", expected, output)
	}
}

func TestLogger_StructuredFields(t *testing.T) {
	buf := captureLogs(t)

	Logger().Info("game added", zap.String("name", "Foo"), zap.Int("chunks", 3))

	output := buf.String()
	for _, want := range []string{"game added", `"name": "Foo"`, `"chunks": 3`} {
		if !strings.Contains(output, want) {
			t.Errorf("structured output should contain %q, got: %q", want, output)
		}
	}
}

func TestFormatError(t *testing.T) {
	originalError := errors.New("original error")

	formattedError := FormatError("Base error message", originalError)

	if got, want := formattedError.Error(), "Base error message: original error"; got != want {
		t.Errorf("FormatError() = %q, want %q", got, want)
	}
	if !errors.Is(formattedError, originalError) {
		t.Error("FormatError() should wrap the original error")
	}
}

func TestFormatError_NonError(t *testing.T) {
	formattedError := FormatError("Base error message", 42)

	if got, want := formattedError.Error(), "Base error message: 42"; got != want {
		t.Errorf("FormatError() = %q, want %q", got, want)
	}
}
