package display

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
)

func withColor(t *testing.T, enabled bool) {
	t.Helper()
	orig := color.NoColor
	color.NoColor = !enabled
	t.Cleanup(func() { color.NoColor = orig })
}

func TestDisplayWarning_TitleOnly(t *testing.T) {
	withColor(t, true)

	var buf bytes.Buffer
	Warning{Title: "Configuration Missing"}.Display(&buf)

	output := buf.String()
	if !strings.Contains(output, "\x1b[33m") {
		t.Error("Expected yellow ANSI color code in output")
	}
	if !strings.Contains(output, "Warning: Configuration Missing") {
		t.Error("Expected title in output")
	}
	if !strings.Contains(output, "\x1b[0m") {
		t.Error("Expected ANSI reset code in output")
	}
}

func TestDisplayWarning_AllFields(t *testing.T) {
	withColor(t, false)

	var buf bytes.Buffer
	Warning{
		Title:      "Alert sound unavailable",
		Message:    "No audio player was found",
		Details:    []string{"mpg123", "ffplay"},
		Suggestion: "Set sound.backend: none",
	}.Display(&buf)

	want := "Warning: Alert sound unavailable\n" +
		"    No audio player was found\n" +
		"      1. mpg123\n" +
		"      2. ffplay\n" +
		"    Suggestion: Set sound.backend: none\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}

func TestDisplayWarning_NoColor(t *testing.T) {
	withColor(t, false)

	var buf bytes.Buffer
	Warning{Title: "Plain"}.Display(&buf)

	if strings.Contains(buf.String(), "\x1b[") {
		t.Errorf("expected no escape codes, got %q", buf.String())
	}
}
