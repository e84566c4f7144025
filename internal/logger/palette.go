package logger

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"
)

// Severity identifies one of the fixed message categories.
type Severity int

const (
	Debug Severity = iota
	Info
	Warning
	Success
	Error
)

// Severities lists every severity in display order.
var Severities = []Severity{Debug, Info, Warning, Success, Error}

// String returns the lowercase severity name.
func (s Severity) String() string {
	switch s {
	case Debug:
		return "debug"
	case Info:
		return "info"
	case Warning:
		return "warning"
	case Success:
		return "success"
	case Error:
		return "error"
	default:
		return fmt.Sprintf("severity(%d)", int(s))
	}
}

// ParseSeverity converts a severity name to its Severity (case-insensitive).
// "warn" is accepted as an alias for warning.
func ParseSeverity(name string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return Debug, nil
	case "info":
		return Info, nil
	case "warning", "warn":
		return Warning, nil
	case "success":
		return Success, nil
	case "error":
		return Error, nil
	default:
		return Info, fmt.Errorf("unknown severity %q", name)
	}
}

// defaultBackgrounds maps each severity to a 256-color background code.
var defaultBackgrounds = map[Severity]int{
	Debug:   54,  // indigo
	Info:    18,  // ocean blue
	Warning: 203, // coral
	Success: 22,  // emerald
	Error:   88,  // burgundy
}

// DefaultBackground returns the built-in background code for a severity.
func DefaultBackground(s Severity) int {
	return defaultBackgrounds[s]
}

// Style is a pair of escape sequences wrapping a rendered line.
// The zero value renders text unchanged.
type Style struct {
	attrs []color.Attribute
}

// NewStyle builds a Style from SGR attributes.
func NewStyle(attrs ...color.Attribute) Style {
	return Style{attrs: append([]color.Attribute(nil), attrs...)}
}

// backgroundStyle returns bold white text on a 256-color background.
func backgroundStyle(code int) Style {
	return NewStyle(color.Bold, color.FgWhite, 48, 5, color.Attribute(code))
}

// Start returns the sequence that enables the style.
func (s Style) Start() string {
	if len(s.attrs) == 0 {
		return ""
	}
	codes := make([]string, len(s.attrs))
	for i, a := range s.attrs {
		codes[i] = strconv.Itoa(int(a))
	}
	return "\x1b[" + strings.Join(codes, ";") + "m"
}

// End returns the sequence that restores default terminal attributes.
func (s Style) End() string {
	if len(s.attrs) == 0 {
		return ""
	}
	return fmt.Sprintf("\x1b[%dm", color.Reset)
}

// Wrap surrounds text with the style's start and end sequences.
func (s Style) Wrap(text string) string {
	return s.Start() + text + s.End()
}

// Palette is an immutable severity-to-style table.
type Palette struct {
	styles map[Severity]Style
}

// NewPalette builds a palette from the default backgrounds, applying any
// overrides. When enabled is false every style renders plain text.
func NewPalette(enabled bool, overrides map[Severity]int) Palette {
	styles := make(map[Severity]Style, len(defaultBackgrounds))
	for sev, code := range defaultBackgrounds {
		if c, ok := overrides[sev]; ok {
			code = c
		}
		if enabled {
			styles[sev] = backgroundStyle(code)
		} else {
			styles[sev] = Style{}
		}
	}
	return Palette{styles: styles}
}

// Style returns the style registered for sev.
func (p Palette) Style(sev Severity) Style {
	return p.styles[sev]
}
