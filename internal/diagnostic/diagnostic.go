// Package diagnostic prints CLI-facing status messages (warnings, errors,
// section headers, tag glyphs) with the same color-detection rules the
// prompt engine itself uses, sourced from the style package's palette
// rather than hand-rolled SGR codes.
package diagnostic

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/majorcontext/prompt/style"
)

var writer io.Writer = os.Stderr

// SetWriter overrides the output writer (for testing).
func SetWriter(w io.Writer) {
	writer = w
}

// --- Color detection ---

var stdoutColor = detectColor(os.Stdout)
var stderrColor = detectColor(os.Stderr)

func detectColor(f *os.File) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// SetColorEnabled overrides color detection (for testing).
func SetColorEnabled(enabled bool) {
	stdoutColor = enabled
	stderrColor = enabled
}

// ColorEnabled reports whether stdout color is enabled.
func ColorEnabled() bool {
	return stdoutColor
}

func paint(enabled bool, fg style.Color, attrs style.Attributes, s string) string {
	if !enabled {
		return s
	}
	var b strings.Builder
	styled := style.New(style.Str(s))
	if !fg.IsReset() {
		styled = styled.WithFg(fg)
	}
	if attrs != 0 {
		styled = styled.WithAttributes(attrs)
	}
	// diagnostic output never shares a live cursor/attribute session with
	// a Backend, so writing raw SGR here (rather than going through
	// backend.Backend) is the one place this package touches escape codes
	// directly.
	if styled.Attributes != 0 {
		for _, code := range styled.Attributes.SGRSetCodes() {
			fmt.Fprintf(&b, "\033[%sm", code)
		}
	}
	if !fg.IsReset() {
		fmt.Fprintf(&b, "\033[%sm", fg.FgSGR())
	}
	b.WriteString(s)
	b.WriteString("\033[0m")
	return b.String()
}

// Bold returns s wrapped in bold ANSI codes (stdout).
func Bold(s string) string { return paint(stdoutColor, style.Reset, style.Bold, s) }

// Dim returns s wrapped in dim ANSI codes (stdout).
func Dim(s string) string { return paint(stdoutColor, style.Reset, style.Dim, s) }

// Green returns s wrapped in green ANSI codes (stdout).
func Green(s string) string { return paint(stdoutColor, style.Green, 0, s) }

// Red returns s wrapped in red ANSI codes (stdout).
func Red(s string) string { return paint(stdoutColor, style.Red, 0, s) }

// Yellow returns s wrapped in yellow ANSI codes (stdout).
func Yellow(s string) string { return paint(stdoutColor, style.Yellow, 0, s) }

// Cyan returns s wrapped in cyan ANSI codes (stdout).
func Cyan(s string) string { return paint(stdoutColor, style.Cyan, 0, s) }

func ansiStderr(fg style.Color, s string) string { return paint(stderrColor, fg, 0, s) }

// --- Formatting helpers ---

// Section prints a bold title with a thin underline to stdout.
func Section(title string) {
	fmt.Println(Bold(title))
	fmt.Println(Dim(strings.Repeat("─", len(title))))
}

// OKTag returns a green "✓" for success indicators.
func OKTag() string { return Green("✓") }

// FailTag returns a red "✗" for failure indicators.
func FailTag() string { return Red("✗") }

// WarnTag returns a yellow "⚠" for warning indicators.
func WarnTag() string { return Yellow("⚠") }

// InfoTag returns a cyan "ℹ" for info indicators.
func InfoTag() string { return Cyan("ℹ") }

// --- Warn / Error / Info (stderr, colored prefix) ---

// Warn prints a user-facing warning to stderr.
func Warn(msg string) {
	fmt.Fprintf(writer, "%s %s\n", ansiStderr(style.Yellow, "Warning:"), msg)
}

// Warnf prints a formatted user-facing warning to stderr.
func Warnf(format string, args ...any) {
	fmt.Fprintf(writer, "%s %s\n", ansiStderr(style.Yellow, "Warning:"), fmt.Sprintf(format, args...))
}

// Error prints a user-facing error to stderr.
func Error(msg string) {
	fmt.Fprintf(writer, "%s %s\n", ansiStderr(style.Red, "Error:"), msg)
}

// Errorf prints a formatted user-facing error to stderr.
func Errorf(format string, args ...any) {
	fmt.Fprintf(writer, "%s %s\n", ansiStderr(style.Red, "Error:"), fmt.Sprintf(format, args...))
}

// Info prints a user-facing message to stderr with no prefix.
func Info(msg string) {
	fmt.Fprintf(writer, "%s\n", msg)
}

// Infof prints a formatted user-facing message to stderr with no prefix.
func Infof(format string, args ...any) {
	fmt.Fprintf(writer, format+"\n", args...)
}
