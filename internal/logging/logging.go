package logging

import (
	"fmt"
	"io"
	"strings"

	"github.com/velotools/gearrange-cli/internal/ui"
)

// Logger is a tiny opt-in logger used across internal packages.
// When Writer is nil, logging is disabled.
//
// The output format is:
//
//	<ColoredPrefix> config=<configName> <formattedMessage>\n
//
// where <configName> is trimmed and defaults to "(unnamed)".
type Logger struct {
	Writer io.Writer

	PrefixText  string
	PrefixColor string

	// OmitConfig controls whether the configuration name field is written.
	// When false (default), output includes: "config=<name>".
	OmitConfig bool
}

func (l *Logger) SetWriter(w io.Writer) { l.Writer = w }

func (l *Logger) Enabled() bool { return l != nil && l.Writer != nil }

func (l *Logger) Logf(configName string, format string, args ...any) {
	if l == nil || l.Writer == nil {
		return
	}
	prefix := l.PrefixText
	if prefix == "" {
		prefix = "Log:"
	}
	if l.PrefixColor != "" {
		prefix = ui.Color(prefix, l.PrefixColor)
	}
	msg := fmt.Sprintf(format, args...)
	if l.OmitConfig {
		fmt.Fprintf(l.Writer, "%s %s\n", prefix, msg)
		return
	}

	c := strings.TrimSpace(configName)
	if c == "" {
		c = "(unnamed)"
	}
	fmt.Fprintf(l.Writer, "%s config=%s %s\n", prefix, c, msg)
}
