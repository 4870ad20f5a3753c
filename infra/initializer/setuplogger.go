package initializer

import (
	"io"
	"log/slog"
	"os"

	"github.com/amirasaad/atm/pkg/config"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

type levelStyle struct {
	symbol string
	color  lipgloss.AdaptiveColor
	key    string
}

var levelStyles = map[log.Level]levelStyle{
	log.ErrorLevel: {"ERR", lipgloss.AdaptiveColor{Light: "#D7263D", Dark: "#FF6B6B"}, "error"},
	log.WarnLevel:  {"WRN", lipgloss.AdaptiveColor{Light: "#C77C02", Dark: "#F4C430"}, "warn"},
	log.InfoLevel:  {"INF", lipgloss.AdaptiveColor{Light: "#04875A", Dark: "#04B575"}, "info"},
	log.DebugLevel: {"DBG", lipgloss.AdaptiveColor{Light: "#5E35B1", Dark: "#7E57C2"}, "debug"},
}

var formatters = map[string]log.Formatter{
	"json":   log.JSONFormatter,
	"text":   log.TextFormatter,
	"logfmt": log.LogfmtFormatter,
}

// SetupLogger builds the process logger on stdout and installs it as the slog default.
func SetupLogger(cfg *config.Log) *slog.Logger {
	logger := newLogger(os.Stdout, cfg)
	slog.SetDefault(logger)
	return logger
}

func newLogger(w io.Writer, cfg *config.Log) *slog.Logger {
	if cfg == nil {
		cfg = &config.Log{Format: "text", TimeFormat: "2006-01-02 15:04:05", Prefix: "[atm]"}
	}

	styles := log.DefaultStyles()
	for level, s := range levelStyles {
		styles.Levels[level] = lipgloss.NewStyle().
			SetString(s.symbol).
			Bold(true).
			Padding(0, 1).
			Foreground(s.color)
		styles.Keys[s.key] = lipgloss.NewStyle().Foreground(s.color)
		styles.Values[s.key] = lipgloss.NewStyle().Bold(true)
	}
	muted := levelStyles[log.DebugLevel].color
	for _, k := range []string{"component", "trace_id", "integrity_alert"} {
		styles.Keys[k] = lipgloss.NewStyle().Foreground(muted)
		styles.Values[k] = lipgloss.NewStyle().Bold(true)
	}

	formatter, ok := formatters[cfg.Format]
	if !ok {
		formatter = log.TextFormatter
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportCaller:    true,
		ReportTimestamp: true,
		TimeFormat:      cfg.TimeFormat,
		Level:           log.Level(cfg.Level),
		Prefix:          cfg.Prefix,
		Formatter:       formatter,
	})
	logger.SetStyles(styles)

	return slog.New(logger)
}
