package initializer

import (
	"io"
	"log/slog"

	"github.com/amirasaad/farmledger/pkg/config"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

var (
	infoTxtColor  = lipgloss.AdaptiveColor{Light: "#2E7D32", Dark: "#66BB6A"}
	warnTxtColor  = lipgloss.AdaptiveColor{Light: "#EF6C00", Dark: "#FFA726"}
	errorTxtColor = lipgloss.AdaptiveColor{Light: "#C62828", Dark: "#EF5350"}
	debugTxtColor = lipgloss.AdaptiveColor{Light: "#6D4C41", Dark: "#A1887F"}
)

// levelBadges sets the badge and color shown for each level.
var levelBadges = map[log.Level]struct {
	badge string
	color lipgloss.AdaptiveColor
}{
	log.ErrorLevel: {"ERR", errorTxtColor},
	log.WarnLevel:  {"WRN", warnTxtColor},
	log.InfoLevel:  {"INF", infoTxtColor},
	log.DebugLevel: {"DBG", debugTxtColor},
}

var formatters = map[string]log.Formatter{
	"json":   log.JSONFormatter,
	"text":   log.TextFormatter,
	"logfmt": log.LogfmtFormatter,
}

func logStyles() *log.Styles {
	styles := log.DefaultStyles()
	for level, b := range levelBadges {
		styles.Levels[level] = lipgloss.NewStyle().
			SetString(b.badge).
			Bold(true).
			Padding(0, 1).
			Foreground(b.color)
	}
	// Highlight the keys the services log on every line.
	for key, color := range map[string]lipgloss.AdaptiveColor{
		"error":   errorTxtColor,
		"context": debugTxtColor,
		"userID":  infoTxtColor,
		"phone":   infoTxtColor,
	} {
		styles.Keys[key] = lipgloss.NewStyle().Foreground(color)
		styles.Values[key] = lipgloss.NewStyle().Bold(true)
	}
	return styles
}

// setupLogger builds the charmbracelet handler behind slog and installs it
// as the default logger.
func setupLogger(w io.Writer, cfg *config.Log) *slog.Logger {
	if cfg == nil {
		cfg = &config.Log{Format: "text"}
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
	logger.SetStyles(logStyles())

	slogger := slog.New(logger)
	slog.SetDefault(slogger)
	return slogger
}
