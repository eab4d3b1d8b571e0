package ui

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

// NewLogger returns the application logger. Only errors are shown unless
// verbose is set.
func NewLogger(w io.Writer, verbose bool) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		Level:           log.ErrorLevel,
		ReportTimestamp: false,
	})
	if verbose {
		logger.SetLevel(log.InfoLevel)
	}

	styles := log.DefaultStyles()
	styles.Levels[log.ErrorLevel] = ErrorStyle.SetString("ERROR")
	styles.Levels[log.WarnLevel] = WarnStyle.Bold(true).SetString("WARN")
	styles.Levels[log.InfoLevel] = InfoStyle.SetString("INFO")
	styles.Keys["err"] = lipgloss.NewStyle().Foreground(colorError)
	logger.SetStyles(styles)

	return logger
}
