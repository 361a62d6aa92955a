package shared

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	charmlog "github.com/charmbracelet/log"
	"github.com/rs/zerolog"
)

// SetupLogger configures zerolog with pretty console output
func SetupLogger(debug bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}

	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		Level(level).
		With().
		Timestamp().
		Logger()
}

// SetupLevelLogger is SetupLogger with a named level from the config file.
// debug wins over the configured level.
func SetupLevelLogger(level string, debug bool) (zerolog.Logger, error) {
	if debug {
		return SetupLogger(true), nil
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return SetupLogger(false).Level(lvl), nil
}

// SetupFileLogger opens path for a charm logger. The terminal UI owns the
// screen, so its logs go to a file instead of stderr.
func SetupFileLogger(path string, debug bool) (*charmlog.Logger, io.Closer, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create log file: %w", err)
	}

	level := charmlog.InfoLevel
	if debug {
		level = charmlog.DebugLevel
	}
	logger := charmlog.NewWithOptions(f, charmlog.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Prefix:          "BLACKJACK",
		Level:           level,
	})
	return logger, f, nil
}
