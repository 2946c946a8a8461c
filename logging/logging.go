package logging

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Graylog2/go-gelf/gelf"
	"github.com/rs/zerolog"

	"github.com/lixenwraith/vi-lander/config"
)

// FileName is the log file created inside the configured log directory
const FileName = "vi-lander.log"

// ParseLevel maps a config level name to a zerolog level, unknown names fall back to info
func ParseLevel(name string) zerolog.Level {
	switch strings.ToUpper(name) {
	case "TRACE":
		return zerolog.TraceLevel
	case "DEBUG":
		return zerolog.DebugLevel
	case "INFO":
		return zerolog.InfoLevel
	case "WARN":
		return zerolog.WarnLevel
	case "ERROR":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// New builds the process logger. The terminal belongs to the renderer, so the file
// writer is always present and the console writer is opt-in for the headless runner.
// The returned closer flushes and closes every sink.
func New(cfg config.LogConfig) (zerolog.Logger, io.Closer, error) {
	if err := os.MkdirAll(cfg.Dir, 0755); err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	file, err := os.OpenFile(filepath.Join(cfg.Dir, FileName), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("failed to open log file: %w", err)
	}

	closers := sinks{file}
	writers := []io.Writer{
		zerolog.ConsoleWriter{
			Out:        file,
			TimeFormat: time.RFC3339,
			NoColor:    true,
		},
	}

	if cfg.Console {
		writers = append(writers, zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339,
		})
	}

	if cfg.Graylog != "" {
		gw, err := gelf.NewWriter(cfg.Graylog)
		if err != nil {
			closers.Close()
			return zerolog.Nop(), nil, fmt.Errorf("failed to create graylog writer: %w", err)
		}
		writers = append(writers, gw)
		closers = append(closers, gw)
	}

	zerolog.TimestampFunc = func() time.Time {
		return time.Now().UTC()
	}

	logger := zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(ParseLevel(cfg.Level)).
		With().Timestamp().Str("app", "vi-lander").Logger()

	logger.Info().Str("loglevel", logger.GetLevel().String()).Msg("Logging set up")
	return logger, closers, nil
}

// Sampled wraps l for per-tick trace output: 5 entries per second, then 1 in 100
func Sampled(l zerolog.Logger) zerolog.Logger {
	return l.With().Bool("sampled", true).Logger().Sample(&zerolog.BurstSampler{
		Burst:       5,
		Period:      time.Second,
		NextSampler: &zerolog.BasicSampler{N: 100},
	})
}

type sinks []io.Closer

func (s sinks) Close() error {
	var errs []error
	for i := len(s) - 1; i >= 0; i-- {
		if err := s[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
