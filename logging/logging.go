package logging

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// LogFilePath names a session log after its start time, e.g.
// "logs/session.20240102_150405.log".
func LogFilePath(dir, name string, start time.Time) string {
	return filepath.Join(dir, fmt.Sprintf("%s.%s.log", name, start.UTC().Format("20060102_150405")))
}

// PlayerLogPath is the log shared by every session of one side.
func PlayerLogPath(dir string, turn int) string {
	return filepath.Join(dir, fmt.Sprintf("player%d.log", turn))
}

type files []*os.File

func (fs files) Close() error {
	var errs []error
	for _, f := range fs {
		errs = append(errs, f.Close())
	}
	return errors.Join(errs...)
}

// Setup points the global logger at a per-session log and a per-player log
// inside dir. When dir does not exist, logs go to stderr instead. Stdout is
// never used since it carries the referee protocol.
func Setup(dir string, turn int, level string) (io.Closer, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	zerolog.SetGlobalLevel(lvl)
	zerolog.TimestampFunc = func() time.Time {
		return time.Now().UTC()
	}

	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		log.Logger = zerolog.New(zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339,
		}).With().Timestamp().Logger()
		return files(nil), nil
	}

	var opened files
	for _, path := range []string{LogFilePath(dir, "session", time.Now()), PlayerLogPath(dir, turn)} {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			opened.Close()
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		opened = append(opened, f)
	}

	writers := make([]io.Writer, 0, len(opened))
	for _, f := range opened {
		writers = append(writers, zerolog.ConsoleWriter{
			Out:        f,
			TimeFormat: time.RFC3339,
			NoColor:    true,
		})
	}
	log.Logger = zerolog.New(zerolog.MultiLevelWriter(writers...)).With().Timestamp().Logger()
	log.Info().Str("loglevel", lvl.String()).Msgf("logging set up for player %d", turn)
	return opened, nil
}
