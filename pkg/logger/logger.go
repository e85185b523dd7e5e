package logger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// EnvLevel переопределяет уровень логирования.
const EnvLevel = "LOG_LEVEL"

// New returns JSON logger writing to w. LOG_LEVEL overrides fallback (default info).
func New(w io.Writer, fallback string) *slog.Logger {
	level := slog.LevelInfo
	for _, v := range []string{fallback, os.Getenv(EnvLevel)} {
		if v == "" {
			continue
		}
		var parsed slog.Level
		if err := parsed.UnmarshalText([]byte(v)); err == nil {
			level = parsed
		}
	}
	h := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(h)
}

// Output открывает журнал: stdout и stderr заняты результатом команды,
// поэтому журнал пишется только в файл из конфигурации, иначе отбрасывается.
func Output(file string) (io.Writer, func() error, error) {
	if file == "" {
		return io.Discard, func() error { return nil }, nil
	}
	if dir := filepath.Dir(file); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, nil, err
		}
	}
	f, err := os.OpenFile(file, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o640) // #nosec G304 -- путь из конфигурации.
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}
