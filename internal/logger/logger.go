package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New 建立 zerolog logger
// pretty 為 true 時輸出人類可讀格式 (CLI 用)，否則輸出 JSON
func New(level string, pretty bool, service string) *zerolog.Logger {
	var w io.Writer = os.Stdout
	if pretty {
		w = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	}
	return NewWithWriter(w, level, service)
}

func NewWithWriter(w io.Writer, level string, service string) *zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	l := zerolog.New(w).Level(lvl).With().Timestamp().Str("service", service).Logger()
	return &l
}
