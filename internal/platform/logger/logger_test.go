package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
)

func TestToZapLevel(t *testing.T) {
	cases := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"INFO":    zapcore.InfoLevel,
		"warning": zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"bogus":   zapcore.InfoLevel,
	}
	for in, want := range cases {
		cfg := LoggerConfig{Level: in}
		assert.Equal(t, want, cfg.ToZapLevel(), in)
	}
}

func TestNewLogger_ConsoleFormat(t *testing.T) {
	l := NewLogger(LoggerConfig{Level: "debug", Format: "text"})
	assert.NotNil(t, l.Logger)
	assert.True(t, l.Core().Enabled(zapcore.DebugLevel))
	assert.NotNil(t, l.Named("sub").With())
}
