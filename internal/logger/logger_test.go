package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNovoLogger_Niveis(t *testing.T) {
	casos := []struct {
		level      string
		format     string
		habilitado zapcore.Level
		bloqueado  zapcore.Level
	}{
		{"warn", "json", zapcore.WarnLevel, zapcore.InfoLevel},
		{"debug", "console", zapcore.DebugLevel, zapcore.DebugLevel - 1},
		{"ERROR", "json", zapcore.ErrorLevel, zapcore.WarnLevel},
		{"qualquer", "console", zapcore.InfoLevel, zapcore.DebugLevel},
		{"", "json", zapcore.InfoLevel, zapcore.DebugLevel},
	}
	for _, c := range casos {
		t.Run(c.level+"/"+c.format, func(t *testing.T) {
			l, err := NovoLogger(c.level, c.format, "api-condominio")
			require.NoError(t, err)
			assert.True(t, l.Core().Enabled(c.habilitado))
			assert.False(t, l.Core().Enabled(c.bloqueado))
		})
	}
}
