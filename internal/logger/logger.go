package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NovoLogger cria o logger da aplicação. Níveis desconhecidos viram "info";
// format "console" usa a saída legível de desenvolvimento, qualquer outro valor gera JSON.
func NovoLogger(level, format, servico string) (*zap.Logger, error) {
	nivel, err := zapcore.ParseLevel(level)
	if err != nil {
		nivel = zapcore.InfoLevel
	}

	cfg := zap.NewProductionConfig()
	if format == "console" {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		cfg.EncoderConfig.TimeKey = "timestamp"
		cfg.EncoderConfig.EncodeTime = zapcore.RFC3339TimeEncoder
		cfg.OutputPaths = []string{"stdout"}
	}
	cfg.Level = zap.NewAtomicLevelAt(nivel)
	cfg.DisableStacktrace = nivel > zapcore.DebugLevel

	l, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	if servico != "" {
		l = l.With(zap.String("servico", servico))
	}
	return l, nil
}
