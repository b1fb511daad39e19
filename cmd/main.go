package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/KromaEnergia/api-condominio/internal/config"
	"github.com/KromaEnergia/api-condominio/internal/logger"
	"github.com/KromaEnergia/api-condominio/internal/notificacao"
	"github.com/KromaEnergia/api-condominio/internal/server"
	"github.com/KromaEnergia/api-condominio/internal/utils/db"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	zapLogger, err := logger.NovoLogger(cfg.LogLevel, cfg.LogFormat, "api-condominio")
	if err != nil {
		log.Fatal("Erro ao criar logger:", err)
	}
	defer zapLogger.Sync()

	if cfg.JWTSecret == config.SegredoPadrao {
		zapLogger.Warn("JWT_SECRET não definido, usando segredo de desenvolvimento")
	}

	ctx := context.Background()
	var encerrar []func()

	var repos *server.Repositorios
	switch cfg.StorageDriver {
	case "postgres":
		database, err := db.ConnectDataBase(ctx, cfg)
		if err != nil {
			zapLogger.Fatal("Erro ao conectar no banco", zap.Error(err))
		}
		if err := db.Migrar(database); err != nil {
			zapLogger.Fatal("Erro no AutoMigrate", zap.Error(err))
		}
		if sqlDB, err := database.DB(); err == nil {
			encerrar = append(encerrar, func() { sqlDB.Close() })
		}
		repos = server.RepositoriosGorm(database)
	case "json":
		repos, err = server.RepositoriosJSON(cfg.DataDir, zapLogger)
		if err != nil {
			zapLogger.Fatal("Erro ao abrir dados", zap.String("dir", cfg.DataDir), zap.Error(err))
		}
	default:
		zapLogger.Fatal("STORAGE_DRIVER inválido", zap.String("driver", cfg.StorageDriver))
	}

	var publicadores []notificacao.Publicador
	if cfg.RedisURL != "" {
		redisClient, err := notificacao.ConectarRedis(ctx, cfg.RedisURL)
		if err != nil {
			zapLogger.Fatal("Erro ao conectar no Redis", zap.Error(err))
		}
		encerrar = append(encerrar, func() { redisClient.Close() })
		publicadores = append(publicadores, notificacao.NovoRedisPublicador(redisClient, cfg.NotificationStream))
		zapLogger.Info("notificações publicadas no Redis", zap.String("stream", cfg.NotificationStream))
	}
	if cfg.WebhookURL != "" {
		publicadores = append(publicadores, notificacao.NovoWebhookPublicador(cfg.WebhookURL))
		zapLogger.Info("notificações enviadas por webhook", zap.String("url", cfg.WebhookURL))
	}

	app, err := server.NovaApp(cfg, repos, zapLogger, publicadores...)
	if err != nil {
		zapLogger.Fatal("Erro ao montar aplicação", zap.Error(err))
	}

	if cfg.SeedUsers {
		if err := app.Usuarios.Semear(ctx); err != nil {
			zapLogger.Fatal("Erro ao criar usuários iniciais", zap.Error(err))
		}
	}

	srv := server.NewServer(cfg.HTTPAddr, app.Router(), zapLogger)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		zapLogger.Info("sinal recebido", zap.String("signal", sig.String()))
	case err := <-errCh:
		zapLogger.Error("servidor HTTP falhou", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Stop(shutdownCtx); err != nil {
		zapLogger.Error("erro ao encerrar servidor", zap.Error(err))
	}
	for _, f := range encerrar {
		f()
	}
}
