package server

import (
	"fmt"

	"github.com/KromaEnergia/api-condominio/internal/auth"
	"github.com/KromaEnergia/api-condominio/internal/comentario"
	"github.com/KromaEnergia/api-condominio/internal/config"
	"github.com/KromaEnergia/api-condominio/internal/models"
	"github.com/KromaEnergia/api-condominio/internal/notificacao"
	"github.com/KromaEnergia/api-condominio/internal/ordem"
	"github.com/KromaEnergia/api-condominio/internal/relatorio"
	"github.com/KromaEnergia/api-condominio/internal/storage"
	"github.com/KromaEnergia/api-condominio/internal/usuario"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Repositorios agrupa o armazenamento de cada coleção.
type Repositorios struct {
	Usuarios     usuario.Repository
	Ordens       ordem.Repository
	Comentarios  comentario.Repository
	Notificacoes notificacao.Repository
}

// RepositoriosJSON abre os snapshots users/orders/comments/notifications.json em dir.
func RepositoriosJSON(dir string, logger *zap.Logger) (*Repositorios, error) {
	usuarios, err := storage.Abrir[models.Usuario](dir, "users", logger)
	if err != nil {
		return nil, err
	}
	ordens, err := storage.Abrir[models.Ordem](dir, "orders", logger)
	if err != nil {
		return nil, err
	}
	comentarios, err := storage.Abrir[models.Comentario](dir, "comments", logger)
	if err != nil {
		return nil, err
	}
	notificacoes, err := storage.Abrir[models.Notificacao](dir, "notifications", logger)
	if err != nil {
		return nil, err
	}
	return &Repositorios{
		Usuarios:     usuario.NewJSONRepository(usuarios),
		Ordens:       ordem.NewJSONRepository(ordens),
		Comentarios:  comentario.NewJSONRepository(comentarios),
		Notificacoes: notificacao.NewJSONRepository(notificacoes),
	}, nil
}

func RepositoriosGorm(db *gorm.DB) *Repositorios {
	return &Repositorios{
		Usuarios:     usuario.NewGormRepository(db),
		Ordens:       ordem.NewGormRepository(db),
		Comentarios:  comentario.NewGormRepository(db),
		Notificacoes: notificacao.NewGormRepository(db),
	}
}

// App reúne serviços e handlers já ligados entre si.
type App struct {
	Config *config.Config
	Logger *zap.Logger

	Emissor      *auth.Emissor
	Usuarios     *usuario.Service
	Ordens       *ordem.Service
	Comentarios  *comentario.Service
	Notificacoes *notificacao.Service
	Relatorios   *relatorio.Service
	Fotos        *ordem.ArmazemFotos
}

func NovaApp(cfg *config.Config, repos *Repositorios, logger *zap.Logger, publicadores ...notificacao.Publicador) (*App, error) {
	emissor, err := auth.NovoEmissor(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL)
	if err != nil {
		return nil, err
	}
	fotos, err := ordem.NovoArmazemFotos(cfg.UploadDir)
	if err != nil {
		return nil, fmt.Errorf("uploads: %w", err)
	}

	notificacoes := notificacao.NewService(repos.Notificacoes, logger, publicadores...)
	ordens := ordem.NewService(repos.Ordens, repos.Usuarios, notificacoes, fotos, logger)

	return &App{
		Config:       cfg,
		Logger:       logger,
		Emissor:      emissor,
		Usuarios:     usuario.NewService(repos.Usuarios, logger),
		Ordens:       ordens,
		Comentarios:  comentario.NewService(repos.Comentarios, ordens, repos.Usuarios, notificacoes, logger),
		Notificacoes: notificacoes,
		Relatorios:   relatorio.NewService(repos.Ordens),
		Fotos:        fotos,
	}, nil
}
