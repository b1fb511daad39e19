package db

import (
	"context"
	"fmt"

	"github.com/KromaEnergia/api-condominio/internal/config"
	"github.com/KromaEnergia/api-condominio/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DSN monta a string de conexão do PostgreSQL.
func DSN(cfg *config.Config, username, password string) string {
	var sslMode string
	if cfg.DBSSLModeDisabled {
		sslMode = " sslmode=disable"
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d%s",
		cfg.DBHost, username, password, cfg.DBName, cfg.DBPort, sslMode)
}

// ConnectDataBase abre a conexão gorm. As credenciais vêm de DB_USERNAME/DB_PASSWORD
// ou, na falta delas, do segredo DB_SECRET_ID no AWS Secrets Manager.
func ConnectDataBase(ctx context.Context, cfg *config.Config) (*gorm.DB, error) {
	username, password, err := retrieveCredentials(ctx, cfg)
	if err != nil {
		return nil, err
	}

	database, err := gorm.Open(postgres.Open(DSN(cfg, username, password)), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Error),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("conectar ao banco: %w", err)
	}
	return database, nil
}

// Migrar cria ou atualiza as tabelas do sistema.
func Migrar(database *gorm.DB) error {
	if err := database.AutoMigrate(
		&models.Usuario{},
		&models.Ordem{},
		&models.Comentario{},
		&models.Notificacao{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
