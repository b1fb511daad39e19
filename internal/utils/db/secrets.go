package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/KromaEnergia/api-condominio/internal/config"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
)

type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// secretGetter é a parte do cliente do Secrets Manager usada aqui.
type secretGetter interface {
	GetSecretValue(ctx context.Context, in *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

func initSecretsConfig(ctx context.Context) (*secretsmanager.Client, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("carregar configuração AWS: %w", err)
	}
	return secretsmanager.NewFromConfig(cfg), nil
}

func retrieveCredentials(ctx context.Context, cfg *config.Config) (string, string, error) {
	if cfg.DBUsername != "" && cfg.DBPassword != "" {
		return cfg.DBUsername, cfg.DBPassword, nil
	}
	if cfg.DBSecretID == "" {
		return "", "", errors.New("credenciais do banco ausentes: defina DB_USERNAME/DB_PASSWORD ou DB_SECRET_ID")
	}

	client, err := initSecretsConfig(ctx)
	if err != nil {
		return "", "", err
	}
	creds, err := buscarSegredo(ctx, client, cfg.DBSecretID)
	if err != nil {
		return "", "", err
	}
	return creds.Username, creds.Password, nil
}

func buscarSegredo(ctx context.Context, client secretGetter, secretID string) (*Credentials, error) {
	result, err := client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId:     aws.String(secretID),
		VersionStage: aws.String("AWSCURRENT"),
	})
	if err != nil {
		return nil, fmt.Errorf("buscar segredo %s: %w", secretID, err)
	}
	if result.SecretString == nil {
		return nil, fmt.Errorf("segredo %s sem SecretString", secretID)
	}

	var secret Credentials
	if err := json.Unmarshal([]byte(*result.SecretString), &secret); err != nil {
		return nil, fmt.Errorf("decodificar segredo %s: %w", secretID, err)
	}
	return &secret, nil
}
