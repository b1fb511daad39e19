package notificacao

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/KromaEnergia/api-condominio/internal/models"
	"github.com/go-redis/redis/v8"
	"github.com/go-resty/resty/v2"
)

// Publicador entrega uma notificação recém-criada a um canal externo.
type Publicador interface {
	Publicar(ctx context.Context, n models.Notificacao) error
}

// RedisPublicador adiciona cada notificação a um Redis Stream.
type RedisPublicador struct {
	client *redis.Client
	stream string
}

func NovoRedisPublicador(client *redis.Client, stream string) *RedisPublicador {
	return &RedisPublicador{client: client, stream: stream}
}

func (p *RedisPublicador) Publicar(ctx context.Context, n models.Notificacao) error {
	data, err := json.Marshal(n)
	if err != nil {
		return err
	}
	return p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: p.stream,
		Values: map[string]interface{}{
			"data":      string(data),
			"user_id":   n.UsuarioID,
			"timestamp": time.Now().Unix(),
		},
	}).Err()
}

// ConectarRedis abre o cliente a partir de uma URL redis:// e testa a conexão.
func ConectarRedis(ctx context.Context, url string) (*redis.Client, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("REDIS_URL inválida: %w", err)
	}
	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("conectar ao redis: %w", err)
	}
	return client, nil
}

// WebhookPayload é o corpo enviado ao webhook de notificações.
type WebhookPayload struct {
	Evento      string             `json:"evento"`
	Notificacao models.Notificacao `json:"notificacao"`
}

// WebhookPublicador envia cada notificação por POST a uma URL configurada.
type WebhookPublicador struct {
	client *resty.Client
	url    string
}

func NovoWebhookPublicador(url string) *WebhookPublicador {
	client := resty.New().
		SetTimeout(5 * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(200 * time.Millisecond).
		SetRetryMaxWaitTime(1 * time.Second).
		SetHeader("Content-Type", "application/json")
	return &WebhookPublicador{client: client, url: url}
}

func (p *WebhookPublicador) Publicar(ctx context.Context, n models.Notificacao) error {
	resp, err := p.client.R().
		SetContext(ctx).
		SetBody(WebhookPayload{Evento: "notificacao.criada", Notificacao: n}).
		Post(p.url)
	if err != nil {
		return fmt.Errorf("enviar webhook: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("webhook respondeu %d", resp.StatusCode())
	}
	return nil
}
