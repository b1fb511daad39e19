package notificacao

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/KromaEnergia/api-condominio/internal/models"
	"github.com/KromaEnergia/api-condominio/internal/storage"
	"github.com/KromaEnergia/api-condominio/internal/utils"
	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupService(t *testing.T, publicadores ...Publicador) *Service {
	t.Helper()
	c, err := storage.Abrir[models.Notificacao](t.TempDir(), "notifications", zap.NewNop())
	require.NoError(t, err)
	s := NewService(NewJSONRepository(c), zap.NewNop(), publicadores...)

	base := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	passo := 0
	s.agora = func() time.Time {
		passo++
		return base.Add(time.Duration(passo) * time.Minute)
	}
	return s
}

func TestService_FluxoLeitura(t *testing.T) {
	s := setupService(t)
	ctx := context.Background()
	maria := &models.Usuario{ID: "maria"}
	joao := &models.Usuario{ID: "joao"}
	ordem := "os-1"

	require.NoError(t, s.Notificar(ctx, "maria", "Primeira", "m1", &ordem))
	require.NoError(t, s.Notificar(ctx, "maria", "Segunda", "m2", nil))
	require.NoError(t, s.Notificar(ctx, "joao", "Outra", "j1", nil))

	lista, err := s.Listar(ctx, maria)
	require.NoError(t, err)
	require.Len(t, lista, 2)
	assert.Equal(t, "Segunda", lista[0].Titulo, "mais recente primeiro")
	assert.Equal(t, "os-1", *lista[1].OrdemID)

	n, err := s.ContarNaoLidas(ctx, maria)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	// notificação de outro usuário é tratada como inexistente
	doJoao, _ := s.Listar(ctx, joao)
	err = s.MarcarLida(ctx, maria, doJoao[0].ID)
	assert.ErrorIs(t, err, utils.ErrNaoEncontrado)
	assert.EqualError(t, err, "Notificação não encontrada")

	require.NoError(t, s.MarcarLida(ctx, maria, lista[0].ID))
	n, _ = s.ContarNaoLidas(ctx, maria)
	assert.EqualValues(t, 1, n)

	atualizadas, err := s.MarcarTodasLidas(ctx, maria)
	require.NoError(t, err)
	assert.EqualValues(t, 1, atualizadas)
	n, _ = s.ContarNaoLidas(ctx, maria)
	assert.Zero(t, n)

	n, _ = s.ContarNaoLidas(ctx, joao)
	assert.EqualValues(t, 1, n)
}

type publicadorFalho struct{ chamadas int }

func (p *publicadorFalho) Publicar(context.Context, models.Notificacao) error {
	p.chamadas++
	return errors.New("fora do ar")
}

func TestService_FalhaDePublicacaoNaoPropaga(t *testing.T) {
	p := &publicadorFalho{}
	s := setupService(t, p)

	require.NoError(t, s.Notificar(context.Background(), "maria", "t", "m", nil))
	assert.Equal(t, 1, p.chamadas)

	n, _ := s.ContarNaoLidas(context.Background(), &models.Usuario{ID: "maria"})
	assert.EqualValues(t, 1, n)
}

func TestRedisPublicador(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	s := setupService(t, NovoRedisPublicador(client, "condoos:notificacoes"))
	ordem := "os-9"
	require.NoError(t, s.Notificar(context.Background(), "maria", "Atualização de OS", "texto", &ordem))

	msgs, err := client.XRange(context.Background(), "condoos:notificacoes", "-", "+").Result()
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, "maria", msgs[0].Values["user_id"])

	var n models.Notificacao
	require.NoError(t, json.Unmarshal([]byte(msgs[0].Values["data"].(string)), &n))
	assert.Equal(t, "Atualização de OS", n.Titulo)
	assert.Equal(t, "os-9", *n.OrdemID)
	assert.False(t, n.Lida)
}

func TestConectarRedis(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := ConectarRedis(context.Background(), "redis://"+mr.Addr())
	require.NoError(t, err)
	client.Close()

	_, err = ConectarRedis(context.Background(), "://invalida")
	assert.Error(t, err)
}

func TestWebhookPublicador(t *testing.T) {
	recebido := make(chan WebhookPayload, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var p WebhookPayload
		json.NewDecoder(r.Body).Decode(&p)
		recebido <- p
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	s := setupService(t, NovoWebhookPublicador(srv.URL))
	require.NoError(t, s.Notificar(context.Background(), "joao", "Nova Ordem de Serviço", "Maria criou uma nova OS: Vazamento", nil))

	select {
	case p := <-recebido:
		assert.Equal(t, "notificacao.criada", p.Evento)
		assert.Equal(t, "joao", p.Notificacao.UsuarioID)
		assert.Equal(t, "Nova Ordem de Serviço", p.Notificacao.Titulo)
	case <-time.After(2 * time.Second):
		t.Fatal("webhook não recebeu a notificação")
	}
}

func TestWebhookPublicador_ErroHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	err := NovoWebhookPublicador(srv.URL).Publicar(context.Background(), models.Notificacao{ID: "n"})
	assert.Error(t, err)
}
