package server

import (
	"context"
	"testing"
	"time"

	"github.com/KromaEnergia/api-condominio/internal/models"
	"github.com/KromaEnergia/api-condominio/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRepositoriosJSON_ReabrePreservaCampos(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	sp := time.FixedZone("BRT", -3*60*60)
	criado := time.Date(2024, 5, 10, 9, 15, 30, 123456789, sp)
	concluido := criado.Add(26 * time.Hour)
	previsao := criado.Add(48 * time.Hour)

	repos, err := RepositoriosJSON(dir, zap.NewNop())
	require.NoError(t, err)

	hash, err := utils.HashSenha("morador123")
	require.NoError(t, err)
	usuario := models.Usuario{
		ID:          "u1",
		Nome:        "Maria Moradora",
		Email:       "morador@condo.com",
		Papel:       models.PapelMorador,
		Apartamento: utils.TextoOpcional(ptr("101A")),
		SenhaHash:   hash,
		CriadoEm:    criado,
	}
	require.NoError(t, repos.Usuarios.Criar(ctx, &usuario))

	ordem := models.Ordem{
		ID:                "o1",
		Titulo:            "Vazamento",
		Descricao:         "Pia pingando",
		Categoria:         models.CategoriaHidraulica,
		Prioridade:        models.PrioridadeAlta,
		Status:            models.StatusConcluida,
		SolicitanteID:     "u1",
		SolicitanteNome:   "Maria Moradora",
		Apartamento:       ptr("101A"),
		ResponsavelID:     ptr("f1"),
		ResponsavelNome:   ptr("Pedro Funcionário"),
		Fotos:             []string{"/uploads/a.jpg", "/uploads/b.png"},
		CriadoEm:          criado,
		AtualizadoEm:      concluido,
		ConcluidoEm:       &concluido,
		PrevisaoConclusao: &previsao,
	}
	require.NoError(t, repos.Ordens.Criar(ctx, &ordem))

	comentario := models.Comentario{
		ID: "c1", OrdemID: "o1", UsuarioID: "s1", Nome: "Síndico João", Papel: models.PapelSindico,
		Conteudo: "Cobrar do condomínio", CriadoEm: criado, Interno: true,
	}
	require.NoError(t, repos.Comentarios.Criar(ctx, &comentario))

	notificacao := models.Notificacao{
		ID: "n1", UsuarioID: "u1", Titulo: "Atualização de OS", Mensagem: "Sua OS foi concluída",
		OrdemID: ptr("o1"), Lida: true, CriadoEm: criado,
	}
	require.NoError(t, repos.Notificacoes.Criar(ctx, &notificacao))

	reabertos, err := RepositoriosJSON(dir, zap.NewNop())
	require.NoError(t, err)

	u, err := reabertos.Usuarios.BuscarPorID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, hash, u.SenhaHash)
	assert.True(t, utils.VerificarSenha(u.SenhaHash, "morador123"))
	assert.Equal(t, usuario.Email, u.Email)
	assert.Equal(t, "101A", *u.Apartamento)
	assert.Nil(t, u.Telefone)
	assert.True(t, criado.Equal(u.CriadoEm))

	o, err := reabertos.Ordens.BuscarPorID(ctx, "o1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusConcluida, o.Status)
	assert.Equal(t, ordem.Fotos, o.Fotos)
	require.NotNil(t, o.ResponsavelID)
	assert.Equal(t, "f1", *o.ResponsavelID)
	require.NotNil(t, o.ResponsavelNome)
	assert.Equal(t, "Pedro Funcionário", *o.ResponsavelNome)
	require.NotNil(t, o.ConcluidoEm)
	assert.True(t, concluido.Equal(*o.ConcluidoEm))
	require.NotNil(t, o.PrevisaoConclusao)
	assert.True(t, previsao.Equal(*o.PrevisaoConclusao))
	assert.True(t, criado.Equal(o.CriadoEm))
	assert.True(t, concluido.Equal(o.AtualizadoEm))

	cs, err := reabertos.Comentarios.ListarPorOrdem(ctx, "o1")
	require.NoError(t, err)
	require.Len(t, cs, 1)
	assert.True(t, cs[0].Interno)
	assert.Equal(t, models.PapelSindico, cs[0].Papel)
	assert.True(t, criado.Equal(cs[0].CriadoEm))

	ns, err := reabertos.Notificacoes.ListarPorUsuario(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, ns, 1)
	assert.True(t, ns[0].Lida)
	require.NotNil(t, ns[0].OrdemID)
	assert.Equal(t, "o1", *ns[0].OrdemID)
	assert.True(t, criado.Equal(ns[0].CriadoEm))
}

func ptr(s string) *string { return &s }
