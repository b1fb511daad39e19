package ordem

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/KromaEnergia/api-condominio/internal/models"
	"github.com/KromaEnergia/api-condominio/internal/storage"
	"github.com/KromaEnergia/api-condominio/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type usuariosFake struct {
	lista []models.Usuario
}

func (f *usuariosFake) BuscarPorID(_ context.Context, id string) (*models.Usuario, error) {
	for _, u := range f.lista {
		if u.ID == id {
			return &u, nil
		}
	}
	return nil, utils.NovoErro(utils.ErrNaoEncontrado, "Usuário não encontrado")
}

func (f *usuariosFake) Listar(_ context.Context, papel *models.Papel) ([]models.Usuario, error) {
	var out []models.Usuario
	for _, u := range f.lista {
		if papel == nil || u.Papel == *papel {
			out = append(out, u)
		}
	}
	return out, nil
}

type notificacaoEnviada struct {
	usuarioID, titulo, mensagem string
	ordemID                     *string
}

type notificadorFake struct {
	mu       sync.Mutex
	enviadas []notificacaoEnviada
}

func (f *notificadorFake) Notificar(_ context.Context, usuarioID, titulo, mensagem string, ordemID *string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.enviadas = append(f.enviadas, notificacaoEnviada{usuarioID, titulo, mensagem, ordemID})
	return nil
}

func (f *notificadorFake) para(usuarioID string) []notificacaoEnviada {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []notificacaoEnviada
	for _, n := range f.enviadas {
		if n.usuarioID == usuarioID {
			out = append(out, n)
		}
	}
	return out
}

func (f *notificadorFake) limpar() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.enviadas = nil
}

var (
	apto101 = "101A"
	apto202 = "202B"
	admin   = models.Usuario{ID: "admin", Nome: "Administrador", Papel: models.PapelAdmin}
	sindico = models.Usuario{ID: "sindico", Nome: "Síndico João", Papel: models.PapelSindico}
	maria   = models.Usuario{ID: "maria", Nome: "Maria Moradora", Papel: models.PapelMorador, Apartamento: &apto101}
	jose    = models.Usuario{ID: "jose", Nome: "José Morador", Papel: models.PapelMorador, Apartamento: &apto202}
	pedro   = models.Usuario{ID: "pedro", Nome: "Pedro Funcionário", Papel: models.PapelFuncionario}
)

type ambiente struct {
	svc   *Service
	notif *notificadorFake
	dir   string
	agora time.Time
}

func (a *ambiente) avancar(d time.Duration) { a.agora = a.agora.Add(d) }

func setupService(t *testing.T) *ambiente {
	t.Helper()
	dir := t.TempDir()
	c, err := storage.Abrir[models.Ordem](dir, "orders", zap.NewNop())
	require.NoError(t, err)
	fotos, err := NovoArmazemFotos(filepath.Join(dir, "uploads"))
	require.NoError(t, err)

	a := &ambiente{notif: &notificadorFake{}, dir: dir, agora: time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)}
	usuarios := &usuariosFake{lista: []models.Usuario{admin, sindico, maria, jose, pedro}}
	a.svc = NewService(NewJSONRepository(c), usuarios, a.notif, fotos, zap.NewNop())
	a.svc.agora = func() time.Time { return a.agora }
	return a
}

func novaOrdem(titulo string, cat models.Categoria, pri models.Prioridade) CriarOrdemRequest {
	return CriarOrdemRequest{Titulo: titulo, Descricao: "descrição de " + titulo, Categoria: cat, Prioridade: pri}
}

func TestCriar_PendenteENotificaGestores(t *testing.T) {
	a := setupService(t)
	ctx := context.Background()

	o, err := a.svc.Criar(ctx, &maria, novaOrdem("Vazamento", models.CategoriaHidraulica, models.PrioridadeAlta))
	require.NoError(t, err)

	assert.Equal(t, models.StatusPendente, o.Status)
	assert.Equal(t, "maria", o.SolicitanteID)
	assert.Equal(t, "Maria Moradora", o.SolicitanteNome)
	require.NotNil(t, o.Apartamento)
	assert.Equal(t, "101A", *o.Apartamento)
	assert.NotNil(t, o.Fotos)
	assert.Nil(t, o.ConcluidoEm)

	require.Len(t, a.notif.enviadas, 2)
	for _, id := range []string{"admin", "sindico"} {
		ns := a.notif.para(id)
		require.Len(t, ns, 1)
		assert.Equal(t, "Nova Ordem de Serviço", ns[0].titulo)
		assert.Equal(t, "Maria Moradora criou uma nova OS: Vazamento", ns[0].mensagem)
		assert.Equal(t, o.ID, *ns[0].ordemID)
	}
}

func TestCriar_ApartamentoInformadoEValidacao(t *testing.T) {
	a := setupService(t)
	ctx := context.Background()

	req := novaOrdem("Lâmpada", models.CategoriaEletrica, models.PrioridadeBaixa)
	outro := "303C"
	req.Apartamento = &outro
	o, err := a.svc.Criar(ctx, &maria, req)
	require.NoError(t, err)
	assert.Equal(t, "303C", *o.Apartamento)

	o, err = a.svc.Criar(ctx, &pedro, novaOrdem("Portão", models.CategoriaSeguranca, models.PrioridadeMedia))
	require.NoError(t, err)
	assert.Nil(t, o.Apartamento)

	_, err = a.svc.Criar(ctx, &maria, novaOrdem("", models.CategoriaOutros, models.PrioridadeBaixa))
	assert.ErrorIs(t, err, utils.ErrValidacao)
	_, err = a.svc.Criar(ctx, &maria, novaOrdem("X", "pintura", models.PrioridadeBaixa))
	assert.ErrorIs(t, err, utils.ErrValidacao)
	_, err = a.svc.Criar(ctx, &maria, novaOrdem("X", models.CategoriaOutros, ""))
	assert.ErrorIs(t, err, utils.ErrValidacao)
}

func TestListar_MoradorNuncaVeOrdensAlheias(t *testing.T) {
	a := setupService(t)
	ctx := context.Background()

	_, err := a.svc.Criar(ctx, &maria, novaOrdem("Vazamento na pia", models.CategoriaHidraulica, models.PrioridadeAlta))
	require.NoError(t, err)
	a.avancar(time.Minute)
	_, err = a.svc.Criar(ctx, &jose, novaOrdem("Vazamento no teto", models.CategoriaHidraulica, models.PrioridadeAlta))
	require.NoError(t, err)
	a.avancar(time.Minute)
	_, err = a.svc.Criar(ctx, &maria, novaOrdem("Jardim", models.CategoriaJardinagem, models.PrioridadeBaixa))
	require.NoError(t, err)

	st := models.StatusPendente
	cat := models.CategoriaHidraulica
	pri := models.PrioridadeAlta
	filtros := []Filtro{
		{},
		{Status: &st},
		{Categoria: &cat},
		{Prioridade: &pri},
		{Busca: "VAZAMENTO"},
		{SolicitanteID: "jose"},
		{Status: &st, Categoria: &cat, Prioridade: &pri, Busca: "teto"},
	}
	for _, f := range filtros {
		ordens, err := a.svc.Listar(ctx, &maria, f)
		require.NoError(t, err)
		for _, o := range ordens {
			assert.Equal(t, "maria", o.SolicitanteID)
		}
	}

	todas, err := a.svc.Listar(ctx, &sindico, Filtro{})
	require.NoError(t, err)
	require.Len(t, todas, 3)
	assert.Equal(t, "Jardim", todas[0].Titulo, "mais recente primeiro")

	busca, err := a.svc.Listar(ctx, &pedro, Filtro{Busca: "vazamento"})
	require.NoError(t, err)
	assert.Len(t, busca, 2)

	invalido := models.Status("aberta")
	_, err = a.svc.Listar(ctx, &sindico, Filtro{Status: &invalido})
	assert.ErrorIs(t, err, utils.ErrValidacao)
}

func TestBuscar(t *testing.T) {
	a := setupService(t)
	ctx := context.Background()
	o, err := a.svc.Criar(ctx, &maria, novaOrdem("Vazamento", models.CategoriaHidraulica, models.PrioridadeAlta))
	require.NoError(t, err)

	_, err = a.svc.Buscar(ctx, &maria, o.ID)
	assert.NoError(t, err)
	_, err = a.svc.Buscar(ctx, &pedro, o.ID)
	assert.NoError(t, err)
	_, err = a.svc.Buscar(ctx, &jose, o.ID)
	assert.ErrorIs(t, err, utils.ErrAcessoNegado)
	_, err = a.svc.Buscar(ctx, &maria, "inexistente")
	assert.ErrorIs(t, err, utils.ErrNaoEncontrado)
	assert.EqualError(t, err, "Ordem não encontrada")
}

func ptr[T any](v T) *T { return &v }

func TestAtualizar_Permissoes(t *testing.T) {
	a := setupService(t)
	ctx := context.Background()
	o, err := a.svc.Criar(ctx, &maria, novaOrdem("Vazamento", models.CategoriaHidraulica, models.PrioridadeMedia))
	require.NoError(t, err)
	a.notif.limpar()

	_, err = a.svc.Atualizar(ctx, &maria, o.ID, AtualizarOrdemRequest{
		Status:     ptr(models.StatusCancelada),
		Prioridade: ptr(models.PrioridadeUrgente),
	})
	assert.ErrorIs(t, err, utils.ErrAcessoNegado)
	assert.EqualError(t, err, "Apenas admin/síndico pode alterar prioridade")

	_, err = a.svc.Atualizar(ctx, &pedro, o.ID, AtualizarOrdemRequest{ResponsavelID: ptr("pedro")})
	assert.EqualError(t, err, "Apenas admin/síndico pode atribuir")

	_, err = a.svc.Atualizar(ctx, &jose, o.ID, AtualizarOrdemRequest{Descricao: ptr("invadida")})
	assert.EqualError(t, err, "Acesso negado")

	// nada mudou
	atual, err := a.svc.Buscar(ctx, &sindico, o.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPendente, atual.Status)
	assert.Equal(t, models.PrioridadeMedia, atual.Prioridade)
	assert.Equal(t, o.Descricao, atual.Descricao)
	assert.Empty(t, a.notif.enviadas)

	_, err = a.svc.Atualizar(ctx, &sindico, "inexistente", AtualizarOrdemRequest{Status: ptr(models.StatusConcluida)})
	assert.ErrorIs(t, err, utils.ErrNaoEncontrado)

	_, err = a.svc.Atualizar(ctx, &sindico, o.ID, AtualizarOrdemRequest{ResponsavelID: ptr("fantasma")})
	assert.ErrorIs(t, err, utils.ErrValidacao)

	_, err = a.svc.Atualizar(ctx, &sindico, o.ID, AtualizarOrdemRequest{Status: ptr(models.Status("feita"))})
	assert.ErrorIs(t, err, utils.ErrValidacao)

	// morador pode cancelar e descrever a própria ordem
	atual, err = a.svc.Atualizar(ctx, &maria, o.ID, AtualizarOrdemRequest{Descricao: ptr("mais detalhes")})
	require.NoError(t, err)
	assert.Equal(t, "mais detalhes", atual.Descricao)
}

func TestAtualizar_ConcluidoEm(t *testing.T) {
	a := setupService(t)
	ctx := context.Background()
	o, err := a.svc.Criar(ctx, &maria, novaOrdem("Vazamento", models.CategoriaHidraulica, models.PrioridadeMedia))
	require.NoError(t, err)

	a.avancar(time.Hour)
	o, err = a.svc.Atualizar(ctx, &pedro, o.ID, AtualizarOrdemRequest{Status: ptr(models.StatusEmAndamento)})
	require.NoError(t, err)
	assert.Nil(t, o.ConcluidoEm)

	a.avancar(time.Hour)
	primeira := a.agora
	o, err = a.svc.Atualizar(ctx, &pedro, o.ID, AtualizarOrdemRequest{Status: ptr(models.StatusConcluida)})
	require.NoError(t, err)
	require.NotNil(t, o.ConcluidoEm)
	assert.True(t, primeira.Equal(*o.ConcluidoEm))

	// concluir de novo mantém o carimbo original
	a.avancar(time.Hour)
	o, err = a.svc.Atualizar(ctx, &pedro, o.ID, AtualizarOrdemRequest{Status: ptr(models.StatusConcluida)})
	require.NoError(t, err)
	assert.True(t, primeira.Equal(*o.ConcluidoEm))
	assert.True(t, a.agora.Equal(o.AtualizadoEm))

	// sair de concluída limpa o carimbo
	o, err = a.svc.Atualizar(ctx, &pedro, o.ID, AtualizarOrdemRequest{Status: ptr(models.StatusEmAndamento)})
	require.NoError(t, err)
	assert.Nil(t, o.ConcluidoEm)

	a.avancar(time.Hour)
	o, err = a.svc.Atualizar(ctx, &pedro, o.ID, AtualizarOrdemRequest{Status: ptr(models.StatusConcluida)})
	require.NoError(t, err)
	assert.True(t, a.agora.Equal(*o.ConcluidoEm))
}

func TestAtualizar_Notificacoes(t *testing.T) {
	a := setupService(t)
	ctx := context.Background()
	o, err := a.svc.Criar(ctx, &maria, novaOrdem("Vazamento", models.CategoriaHidraulica, models.PrioridadeMedia))
	require.NoError(t, err)
	a.notif.limpar()

	_, err = a.svc.Atualizar(ctx, &sindico, o.ID, AtualizarOrdemRequest{Status: ptr(models.StatusEmAndamento)})
	require.NoError(t, err)
	ns := a.notif.para("maria")
	require.Len(t, ns, 1)
	assert.Equal(t, "Atualização de OS", ns[0].titulo)
	assert.Equal(t, "Sua ordem 'Vazamento' foi atualizada para: em_andamento", ns[0].mensagem)

	// mesmo status não notifica
	a.notif.limpar()
	_, err = a.svc.Atualizar(ctx, &sindico, o.ID, AtualizarOrdemRequest{Status: ptr(models.StatusEmAndamento)})
	require.NoError(t, err)
	assert.Empty(t, a.notif.enviadas)

	_, err = a.svc.Atualizar(ctx, &sindico, o.ID, AtualizarOrdemRequest{Prioridade: ptr(models.PrioridadeUrgente)})
	require.NoError(t, err)
	ns = a.notif.para("maria")
	require.Len(t, ns, 1)
	assert.Equal(t, "Prioridade alterada", ns[0].titulo)

	a.notif.limpar()
	atual, err := a.svc.Atualizar(ctx, &admin, o.ID, AtualizarOrdemRequest{ResponsavelID: ptr("pedro")})
	require.NoError(t, err)
	assert.Equal(t, "pedro", *atual.ResponsavelID)
	assert.Equal(t, "Pedro Funcionário", *atual.ResponsavelNome)
	require.Len(t, a.notif.para("maria"), 1)
	assert.Equal(t, "OS atribuída", a.notif.para("maria")[0].titulo)
	require.Len(t, a.notif.para("pedro"), 1)
	assert.Equal(t, "OS atribuída a você", a.notif.para("pedro")[0].titulo)

	// mudança de status com atribuição gera uma só notificação ao solicitante
	a.notif.limpar()
	_, err = a.svc.Atualizar(ctx, &admin, o.ID, AtualizarOrdemRequest{
		Status:        ptr(models.StatusConcluida),
		ResponsavelID: ptr("sindico"),
		Prioridade:    ptr(models.PrioridadeBaixa),
	})
	require.NoError(t, err)
	ns = a.notif.para("maria")
	require.Len(t, ns, 1)
	assert.Equal(t, "Atualização de OS", ns[0].titulo)
	assert.Len(t, a.notif.para("sindico"), 1)
}

func TestAdicionarFoto(t *testing.T) {
	a := setupService(t)
	ctx := context.Background()
	o, err := a.svc.Criar(ctx, &maria, novaOrdem("Vazamento", models.CategoriaHidraulica, models.PrioridadeMedia))
	require.NoError(t, err)

	a.avancar(time.Minute)
	url, err := a.svc.AdicionarFoto(ctx, &maria, o.ID, "foto.JPG", strings.NewReader("conteudo"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "/uploads/"))
	assert.True(t, strings.HasSuffix(url, ".JPG"))

	data, err := os.ReadFile(filepath.Join(a.dir, "uploads", strings.TrimPrefix(url, "/uploads/")))
	require.NoError(t, err)
	assert.Equal(t, "conteudo", string(data))

	sem, err := a.svc.AdicionarFoto(ctx, &sindico, o.ID, "semextensao", strings.NewReader("x"))
	require.NoError(t, err)
	assert.NotContains(t, strings.TrimPrefix(sem, "/uploads/"), ".")

	atual, err := a.svc.Buscar(ctx, &maria, o.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{url, sem}, atual.Fotos)
	assert.True(t, a.agora.Equal(atual.AtualizadoEm))

	_, err = a.svc.AdicionarFoto(ctx, &jose, o.ID, "x.png", strings.NewReader("x"))
	assert.ErrorIs(t, err, utils.ErrAcessoNegado)
	_, err = a.svc.AdicionarFoto(ctx, &maria, "inexistente", "x.png", strings.NewReader("x"))
	assert.ErrorIs(t, err, utils.ErrNaoEncontrado)
}
