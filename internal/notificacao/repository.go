package notificacao

import (
	"context"
	"errors"

	"github.com/KromaEnergia/api-condominio/internal/models"
	"github.com/KromaEnergia/api-condominio/internal/storage"
	"github.com/KromaEnergia/api-condominio/internal/utils"
)

type Repository interface {
	Criar(ctx context.Context, n *models.Notificacao) error
	ListarPorUsuario(ctx context.Context, usuarioID string) ([]models.Notificacao, error)
	ContarNaoLidas(ctx context.Context, usuarioID string) (int64, error)
	// MarcarLida falha com não encontrado se a notificação for de outro usuário.
	MarcarLida(ctx context.Context, id, usuarioID string) error
	MarcarTodasLidas(ctx context.Context, usuarioID string) (int64, error)
}

var errNaoEncontrada = utils.NovoErro(utils.ErrNaoEncontrado, "Notificação não encontrada")

type jsonRepository struct {
	notificacoes *storage.Colecao[models.Notificacao]
}

func NewJSONRepository(c *storage.Colecao[models.Notificacao]) Repository {
	return &jsonRepository{notificacoes: c}
}

func (r *jsonRepository) Criar(_ context.Context, n *models.Notificacao) error {
	r.notificacoes.Inserir(*n)
	return nil
}

func (r *jsonRepository) ListarPorUsuario(_ context.Context, usuarioID string) ([]models.Notificacao, error) {
	return r.notificacoes.Ordenar(
		func(n models.Notificacao) bool { return n.UsuarioID == usuarioID },
		func(a, b models.Notificacao) bool { return a.CriadoEm.After(b.CriadoEm) },
	), nil
}

func (r *jsonRepository) ContarNaoLidas(_ context.Context, usuarioID string) (int64, error) {
	n := r.notificacoes.Contar(func(n models.Notificacao) bool { return n.UsuarioID == usuarioID && !n.Lida })
	return int64(n), nil
}

func (r *jsonRepository) MarcarLida(_ context.Context, id, usuarioID string) error {
	_, err := r.notificacoes.Atualizar(
		func(n models.Notificacao) bool { return n.ID == id && n.UsuarioID == usuarioID },
		func(n *models.Notificacao) error {
			n.Lida = true
			return nil
		},
	)
	if errors.Is(err, storage.ErrItemNaoEncontrado) {
		return errNaoEncontrada
	}
	return err
}

func (r *jsonRepository) MarcarTodasLidas(_ context.Context, usuarioID string) (int64, error) {
	n := r.notificacoes.AtualizarTodos(
		func(n models.Notificacao) bool { return n.UsuarioID == usuarioID && !n.Lida },
		func(n *models.Notificacao) bool {
			n.Lida = true
			return true
		},
	)
	return int64(n), nil
}
