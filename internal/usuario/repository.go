package usuario

import (
	"context"
	"sort"

	"github.com/KromaEnergia/api-condominio/internal/models"
	"github.com/KromaEnergia/api-condominio/internal/storage"
	"github.com/KromaEnergia/api-condominio/internal/utils"
)

type Repository interface {
	Criar(ctx context.Context, u *models.Usuario) error
	BuscarPorID(ctx context.Context, id string) (*models.Usuario, error)
	BuscarPorEmail(ctx context.Context, email string) (*models.Usuario, error)
	Listar(ctx context.Context, papel *models.Papel) ([]models.Usuario, error)
	Contar(ctx context.Context) (int64, error)
}

var (
	errEmailDuplicado = utils.NovoErro(utils.ErrValidacao, "Email já cadastrado")
	errNaoEncontrado  = utils.NovoErro(utils.ErrNaoEncontrado, "Usuário não encontrado")
)

type jsonRepository struct {
	usuarios *storage.Colecao[models.Usuario]
}

// NewJSONRepository guarda usuários no snapshot users.json.
func NewJSONRepository(c *storage.Colecao[models.Usuario]) Repository {
	return &jsonRepository{usuarios: c}
}

func (r *jsonRepository) Criar(_ context.Context, u *models.Usuario) error {
	ok := r.usuarios.InserirUnico(*u, func(e models.Usuario) bool { return e.Email == u.Email })
	if !ok {
		return errEmailDuplicado
	}
	return nil
}

func (r *jsonRepository) BuscarPorID(_ context.Context, id string) (*models.Usuario, error) {
	u, ok := r.usuarios.Buscar(func(u models.Usuario) bool { return u.ID == id })
	if !ok {
		return nil, errNaoEncontrado
	}
	return &u, nil
}

func (r *jsonRepository) BuscarPorEmail(_ context.Context, email string) (*models.Usuario, error) {
	u, ok := r.usuarios.Buscar(func(u models.Usuario) bool { return u.Email == email })
	if !ok {
		return nil, errNaoEncontrado
	}
	return &u, nil
}

func (r *jsonRepository) Listar(_ context.Context, papel *models.Papel) ([]models.Usuario, error) {
	out := r.usuarios.Listar(func(u models.Usuario) bool { return papel == nil || u.Papel == *papel })
	sort.SliceStable(out, func(i, j int) bool { return out[i].CriadoEm.Before(out[j].CriadoEm) })
	return out, nil
}

func (r *jsonRepository) Contar(_ context.Context) (int64, error) {
	return int64(r.usuarios.Contar(nil)), nil
}
