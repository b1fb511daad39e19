package ordem

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/KromaEnergia/api-condominio/internal/models"
	"github.com/KromaEnergia/api-condominio/internal/storage"
	"github.com/KromaEnergia/api-condominio/internal/utils"
)

var errNaoEncontrada = utils.NovoErro(utils.ErrNaoEncontrado, "Ordem não encontrada")

// Filtro seleciona ordens. Campos vazios não restringem.
type Filtro struct {
	SolicitanteID string
	Status        *models.Status
	Categoria     *models.Categoria
	Prioridade    *models.Prioridade
	Busca         string     // substring em título ou descrição, sem diferenciar maiúsculas
	De, Ate       *time.Time // intervalo fechado sobre created_at
	Crescente     bool       // por padrão, mais recentes primeiro
}

func (f Filtro) Aceita(o models.Ordem) bool {
	if f.SolicitanteID != "" && o.SolicitanteID != f.SolicitanteID {
		return false
	}
	if f.Status != nil && o.Status != *f.Status {
		return false
	}
	if f.Categoria != nil && o.Categoria != *f.Categoria {
		return false
	}
	if f.Prioridade != nil && o.Prioridade != *f.Prioridade {
		return false
	}
	if f.De != nil && o.CriadoEm.Before(*f.De) {
		return false
	}
	if f.Ate != nil && o.CriadoEm.After(*f.Ate) {
		return false
	}
	if f.Busca != "" {
		b := strings.ToLower(f.Busca)
		if !strings.Contains(strings.ToLower(o.Titulo), b) && !strings.Contains(strings.ToLower(o.Descricao), b) {
			return false
		}
	}
	return true
}

type Repository interface {
	Criar(ctx context.Context, o *models.Ordem) error
	BuscarPorID(ctx context.Context, id string) (*models.Ordem, error)
	Listar(ctx context.Context, f Filtro) ([]models.Ordem, error)
	// Atualizar aplica fn com a ordem travada; se fn falhar nada é gravado.
	Atualizar(ctx context.Context, id string, fn func(*models.Ordem) error) (*models.Ordem, error)
}

type jsonRepository struct {
	ordens *storage.Colecao[models.Ordem]
}

func NewJSONRepository(c *storage.Colecao[models.Ordem]) Repository {
	return &jsonRepository{ordens: c}
}

func (r *jsonRepository) Criar(_ context.Context, o *models.Ordem) error {
	r.ordens.Inserir(*o)
	return nil
}

func (r *jsonRepository) BuscarPorID(_ context.Context, id string) (*models.Ordem, error) {
	o, ok := r.ordens.Buscar(func(o models.Ordem) bool { return o.ID == id })
	if !ok {
		return nil, errNaoEncontrada
	}
	return &o, nil
}

func (r *jsonRepository) Listar(_ context.Context, f Filtro) ([]models.Ordem, error) {
	return r.ordens.Ordenar(f.Aceita, func(a, b models.Ordem) bool {
		if f.Crescente {
			return a.CriadoEm.Before(b.CriadoEm)
		}
		return a.CriadoEm.After(b.CriadoEm)
	}), nil
}

func (r *jsonRepository) Atualizar(_ context.Context, id string, fn func(*models.Ordem) error) (*models.Ordem, error) {
	o, err := r.ordens.Atualizar(func(o models.Ordem) bool { return o.ID == id }, fn)
	if errors.Is(err, storage.ErrItemNaoEncontrado) {
		return nil, errNaoEncontrada
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}
