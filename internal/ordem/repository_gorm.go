package ordem

import (
	"context"
	"errors"
	"strings"

	"github.com/KromaEnergia/api-condominio/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type gormRepository struct {
	db *gorm.DB
}

func NewGormRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

var escapeLike = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func (r *gormRepository) Criar(ctx context.Context, o *models.Ordem) error {
	return r.db.WithContext(ctx).Create(o).Error
}

func (r *gormRepository) BuscarPorID(ctx context.Context, id string) (*models.Ordem, error) {
	var o models.Ordem
	if err := r.db.WithContext(ctx).First(&o, "id = ?", id).Error; err != nil {
		return nil, traduzir(err)
	}
	return &o, nil
}

func (r *gormRepository) Listar(ctx context.Context, f Filtro) ([]models.Ordem, error) {
	q := r.db.WithContext(ctx)
	if f.SolicitanteID != "" {
		q = q.Where("requester_id = ?", f.SolicitanteID)
	}
	if f.Status != nil {
		q = q.Where("status = ?", *f.Status)
	}
	if f.Categoria != nil {
		q = q.Where("category = ?", *f.Categoria)
	}
	if f.Prioridade != nil {
		q = q.Where("priority = ?", *f.Prioridade)
	}
	if f.De != nil {
		q = q.Where("created_at >= ?", *f.De)
	}
	if f.Ate != nil {
		q = q.Where("created_at <= ?", *f.Ate)
	}
	if f.Busca != "" {
		like := "%" + escapeLike.Replace(strings.ToLower(f.Busca)) + "%"
		q = q.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}
	if f.Crescente {
		q = q.Order("created_at ASC")
	} else {
		q = q.Order("created_at DESC")
	}

	var ordens []models.Ordem
	err := q.Find(&ordens).Error
	return ordens, err
}

func (r *gormRepository) Atualizar(ctx context.Context, id string, fn func(*models.Ordem) error) (*models.Ordem, error) {
	var o models.Ordem
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&o, "id = ?", id).Error; err != nil {
			return traduzir(err)
		}
		if err := fn(&o); err != nil {
			return err
		}
		return tx.Save(&o).Error
	})
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func traduzir(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errNaoEncontrada
	}
	return err
}
