package comentario

import (
	"context"

	"github.com/KromaEnergia/api-condominio/internal/models"
	"github.com/KromaEnergia/api-condominio/internal/storage"
	"gorm.io/gorm"
)

type Repository interface {
	Criar(ctx context.Context, c *models.Comentario) error
	// ListarPorOrdem devolve os comentários em ordem cronológica.
	ListarPorOrdem(ctx context.Context, ordemID string) ([]models.Comentario, error)
}

type jsonRepository struct {
	comentarios *storage.Colecao[models.Comentario]
}

func NewJSONRepository(c *storage.Colecao[models.Comentario]) Repository {
	return &jsonRepository{comentarios: c}
}

func (r *jsonRepository) Criar(_ context.Context, c *models.Comentario) error {
	r.comentarios.Inserir(*c)
	return nil
}

func (r *jsonRepository) ListarPorOrdem(_ context.Context, ordemID string) ([]models.Comentario, error) {
	return r.comentarios.Ordenar(
		func(c models.Comentario) bool { return c.OrdemID == ordemID },
		func(a, b models.Comentario) bool { return a.CriadoEm.Before(b.CriadoEm) },
	), nil
}

type gormRepository struct {
	db *gorm.DB
}

func NewGormRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Criar(ctx context.Context, c *models.Comentario) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *gormRepository) ListarPorOrdem(ctx context.Context, ordemID string) ([]models.Comentario, error) {
	var comentarios []models.Comentario
	err := r.db.WithContext(ctx).Where("order_id = ?", ordemID).Order("created_at ASC").Find(&comentarios).Error
	return comentarios, err
}
