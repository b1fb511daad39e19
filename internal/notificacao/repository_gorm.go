package notificacao

import (
	"context"

	"github.com/KromaEnergia/api-condominio/internal/models"
	"gorm.io/gorm"
)

type gormRepository struct {
	db *gorm.DB
}

func NewGormRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Criar(ctx context.Context, n *models.Notificacao) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *gormRepository) ListarPorUsuario(ctx context.Context, usuarioID string) ([]models.Notificacao, error) {
	var out []models.Notificacao
	err := r.db.WithContext(ctx).Where("user_id = ?", usuarioID).Order("created_at DESC").Find(&out).Error
	return out, err
}

func (r *gormRepository) ContarNaoLidas(ctx context.Context, usuarioID string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Notificacao{}).
		Where("user_id = ? AND read = ?", usuarioID, false).
		Count(&n).Error
	return n, err
}

func (r *gormRepository) MarcarLida(ctx context.Context, id, usuarioID string) error {
	res := r.db.WithContext(ctx).Model(&models.Notificacao{}).
		Where("id = ? AND user_id = ?", id, usuarioID).
		Update("read", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errNaoEncontrada
	}
	return nil
}

func (r *gormRepository) MarcarTodasLidas(ctx context.Context, usuarioID string) (int64, error) {
	res := r.db.WithContext(ctx).Model(&models.Notificacao{}).
		Where("user_id = ? AND read = ?", usuarioID, false).
		Update("read", true)
	return res.RowsAffected, res.Error
}
