package usuario

import (
	"context"
	"errors"

	"github.com/KromaEnergia/api-condominio/internal/models"
	"gorm.io/gorm"
)

type gormRepository struct {
	db *gorm.DB
}

func NewGormRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Criar(ctx context.Context, u *models.Usuario) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&models.Usuario{}).Where("email = ?", u.Email).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return errEmailDuplicado
		}
		err := tx.Create(u).Error
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errEmailDuplicado
		}
		return err
	})
}

func (r *gormRepository) BuscarPorID(ctx context.Context, id string) (*models.Usuario, error) {
	var u models.Usuario
	if err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		return nil, traduzir(err)
	}
	return &u, nil
}

func (r *gormRepository) BuscarPorEmail(ctx context.Context, email string) (*models.Usuario, error) {
	var u models.Usuario
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		return nil, traduzir(err)
	}
	return &u, nil
}

func (r *gormRepository) Listar(ctx context.Context, papel *models.Papel) ([]models.Usuario, error) {
	q := r.db.WithContext(ctx).Order("created_at")
	if papel != nil {
		q = q.Where("role = ?", *papel)
	}
	var usuarios []models.Usuario
	err := q.Find(&usuarios).Error
	return usuarios, err
}

func (r *gormRepository) Contar(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Usuario{}).Count(&n).Error
	return n, err
}

func traduzir(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errNaoEncontrado
	}
	return err
}
