package models

import "time"

// Usuario é uma conta do sistema. Nunca é removida.
type Usuario struct {
	ID          string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Nome        string    `gorm:"column:name;not null" json:"name"`
	Email       string    `gorm:"column:email;uniqueIndex;not null" json:"email"`
	Papel       Papel     `gorm:"column:role;type:varchar(20);not null" json:"role"`
	Apartamento *string   `gorm:"column:apartment" json:"apartment"`
	Telefone    *string   `gorm:"column:phone" json:"phone"`
	SenhaHash   string    `gorm:"column:password_hash;not null" json:"password_hash"`
	CriadoEm    time.Time `gorm:"column:created_at" json:"created_at"`
}

func (Usuario) TableName() string { return "usuarios" }

// UsuarioResposta é a forma pública de um usuário, sem o hash da senha.
type UsuarioResposta struct {
	ID          string    `json:"id"`
	Nome        string    `json:"name"`
	Email       string    `json:"email"`
	Papel       Papel     `json:"role"`
	Apartamento *string   `json:"apartment"`
	Telefone    *string   `json:"phone"`
	CriadoEm    time.Time `json:"created_at"`
}

func (u Usuario) Resposta() UsuarioResposta {
	return UsuarioResposta{
		ID:          u.ID,
		Nome:        u.Nome,
		Email:       u.Email,
		Papel:       u.Papel,
		Apartamento: u.Apartamento,
		Telefone:    u.Telefone,
		CriadoEm:    u.CriadoEm,
	}
}
