package models

import "time"

// Comentario é uma mensagem registrada em uma ordem de serviço.
type Comentario struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	OrdemID   string    `gorm:"column:order_id;type:varchar(36);index" json:"order_id"`
	UsuarioID string    `gorm:"column:user_id;type:varchar(36)" json:"user_id"`
	Nome      string    `gorm:"column:user_name" json:"user_name"`
	Papel     Papel     `gorm:"column:user_role;type:varchar(20)" json:"user_role"` // papel do autor ao comentar
	Conteudo  string    `gorm:"column:content;not null" json:"content"`
	CriadoEm  time.Time `gorm:"column:created_at" json:"created_at"`

	// Interno fica oculto para moradores.
	Interno bool `gorm:"column:is_internal;default:false" json:"is_internal"`
}

func (Comentario) TableName() string { return "comentarios" }
