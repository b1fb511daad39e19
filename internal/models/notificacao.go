package models

import "time"

type Notificacao struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	UsuarioID string    `gorm:"column:user_id;type:varchar(36);index" json:"user_id"`
	Titulo    string    `gorm:"column:title" json:"title"`
	Mensagem  string    `gorm:"column:message" json:"message"`
	OrdemID   *string   `gorm:"column:order_id;type:varchar(36)" json:"order_id"`
	Lida      bool      `gorm:"column:read;default:false" json:"read"`
	CriadoEm  time.Time `gorm:"column:created_at" json:"created_at"`
}

func (Notificacao) TableName() string { return "notificacoes" }
