package models

import "time"

// Ordem é uma ordem de serviço (OS) aberta por um usuário.
//
// ConcluidoEm só é preenchido enquanto Status == StatusConcluida.
// SolicitanteNome e ResponsavelNome são cópias do nome no momento da escrita.
type Ordem struct {
	ID                string     `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Titulo            string     `gorm:"column:title;not null" json:"title"`
	Descricao         string     `gorm:"column:description" json:"description"`
	Categoria         Categoria  `gorm:"column:category;type:varchar(20);index" json:"category"`
	Prioridade        Prioridade `gorm:"column:priority;type:varchar(20);index" json:"priority"`
	Status            Status     `gorm:"column:status;type:varchar(20);index" json:"status"`
	SolicitanteID     string     `gorm:"column:requester_id;type:varchar(36);index" json:"requester_id"`
	SolicitanteNome   string     `gorm:"column:requester_name" json:"requester_name"`
	Apartamento       *string    `gorm:"column:apartment" json:"apartment"`
	ResponsavelID     *string    `gorm:"column:assigned_to;type:varchar(36)" json:"assigned_to"`
	ResponsavelNome   *string    `gorm:"column:assigned_name" json:"assigned_name"`
	Fotos             []string   `gorm:"column:photos;type:jsonb;serializer:json" json:"photos"`
	CriadoEm          time.Time  `gorm:"column:created_at;index" json:"created_at"`
	AtualizadoEm      time.Time  `gorm:"column:updated_at" json:"updated_at"`
	ConcluidoEm       *time.Time `gorm:"column:completed_at" json:"completed_at"`
	PrevisaoConclusao *time.Time `gorm:"column:estimated_completion" json:"estimated_completion"`
}

func (Ordem) TableName() string { return "ordens" }
