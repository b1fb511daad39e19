package ordem

import (
	"time"

	"github.com/KromaEnergia/api-condominio/internal/models"
)

type CriarOrdemRequest struct {
	Titulo            string            `json:"title"`
	Descricao         string            `json:"description"`
	Categoria         models.Categoria  `json:"category"`
	Prioridade        models.Prioridade `json:"priority"`
	Apartamento       *string           `json:"apartment"`
	PrevisaoConclusao *time.Time        `json:"estimated_completion"`
}

// AtualizarOrdemRequest traz apenas os campos a alterar; ausentes ficam como estão.
type AtualizarOrdemRequest struct {
	Status            *models.Status     `json:"status"`
	ResponsavelID     *string            `json:"assigned_to"`
	Prioridade        *models.Prioridade `json:"priority"`
	Descricao         *string            `json:"description"`
	PrevisaoConclusao *time.Time         `json:"estimated_completion"`
}

type FotoResponse struct {
	URL string `json:"photo_url"`
}
