package relatorio

import (
	"context"
	"math"
	"time"

	"github.com/KromaEnergia/api-condominio/internal/models"
	"github.com/KromaEnergia/api-condominio/internal/ordem"
	"github.com/KromaEnergia/api-condominio/internal/utils"
)

type Ordens interface {
	Listar(ctx context.Context, f ordem.Filtro) ([]models.Ordem, error)
}

type Estatisticas struct {
	Total               int                       `json:"total_orders"`
	Pendentes           int                       `json:"pending_orders"`
	EmAndamento         int                       `json:"in_progress_orders"`
	Concluidas          int                       `json:"completed_orders"`
	Canceladas          int                       `json:"cancelled_orders"`
	MediaResolucaoHoras float64                   `json:"avg_resolution_time_hours"`
	PorCategoria        map[models.Categoria]int  `json:"orders_by_category"`
	PorPrioridade       map[models.Prioridade]int `json:"orders_by_priority"`
}

type Periodo struct {
	Count  int            `json:"count"`
	Orders []models.Ordem `json:"orders"`
}

type Service struct {
	ordens Ordens
}

func NewService(ordens Ordens) *Service {
	return &Service{ordens: ordens}
}

func exigirGestor(ator *models.Usuario) error {
	if ator == nil || !ator.Papel.EhGestor() {
		return utils.NovoErro(utils.ErrAcessoNegado, "Acesso negado")
	}
	return nil
}

// Estatisticas agrega todas as ordens. Mapas trazem todas as chaves, mesmo zeradas.
func (s *Service) Estatisticas(ctx context.Context, ator *models.Usuario) (*Estatisticas, error) {
	if err := exigirGestor(ator); err != nil {
		return nil, err
	}
	ordens, err := s.ordens.Listar(ctx, ordem.Filtro{})
	if err != nil {
		return nil, err
	}

	e := &Estatisticas{
		Total:         len(ordens),
		PorCategoria:  make(map[models.Categoria]int, len(models.Categorias)),
		PorPrioridade: make(map[models.Prioridade]int, len(models.Prioridades)),
	}
	for _, c := range models.Categorias {
		e.PorCategoria[c] = 0
	}
	for _, p := range models.Prioridades {
		e.PorPrioridade[p] = 0
	}

	var horas float64
	var resolvidas int
	for _, o := range ordens {
		switch o.Status {
		case models.StatusPendente:
			e.Pendentes++
		case models.StatusEmAndamento:
			e.EmAndamento++
		case models.StatusConcluida:
			e.Concluidas++
			if o.ConcluidoEm != nil {
				horas += o.ConcluidoEm.Sub(o.CriadoEm).Hours()
				resolvidas++
			}
		case models.StatusCancelada:
			e.Canceladas++
		}
		if _, ok := e.PorCategoria[o.Categoria]; ok {
			e.PorCategoria[o.Categoria]++
		}
		if _, ok := e.PorPrioridade[o.Prioridade]; ok {
			e.PorPrioridade[o.Prioridade]++
		}
	}
	if resolvidas > 0 {
		e.MediaResolucaoHoras = math.Round(horas/float64(resolvidas)*100) / 100
	}
	return e, nil
}

// PorPeriodo lista as ordens com de <= created_at <= ate, em ordem cronológica.
func (s *Service) PorPeriodo(ctx context.Context, ator *models.Usuario, de, ate time.Time) (*Periodo, error) {
	if err := exigirGestor(ator); err != nil {
		return nil, err
	}
	if ate.Before(de) {
		return nil, utils.NovoErro(utils.ErrValidacao, "end_date anterior a start_date")
	}
	ordens, err := s.ordens.Listar(ctx, ordem.Filtro{De: &de, Ate: &ate, Crescente: true})
	if err != nil {
		return nil, err
	}
	if ordens == nil {
		ordens = []models.Ordem{}
	}
	return &Periodo{Count: len(ordens), Orders: ordens}, nil
}
