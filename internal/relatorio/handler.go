package relatorio

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/KromaEnergia/api-condominio/internal/auth"
	"github.com/KromaEnergia/api-condominio/internal/utils"
	"go.uber.org/zap"
)

const contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type Handler struct {
	Service *Service
	Logger  *zap.Logger
}

func NewHandler(s *Service, logger *zap.Logger) *Handler {
	return &Handler{Service: s, Logger: logger}
}

// Estatisticas trata GET /api/reports/stats
func (h *Handler) Estatisticas(w http.ResponseWriter, r *http.Request) {
	ator, _ := auth.UsuarioDoContexto(r.Context())
	e, err := h.Service.Estatisticas(r.Context(), ator)
	if err != nil {
		utils.ResponderErro(w, h.Logger, err)
		return
	}
	utils.ResponderJSON(w, http.StatusOK, e)
}

// PorPeriodo trata GET /api/reports/orders-by-period?start_date=&end_date=[&format=xlsx]
func (h *Handler) PorPeriodo(w http.ResponseWriter, r *http.Request) {
	ator, _ := auth.UsuarioDoContexto(r.Context())
	q := r.URL.Query()

	de, err := parseData(primeiro(q.Get("start_date"), q.Get("start")), false)
	if err != nil {
		utils.ResponderErro(w, h.Logger, utils.NovoErro(utils.ErrValidacao, "start_date inválida"))
		return
	}
	ate, err := parseData(primeiro(q.Get("end_date"), q.Get("end")), true)
	if err != nil {
		utils.ResponderErro(w, h.Logger, utils.NovoErro(utils.ErrValidacao, "end_date inválida"))
		return
	}

	p, err := h.Service.PorPeriodo(r.Context(), ator, de, ate)
	if err != nil {
		utils.ResponderErro(w, h.Logger, err)
		return
	}

	if q.Get("format") != "xlsx" {
		utils.ResponderJSON(w, http.StatusOK, p)
		return
	}
	data, err := GerarPlanilha(p.Orders)
	if err != nil {
		utils.ResponderErro(w, h.Logger, err)
		return
	}
	nome := fmt.Sprintf("ordens_%s_%s.xlsx", de.Format("20060102"), ate.Format("20060102"))
	w.Header().Set("Content-Type", contentTypeXLSX)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", nome))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func primeiro(vs ...string) string {
	for _, v := range vs {
		if v != "" {
			return v
		}
	}
	return ""
}

// parseData aceita RFC 3339, data e hora sem fuso (horário local) ou só a data.
// Só a data como fim de período cobre o dia inteiro.
// Um "+" de fuso não codificado chega da query string como espaço e é restaurado.
func parseData(v string, fimDoDia bool) (time.Time, error) {
	if v == "" {
		return time.Time{}, fmt.Errorf("data ausente")
	}
	v = strings.ReplaceAll(v, " ", "+")
	if t, err := time.Parse(time.RFC3339Nano, v); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation("2006-01-02T15:04:05", v, time.Local); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation(time.DateOnly, v, time.Local)
	if err != nil {
		return time.Time{}, err
	}
	if fimDoDia {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return t, nil
}
