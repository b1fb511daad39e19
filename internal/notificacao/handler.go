package notificacao

import (
	"net/http"

	"github.com/KromaEnergia/api-condominio/internal/auth"
	"github.com/KromaEnergia/api-condominio/internal/models"
	"github.com/KromaEnergia/api-condominio/internal/utils"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type Handler struct {
	Service *Service
	Logger  *zap.Logger
}

func NewHandler(s *Service, logger *zap.Logger) *Handler {
	return &Handler{Service: s, Logger: logger}
}

// ListarNotificacoes trata GET /api/notifications
func (h *Handler) ListarNotificacoes(w http.ResponseWriter, r *http.Request) {
	ator, _ := auth.UsuarioDoContexto(r.Context())
	lista, err := h.Service.Listar(r.Context(), ator)
	if err != nil {
		utils.ResponderErro(w, h.Logger, err)
		return
	}
	if lista == nil {
		lista = []models.Notificacao{}
	}
	utils.ResponderJSON(w, http.StatusOK, lista)
}

// ContarNaoLidas trata GET /api/notifications/unread-count
func (h *Handler) ContarNaoLidas(w http.ResponseWriter, r *http.Request) {
	ator, _ := auth.UsuarioDoContexto(r.Context())
	n, err := h.Service.ContarNaoLidas(r.Context(), ator)
	if err != nil {
		utils.ResponderErro(w, h.Logger, err)
		return
	}
	utils.ResponderJSON(w, http.StatusOK, map[string]int64{"count": n})
}

// MarcarLida trata PUT /api/notifications/{id}/read
func (h *Handler) MarcarLida(w http.ResponseWriter, r *http.Request) {
	ator, _ := auth.UsuarioDoContexto(r.Context())
	if err := h.Service.MarcarLida(r.Context(), ator, mux.Vars(r)["id"]); err != nil {
		utils.ResponderErro(w, h.Logger, err)
		return
	}
	utils.ResponderJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// MarcarTodasLidas trata PUT /api/notifications/read-all
func (h *Handler) MarcarTodasLidas(w http.ResponseWriter, r *http.Request) {
	ator, _ := auth.UsuarioDoContexto(r.Context())
	n, err := h.Service.MarcarTodasLidas(r.Context(), ator)
	if err != nil {
		utils.ResponderErro(w, h.Logger, err)
		return
	}
	utils.ResponderJSON(w, http.StatusOK, map[string]any{"success": true, "updated": n})
}
