package comentario

import (
	"net/http"

	"github.com/KromaEnergia/api-condominio/internal/auth"
	"github.com/KromaEnergia/api-condominio/internal/models"
	"github.com/KromaEnergia/api-condominio/internal/utils"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// Handler encapsula o serviço de comentários
type Handler struct {
	Service *Service
	Logger  *zap.Logger
}

// NewHandler cria um novo handler de comentários
func NewHandler(s *Service, logger *zap.Logger) *Handler {
	return &Handler{Service: s, Logger: logger}
}

// CriarComentario trata POST /api/orders/{id}/comments
func (h *Handler) CriarComentario(w http.ResponseWriter, r *http.Request) {
	ator, _ := auth.UsuarioDoContexto(r.Context())

	var req CriarComentarioRequest
	if err := utils.DecodificarJSON(r, &req); err != nil {
		utils.ResponderErro(w, h.Logger, err)
		return
	}

	c, err := h.Service.Criar(r.Context(), ator, mux.Vars(r)["id"], req)
	if err != nil {
		utils.ResponderErro(w, h.Logger, err)
		return
	}
	utils.ResponderJSON(w, http.StatusCreated, c)
}

// ListarPorOrdem trata GET /api/orders/{id}/comments
func (h *Handler) ListarPorOrdem(w http.ResponseWriter, r *http.Request) {
	ator, _ := auth.UsuarioDoContexto(r.Context())

	comentarios, err := h.Service.Listar(r.Context(), ator, mux.Vars(r)["id"])
	if err != nil {
		utils.ResponderErro(w, h.Logger, err)
		return
	}
	if comentarios == nil {
		comentarios = []models.Comentario{}
	}
	utils.ResponderJSON(w, http.StatusOK, comentarios)
}
