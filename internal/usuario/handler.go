package usuario

import (
	"net/http"

	"github.com/KromaEnergia/api-condominio/internal/auth"
	"github.com/KromaEnergia/api-condominio/internal/models"
	"github.com/KromaEnergia/api-condominio/internal/utils"
	"go.uber.org/zap"
)

type Handler struct {
	Service *Service
	Logger  *zap.Logger
}

func NewHandler(s *Service, logger *zap.Logger) *Handler {
	return &Handler{Service: s, Logger: logger}
}

// ListarUsuarios trata GET /api/users?role=
func (h *Handler) ListarUsuarios(w http.ResponseWriter, r *http.Request) {
	ator, _ := auth.UsuarioDoContexto(r.Context())

	var papel *models.Papel
	if v := r.URL.Query().Get("role"); v != "" {
		p := models.Papel(v)
		papel = &p
	}

	usuarios, err := h.Service.Listar(r.Context(), ator, papel)
	if err != nil {
		utils.ResponderErro(w, h.Logger, err)
		return
	}
	utils.ResponderJSON(w, http.StatusOK, toRespostas(usuarios))
}

// CriarUsuario trata POST /api/users
func (h *Handler) CriarUsuario(w http.ResponseWriter, r *http.Request) {
	ator, _ := auth.UsuarioDoContexto(r.Context())

	var req CriarUsuarioRequest
	if err := utils.DecodificarJSON(r, &req); err != nil {
		utils.ResponderErro(w, h.Logger, err)
		return
	}

	u, temporaria, err := h.Service.Criar(r.Context(), ator, req)
	if err != nil {
		utils.ResponderErro(w, h.Logger, err)
		return
	}
	utils.ResponderJSON(w, http.StatusCreated, CriarUsuarioResponse{
		UsuarioResposta: u.Resposta(),
		SenhaTemporaria: temporaria,
	})
}
