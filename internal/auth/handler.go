package auth

import (
	"context"
	"net/http"

	"github.com/KromaEnergia/api-condominio/internal/models"
	"github.com/KromaEnergia/api-condominio/internal/utils"
	"go.uber.org/zap"
)

// Autenticador confere credenciais de login.
type Autenticador interface {
	Autenticar(ctx context.Context, email, senha string) (*models.Usuario, error)
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token     string                 `json:"token"`
	TokenType string                 `json:"token_type"`
	User      models.UsuarioResposta `json:"user"`
}

type Handler struct {
	Autenticador Autenticador
	Emissor      *Emissor
	Logger       *zap.Logger
}

func NewHandler(a Autenticador, e *Emissor, logger *zap.Logger) *Handler {
	return &Handler{Autenticador: a, Emissor: e, Logger: logger}
}

// Login trata POST /api/auth/login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := utils.DecodificarJSON(r, &req); err != nil {
		utils.ResponderErro(w, h.Logger, err)
		return
	}

	u, err := h.Autenticador.Autenticar(r.Context(), req.Email, req.Password)
	if err != nil {
		utils.ResponderErro(w, h.Logger, err)
		return
	}

	token, err := h.Emissor.GerarToken(u)
	if err != nil {
		utils.ResponderErro(w, h.Logger, err)
		return
	}

	utils.ResponderJSON(w, http.StatusOK, LoginResponse{Token: token, TokenType: "bearer", User: u.Resposta()})
}

// Me trata GET /api/auth/me
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	u, ok := UsuarioDoContexto(r.Context())
	if !ok {
		utils.ResponderErro(w, h.Logger, utils.NovoErro(utils.ErrNaoAutenticado, "Não autenticado"))
		return
	}
	utils.ResponderJSON(w, http.StatusOK, u.Resposta())
}
