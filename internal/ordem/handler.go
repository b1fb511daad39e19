package ordem

import (
	"errors"
	"net/http"

	"github.com/KromaEnergia/api-condominio/internal/auth"
	"github.com/KromaEnergia/api-condominio/internal/models"
	"github.com/KromaEnergia/api-condominio/internal/utils"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type Handler struct {
	Service        *Service
	Logger         *zap.Logger
	MaxUploadBytes int64
}

func NewHandler(s *Service, logger *zap.Logger, maxUploadBytes int64) *Handler {
	if maxUploadBytes <= 0 {
		maxUploadBytes = 32 << 20
	}
	return &Handler{Service: s, Logger: logger, MaxUploadBytes: maxUploadBytes}
}

// ListarOrdens trata GET /api/orders?status=&category=&priority=&search=
func (h *Handler) ListarOrdens(w http.ResponseWriter, r *http.Request) {
	ator, _ := auth.UsuarioDoContexto(r.Context())

	q := r.URL.Query()
	f := Filtro{Busca: q.Get("search")}
	if v := q.Get("status"); v != "" {
		st := models.Status(v)
		f.Status = &st
	}
	if v := q.Get("category"); v != "" {
		c := models.Categoria(v)
		f.Categoria = &c
	}
	if v := q.Get("priority"); v != "" {
		p := models.Prioridade(v)
		f.Prioridade = &p
	}

	ordens, err := h.Service.Listar(r.Context(), ator, f)
	if err != nil {
		utils.ResponderErro(w, h.Logger, err)
		return
	}
	if ordens == nil {
		ordens = []models.Ordem{}
	}
	utils.ResponderJSON(w, http.StatusOK, ordens)
}

// BuscarPorID trata GET /api/orders/{id}
func (h *Handler) BuscarPorID(w http.ResponseWriter, r *http.Request) {
	ator, _ := auth.UsuarioDoContexto(r.Context())
	o, err := h.Service.Buscar(r.Context(), ator, mux.Vars(r)["id"])
	if err != nil {
		utils.ResponderErro(w, h.Logger, err)
		return
	}
	utils.ResponderJSON(w, http.StatusOK, o)
}

// CriarOrdem trata POST /api/orders
func (h *Handler) CriarOrdem(w http.ResponseWriter, r *http.Request) {
	ator, _ := auth.UsuarioDoContexto(r.Context())

	var req CriarOrdemRequest
	if err := utils.DecodificarJSON(r, &req); err != nil {
		utils.ResponderErro(w, h.Logger, err)
		return
	}

	o, err := h.Service.Criar(r.Context(), ator, req)
	if err != nil {
		utils.ResponderErro(w, h.Logger, err)
		return
	}
	utils.ResponderJSON(w, http.StatusCreated, o)
}

// AtualizarOrdem trata PUT /api/orders/{id}
func (h *Handler) AtualizarOrdem(w http.ResponseWriter, r *http.Request) {
	ator, _ := auth.UsuarioDoContexto(r.Context())

	var req AtualizarOrdemRequest
	if err := utils.DecodificarJSON(r, &req); err != nil {
		utils.ResponderErro(w, h.Logger, err)
		return
	}

	o, err := h.Service.Atualizar(r.Context(), ator, mux.Vars(r)["id"], req)
	if err != nil {
		utils.ResponderErro(w, h.Logger, err)
		return
	}
	utils.ResponderJSON(w, http.StatusOK, o)
}

// EnviarFoto trata POST /api/orders/{id}/photos (multipart, campo "file")
func (h *Handler) EnviarFoto(w http.ResponseWriter, r *http.Request) {
	ator, _ := auth.UsuarioDoContexto(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, h.MaxUploadBytes)
	if err := r.ParseMultipartForm(h.MaxUploadBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			utils.ResponderErro(w, h.Logger, utils.NovoErro(utils.ErrValidacao, "Arquivo muito grande"))
			return
		}
		utils.ResponderErro(w, h.Logger, utils.NovoErro(utils.ErrValidacao, "Formulário multipart inválido"))
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		utils.ResponderErro(w, h.Logger, utils.NovoErro(utils.ErrValidacao, "O campo 'file' é obrigatório"))
		return
	}
	defer file.Close()

	url, err := h.Service.AdicionarFoto(r.Context(), ator, mux.Vars(r)["id"], header.Filename, file)
	if err != nil {
		utils.ResponderErro(w, h.Logger, err)
		return
	}
	utils.ResponderJSON(w, http.StatusOK, FotoResponse{URL: url})
}
