package server

import (
	"net/http"
	"slices"
	"time"

	"github.com/KromaEnergia/api-condominio/internal/auth"
	"github.com/KromaEnergia/api-condominio/internal/comentario"
	"github.com/KromaEnergia/api-condominio/internal/models"
	"github.com/KromaEnergia/api-condominio/internal/notificacao"
	"github.com/KromaEnergia/api-condominio/internal/ordem"
	"github.com/KromaEnergia/api-condominio/internal/relatorio"
	"github.com/KromaEnergia/api-condominio/internal/usuario"
	"github.com/KromaEnergia/api-condominio/internal/utils"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

// Router monta todas as rotas /api e o diretório estático de uploads.
func (a *App) Router() http.Handler {
	authHandler := auth.NewHandler(a.Usuarios, a.Emissor, a.Logger)
	usuarioHandler := usuario.NewHandler(a.Usuarios, a.Logger)
	ordemHandler := ordem.NewHandler(a.Ordens, a.Logger, int64(a.Config.MaxUploadMB)<<20)
	comentarioHandler := comentario.NewHandler(a.Comentarios, a.Logger)
	notificacaoHandler := notificacao.NewHandler(a.Notificacoes, a.Logger)
	relatorioHandler := relatorio.NewHandler(a.Relatorios, a.Logger)
	autenticacao := auth.NovoMiddleware(a.Emissor, a.Usuarios, a.Logger)
	gestor := auth.RequirePapeis(models.PapelSindico, models.PapelAdmin)

	r := mux.NewRouter()
	r.Use(a.logRequisicoes)

	api := r.PathPrefix("/api").Subrouter()

	// Rotas públicas
	api.HandleFunc("/auth/login", authHandler.Login).Methods("POST")
	api.HandleFunc("/health", a.health).Methods("GET")

	priv := api.NewRoute().Subrouter()
	priv.Use(autenticacao.Autenticacao)

	priv.HandleFunc("/auth/me", authHandler.Me).Methods("GET")

	// Rotas de usuários
	priv.Handle("/users", gestor(http.HandlerFunc(usuarioHandler.ListarUsuarios))).Methods("GET")
	priv.Handle("/users", gestor(http.HandlerFunc(usuarioHandler.CriarUsuario))).Methods("POST")

	// Rotas de ordens
	priv.HandleFunc("/orders", ordemHandler.ListarOrdens).Methods("GET")
	priv.HandleFunc("/orders", ordemHandler.CriarOrdem).Methods("POST")
	priv.HandleFunc("/orders/{id}", ordemHandler.BuscarPorID).Methods("GET")
	priv.HandleFunc("/orders/{id}", ordemHandler.AtualizarOrdem).Methods("PUT")
	priv.HandleFunc("/orders/{id}/photos", ordemHandler.EnviarFoto).Methods("POST")

	// Rotas de comentários
	priv.HandleFunc("/orders/{id}/comments", comentarioHandler.ListarPorOrdem).Methods("GET")
	priv.HandleFunc("/orders/{id}/comments", comentarioHandler.CriarComentario).Methods("POST")

	// Rotas de notificações
	priv.HandleFunc("/notifications", notificacaoHandler.ListarNotificacoes).Methods("GET")
	priv.HandleFunc("/notifications/unread-count", notificacaoHandler.ContarNaoLidas).Methods("GET")
	priv.HandleFunc("/notifications/read-all", notificacaoHandler.MarcarTodasLidas).Methods("PUT")
	priv.HandleFunc("/notifications/{id}/read", notificacaoHandler.MarcarLida).Methods("PUT")

	// Rotas de relatórios
	priv.Handle("/reports/stats", gestor(http.HandlerFunc(relatorioHandler.Estatisticas))).Methods("GET")
	priv.Handle("/reports/orders-by-period", gestor(http.HandlerFunc(relatorioHandler.PorPeriodo))).Methods("GET")

	r.PathPrefix(ordem.PrefixoUploads).Handler(
		http.StripPrefix(ordem.PrefixoUploads, http.FileServer(http.Dir(a.Fotos.Dir()))),
	).Methods("GET")

	return a.cors().Handler(r)
}

func (a *App) cors() *cors.Cors {
	origens := a.Config.CORSOrigins
	return cors.New(cors.Options{
		AllowedOrigins:   origens,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: !slices.Contains(origens, "*"),
	})
}

func (a *App) health(w http.ResponseWriter, r *http.Request) {
	utils.ResponderJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"timestamp": time.Now(),
		"storage":   a.Config.StorageDriver,
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func (a *App) logRequisicoes(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		inicio := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		a.Logger.Info("requisição",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("duracao", time.Since(inicio)),
		)
	})
}
