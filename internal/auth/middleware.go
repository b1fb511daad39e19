package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/KromaEnergia/api-condominio/internal/models"
	"github.com/KromaEnergia/api-condominio/internal/utils"
	"go.uber.org/zap"
)

type ctxKey string

const ctxUsuario ctxKey = "usuario"

// BuscadorUsuario carrega o usuário dono do token.
type BuscadorUsuario interface {
	BuscarPorID(ctx context.Context, id string) (*models.Usuario, error)
}

type Middleware struct {
	emissor  *Emissor
	usuarios BuscadorUsuario
	logger   *zap.Logger
}

func NovoMiddleware(emissor *Emissor, usuarios BuscadorUsuario, logger *zap.Logger) *Middleware {
	return &Middleware{emissor: emissor, usuarios: usuarios, logger: logger}
}

// Autenticacao valida o Bearer token e recarrega o usuário a cada requisição,
// de modo que mudanças de papel valem imediatamente.
func (m *Middleware) Autenticacao(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}
		h := r.Header.Get("Authorization")
		if h == "" || !strings.HasPrefix(h, "Bearer ") {
			utils.ResponderErro(w, m.logger, utils.NovoErro(utils.ErrNaoAutenticado, "Não autenticado"))
			return
		}
		claims, err := m.emissor.ValidarToken(strings.TrimPrefix(h, "Bearer "))
		if err != nil {
			utils.ResponderErro(w, m.logger, utils.NovoErro(utils.ErrNaoAutenticado, "Token inválido"))
			return
		}
		u, err := m.usuarios.BuscarPorID(r.Context(), claims.UserID)
		if errors.Is(err, utils.ErrNaoEncontrado) {
			utils.ResponderErro(w, m.logger, utils.NovoErro(utils.ErrNaoAutenticado, "Token inválido"))
			return
		}
		if err != nil {
			utils.ResponderErro(w, m.logger, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(ComUsuario(r.Context(), u)))
	})
}

// RequirePapeis bloqueia com 403 quem não tem um dos papéis informados.
func RequirePapeis(papeis ...models.Papel) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, ok := UsuarioDoContexto(r.Context())
			if !ok {
				utils.ResponderErro(w, nil, utils.NovoErro(utils.ErrNaoAutenticado, "Não autenticado"))
				return
			}
			for _, p := range papeis {
				if u.Papel == p {
					next.ServeHTTP(w, r)
					return
				}
			}
			utils.ResponderErro(w, nil, utils.NovoErro(utils.ErrAcessoNegado, "Acesso negado"))
		})
	}
}

func ComUsuario(ctx context.Context, u *models.Usuario) context.Context {
	return context.WithValue(ctx, ctxUsuario, u)
}

func UsuarioDoContexto(ctx context.Context) (*models.Usuario, bool) {
	u, ok := ctx.Value(ctxUsuario).(*models.Usuario)
	return u, ok && u != nil
}
