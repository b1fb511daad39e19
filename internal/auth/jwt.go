package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/KromaEnergia/api-condominio/internal/models"
	"github.com/golang-jwt/jwt/v5"
)

type Claims struct {
	UserID string       `json:"user_id"`
	Papel  models.Papel `json:"role"`
	jwt.RegisteredClaims
}

// Emissor assina e valida tokens HS256.
type Emissor struct {
	segredo []byte
	issuer  string
	ttl     time.Duration
	agora   func() time.Time
}

func NovoEmissor(segredo, issuer string, ttl time.Duration) (*Emissor, error) {
	if segredo == "" {
		return nil, errors.New("JWT_SECRET não definida")
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Emissor{segredo: []byte(segredo), issuer: issuer, ttl: ttl, agora: time.Now}, nil
}

// GerarToken gera um JWT para o usuário com validade ttl.
func (e *Emissor) GerarToken(u *models.Usuario) (string, error) {
	now := e.agora()
	claims := &Claims{
		UserID: u.ID,
		Papel:  u.Papel,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    e.issuer,
			Subject:   u.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(e.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(e.segredo)
}

// ValidarToken valida assinatura, issuer e expiração e retorna as claims.
func (e *Emissor) ValidarToken(tokenStr string) (*Claims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(e.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(e.agora),
	)
	token, err := parser.ParseWithClaims(tokenStr, &Claims{}, func(*jwt.Token) (interface{}, error) {
		return e.segredo, nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("token inválido ou expirado: %w", err)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || claims.UserID == "" {
		return nil, errors.New("não foi possível extrair claims")
	}
	return claims, nil
}
