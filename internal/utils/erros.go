package utils

import (
	"errors"
	"net/http"
)

// Categorias de erro de domínio. Cada uma corresponde a um status HTTP.
var (
	ErrNaoAutenticado = errors.New("não autenticado")
	ErrAcessoNegado   = errors.New("acesso negado")
	ErrNaoEncontrado  = errors.New("não encontrado")
	ErrValidacao      = errors.New("dados inválidos")
)

// Erro associa uma categoria a uma mensagem destinada ao cliente.
type Erro struct {
	Tipo     error
	Mensagem string
}

func (e *Erro) Error() string { return e.Mensagem }

func (e *Erro) Unwrap() error { return e.Tipo }

// NovoErro cria um erro de domínio; use errors.Is(err, ErrX) para testar a categoria.
func NovoErro(tipo error, mensagem string) error {
	return &Erro{Tipo: tipo, Mensagem: mensagem}
}

// StatusDoErro traduz um erro para status HTTP e mensagem pública.
// Erros fora da taxonomia viram 500 com mensagem genérica.
func StatusDoErro(err error) (int, string) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, ErrNaoAutenticado):
		status = http.StatusUnauthorized
	case errors.Is(err, ErrAcessoNegado):
		status = http.StatusForbidden
	case errors.Is(err, ErrNaoEncontrado):
		status = http.StatusNotFound
	case errors.Is(err, ErrValidacao):
		status = http.StatusBadRequest
	default:
		return status, "Erro interno"
	}

	var e *Erro
	if errors.As(err, &e) {
		return status, e.Mensagem
	}
	return status, err.Error()
}
