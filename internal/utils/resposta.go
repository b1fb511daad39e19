package utils

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// ResponderJSON escreve v como JSON com o status informado.
func ResponderJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// ResponderErro escreve {"detail": "..."} e registra no log os erros internos.
func ResponderErro(w http.ResponseWriter, logger *zap.Logger, err error) {
	status, msg := StatusDoErro(err)
	if status == http.StatusInternalServerError && logger != nil {
		logger.Error("erro interno", zap.Error(err))
	}
	ResponderJSON(w, status, map[string]string{"detail": msg})
}

// DecodificarJSON lê o corpo da requisição em v.
func DecodificarJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return NovoErro(ErrValidacao, "JSON inválido")
	}
	return nil
}
