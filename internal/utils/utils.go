package utils

import (
	"crypto/rand"
	"math/big"
	"strings"
)

const caracteresSenha = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GerarSenhaTemporaria gera uma senha aleatória de 12 caracteres.
// Usada quando um gestor cadastra um usuário sem informar senha.
func GerarSenhaTemporaria() (string, error) {
	const tamanho = 12
	result := make([]byte, tamanho)
	for i := 0; i < tamanho; i++ {
		num, err := rand.Int(rand.Reader, big.NewInt(int64(len(caracteresSenha))))
		if err != nil {
			return "", err
		}
		result[i] = caracteresSenha[num.Int64()]
	}
	return string(result), nil
}

// TextoOpcional devolve nil para strings vazias ou só com espaços.
func TextoOpcional(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
