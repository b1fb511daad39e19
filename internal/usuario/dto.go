package usuario

import "github.com/KromaEnergia/api-condominio/internal/models"

type CriarUsuarioRequest struct {
	Nome        string       `json:"name"`
	Email       string       `json:"email"`
	Papel       models.Papel `json:"role"`
	Apartamento *string      `json:"apartment"`
	Telefone    *string      `json:"phone"`
	Senha       string       `json:"password"`
}

// CriarUsuarioResponse inclui a senha temporária quando ela foi gerada.
type CriarUsuarioResponse struct {
	models.UsuarioResposta
	SenhaTemporaria string `json:"temporary_password,omitempty"`
}

func toRespostas(list []models.Usuario) []models.UsuarioResposta {
	out := make([]models.UsuarioResposta, 0, len(list))
	for _, u := range list {
		out = append(out, u.Resposta())
	}
	return out
}
