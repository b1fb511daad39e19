package usuario

import (
	"context"

	"github.com/KromaEnergia/api-condominio/internal/models"
	"github.com/KromaEnergia/api-condominio/internal/utils"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type usuarioInicial struct {
	nome, email, senha string
	papel              models.Papel
	apartamento        string
	telefone           string
}

var usuariosIniciais = []usuarioInicial{
	{nome: "Administrador", email: "admin@condo.com", senha: "admin123", papel: models.PapelAdmin},
	{nome: "Síndico João", email: "sindico@condo.com", senha: "sindico123", papel: models.PapelSindico, telefone: "(11) 99999-1111"},
	{nome: "Maria Moradora", email: "morador@condo.com", senha: "morador123", papel: models.PapelMorador, apartamento: "101A", telefone: "(11) 99999-2222"},
	{nome: "Pedro Funcionário", email: "funcionario@condo.com", senha: "func123", papel: models.PapelFuncionario, telefone: "(11) 99999-3333"},
}

// Semear cria as contas de demonstração quando não há nenhum usuário.
func (s *Service) Semear(ctx context.Context) error {
	n, err := s.repo.Contar(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	for _, ui := range usuariosIniciais {
		hash, err := utils.HashSenha(ui.senha)
		if err != nil {
			return err
		}
		u := &models.Usuario{
			ID:          uuid.NewString(),
			Nome:        ui.nome,
			Email:       ui.email,
			Papel:       ui.papel,
			Apartamento: utils.TextoOpcional(&ui.apartamento),
			Telefone:    utils.TextoOpcional(&ui.telefone),
			SenhaHash:   hash,
			CriadoEm:    s.agora(),
		}
		if err := s.repo.Criar(ctx, u); err != nil {
			return err
		}
	}
	s.logger.Info("usuários iniciais criados", zap.Int("total", len(usuariosIniciais)))
	return nil
}
