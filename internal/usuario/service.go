package usuario

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/KromaEnergia/api-condominio/internal/models"
	"github.com/KromaEnergia/api-condominio/internal/utils"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var errCredenciais = utils.NovoErro(utils.ErrNaoAutenticado, "Credenciais inválidas")

type Service struct {
	repo   Repository
	logger *zap.Logger
	agora  func() time.Time
}

func NewService(repo Repository, logger *zap.Logger) *Service {
	return &Service{repo: repo, logger: logger, agora: time.Now}
}

// Autenticar confere email e senha. Qualquer falha vira "Credenciais inválidas".
func (s *Service) Autenticar(ctx context.Context, email, senha string) (*models.Usuario, error) {
	u, err := s.repo.BuscarPorEmail(ctx, strings.TrimSpace(email))
	if errors.Is(err, utils.ErrNaoEncontrado) {
		return nil, errCredenciais
	}
	if err != nil {
		return nil, err
	}
	if !utils.VerificarSenha(u.SenhaHash, senha) {
		return nil, errCredenciais
	}
	return u, nil
}

func (s *Service) BuscarPorID(ctx context.Context, id string) (*models.Usuario, error) {
	return s.repo.BuscarPorID(ctx, id)
}

// Listar devolve os usuários, opcionalmente só os de um papel. Apenas gestores.
func (s *Service) Listar(ctx context.Context, ator *models.Usuario, papel *models.Papel) ([]models.Usuario, error) {
	if !ator.Papel.EhGestor() {
		return nil, utils.NovoErro(utils.ErrAcessoNegado, "Acesso negado")
	}
	if papel != nil && !papel.Valido() {
		return nil, utils.NovoErro(utils.ErrValidacao, "Papel inválido")
	}
	return s.repo.Listar(ctx, papel)
}

// Criar cadastra um usuário. Sem senha informada, gera uma temporária e a devolve.
func (s *Service) Criar(ctx context.Context, ator *models.Usuario, req CriarUsuarioRequest) (*models.Usuario, string, error) {
	if !ator.Papel.EhGestor() {
		return nil, "", utils.NovoErro(utils.ErrAcessoNegado, "Acesso negado")
	}

	req.Nome = strings.TrimSpace(req.Nome)
	req.Email = strings.TrimSpace(req.Email)
	switch {
	case req.Nome == "":
		return nil, "", utils.NovoErro(utils.ErrValidacao, "O campo 'name' é obrigatório")
	case req.Email == "" || !strings.Contains(req.Email, "@"):
		return nil, "", utils.NovoErro(utils.ErrValidacao, "Email inválido")
	case !req.Papel.Valido():
		return nil, "", utils.NovoErro(utils.ErrValidacao, "Papel inválido")
	}

	var temporaria string
	senha := req.Senha
	if senha == "" {
		var err error
		if temporaria, err = utils.GerarSenhaTemporaria(); err != nil {
			return nil, "", err
		}
		senha = temporaria
	}
	hash, err := utils.HashSenha(senha)
	if err != nil {
		return nil, "", err
	}

	u := &models.Usuario{
		ID:          uuid.NewString(),
		Nome:        req.Nome,
		Email:       req.Email,
		Papel:       req.Papel,
		Apartamento: utils.TextoOpcional(req.Apartamento),
		Telefone:    utils.TextoOpcional(req.Telefone),
		SenhaHash:   hash,
		CriadoEm:    s.agora(),
	}
	if err := s.repo.Criar(ctx, u); err != nil {
		return nil, "", err
	}

	s.logger.Info("usuário criado",
		zap.String("user_id", u.ID),
		zap.String("role", string(u.Papel)),
		zap.String("criado_por", ator.ID),
	)
	return u, temporaria, nil
}
