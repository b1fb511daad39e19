package comentario

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/KromaEnergia/api-condominio/internal/models"
	"github.com/KromaEnergia/api-condominio/internal/utils"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Ordens resolve a ordem aplicando as regras de acesso do ator.
type Ordens interface {
	Buscar(ctx context.Context, ator *models.Usuario, id string) (*models.Ordem, error)
}

type Usuarios interface {
	BuscarPorID(ctx context.Context, id string) (*models.Usuario, error)
}

type Notificador interface {
	Notificar(ctx context.Context, usuarioID, titulo, mensagem string, ordemID *string) error
}

type Service struct {
	repo        Repository
	ordens      Ordens
	usuarios    Usuarios
	notificador Notificador
	logger      *zap.Logger
	agora       func() time.Time
}

func NewService(repo Repository, ordens Ordens, usuarios Usuarios, notificador Notificador, logger *zap.Logger) *Service {
	return &Service{
		repo:        repo,
		ordens:      ordens,
		usuarios:    usuarios,
		notificador: notificador,
		logger:      logger,
		agora:       time.Now,
	}
}

// Listar devolve os comentários da ordem. Moradores não recebem os internos.
func (s *Service) Listar(ctx context.Context, ator *models.Usuario, ordemID string) ([]models.Comentario, error) {
	if _, err := s.ordens.Buscar(ctx, ator, ordemID); err != nil {
		return nil, err
	}
	comentarios, err := s.repo.ListarPorOrdem(ctx, ordemID)
	if err != nil {
		return nil, err
	}
	if ator.Papel != models.PapelMorador {
		return comentarios, nil
	}

	visiveis := make([]models.Comentario, 0, len(comentarios))
	for _, c := range comentarios {
		if !c.Interno {
			visiveis = append(visiveis, c)
		}
	}
	return visiveis, nil
}

func (s *Service) Criar(ctx context.Context, ator *models.Usuario, ordemID string, req CriarComentarioRequest) (*models.Comentario, error) {
	o, err := s.ordens.Buscar(ctx, ator, ordemID)
	if err != nil {
		return nil, err
	}
	if ator.Papel == models.PapelMorador && req.Interno {
		return nil, utils.NovoErro(utils.ErrAcessoNegado, "Acesso negado")
	}
	conteudo := strings.TrimSpace(req.Conteudo)
	if conteudo == "" {
		return nil, utils.NovoErro(utils.ErrValidacao, "O campo 'content' é obrigatório")
	}

	c := &models.Comentario{
		ID:        uuid.NewString(),
		OrdemID:   o.ID,
		UsuarioID: ator.ID,
		Nome:      ator.Nome,
		Papel:     ator.Papel,
		Conteudo:  conteudo,
		CriadoEm:  s.agora(),
		Interno:   req.Interno,
	}
	if err := s.repo.Criar(ctx, c); err != nil {
		return nil, err
	}

	if s.deveNotificar(ctx, o, ator, c) {
		if err := s.notificador.Notificar(ctx, o.SolicitanteID, "Novo Comentário",
			fmt.Sprintf("%s comentou na ordem '%s'", ator.Nome, o.Titulo), &o.ID); err != nil {
			s.logger.Error("falha ao criar notificação", zap.String("order_id", o.ID), zap.Error(err))
		}
	}
	return c, nil
}

// deveNotificar: avisa o solicitante, exceto quando ele mesmo comentou
// ou quando o comentário é interno e o solicitante é morador.
func (s *Service) deveNotificar(ctx context.Context, o *models.Ordem, ator *models.Usuario, c *models.Comentario) bool {
	if o.SolicitanteID == ator.ID {
		return false
	}
	if !c.Interno {
		return true
	}
	solicitante, err := s.usuarios.BuscarPorID(ctx, o.SolicitanteID)
	if err != nil {
		return false
	}
	return solicitante.Papel != models.PapelMorador
}
