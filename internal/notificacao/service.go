package notificacao

import (
	"context"
	"time"

	"github.com/KromaEnergia/api-condominio/internal/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const timeoutPublicacao = 3 * time.Second

type Service struct {
	repo         Repository
	publicadores []Publicador
	logger       *zap.Logger
	agora        func() time.Time
}

func NewService(repo Repository, logger *zap.Logger, publicadores ...Publicador) *Service {
	return &Service{repo: repo, publicadores: publicadores, logger: logger, agora: time.Now}
}

// Notificar grava uma notificação para usuarioID e a repassa aos publicadores.
// Falhas de publicação só são registradas em log.
func (s *Service) Notificar(ctx context.Context, usuarioID, titulo, mensagem string, ordemID *string) error {
	n := models.Notificacao{
		ID:        uuid.NewString(),
		UsuarioID: usuarioID,
		Titulo:    titulo,
		Mensagem:  mensagem,
		OrdemID:   ordemID,
		CriadoEm:  s.agora(),
	}
	if err := s.repo.Criar(ctx, &n); err != nil {
		return err
	}

	if len(s.publicadores) == 0 {
		return nil
	}
	pctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeoutPublicacao)
	defer cancel()
	for _, p := range s.publicadores {
		if err := p.Publicar(pctx, n); err != nil {
			s.logger.Warn("falha ao publicar notificação",
				zap.String("notification_id", n.ID),
				zap.String("user_id", usuarioID),
				zap.Error(err),
			)
		}
	}
	return nil
}

func (s *Service) Listar(ctx context.Context, ator *models.Usuario) ([]models.Notificacao, error) {
	return s.repo.ListarPorUsuario(ctx, ator.ID)
}

func (s *Service) ContarNaoLidas(ctx context.Context, ator *models.Usuario) (int64, error) {
	return s.repo.ContarNaoLidas(ctx, ator.ID)
}

func (s *Service) MarcarLida(ctx context.Context, ator *models.Usuario, id string) error {
	return s.repo.MarcarLida(ctx, id, ator.ID)
}

func (s *Service) MarcarTodasLidas(ctx context.Context, ator *models.Usuario) (int64, error) {
	return s.repo.MarcarTodasLidas(ctx, ator.ID)
}
