package ordem

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/KromaEnergia/api-condominio/internal/models"
	"github.com/KromaEnergia/api-condominio/internal/utils"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Usuarios é o acesso a usuários de que as ordens precisam.
type Usuarios interface {
	BuscarPorID(ctx context.Context, id string) (*models.Usuario, error)
	Listar(ctx context.Context, papel *models.Papel) ([]models.Usuario, error)
}

type Notificador interface {
	Notificar(ctx context.Context, usuarioID, titulo, mensagem string, ordemID *string) error
}

var errAcessoNegado = utils.NovoErro(utils.ErrAcessoNegado, "Acesso negado")

type Service struct {
	repo        Repository
	usuarios    Usuarios
	notificador Notificador
	fotos       *ArmazemFotos
	logger      *zap.Logger
	agora       func() time.Time
}

func NewService(repo Repository, usuarios Usuarios, notificador Notificador, fotos *ArmazemFotos, logger *zap.Logger) *Service {
	return &Service{
		repo:        repo,
		usuarios:    usuarios,
		notificador: notificador,
		fotos:       fotos,
		logger:      logger,
		agora:       time.Now,
	}
}

// podeVer: morador só enxerga as próprias ordens.
func podeVer(ator *models.Usuario, o *models.Ordem) bool {
	return ator.Papel != models.PapelMorador || o.SolicitanteID == ator.ID
}

// Listar aplica o filtro; para moradores, restringe antes às ordens do próprio usuário.
func (s *Service) Listar(ctx context.Context, ator *models.Usuario, f Filtro) ([]models.Ordem, error) {
	if f.Status != nil && !f.Status.Valido() {
		return nil, utils.NovoErro(utils.ErrValidacao, "Status inválido")
	}
	if f.Categoria != nil && !f.Categoria.Valido() {
		return nil, utils.NovoErro(utils.ErrValidacao, "Categoria inválida")
	}
	if f.Prioridade != nil && !f.Prioridade.Valido() {
		return nil, utils.NovoErro(utils.ErrValidacao, "Prioridade inválida")
	}
	if ator.Papel == models.PapelMorador {
		f.SolicitanteID = ator.ID
	}
	return s.repo.Listar(ctx, f)
}

func (s *Service) Buscar(ctx context.Context, ator *models.Usuario, id string) (*models.Ordem, error) {
	o, err := s.repo.BuscarPorID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !podeVer(ator, o) {
		return nil, errAcessoNegado
	}
	return o, nil
}

func (s *Service) Criar(ctx context.Context, ator *models.Usuario, req CriarOrdemRequest) (*models.Ordem, error) {
	req.Titulo = strings.TrimSpace(req.Titulo)
	req.Descricao = strings.TrimSpace(req.Descricao)
	switch {
	case req.Titulo == "":
		return nil, utils.NovoErro(utils.ErrValidacao, "O campo 'title' é obrigatório")
	case req.Descricao == "":
		return nil, utils.NovoErro(utils.ErrValidacao, "O campo 'description' é obrigatório")
	case !req.Categoria.Valido():
		return nil, utils.NovoErro(utils.ErrValidacao, "Categoria inválida")
	case !req.Prioridade.Valido():
		return nil, utils.NovoErro(utils.ErrValidacao, "Prioridade inválida")
	}

	apartamento := utils.TextoOpcional(req.Apartamento)
	if apartamento == nil {
		apartamento = ator.Apartamento
	}

	now := s.agora()
	o := &models.Ordem{
		ID:                uuid.NewString(),
		Titulo:            req.Titulo,
		Descricao:         req.Descricao,
		Categoria:         req.Categoria,
		Prioridade:        req.Prioridade,
		Status:            models.StatusPendente,
		SolicitanteID:     ator.ID,
		SolicitanteNome:   ator.Nome,
		Apartamento:       apartamento,
		Fotos:             []string{},
		CriadoEm:          now,
		AtualizadoEm:      now,
		PrevisaoConclusao: req.PrevisaoConclusao,
	}
	if err := s.repo.Criar(ctx, o); err != nil {
		return nil, err
	}
	s.logger.Info("ordem criada", zap.String("order_id", o.ID), zap.String("requester_id", ator.ID))

	usuarios, err := s.usuarios.Listar(ctx, nil)
	if err != nil {
		s.logger.Error("falha ao listar gestores para notificação", zap.String("order_id", o.ID), zap.Error(err))
		return o, nil
	}
	for _, u := range usuarios {
		if u.Papel.EhGestor() {
			s.notificar(ctx, u.ID, "Nova Ordem de Serviço",
				fmt.Sprintf("%s criou uma nova OS: %s", ator.Nome, o.Titulo), o.ID)
		}
	}
	return o, nil
}

// Atualizar aplica o patch. Todas as verificações de permissão acontecem antes
// de qualquer alteração, então uma requisição negada não muda nada.
func (s *Service) Atualizar(ctx context.Context, ator *models.Usuario, id string, req AtualizarOrdemRequest) (*models.Ordem, error) {
	if req.Status != nil && !req.Status.Valido() {
		return nil, utils.NovoErro(utils.ErrValidacao, "Status inválido")
	}
	if req.Prioridade != nil && !req.Prioridade.Valido() {
		return nil, utils.NovoErro(utils.ErrValidacao, "Prioridade inválida")
	}
	responsavelID := utils.TextoOpcional(req.ResponsavelID)
	descricao := utils.TextoOpcional(req.Descricao)

	var (
		statusMudou, prioridadeMudou, responsavelMudou bool
		responsavel                                    *models.Usuario
	)
	o, err := s.repo.Atualizar(ctx, id, func(o *models.Ordem) error {
		if !podeVer(ator, o) {
			return errAcessoNegado
		}
		if responsavelID != nil && !ator.Papel.EhGestor() {
			return utils.NovoErro(utils.ErrAcessoNegado, "Apenas admin/síndico pode atribuir")
		}
		if req.Prioridade != nil && !ator.Papel.EhGestor() {
			return utils.NovoErro(utils.ErrAcessoNegado, "Apenas admin/síndico pode alterar prioridade")
		}
		if responsavelID != nil {
			u, err := s.usuarios.BuscarPorID(ctx, *responsavelID)
			if errors.Is(err, utils.ErrNaoEncontrado) {
				return utils.NovoErro(utils.ErrValidacao, "Responsável não encontrado")
			}
			if err != nil {
				return err
			}
			responsavel = u
		}

		now := s.agora()
		if req.Status != nil {
			statusMudou = o.Status != *req.Status
			switch {
			case *req.Status != models.StatusConcluida:
				o.ConcluidoEm = nil
			case o.Status != models.StatusConcluida || o.ConcluidoEm == nil:
				o.ConcluidoEm = &now
			}
			o.Status = *req.Status
		}
		if responsavel != nil {
			responsavelMudou = o.ResponsavelID == nil || *o.ResponsavelID != responsavel.ID
			o.ResponsavelID = &responsavel.ID
			o.ResponsavelNome = &responsavel.Nome
		}
		if req.Prioridade != nil {
			prioridadeMudou = o.Prioridade != *req.Prioridade
			o.Prioridade = *req.Prioridade
		}
		if descricao != nil {
			o.Descricao = *descricao
		}
		if req.PrevisaoConclusao != nil {
			o.PrevisaoConclusao = req.PrevisaoConclusao
		}
		o.AtualizadoEm = now
		return nil
	})
	if err != nil {
		return nil, err
	}

	switch {
	case statusMudou:
		s.notificar(ctx, o.SolicitanteID, "Atualização de OS",
			fmt.Sprintf("Sua ordem '%s' foi atualizada para: %s", o.Titulo, o.Status), o.ID)
	case prioridadeMudou:
		s.notificar(ctx, o.SolicitanteID, "Prioridade alterada",
			fmt.Sprintf("A prioridade da sua ordem '%s' foi alterada para: %s", o.Titulo, o.Prioridade), o.ID)
	case responsavelMudou:
		s.notificar(ctx, o.SolicitanteID, "OS atribuída",
			fmt.Sprintf("Sua ordem '%s' foi atribuída a %s", o.Titulo, responsavel.Nome), o.ID)
	}
	if responsavelMudou && responsavel.ID != o.SolicitanteID {
		s.notificar(ctx, responsavel.ID, "OS atribuída a você",
			fmt.Sprintf("Você foi designado para a ordem '%s'", o.Titulo), o.ID)
	}
	return o, nil
}

// AdicionarFoto grava o arquivo e anexa a URL à ordem.
func (s *Service) AdicionarFoto(ctx context.Context, ator *models.Usuario, id, nomeArquivo string, conteudo io.Reader) (string, error) {
	if _, err := s.Buscar(ctx, ator, id); err != nil {
		return "", err
	}

	url, err := s.fotos.Salvar(nomeArquivo, conteudo)
	if err != nil {
		return "", err
	}

	_, err = s.repo.Atualizar(ctx, id, func(o *models.Ordem) error {
		o.Fotos = append(slices.Clone(o.Fotos), url)
		o.AtualizadoEm = s.agora()
		return nil
	})
	if err != nil {
		return "", err
	}
	return url, nil
}

func (s *Service) notificar(ctx context.Context, usuarioID, titulo, mensagem, ordemID string) {
	if err := s.notificador.Notificar(ctx, usuarioID, titulo, mensagem, &ordemID); err != nil {
		s.logger.Error("falha ao criar notificação",
			zap.String("user_id", usuarioID),
			zap.String("order_id", ordemID),
			zap.Error(err),
		)
	}
}
