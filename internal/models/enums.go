package models

// Papel é o perfil de acesso de um usuário do condomínio.
type Papel string

const (
	PapelMorador     Papel = "morador"
	PapelSindico     Papel = "sindico"
	PapelFuncionario Papel = "funcionario"
	PapelAdmin       Papel = "admin"
)

var Papeis = []Papel{PapelMorador, PapelSindico, PapelFuncionario, PapelAdmin}

func (p Papel) Valido() bool {
	for _, v := range Papeis {
		if p == v {
			return true
		}
	}
	return false
}

// EhGestor indica síndico ou administrador.
func (p Papel) EhGestor() bool {
	return p == PapelSindico || p == PapelAdmin
}

// Status do ciclo de vida de uma ordem de serviço.
type Status string

const (
	StatusPendente    Status = "pendente"
	StatusEmAndamento Status = "em_andamento"
	StatusConcluida   Status = "concluida"
	StatusCancelada   Status = "cancelada"
)

var Statuses = []Status{StatusPendente, StatusEmAndamento, StatusConcluida, StatusCancelada}

func (s Status) Valido() bool {
	for _, v := range Statuses {
		if s == v {
			return true
		}
	}
	return false
}

type Prioridade string

const (
	PrioridadeBaixa   Prioridade = "baixa"
	PrioridadeMedia   Prioridade = "media"
	PrioridadeAlta    Prioridade = "alta"
	PrioridadeUrgente Prioridade = "urgente"
)

var Prioridades = []Prioridade{PrioridadeBaixa, PrioridadeMedia, PrioridadeAlta, PrioridadeUrgente}

func (p Prioridade) Valido() bool {
	for _, v := range Prioridades {
		if p == v {
			return true
		}
	}
	return false
}

type Categoria string

const (
	CategoriaEletrica   Categoria = "eletrica"
	CategoriaHidraulica Categoria = "hidraulica"
	CategoriaLimpeza    Categoria = "limpeza"
	CategoriaSeguranca  Categoria = "seguranca"
	CategoriaEstrutural Categoria = "estrutural"
	CategoriaJardinagem Categoria = "jardinagem"
	CategoriaOutros     Categoria = "outros"
)

var Categorias = []Categoria{
	CategoriaEletrica,
	CategoriaHidraulica,
	CategoriaLimpeza,
	CategoriaSeguranca,
	CategoriaEstrutural,
	CategoriaJardinagem,
	CategoriaOutros,
}

func (c Categoria) Valido() bool {
	for _, v := range Categorias {
		if c == v {
			return true
		}
	}
	return false
}
