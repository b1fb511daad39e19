// Package storage mantém coleções de registros em memória persistidas como
// snapshots JSON, um arquivo por coleção.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"go.uber.org/zap"
)

var ErrItemNaoEncontrado = errors.New("item não encontrado")

// Colecao guarda os itens de um tipo e regrava o arquivo inteiro a cada mutação.
// Leituras devolvem cópias; mutações acontecem sob o lock de escrita.
type Colecao[T any] struct {
	mu      sync.RWMutex
	caminho string
	itens   []T
	logger  *zap.Logger
}

// Abrir carrega <dir>/<nome>.json. Arquivo inexistente resulta em coleção vazia.
func Abrir[T any](dir, nome string, logger *zap.Logger) (*Colecao[T], error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("criar diretório de dados: %w", err)
	}

	c := &Colecao[T]{
		caminho: filepath.Join(dir, nome+".json"),
		itens:   make([]T, 0),
		logger:  logger.With(zap.String("colecao", nome)),
	}

	data, err := os.ReadFile(c.caminho)
	if errors.Is(err, os.ErrNotExist) {
		return c, nil
	}
	if err != nil {
		return nil, fmt.Errorf("ler %s: %w", c.caminho, err)
	}
	if len(data) == 0 {
		return c, nil
	}
	if err := json.Unmarshal(data, &c.itens); err != nil {
		return nil, fmt.Errorf("decodificar %s: %w", c.caminho, err)
	}
	if c.itens == nil {
		c.itens = make([]T, 0)
	}
	return c, nil
}

func (c *Colecao[T]) Caminho() string { return c.caminho }

// Listar devolve os itens aceitos por filtro (nil aceita todos).
func (c *Colecao[T]) Listar(filtro func(T) bool) []T {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]T, 0, len(c.itens))
	for _, it := range c.itens {
		if filtro == nil || filtro(it) {
			out = append(out, it)
		}
	}
	return out
}

// Ordenar é um atalho para Listar seguido de sort.SliceStable.
func (c *Colecao[T]) Ordenar(filtro func(T) bool, menor func(a, b T) bool) []T {
	out := c.Listar(filtro)
	sort.SliceStable(out, func(i, j int) bool { return menor(out[i], out[j]) })
	return out
}

func (c *Colecao[T]) Buscar(pred func(T) bool) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, it := range c.itens {
		if pred(it) {
			return it, true
		}
	}
	var zero T
	return zero, false
}

func (c *Colecao[T]) Contar(filtro func(T) bool) int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	n := 0
	for _, it := range c.itens {
		if filtro == nil || filtro(it) {
			n++
		}
	}
	return n
}

func (c *Colecao[T]) Inserir(item T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.itens = append(c.itens, item)
	c.persistir()
}

// InserirUnico insere item somente se nenhum item existente satisfaz conflito.
func (c *Colecao[T]) InserirUnico(item T, conflito func(T) bool) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, it := range c.itens {
		if conflito(it) {
			return false
		}
	}
	c.itens = append(c.itens, item)
	c.persistir()
	return true
}

// Atualizar aplica fn a uma cópia do primeiro item que satisfaz pred.
// Se fn falhar, a coleção não muda e o erro é devolvido.
func (c *Colecao[T]) Atualizar(pred func(T) bool, fn func(*T) error) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero T
	for i, it := range c.itens {
		if !pred(it) {
			continue
		}
		copia := it
		if err := fn(&copia); err != nil {
			return zero, err
		}
		c.itens[i] = copia
		c.persistir()
		return copia, nil
	}
	return zero, ErrItemNaoEncontrado
}

// AtualizarTodos aplica fn a todos os itens aceitos e devolve quantos mudaram.
// fn informa se alterou o item.
func (c *Colecao[T]) AtualizarTodos(pred func(T) bool, fn func(*T) bool) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := 0
	for i := range c.itens {
		if pred(c.itens[i]) && fn(&c.itens[i]) {
			n++
		}
	}
	if n > 0 {
		c.persistir()
	}
	return n
}

// persistir regrava o snapshot. Chamado com c.mu travado.
// Falhas são registradas e ignoradas: o estado em memória prevalece.
func (c *Colecao[T]) persistir() {
	if err := c.gravar(); err != nil {
		c.logger.Error("falha ao salvar snapshot", zap.String("arquivo", c.caminho), zap.Error(err))
	}
}

func (c *Colecao[T]) gravar() error {
	data, err := json.MarshalIndent(c.itens, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(c.caminho), filepath.Base(c.caminho)+".*.tmp")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), c.caminho)
}
