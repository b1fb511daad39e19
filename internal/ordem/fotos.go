package ordem

import (
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"

	"github.com/google/uuid"
)

// PrefixoUploads é o caminho público sob o qual as fotos são servidas.
const PrefixoUploads = "/uploads/"

// ArmazemFotos grava fotos enviadas em um diretório local servido estaticamente.
type ArmazemFotos struct {
	dir string
}

func NovoArmazemFotos(dir string) (*ArmazemFotos, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("criar diretório de uploads: %w", err)
	}
	return &ArmazemFotos{dir: dir}, nil
}

func (a *ArmazemFotos) Dir() string { return a.dir }

// Salvar grava o conteúdo como <uuid><extensão original> e devolve a URL pública.
func (a *ArmazemFotos) Salvar(nomeOriginal string, conteudo io.Reader) (string, error) {
	nome := uuid.NewString() + filepath.Ext(filepath.Base(nomeOriginal))

	f, err := os.Create(filepath.Join(a.dir, nome))
	if err != nil {
		return "", fmt.Errorf("criar arquivo: %w", err)
	}
	if _, err := io.Copy(f, conteudo); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", fmt.Errorf("gravar arquivo: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	return path.Join(PrefixoUploads, nome), nil
}
