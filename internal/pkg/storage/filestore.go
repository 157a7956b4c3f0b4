package storage

import (
	"fmt"
	"os"
	"path/filepath"
)

// FileStore persiste cada chave como um arquivo JSON dentro de um diretório.
// A escrita é atômica (arquivo temporário + rename), então um escritor
// concorrente pode sobrescrever mas nunca corromper. Assume um único
// processo escritor por vez; escritores concorrentes seguem a política
// last-writer-wins.
type FileStore struct {
	dir string
}

// NewFileStore cria o diretório do storage (se preciso) e retorna o store.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("falha ao criar diretório do storage: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

// Get recupera o valor associado a uma chave.
func (s *FileStore) Get(key string) ([]byte, error) {
	data, err := os.ReadFile(s.path(key))
	if os.IsNotExist(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

// Set grava o valor inteiro da chave de forma atômica.
func (s *FileStore) Set(key string, value []byte) error {
	tmp, err := os.CreateTemp(s.dir, key+"-*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), s.path(key))
}

// Delete remove a chave. Remover chave inexistente não é erro.
func (s *FileStore) Delete(key string) error {
	err := os.Remove(s.path(key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
