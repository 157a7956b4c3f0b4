package storage

import "errors"

// Chaves do storage persistido do cliente. Lidas na inicialização,
// escritas a cada mutação relevante, limpas no logout.
const (
	KeyToken = "token"
	KeyUser  = "user"
	KeyCart  = "cart"
)

// ErrNotFound é retornado quando a chave não existe no storage.
var ErrNotFound = errors.New("storage: chave não encontrada")

// Store define o contrato do storage local do cliente (o análogo ao
// local storage do navegador). A escrita é sempre replace-all do valor da
// chave, nunca append.
type Store interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	Delete(key string) error
}
