package storage

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
)

// RedisStore é a implementação do Store sobre Redis, para deploys
// renderizados no servidor onde vários processos precisam enxergar o mesmo
// storage lógico (token de sessão, carrinho de convidado).
type RedisStore struct {
	rdb    *redis.Client
	prefix string
}

// NewRedisStore cria e retorna uma nova instância do store Redis.
// Esta função é chamada no main.go quando STORAGE_BACKEND=redis.
func NewRedisStore(addr, prefix string) (*RedisStore, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr, // Endereço do Redis (e.g., "localhost:6379")
	})

	// Teste de conexão: PING para garantir que o Redis está disponível.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		return nil, err
	}

	return &RedisStore{rdb: rdb, prefix: prefix}, nil
}

func (s *RedisStore) key(key string) string {
	return s.prefix + ":" + key
}

// Get recupera o valor associado a uma chave.
func (s *RedisStore) Get(key string) ([]byte, error) {
	val, err := s.rdb.Get(context.Background(), s.key(key)).Bytes()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return val, nil
}

// Set grava o valor da chave, sem expiração (o logout limpa explicitamente).
func (s *RedisStore) Set(key string, value []byte) error {
	return s.rdb.Set(context.Background(), s.key(key), value, 0).Err()
}

// Delete remove a chave (0 chaves deletadas não é erro).
func (s *RedisStore) Delete(key string) error {
	return s.rdb.Del(context.Background(), s.key(key)).Err()
}
