package session

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"gostorefront/internal/domain"
	"gostorefront/internal/pkg/logger"
	"gostorefront/internal/pkg/storage"
)

// Session é o contexto de sessão explícito: o único dono do token e do
// perfil cacheado. O cliente HTTP e os stores de estado recebem a Session
// injetada em vez de ler storage global espalhado pelo código, então os
// testes podem substituir o storage sem tocar em nada global.
type Session struct {
	store storage.Store
	log   logger.Logger

	mu sync.RWMutex
}

// NewSession cria a sessão sobre o storage persistido.
func NewSession(store storage.Store, log logger.Logger) *Session {
	return &Session{store: store, log: log}
}

// Token retorna o bearer token atual, ou vazio se não há sessão.
// Tokens JWT comprovadamente expirados são tratados como ausentes: é
// melhor nem enviar do que engolir um 401 previsível. Tokens opacos
// (não-JWT) passam direto, a palavra final é sempre do backend.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	raw, err := s.store.Get(storage.KeyToken)
	if err != nil {
		return ""
	}
	token := string(raw)

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		// Não é um JWT parseável; pode ser um token opaco válido.
		return token
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return token
	}
	if exp.Before(time.Now()) {
		s.log.Debug("token persistido expirado, tratando como sessão ausente", map[string]interface{}{
			"expiredAt": exp.Time.Format(time.RFC3339),
		})
		return ""
	}
	return token
}

// Authenticated informa se existe uma sessão utilizável.
func (s *Session) Authenticated() bool {
	return s.Token() != ""
}

// SetCredentials persiste token e perfil de forma síncrona. Chamado no
// login/registro antes de qualquer outra requisição usar a sessão.
func (s *Session) SetCredentials(token string, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if token != "" {
		if err := s.store.Set(storage.KeyToken, []byte(token)); err != nil {
			return err
		}
	}
	if user != nil {
		data, err := json.Marshal(user)
		if err != nil {
			return err
		}
		if err := s.store.Set(storage.KeyUser, data); err != nil {
			return err
		}
	}
	return nil
}

// CachedUser retorna o perfil persistido da inicialização, ou nil.
func (s *Session) CachedUser() *domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	raw, err := s.store.Get(storage.KeyUser)
	if err != nil {
		return nil
	}
	var user domain.User
	if err := json.Unmarshal(raw, &user); err != nil {
		s.log.Warn("perfil cacheado ilegível, descartando", map[string]interface{}{"error": err.Error()})
		return nil
	}
	return &user
}

// Clear remove token e perfil. Deve rodar de forma síncrona antes de
// qualquer requisição pós-logout, para nenhuma chamada sair com token velho.
func (s *Session) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Delete(storage.KeyToken); err != nil {
		return err
	}
	return s.store.Delete(storage.KeyUser)
}
