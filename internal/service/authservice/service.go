package authservice

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"gostorefront/internal/adapter"
	"gostorefront/internal/domain"
	apperror "gostorefront/internal/errors"
	"gostorefront/internal/pkg/logger"
	"gostorefront/internal/pkg/session"
)

// APIClient define o contrato que este serviço espera do cliente HTTP.
type APIClient interface {
	Request(ctx context.Context, method, path string, body interface{}) (json.RawMessage, error)
}

// Service cuida de autenticação: login, registro, checagem de perfil e
// logout, mantendo a Session como única dona das credenciais.
type Service struct {
	api     APIClient
	session *session.Session
	log     logger.Logger
}

// NewService cria e retorna uma nova instância do serviço de autenticação.
func NewService(api APIClient, sess *session.Session, log logger.Logger) *Service {
	return &Service{api: api, session: sess, log: log}
}

// authResponse é o envelope das respostas de login/registro.
type authResponse struct {
	Success bool            `json:"success"`
	Token   string          `json:"token"`
	User    json.RawMessage `json:"user"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

// Login autentica o usuário e persiste as credenciais de forma síncrona
// antes de retornar (o token em storage é o fallback para hosts que
// descartam o cookie).
func (s *Service) Login(ctx context.Context, email, password string) (*domain.User, error) {
	if email == "" || password == "" {
		return nil, apperror.NewValidationError("email e senha são obrigatórios")
	}
	raw, err := s.api.Request(ctx, http.MethodPost, "/auth/login",
		map[string]string{"email": email, "password": password})
	if err != nil {
		return nil, err
	}
	return s.establishSession(raw, "credenciais inválidas")
}

// Register cria a conta e já estabelece a sessão.
func (s *Service) Register(ctx context.Context, name, email, password string) (*domain.User, error) {
	if name == "" || email == "" || password == "" {
		return nil, apperror.NewValidationError("nome, email e senha são obrigatórios")
	}
	raw, err := s.api.Request(ctx, http.MethodPost, "/auth/register",
		map[string]string{"name": name, "email": email, "password": password})
	if err != nil {
		return nil, err
	}
	return s.establishSession(raw, "erro no registro")
}

func (s *Service) establishSession(raw json.RawMessage, failureMsg string) (*domain.User, error) {
	var resp authResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, apperror.NewShapeError("resposta de autenticação ilegível")
	}
	if !resp.Success {
		if resp.Message != "" {
			failureMsg = resp.Message
		}
		return nil, apperror.NewValidationError(failureMsg)
	}

	// O usuário já chegou sob 'user' e sob 'data' em versões diferentes.
	rawUser := resp.User
	if len(rawUser) == 0 {
		rawUser = resp.Data
	}
	user, err := adapter.AdaptUser(rawUser)
	if err != nil {
		return nil, err
	}

	if err := s.session.SetCredentials(resp.Token, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Profile checa a sessão atual no backend. Um 401 aqui é o estado normal
// "não logado": resolve para (nil, nil), nunca vira erro para a UI.
func (s *Service) Profile(ctx context.Context) (*domain.User, error) {
	raw, err := s.api.Request(ctx, http.MethodGet, "/auth/profile", nil)
	if err != nil {
		if apperror.IsUnauthorized(err) {
			s.log.Debug("sessão ausente no profile-check", nil)
			return nil, nil
		}
		return nil, err
	}

	var resp authResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, apperror.NewShapeError("resposta de perfil ilegível")
	}

	rawUser := resp.User
	if len(rawUser) == 0 {
		rawUser = resp.Data
	}
	if len(rawUser) == 0 {
		return nil, nil
	}

	user, err := adapter.AdaptUser(rawUser)
	if err != nil {
		return nil, err
	}

	// Atualiza o perfil cacheado para a próxima inicialização.
	if err := s.session.SetCredentials("", user); err != nil {
		s.log.Warn("falha ao cachear perfil", map[string]interface{}{"error": err.Error()})
	}
	return user, nil
}

// VerifyEmail confirma o email de cadastro a partir do token do link.
func (s *Service) VerifyEmail(ctx context.Context, token string) error {
	if token == "" {
		return apperror.NewValidationError("token de verificação é obrigatório")
	}
	_, err := s.api.Request(ctx, http.MethodGet, "/auth/verify?token="+url.QueryEscape(token), nil)
	return err
}

// Logout limpa as credenciais locais de forma síncrona ANTES da chamada ao
// servidor: nenhuma requisição posterior pode sair com token velho. A
// chamada ao backend é best-effort (o cookie ainda vai junto pelo jar).
func (s *Service) Logout(ctx context.Context) error {
	if err := s.session.Clear(); err != nil {
		return err
	}
	if _, err := s.api.Request(ctx, http.MethodPost, "/auth/logout", nil); err != nil {
		s.log.Warn("logout no servidor falhou, sessão local já limpa", map[string]interface{}{
			"error": err.Error(),
		})
	}
	return nil
}
