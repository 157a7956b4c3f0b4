package adminservice

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"gostorefront/internal/adapter"
	"gostorefront/internal/domain"
	apperror "gostorefront/internal/errors"
	"gostorefront/internal/pkg/logger"
)

// APIClient define o contrato que este serviço espera do cliente HTTP.
type APIClient interface {
	Request(ctx context.Context, method, path string, body interface{}) (json.RawMessage, error)
}

// Service agrupa as operações de back-office: inventário de chaves de
// licença digital, analytics do painel e gestão de usuários.
type Service struct {
	api APIClient
	log logger.Logger
}

// NewService cria e retorna uma nova instância do serviço administrativo.
func NewService(api APIClient, log logger.Logger) *Service {
	return &Service{api: api, log: log}
}

// --- Inventário de chaves de licença ---

// AddKeys cadastra um lote de chaves para um produto digital.
func (s *Service) AddKeys(ctx context.Context, productID string, keys []string) error {
	if productID == "" || len(keys) == 0 {
		return apperror.NewValidationError("produto e lista de chaves são obrigatórios")
	}
	_, err := s.api.Request(ctx, http.MethodPost, "/keys/bulk",
		map[string]interface{}{"productId": productID, "keys": keys})
	return err
}

// DeleteKey remove uma chave do inventário.
func (s *Service) DeleteKey(ctx context.Context, keyID string) error {
	_, err := s.api.Request(ctx, http.MethodDelete, "/keys/"+keyID, nil)
	return err
}

// KeysByProduct lista as chaves cadastradas de um produto.
func (s *Service) KeysByProduct(ctx context.Context, productID string) ([]domain.ProductKey, error) {
	raw, err := s.api.Request(ctx, http.MethodGet, "/keys/product/"+productID, nil)
	if err != nil {
		return nil, err
	}

	env := adapter.ResolveList(raw)
	keys := make([]domain.ProductKey, 0, len(env.Items))
	for i, item := range env.Items {
		var key domain.ProductKey
		if err := json.Unmarshal(item, &key); err != nil {
			s.log.Warn("chave descartada da listagem", map[string]interface{}{
				"index": i,
				"error": err.Error(),
			})
			continue
		}
		keys = append(keys, key)
	}
	return keys, nil
}

// --- Analytics do painel ---
// Os três endpoints respondem sob 'data'.

// Stats busca os agregados do painel.
func (s *Service) Stats(ctx context.Context) (domain.DashboardStats, error) {
	raw, err := s.api.Request(ctx, http.MethodGet, "/dashboard/stats", nil)
	if err != nil {
		return domain.DashboardStats{}, err
	}
	var stats domain.DashboardStats
	if err := json.Unmarshal(adapter.ResolveObject(raw), &stats); err != nil {
		return domain.DashboardStats{}, apperror.NewShapeError("resposta de stats ilegível")
	}
	return stats, nil
}

// SalesChart busca a série temporal de vendas.
func (s *Service) SalesChart(ctx context.Context) ([]domain.SalesPoint, error) {
	raw, err := s.api.Request(ctx, http.MethodGet, "/dashboard/chart", nil)
	if err != nil {
		return nil, err
	}

	env := adapter.ResolveList(raw)
	points := make([]domain.SalesPoint, 0, len(env.Items))
	for _, item := range env.Items {
		var point domain.SalesPoint
		if err := json.Unmarshal(item, &point); err != nil {
			continue
		}
		points = append(points, point)
	}
	return points, nil
}

// TopProducts busca o ranking de mais vendidos.
func (s *Service) TopProducts(ctx context.Context) ([]domain.TopProduct, error) {
	raw, err := s.api.Request(ctx, http.MethodGet, "/dashboard/top-products", nil)
	if err != nil {
		return nil, err
	}

	env := adapter.ResolveList(raw)
	top := make([]domain.TopProduct, 0, len(env.Items))
	for _, item := range env.Items {
		var entry domain.TopProduct
		if err := json.Unmarshal(item, &entry); err != nil {
			continue
		}
		top = append(top, entry)
	}
	return top, nil
}

// --- Gestão de usuários ---

// UserListParams são os filtros da listagem de usuários.
type UserListParams struct {
	Page   int
	Limit  int
	Search string
	Role   string
}

// ListUsers busca uma página de usuários cadastrados.
func (s *Service) ListUsers(ctx context.Context, params UserListParams) ([]domain.User, domain.Meta, error) {
	q := url.Values{}
	if params.Page > 0 {
		q.Set("page", strconv.Itoa(params.Page))
	}
	if params.Limit > 0 {
		q.Set("limit", strconv.Itoa(params.Limit))
	}
	if params.Search != "" {
		q.Set("search", params.Search)
	}
	if params.Role != "" && params.Role != "all" {
		q.Set("role", params.Role)
	}

	path := "/users"
	if encoded := q.Encode(); encoded != "" {
		path += "?" + encoded
	}

	raw, err := s.api.Request(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, domain.Meta{}, err
	}

	env := adapter.ResolveList(raw)
	users := make([]domain.User, 0, len(env.Items))
	for i, item := range env.Items {
		user, err := adapter.AdaptUser(item)
		if err != nil {
			s.log.Warn("usuário descartado da listagem", map[string]interface{}{
				"index": i,
				"error": err.Error(),
			})
			continue
		}
		users = append(users, *user)
	}
	return users, env.Meta, nil
}

// GetUser busca um usuário por id.
func (s *Service) GetUser(ctx context.Context, id string) (*domain.User, error) {
	raw, err := s.api.Request(ctx, http.MethodGet, "/users/"+id, nil)
	if err != nil {
		return nil, err
	}
	return adapter.AdaptUser(adapter.ResolveObject(raw))
}

// UpdateUser atualiza nome e papel de um usuário.
func (s *Service) UpdateUser(ctx context.Context, id string, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return apperror.NewValidationError("nada a atualizar")
	}
	_, err := s.api.Request(ctx, http.MethodPut, "/users/"+id, fields)
	return err
}

// DeleteUser remove um usuário.
func (s *Service) DeleteUser(ctx context.Context, id string) error {
	_, err := s.api.Request(ctx, http.MethodDelete, "/users/"+id, nil)
	return err
}
