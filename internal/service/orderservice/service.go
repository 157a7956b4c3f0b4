package orderservice

import (
	"context"
	"encoding/json"
	"net/http"

	"gostorefront/internal/adapter"
	"gostorefront/internal/domain"
	apperror "gostorefront/internal/errors"
	"gostorefront/internal/pkg/logger"
)

// APIClient define o contrato que este serviço espera do cliente HTTP.
type APIClient interface {
	Request(ctx context.Context, method, path string, body interface{}) (json.RawMessage, error)
}

// Service cria pedidos a partir do snapshot do carrinho e lista o
// histórico do usuário autenticado.
type Service struct {
	api APIClient
	log logger.Logger
}

// NewService cria e retorna uma nova instância do serviço de pedidos.
func NewService(api APIClient, log logger.Logger) *Service {
	return &Service{api: api, log: log}
}

// Create envia o pedido com o snapshot dos itens no momento do checkout.
// O total vai recomputado dos itens, nunca de um valor cacheado.
func (s *Service) Create(ctx context.Context, items []domain.CartItem, address domain.ShippingAddress, paymentMethod string) (domain.Order, error) {
	if len(items) == 0 {
		return domain.Order{}, apperror.NewValidationError("carrinho vazio, nada a pedir")
	}

	var total float64
	for _, item := range items {
		total += item.Subtotal()
	}

	raw, err := s.api.Request(ctx, http.MethodPost, "/orders", map[string]interface{}{
		"items":           items,
		"total":           total,
		"shippingAddress": address,
		"paymentMethod":   paymentMethod,
	})
	if err != nil {
		return domain.Order{}, err
	}

	var order domain.Order
	if err := json.Unmarshal(adapter.ResolveObject(raw), &order); err != nil {
		return domain.Order{}, apperror.NewShapeError("resposta do pedido ilegível")
	}
	return order, nil
}

// ListMine busca o histórico de pedidos do usuário da sessão.
func (s *Service) ListMine(ctx context.Context) ([]domain.Order, error) {
	raw, err := s.api.Request(ctx, http.MethodGet, "/orders/user", nil)
	if err != nil {
		return nil, err
	}

	env := adapter.ResolveList(raw)
	orders := make([]domain.Order, 0, len(env.Items))
	for i, item := range env.Items {
		var order domain.Order
		if err := json.Unmarshal(item, &order); err != nil {
			s.log.Warn("pedido descartado do histórico", map[string]interface{}{
				"index": i,
				"error": err.Error(),
			})
			continue
		}
		orders = append(orders, order)
	}
	return orders, nil
}
