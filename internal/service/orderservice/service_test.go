package orderservice_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"gostorefront/internal/domain"
	"gostorefront/internal/pkg/logger"
	"gostorefront/internal/service/orderservice"
)

// MockAPIClient é uma implementação mock da interface APIClient.
type MockAPIClient struct {
	mock.Mock
}

func (m *MockAPIClient) Request(ctx context.Context, method, path string, body interface{}) (json.RawMessage, error) {
	args := m.Called(ctx, method, path, body)
	if raw, ok := args.Get(0).(json.RawMessage); ok {
		return raw, args.Error(1)
	}
	return nil, args.Error(1)
}

// TestCreate_Success_RecomputesTotal testa que o total do pedido sai
// recomputado dos itens, não de um valor passado de fora.
func TestCreate_Success_RecomputesTotal(t *testing.T) {
	mockAPI := new(MockAPIClient)
	svc := orderservice.NewService(mockAPI, logger.NewLogger("error"))

	items := []domain.CartItem{
		{ID: "i1", ProductID: "p1", Price: 10, Quantity: 2},
		{ID: "i2", ProductID: "p2", Price: 5.5, Quantity: 1},
	}

	mockAPI.On("Request", mock.Anything, http.MethodPost, "/orders",
		mock.MatchedBy(func(body interface{}) bool {
			payload, ok := body.(map[string]interface{})
			return ok && payload["total"] == 25.5 && payload["paymentMethod"] == "card"
		})).
		Return(json.RawMessage(`{"data": {"id": "o1", "status": "pending", "total": 25.5}}`), nil)

	order, err := svc.Create(context.Background(), items,
		domain.ShippingAddress{FullName: "Ana", City: "Lisboa"}, "card")

	require.NoError(t, err)
	assert.Equal(t, "o1", order.ID)
	assert.Equal(t, domain.OrderPending, order.Status)
	mockAPI.AssertExpectations(t)
}

// TestCreate_Fail_EmptyCart testa que checkout de carrinho vazio não vai à
// rede.
func TestCreate_Fail_EmptyCart(t *testing.T) {
	mockAPI := new(MockAPIClient)
	svc := orderservice.NewService(mockAPI, logger.NewLogger("error"))

	_, err := svc.Create(context.Background(), nil, domain.ShippingAddress{}, "card")

	require.Error(t, err)
	mockAPI.AssertNumberOfCalls(t, "Request", 0)
}

// TestListMine_Success_DropsBadEntries testa o histórico com descarte de
// entrada ilegível.
func TestListMine_Success_DropsBadEntries(t *testing.T) {
	mockAPI := new(MockAPIClient)
	svc := orderservice.NewService(mockAPI, logger.NewLogger("error"))

	mockAPI.On("Request", mock.Anything, http.MethodGet, "/orders/user", nil).
		Return(json.RawMessage(`{"data": [
			{"id": "o1", "total": 10, "status": "delivered"},
			"lixo",
			{"id": "o2", "total": 20, "status": "pending"}
		]}`), nil)

	orders, err := svc.ListMine(context.Background())

	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, domain.OrderDelivered, orders[0].Status)
	assert.Equal(t, "o2", orders[1].ID)
}
