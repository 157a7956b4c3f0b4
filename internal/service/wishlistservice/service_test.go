package wishlistservice_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"gostorefront/internal/domain"
	apperror "gostorefront/internal/errors"
	"gostorefront/internal/pkg/logger"
	"gostorefront/internal/service/wishlistservice"
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

func wishProduct(id string) domain.Product {
	return domain.Product{
		ID:       id,
		Name:     "Produto " + id,
		Price:    10,
		Platform: domain.UnknownPlatform(),
		Genre:    domain.UnknownGenre(),
	}
}

// TestWishlist_Success_LoadedDistinguishesEmpty testa que wishlist vazia
// carregada é diferente de "ainda não carregada".
func TestWishlist_Success_LoadedDistinguishesEmpty(t *testing.T) {
	mockAPI := new(MockAPIClient)
	svc := wishlistservice.NewService(mockAPI, logger.NewLogger("error"))

	assert.False(t, svc.Loaded())
	assert.Empty(t, svc.Products())

	mockAPI.On("Request", mock.Anything, http.MethodGet, "/wishlist", nil).
		Return(json.RawMessage(`{"wishlist": []}`), nil)

	require.NoError(t, svc.Load(context.Background()))

	assert.True(t, svc.Loaded())
	assert.Empty(t, svc.Products())
}

// TestWishlist_Success_LoadAdaptsProducts testa o carregamento com
// vocabulário legado e descarte de itens malformados.
func TestWishlist_Success_LoadAdaptsProducts(t *testing.T) {
	mockAPI := new(MockAPIClient)
	svc := wishlistservice.NewService(mockAPI, logger.NewLogger("error"))

	mockAPI.On("Request", mock.Anything, http.MethodGet, "/wishlist", nil).
		Return(json.RawMessage(`{"data": [
			{"_id": "p1", "nombre": "Juego A", "precio": 20},
			"entrada inválida",
			{"_id": "p2", "name": "Game B", "price": 30}
		]}`), nil)

	require.NoError(t, svc.Load(context.Background()))

	products := svc.Products()
	require.Len(t, products, 2)
	assert.Equal(t, "Juego A", products[0].Name)
	assert.True(t, svc.Contains("p2"))
	assert.False(t, svc.Contains("p3"))
}

// TestWishlist_Success_ToggleOptimistic testa o caminho feliz: a associação
// vira localmente e o servidor confirma, sem refetch.
func TestWishlist_Success_ToggleOptimistic(t *testing.T) {
	mockAPI := new(MockAPIClient)
	svc := wishlistservice.NewService(mockAPI, logger.NewLogger("error"))

	mockAPI.On("Request", mock.Anything, http.MethodPost, "/wishlist/toggle",
		map[string]interface{}{"productId": "p1"}).
		Return(json.RawMessage(`{"success": true}`), nil).Twice()

	require.NoError(t, svc.Toggle(context.Background(), wishProduct("p1")))
	assert.True(t, svc.Contains("p1"))

	// Segundo toggle inverte de volta.
	require.NoError(t, svc.Toggle(context.Background(), wishProduct("p1")))
	assert.False(t, svc.Contains("p1"))

	// Nenhum GET /wishlist: confirmação não exige refetch.
	mockAPI.AssertNumberOfCalls(t, "Request", 2)
}

// TestWishlist_Fail_ToggleRollbackViaRefetch testa a reconciliação quando o
// servidor rejeita: a lista local volta ao estado autoritativo.
func TestWishlist_Fail_ToggleRollbackViaRefetch(t *testing.T) {
	mockAPI := new(MockAPIClient)
	svc := wishlistservice.NewService(mockAPI, logger.NewLogger("error"))

	mockAPI.On("Request", mock.Anything, http.MethodPost, "/wishlist/toggle", mock.Anything).
		Return(nil, apperror.NewApiError("wishlist cheia", 422, nil))
	mockAPI.On("Request", mock.Anything, http.MethodGet, "/wishlist", nil).
		Return(json.RawMessage(`{"wishlist": []}`), nil)

	err := svc.Toggle(context.Background(), wishProduct("p1"))

	require.Error(t, err)
	var apiErr *apperror.ApiError
	assert.ErrorAs(t, err, &apiErr, "o erro devolvido é o da mutação, não o do refetch")
	assert.False(t, svc.Contains("p1"), "otimismo desfeito pela lista autoritativa")
}

// TestWishlist_Fail_ToggleSnapshotRestore testa o fallback do rollback:
// quando até o refetch falha, o snapshot pré-mutação é restaurado.
func TestWishlist_Fail_ToggleSnapshotRestore(t *testing.T) {
	mockAPI := new(MockAPIClient)
	svc := wishlistservice.NewService(mockAPI, logger.NewLogger("error"))

	// Estado inicial com um produto carregado.
	mockAPI.On("Request", mock.Anything, http.MethodGet, "/wishlist", nil).
		Return(json.RawMessage(`{"wishlist": [{"_id": "p1", "name": "A", "price": 5}]}`), nil).Once()
	require.NoError(t, svc.Load(context.Background()))

	mockAPI.On("Request", mock.Anything, http.MethodPost, "/wishlist/toggle", mock.Anything).
		Return(nil, apperror.NewNetworkError("POST /wishlist/toggle", assert.AnError))
	mockAPI.On("Request", mock.Anything, http.MethodGet, "/wishlist", nil).
		Return(nil, apperror.NewNetworkError("GET /wishlist", assert.AnError))

	err := svc.Toggle(context.Background(), wishProduct("p2"))

	require.Error(t, err)
	assert.True(t, svc.Contains("p1"))
	assert.False(t, svc.Contains("p2"), "snapshot pré-mutação restaurado")
}
