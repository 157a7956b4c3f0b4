package wishlistservice

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"gostorefront/internal/adapter"
	"gostorefront/internal/domain"
	apperror "gostorefront/internal/errors"
	"gostorefront/internal/pkg/logger"
)

// APIClient define o contrato que este serviço espera do cliente HTTP.
type APIClient interface {
	Request(ctx context.Context, method, path string, body interface{}) (json.RawMessage, error)
}

// Service é o store da wishlist. Só existe a variante do servidor (não há
// wishlist de convidado); o conjunto vazio é válido e distinto de "ainda
// não carregado".
//
// O toggle é otimista: a associação vira localmente na hora e só
// reconcilia por refetch se o servidor rejeitar. Toggles são frequentes e
// baratos de errar por um instante; quantidade e preço do carrinho não são.
type Service struct {
	api APIClient
	log logger.Logger

	mu       sync.Mutex
	loaded   bool
	products []domain.Product
}

// NewService cria e retorna uma nova instância do store de wishlist.
func NewService(api APIClient, log logger.Logger) *Service {
	return &Service{api: api, log: log}
}

// Load busca a wishlist autoritativa do servidor.
func (s *Service) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.refetch(ctx)
}

// Loaded distingue "vazia" de "ainda não carregada".
func (s *Service) Loaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loaded
}

// Products retorna uma cópia da wishlist atual.
func (s *Service) Products() []domain.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	products := make([]domain.Product, len(s.products))
	copy(products, s.products)
	return products
}

// Contains informa se o produto está na wishlist.
func (s *Service) Contains(productID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.products {
		if p.ID == productID {
			return true
		}
	}
	return false
}

// Toggle inverte a associação do produto: otimista local primeiro, depois
// confirma no servidor. Na rejeição, o rollback é determinístico: refetch
// da lista autoritativa; se até o refetch falhar, restaura o snapshot
// pré-mutação.
func (s *Service) Toggle(ctx context.Context, product domain.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := make([]domain.Product, len(s.products))
	copy(snapshot, s.products)

	s.flip(product)

	_, err := s.api.Request(ctx, http.MethodPost, "/wishlist/toggle",
		map[string]interface{}{"productId": product.ID})
	if err == nil {
		return nil
	}

	if refetchErr := s.refetch(ctx); refetchErr != nil {
		s.log.Warn("rollback por refetch falhou, restaurando snapshot", map[string]interface{}{
			"error": refetchErr.Error(),
		})
		s.products = snapshot
	}
	return err
}

// flip aplica a inversão local da associação.
func (s *Service) flip(product domain.Product) {
	for i, p := range s.products {
		if p.ID == product.ID {
			s.products = append(s.products[:i], s.products[i+1:]...)
			return
		}
	}
	s.products = append(s.products, product)
}

// refetch recarrega a lista do servidor. Chamado com o mutex já em mãos.
func (s *Service) refetch(ctx context.Context) error {
	raw, err := s.api.Request(ctx, http.MethodGet, "/wishlist", nil)
	if err != nil {
		return err
	}

	var envelope struct {
		Wishlist []json.RawMessage `json:"wishlist"`
		Data     []json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return apperror.NewShapeError("resposta da wishlist ilegível")
	}

	rawItems := envelope.Wishlist
	if rawItems == nil {
		rawItems = envelope.Data
	}

	products := make([]domain.Product, 0, len(rawItems))
	for i, item := range rawItems {
		product, err := adapter.AdaptProduct(item)
		if err != nil {
			s.log.Warn("produto descartado da wishlist", map[string]interface{}{
				"index": i,
				"error": err.Error(),
			})
			continue
		}
		products = append(products, product)
	}
	s.products = products
	s.loaded = true
	return nil
}
