package cartservice

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/google/uuid"

	"gostorefront/internal/adapter"
	"gostorefront/internal/domain"
	apperror "gostorefront/internal/errors"
	"gostorefront/internal/pkg/logger"
	"gostorefront/internal/pkg/storage"
)

// APIClient define o contrato que este serviço espera do cliente HTTP.
type APIClient interface {
	Request(ctx context.Context, method, path string, body interface{}) (json.RawMessage, error)
}

// SessionState é o pedaço da sessão que o carrinho precisa enxergar:
// apenas em que modo operar.
type SessionState interface {
	Authenticated() bool
}

// Service é o store do carrinho, com dois modos selecionados pelo estado de
// autenticação:
//
//   - Convidado: mutações aplicam na lista em memória e persistem a lista
//     inteira no storage local (replace-all), sem tocar a rede.
//   - Autenticado: cada mutação chama o servidor e depois ressincroniza a
//     lista autoritativa inteira; preço e quantidade do carrinho nunca podem
//     aparecer errados, nem momentaneamente.
//
// No máximo um dos dois é a fonte de verdade a qualquer momento. As
// mutações são serializadas pelo mutex, então dois adds rápidos não
// intercalam seus resyncs.
type Service struct {
	api     APIClient
	session SessionState
	store   storage.Store
	log     logger.Logger

	mu    sync.Mutex
	items []domain.CartItem
}

// NewService cria e retorna uma nova instância do store de carrinho.
func NewService(api APIClient, sess SessionState, store storage.Store, log logger.Logger) *Service {
	return &Service{api: api, session: sess, store: store, log: log}
}

// Load hidrata o carrinho: do storage local no modo convidado, do backend
// no modo autenticado. Chamado na inicialização e na troca de modo.
func (s *Service) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session.Authenticated() {
		return s.resync(ctx)
	}

	raw, err := s.store.Get(storage.KeyCart)
	if err == storage.ErrNotFound {
		s.items = nil
		return nil
	}
	if err != nil {
		return err
	}

	var items []domain.CartItem
	if err := json.Unmarshal(raw, &items); err != nil {
		// Carrinho persistido ilegível: descarta em vez de travar tudo.
		s.log.Warn("carrinho local ilegível, começando vazio", map[string]interface{}{
			"error": err.Error(),
		})
		s.items = nil
		return nil
	}
	s.items = items
	return nil
}

// AddProduct adiciona um produto ao carrinho (upsert de quantidade).
func (s *Service) AddProduct(ctx context.Context, product domain.Product, quantity int) error {
	if quantity <= 0 {
		return apperror.NewValidationError("quantidade deve ser positiva")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session.Authenticated() {
		_, err := s.api.Request(ctx, http.MethodPost, "/cart",
			map[string]interface{}{"productId": product.ID, "quantity": quantity})
		if err != nil {
			return err
		}
		return s.resync(ctx)
	}

	// Modo convidado: upsert local e persistência da lista inteira.
	for i := range s.items {
		if s.items[i].ProductID == product.ID {
			s.items[i].Quantity += quantity
			return s.persist()
		}
	}
	s.items = append(s.items, domain.CartItem{
		ID:           uuid.New().String(),
		ProductID:    product.ID,
		Name:         product.Name,
		Price:        product.Price,
		Quantity:     quantity,
		Image:        product.ImageID,
		PlatformName: product.Platform.Name,
	})
	return s.persist()
}

// UpdateQuantity muda a quantidade de um item; quantidade <= 0 remove.
func (s *Service) UpdateQuantity(ctx context.Context, itemID string, quantity int) error {
	if quantity <= 0 {
		return s.Remove(ctx, itemID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session.Authenticated() {
		_, err := s.api.Request(ctx, http.MethodPut, "/cart",
			map[string]interface{}{"itemId": itemID, "quantity": quantity})
		if err != nil {
			return err
		}
		return s.resync(ctx)
	}

	for i := range s.items {
		if s.items[i].ID == itemID {
			s.items[i].Quantity = quantity
			return s.persist()
		}
	}
	return apperror.NewValidationError("item não está no carrinho")
}

// Remove tira um item do carrinho.
func (s *Service) Remove(ctx context.Context, itemID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session.Authenticated() {
		_, err := s.api.Request(ctx, http.MethodDelete, "/cart/"+itemID, nil)
		if err != nil {
			return err
		}
		return s.resync(ctx)
	}

	kept := s.items[:0]
	for _, item := range s.items {
		if item.ID != itemID {
			kept = append(kept, item)
		}
	}
	s.items = kept
	return s.persist()
}

// Clear esvazia o carrinho do modo ativo.
func (s *Service) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session.Authenticated() {
		if _, err := s.api.Request(ctx, http.MethodDelete, "/cart", nil); err != nil {
			return err
		}
		return s.resync(ctx)
	}

	s.items = nil
	if err := s.store.Delete(storage.KeyCart); err != nil {
		return err
	}
	return nil
}

// MergeOnLogin migra o carrinho de convidado para o servidor no momento da
// autenticação. Política: union-merge por replay; cada item local passa
// pelo endpoint de add do servidor (que soma quantidades), a chave local só
// é limpa depois de todos os replays terem sucesso, e então ressincroniza.
// Falha parcial mantém o carrinho local: nenhum item some em silêncio.
func (s *Service) MergeOnLogin(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := s.store.Get(storage.KeyCart)
	if err == storage.ErrNotFound {
		return s.resync(ctx)
	}
	if err != nil {
		return err
	}

	var guestItems []domain.CartItem
	if err := json.Unmarshal(raw, &guestItems); err != nil {
		s.log.Warn("carrinho local ilegível no merge, ignorando", map[string]interface{}{
			"error": err.Error(),
		})
		return s.resync(ctx)
	}

	for _, item := range guestItems {
		_, err := s.api.Request(ctx, http.MethodPost, "/cart",
			map[string]interface{}{"productId": item.ProductID, "quantity": item.Quantity})
		if err != nil {
			s.log.Error("merge do carrinho interrompido, itens locais preservados", err)
			return err
		}
	}

	if err := s.store.Delete(storage.KeyCart); err != nil {
		return err
	}
	s.log.Info("carrinho de convidado migrado para o servidor", map[string]interface{}{
		"items": len(guestItems),
	})
	return s.resync(ctx)
}

// Items retorna uma cópia da lista atual.
func (s *Service) Items() []domain.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := make([]domain.CartItem, len(s.items))
	copy(items, s.items)
	return items
}

// Total recomputa o valor do carrinho a cada chamada, nunca cacheia:
// o total exibido não pode divergir da lista.
func (s *Service) Total() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	var total float64
	for _, item := range s.items {
		total += item.Subtotal()
	}
	return total
}

// Count retorna a quantidade total de unidades no carrinho.
func (s *Service) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	var count int
	for _, item := range s.items {
		count += item.Quantity
	}
	return count
}

// resync refaz a lista a partir do carrinho autoritativo do servidor.
// Chamado com o mutex já em mãos.
func (s *Service) resync(ctx context.Context) error {
	raw, err := s.api.Request(ctx, http.MethodGet, "/cart", nil)
	if err != nil {
		return err
	}

	var envelope struct {
		Cart struct {
			Items []json.RawMessage `json:"items"`
		} `json:"cart"`
		Items []json.RawMessage `json:"items"`
	}
	if err := json.Unmarshal(adapter.ResolveObject(raw), &envelope); err != nil {
		return apperror.NewShapeError("resposta do carrinho ilegível")
	}

	rawItems := envelope.Cart.Items
	if rawItems == nil {
		rawItems = envelope.Items
	}

	items := make([]domain.CartItem, 0, len(rawItems))
	for i, rawItem := range rawItems {
		item, err := adapter.AdaptCartItem(rawItem)
		if err != nil {
			s.log.Warn("item do carrinho descartado", map[string]interface{}{
				"index": i,
				"error": err.Error(),
			})
			continue
		}
		items = append(items, item)
	}
	s.items = items
	return nil
}

// persist grava a lista inteira no storage local (replace-all, atômico).
// Só roda no modo convidado, com o mutex já em mãos.
func (s *Service) persist() error {
	data, err := json.Marshal(s.items)
	if err != nil {
		return err
	}
	return s.store.Set(storage.KeyCart, data)
}
