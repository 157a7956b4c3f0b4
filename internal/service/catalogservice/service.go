package catalogservice

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

// Service expõe o catálogo já validado e normalizado. A UI nunca vê o JSON
// cru do backend, só os tipos de domínio.
type Service struct {
	api APIClient
	log logger.Logger
}

// NewService cria e retorna uma nova instância do serviço de catálogo.
func NewService(api APIClient, log logger.Logger) *Service {
	return &Service{api: api, log: log}
}

// ListParams são os filtros de listagem do catálogo.
type ListParams struct {
	Page       int
	Limit      int
	Search     string
	Platform   string
	Genre      string
	Sort       string
	Discounted bool
}

func (p ListParams) query() string {
	q := url.Values{}
	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.Limit > 0 {
		q.Set("limit", strconv.Itoa(p.Limit))
	}
	if p.Search != "" {
		q.Set("search", p.Search)
	}
	if p.Platform != "" && p.Platform != "all" {
		q.Set("platform", p.Platform)
	}
	if p.Genre != "" && p.Genre != "all" {
		q.Set("genre", p.Genre)
	}
	if p.Sort != "" {
		q.Set("sort", p.Sort)
	}
	if p.Discounted {
		q.Set("discounted", "true")
	}
	if encoded := q.Encode(); encoded != "" {
		return "?" + encoded
	}
	return ""
}

// ListProducts busca uma página do catálogo. Itens individuais malformados
// são descartados com log, nunca abortam o lote: uma página parcial vale
// mais que uma página em branco.
func (s *Service) ListProducts(ctx context.Context, params ListParams) (domain.PaginatedProducts, error) {
	raw, err := s.api.Request(ctx, http.MethodGet, "/products"+params.query(), nil)
	if err != nil {
		return domain.PaginatedProducts{}, err
	}

	env := adapter.ResolveList(raw)
	products := make([]domain.Product, 0, len(env.Items))
	for i, item := range env.Items {
		product, err := adapter.AdaptProduct(item)
		if err != nil {
			s.log.Warn("produto descartado da listagem", map[string]interface{}{
				"index": i,
				"error": err.Error(),
			})
			continue
		}
		products = append(products, product)
	}

	return domain.PaginatedProducts{Products: products, Meta: env.Meta}, nil
}

// GetProduct busca um produto por id (o endpoint responde enveloped ou não).
func (s *Service) GetProduct(ctx context.Context, id string) (domain.Product, error) {
	if id == "" {
		return domain.Product{}, apperror.NewValidationError("id do produto é obrigatório")
	}
	raw, err := s.api.Request(ctx, http.MethodGet, "/products/"+id, nil)
	if err != nil {
		return domain.Product{}, err
	}
	return adapter.AdaptProduct(adapter.ResolveObject(raw))
}

// ListPlatforms busca as plataformas disponíveis para filtro e back-office.
func (s *Service) ListPlatforms(ctx context.Context) ([]domain.ReferenceEntity, error) {
	return s.listReferences(ctx, "/platforms")
}

// ListGenres busca os gêneros disponíveis.
func (s *Service) ListGenres(ctx context.Context) ([]domain.ReferenceEntity, error) {
	return s.listReferences(ctx, "/genres")
}

func (s *Service) listReferences(ctx context.Context, path string) ([]domain.ReferenceEntity, error) {
	raw, err := s.api.Request(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	env := adapter.ResolveList(raw)
	refs := make([]domain.ReferenceEntity, 0, len(env.Items))
	for i, item := range env.Items {
		ref, err := adapter.AdaptReference(item)
		if err != nil {
			s.log.Warn("referência descartada da listagem", map[string]interface{}{
				"path":  path,
				"index": i,
				"error": err.Error(),
			})
			continue
		}
		refs = append(refs, ref)
	}
	return refs, nil
}

// --- Mutações administrativas ---
// O payload sai traduzido do vocabulário do frontend para o do backend
// pelo adaptador inverso.

// CreateProduct cria um produto novo no catálogo.
func (s *Service) CreateProduct(ctx context.Context, in adapter.ProductInput) error {
	if in.Name == "" {
		return apperror.NewValidationError("nome do produto é obrigatório")
	}
	if in.Price < 0 {
		return apperror.NewValidationError("preço do produto não pode ser negativo")
	}
	_, err := s.api.Request(ctx, http.MethodPost, "/products", adapter.ProductPayload(in))
	return err
}

// UpdateProduct atualiza um produto existente.
func (s *Service) UpdateProduct(ctx context.Context, id string, in adapter.ProductInput) error {
	if id == "" {
		return apperror.NewValidationError("id do produto é obrigatório")
	}
	_, err := s.api.Request(ctx, http.MethodPut, "/products/"+id, adapter.ProductPayload(in))
	return err
}

// DeleteProduct remove um produto do catálogo.
func (s *Service) DeleteProduct(ctx context.Context, id string) error {
	_, err := s.api.Request(ctx, http.MethodDelete, "/products/"+id, nil)
	return err
}

// DeleteProductsBulk remove vários produtos numa chamada só.
func (s *Service) DeleteProductsBulk(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return apperror.NewValidationError("lista de ids vazia")
	}
	_, err := s.api.Request(ctx, http.MethodDelete, "/products/multi", map[string]interface{}{"ids": ids})
	return err
}

// ReorderProduct muda a posição de exibição de um produto.
func (s *Service) ReorderProduct(ctx context.Context, id string, newPosition int) error {
	_, err := s.api.Request(ctx, http.MethodPut, "/products/"+id+"/reorder",
		map[string]interface{}{"newPosition": newPosition})
	return err
}

// CreatePlatform cria uma plataforma (back-office).
func (s *Service) CreatePlatform(ctx context.Context, name, imageID string) error {
	_, err := s.api.Request(ctx, http.MethodPost, "/platforms", adapter.ReferencePayload(name, imageID))
	return err
}

// UpdatePlatform atualiza uma plataforma.
func (s *Service) UpdatePlatform(ctx context.Context, id, name, imageID string) error {
	_, err := s.api.Request(ctx, http.MethodPut, "/platforms/"+id, adapter.ReferencePayload(name, imageID))
	return err
}

// DeletePlatform remove uma plataforma.
func (s *Service) DeletePlatform(ctx context.Context, id string) error {
	_, err := s.api.Request(ctx, http.MethodDelete, "/platforms/"+id, nil)
	return err
}

// CreateGenre cria um gênero (back-office).
func (s *Service) CreateGenre(ctx context.Context, name, imageID string) error {
	_, err := s.api.Request(ctx, http.MethodPost, "/genres", adapter.ReferencePayload(name, imageID))
	return err
}

// UpdateGenre atualiza um gênero.
func (s *Service) UpdateGenre(ctx context.Context, id, name, imageID string) error {
	_, err := s.api.Request(ctx, http.MethodPut, "/genres/"+id, adapter.ReferencePayload(name, imageID))
	return err
}

// DeleteGenre remove um gênero.
func (s *Service) DeleteGenre(ctx context.Context, id string) error {
	_, err := s.api.Request(ctx, http.MethodDelete, "/genres/"+id, nil)
	return err
}
