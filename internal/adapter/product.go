package adapter

import (
	"encoding/json"
	"strings"

	"gostorefront/internal/domain"
	apperror "gostorefront/internal/errors"
)

// AdaptProduct valida e traduz um produto cru do backend para a entidade
// canônica. Campos ausentes ou malformados viram defaults seguros em vez de
// rejeitar o registro inteiro; a exceção é entrada que nem objeto é, que
// retorna ShapeError para o chamador descartar só este item do lote.
func AdaptProduct(raw json.RawMessage) (domain.Product, error) {
	m, err := decodeObject(raw)
	if err != nil {
		return domain.Product{}, err
	}
	return adaptProductMap(m), nil
}

// decodeObject valida que a entrada é um objeto JSON parseável.
func decodeObject(raw json.RawMessage) (map[string]interface{}, error) {
	var decoded interface{}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, apperror.NewShapeError("entrada não é JSON parseável")
	}
	m, ok := decoded.(map[string]interface{})
	if !ok {
		return nil, apperror.NewShapeError("entrada não é um objeto")
	}
	return m, nil
}

func adaptProductMap(m map[string]interface{}) domain.Product {
	m = unwrapProduct(m)

	price := toNumber(pick(m, "price"), 0)

	p := domain.Product{
		ID:          toString(pick(m, "id"), domain.MissingProductID),
		Name:        toString(pick(m, "name"), "Unknown Product"),
		Description: toString(pick(m, "description"), ""),
		Price:       price,
		Stock:       toInt(pick(m, "stock"), 0),
		ImageID:     SanitizeImageURL(toString(pick(m, "image"), "")),
		Platform:    adaptRelation(pick(m, "platform"), domain.UnknownPlatform()),
		Genre:       adaptRelation(pick(m, "genre"), domain.UnknownGenre()),
		Type:        adaptProductType(toString(pick(m, "type"), "")),
		Developer:   toString(pick(m, "developer"), ""),
		Rating:      toNumber(pick(m, "rating"), 0),
		ReleaseDate: toString(pick(m, "releaseDate"), ""),
		TrailerURL:  toString(pick(m, "trailerUrl"), ""),
		SpecPreset:  toString(pick(m, "specPreset"), ""),
		Active:      toBool(pick(m, "active"), true),

		FinalPrice:         toNumber(pick(m, "finalPrice"), price),
		DiscountPercentage: toNumber(pick(m, "discountPercentage"), 0),
	}

	if p.ID == "" {
		p.ID = domain.MissingProductID
	}
	if end := toString(pick(m, "discountEndDate"), ""); end != "" {
		p.DiscountEndDate = &end
	}

	return p
}

// unwrapProduct desembrulha um nível quando o produto chegou aninhado
// (wishlist e carrinho já responderam com o produto sob 'productoId' ou
// 'product'). Só desembrulha se o objeto de fora não tem cara de produto.
func unwrapProduct(m map[string]interface{}) map[string]interface{} {
	if pickKeys(m, "name", "nombre") != nil {
		return m
	}
	for _, key := range wrapperKeys {
		if inner, ok := m[key].(map[string]interface{}); ok {
			return inner
		}
	}
	return m
}

// adaptRelation normaliza uma relação (plataforma, gênero) para um objeto
// completo, venha ela como objeto populado, id solto ou nada. A detecção é
// por tipo e presença de chave; o backend não manda número de versão.
func adaptRelation(v interface{}, fallback domain.ReferenceEntity) domain.ReferenceEntity {
	switch rel := v.(type) {
	case map[string]interface{}:
		return domain.ReferenceEntity{
			ID:      toString(pickKeys(rel, "_id", "id"), fallback.ID),
			Name:    toString(pickKeys(rel, "name", "nombre"), fallback.Name),
			ImageID: SanitizeImageURL(toString(pickKeys(rel, "imageId", "imagenUrl"), "")),
		}
	case string:
		if rel != "" {
			// Id solto sem popular: mantém o id, nome sentinela.
			return domain.ReferenceEntity{ID: rel, Name: fallback.Name, ImageID: fallback.ImageID}
		}
	}
	return fallback
}

// adaptProductType traduz o enum de tipo dos dois vocabulários históricos.
func adaptProductType(v string) domain.ProductType {
	switch strings.ToLower(v) {
	case "fisico", "physical":
		return domain.TypePhysical
	default:
		return domain.TypeDigital
	}
}

// SanitizeImageURL só aceita uma string como URL de imagem utilizável se
// ela começa com http ou /; vazio, lixo relativo e códigos legados viram o
// placeholder fixo, evitando imagem quebrada sem round trip de verificação.
func SanitizeImageURL(url string) string {
	if strings.HasPrefix(url, "http") || strings.HasPrefix(url, "/") {
		return url
	}
	return domain.PlaceholderImage
}

// AdaptReference valida e traduz uma entidade de referência (plataforma,
// gênero, categoria) das listas administrativas.
func AdaptReference(raw json.RawMessage) (domain.ReferenceEntity, error) {
	m, err := decodeObject(raw)
	if err != nil {
		return domain.ReferenceEntity{}, err
	}
	return domain.ReferenceEntity{
		ID:      toString(pickKeys(m, "_id", "id"), ""),
		Name:    toString(pickKeys(m, "name", "nombre"), ""),
		ImageID: SanitizeImageURL(toString(pickKeys(m, "imageId", "imagenUrl"), "")),
		Active:  toBool(pickKeys(m, "active", "activo"), true),
	}, nil
}

// AdaptUser traduz o usuário das respostas de autenticação.
func AdaptUser(raw json.RawMessage) (*domain.User, error) {
	m, err := decodeObject(raw)
	if err != nil {
		return nil, err
	}
	return &domain.User{
		ID:        toString(pickKeys(m, "_id", "id"), ""),
		Name:      toString(pickKeys(m, "name", "nombre"), ""),
		Email:     toString(pickKeys(m, "email"), ""),
		Role:      domain.UserRole(toString(pickKeys(m, "role"), string(domain.RoleUser))),
		CreatedAt: toString(pickKeys(m, "createdAt"), ""),
	}, nil
}

// AdaptCartItem traduz um item do carrinho do servidor. Quando o produto
// vem embutido, nome, preço e imagem preferem o produto parseado; o item
// cru é o fallback.
func AdaptCartItem(raw json.RawMessage) (domain.CartItem, error) {
	m, err := decodeObject(raw)
	if err != nil {
		return domain.CartItem{}, err
	}

	var embedded *domain.Product
	if inner, ok := m["product"].(map[string]interface{}); ok {
		p := adaptProductMap(inner)
		embedded = &p
	}

	item := domain.CartItem{
		ID:        toString(pickKeys(m, "_id", "id"), ""),
		ProductID: toString(pickKeys(m, "productId"), ""),
		Name:      toString(pickKeys(m, "name", "nombre"), ""),
		Price:     toNumber(pickKeys(m, "price", "precio"), 0),
		Quantity:  toInt(pickKeys(m, "quantity", "cantidad"), 1),
		Image:     toString(pickKeys(m, "image"), ""),
	}

	if embedded != nil {
		if item.ProductID == "" {
			item.ProductID = embedded.ID
		}
		if embedded.Name != "Unknown Product" {
			item.Name = embedded.Name
		}
		item.Price = embedded.Price
		if embedded.ImageID != domain.PlaceholderImage || item.Image == "" {
			item.Image = embedded.ImageID
		}
		item.PlatformName = embedded.Platform.Name
	}

	if item.Name == "" {
		item.Name = "Unknown Product"
	}

	return item, nil
}
