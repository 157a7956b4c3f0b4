package adapter

import (
	"time"

	"gostorefront/internal/domain"
)

// ProductInput é a entrada das mutações administrativas de produto, no
// vocabulário estável do frontend.
type ProductInput struct {
	Name               string
	Description        string
	Price              float64
	Stock              int
	PlatformID         string
	GenreID            string
	Type               domain.ProductType
	Developer          string
	ImageURL           string
	TrailerURL         string
	SpecPreset         string
	ReleaseDate        string
	DiscountPercentage float64
	DiscountEndDate    *string
}

// ProductPayload é o adaptador no sentido inverso: traduz a entrada do
// frontend para o payload que o backend espera nos endpoints de mutação.
// Para os campos que toca, a tradução é bijetiva com AdaptProduct (ida e
// volta preservam o valor).
func ProductPayload(in ProductInput) map[string]interface{} {
	productType := in.Type
	if productType == "" {
		productType = domain.TypeDigital
	}

	release := in.ReleaseDate
	if release == "" {
		release = time.Now().UTC().Format(time.RFC3339)
	}

	return map[string]interface{}{
		"name":               in.Name,
		"description":        in.Description,
		"price":              in.Price,
		"stock":              in.Stock,
		"platform":           in.PlatformID,
		"genre":              in.GenreID,
		"type":               string(productType),
		"developer":          in.Developer,
		"imageId":            in.ImageURL,
		"trailerUrl":         in.TrailerURL,
		"specPreset":         in.SpecPreset,
		"releaseDate":        release,
		"active":             true,
		"discountPercentage": in.DiscountPercentage,
		"discountEndDate":    in.DiscountEndDate,
	}
}

// ReferencePayload monta o payload de criação/edição de plataforma/gênero.
func ReferencePayload(name, imageID string) map[string]interface{} {
	return map[string]interface{}{
		"name":    name,
		"imageId": imageID,
	}
}
