package domain

// ProductType é o tipo de entrega de um produto do catálogo.
// O backend histórico usa dois vocabulários ('Fisico'/'Digital' e
// 'Physical'/'Digital'); aqui só existe o vocabulário estável.
type ProductType string

const (
	TypeDigital  ProductType = "Digital"
	TypePhysical ProductType = "Physical"
)

// PlaceholderImage é a URL fixa usada no lugar de qualquer imagem inválida.
const PlaceholderImage = "/placeholder.png"

// MissingProductID é o sentinela usado quando o backend não envia um id.
// Preferimos um sentinela a falhar o parse da página inteira.
const MissingProductID = "missing-id"

// ReferenceEntity é a entidade de referência unificada (Plataforma, Gênero,
// Categoria). Sempre um objeto completo: consumidores nunca checam nil.
type ReferenceEntity struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	ImageID string `json:"imageId"`
	Active  bool   `json:"active,omitempty"`
}

// UnknownPlatform retorna o objeto sentinela usado quando a relação de
// plataforma veio ausente ou como id solto sem popular.
func UnknownPlatform() ReferenceEntity {
	return ReferenceEntity{ID: "unknown", Name: "Plataforma", ImageID: PlaceholderImage}
}

// UnknownGenre retorna o objeto sentinela equivalente para gênero.
func UnknownGenre() ReferenceEntity {
	return ReferenceEntity{ID: "unknown", Name: "Género", ImageID: PlaceholderImage}
}

// Product é a entidade canônica do catálogo, já validada e normalizada.
// É um value object imutável: cada parse de resposta constrói um novo,
// nunca há mutação in place.
type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       float64         `json:"price"`
	Stock       int             `json:"stock"`
	ImageID     string          `json:"imageId"`
	Platform    ReferenceEntity `json:"platform"`
	Genre       ReferenceEntity `json:"genre"`
	Type        ProductType     `json:"type"`
	Developer   string          `json:"developer"`
	Rating      float64         `json:"rating"`
	ReleaseDate string          `json:"releaseDate"`
	TrailerURL  string          `json:"trailerUrl,omitempty"`
	SpecPreset  string          `json:"specPreset,omitempty"`
	Active      bool            `json:"active"`

	// Campos de promoção. FinalPrice cai para Price quando ausente;
	// o invariante discountPercentage>0 => finalPrice<price é assumido
	// do backend, não validado aqui.
	FinalPrice         float64 `json:"finalPrice"`
	DiscountPercentage float64 `json:"discountPercentage"`
	DiscountEndDate    *string `json:"discountEndDate"`
}

// Savings é o valor de desconto exibido ("você economiza X").
func (p Product) Savings() float64 {
	if p.FinalPrice < p.Price {
		return p.Price - p.FinalPrice
	}
	return 0
}

// Meta é a metadata de paginação já normalizada (o backend alterna entre
// 'pagination'/'meta' e 'pages'/'totalPages'; o resolver de envelope unifica).
type Meta struct {
	Total      int `json:"total"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"totalPages"`
}

// DefaultMeta é a metadata usada quando o backend não envia paginação.
func DefaultMeta() Meta {
	return Meta{Total: 0, Page: 1, Limit: 10, TotalPages: 1}
}

// PaginatedProducts é a resposta paginada estável exposta aos consumidores.
type PaginatedProducts struct {
	Products []Product `json:"products"`
	Meta     Meta      `json:"meta"`
}
