package domain

// CartItem é um item do carrinho visível ao cliente. No modo convidado o ID
// é gerado pelo próprio cliente; no modo autenticado vem do backend.
type CartItem struct {
	ID           string  `json:"id"`
	ProductID    string  `json:"productId"`
	Name         string  `json:"name"`
	Price        float64 `json:"price"`
	Quantity     int     `json:"quantity"`
	Image        string  `json:"image,omitempty"`
	PlatformName string  `json:"platformName,omitempty"`
}

// Subtotal é o valor da linha (preço x quantidade).
func (i CartItem) Subtotal() float64 {
	return i.Price * float64(i.Quantity)
}
