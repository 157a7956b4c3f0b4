package domain

// OrderStatus acompanha o ciclo de vida de um pedido no backend.
type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderProcessing OrderStatus = "processing"
	OrderShipped    OrderStatus = "shipped"
	OrderDelivered  OrderStatus = "delivered"
	OrderCancelled  OrderStatus = "cancelled"
)

// ShippingAddress é o endereço de entrega enviado no checkout.
type ShippingAddress struct {
	FullName string `json:"fullName"`
	Street   string `json:"street"`
	City     string `json:"city"`
	Zip      string `json:"zip"`
	Country  string `json:"country"`
}

// Order é um pedido criado a partir do snapshot do carrinho no checkout.
// Diferente do Product, o endpoint de pedidos sempre usou o vocabulário
// atual, então o unmarshal direto por tags é suficiente.
type Order struct {
	ID              string          `json:"id"`
	UserID          string          `json:"userId"`
	Items           []CartItem      `json:"items"`
	Total           float64         `json:"total"`
	Status          OrderStatus     `json:"status"`
	CreatedAt       string          `json:"createdAt"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
	PaymentMethod   string          `json:"paymentMethod"`
}
