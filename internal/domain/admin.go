package domain

// ProductKey é uma chave de licença digital do inventário (back-office).
type ProductKey struct {
	ID        string `json:"id"`
	ProductID string `json:"productId"`
	Key       string `json:"key"`
	Used      bool   `json:"used"`
	CreatedAt string `json:"createdAt,omitempty"`
}

// DashboardStats agrega os números exibidos no painel administrativo.
type DashboardStats struct {
	TotalSales    float64 `json:"totalSales"`
	TotalOrders   int     `json:"totalOrders"`
	TotalProducts int     `json:"totalProducts"`
	TotalUsers    int     `json:"totalUsers"`
}

// SalesPoint é um ponto da série temporal do gráfico de vendas.
type SalesPoint struct {
	Date  string  `json:"date"`
	Sales float64 `json:"sales"`
}

// TopProduct é uma linha do ranking de produtos mais vendidos.
type TopProduct struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Sold      int     `json:"sold"`
	Revenue   float64 `json:"revenue"`
}
