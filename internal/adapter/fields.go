package adapter

import "strconv"

// productSources é a tabela de tradução dirigida por dados entre o
// vocabulário do backend e o vocabulário estável do frontend. Cada campo
// canônico carrega a lista ordenada de nomes já observados no backend
// (vocabulário atual em inglês e o legado em espanhol); o primeiro presente
// vence. Acrescentar uma terceira forma histórica é mudança de dados,
// não de código.
var productSources = map[string][]string{
	"id":                 {"_id", "id"},
	"name":               {"name", "nombre"},
	"description":        {"description", "descripcion"},
	"price":              {"price", "precio"},
	"stock":              {"stock"},
	"image":              {"imageId", "imagenUrl", "image"},
	"platform":           {"platform", "platformId", "plataformaId"},
	"genre":              {"genre", "genreId", "generoId"},
	"type":               {"type", "tipo"},
	"developer":          {"developer", "desarrollador"},
	"rating":             {"rating", "calificacion"},
	"releaseDate":        {"releaseDate", "fechaLanzamiento"},
	"trailerUrl":         {"trailerUrl"},
	"specPreset":         {"specPreset"},
	"active":             {"active", "activo"},
	"finalPrice":         {"finalPrice"},
	"discountPercentage": {"discountPercentage"},
	"discountEndDate":    {"discountEndDate"},
}

// wrapperKeys são as chaves sob as quais respostas de wishlist/carrinho já
// chegaram com o produto aninhado um nível abaixo.
var wrapperKeys = []string{"productoId", "product"}

// pick resolve um campo canônico contra a tabela de fontes.
func pick(m map[string]interface{}, field string) interface{} {
	return pickKeys(m, productSources[field]...)
}

// pickKeys retorna o primeiro valor não-nulo entre as chaves, na ordem.
func pickKeys(m map[string]interface{}, keys ...string) interface{} {
	for _, key := range keys {
		if v, ok := m[key]; ok && v != nil {
			return v
		}
	}
	return nil
}

// --- Coerções defensivas ---
// Campo ausente, nulo ou do tipo errado vira o default, nunca um erro:
// um produto malformado não pode apagar a página inteira do catálogo.

func toString(v interface{}, def string) string {
	if s, ok := v.(string); ok {
		return s
	}
	return def
}

func toNumber(v interface{}, def float64) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	case string:
		if parsed, err := strconv.ParseFloat(n, 64); err == nil {
			return parsed
		}
	}
	return def
}

func toInt(v interface{}, def int) int {
	return int(toNumber(v, float64(def)))
}

func toBool(v interface{}, def bool) bool {
	if b, ok := v.(bool); ok {
		return b
	}
	return def
}
