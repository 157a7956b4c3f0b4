package adapter

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gostorefront/internal/domain"
)

// TestResolveList_Success_BareArray testa o envelope de array puro.
func TestResolveList_Success_BareArray(t *testing.T) {
	raw := json.RawMessage(`[{"nombre":"A"},{"nombre":"B"}]`)

	env := ResolveList(raw)

	assert.Len(t, env.Items, 2)
	assert.Equal(t, 2, env.Meta.Total)
	assert.Equal(t, 1, env.Meta.Page)
	assert.Equal(t, 1, env.Meta.TotalPages)
}

// TestResolveList_Success_DataWithPagination testa {data:[...]} com a
// paginação sob 'pagination' e a chave legada 'pages'.
func TestResolveList_Success_DataWithPagination(t *testing.T) {
	raw := json.RawMessage(`{
		"data": [{"nombre":"A"},{"nombre":"B"}],
		"pagination": {"total": 42, "page": 2, "limit": 2, "pages": 21}
	}`)

	env := ResolveList(raw)

	assert.Len(t, env.Items, 2)
	assert.Equal(t, domain.Meta{Total: 42, Page: 2, Limit: 2, TotalPages: 21}, env.Meta)
}

// TestResolveList_Success_DataWithMetaKey testa {data:[...]} com a
// paginação sob 'meta' e a chave 'totalPages'.
func TestResolveList_Success_DataWithMetaKey(t *testing.T) {
	raw := json.RawMessage(`{
		"data": [{"nombre":"A"},{"nombre":"B"}],
		"meta": {"total": 42, "page": 2, "limit": 2, "totalPages": 21}
	}`)

	env := ResolveList(raw)

	assert.Len(t, env.Items, 2)
	assert.Equal(t, domain.Meta{Total: 42, Page: 2, Limit: 2, TotalPages: 21}, env.Meta)
}

// TestResolveList_Success_ProductsShape testa o formato já normalizado
// {products:[...], meta}.
func TestResolveList_Success_ProductsShape(t *testing.T) {
	raw := json.RawMessage(`{
		"products": [{"nombre":"A"},{"nombre":"B"}],
		"meta": {"total": 42, "page": 2, "limit": 2, "totalPages": 21}
	}`)

	env := ResolveList(raw)

	assert.Len(t, env.Items, 2)
	assert.Equal(t, domain.Meta{Total: 42, Page: 2, Limit: 2, TotalPages: 21}, env.Meta)
}

// TestResolveList_Success_EquivalentItemsAcrossShapes garante que os três
// envelopes conhecidos produzem a mesma lista lógica de itens.
func TestResolveList_Success_EquivalentItemsAcrossShapes(t *testing.T) {
	items := `[{"nombre":"A","precio":10},{"nombre":"B","precio":20}]`
	shapes := []string{
		items,
		`{"data":` + items + `,"pagination":{"total":2,"page":1,"limit":10,"pages":1}}`,
		`{"products":` + items + `,"meta":{"total":2,"page":1,"limit":10,"totalPages":1}}`,
	}

	var first []json.RawMessage
	for i, shape := range shapes {
		env := ResolveList(json.RawMessage(shape))
		require.Len(t, env.Items, 2, "shape %d", i)
		if first == nil {
			first = env.Items
			continue
		}
		for j := range first {
			assert.JSONEq(t, string(first[j]), string(env.Items[j]), "shape %d item %d", i, j)
		}
	}
}

// TestResolveList_Success_PartialPaginationDefaults testa o default
// independente por campo quando a paginação vem incompleta.
func TestResolveList_Success_PartialPaginationDefaults(t *testing.T) {
	raw := json.RawMessage(`{"data": [], "pagination": {"total": 7}}`)

	env := ResolveList(raw)

	assert.Equal(t, domain.Meta{Total: 7, Page: 1, Limit: 10, TotalPages: 1}, env.Meta)
}

// TestResolveList_Fail_UnknownShape testa que formato desconhecido vira
// lista vazia com meta default, nunca erro.
func TestResolveList_Fail_UnknownShape(t *testing.T) {
	for _, raw := range []string{`{"foo":"bar"}`, `"texto"`, `123`, ``} {
		env := ResolveList(json.RawMessage(raw))
		assert.Empty(t, env.Items, "entrada: %s", raw)
		assert.Equal(t, domain.DefaultMeta(), env.Meta, "entrada: %s", raw)
	}
}

// TestResolveObject_Success testa o desembrulho de {data:{...}} e a
// passagem direta de objeto puro.
func TestResolveObject_Success(t *testing.T) {
	enveloped := json.RawMessage(`{"data": {"nombre": "A"}}`)
	bare := json.RawMessage(`{"nombre": "A"}`)

	assert.JSONEq(t, `{"nombre":"A"}`, string(ResolveObject(enveloped)))
	assert.JSONEq(t, `{"nombre":"A"}`, string(ResolveObject(bare)))
}
