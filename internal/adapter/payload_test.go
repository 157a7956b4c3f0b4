package adapter

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gostorefront/internal/domain"
)

// TestProductPayload_Success_RoundTrip garante que a tradução de saída é
// bijetiva com o adaptador de entrada para os campos que ela toca: o
// payload montado para o backend, relido pelo AdaptProduct, preserva os
// valores do input.
func TestProductPayload_Success_RoundTrip(t *testing.T) {
	end := "2026-12-31"
	in := ProductInput{
		Name:               "Juego X",
		Description:        "descrição",
		Price:              59.9,
		Stock:              7,
		PlatformID:         "pl1",
		GenreID:            "g1",
		Type:               domain.TypePhysical,
		Developer:          "Studio",
		ImageURL:           "https://cdn.example.com/x.png",
		ReleaseDate:        "2025-01-01T00:00:00Z",
		DiscountPercentage: 10,
		DiscountEndDate:    &end,
	}

	payload := ProductPayload(in)
	raw, err := json.Marshal(payload)
	require.NoError(t, err)

	p, err := AdaptProduct(raw)
	require.NoError(t, err)

	assert.Equal(t, in.Name, p.Name)
	assert.Equal(t, in.Description, p.Description)
	assert.Equal(t, in.Price, p.Price)
	assert.Equal(t, in.Stock, p.Stock)
	assert.Equal(t, in.PlatformID, p.Platform.ID)
	assert.Equal(t, in.GenreID, p.Genre.ID)
	assert.Equal(t, in.Type, p.Type)
	assert.Equal(t, in.Developer, p.Developer)
	assert.Equal(t, in.ImageURL, p.ImageID)
	assert.Equal(t, in.ReleaseDate, p.ReleaseDate)
	assert.Equal(t, in.DiscountPercentage, p.DiscountPercentage)
	require.NotNil(t, p.DiscountEndDate)
	assert.Equal(t, end, *p.DiscountEndDate)
}

// TestProductPayload_Success_Defaults testa os defaults de tipo e data de
// lançamento quando o input não informa.
func TestProductPayload_Success_Defaults(t *testing.T) {
	payload := ProductPayload(ProductInput{Name: "A"})

	assert.Equal(t, string(domain.TypeDigital), payload["type"])
	assert.NotEmpty(t, payload["releaseDate"])
	assert.Equal(t, true, payload["active"])
	assert.Nil(t, payload["discountEndDate"])
}
