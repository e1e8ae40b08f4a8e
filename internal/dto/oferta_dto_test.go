package dto

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOfertaFilterToQuery(t *testing.T) {
	supermercado := uuid.New()

	t.Run("criterios validos", func(t *testing.T) {
		q := OfertaFilter{
			Supermercado: supermercado.String(),
			PrecioMin:    "10.50",
			PrecioMax:    "99.99",
			Termino:      "leche",
			Page:         2,
			Limit:        25,
		}.ToQuery()

		require.NotNil(t, q.SupermercadoID)
		assert.Equal(t, supermercado, *q.SupermercadoID)
		require.NotNil(t, q.PrecioMin)
		assert.Equal(t, "10.5", q.PrecioMin.String())
		require.NotNil(t, q.PrecioMax)
		assert.Equal(t, "leche", q.Termino)
		assert.Equal(t, 2, q.Page)
		assert.Equal(t, 25, q.Limit)
	})

	t.Run("valores malformados se descartan", func(t *testing.T) {
		q := OfertaFilter{
			Supermercado: "no-es-un-uuid",
			Producto:     "123",
			PrecioMin:    "abc",
			PrecioMax:    "12,50",
		}.ToQuery()

		assert.Nil(t, q.SupermercadoID)
		assert.Nil(t, q.ProductoID)
		assert.Nil(t, q.PrecioMin)
		assert.Nil(t, q.PrecioMax)
	})

	t.Run("validas por defecto", func(t *testing.T) {
		q := OfertaFilter{}.ToQuery()
		require.NotNil(t, q.Valida)
		assert.True(t, *q.Valida)
	})

	t.Run("validas false", func(t *testing.T) {
		q := OfertaFilter{Validas: "false"}.ToQuery()
		require.NotNil(t, q.Valida)
		assert.False(t, *q.Valida)
	})

	t.Run("validas all", func(t *testing.T) {
		q := OfertaFilter{Validas: "all"}.ToQuery()
		assert.Nil(t, q.Valida)
	})

	t.Run("validas desconocido cae al defecto", func(t *testing.T) {
		q := OfertaFilter{Validas: "maybe"}.ToQuery()
		require.NotNil(t, q.Valida)
		assert.True(t, *q.Valida)
	})
}

func TestNormalizarOrden(t *testing.T) {
	assert.Equal(t, OrdenPrecioAsc, NormalizarOrden(""))
	assert.Equal(t, OrdenPrecioAsc, NormalizarOrden("precio"))
	assert.Equal(t, OrdenPrecioAsc, NormalizarOrden("PRECIO_DESC"))
	assert.Equal(t, OrdenPrecioDesc, NormalizarOrden("precio_desc"))
	assert.Equal(t, OrdenFechaDesc, NormalizarOrden("fecha_desc"))
	assert.Equal(t, OrdenSupermercado, NormalizarOrden("supermercado"))
}

func TestClampPage(t *testing.T) {
	tests := []struct {
		name            string
		page, limit     int
		wantPage, wantL int
	}{
		{"valores normales", 3, 20, 3, 20},
		{"pagina cero", 0, 10, 1, 10},
		{"pagina negativa", -5, 10, 1, 10},
		{"limite cero", 1, 0, 1, DefaultLimit},
		{"limite excesivo", 1, 5000, 1, MaxLimit},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, limit := ClampPage(tt.page, tt.limit)
			assert.Equal(t, tt.wantPage, page)
			assert.Equal(t, tt.wantL, limit)
		})
	}
}

func TestNewPaginacion(t *testing.T) {
	p := NewPaginacion(41, 2, 10)
	assert.Equal(t, int64(41), p.Total)
	assert.Equal(t, 5, p.TotalPages)

	p = NewPaginacion(0, 1, 10)
	assert.Equal(t, 0, p.TotalPages)

	p = NewPaginacion(10, 1, 10)
	assert.Equal(t, 1, p.TotalPages)
}
