package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Omar25092001/Backend-Ofertas/internal/model"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func TestDescuento(t *testing.T) {
	tests := []struct {
		name     string
		original *decimal.Decimal
		oferta   string
		want     *float64
	}{
		{"sin precio original", nil, "100", nil},
		{"original cero", decPtr("0"), "100", nil},
		{"original negativo", decPtr("-10"), "100", nil},
		{"descuento exacto", decPtr("100"), "75", f64(25)},
		{"redondeo a un decimal", decPtr("3"), "2", f64(33.3)},
		{"sin descuento", decPtr("50"), "50", f64(0)},
		{"oferta mas cara que el original", decPtr("100"), "110", f64(-10)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Descuento(tt.original, dec(tt.oferta))
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.InDelta(t, *tt.want, *got, 1e-9)
		})
	}
}

func TestDescuentoEntero(t *testing.T) {
	got := DescuentoEntero(decPtr("3"), dec("2"))
	require.NotNil(t, got)
	assert.Equal(t, int64(33), *got)

	got = DescuentoEntero(decPtr("100"), dec("74.4"))
	require.NotNil(t, got)
	assert.Equal(t, int64(26), *got)

	assert.Nil(t, DescuentoEntero(nil, dec("2")))
	assert.Nil(t, DescuentoEntero(decPtr("0"), dec("2")))
}

func TestMejorOferta(t *testing.T) {
	t.Run("ignora ofertas invalidas", func(t *testing.T) {
		ofertas := []model.Oferta{
			{PrecioOferta: dec("5"), Valida: false},
			{PrecioOferta: dec("9"), Valida: true},
			{PrecioOferta: dec("7"), Valida: true},
		}
		mejor := MejorOferta(ofertas)
		require.NotNil(t, mejor)
		assert.True(t, mejor.PrecioOferta.Equal(dec("7")))
	})

	t.Run("empate conserva la primera", func(t *testing.T) {
		ofertas := []model.Oferta{
			{URLOrigen: "a", PrecioOferta: dec("7"), Valida: true},
			{URLOrigen: "b", PrecioOferta: dec("7"), Valida: true},
		}
		mejor := MejorOferta(ofertas)
		require.NotNil(t, mejor)
		assert.Equal(t, "a", mejor.URLOrigen)
	})

	t.Run("sin ofertas validas", func(t *testing.T) {
		assert.Nil(t, MejorOferta([]model.Oferta{{PrecioOferta: dec("1"), Valida: false}}))
		assert.Nil(t, MejorOferta(nil))
	})
}

func TestCalcular(t *testing.T) {
	t.Run("conjunto mixto", func(t *testing.T) {
		ofertas := []model.Oferta{
			{PrecioOferta: dec("10"), Valida: true},
			{PrecioOferta: dec("30"), Valida: true},
			{PrecioOferta: dec("20"), Valida: true},
			{PrecioOferta: dec("1"), Valida: false}, // excluded
		}
		stats, ok := Calcular(ofertas)
		require.True(t, ok)
		assert.True(t, stats.PrecioMinimo.Equal(dec("10")))
		assert.True(t, stats.PrecioMaximo.Equal(dec("30")))
		assert.True(t, stats.PrecioPromedio.Equal(dec("20")))
		require.NotNil(t, stats.DiferenciaPorcentaje)
		assert.Equal(t, int64(200), *stats.DiferenciaPorcentaje)
		assert.Equal(t, 3, stats.TotalOfertasValidas)
	})

	t.Run("promedio redondeado a dos decimales", func(t *testing.T) {
		ofertas := []model.Oferta{
			{PrecioOferta: dec("1"), Valida: true},
			{PrecioOferta: dec("2"), Valida: true},
			{PrecioOferta: dec("2"), Valida: true},
		}
		stats, ok := Calcular(ofertas)
		require.True(t, ok)
		assert.True(t, stats.PrecioPromedio.Equal(dec("1.67")))
	})

	t.Run("minimo cero omite la diferencia", func(t *testing.T) {
		ofertas := []model.Oferta{
			{PrecioOferta: dec("0"), Valida: true},
			{PrecioOferta: dec("5"), Valida: true},
		}
		stats, ok := Calcular(ofertas)
		require.True(t, ok)
		assert.Nil(t, stats.DiferenciaPorcentaje)
	})

	t.Run("sin ofertas validas", func(t *testing.T) {
		_, ok := Calcular([]model.Oferta{{PrecioOferta: dec("1"), Valida: false}})
		assert.False(t, ok)
		_, ok = Calcular(nil)
		assert.False(t, ok)
	})
}

func f64(v float64) *float64 { return &v }
