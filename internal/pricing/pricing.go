// Package pricing holds the pure price math shared by the offer and product
// services: discount percentages, best-offer selection and price statistics.
package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/Omar25092001/Backend-Ofertas/internal/model"
)

var cien = decimal.NewFromInt(100)

// Descuento returns the discount percentage of an offer rounded to one
// decimal place, or nil when no original price exists or it is not strictly
// positive. The value is not clamped: an offer priced above its original
// yields a negative discount.
func Descuento(original *decimal.Decimal, oferta decimal.Decimal) *float64 {
	if original == nil || !original.IsPositive() {
		return nil
	}
	d, _ := decimal.NewFromInt(1).
		Sub(oferta.Div(*original)).
		Mul(cien).
		Round(1).
		Float64()
	return &d
}

// DescuentoEntero is the integer variant used in best-price projections.
func DescuentoEntero(original *decimal.Decimal, oferta decimal.Decimal) *int64 {
	if original == nil || !original.IsPositive() {
		return nil
	}
	n := decimal.NewFromInt(1).
		Sub(oferta.Div(*original)).
		Mul(cien).
		Round(0).
		IntPart()
	return &n
}

// MejorOferta picks the valid offer with the lowest price. Ties keep the
// first offer encountered, so callers that pre-sort control the tie-break.
// Returns nil when no valid offer exists.
func MejorOferta(ofertas []model.Oferta) *model.Oferta {
	var mejor *model.Oferta
	for i := range ofertas {
		o := &ofertas[i]
		if !o.Valida {
			continue
		}
		if mejor == nil || o.PrecioOferta.LessThan(mejor.PrecioOferta) {
			mejor = o
		}
	}
	return mejor
}

// Estadisticas summarizes the valid offers of a set: min, max, average
// rounded to two decimals, and the min-to-max spread as an integer
// percentage of the minimum. The spread is nil when the minimum is not
// strictly positive.
type Estadisticas struct {
	PrecioMinimo         decimal.Decimal
	PrecioMaximo         decimal.Decimal
	PrecioPromedio       decimal.Decimal
	DiferenciaPorcentaje *int64
	TotalOfertasValidas  int
}

// Calcular computes the statistics for a set of offers. Returns false when
// the set has no valid offers.
func Calcular(ofertas []model.Oferta) (Estadisticas, bool) {
	var (
		stats Estadisticas
		suma  decimal.Decimal
	)
	for i := range ofertas {
		o := &ofertas[i]
		if !o.Valida {
			continue
		}
		p := o.PrecioOferta
		if stats.TotalOfertasValidas == 0 {
			stats.PrecioMinimo = p
			stats.PrecioMaximo = p
		} else {
			if p.LessThan(stats.PrecioMinimo) {
				stats.PrecioMinimo = p
			}
			if p.GreaterThan(stats.PrecioMaximo) {
				stats.PrecioMaximo = p
			}
		}
		suma = suma.Add(p)
		stats.TotalOfertasValidas++
	}
	if stats.TotalOfertasValidas == 0 {
		return Estadisticas{}, false
	}
	stats.PrecioPromedio = suma.
		Div(decimal.NewFromInt(int64(stats.TotalOfertasValidas))).
		Round(2)
	if stats.PrecioMinimo.IsPositive() {
		n := stats.PrecioMaximo.
			Sub(stats.PrecioMinimo).
			Div(stats.PrecioMinimo).
			Mul(cien).
			Round(0).
			IntPart()
		stats.DiferenciaPorcentaje = &n
	}
	return stats, true
}
