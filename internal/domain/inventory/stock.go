// Package inventory contiene la lógica pura de stock derivado: el stock
// actual de un producto no se guarda en ninguna parte, se recalcula siempre
// a partir del historial completo de entradas y salidas.
package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/jiajian124-sketch/HAILANG/internal/domain/entity"
)

// Status clasifica el stock de un producto frente a su stock mínimo.
type Status string

const (
	StatusNormal   Status = "normal"
	StatusLow      Status = "low"      // 0 <= stock < stock mínimo
	StatusNegative Status = "negative" // stock < 0
)

// Label devuelve la etiqueta legible del estado, la misma en listados y exports.
func (s Status) Label() string {
	switch s {
	case StatusNegative:
		return "Stock negativo"
	case StatusLow:
		return "Bajo stock mínimo"
	default:
		return "Normal"
	}
}

// CurrentStock calcula el stock actual de un producto:
// suma de entradas que lo referencian menos suma de salidas.
// Puede ser negativo; se señala, no se impide.
func CurrentStock(productID string, inbound []entity.InboundRecord, outbound []entity.OutboundRecord) decimal.Decimal {
	stock := decimal.Zero
	for _, r := range inbound {
		if r.ProductID == productID {
			stock = stock.Add(r.Qty)
		}
	}
	for _, r := range outbound {
		if r.ProductID == productID {
			stock = stock.Sub(r.Qty)
		}
	}
	return stock
}

// Classify clasifica un stock frente al umbral de stock mínimo.
// Es función pura de (stock, umbral); la vista de inventario y los exports
// usan exactamente esta clasificación.
func Classify(stock, safeStock decimal.Decimal) Status {
	switch {
	case stock.IsNegative():
		return StatusNegative
	case stock.LessThan(safeStock):
		return StatusLow
	default:
		return StatusNormal
	}
}
