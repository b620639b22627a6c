package entity

import "github.com/shopspring/decimal"

// DefaultCurrency es la moneda usada cuando el producto no define una.
const DefaultCurrency = "CNY"

// Product representa un producto o SKU del inventario.
// El stock no se guarda aquí: se deriva de los registros de entrada y salida.
type Product struct {
	ID        string          `json:"id"`
	SKU       string          `json:"sku"`
	Name      string          `json:"name"`
	Spec      string          `json:"spec"` // presentación: "24x500ml", etc.
	Unit      string          `json:"unit"`
	Price     decimal.Decimal `json:"price"` // precio de venta por defecto
	Currency  string          `json:"currency"`
	SafeStock decimal.Decimal `json:"safeStock"` // umbral de stock mínimo
	Note      string          `json:"note"`
}
