package entity

import "github.com/shopspring/decimal"

// InboundRecord representa una entrada de inventario (recepción de mercancía).
// Es inmutable una vez creada: solo se permite borrarla por ID.
// Price y Currency son una foto del producto en el momento de la creación.
type InboundRecord struct {
	ID         string          `json:"id"`
	Date       string          `json:"date"`       // AAAA-MM-DD
	CustomerID string          `json:"customerId"` // opcional: proveedor/cliente de origen
	ProductID  string          `json:"productId"`
	Qty        decimal.Decimal `json:"qty"`
	Price      decimal.Decimal `json:"price"`
	Amount     decimal.Decimal `json:"amount"` // siempre Qty * Price
	Currency   string          `json:"currency"`
	Note       string          `json:"note"`
}
