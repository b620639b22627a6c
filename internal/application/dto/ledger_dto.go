package dto

import "github.com/shopspring/decimal"

// CustomerInput campos del formulario de cliente. ID vacío crea uno nuevo;
// ID existente reemplaza la entrada conservando su posición.
type CustomerInput struct {
	ID          string
	Name        string
	Phone       string
	DriverPhone string
	Address     string
	Note        string
}

// ProductInput campos del formulario de producto.
type ProductInput struct {
	ID        string
	SKU       string
	Name      string
	Spec      string
	Unit      string
	Price     decimal.Decimal
	Currency  string
	SafeStock decimal.Decimal
	Note      string
}

// InboundInput campos para registrar una entrada. Precio y moneda no se
// reciben: se toman del producto referenciado en el momento del registro.
type InboundInput struct {
	Date       string
	CustomerID string // opcional
	ProductID  string
	Qty        decimal.Decimal
	Note       string
}

// OutboundInput campos para registrar o editar una salida. El importe nunca
// se recibe: siempre se recalcula como Qty * Price.
type OutboundInput struct {
	Date          string
	CustomerID    string
	ProductID     string
	Qty           decimal.Decimal
	Price         decimal.Decimal
	Currency      string // vacío: se infiere del producto
	PaymentStatus string // vacío: unpaid
	Note          string
	ImageData     string // base64; vacío al editar conserva el existente
}
