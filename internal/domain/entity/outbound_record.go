package entity

import "github.com/shopspring/decimal"

// Estados de pago de una salida (value object conceptual).
const (
	PaymentUnpaid  = "unpaid"
	PaymentPartial = "partial"
	PaymentPaid    = "paid"
)

// ValidPaymentStatus indica si el estado pertenece al conjunto permitido.
func ValidPaymentStatus(status string) bool {
	switch status {
	case PaymentUnpaid, PaymentPartial, PaymentPaid:
		return true
	}
	return false
}

// PaymentStatusLabel devuelve la etiqueta legible del estado de pago.
// Un estado desconocido se muestra como sin pagar, igual que en los listados.
func PaymentStatusLabel(status string) string {
	switch status {
	case PaymentPaid:
		return "Pagado"
	case PaymentPartial:
		return "Pago parcial"
	default:
		return "Sin pagar"
	}
}

// OutboundRecord representa una salida de inventario (venta o despacho).
// A diferencia de las entradas, es editable en sitio conservando su ID.
// ImageData lleva el comprobante adjunto codificado en base64; al editar sin
// adjuntar uno nuevo se conserva el existente.
type OutboundRecord struct {
	ID            string          `json:"id"`
	Date          string          `json:"date"` // AAAA-MM-DD
	CustomerID    string          `json:"customerId"`
	ProductID     string          `json:"productId"`
	Qty           decimal.Decimal `json:"qty"`
	Price         decimal.Decimal `json:"price"`  // digitado por el usuario, no el del producto
	Amount        decimal.Decimal `json:"amount"` // siempre Qty * Price
	Currency      string          `json:"currency"`
	PaymentStatus string          `json:"paymentStatus"`
	Note          string          `json:"note"`
	ImageData     string          `json:"imageData"`
}
