package dto

import "github.com/shopspring/decimal"

// MonthlyReportDTO resumen mensual de salidas de un cliente.
type MonthlyReportDTO struct {
	CustomerID   string
	CustomerName string
	Month        string // AAAA-MM
	TotalQty     decimal.Decimal
	TotalAmount  decimal.Decimal
	Products     []ProductBreakdownDTO // en orden de primera aparición
	Details      []ReportDetailDTO     // ordenadas por fecha ascendente
}

// ProductBreakdownDTO subtotal de un producto dentro del mes.
type ProductBreakdownDTO struct {
	ProductID   string
	ProductName string
	Qty         decimal.Decimal
	Amount      decimal.Decimal
}

// ReportDetailDTO una salida individual dentro del reporte.
type ReportDetailDTO struct {
	RecordID      string
	Date          string
	ProductID     string
	ProductName   string
	Qty           decimal.Decimal
	Price         decimal.Decimal
	Amount        decimal.Decimal
	Currency      string
	PaymentStatus string
	Note          string
	HasImage      bool
}

// StockRowDTO fila de la vista de inventario: stock derivado y clasificación.
type StockRowDTO struct {
	Product     string
	ProductID   string
	SKU         string
	Spec        string
	Unit        string
	Price       decimal.Decimal
	Currency    string
	Stock       decimal.Decimal
	SafeStock   decimal.Decimal
	StatusLabel string
	Note        string
}
