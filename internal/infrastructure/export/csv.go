// Package export produce las salidas de datos del sistema: las cuatro
// tablas CSV, el libro XLSX, el respaldo JSON y el PDF del reporte mensual.
// No muta nada: trabaja sobre copias del documento.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jiajian124-sketch/HAILANG/internal/application/dto"
	"github.com/jiajian124-sketch/HAILANG/internal/domain/entity"
)

// Source es lo que los exports necesitan del repositorio: el documento, la
// vista de inventario derivada y la resolución de nombres (que degrada a ""
// ante referencias colgantes, nunca a un error).
type Source interface {
	Snapshot() *entity.Snapshot
	StockRows() []dto.StockRowDTO
	CustomerName(id string) string
	ProductName(id string) string
}

// CustomersCSV exporta la tabla de clientes.
func CustomersCSV(src Source) ([]byte, error) {
	return writeCSV(customerRows(src))
}

// InventoryCSV exporta la foto de inventario: stock derivado y clasificación
// por producto.
func InventoryCSV(src Source) ([]byte, error) {
	return writeCSV(inventoryRows(src))
}

// InboundCSV exporta el detalle de entradas.
func InboundCSV(src Source) ([]byte, error) {
	return writeCSV(inboundRows(src))
}

// OutboundCSV exporta el detalle de salidas.
func OutboundCSV(src Source) ([]byte, error) {
	return writeCSV(outboundRows(src))
}

// ── Filas compartidas entre CSV y XLSX ────────────────────────────────────────

func customerRows(src Source) [][]string {
	rows := [][]string{{"Cliente", "Teléfono", "Teléfono conductor", "Dirección", "Notas"}}
	for _, c := range src.Snapshot().Customers {
		rows = append(rows, []string{c.Name, c.Phone, c.DriverPhone, c.Address, c.Note})
	}
	return rows
}

func inventoryRows(src Source) [][]string {
	rows := [][]string{{
		"SKU", "Producto", "Especificación", "Unidad", "Precio", "Moneda",
		"Stock actual", "Stock mínimo", "Estado", "Notas",
	}}
	for _, r := range src.StockRows() {
		rows = append(rows, []string{
			r.SKU, r.Product, r.Spec, r.Unit,
			num(r.Price), r.Currency,
			num(r.Stock), num(r.SafeStock),
			r.StatusLabel, r.Note,
		})
	}
	return rows
}

func inboundRows(src Source) [][]string {
	rows := [][]string{{"Fecha", "Proveedor/Cliente", "Producto", "Cantidad", "Notas"}}
	for _, r := range src.Snapshot().InboundRecords {
		rows = append(rows, []string{
			r.Date,
			src.CustomerName(r.CustomerID),
			src.ProductName(r.ProductID),
			num(r.Qty),
			r.Note,
		})
	}
	return rows
}

func outboundRows(src Source) [][]string {
	rows := [][]string{{
		"Fecha", "Cliente", "Producto", "Cantidad", "Precio", "Importe",
		"Moneda", "Estado de pago", "Notas",
	}}
	for _, r := range src.Snapshot().OutboundRecords {
		rows = append(rows, []string{
			r.Date,
			src.CustomerName(r.CustomerID),
			src.ProductName(r.ProductID),
			num(r.Qty), num(r.Price), num(r.Amount),
			r.Currency,
			entity.PaymentStatusLabel(r.PaymentStatus),
			r.Note,
		})
	}
	return rows
}

// num formatea celdas numéricas siempre con dos decimales.
func num(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// writeCSV serializa las filas en UTF-8 con BOM inicial, para que las hojas
// de cálculo detecten la codificación. Las celdas con coma, comilla o salto
// de línea van entre comillas dobles, con las comillas internas duplicadas.
func writeCSV(rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("\uFEFF")
	w := csv.NewWriter(&buf)
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("export: escribir fila CSV: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("export: volcar CSV: %w", err)
	}
	return buf.Bytes(), nil
}
