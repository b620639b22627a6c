// Package report contiene el agregador de reportes mensuales por cliente.
// El reporte es una estructura calculada sin efectos persistentes: se
// recalcula en cada invocación porque los registros subyacentes pueden
// haber cambiado (por ejemplo, un cambio de estado de pago).
package report

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jiajian124-sketch/HAILANG/internal/application/dto"
	"github.com/jiajian124-sketch/HAILANG/internal/domain"
	"github.com/jiajian124-sketch/HAILANG/internal/domain/entity"
)

// Source es lo que el agregador necesita del repositorio: el documento y la
// resolución de nombres (que degrada a "" ante referencias colgantes).
type Source interface {
	Snapshot() *entity.Snapshot
	CustomerName(id string) string
	ProductName(id string) string
}

// UseCase genera el reporte mensual de un cliente.
type UseCase struct {
	src Source
}

// New construye el caso de uso.
func New(src Source) *UseCase {
	return &UseCase{src: src}
}

// Monthly construye el reporte del cliente y mes (AAAA-MM) indicados.
//
//  1. Filtra las salidas cuyo cliente coincide y cuya fecha cae en el mes.
//  2. Resumen: cantidad total e importe total.
//  3. Desglose por producto, en orden de primera aparición dentro del filtro.
//  4. Detalle ordenado por fecha ascendente; fechas iguales conservan su
//     orden relativo original (orden estable).
//
// Sin cliente o sin mes devuelve ErrNoSelection, no un reporte vacío.
func (uc *UseCase) Monthly(customerID, month string) (*dto.MonthlyReportDTO, error) {
	if customerID == "" || month == "" {
		return nil, domain.ErrNoSelection
	}

	snap := uc.src.Snapshot()
	var records []entity.OutboundRecord
	for _, r := range snap.OutboundRecords {
		if r.CustomerID == customerID && entity.MonthOf(r.Date) == month {
			records = append(records, r)
		}
	}

	rep := &dto.MonthlyReportDTO{
		CustomerID:   customerID,
		CustomerName: uc.src.CustomerName(customerID),
		Month:        month,
		TotalQty:     decimal.Zero,
		TotalAmount:  decimal.Zero,
	}

	// Desglose por producto con orden de inserción en la agrupación.
	byProduct := map[string]int{}
	for _, r := range records {
		rep.TotalQty = rep.TotalQty.Add(r.Qty)
		rep.TotalAmount = rep.TotalAmount.Add(r.Amount)

		i, seen := byProduct[r.ProductID]
		if !seen {
			i = len(rep.Products)
			byProduct[r.ProductID] = i
			rep.Products = append(rep.Products, dto.ProductBreakdownDTO{
				ProductID:   r.ProductID,
				ProductName: uc.src.ProductName(r.ProductID),
				Qty:         decimal.Zero,
				Amount:      decimal.Zero,
			})
		}
		rep.Products[i].Qty = rep.Products[i].Qty.Add(r.Qty)
		rep.Products[i].Amount = rep.Products[i].Amount.Add(r.Amount)
	}

	sort.SliceStable(records, func(i, j int) bool { return records[i].Date < records[j].Date })
	for _, r := range records {
		rep.Details = append(rep.Details, dto.ReportDetailDTO{
			RecordID:      r.ID,
			Date:          r.Date,
			ProductID:     r.ProductID,
			ProductName:   uc.src.ProductName(r.ProductID),
			Qty:           r.Qty,
			Price:         r.Price,
			Amount:        r.Amount,
			Currency:      r.Currency,
			PaymentStatus: r.PaymentStatus,
			Note:          r.Note,
			HasImage:      r.ImageData != "",
		})
	}
	return rep, nil
}
