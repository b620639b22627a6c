package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// Workbook arma un libro XLSX con las mismas cuatro tablas de los CSV, una
// por hoja. El caller decide si guardarlo con SaveAs o escribirlo a un Writer.
func Workbook(src Source) (*excelize.File, error) {
	f := excelize.NewFile()

	sheets := []struct {
		name string
		rows [][]string
	}{
		{"Clientes", customerRows(src)},
		{"Inventario", inventoryRows(src)},
		{"Entradas", inboundRows(src)},
		{"Salidas", outboundRows(src)},
	}

	for i, sheet := range sheets {
		if i == 0 {
			// La primera hoja ya existe como "Sheet1"; se renombra.
			if err := f.SetSheetName("Sheet1", sheet.name); err != nil {
				return nil, fmt.Errorf("export: renombrar hoja %s: %w", sheet.name, err)
			}
		} else if _, err := f.NewSheet(sheet.name); err != nil {
			return nil, fmt.Errorf("export: crear hoja %s: %w", sheet.name, err)
		}
		if err := fillSheet(f, sheet.name, sheet.rows); err != nil {
			return nil, err
		}
	}
	return f, nil
}

func fillSheet(f *excelize.File, sheet string, rows [][]string) error {
	for ri, row := range rows {
		for ci, cell := range row {
			ref, err := excelize.CoordinatesToCellName(ci+1, ri+1)
			if err != nil {
				return fmt.Errorf("export: coordenada (%d,%d): %w", ci+1, ri+1, err)
			}
			if err := f.SetCellValue(sheet, ref, cell); err != nil {
				return fmt.Errorf("export: celda %s!%s: %w", sheet, ref, err)
			}
		}
	}
	return nil
}
