package export_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jiajian124-sketch/HAILANG/internal/infrastructure/export"
)

func TestWorkbook_CuatroHojas(t *testing.T) {
	wb, err := export.Workbook(fixture())
	require.NoError(t, err)
	defer wb.Close()

	assert.Equal(t, []string{"Clientes", "Inventario", "Entradas", "Salidas"}, wb.GetSheetList())
}

func TestWorkbook_ContenidoDeHojas(t *testing.T) {
	wb, err := export.Workbook(fixture())
	require.NoError(t, err)
	defer wb.Close()

	// Encabezado y primera fila de datos de cada hoja.
	nombre, err := wb.GetCellValue("Clientes", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Cliente", nombre)

	cliente, err := wb.GetCellValue("Clientes", "A2")
	require.NoError(t, err)
	assert.Equal(t, "Cliente Uno", cliente)

	precio, err := wb.GetCellValue("Inventario", "E2")
	require.NoError(t, err)
	assert.Equal(t, "12.50", precio)

	fecha, err := wb.GetCellValue("Entradas", "A2")
	require.NoError(t, err)
	assert.Equal(t, "2025-03-01", fecha)

	pago, err := wb.GetCellValue("Salidas", "H2")
	require.NoError(t, err)
	assert.Equal(t, "Pagado", pago)
}
