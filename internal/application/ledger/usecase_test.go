package ledger_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jiajian124-sketch/HAILANG/internal/application/dto"
	"github.com/jiajian124-sketch/HAILANG/internal/application/ledger"
	"github.com/jiajian124-sketch/HAILANG/internal/domain"
	"github.com/jiajian124-sketch/HAILANG/internal/domain/entity"
)

// fakeStore guarda en memoria y cuenta las escrituras, para verificar que
// cada mutación persiste (y que las operaciones rechazadas no lo hacen).
type fakeStore struct {
	initial *entity.Snapshot
	saved   *entity.Snapshot
	saves   int
}

func (s *fakeStore) Load() (*entity.Snapshot, error) {
	if s.initial != nil {
		return s.initial.Clone(), nil
	}
	return entity.NewSnapshot(), nil
}

func (s *fakeStore) Save(snap *entity.Snapshot) error {
	s.saves++
	s.saved = snap.Clone()
	return nil
}

func newUseCase(t *testing.T) (*ledger.UseCase, *fakeStore) {
	t.Helper()
	store := &fakeStore{}
	uc, err := ledger.New(store)
	require.NoError(t, err)
	return uc, store
}

func d(v string) decimal.Decimal {
	dec, err := decimal.NewFromString(v)
	if err != nil {
		panic(err)
	}
	return dec
}

// addProduct registra un producto de prueba y devuelve su ID.
func addProduct(t *testing.T, uc *ledger.UseCase, name, price, currency, safeStock string) string {
	t.Helper()
	p, err := uc.UpsertProduct(dto.ProductInput{
		Name: name, Price: d(price), Currency: currency, SafeStock: d(safeStock),
	})
	require.NoError(t, err)
	return p.ID
}

func addCustomer(t *testing.T, uc *ledger.UseCase, name string) string {
	t.Helper()
	c, err := uc.UpsertCustomer(dto.CustomerInput{Name: name})
	require.NoError(t, err)
	return c.ID
}

// ── Clientes y productos ──────────────────────────────────────────────────────

func TestUpsertCustomer_NombreVacioRechazado(t *testing.T) {
	uc, store := newUseCase(t)

	_, err := uc.UpsertCustomer(dto.CustomerInput{Phone: "123"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, uc.Snapshot().Customers, "una operación rechazada no muta el estado")
	assert.Zero(t, store.saves, "una operación rechazada no persiste")
}

func TestUpsertCustomer_Idempotente(t *testing.T) {
	uc, _ := newUseCase(t)

	c, err := uc.UpsertCustomer(dto.CustomerInput{Name: "Mayorista Norte", Phone: "311"})
	require.NoError(t, err)

	// Mismo ID y mismos campos: la colección no crece ni cambia.
	_, err = uc.UpsertCustomer(dto.CustomerInput{ID: c.ID, Name: "Mayorista Norte", Phone: "311"})
	require.NoError(t, err)

	customers := uc.Snapshot().Customers
	require.Len(t, customers, 1)
	assert.Equal(t, *c, customers[0])
}

func TestUpsertCustomer_EditarConservaPosicion(t *testing.T) {
	uc, _ := newUseCase(t)

	idA := addCustomer(t, uc, "A")
	addCustomer(t, uc, "B")

	_, err := uc.UpsertCustomer(dto.CustomerInput{ID: idA, Name: "A editado"})
	require.NoError(t, err)

	customers := uc.Snapshot().Customers
	require.Len(t, customers, 2)
	assert.Equal(t, "A editado", customers[0].Name, "editar reemplaza en sitio, no reordena")
	assert.Equal(t, "B", customers[1].Name)
}

func TestUpsertProduct_Defaults(t *testing.T) {
	uc, _ := newUseCase(t)

	p, err := uc.UpsertProduct(dto.ProductInput{Name: "Caja 500ml"})
	require.NoError(t, err)
	assert.Equal(t, "CNY", p.Currency, "sin moneda explícita queda CNY")
	assert.True(t, p.Price.IsZero())
	assert.NotEmpty(t, p.ID)
}

func TestUpsertProduct_PrecioNegativoRechazado(t *testing.T) {
	uc, _ := newUseCase(t)

	_, err := uc.UpsertProduct(dto.ProductInput{Name: "X", Price: d("-1")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ── Entradas ──────────────────────────────────────────────────────────────────

func TestAddInbound_FotografiaPrecioDelProducto(t *testing.T) {
	uc, store := newUseCase(t)
	productID := addProduct(t, uc, "Botella", "12.50", "USD", "0")
	saves := store.saves

	r, err := uc.AddInbound(dto.InboundInput{Date: "2025-03-01", ProductID: productID, Qty: d("4")})
	require.NoError(t, err)

	assert.True(t, d("12.50").Equal(r.Price), "el precio se fotografía del producto")
	assert.Equal(t, "USD", r.Currency)
	assert.True(t, d("50").Equal(r.Amount), "amount = qty * price")
	assert.Equal(t, saves+1, store.saves, "la mutación persiste antes de retornar")

	// El precio del producto puede cambiar después sin afectar el registro.
	_, err = uc.UpsertProduct(dto.ProductInput{ID: productID, Name: "Botella", Price: d("99")})
	require.NoError(t, err)
	assert.True(t, d("12.50").Equal(uc.Snapshot().InboundRecords[0].Price))
}

func TestAddInbound_ProductoColganteTolerado(t *testing.T) {
	uc, _ := newUseCase(t)

	r, err := uc.AddInbound(dto.InboundInput{Date: "2025-03-01", ProductID: "no-existe", Qty: d("2")})
	require.NoError(t, err, "una referencia colgante no es error")
	assert.True(t, r.Price.IsZero())
	assert.Equal(t, "CNY", r.Currency)
}

func TestAddInbound_Validacion(t *testing.T) {
	uc, _ := newUseCase(t)
	productID := addProduct(t, uc, "P", "1", "", "0")

	cases := []struct {
		name string
		in   dto.InboundInput
		want error
	}{
		{"sin fecha", dto.InboundInput{ProductID: productID, Qty: d("1")}, domain.ErrInvalidDate},
		{"fecha mal formada", dto.InboundInput{Date: "01/03/2025", ProductID: productID, Qty: d("1")}, domain.ErrInvalidDate},
		{"sin producto", dto.InboundInput{Date: "2025-03-01", Qty: d("1")}, domain.ErrInvalidInput},
		{"cantidad cero", dto.InboundInput{Date: "2025-03-01", ProductID: productID}, domain.ErrInvalidInput},
		{"cantidad negativa", dto.InboundInput{Date: "2025-03-01", ProductID: productID, Qty: d("-3")}, domain.ErrInvalidInput},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.AddInbound(tc.in)
			assert.ErrorIs(t, err, tc.want)
		})
	}
	assert.Empty(t, uc.Snapshot().InboundRecords)
}

func TestDeleteInbound_IDInexistenteEsNoOp(t *testing.T) {
	uc, store := newUseCase(t)
	saves := store.saves

	require.NoError(t, uc.DeleteInbound("no-existe"))
	assert.Equal(t, saves, store.saves, "un no-op no reescribe el documento")
}

func TestListInbound_FiltraPorMesYOrdenaPorFecha(t *testing.T) {
	uc, _ := newUseCase(t)
	productID := addProduct(t, uc, "P", "1", "", "0")

	for _, date := range []string{"2025-03-20", "2025-03-05", "2025-04-01", "2025-03-05"} {
		_, err := uc.AddInbound(dto.InboundInput{Date: date, ProductID: productID, Qty: d("1")})
		require.NoError(t, err)
	}

	list := uc.ListInbound("2025-03")
	require.Len(t, list, 3)
	assert.Equal(t, []string{"2025-03-05", "2025-03-05", "2025-03-20"},
		[]string{list[0].Date, list[1].Date, list[2].Date})
}

// ── Salidas ───────────────────────────────────────────────────────────────────

func TestAddOutbound_ImporteSiempreRecalculado(t *testing.T) {
	uc, _ := newUseCase(t)
	customerID := addCustomer(t, uc, "Cliente")
	productID := addProduct(t, uc, "P", "1", "", "0")

	r, err := uc.AddOrUpdateOutbound(dto.OutboundInput{
		Date: "2025-03-10", CustomerID: customerID, ProductID: productID,
		Qty: d("3"), Price: d("50"),
	}, "")
	require.NoError(t, err)
	assert.Equal(t, "150.00", r.Amount.StringFixed(2), "amount = 3 * 50, venga lo que venga en el formulario")
	assert.Equal(t, entity.PaymentUnpaid, r.PaymentStatus, "estado por defecto")
}

func TestAddOutbound_MonedaInferidaDelProducto(t *testing.T) {
	uc, _ := newUseCase(t)
	customerID := addCustomer(t, uc, "Cliente")
	productID := addProduct(t, uc, "P", "1", "EUR", "0")

	r, err := uc.AddOrUpdateOutbound(dto.OutboundInput{
		Date: "2025-03-10", CustomerID: customerID, ProductID: productID, Qty: d("1"), Price: d("2"),
	}, "")
	require.NoError(t, err)
	assert.Equal(t, "EUR", r.Currency)

	r2, err := uc.AddOrUpdateOutbound(dto.OutboundInput{
		Date: "2025-03-10", CustomerID: customerID, ProductID: "colgante", Qty: d("1"), Price: d("2"),
	}, "")
	require.NoError(t, err)
	assert.Equal(t, "CNY", r2.Currency, "producto colgante degrada a CNY")
}

func TestEditOutbound_ConservaIDImagenYPosicion(t *testing.T) {
	uc, _ := newUseCase(t)
	customerID := addCustomer(t, uc, "Cliente")
	productID := addProduct(t, uc, "P", "1", "", "0")

	first, err := uc.AddOrUpdateOutbound(dto.OutboundInput{
		Date: "2025-03-10", CustomerID: customerID, ProductID: productID,
		Qty: d("3"), Price: d("50"), ImageData: "aW1hZ2Vu",
	}, "")
	require.NoError(t, err)
	_, err = uc.AddOrUpdateOutbound(dto.OutboundInput{
		Date: "2025-03-11", CustomerID: customerID, ProductID: productID, Qty: d("1"), Price: d("1"),
	}, "")
	require.NoError(t, err)

	// Edición sin imagen nueva: conserva ID, comprobante y posición.
	edited, err := uc.AddOrUpdateOutbound(dto.OutboundInput{
		Date: "2025-03-12", CustomerID: customerID, ProductID: productID,
		Qty: d("5"), Price: d("40"),
	}, first.ID)
	require.NoError(t, err)

	assert.Equal(t, first.ID, edited.ID)
	assert.Equal(t, "aW1hZ2Vu", edited.ImageData, "sin imagen nueva se conserva la guardada")

	records := uc.Snapshot().OutboundRecords
	require.Len(t, records, 2)
	assert.Equal(t, first.ID, records[0].ID, "la edición no reordena")
	assert.Equal(t, "200.00", records[0].Amount.StringFixed(2))

	// Con imagen nueva, se reemplaza.
	edited, err = uc.AddOrUpdateOutbound(dto.OutboundInput{
		Date: "2025-03-12", CustomerID: customerID, ProductID: productID,
		Qty: d("5"), Price: d("40"), ImageData: "bnVldmE=",
	}, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "bnVldmE=", edited.ImageData)
}

func TestEditOutbound_IDDesconocidoAgregaNuevo(t *testing.T) {
	uc, _ := newUseCase(t)
	customerID := addCustomer(t, uc, "Cliente")
	productID := addProduct(t, uc, "P", "1", "", "0")

	r, err := uc.AddOrUpdateOutbound(dto.OutboundInput{
		Date: "2025-03-10", CustomerID: customerID, ProductID: productID, Qty: d("1"), Price: d("1"),
	}, "id-que-no-existe")
	require.NoError(t, err)
	assert.NotEqual(t, "id-que-no-existe", r.ID, "un editingID sin coincidencia agrega con ID nuevo")
	assert.Len(t, uc.Snapshot().OutboundRecords, 1)
}

func TestAddOutbound_Validacion(t *testing.T) {
	uc, _ := newUseCase(t)
	customerID := addCustomer(t, uc, "Cliente")
	productID := addProduct(t, uc, "P", "1", "", "0")

	base := dto.OutboundInput{Date: "2025-03-10", CustomerID: customerID, ProductID: productID, Qty: d("1"), Price: d("1")}

	noCustomer := base
	noCustomer.CustomerID = ""
	_, err := uc.AddOrUpdateOutbound(noCustomer, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	zeroQty := base
	zeroQty.Qty = decimal.Zero
	_, err = uc.AddOrUpdateOutbound(zeroQty, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	badStatus := base
	badStatus.PaymentStatus = "maybe"
	_, err = uc.AddOrUpdateOutbound(badStatus, "")
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)

	assert.Empty(t, uc.Snapshot().OutboundRecords)
}

func TestUpdatePaymentStatus(t *testing.T) {
	uc, _ := newUseCase(t)
	customerID := addCustomer(t, uc, "Cliente")
	productID := addProduct(t, uc, "P", "1", "", "0")
	r, err := uc.AddOrUpdateOutbound(dto.OutboundInput{
		Date: "2025-03-10", CustomerID: customerID, ProductID: productID, Qty: d("1"), Price: d("1"),
	}, "")
	require.NoError(t, err)

	require.NoError(t, uc.UpdatePaymentStatus(r.ID, entity.PaymentPaid))
	assert.Equal(t, entity.PaymentPaid, uc.Snapshot().OutboundRecords[0].PaymentStatus)

	assert.ErrorIs(t, uc.UpdatePaymentStatus(r.ID, "otro"), domain.ErrInvalidStatus)
	assert.ErrorIs(t, uc.UpdatePaymentStatus("no-existe", entity.PaymentPaid), domain.ErrNotFound)
}

// ── Documento completo ────────────────────────────────────────────────────────

func TestReplaceAll_RoundTrip(t *testing.T) {
	uc, _ := newUseCase(t)
	customerID := addCustomer(t, uc, "Cliente")
	productID := addProduct(t, uc, "P", "7.25", "USD", "10")
	_, err := uc.AddInbound(dto.InboundInput{Date: "2025-03-01", ProductID: productID, Qty: d("8")})
	require.NoError(t, err)
	_, err = uc.AddOrUpdateOutbound(dto.OutboundInput{
		Date: "2025-03-02", CustomerID: customerID, ProductID: productID, Qty: d("3"), Price: d("9"),
	}, "")
	require.NoError(t, err)

	before := uc.Snapshot()
	require.NoError(t, uc.ReplaceAll(before))
	assert.Equal(t, before, uc.Snapshot(), "restaurar el propio snapshot deja el estado idéntico")
}

func TestReplaceAll_DocumentoIncompletoRechazado(t *testing.T) {
	uc, store := newUseCase(t)
	addCustomer(t, uc, "Cliente")
	saves := store.saves

	incomplete := &entity.Snapshot{
		Customers: []entity.Customer{},
		Products:  []entity.Product{},
		// faltan las colecciones de registros
	}
	err := uc.ReplaceAll(incomplete)
	assert.ErrorIs(t, err, domain.ErrInvalidBackup)
	assert.Len(t, uc.Snapshot().Customers, 1, "el rechazo no muta el estado")
	assert.Equal(t, saves, store.saves)

	assert.True(t, errors.Is(uc.ReplaceAll(nil), domain.ErrInvalidBackup))
}

func TestSnapshot_EsCopiaProfunda(t *testing.T) {
	uc, _ := newUseCase(t)
	addCustomer(t, uc, "Original")

	snap := uc.Snapshot()
	snap.Customers[0].Name = "Mutado"

	assert.Equal(t, "Original", uc.Snapshot().Customers[0].Name)
}

// ── Resolución referencial ────────────────────────────────────────────────────

func TestResolucionReferencial(t *testing.T) {
	uc, _ := newUseCase(t)
	customerID := addCustomer(t, uc, "Cliente Uno")
	productID := addProduct(t, uc, "Prod Uno", "1", "EUR", "0")

	assert.Equal(t, "Cliente Uno", uc.CustomerName(customerID))
	assert.Equal(t, "Prod Uno", uc.ProductName(productID))
	assert.Equal(t, "EUR", uc.InferCurrency(productID))

	// Referencias vacías o colgantes degradan, nunca fallan.
	assert.Equal(t, "", uc.CustomerName(""))
	assert.Equal(t, "", uc.CustomerName("colgante"))
	assert.Equal(t, "", uc.ProductName("colgante"))
	assert.Equal(t, "CNY", uc.InferCurrency("colgante"))
}

// ── Vista de inventario ───────────────────────────────────────────────────────

func TestStockRows(t *testing.T) {
	uc, _ := newUseCase(t)
	customerID := addCustomer(t, uc, "Cliente")
	productID := addProduct(t, uc, "P", "1", "", "10")

	_, err := uc.AddInbound(dto.InboundInput{Date: "2025-03-01", ProductID: productID, Qty: d("8")})
	require.NoError(t, err)
	_, err = uc.AddOrUpdateOutbound(dto.OutboundInput{
		Date: "2025-03-02", CustomerID: customerID, ProductID: productID, Qty: d("3"), Price: d("1"),
	}, "")
	require.NoError(t, err)

	rows := uc.StockRows()
	require.Len(t, rows, 1)
	assert.Equal(t, "5.00", rows[0].Stock.StringFixed(2))
	assert.Equal(t, "Bajo stock mínimo", rows[0].StatusLabel)
}
