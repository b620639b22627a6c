// Package ledger implementa el repositorio de entidades: las cuatro
// colecciones en memoria, su validación y la persistencia síncrona tras
// cada mutación. Ninguna operación se considera completa hasta que el
// documento quedó escrito en el Store.
package ledger

import (
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jiajian124-sketch/HAILANG/internal/application/dto"
	"github.com/jiajian124-sketch/HAILANG/internal/domain"
	"github.com/jiajian124-sketch/HAILANG/internal/domain/entity"
	"github.com/jiajian124-sketch/HAILANG/internal/domain/inventory"
)

// UseCase es el dueño único del estado en memoria. Se comparte por
// referencia con quien necesite leerlo; no hay globals.
type UseCase struct {
	state *entity.Snapshot
	store Store
}

// New carga el documento desde el Store y construye el caso de uso.
func New(store Store) (*UseCase, error) {
	state, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("ledger: cargar estado: %w", err)
	}
	state.Normalize()
	return &UseCase{state: state, store: store}, nil
}

// newID genera un identificador opaco único para una entidad nueva.
func newID() string {
	return uuid.New().String()
}

func (uc *UseCase) persist() error {
	if err := uc.store.Save(uc.state); err != nil {
		return fmt.Errorf("ledger: persistir estado: %w", err)
	}
	return nil
}

// ── Clientes y productos ──────────────────────────────────────────────────────

// UpsertCustomer inserta el cliente si su ID no existe, o reemplaza la
// entrada existente conservando su posición. Con ID vacío se genera uno.
func (uc *UseCase) UpsertCustomer(in dto.CustomerInput) (*entity.Customer, error) {
	if in.Name == "" {
		return nil, fmt.Errorf("nombre del cliente: %w", domain.ErrInvalidInput)
	}
	c := entity.Customer{
		ID:          in.ID,
		Name:        in.Name,
		Phone:       in.Phone,
		DriverPhone: in.DriverPhone,
		Address:     in.Address,
		Note:        in.Note,
	}
	if c.ID == "" {
		c.ID = newID()
	}
	if i := indexCustomer(uc.state.Customers, c.ID); i >= 0 {
		uc.state.Customers[i] = c
	} else {
		uc.state.Customers = append(uc.state.Customers, c)
	}
	if err := uc.persist(); err != nil {
		return nil, err
	}
	return &c, nil
}

// UpsertProduct inserta o reemplaza el producto conservando su posición.
// Precio y stock mínimo no pueden ser negativos; la moneda vacía queda en CNY.
func (uc *UseCase) UpsertProduct(in dto.ProductInput) (*entity.Product, error) {
	if in.Name == "" {
		return nil, fmt.Errorf("nombre del producto: %w", domain.ErrInvalidInput)
	}
	if in.Price.IsNegative() || in.SafeStock.IsNegative() {
		return nil, fmt.Errorf("precio y stock mínimo deben ser >= 0: %w", domain.ErrInvalidInput)
	}
	p := entity.Product{
		ID:        in.ID,
		SKU:       in.SKU,
		Name:      in.Name,
		Spec:      in.Spec,
		Unit:      in.Unit,
		Price:     in.Price,
		Currency:  in.Currency,
		SafeStock: in.SafeStock,
		Note:      in.Note,
	}
	if p.ID == "" {
		p.ID = newID()
	}
	if p.Currency == "" {
		p.Currency = entity.DefaultCurrency
	}
	if i := indexProduct(uc.state.Products, p.ID); i >= 0 {
		uc.state.Products[i] = p
	} else {
		uc.state.Products = append(uc.state.Products, p)
	}
	if err := uc.persist(); err != nil {
		return nil, err
	}
	return &p, nil
}

// ── Entradas ──────────────────────────────────────────────────────────────────

// AddInbound registra una entrada. Precio y moneda se fotografían del
// producto referenciado en este momento; si el producto no existe la
// referencia queda colgante con precio 0, no es un error.
func (uc *UseCase) AddInbound(in dto.InboundInput) (*entity.InboundRecord, error) {
	if !entity.ValidDate(in.Date) {
		return nil, domain.ErrInvalidDate
	}
	if in.ProductID == "" {
		return nil, fmt.Errorf("producto requerido: %w", domain.ErrInvalidInput)
	}
	if !in.Qty.GreaterThan(decimal.Zero) {
		return nil, fmt.Errorf("cantidad debe ser > 0: %w", domain.ErrInvalidInput)
	}

	price := decimal.Zero
	currency := entity.DefaultCurrency
	if i := indexProduct(uc.state.Products, in.ProductID); i >= 0 {
		p := uc.state.Products[i]
		price = p.Price
		if p.Currency != "" {
			currency = p.Currency
		}
	}

	r := entity.InboundRecord{
		ID:         newID(),
		Date:       in.Date,
		CustomerID: in.CustomerID,
		ProductID:  in.ProductID,
		Qty:        in.Qty,
		Price:      price,
		Amount:     in.Qty.Mul(price),
		Currency:   currency,
		Note:       in.Note,
	}
	uc.state.InboundRecords = append(uc.state.InboundRecords, r)
	if err := uc.persist(); err != nil {
		return nil, err
	}
	return &r, nil
}

// DeleteInbound elimina la entrada por ID. Un ID inexistente no es error.
func (uc *UseCase) DeleteInbound(id string) error {
	for i, r := range uc.state.InboundRecords {
		if r.ID == id {
			uc.state.InboundRecords = append(uc.state.InboundRecords[:i], uc.state.InboundRecords[i+1:]...)
			return uc.persist()
		}
	}
	return nil
}

// ListInbound devuelve las entradas, opcionalmente filtradas por mes
// (AAAA-MM), ordenadas por fecha ascendente de forma estable.
func (uc *UseCase) ListInbound(month string) []entity.InboundRecord {
	out := make([]entity.InboundRecord, 0, len(uc.state.InboundRecords))
	for _, r := range uc.state.InboundRecords {
		if month == "" || entity.MonthOf(r.Date) == month {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// ── Salidas ───────────────────────────────────────────────────────────────────

// AddOrUpdateOutbound registra una salida nueva (editingID vacío) o edita la
// existente en sitio conservando su posición e ID. El importe se recalcula
// siempre como cantidad por precio; nunca se acepta como dato de entrada.
func (uc *UseCase) AddOrUpdateOutbound(in dto.OutboundInput, editingID string) (*entity.OutboundRecord, error) {
	if !entity.ValidDate(in.Date) {
		return nil, domain.ErrInvalidDate
	}
	if in.CustomerID == "" || in.ProductID == "" {
		return nil, fmt.Errorf("cliente y producto requeridos: %w", domain.ErrInvalidInput)
	}
	if !in.Qty.GreaterThan(decimal.Zero) {
		return nil, fmt.Errorf("cantidad debe ser > 0: %w", domain.ErrInvalidInput)
	}
	status := in.PaymentStatus
	if status == "" {
		status = entity.PaymentUnpaid
	}
	if !entity.ValidPaymentStatus(status) {
		return nil, domain.ErrInvalidStatus
	}
	currency := in.Currency
	if currency == "" {
		currency = uc.InferCurrency(in.ProductID)
	}

	r := entity.OutboundRecord{
		ID:            editingID,
		Date:          in.Date,
		CustomerID:    in.CustomerID,
		ProductID:     in.ProductID,
		Qty:           in.Qty,
		Price:         in.Price,
		Amount:        in.Qty.Mul(in.Price),
		Currency:      currency,
		PaymentStatus: status,
		Note:          in.Note,
		ImageData:     in.ImageData,
	}

	// Un editingID que coincide reemplaza en sitio; en cualquier otro caso
	// (vacío o sin coincidencia) se agrega un registro nuevo.
	if i := indexOutbound(uc.state.OutboundRecords, editingID); editingID != "" && i >= 0 {
		// Editar sin adjuntar comprobante nuevo conserva el guardado.
		if r.ImageData == "" {
			r.ImageData = uc.state.OutboundRecords[i].ImageData
		}
		uc.state.OutboundRecords[i] = r
	} else {
		r.ID = newID()
		uc.state.OutboundRecords = append(uc.state.OutboundRecords, r)
	}
	if err := uc.persist(); err != nil {
		return nil, err
	}
	return &r, nil
}

// DeleteOutbound elimina la salida por ID. Un ID inexistente no es error.
func (uc *UseCase) DeleteOutbound(id string) error {
	for i, r := range uc.state.OutboundRecords {
		if r.ID == id {
			uc.state.OutboundRecords = append(uc.state.OutboundRecords[:i], uc.state.OutboundRecords[i+1:]...)
			return uc.persist()
		}
	}
	return nil
}

// UpdatePaymentStatus cambia el estado de pago de una salida en sitio.
func (uc *UseCase) UpdatePaymentStatus(id, status string) error {
	if !entity.ValidPaymentStatus(status) {
		return domain.ErrInvalidStatus
	}
	i := indexOutbound(uc.state.OutboundRecords, id)
	if i < 0 {
		return fmt.Errorf("salida %s: %w", id, domain.ErrNotFound)
	}
	uc.state.OutboundRecords[i].PaymentStatus = status
	return uc.persist()
}

// ListOutbound devuelve las salidas, opcionalmente filtradas por mes,
// ordenadas por fecha ascendente de forma estable.
func (uc *UseCase) ListOutbound(month string) []entity.OutboundRecord {
	out := make([]entity.OutboundRecord, 0, len(uc.state.OutboundRecords))
	for _, r := range uc.state.OutboundRecords {
		if month == "" || entity.MonthOf(r.Date) == month {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// ── Documento completo ────────────────────────────────────────────────────────

// Snapshot devuelve una copia profunda del documento para exportar o
// respaldar; el caller no comparte memoria con el estado vivo.
func (uc *UseCase) Snapshot() *entity.Snapshot {
	return uc.state.Clone()
}

// ReplaceAll reemplaza las cuatro colecciones con el documento dado
// (restauración de respaldo). Un documento sin las cuatro claves se rechaza
// sin tocar el estado actual.
func (uc *UseCase) ReplaceAll(s *entity.Snapshot) error {
	if s == nil || !s.Complete() {
		return domain.ErrInvalidBackup
	}
	uc.state = s.Clone()
	return uc.persist()
}

// ── Consultas derivadas y resolución referencial ──────────────────────────────

// StockRows construye la vista de inventario: una fila por producto con su
// stock derivado y la clasificación frente al stock mínimo. Se recalcula
// completa en cada llamada.
func (uc *UseCase) StockRows() []dto.StockRowDTO {
	rows := make([]dto.StockRowDTO, 0, len(uc.state.Products))
	for _, p := range uc.state.Products {
		stock := inventory.CurrentStock(p.ID, uc.state.InboundRecords, uc.state.OutboundRecords)
		rows = append(rows, dto.StockRowDTO{
			ProductID:   p.ID,
			Product:     p.Name,
			SKU:         p.SKU,
			Spec:        p.Spec,
			Unit:        p.Unit,
			Price:       p.Price,
			Currency:    p.Currency,
			Stock:       stock,
			SafeStock:   p.SafeStock,
			StatusLabel: inventory.Classify(stock, p.SafeStock).Label(),
			Note:        p.Note,
		})
	}
	return rows
}

// CustomerName resuelve el nombre de un cliente. Un ID vacío o colgante
// devuelve cadena vacía, nunca un error: los listados y exports dependen
// de esta degradación.
func (uc *UseCase) CustomerName(id string) string {
	if id == "" {
		return ""
	}
	if i := indexCustomer(uc.state.Customers, id); i >= 0 {
		return uc.state.Customers[i].Name
	}
	return ""
}

// ProductName resuelve el nombre de un producto; mismas reglas que CustomerName.
func (uc *UseCase) ProductName(id string) string {
	if id == "" {
		return ""
	}
	if i := indexProduct(uc.state.Products, id); i >= 0 {
		return uc.state.Products[i].Name
	}
	return ""
}

// InferCurrency devuelve la moneda del producto referenciado, o CNY si el
// producto no existe o no define moneda.
func (uc *UseCase) InferCurrency(productID string) string {
	if i := indexProduct(uc.state.Products, productID); i >= 0 {
		if c := uc.state.Products[i].Currency; c != "" {
			return c
		}
	}
	return entity.DefaultCurrency
}

// ── Búsqueda por ID ───────────────────────────────────────────────────────────

func indexCustomer(list []entity.Customer, id string) int {
	for i, c := range list {
		if c.ID == id {
			return i
		}
	}
	return -1
}

func indexProduct(list []entity.Product, id string) int {
	for i, p := range list {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func indexOutbound(list []entity.OutboundRecord, id string) int {
	for i, r := range list {
		if r.ID == id {
			return i
		}
	}
	return -1
}
