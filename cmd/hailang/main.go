package main

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/jiajian124-sketch/HAILANG/internal/application/dto"
	"github.com/jiajian124-sketch/HAILANG/internal/application/ledger"
	"github.com/jiajian124-sketch/HAILANG/internal/application/report"
	"github.com/jiajian124-sketch/HAILANG/internal/domain/entity"
	"github.com/jiajian124-sketch/HAILANG/internal/infrastructure/export"
	"github.com/jiajian124-sketch/HAILANG/internal/infrastructure/storage"
	"github.com/jiajian124-sketch/HAILANG/pkg/config"
	"github.com/jiajian124-sketch/HAILANG/pkg/logger"
)

// version se fija en build con -ldflags "-X main.version=x.y.z".
var version = "dev"

// app agrupa las dependencias ya cableadas de un comando. El proceso es
// monohilo y corre una sola operación: no hay nada que sincronizar.
type app struct {
	cfg     *config.Config
	log     *logger.Logger
	ledger  *ledger.UseCase
	reports *report.UseCase
}

// newApp carga configuración, logger y el documento local.
func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("cargar configuración: %w", err)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	store := storage.NewFileStore(cfg.Storage.DataPath, log)
	uc, err := ledger.New(store)
	if err != nil {
		return nil, err
	}
	return &app{
		cfg:     cfg,
		log:     log,
		ledger:  uc,
		reports: report.New(uc),
	}, nil
}

func main() {
	root := &cobra.Command{
		Use:           "hailang",
		Short:         "Registro local de entradas y salidas de inventario",
		Long:          "hailang lleva clientes, productos y movimientos de inventario en un documento JSON local, con stock derivado, reportes mensuales y exports CSV/XLSX/PDF.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	root.AddCommand(
		customerCmd(),
		productCmd(),
		stockCmd(),
		inboundCmd(),
		outboundCmd(),
		reportCmd(),
		exportCmd(),
		backupCmd(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// ── customer ──────────────────────────────────────────────────────────────────

func customerCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "customer", Short: "Alta, edición y listado de clientes"}

	var in dto.CustomerInput
	add := &cobra.Command{
		Use:   "add",
		Short: "Crea un cliente, o lo reemplaza si se pasa --id",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			c, err := a.ledger.UpsertCustomer(in)
			if err != nil {
				return err
			}
			fmt.Printf("Cliente guardado: %s (%s)\n", c.Name, c.ID)
			return nil
		},
	}
	f := add.Flags()
	f.StringVar(&in.ID, "id", "", "ID existente para editar (vacío crea uno nuevo)")
	f.StringVar(&in.Name, "name", "", "Nombre del cliente (requerido)")
	f.StringVar(&in.Phone, "phone", "", "Teléfono")
	f.StringVar(&in.DriverPhone, "driver-phone", "", "Teléfono del conductor")
	f.StringVar(&in.Address, "address", "", "Dirección")
	f.StringVar(&in.Note, "note", "", "Notas")

	list := &cobra.Command{
		Use:   "list",
		Short: "Lista los clientes en orden de creación",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			w := newTable()
			fmt.Fprintln(w, "ID\tCLIENTE\tTELÉFONO\tDIRECCIÓN\tNOTAS")
			for _, c := range a.ledger.Snapshot().Customers {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", c.ID, c.Name, c.Phone, c.Address, c.Note)
			}
			return w.Flush()
		},
	}

	cmd.AddCommand(add, list)
	return cmd
}

// ── product ───────────────────────────────────────────────────────────────────

func productCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "product", Short: "Alta, edición y listado de productos"}

	var in dto.ProductInput
	var price, safeStock string
	add := &cobra.Command{
		Use:   "add",
		Short: "Crea un producto, o lo reemplaza si se pasa --id",
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if in.Price, err = parseDecimal(price, "price"); err != nil {
				return err
			}
			if in.SafeStock, err = parseDecimal(safeStock, "safe-stock"); err != nil {
				return err
			}
			a, err := newApp()
			if err != nil {
				return err
			}
			p, err := a.ledger.UpsertProduct(in)
			if err != nil {
				return err
			}
			fmt.Printf("Producto guardado: %s (%s)\n", p.Name, p.ID)
			return nil
		},
	}
	f := add.Flags()
	f.StringVar(&in.ID, "id", "", "ID existente para editar (vacío crea uno nuevo)")
	f.StringVar(&in.SKU, "sku", "", "Código SKU")
	f.StringVar(&in.Name, "name", "", "Nombre del producto (requerido)")
	f.StringVar(&in.Spec, "spec", "", "Especificación o presentación")
	f.StringVar(&in.Unit, "unit", "", "Unidad de medida")
	f.StringVar(&price, "price", "0", "Precio de venta por defecto")
	f.StringVar(&in.Currency, "currency", "", "Moneda (vacío: CNY)")
	f.StringVar(&safeStock, "safe-stock", "0", "Stock mínimo de seguridad")
	f.StringVar(&in.Note, "note", "", "Notas")

	list := &cobra.Command{
		Use:   "list",
		Short: "Lista los productos en orden de creación",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			w := newTable()
			fmt.Fprintln(w, "ID\tSKU\tPRODUCTO\tPRECIO\tMONEDA\tSTOCK MÍN.")
			for _, p := range a.ledger.Snapshot().Products {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
					p.ID, p.SKU, p.Name, p.Price.StringFixed(2), p.Currency, p.SafeStock.StringFixed(2))
			}
			return w.Flush()
		},
	}

	cmd.AddCommand(add, list)
	return cmd
}

// ── stock ─────────────────────────────────────────────────────────────────────

func stockCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stock",
		Short: "Muestra el stock derivado de cada producto y su clasificación",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			w := newTable()
			fmt.Fprintln(w, "SKU\tPRODUCTO\tSTOCK\tSTOCK MÍN.\tESTADO")
			for _, r := range a.ledger.StockRows() {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					r.SKU, r.Product, r.Stock.StringFixed(2), r.SafeStock.StringFixed(2), r.StatusLabel)
			}
			return w.Flush()
		},
	}
}

// ── inbound ───────────────────────────────────────────────────────────────────

func inboundCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "inbound", Short: "Entradas de inventario"}

	var in dto.InboundInput
	var qty string
	add := &cobra.Command{
		Use:   "add",
		Short: "Registra una entrada (precio y moneda se toman del producto)",
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if in.Qty, err = parseDecimal(qty, "qty"); err != nil {
				return err
			}
			if in.Date == "" {
				in.Date = time.Now().Format("2006-01-02")
			}
			a, err := newApp()
			if err != nil {
				return err
			}
			r, err := a.ledger.AddInbound(in)
			if err != nil {
				return err
			}
			fmt.Printf("Entrada registrada: %s\n", r.ID)
			return nil
		},
	}
	f := add.Flags()
	f.StringVar(&in.Date, "date", "", "Fecha AAAA-MM-DD (vacío: hoy)")
	f.StringVar(&in.CustomerID, "customer", "", "Cliente/proveedor de origen (opcional)")
	f.StringVar(&in.ProductID, "product", "", "ID del producto (requerido)")
	f.StringVar(&qty, "qty", "", "Cantidad (requerida, > 0)")
	f.StringVar(&in.Note, "note", "", "Notas")

	var month string
	list := &cobra.Command{
		Use:   "list",
		Short: "Lista las entradas ordenadas por fecha",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			w := newTable()
			fmt.Fprintln(w, "ID\tFECHA\tORIGEN\tPRODUCTO\tCANTIDAD\tNOTAS")
			for _, r := range a.ledger.ListInbound(month) {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
					r.ID, r.Date, a.ledger.CustomerName(r.CustomerID),
					a.ledger.ProductName(r.ProductID), r.Qty.StringFixed(2), r.Note)
			}
			return w.Flush()
		},
	}
	list.Flags().StringVar(&month, "month", "", "Filtrar por mes AAAA-MM")

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Elimina una entrada (irreversible)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			return a.ledger.DeleteInbound(args[0])
		},
	}

	cmd.AddCommand(add, list, del)
	return cmd
}

// ── outbound ──────────────────────────────────────────────────────────────────

// outboundFlags registra los flags compartidos por add y edit.
func outboundFlags(cmd *cobra.Command, in *dto.OutboundInput, qty, price, image *string) {
	f := cmd.Flags()
	f.StringVar(&in.Date, "date", "", "Fecha AAAA-MM-DD (vacío: hoy)")
	f.StringVar(&in.CustomerID, "customer", "", "ID del cliente (requerido)")
	f.StringVar(&in.ProductID, "product", "", "ID del producto (requerido)")
	f.StringVar(qty, "qty", "", "Cantidad (requerida, > 0)")
	f.StringVar(price, "price", "0", "Precio unitario digitado")
	f.StringVar(&in.Currency, "currency", "", "Moneda (vacío: la del producto)")
	f.StringVar(&in.PaymentStatus, "status", "", "Estado de pago: unpaid, partial o paid")
	f.StringVar(&in.Note, "note", "", "Notas")
	f.StringVar(image, "image", "", "Ruta del comprobante a adjuntar")
}

func outboundCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "outbound", Short: "Salidas de inventario"}

	var addIn dto.OutboundInput
	var addQty, addPrice, addImage string
	add := &cobra.Command{
		Use:   "add",
		Short: "Registra una salida (el importe se calcula como cantidad x precio)",
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if addIn.Qty, err = parseDecimal(addQty, "qty"); err != nil {
				return err
			}
			if addIn.Price, err = parseDecimal(addPrice, "price"); err != nil {
				return err
			}
			if addIn.ImageData, err = readImage(addImage); err != nil {
				return err
			}
			if addIn.Date == "" {
				addIn.Date = time.Now().Format("2006-01-02")
			}
			a, err := newApp()
			if err != nil {
				return err
			}
			r, err := a.ledger.AddOrUpdateOutbound(addIn, "")
			if err != nil {
				return err
			}
			fmt.Printf("Salida registrada: %s (importe %s %s)\n", r.ID, r.Amount.StringFixed(2), r.Currency)
			return nil
		},
	}
	outboundFlags(add, &addIn, &addQty, &addPrice, &addImage)

	var editIn dto.OutboundInput
	var editQty, editPrice, editImage string
	edit := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edita una salida en sitio; los flags no indicados conservan su valor",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			current, ok := findOutbound(a, args[0])
			if !ok {
				return fmt.Errorf("salida %s no encontrada", args[0])
			}
			// Igual que el formulario original: se parte de los valores
			// guardados y solo se pisan los flags indicados.
			in := dto.OutboundInput{
				Date:          current.Date,
				CustomerID:    current.CustomerID,
				ProductID:     current.ProductID,
				Qty:           current.Qty,
				Price:         current.Price,
				Currency:      current.Currency,
				PaymentStatus: current.PaymentStatus,
				Note:          current.Note,
			}
			fl := cmd.Flags()
			if fl.Changed("date") {
				in.Date = editIn.Date
			}
			if fl.Changed("customer") {
				in.CustomerID = editIn.CustomerID
			}
			if fl.Changed("product") {
				in.ProductID = editIn.ProductID
			}
			if fl.Changed("currency") {
				in.Currency = editIn.Currency
			}
			if fl.Changed("status") {
				in.PaymentStatus = editIn.PaymentStatus
			}
			if fl.Changed("note") {
				in.Note = editIn.Note
			}
			if fl.Changed("qty") {
				if in.Qty, err = parseDecimal(editQty, "qty"); err != nil {
					return err
				}
			}
			if fl.Changed("price") {
				if in.Price, err = parseDecimal(editPrice, "price"); err != nil {
					return err
				}
			}
			// Sin --image el caso de uso conserva el comprobante guardado.
			if fl.Changed("image") {
				if in.ImageData, err = readImage(editImage); err != nil {
					return err
				}
			}
			r, err := a.ledger.AddOrUpdateOutbound(in, args[0])
			if err != nil {
				return err
			}
			fmt.Printf("Salida actualizada: %s (importe %s %s)\n", r.ID, r.Amount.StringFixed(2), r.Currency)
			return nil
		},
	}
	outboundFlags(edit, &editIn, &editQty, &editPrice, &editImage)

	var month string
	list := &cobra.Command{
		Use:   "list",
		Short: "Lista las salidas ordenadas por fecha",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			w := newTable()
			fmt.Fprintln(w, "ID\tFECHA\tCLIENTE\tPRODUCTO\tCANTIDAD\tIMPORTE\tMONEDA\tPAGO")
			for _, r := range a.ledger.ListOutbound(month) {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
					r.ID, r.Date, a.ledger.CustomerName(r.CustomerID),
					a.ledger.ProductName(r.ProductID), r.Qty.StringFixed(2),
					r.Amount.StringFixed(2), r.Currency, entity.PaymentStatusLabel(r.PaymentStatus))
			}
			return w.Flush()
		},
	}
	list.Flags().StringVar(&month, "month", "", "Filtrar por mes AAAA-MM")

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Elimina una salida (irreversible)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			return a.ledger.DeleteOutbound(args[0])
		},
	}

	pay := &cobra.Command{
		Use:   "pay <id> <unpaid|partial|paid>",
		Short: "Actualiza el estado de pago de una salida",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			return a.ledger.UpdatePaymentStatus(args[0], args[1])
		},
	}

	cmd.AddCommand(add, edit, list, del, pay)
	return cmd
}

// ── report ────────────────────────────────────────────────────────────────────

func reportCmd() *cobra.Command {
	var customerID, month, pdfOut string
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Reporte mensual de salidas de un cliente",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			rep, err := a.reports.Monthly(customerID, month)
			if err != nil {
				return err
			}

			fmt.Printf("Cliente %s, mes %s: cantidad total %s, importe total %s\n",
				rep.CustomerName, rep.Month, rep.TotalQty.StringFixed(2), rep.TotalAmount.StringFixed(2))

			w := newTable()
			fmt.Fprintln(w, "PRODUCTO\tCANTIDAD\tIMPORTE")
			for _, p := range rep.Products {
				fmt.Fprintf(w, "%s\t%s\t%s\n", p.ProductName, p.Qty.StringFixed(2), p.Amount.StringFixed(2))
			}
			if err := w.Flush(); err != nil {
				return err
			}

			w = newTable()
			fmt.Fprintln(w, "FECHA\tPRODUCTO\tCANTIDAD\tPRECIO\tIMPORTE\tPAGO")
			for _, d := range rep.Details {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
					d.Date, d.ProductName, d.Qty.StringFixed(2),
					d.Price.StringFixed(2), d.Amount.StringFixed(2), entity.PaymentStatusLabel(d.PaymentStatus))
			}
			if err := w.Flush(); err != nil {
				return err
			}

			if pdfOut != "" {
				raw, err := export.ReportPDF(rep)
				if err != nil {
					return err
				}
				if err := os.WriteFile(pdfOut, raw, 0o644); err != nil {
					return fmt.Errorf("escribir %s: %w", pdfOut, err)
				}
				fmt.Println("PDF escrito en", pdfOut)
			}
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&customerID, "customer", "", "ID del cliente (requerido)")
	f.StringVar(&month, "month", "", "Mes AAAA-MM (requerido)")
	f.StringVar(&pdfOut, "pdf", "", "Además del texto, escribir el reporte como PDF en esta ruta")
	return cmd
}

// ── export ────────────────────────────────────────────────────────────────────

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "export", Short: "Exporta las tablas como CSV o XLSX"}

	var dir string
	csvCmd := &cobra.Command{
		Use:   "csv",
		Short: "Escribe las cuatro tablas CSV (UTF-8 con BOM)",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if dir == "" {
				dir = a.cfg.Export.Dir
			}
			files := []struct {
				name string
				gen  func(export.Source) ([]byte, error)
			}{
				{"clientes.csv", export.CustomersCSV},
				{"inventario.csv", export.InventoryCSV},
				{"entradas.csv", export.InboundCSV},
				{"salidas.csv", export.OutboundCSV},
			}
			for _, file := range files {
				raw, err := file.gen(a.ledger)
				if err != nil {
					return err
				}
				path := filepath.Join(dir, file.name)
				if err := os.WriteFile(path, raw, 0o644); err != nil {
					return fmt.Errorf("escribir %s: %w", path, err)
				}
				fmt.Println("Escrito", path)
			}
			return nil
		},
	}
	csvCmd.Flags().StringVar(&dir, "dir", "", "Directorio destino (vacío: EXPORT_DIR)")

	var out string
	xlsxCmd := &cobra.Command{
		Use:   "xlsx",
		Short: "Escribe un libro XLSX con las cuatro tablas",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if out == "" {
				out = filepath.Join(a.cfg.Export.Dir, "inventario.xlsx")
			}
			f, err := export.Workbook(a.ledger)
			if err != nil {
				return err
			}
			if err := f.SaveAs(out); err != nil {
				return fmt.Errorf("escribir %s: %w", out, err)
			}
			fmt.Println("Escrito", out)
			return nil
		},
	}
	xlsxCmd.Flags().StringVar(&out, "out", "", "Ruta del libro (vacío: EXPORT_DIR/inventario.xlsx)")

	cmd.AddCommand(csvCmd, xlsxCmd)
	return cmd
}

// ── backup ────────────────────────────────────────────────────────────────────

func backupCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "backup", Short: "Respaldo y restauración del documento completo"}

	var out string
	exp := &cobra.Command{
		Use:   "export",
		Short: "Escribe el respaldo JSON con la fecha del día en el nombre",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			raw, err := export.MarshalBackup(a.ledger.Snapshot())
			if err != nil {
				return err
			}
			if out == "" {
				out = filepath.Join(a.cfg.Export.Dir, export.BackupFilename(time.Now()))
			}
			if err := os.WriteFile(out, raw, 0o644); err != nil {
				return fmt.Errorf("escribir %s: %w", out, err)
			}
			fmt.Println("Respaldo escrito en", out)
			return nil
		},
	}
	exp.Flags().StringVar(&out, "out", "", "Ruta del respaldo (vacío: nombre con la fecha)")

	imp := &cobra.Command{
		Use:   "import <archivo>",
		Short: "Restaura un respaldo, reemplazando todos los datos actuales",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("leer %s: %w", args[0], err)
			}
			snap, err := export.ParseBackup(raw)
			if err != nil {
				return err
			}
			a, err := newApp()
			if err != nil {
				return err
			}
			if err := a.ledger.ReplaceAll(snap); err != nil {
				return err
			}
			fmt.Println("Respaldo restaurado")
			return nil
		},
	}

	cmd.AddCommand(exp, imp)
	return cmd
}

// ── helpers ───────────────────────────────────────────────────────────────────

func newTable() *tabwriter.Writer {
	return tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
}

func parseDecimal(s, flag string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("--%s: %q no es un número", flag, s)
	}
	return d, nil
}

// readImage lee el comprobante y lo devuelve codificado en base64; el flag
// vacío devuelve cadena vacía (sin adjunto, o conservar el existente).
func readImage(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("leer comprobante %s: %w", path, err)
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}

func findOutbound(a *app, id string) (*entity.OutboundRecord, bool) {
	for _, rec := range a.ledger.Snapshot().OutboundRecords {
		if rec.ID == id {
			r := rec
			return &r, true
		}
	}
	return nil, false
}
