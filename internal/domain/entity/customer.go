package entity

// Customer representa un cliente (destinatario de las salidas de inventario).
// No existe operación de borrado: los clientes solo se crean o se editan.
type Customer struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Phone       string `json:"phone"`
	DriverPhone string `json:"driverPhone"`
	Address     string `json:"address"`
	Note        string `json:"note"`
}
