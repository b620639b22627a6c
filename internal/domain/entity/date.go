package entity

import "time"

// dateLayout es el formato de fecha de todos los registros.
// Con AAAA-MM-DD la comparación lexicográfica equivale a la cronológica.
const dateLayout = "2006-01-02"

// ValidDate indica si la fecha tiene el formato AAAA-MM-DD y es un día real.
func ValidDate(date string) bool {
	_, err := time.Parse(dateLayout, date)
	return err == nil
}

// MonthOf devuelve la clave año-mes ("AAAA-MM") de una fecha, o "" si la
// cadena es demasiado corta.
func MonthOf(date string) string {
	if len(date) < 7 {
		return ""
	}
	return date[:7]
}
