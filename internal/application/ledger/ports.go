package ledger

import "github.com/jiajian124-sketch/HAILANG/internal/domain/entity"

// Store es el puerto hacia el almacenamiento persistente: un único documento
// JSON que se lee al arrancar y se reescribe completo tras cada mutación.
type Store interface {
	// Load devuelve el documento guardado. Un almacenamiento vacío o
	// ilegible degrada al documento vacío, nunca a un error de arranque.
	Load() (*entity.Snapshot, error)
	// Save persiste el documento completo de forma atómica.
	Save(s *entity.Snapshot) error
}
