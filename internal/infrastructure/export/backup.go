package export

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/jiajian124-sketch/HAILANG/internal/domain"
	"github.com/jiajian124-sketch/HAILANG/internal/domain/entity"
)

// MarshalBackup serializa el documento completo, con sangría para que el
// respaldo sea legible a ojo.
func MarshalBackup(snap *entity.Snapshot) ([]byte, error) {
	raw, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("export: serializar respaldo: %w", err)
	}
	return raw, nil
}

// BackupFilename arma el nombre del archivo de respaldo con la fecha del día.
func BackupFilename(now time.Time) string {
	return fmt.Sprintf("inventory-backup-%s.json", now.Format("2006-01-02"))
}

// ParseBackup interpreta un respaldo y lo valida antes de restaurarlo: el
// documento debe traer las cuatro claves. Un respaldo inválido se rechaza
// aquí, antes de tocar estado alguno.
func ParseBackup(raw []byte) (*entity.Snapshot, error) {
	snap := &entity.Snapshot{}
	if err := json.Unmarshal(raw, snap); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidBackup, err)
	}
	if !snap.Complete() {
		return nil, fmt.Errorf("%w: faltan colecciones", domain.ErrInvalidBackup)
	}
	return snap, nil
}
