// Package storage implementa el Store sobre un único archivo JSON local.
// No hay base de datos: todo el estado cabe en memoria y se reescribe
// completo en cada guardado.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/jiajian124-sketch/HAILANG/internal/domain/entity"
	"github.com/jiajian124-sketch/HAILANG/pkg/logger"
)

// FileStore guarda el documento en un archivo JSON.
type FileStore struct {
	path string
	log  *logger.Logger
}

// NewFileStore construye el store sobre la ruta dada.
func NewFileStore(path string, log *logger.Logger) *FileStore {
	return &FileStore{path: path, log: log}
}

// Load lee el documento. Archivo inexistente o contenido corrupto degradan
// al documento vacío con un warning: el arranque nunca falla por el
// almacenamiento.
func (s *FileStore) Load() (*entity.Snapshot, error) {
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return entity.NewSnapshot(), nil
	}
	if err != nil {
		s.log.Warn().Err(err).Str("path", s.path).Msg("no se pudo leer el archivo de datos, se arranca vacío")
		return entity.NewSnapshot(), nil
	}

	snap := &entity.Snapshot{}
	if err := json.Unmarshal(raw, snap); err != nil {
		s.log.Warn().Err(err).Str("path", s.path).Msg("archivo de datos corrupto, se arranca vacío")
		return entity.NewSnapshot(), nil
	}
	// En la carga normal una clave ausente no es error: queda lista vacía.
	snap.Normalize()
	return snap, nil
}

// Save escribe el documento completo. Escribe a un archivo temporal del
// mismo directorio y lo renombra, para que nunca quede un documento a medias.
func (s *FileStore) Save(snap *entity.Snapshot) error {
	raw, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("storage: serializar documento: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("storage: crear directorio %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".data-*.json")
	if err != nil {
		return fmt.Errorf("storage: crear archivo temporal: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("storage: escribir documento: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("storage: cerrar archivo temporal: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("storage: reemplazar %s: %w", s.path, err)
	}
	return nil
}
