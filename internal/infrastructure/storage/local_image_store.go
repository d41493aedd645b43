package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/jhoicas/inventario-negocios/internal/application/catalog"
	"github.com/jhoicas/inventario-negocios/internal/domain"
)

var _ catalog.ImageStore = (*LocalImageStore)(nil)

// LocalImageStore copia las imágenes al directorio público de uploads.
type LocalImageStore struct {
	dir string
}

// NewLocalImageStore crea el directorio si no existe.
func NewLocalImageStore(dir string) (*LocalImageStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("crear directorio de uploads: %w", err)
	}
	return &LocalImageStore{dir: dir}, nil
}

// Dir directorio servido como /uploads.
func (s *LocalImageStore) Dir() string { return s.dir }

// Save escribe el contenido con el nombre saneado y devuelve el nombre final.
// Si ya existe un archivo con ese nombre se agrega un sufijo aleatorio: una cuenta
// nunca sobrescribe la imagen de otra.
func (s *LocalImageStore) Save(ctx context.Context, filename string, r io.Reader) (string, error) {
	name := SecureFilename(filename)
	if name == "" {
		return "", domain.NewValidationError("image", "nombre de archivo inválido")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	f, err := os.OpenFile(filepath.Join(s.dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if errors.Is(err, os.ErrExist) {
		name = withSuffix(name, uuid.NewString()[:8])
		f, err = os.OpenFile(filepath.Join(s.dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	}
	if err != nil {
		return "", fmt.Errorf("crear imagen: %w", err)
	}

	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = os.Remove(f.Name())
		return "", fmt.Errorf("copiar imagen: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("cerrar imagen: %w", err)
	}
	return name, nil
}

// Delete borra la imagen guardada con Save. Solo acepta nombres ya saneados,
// así que no puede salir del directorio de uploads.
func (s *LocalImageStore) Delete(_ context.Context, name string) error {
	if name == "" || SecureFilename(name) != name {
		return domain.NewValidationError("image", "nombre de archivo inválido")
	}
	err := os.Remove(filepath.Join(s.dir, name))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("borrar imagen: %w", err)
	}
	return nil
}

// withSuffix: "foto.png", "ab12" → "foto_ab12.png".
func withSuffix(name, suffix string) string {
	ext := filepath.Ext(name)
	return strings.TrimSuffix(name, ext) + "_" + suffix + ext
}
