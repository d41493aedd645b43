package catalog

import (
	"context"
	"io"
)

// ImageStore guarda la imagen subida con un producto y devuelve el nombre con el que quedó almacenada.
// Delete quita una imagen ya guardada; un nombre inexistente no es error.
type ImageStore interface {
	Save(ctx context.Context, filename string, r io.Reader) (string, error)
	Delete(ctx context.Context, name string) error
}
