// Package boltdb implementa los puertos de persistencia sobre un archivo bbolt embebido.
// Es el backend de DB_DRIVER=bolt: un solo proceso, sin servidor de base de datos.
package boltdb

import (
	"context"
	"encoding/binary"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/jhoicas/inventario-negocios/pkg/logger"
)

var (
	accountsBucket  = []byte("accounts")
	usernamesBucket = []byte("usernames")
	productsBucket  = []byte("products")
	sessionsBucket  = []byte("sessions")
)

// Store envuelve la base bbolt y entrega los repositorios.
type Store struct {
	Path string
	db   *bolt.DB
	log  *logger.Logger
}

// Open abre (o crea) el archivo y asegura los buckets raíz.
func Open(path string, log *logger.Logger) (*Store, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("abrir bolt %s: %w", path, err)
	}
	s := &Store{Path: path, db: db, log: log}
	if err := s.initialize(); err != nil {
		_ = db.Close()
		return nil, err
	}
	log.Info().Str("path", path).Msg("bolt abierto")
	return s, nil
}

func (s *Store) initialize() error {
	return s.db.Update(func(tx *bolt.Tx) error {
		for _, b := range [][]byte{accountsBucket, usernamesBucket, productsBucket, sessionsBucket} {
			if _, err := tx.CreateBucketIfNotExists(b); err != nil {
				return fmt.Errorf("crear bucket %s: %w", b, err)
			}
		}
		return nil
	})
}

// Close cierra el archivo.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Ping verifica que la base siga abierta (health check).
func (s *Store) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.db.View(func(tx *bolt.Tx) error {
		if tx.Bucket(accountsBucket) == nil {
			return fmt.Errorf("bucket %s ausente", accountsBucket)
		}
		return nil
	})
}

// Accounts devuelve el repositorio de cuentas.
func (s *Store) Accounts() *AccountRepo { return &AccountRepo{db: s.db} }

// Products devuelve el repositorio de productos.
func (s *Store) Products() *ProductRepo { return &ProductRepo{db: s.db} }

// Sessions devuelve el repositorio de sesiones revocadas.
func (s *Store) Sessions() *SessionRepo { return &SessionRepo{db: s.db} }

// update y view respetan la cancelación del contexto antes de abrir la tx.
func update(ctx context.Context, db *bolt.DB, fn func(tx *bolt.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return db.Update(fn)
}

func view(ctx context.Context, db *bolt.DB, fn func(tx *bolt.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return db.View(fn)
}

func itob(v uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, v)
	return b
}
