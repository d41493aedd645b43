package postgres

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"path"
	"sort"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/inventario-negocios/pkg/logger"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

const migrationsDir = "migrations"

// Migrator aplica los scripts embebidos en migrations/ en orden de versión.
// Cada script corre en su propia transacción junto con el registro en schema_migrations.
type Migrator struct {
	pool *pgxpool.Pool
	tx   *TxRunner
	log  *logger.Logger
}

// NewMigrator construye el migrador sobre el pool.
func NewMigrator(pool *pgxpool.Pool, log *logger.Logger) *Migrator {
	return &Migrator{pool: pool, tx: NewTxRunner(pool), log: log}
}

// Up aplica las migraciones pendientes. Es idempotente.
func (m *Migrator) Up(ctx context.Context) error {
	if _, err := m.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version    INTEGER PRIMARY KEY,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`); err != nil {
		return fmt.Errorf("crear schema_migrations: %w", err)
	}

	list, err := migrationFS.ReadDir(migrationsDir)
	if err != nil {
		return fmt.Errorf("leer migraciones: %w", err)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name() < list[j].Name() })

	current, err := m.currentVersion(ctx)
	if err != nil {
		return err
	}

	applied := 0
	for _, f := range list {
		name := f.Name()
		v, err := scriptVersion(name)
		if err != nil {
			return fmt.Errorf("migración %s: %w", name, err)
		}
		if v <= current {
			continue
		}
		script, err := migrationFS.ReadFile(path.Join(migrationsDir, name))
		if err != nil {
			return fmt.Errorf("leer %s: %w", name, err)
		}
		m.log.Debug().Str("migration", name).Msg("aplicando migración")
		err = m.tx.Run(ctx, func(q Querier) error {
			if _, err := q.Exec(ctx, string(script)); err != nil {
				return fmt.Errorf("ejecutar %s: %w", name, err)
			}
			_, err := q.Exec(ctx, `INSERT INTO schema_migrations (version) VALUES ($1)`, v)
			return err
		})
		if err != nil {
			return err
		}
		current = v
		applied++
	}
	if applied > 0 {
		m.log.Info().Int("applied", applied).Int("version", current).Msg("migraciones aplicadas")
	}
	return nil
}

func (m *Migrator) currentVersion(ctx context.Context) (int, error) {
	var v *int
	err := m.pool.QueryRow(ctx, `SELECT MAX(version) FROM schema_migrations`).Scan(&v)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return 0, fmt.Errorf("versión actual: %w", err)
	}
	if v == nil {
		return 0, nil
	}
	return *v, nil
}

// scriptVersion extrae la versión de un nombre como "0002_revoked_sessions.sql".
func scriptVersion(filename string) (int, error) {
	prefix, _, ok := strings.Cut(filename, "_")
	if !ok {
		return 0, fmt.Errorf("nombre sin versión: %q", filename)
	}
	return strconv.Atoi(prefix)
}
