package storage

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"agency/internal/core"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// expectedColumns is checked after migrating. A table missing any of these
// columns means the file was written by something else.
var expectedColumns = map[string][]string{
	taskTable:      {"id", "title", "category", "due_date", "is_completed", "created_at"},
	clientTable:    {"id", "name", "company", "email", "status", "created_at"},
	saleTable:      {"id", "client_name", "service", "amount", "status", "date"},
	financialTable: {"id", "month", "revenue", "order_index"},
}

// RunMigrations applies the embedded migrations to the database at dbPath.
func RunMigrations(dbPath string) error {
	// Separate connection so closing the migrate driver leaves the store's pool alone.
	migrateDB, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return fmt.Errorf("open migration database: %w", err)
	}
	defer migrateDB.Close()

	driver, err := sqlite.WithInstance(migrateDB, &sqlite.Config{})
	if err != nil {
		return fmt.Errorf("create sqlite driver: %w", err)
	}

	d, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("create iofs source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", d, "sqlite", driver)
	if err != nil {
		return fmt.Errorf("create migrate instance: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("run migrations: %w", err)
	}

	return nil
}

// ensureSchema migrates and inspects the schema. On a mismatch it either
// rebuilds every table (losing data) or returns core.ErrSchemaMismatch.
func (r *SQLiteRepository) ensureSchema(ctx context.Context, dbPath string) error {
	cause := RunMigrations(dbPath)
	if cause == nil {
		cause = r.inspectSchema(ctx)
	}
	if cause == nil {
		return nil
	}

	if !r.rebuildOnMismatch {
		return fmt.Errorf("%w: %v", core.ErrSchemaMismatch, cause)
	}

	r.logger.WarnContext(ctx, "Schema mismatch, rebuilding store",
		"db_path", dbPath,
		"cause", cause.Error())

	if err := r.dropAllTables(ctx); err != nil {
		return fmt.Errorf("drop tables: %w", err)
	}
	if err := RunMigrations(dbPath); err != nil {
		return fmt.Errorf("migrate after rebuild: %w", err)
	}
	if err := r.inspectSchema(ctx); err != nil {
		return fmt.Errorf("%w after rebuild: %v", core.ErrSchemaMismatch, err)
	}
	return nil
}

func (r *SQLiteRepository) inspectSchema(ctx context.Context) error {
	for _, table := range []string{taskTable, clientTable, saleTable, financialTable} {
		query, args, err := squirrel.Select(expectedColumns[table]...).From(table).Limit(1).ToSql()
		if err != nil {
			return fmt.Errorf("build schema check for %s: %w", table, err)
		}
		rows, err := r.db.QueryContext(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("check %s: %w", table, err)
		}
		rows.Close()
	}
	return nil
}

func (r *SQLiteRepository) dropAllTables(ctx context.Context) error {
	query, args, err := squirrel.Select("name").
		From("sqlite_master").
		Where(squirrel.Eq{"type": "table"}).
		Where(squirrel.NotLike{"name": "sqlite_%"}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build table list query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("list tables: %w", err)
	}
	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			rows.Close()
			return fmt.Errorf("scan table name: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return fmt.Errorf("iterate tables: %w", err)
	}
	rows.Close()

	for _, name := range names {
		if _, err := r.db.ExecContext(ctx, fmt.Sprintf("DROP TABLE IF EXISTS %q", name)); err != nil {
			return fmt.Errorf("drop table %s: %w", name, err)
		}
	}
	return nil
}
