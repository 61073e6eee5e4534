package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Masterminds/squirrel"

	"agency/internal/analytics"
	"agency/internal/core"
	"agency/internal/log"

	_ "modernc.org/sqlite"
)

const (
	taskTable      = "task"
	clientTable    = "client"
	saleTable      = "sale"
	financialTable = "financial"
)

var _ analytics.Store = (*SQLiteRepository)(nil)

// SQLiteRepository is the record store for tasks, clients, sales and the
// legacy financial rows.
type SQLiteRepository struct {
	db                *sql.DB
	logger            *log.Logger
	now               func() time.Time
	rebuildOnMismatch bool
}

type Option func(*SQLiteRepository)

// WithRebuildOnMismatch drops and recreates every table when the file does
// not match the expected schema.
func WithRebuildOnMismatch(enabled bool) Option {
	return func(r *SQLiteRepository) { r.rebuildOnMismatch = enabled }
}

func WithLogger(l *log.Logger) Option {
	return func(r *SQLiteRepository) {
		if l != nil {
			r.logger = l.WithComponent(log.ComponentStorage)
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(r *SQLiteRepository) { r.now = now }
}

func NewSQLiteRepository(dbPath string, opts ...Option) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("exec pragma %q: %w", p, err)
		}
	}

	repo := &SQLiteRepository{
		db:     db,
		logger: log.New(log.DefaultConfig()).WithComponent(log.ComponentStorage),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(repo)
	}

	if err := repo.ensureSchema(context.Background(), dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	return repo, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

func (r *SQLiteRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// runInTx commits when fn returns nil and rolls back otherwise.
func (r *SQLiteRepository) runInTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			r.logger.ErrorContext(ctx, "Rollback failed", "error", rbErr)
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// execAffectingOne runs a mutation keyed by id and maps zero affected rows
// to core.ErrNotFound.
func (r *SQLiteRepository) execAffectingOne(ctx context.Context, b squirrel.Sqlizer) error {
	query, args, err := b.ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return core.ErrNotFound
	}
	return nil
}

func (r *SQLiteRepository) insert(ctx context.Context, b squirrel.InsertBuilder) (int64, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build query: %w", err)
	}
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *SQLiteRepository) count(ctx context.Context, b squirrel.SelectBuilder) (int, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build query: %w", err)
	}
	var n int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *SQLiteRepository) timestamp() string {
	return r.now().UTC().Format(core.TimestampLayout)
}

var timestampLayouts = []string{
	core.TimestampLayout,
	"2006-01-02 15:04:05.999999",
	"2006-01-02 15:04:05",
	time.RFC3339Nano,
}

// parseTimestamp also accepts the space separated form older files use.
func parseTimestamp(s sql.NullString) time.Time {
	if !s.Valid {
		return time.Time{}
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s.String); err == nil {
			return t
		}
	}
	return time.Time{}
}
