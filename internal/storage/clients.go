package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"agency/internal/core"
)

func (r *SQLiteRepository) CreateClient(ctx context.Context, c core.Client) (core.Client, error) {
	createdAt := r.timestamp()
	id, err := r.insert(ctx, squirrel.Insert(clientTable).
		Columns("name", "company", "email", "status", "created_at").
		Values(c.Name, c.Company, c.Email, string(c.Status), createdAt))
	if err != nil {
		return core.Client{}, fmt.Errorf("create client: %w", err)
	}

	c.ID = id
	c.CreatedAt = parseTimestamp(sql.NullString{String: createdAt, Valid: true})

	r.logger.InfoContext(ctx, "Client saved", "id", c.ID, "name", c.Name, "status", c.Status)
	return c, nil
}

// ListClients returns the newest clients first.
func (r *SQLiteRepository) ListClients(ctx context.Context) ([]core.Client, error) {
	query, args, err := squirrel.Select("id", "name", "company", "email", "status", "created_at").
		From(clientTable).
		OrderBy("created_at DESC", "id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	defer rows.Close()

	clients := make([]core.Client, 0)
	for rows.Next() {
		var (
			c         core.Client
			company   sql.NullString
			email     sql.NullString
			status    string
			createdAt sql.NullString
		)
		if err := rows.Scan(&c.ID, &c.Name, &company, &email, &status, &createdAt); err != nil {
			return nil, fmt.Errorf("scan client: %w", err)
		}
		c.Company = company.String
		c.Email = email.String
		c.Status = core.ClientStatus(status)
		c.CreatedAt = parseTimestamp(createdAt)
		clients = append(clients, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate clients: %w", err)
	}
	return clients, nil
}

func (r *SQLiteRepository) DeleteClient(ctx context.Context, id int64) error {
	if err := r.execAffectingOne(ctx, squirrel.Delete(clientTable).Where(squirrel.Eq{"id": id})); err != nil {
		return fmt.Errorf("delete client %d: %w", id, err)
	}
	return nil
}

func (r *SQLiteRepository) CountClientsByStatus(ctx context.Context, status core.ClientStatus) (int, error) {
	n, err := r.count(ctx, squirrel.Select("COUNT(*)").
		From(clientTable).
		Where(squirrel.Eq{"status": string(status)}))
	if err != nil {
		return 0, fmt.Errorf("count clients with status %q: %w", status, err)
	}
	return n, nil
}
