package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"agency/internal/core"
)

var saleColumns = []string{"id", "client_name", "service", "amount", "status", "date"}

func (r *SQLiteRepository) CreateSale(ctx context.Context, s core.Sale) (core.Sale, error) {
	if err := s.Validate(); err != nil {
		return core.Sale{}, fmt.Errorf("create sale: %w", err)
	}
	id, err := r.insert(ctx, squirrel.Insert(saleTable).
		Columns("client_name", "service", "amount", "status", "date").
		Values(s.ClientName, s.Service, s.Amount.Float64(), string(s.Status), s.Date))
	if err != nil {
		return core.Sale{}, fmt.Errorf("create sale: %w", err)
	}
	s.ID = id

	r.logger.InfoContext(ctx, "Sale saved",
		"id", s.ID,
		"client_name", s.ClientName,
		"amount", s.Amount.String(),
		"status", s.Status,
		"date", s.Date)
	return s, nil
}

// ListSales returns the most recently created sales first.
func (r *SQLiteRepository) ListSales(ctx context.Context) ([]core.Sale, error) {
	return r.querySales(ctx, squirrel.Select(saleColumns...).
		From(saleTable).
		OrderBy("id DESC"))
}

// ListSalesByStatus filters on status and, when since is not empty, on
// date >= since. ISO dates compare correctly as text.
func (r *SQLiteRepository) ListSalesByStatus(ctx context.Context, status core.SaleStatus, since string) ([]core.Sale, error) {
	b := squirrel.Select(saleColumns...).
		From(saleTable).
		Where(squirrel.Eq{"status": string(status)})
	if since != "" {
		b = b.Where(squirrel.GtOrEq{"date": since})
	}
	return r.querySales(ctx, b.OrderBy("date ASC", "id ASC"))
}

func (r *SQLiteRepository) DeleteSale(ctx context.Context, id int64) error {
	if err := r.execAffectingOne(ctx, squirrel.Delete(saleTable).Where(squirrel.Eq{"id": id})); err != nil {
		return fmt.Errorf("delete sale %d: %w", id, err)
	}
	return nil
}

func (r *SQLiteRepository) querySales(ctx context.Context, b squirrel.SelectBuilder) ([]core.Sale, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()

	sales := make([]core.Sale, 0)
	for rows.Next() {
		var (
			s       core.Sale
			service sql.NullString
			amount  float64
			status  string
			date    sql.NullString
		)
		if err := rows.Scan(&s.ID, &s.ClientName, &service, &amount, &status, &date); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		s.Service = service.String
		s.Amount = core.MoneyFromFloat(amount)
		s.Status = core.SaleStatus(status)
		s.Date = date.String
		sales = append(sales, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sales: %w", err)
	}
	return sales, nil
}
