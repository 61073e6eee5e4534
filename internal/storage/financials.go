package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"agency/internal/core"
)

const financialRows = 6

func (r *SQLiteRepository) ListFinancials(ctx context.Context) ([]core.Financial, error) {
	query, args, err := squirrel.Select("id", "month", "revenue", "order_index").
		From(financialTable).
		OrderBy("order_index ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list financials: %w", err)
	}
	defer rows.Close()

	out := make([]core.Financial, 0, financialRows)
	for rows.Next() {
		var (
			f       core.Financial
			revenue float64
		)
		if err := rows.Scan(&f.ID, &f.Month, &revenue, &f.OrderIndex); err != nil {
			return nil, fmt.Errorf("scan financial: %w", err)
		}
		f.Revenue = core.MoneyFromFloat(revenue)
		out = append(out, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate financials: %w", err)
	}
	return out, nil
}

// syntheticFinancials builds the six trailing monthly rows, oldest first.
func syntheticFinancials(today time.Time) []core.Financial {
	out := make([]core.Financial, 0, financialRows)
	for i := financialRows - 1; i >= 0; i-- {
		revenue := int64(25000 + 5000*(financialRows-i))
		if i == 2 {
			revenue -= 3000
		}
		out = append(out, core.Financial{
			Month:      today.AddDate(0, 0, -30*i).Format("Jan"),
			Revenue:    core.MoneyFromInt(revenue),
			OrderIndex: financialRows - i,
		})
	}
	return out
}

func (r *SQLiteRepository) reseedFinancials(ctx context.Context) error {
	n, err := r.count(ctx, squirrel.Select("COUNT(*)").From(financialTable))
	if err != nil {
		return fmt.Errorf("count financials: %w", err)
	}
	if n == financialRows {
		return nil
	}

	rows := syntheticFinancials(core.Today(r.now()))
	return r.runInTx(ctx, func(tx *sql.Tx) error {
		query, args, err := squirrel.Delete(financialTable).ToSql()
		if err != nil {
			return fmt.Errorf("build delete: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("clear financials: %w", err)
		}

		ins := squirrel.Insert(financialTable).Columns("month", "revenue", "order_index")
		for _, f := range rows {
			ins = ins.Values(f.Month, f.Revenue.Float64(), f.OrderIndex)
		}
		query, args, err = ins.ToSql()
		if err != nil {
			return fmt.Errorf("build insert: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert financials: %w", err)
		}
		r.logger.InfoContext(ctx, "Financial rows reseeded", "previous_count", n, "count", len(rows))
		return nil
	})
}
