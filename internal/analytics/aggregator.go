package analytics

import (
	"context"
	"fmt"
	"time"

	"agency/internal/core"
)

//go:generate mockgen -source=aggregator.go -destination=mocks/store_mock.go -package=mocks

// Store is the read side the aggregator needs from the record store.
type Store interface {
	CountPendingTasks(ctx context.Context) (int, error)
	CountClientsByStatus(ctx context.Context, status core.ClientStatus) (int, error)
	CountTasksByCategory(ctx context.Context) (map[string]int, error)
	// ListSalesByStatus returns sales with date >= since; "" disables the bound.
	ListSalesByStatus(ctx context.Context, status core.SaleStatus, since string) ([]core.Sale, error)
}

type CategoryCount struct {
	Category string
	Count    int
}

// Dashboard is the flat analytics snapshot for one timeframe.
type Dashboard struct {
	Timeframe     Timeframe
	Label         string
	PendingTasks  int
	ActiveClients int
	PipelineValue core.Money
	ClosedRevenue core.Money
	Trend         Series
	Categories    []CategoryCount
}

type Aggregator struct {
	store Store
	now   func() time.Time
}

type Option func(*Aggregator)

// WithClock overrides time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(a *Aggregator) { a.now = now }
}

func NewAggregator(store Store, opts ...Option) *Aggregator {
	a := &Aggregator{store: store, now: time.Now}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Dashboard computes KPIs, the closed-revenue trend and the category split.
// Task and client counts ignore the timeframe.
func (a *Aggregator) Dashboard(ctx context.Context, tf Timeframe) (Dashboard, error) {
	today := core.Today(a.now())
	since := tf.Cutoff(today)

	pending, err := a.store.CountPendingTasks(ctx)
	if err != nil {
		return Dashboard{}, fmt.Errorf("count pending tasks: %w", err)
	}
	active, err := a.store.CountClientsByStatus(ctx, core.ClientActive)
	if err != nil {
		return Dashboard{}, fmt.Errorf("count active clients: %w", err)
	}

	pipeline, err := a.store.ListSalesByStatus(ctx, core.SaleInProgress, since)
	if err != nil {
		return Dashboard{}, fmt.Errorf("list pipeline sales: %w", err)
	}
	won, err := a.store.ListSalesByStatus(ctx, core.SaleClosedWon, since)
	if err != nil {
		return Dashboard{}, fmt.Errorf("list closed sales: %w", err)
	}

	byCategory, err := a.store.CountTasksByCategory(ctx)
	if err != nil {
		return Dashboard{}, fmt.Errorf("count tasks by category: %w", err)
	}
	cats := make([]CategoryCount, 0, len(core.Categories))
	for _, c := range core.Categories {
		cats = append(cats, CategoryCount{Category: c, Count: byCategory[c]})
	}

	return Dashboard{
		Timeframe:     tf,
		Label:         tf.Label(),
		PendingTasks:  pending,
		ActiveClients: active,
		PipelineValue: sumAmounts(pipeline),
		ClosedRevenue: sumAmounts(won),
		Trend:         Bucketize(PointsFromSales(won), today, tf),
		Categories:    cats,
	}, nil
}

func sumAmounts(sales []core.Sale) core.Money {
	total := core.Sum()
	for _, s := range sales {
		total = total.Add(s.Amount)
	}
	return total
}
