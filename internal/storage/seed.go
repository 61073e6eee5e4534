package storage

import (
	"context"
	"fmt"

	"agency/internal/core"
)

var starterTasks = []core.Task{
	{Title: "Q3 Strategy Call", Category: core.CategoryMeeting, DueDate: "2023-11-01"},
	{Title: "Deliver Mockups", Category: core.CategoryDelivery, DueDate: "2023-11-05"},
}

// Seed keeps exactly six legacy financial rows and adds the starter tasks
// to an empty workbench. Running it again is a no-op.
func (r *SQLiteRepository) Seed(ctx context.Context) error {
	if err := r.reseedFinancials(ctx); err != nil {
		return fmt.Errorf("seed financials: %w", err)
	}

	n, err := r.CountTasks(ctx)
	if err != nil {
		return fmt.Errorf("seed tasks: %w", err)
	}
	if n > 0 {
		return nil
	}
	for _, t := range starterTasks {
		if _, err := r.CreateTask(ctx, t); err != nil {
			return fmt.Errorf("seed tasks: %w", err)
		}
	}
	return nil
}
