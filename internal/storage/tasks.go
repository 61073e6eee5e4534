package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"agency/internal/core"
)

var taskColumns = []string{"id", "title", "category", "due_date", "is_completed", "created_at"}

func (r *SQLiteRepository) CreateTask(ctx context.Context, t core.Task) (core.Task, error) {
	createdAt := r.timestamp()
	id, err := r.insert(ctx, squirrel.Insert(taskTable).
		Columns("title", "category", "due_date", "is_completed", "created_at").
		Values(t.Title, t.Category, t.DueDate, t.Completed, createdAt))
	if err != nil {
		return core.Task{}, fmt.Errorf("create task: %w", err)
	}

	t.ID = id
	t.CreatedAt = parseTimestamp(sql.NullString{String: createdAt, Valid: true})

	r.logger.InfoContext(ctx, "Task saved",
		"id", t.ID,
		"title", t.Title,
		"category", t.Category,
		"due_date", t.DueDate)
	return t, nil
}

// ListTasks orders open tasks first, then by due date.
func (r *SQLiteRepository) ListTasks(ctx context.Context) ([]core.Task, error) {
	query, args, err := squirrel.Select(taskColumns...).
		From(taskTable).
		OrderBy("is_completed ASC", "due_date ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	tasks := make([]core.Task, 0)
	for rows.Next() {
		var (
			t         core.Task
			category  sql.NullString
			dueDate   sql.NullString
			createdAt sql.NullString
		)
		if err := rows.Scan(&t.ID, &t.Title, &category, &dueDate, &t.Completed, &createdAt); err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		t.Category = category.String
		t.DueDate = dueDate.String
		t.CreatedAt = parseTimestamp(createdAt)
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tasks: %w", err)
	}
	return tasks, nil
}

func (r *SQLiteRepository) CompleteTask(ctx context.Context, id int64) error {
	err := r.execAffectingOne(ctx, squirrel.Update(taskTable).
		Set("is_completed", true).
		Where(squirrel.Eq{"id": id}))
	if err != nil {
		return fmt.Errorf("complete task %d: %w", id, err)
	}
	return nil
}

func (r *SQLiteRepository) DeleteTask(ctx context.Context, id int64) error {
	if err := r.execAffectingOne(ctx, squirrel.Delete(taskTable).Where(squirrel.Eq{"id": id})); err != nil {
		return fmt.Errorf("delete task %d: %w", id, err)
	}
	return nil
}

func (r *SQLiteRepository) CountTasks(ctx context.Context) (int, error) {
	n, err := r.count(ctx, squirrel.Select("COUNT(*)").From(taskTable))
	if err != nil {
		return 0, fmt.Errorf("count tasks: %w", err)
	}
	return n, nil
}

func (r *SQLiteRepository) CountPendingTasks(ctx context.Context) (int, error) {
	n, err := r.count(ctx, squirrel.Select("COUNT(*)").
		From(taskTable).
		Where(squirrel.Eq{"is_completed": false}))
	if err != nil {
		return 0, fmt.Errorf("count pending tasks: %w", err)
	}
	return n, nil
}

// CountTasksByCategory counts every task regardless of completion.
func (r *SQLiteRepository) CountTasksByCategory(ctx context.Context) (map[string]int, error) {
	query, args, err := squirrel.Select("category", "COUNT(*)").
		From(taskTable).
		GroupBy("category").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("count tasks by category: %w", err)
	}
	defer rows.Close()

	out := make(map[string]int)
	for rows.Next() {
		var (
			category sql.NullString
			n        int
		)
		if err := rows.Scan(&category, &n); err != nil {
			return nil, fmt.Errorf("scan category count: %w", err)
		}
		out[category.String] += n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate category counts: %w", err)
	}
	return out, nil
}
