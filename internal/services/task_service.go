package services

import (
	"context"
	"fmt"

	"agency/internal/amqp"
	"agency/internal/core"
)

type TaskStore interface {
	CreateTask(ctx context.Context, t core.Task) (core.Task, error)
	ListTasks(ctx context.Context) ([]core.Task, error)
	CompleteTask(ctx context.Context, id int64) error
	DeleteTask(ctx context.Context, id int64) error
}

// TaskService handles workbench tasks.
type TaskService struct {
	store TaskStore
	side  *sideChannels
}

// Create validates the form values and saves a new open task.
func (s *TaskService) Create(ctx context.Context, title, category, dueDate string) (core.Task, error) {
	t, err := core.NewTask(title, category, dueDate)
	if err != nil {
		return core.Task{}, err
	}
	t, err = s.store.CreateTask(ctx, t)
	if err != nil {
		return core.Task{}, fmt.Errorf("save task: %w", err)
	}
	s.side.announce(ctx, amqp.EntityTask, amqp.ActionCreated, t.ID)
	return t, nil
}

func (s *TaskService) List(ctx context.Context) ([]core.Task, error) {
	return s.store.ListTasks(ctx)
}

func (s *TaskService) Complete(ctx context.Context, id int64) error {
	if err := s.store.CompleteTask(ctx, id); err != nil {
		return err
	}
	s.side.announce(ctx, amqp.EntityTask, amqp.ActionCompleted, id)
	return nil
}

func (s *TaskService) Delete(ctx context.Context, id int64) error {
	if err := s.store.DeleteTask(ctx, id); err != nil {
		return err
	}
	s.side.announce(ctx, amqp.EntityTask, amqp.ActionDeleted, id)
	return nil
}
