package services

import (
	"context"
	"fmt"

	"agency/internal/amqp"
	"agency/internal/core"
)

type ClientStore interface {
	CreateClient(ctx context.Context, c core.Client) (core.Client, error)
	ListClients(ctx context.Context) ([]core.Client, error)
	DeleteClient(ctx context.Context, id int64) error
}

// ClientService handles the client directory. Deleting a client leaves
// sales that name it untouched.
type ClientService struct {
	store ClientStore
	side  *sideChannels
}

func (s *ClientService) Create(ctx context.Context, name, company, email, status string) (core.Client, error) {
	c, err := core.NewClient(name, company, email, status)
	if err != nil {
		return core.Client{}, err
	}
	c, err = s.store.CreateClient(ctx, c)
	if err != nil {
		return core.Client{}, fmt.Errorf("save client: %w", err)
	}
	s.side.announce(ctx, amqp.EntityClient, amqp.ActionCreated, c.ID)
	return c, nil
}

func (s *ClientService) List(ctx context.Context) ([]core.Client, error) {
	return s.store.ListClients(ctx)
}

func (s *ClientService) Delete(ctx context.Context, id int64) error {
	if err := s.store.DeleteClient(ctx, id); err != nil {
		return err
	}
	s.side.announce(ctx, amqp.EntityClient, amqp.ActionDeleted, id)
	return nil
}
