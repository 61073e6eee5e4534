package services

import (
	"context"
	"errors"
	"fmt"
	"io"

	"agency/internal/core"
	"agency/internal/log"
	"agency/internal/sheets"
)

// Store is everything the services and the view layer need from the
// record store.
type Store interface {
	TaskStore
	ClientStore
	SaleStore
	ListFinancials(ctx context.Context) ([]core.Financial, error)
	Ping(ctx context.Context) error
	Close() error
}

// Services bundles the per-entity services around one store.
type Services struct {
	Tasks   *TaskService
	Clients *ClientService
	Sales   *SaleService

	store   Store
	closers []namedCloser
}

type namedCloser struct {
	name string
	io.Closer
}

type Options struct {
	Publisher ActivityPublisher // optional
	Ledger    sheets.SaleLedger // optional
	Logger    *log.Logger
}

func New(store Store, opts Options) *Services {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	logger = logger.WithComponent(log.ComponentServices)

	side := &sideChannels{
		publisher: opts.Publisher,
		ledger:    opts.Ledger,
		logger:    logger,
		slog:      log.NewStructuredLogger(logger),
	}

	s := &Services{
		Tasks:   &TaskService{store: store, side: side},
		Clients: &ClientService{store: store, side: side},
		Sales:   &SaleService{store: store, side: side},
		store:   store,
	}
	if store != nil {
		s.closers = append(s.closers, namedCloser{"storage", store})
	}
	if c, ok := opts.Publisher.(io.Closer); ok && c != nil {
		s.closers = append(s.closers, namedCloser{"amqp", c})
	}
	return s
}

// Financials returns the legacy monthly revenue rows.
func (s *Services) Financials(ctx context.Context) ([]core.Financial, error) {
	return s.store.ListFinancials(ctx)
}

// Ping checks that the record store answers.
func (s *Services) Ping(ctx context.Context) error {
	if s.store == nil {
		return errors.New("store not configured")
	}
	return s.store.Ping(ctx)
}

// Close closes the store and the publisher, collecting every error.
func (s *Services) Close() error {
	var errs []error
	for _, c := range s.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", c.name, err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("close services: %w", errors.Join(errs...))
	}
	return nil
}
