package services

import (
	"context"
	"fmt"

	"agency/internal/amqp"
	"agency/internal/core"
)

type SaleStore interface {
	CreateSale(ctx context.Context, s core.Sale) (core.Sale, error)
	ListSales(ctx context.Context) ([]core.Sale, error)
	DeleteSale(ctx context.Context, id int64) error
}

// SaleService handles deals. New sales are also mirrored to the ledger.
type SaleService struct {
	store SaleStore
	side  *sideChannels
}

func (s *SaleService) Create(ctx context.Context, clientName, service, amount, date, status string) (core.Sale, error) {
	sale, err := core.NewSale(clientName, service, amount, date, status)
	if err != nil {
		return core.Sale{}, err
	}
	sale, err = s.store.CreateSale(ctx, sale)
	if err != nil {
		return core.Sale{}, fmt.Errorf("save sale: %w", err)
	}
	s.side.announce(ctx, amqp.EntitySale, amqp.ActionCreated, sale.ID)
	s.side.record(ctx, sale)
	return sale, nil
}

func (s *SaleService) List(ctx context.Context) ([]core.Sale, error) {
	return s.store.ListSales(ctx)
}

func (s *SaleService) Delete(ctx context.Context, id int64) error {
	if err := s.store.DeleteSale(ctx, id); err != nil {
		return err
	}
	s.side.announce(ctx, amqp.EntitySale, amqp.ActionDeleted, id)
	return nil
}
