package backend

import (
	"context"

	"agency/internal/analytics"
	"agency/internal/services"
)

// CleanupFunc releases everything the backend opened.
type CleanupFunc func() error

// Result is a fully wired backend: services over the record store plus the
// analytics aggregator reading from the same store.
type Result struct {
	Services  *services.Services
	Analytics *analytics.Aggregator
	Ledger    LedgerType
	Cleanup   CleanupFunc
}

type Factory interface {
	CreateBackend(ctx context.Context, config Config) (*Result, error)
}

// LedgerType selects where created sales are mirrored.
type LedgerType string

const (
	SheetsLedger LedgerType = "sheets"
	MemoryLedger LedgerType = "memory"
)

func (lt LedgerType) String() string {
	return string(lt)
}

func (lt LedgerType) IsValid() bool {
	switch lt {
	case SheetsLedger, MemoryLedger:
		return true
	default:
		return false
	}
}
