package memory

import (
	"context"
	"fmt"
	"sync"

	"agency/internal/core"
	ports "agency/internal/sheets"
)

// Ledger keeps ledger rows in memory. It backs the ledger when no
// spreadsheet is configured and in tests.
type Ledger struct {
	mu   sync.Mutex
	rows [][]any
}

var _ ports.SaleLedger = (*Ledger)(nil)

func New() *Ledger {
	return &Ledger{}
}

// AppendSale stores the row and returns a synthetic row reference.
func (l *Ledger) AppendSale(_ context.Context, s core.Sale) (string, error) {
	if err := s.Validate(); err != nil {
		return "", err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.rows = append(l.rows, ports.Row(s))
	return fmt.Sprintf("mem:%d", len(l.rows)), nil
}

// Rows returns a copy of the stored rows in append order.
func (l *Ledger) Rows() [][]any {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([][]any, len(l.rows))
	copy(out, l.rows)
	return out
}
