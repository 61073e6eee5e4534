package memory

import (
	"context"
	"sync"
	"testing"

	"agency/internal/core"
)

func TestLedgerAppendSale(t *testing.T) {
	l := New()
	ref, err := l.AppendSale(context.Background(), core.Sale{
		ID:         1,
		ClientName: "Acme",
		Service:    "Audit",
		Amount:     core.MoneyFromInt(250),
		Status:     core.SaleInProgress,
		Date:       "2024-03-01",
	})
	if err != nil || ref != "mem:1" {
		t.Fatalf("unexpected append: ref=%q err=%v", ref, err)
	}

	rows := l.Rows()
	if len(rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(rows))
	}
	if rows[0][2] != "Acme" || rows[0][4] != "In Progress" || rows[0][5] != 250.0 {
		t.Fatalf("unexpected row %v", rows[0])
	}
}

func TestLedgerRejectsInvalidSale(t *testing.T) {
	l := New()
	if _, err := l.AppendSale(context.Background(), core.Sale{}); err == nil {
		t.Fatal("expected validation error")
	}
	if len(l.Rows()) != 0 {
		t.Fatal("invalid sale stored")
	}
}

func TestLedgerConcurrentAppends(t *testing.T) {
	l := New()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			_, _ = l.AppendSale(context.Background(), core.Sale{ID: id, ClientName: "c", Amount: core.MoneyFromInt(1)})
		}(int64(i))
	}
	wg.Wait()
	if got := len(l.Rows()); got != 20 {
		t.Fatalf("rows = %d, want 20", got)
	}
}
