package sheets

import (
	"context"

	"agency/internal/core"
)

// Ports for outbound adapters.
type (
	// SaleLedger mirrors newly created sales into an external ledger.
	SaleLedger interface {
		// AppendSale writes one row and returns a reference to it.
		AppendSale(ctx context.Context, s core.Sale) (rowRef string, err error)
	}
)

// Header is the column layout every ledger uses.
var Header = []string{"ID", "Date", "Client", "Service", "Status", "Amount"}

// Row converts a sale into ledger cells in Header order.
func Row(s core.Sale) []any {
	return []any{s.ID, s.Date, s.ClientName, s.Service, string(s.Status), s.Amount.Float64()}
}
