package shipping

import (
	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/shared"
)

// SupersededReason is recorded on a quote replaced by a newer selection
const SupersededReason = "Superseded by another selected quote"

// SelectionResult describes what a selection changed
type SelectionResult struct {
	Selected   *ShippingQuote
	Superseded *ShippingQuote
	// Changed lists every quote whose state moved, in save order
	Changed []*ShippingQuote
	// Unchanged is true when the chosen quote was already the accepted one
	Unchanged bool
}

// SelectQuote accepts the chosen quote among all quotes of one order and
// supersedes any previously accepted quote, so at most one quote per order is
// ever accepted. Other pending quotes are left pending.
func SelectQuote(orderID, quoteID uuid.UUID, quotes []*ShippingQuote) (*SelectionResult, error) {
	var chosen *ShippingQuote
	for _, q := range quotes {
		if q.ID == quoteID {
			chosen = q
			break
		}
	}
	if chosen == nil {
		return nil, shared.ErrNotFound
	}
	if chosen.OrderID != orderID {
		return nil, shared.NewDomainError("INVALID_INPUT", "Quote does not belong to this order")
	}

	result := &SelectionResult{Selected: chosen}

	switch chosen.Status {
	case QuoteStatusAccepted:
		result.Unchanged = true
		return result, nil
	case QuoteStatusCompleted:
		return nil, shared.NewDomainError("INVALID_STATE", "Shipping for this order has already been completed")
	case QuoteStatusRejected:
		return nil, shared.NewDomainError("INVALID_STATE", "Quote has been rejected and cannot be selected")
	}

	for _, q := range quotes {
		if q.ID == chosen.ID || q.OrderID != orderID {
			continue
		}
		switch q.Status {
		case QuoteStatusCompleted:
			return nil, shared.NewDomainError("INVALID_STATE", "Shipping for this order has already been completed")
		case QuoteStatusAccepted:
			if err := q.Reject(SupersededReason); err != nil {
				return nil, err
			}
			result.Superseded = q
			result.Changed = append(result.Changed, q)
		}
	}

	if err := chosen.Accept(); err != nil {
		return nil, err
	}
	result.Changed = append(result.Changed, chosen)

	return result, nil
}
