package seller

import (
	"context"

	"github.com/google/uuid"
)

// PaymentPreferenceRepository defines the persistence contract for payment preferences
type PaymentPreferenceRepository interface {
	// FindBySeller returns shared.ErrNotFound when the seller has never saved preferences
	FindBySeller(ctx context.Context, tenantID, sellerID uuid.UUID) (*PaymentPreferences, error)

	// Save upserts the seller's preferences; an empty method list is refused
	Save(ctx context.Context, prefs *PaymentPreferences) error
}
