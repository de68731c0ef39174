package order

import (
	"context"

	"github.com/google/uuid"
)

// TrackingCache stores rendered tracking views. Get returns (nil, nil) on a miss.
type TrackingCache interface {
	Get(ctx context.Context, tenantID, orderID uuid.UUID) (*TrackingView, error)
	Set(ctx context.Context, tenantID, orderID uuid.UUID, view *TrackingView) error
	Delete(ctx context.Context, tenantID, orderID uuid.UUID) error
}

// Email is an outgoing buyer notification
type Email struct {
	To        string
	ToName    string
	Subject   string
	PlainText string
	HTML      string
}

// Mailer delivers transactional email
type Mailer interface {
	Send(ctx context.Context, email Email) error
}
