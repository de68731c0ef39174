package shared

import (
	"time"

	"github.com/google/uuid"
)

// AggregateRoot is what the event dispatcher drains after a save
type AggregateRoot interface {
	GetID() uuid.UUID
	AddDomainEvent(event DomainEvent)
	GetDomainEvents() []DomainEvent
	ClearDomainEvents()
}

// TenantAggregateRoot is embedded by every marketplace aggregate. Version
// starts at 1 and is bumped by the repository on each locked save.
type TenantAggregateRoot struct {
	ID        uuid.UUID
	TenantID  uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
	Version   int

	pending []DomainEvent
}

func NewTenantAggregateRoot(tenantID uuid.UUID) TenantAggregateRoot {
	now := time.Now()
	return TenantAggregateRoot{
		ID:        uuid.New(),
		TenantID:  tenantID,
		CreatedAt: now,
		UpdatedAt: now,
		Version:   1,
	}
}

// RestoreTenantAggregateRoot rebuilds the root of a persisted aggregate.
// No events are pending after a load.
func RestoreTenantAggregateRoot(id, tenantID uuid.UUID, createdAt, updatedAt time.Time, version int) TenantAggregateRoot {
	return TenantAggregateRoot{
		ID:        id,
		TenantID:  tenantID,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
		Version:   version,
	}
}

func (a *TenantAggregateRoot) GetID() uuid.UUID { return a.ID }

// BelongsTo reports whether the aggregate lives in the given tenant
func (a *TenantAggregateRoot) BelongsTo(tenantID uuid.UUID) bool {
	return a.TenantID == tenantID
}

func (a *TenantAggregateRoot) AddDomainEvent(event DomainEvent) {
	a.pending = append(a.pending, event)
}

func (a *TenantAggregateRoot) GetDomainEvents() []DomainEvent {
	return a.pending
}

func (a *TenantAggregateRoot) ClearDomainEvents() {
	a.pending = nil
}
