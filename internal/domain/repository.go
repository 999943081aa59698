package domain

import "context"

// SKURepository defines the interface for SKU persistence
type SKURepository interface {
	// Save persists a SKU (create or update)
	Save(ctx context.Context, sku *SKU) error

	// FindByID retrieves a SKU by its ID
	FindByID(ctx context.Context, skuID string) (*SKU, error)

	// FindAll retrieves every SKU ordered by ID
	FindAll(ctx context.Context) ([]SKU, error)
}

// LineRepository defines the interface for production line persistence
type LineRepository interface {
	// Save persists a line (create or update)
	Save(ctx context.Context, line *ProductionLine) error

	// FindAll retrieves every line ordered by ID
	FindAll(ctx context.Context) ([]ProductionLine, error)
}

// OrderRepository defines the interface for production order persistence
type OrderRepository interface {
	// Save persists an order (create or update)
	Save(ctx context.Context, order *ProductionOrder) error

	// FindByStatus retrieves orders in any of the given statuses, all orders when none are given
	FindByStatus(ctx context.Context, statuses ...OrderStatus) ([]ProductionOrder, error)
}

// ScheduleRepository defines the interface for schedule persistence
type ScheduleRepository interface {
	// Save persists a schedule run
	Save(ctx context.Context, schedule *Schedule) error

	// FindByID retrieves a schedule run by its ID
	FindByID(ctx context.Context, scheduleID string) (*Schedule, error)

	// FindRecent retrieves the most recent runs, newest first
	FindRecent(ctx context.Context, limit int) ([]*Schedule, error)
}

// ActualsRepository defines the interface for shop-floor feedback persistence
type ActualsRepository interface {
	// SaveChangeover stores a measured changeover
	SaveChangeover(ctx context.Context, actual ChangeoverActual) error

	// SaveProduction stores measured production performance for an order
	SaveProduction(ctx context.Context, actual ProductionActual) error

	// ChangeoverHistory summarizes recorded changeovers per pair
	ChangeoverHistory(ctx context.Context) (map[PairKey]ChangeoverHistory, error)

	// ProductionByOrder retrieves the latest production actual per order
	ProductionByOrder(ctx context.Context, orderIDs []string) (map[string]ProductionActual, error)
}

// EventPublisher publishes domain events
type EventPublisher interface {
	Publish(ctx context.Context, event DomainEvent) error
}
