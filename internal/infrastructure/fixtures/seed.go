package fixtures

import (
	"context"
	"fmt"
	"time"

	"github.com/dallyp22/Scheduler-VS/internal/domain"
)

// Registry is the set of stores a plant fixture is loaded into
type Registry struct {
	SKUs   domain.SKURepository
	Lines  domain.LineRepository
	Orders domain.OrderRepository
}

// Seed loads the plant into an empty registry. It reports whether anything
// was written; a registry that already holds SKUs is left untouched.
func (p *Plant) Seed(ctx context.Context, reg Registry, ref time.Time) (bool, error) {
	existing, err := reg.SKUs.FindAll(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to check sku registry: %w", err)
	}
	if len(existing) > 0 {
		return false, nil
	}

	for i := range p.Lines {
		if err := reg.Lines.Save(ctx, &p.Lines[i]); err != nil {
			return false, fmt.Errorf("failed to seed line %s: %w", p.Lines[i].ID, err)
		}
	}
	for i := range p.SKUs {
		if err := reg.SKUs.Save(ctx, &p.SKUs[i]); err != nil {
			return false, fmt.Errorf("failed to seed sku %s: %w", p.SKUs[i].ID, err)
		}
	}
	for _, order := range p.ProductionOrders(ref) {
		if err := reg.Orders.Save(ctx, &order); err != nil {
			return false, fmt.Errorf("failed to seed order %s: %w", order.ID, err)
		}
	}
	return true, nil
}
