package fixtures

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/dallyp22/Scheduler-VS/internal/domain"
)

//go:embed default_plant.yaml
var defaultPlant []byte

// OrderFixture is a production order whose due date may be given relative
// to the scheduling reference time
type OrderFixture struct {
	domain.ProductionOrder `yaml:",inline"`
	DueInHours             float64 `yaml:"dueInHours,omitempty"`
}

// Plant is a YAML description of a plant: its lines, SKUs and order backlog
type Plant struct {
	Lines  []domain.ProductionLine `yaml:"lines"`
	SKUs   []domain.SKU            `yaml:"skus"`
	Orders []OrderFixture          `yaml:"orders"`
}

// Default returns the embedded demo plant
func Default() (*Plant, error) {
	return Parse(defaultPlant)
}

// Load reads a plant fixture from disk
func Load(path string) (*Plant, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read plant fixture: %w", err)
	}
	return Parse(data)
}

// LoadOrDefault loads the fixture at path, or the embedded plant when path is empty
func LoadOrDefault(path string) (*Plant, error) {
	if path == "" {
		return Default()
	}
	return Load(path)
}

// Parse decodes and validates a plant fixture
func Parse(data []byte) (*Plant, error) {
	var plant Plant
	if err := yaml.Unmarshal(data, &plant); err != nil {
		return nil, fmt.Errorf("failed to parse plant fixture: %w", err)
	}

	plant.applyDefaults()
	if err := plant.Validate(); err != nil {
		return nil, err
	}
	return &plant, nil
}

func (p *Plant) applyDefaults() {
	for i := range p.Lines {
		if p.Lines[i].Status == "" {
			p.Lines[i].Status = domain.LineStatusActive
		}
	}
	for i := range p.SKUs {
		if p.SKUs[i].Version == 0 {
			p.SKUs[i].Version = 1
		}
	}
	for i := range p.Orders {
		if p.Orders[i].Status == "" {
			p.Orders[i].Status = domain.OrderStatusPlanned
		}
		if p.Orders[i].Priority == 0 {
			p.Orders[i].Priority = 5
		}
	}
}

// Validate checks SKU fields and ID uniqueness
func (p *Plant) Validate() error {
	lineIDs := make(map[string]bool, len(p.Lines))
	for _, l := range p.Lines {
		if l.ID == "" {
			return fmt.Errorf("line %q: id is required", l.Name)
		}
		if lineIDs[l.ID] {
			return fmt.Errorf("duplicate line id %q", l.ID)
		}
		lineIDs[l.ID] = true
	}

	skuIDs := make(map[string]bool, len(p.SKUs))
	for _, s := range p.SKUs {
		if err := s.Validate(); err != nil {
			return fmt.Errorf("sku %q: %w", s.ID, err)
		}
		if skuIDs[s.ID] {
			return fmt.Errorf("duplicate sku id %q", s.ID)
		}
		skuIDs[s.ID] = true
	}

	orderIDs := make(map[string]bool, len(p.Orders))
	for _, o := range p.Orders {
		if o.ID == "" {
			return fmt.Errorf("order %q: id is required", o.OrderNumber)
		}
		if orderIDs[o.ID] {
			return fmt.Errorf("duplicate order id %q", o.ID)
		}
		orderIDs[o.ID] = true
	}
	return nil
}

// ProductionOrders resolves the backlog against a reference time. Orders with
// dueInHours get a due date relative to ref; absolute due dates are kept.
func (p *Plant) ProductionOrders(ref time.Time) []domain.ProductionOrder {
	orders := make([]domain.ProductionOrder, len(p.Orders))
	for i, o := range p.Orders {
		orders[i] = o.ProductionOrder
		if o.DueInHours != 0 && o.DueDate.IsZero() {
			orders[i].DueDate = ref.Add(time.Duration(o.DueInHours * float64(time.Hour)))
		}
	}
	return orders
}
