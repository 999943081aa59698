package domain

import (
	"cmp"
	"slices"
	"time"
)

// OrderStatus is the lifecycle status of a production order
type OrderStatus string

const (
	OrderStatusPlanned    OrderStatus = "PLANNED"
	OrderStatusScheduled  OrderStatus = "SCHEDULED"
	OrderStatusInProgress OrderStatus = "IN_PROGRESS"
	OrderStatusCompleted  OrderStatus = "COMPLETED"
	OrderStatusCancelled  OrderStatus = "CANCELLED"
)

// ProductionOrder is a request to produce a quantity of one SKU
type ProductionOrder struct {
	ID           string      `bson:"orderId" json:"id" yaml:"id"`
	OrderNumber  string      `bson:"orderNumber" json:"orderNumber" yaml:"orderNumber"`
	SKUID        string      `bson:"skuId" json:"skuId" yaml:"skuId"`
	Quantity     int         `bson:"quantity" json:"quantity" yaml:"quantity"`
	Priority     int         `bson:"priority" json:"priority" yaml:"priority"` // 1 (highest) to 10
	DueDate      time.Time   `bson:"dueDate" json:"dueDate" yaml:"dueDate"`
	Status       OrderStatus `bson:"status" json:"status" yaml:"status"`
	Frozen       bool        `bson:"frozen" json:"frozen" yaml:"frozen"`
	CustomerName string      `bson:"customerName,omitempty" json:"customerName,omitempty" yaml:"customerName,omitempty"`
}

// IsSchedulable reports whether the order may be placed on a line
func (o ProductionOrder) IsSchedulable() bool {
	return o.Status == OrderStatusPlanned || o.Status == OrderStatusScheduled
}

// OrderSort selects how a backlog is ordered before sequencing
type OrderSort string

const (
	OrderSortInput    OrderSort = "input"
	OrderSortDueDate  OrderSort = "due_date"
	OrderSortPriority OrderSort = "priority"
)

// SortOrders returns a re-ordered copy of orders. Frozen orders keep their
// index; the remaining slots are filled with the non-frozen orders sorted by
// the requested key. Sorting is stable.
func SortOrders(orders []ProductionOrder, by OrderSort) []ProductionOrder {
	sorted := slices.Clone(orders)
	if by == "" || by == OrderSortInput {
		return sorted
	}

	movable := make([]ProductionOrder, 0, len(orders))
	for _, o := range orders {
		if !o.Frozen {
			movable = append(movable, o)
		}
	}

	switch by {
	case OrderSortDueDate:
		slices.SortStableFunc(movable, func(a, b ProductionOrder) int {
			return a.DueDate.Compare(b.DueDate)
		})
	case OrderSortPriority:
		slices.SortStableFunc(movable, func(a, b ProductionOrder) int {
			if c := cmp.Compare(a.Priority, b.Priority); c != 0 {
				return c
			}
			return a.DueDate.Compare(b.DueDate)
		})
	}

	next := 0
	for i, o := range sorted {
		if o.Frozen {
			continue
		}
		sorted[i] = movable[next]
		next++
	}
	return sorted
}
