package domain

import (
	"context"
	"math"
	"time"
)

// SequenceInput is everything a sequencing strategy needs for one run
type SequenceInput struct {
	Orders []ProductionOrder
	Lines  []ProductionLine
	SKUs   map[string]SKU
	// Matrix may be nil, in which case every changeover uses the fallback.
	Matrix *ChangeoverMatrix
	Window Window
}

// SequencingStrategy turns a backlog of orders into timestamped blocks
type SequencingStrategy interface {
	Name() string
	Sequence(ctx context.Context, in SequenceInput) (ScheduleResult, error)
}

// GreedyFirstFit assigns each order to the first compatible active line and
// runs each line's queue in input order. It does not re-sort orders.
type GreedyFirstFit struct{}

// NewGreedyFirstFit creates the reference sequencing strategy
func NewGreedyFirstFit() *GreedyFirstFit {
	return &GreedyFirstFit{}
}

// Name returns the strategy name
func (g *GreedyFirstFit) Name() string {
	return "greedy_first_fit"
}

// Sequence runs the assignment and sequencing pass
func (g *GreedyFirstFit) Sequence(ctx context.Context, in SequenceInput) (ScheduleResult, error) {
	lines := ActiveLines(in.Lines)
	result := ScheduleResult{
		Scheduled:   make([]ScheduleBlock, 0, len(in.Orders)),
		Unscheduled: make([]UnscheduledOrder, 0),
	}

	queues := make(map[string][]ProductionOrder, len(lines))
	for _, order := range in.Orders {
		sku, ok := in.SKUs[order.SKUID]
		if !ok {
			result.Unscheduled = append(result.Unscheduled, UnscheduledOrder{Order: order, Reason: ReasonUnknownSKU})
			continue
		}
		lineID, ok := firstCompatibleLine(sku, lines)
		if !ok {
			result.Unscheduled = append(result.Unscheduled, UnscheduledOrder{Order: order, Reason: ReasonNoCompatibleLine})
			continue
		}
		queues[lineID] = append(queues[lineID], order)
	}

	for _, line := range lines {
		if err := ctx.Err(); err != nil {
			return ScheduleResult{}, err
		}
		for _, block := range sequenceLine(line, queues[line.ID], in) {
			if in.Window.Contains(block.StartTime) {
				result.Scheduled = append(result.Scheduled, block)
			}
		}
	}
	return result, nil
}

func firstCompatibleLine(sku SKU, lines []ProductionLine) (string, bool) {
	for _, line := range lines {
		if sku.CanRunOn(line.ID) {
			return line.ID, true
		}
	}
	return "", false
}

func sequenceLine(line ProductionLine, queue []ProductionOrder, in SequenceInput) []ScheduleBlock {
	blocks := make([]ScheduleBlock, 0, len(queue))
	cursor := in.Window.Start
	previous := ""

	for _, order := range queue {
		sku := in.SKUs[order.SKUID]

		changeover := 0
		var changeoverType *Complexity
		if previous != "" && previous != sku.ID {
			minutes, complexity := in.Matrix.ChangeoverMinutes(previous, sku.ID)
			changeover = minutes
			changeoverType = &complexity
		}

		production := ProductionMinutes(order.Quantity, sku.Production.StandardRate)
		productionStart := cursor.Add(time.Duration(changeover) * time.Minute)
		end := productionStart.Add(time.Duration(production) * time.Minute)

		blocks = append(blocks, ScheduleBlock{
			ID:                "BLK-" + order.ID,
			OrderID:           order.ID,
			OrderNumber:       order.OrderNumber,
			SKUID:             sku.ID,
			SKUCode:           sku.Code,
			LineID:            line.ID,
			StartTime:         cursor,
			ProductionStart:   productionStart,
			EndTime:           end,
			Duration:          changeover + production,
			ChangeoverMinutes: changeover,
			ProductionMinutes: production,
			ChangeoverType:    changeoverType,
			PreviousSKUID:     previous,
			Quantity:          order.Quantity,
			DueDate:           order.DueDate,
			TargetRate:        sku.Production.StandardRate,
			Color:             sku.Family.Color(),
		})

		cursor = end
		previous = sku.ID
	}
	return blocks
}

// MaxProductionMinutes caps the production time of a single block at one
// year, which keeps block end times and durations in range
const MaxProductionMinutes = 366 * 24 * 60

// ProductionMinutes returns ceil(quantity / rate × 60), clamped to
// MaxProductionMinutes. Non-positive quantities or rates produce zero minutes.
func ProductionMinutes(quantity int, ratePerHour float64) int {
	if quantity <= 0 || ratePerHour <= 0 {
		return 0
	}
	minutes := math.Ceil(float64(quantity) / ratePerHour * 60)
	if math.IsNaN(minutes) {
		return 0
	}
	if minutes > MaxProductionMinutes {
		return MaxProductionMinutes
	}
	return int(minutes)
}
