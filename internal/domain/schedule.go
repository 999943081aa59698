package domain

import "time"

// BlockStatus is the status of a block projected at a point in time
type BlockStatus string

const (
	BlockStatusCompleted  BlockStatus = "COMPLETED"
	BlockStatusRunning    BlockStatus = "RUNNING"
	BlockStatusChangeover BlockStatus = "CHANGEOVER"
	BlockStatusReady      BlockStatus = "READY"
	BlockStatusPlanned    BlockStatus = "PLANNED"
)

// ReadyLookahead is how far ahead of its setup start a block counts as READY
const ReadyLookahead = 2 * time.Hour

// DefaultWindowLength is used when a window has no length
const DefaultWindowLength = 24 * time.Hour

// Window is an inclusive scheduling time range
type Window struct {
	Start time.Time `bson:"start" json:"start"`
	End   time.Time `bson:"end" json:"end"`
}

// NewWindow validates and creates a window
func NewWindow(start, end time.Time) (Window, error) {
	if end.Before(start) {
		return Window{}, ErrInvalidWindow
	}
	return Window{Start: start, End: end}, nil
}

// Minutes returns the window length in minutes, 0 when end is not after start
func (w Window) Minutes() float64 {
	if !w.End.After(w.Start) {
		return 0
	}
	return w.End.Sub(w.Start).Minutes()
}

// Contains reports whether t lies within [Start, End]
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// ScheduleBlock is one production run on one line, with its preceding changeover
type ScheduleBlock struct {
	ID                string      `bson:"blockId" json:"id"`
	OrderID           string      `bson:"orderId" json:"orderId"`
	OrderNumber       string      `bson:"orderNumber" json:"orderNumber"`
	SKUID             string      `bson:"skuId" json:"skuId"`
	SKUCode           string      `bson:"skuCode" json:"skuCode"`
	LineID            string      `bson:"lineId" json:"lineId"`
	StartTime         time.Time   `bson:"startTime" json:"startTime"`
	ProductionStart   time.Time   `bson:"productionStart" json:"productionStart"`
	EndTime           time.Time   `bson:"endTime" json:"endTime"`
	Duration          int         `bson:"duration" json:"duration"`
	ChangeoverMinutes int         `bson:"changeoverMinutes" json:"changeoverMinutes"`
	ProductionMinutes int         `bson:"productionMinutes" json:"productionMinutes"`
	ChangeoverType    *Complexity `bson:"changeoverType,omitempty" json:"changeoverType,omitempty"`
	PreviousSKUID     string      `bson:"previousSkuId,omitempty" json:"previousSkuId,omitempty"`
	Quantity          int         `bson:"quantity" json:"quantity"`
	DueDate           time.Time   `bson:"dueDate" json:"dueDate"`
	TargetRate        float64     `bson:"targetRate" json:"targetRate"`
	ActualRate        *float64    `bson:"actualRate,omitempty" json:"actualRate,omitempty"`
	OEE               *float64    `bson:"oee,omitempty" json:"oee,omitempty"`
	Color             string      `bson:"color" json:"color"`
}

// SetupStart is the start of the changeover, equal to StartTime
func (b ScheduleBlock) SetupStart() time.Time {
	return b.StartTime
}

// BlockStatusAt projects the status of a block at now. It never mutates the block.
// The end instant itself still counts as RUNNING.
func BlockStatusAt(b ScheduleBlock, now time.Time) BlockStatus {
	switch {
	case b.EndTime.Before(now):
		return BlockStatusCompleted
	case !now.Before(b.ProductionStart):
		return BlockStatusRunning
	case !now.Before(b.StartTime):
		return BlockStatusChangeover
	case b.StartTime.Before(now.Add(ReadyLookahead)):
		return BlockStatusReady
	default:
		return BlockStatusPlanned
	}
}

// UnscheduledReason explains why an order produced no block
type UnscheduledReason string

const (
	ReasonNoCompatibleLine UnscheduledReason = "no_compatible_line"
	ReasonUnknownSKU       UnscheduledReason = "unknown_sku"
)

// UnscheduledOrder is an order the sequencer could not place
type UnscheduledOrder struct {
	Order  ProductionOrder   `bson:"order" json:"order"`
	Reason UnscheduledReason `bson:"reason" json:"reason"`
}

// ScheduleResult is the outcome of a sequencing run
type ScheduleResult struct {
	Scheduled   []ScheduleBlock    `json:"scheduled"`
	Unscheduled []UnscheduledOrder `json:"unscheduled"`
}

// Schedule is a persisted scheduling run
type Schedule struct {
	ScheduleID    string             `bson:"scheduleId"`
	Name          string             `bson:"name"`
	Strategy      string             `bson:"strategy"`
	Window        Window             `bson:"window"`
	Blocks        []ScheduleBlock    `bson:"blocks"`
	Unscheduled   []UnscheduledOrder `bson:"unscheduled"`
	Metrics       ScheduleMetrics    `bson:"metrics"`
	MatrixVersion string             `bson:"matrixVersion"`
	CreatedAt     time.Time          `bson:"createdAt"`

	domainEvents []DomainEvent
}

// NewSchedule creates a schedule snapshot from a sequencing result and
// records a ScheduleGeneratedEvent
func NewSchedule(id, name, strategy string, window Window, result ScheduleResult, metrics ScheduleMetrics, matrixVersion string, now time.Time) *Schedule {
	s := &Schedule{
		ScheduleID:    id,
		Name:          name,
		Strategy:      strategy,
		Window:        window,
		Blocks:        result.Scheduled,
		Unscheduled:   result.Unscheduled,
		Metrics:       metrics,
		MatrixVersion: matrixVersion,
		CreatedAt:     now,
	}

	s.addDomainEvent(&ScheduleGeneratedEvent{
		ScheduleID:             id,
		Strategy:               strategy,
		WindowStart:            window.Start,
		WindowEnd:              window.End,
		BlockCount:             len(result.Scheduled),
		UnscheduledCount:       len(result.Unscheduled),
		TotalChangeoverMinutes: metrics.TotalChangeoverMinutes,
		AvgUtilization:         metrics.AvgUtilization,
		MatrixVersion:          matrixVersion,
		GeneratedAt:            now,
	})
	return s
}

// BlocksForLine returns the blocks on a line; an empty line ID returns all blocks
func (s *Schedule) BlocksForLine(lineID string) []ScheduleBlock {
	if lineID == "" {
		return s.Blocks
	}
	out := make([]ScheduleBlock, 0)
	for _, b := range s.Blocks {
		if b.LineID == lineID {
			out = append(out, b)
		}
	}
	return out
}

// ApplyProductionActuals attaches recorded actuals to the blocks of matching orders
func (s *Schedule) ApplyProductionActuals(actuals map[string]ProductionActual) {
	for i := range s.Blocks {
		a, ok := actuals[s.Blocks[i].OrderID]
		if !ok {
			continue
		}
		rate, oee := a.ActualRate, a.OEE
		s.Blocks[i].ActualRate = &rate
		s.Blocks[i].OEE = &oee
	}
}

func (s *Schedule) addDomainEvent(event DomainEvent) {
	s.domainEvents = append(s.domainEvents, event)
}

// GetDomainEvents returns all pending domain events
func (s *Schedule) GetDomainEvents() []DomainEvent {
	return s.domainEvents
}

// ClearDomainEvents clears all pending domain events
func (s *Schedule) ClearDomainEvents() {
	s.domainEvents = nil
}
