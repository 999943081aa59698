package domain

import (
	"fmt"
	"math"
	"time"
)

// Feedback sources
const (
	FeedbackSourceAPI   = "api"
	FeedbackSourceKafka = "kafka"
)

// ChangeoverActual is a measured changeover on the shop floor
type ChangeoverActual struct {
	FromSKUID     string    `bson:"fromSkuId" json:"fromSkuId"`
	ToSKUID       string    `bson:"toSkuId" json:"toSkuId"`
	LineID        string    `bson:"lineId" json:"lineId"`
	ActualMinutes float64   `bson:"actualMinutes" json:"actualMinutes"`
	RecordedAt    time.Time `bson:"recordedAt" json:"recordedAt"`
}

// Validate checks a changeover actual before it is stored
func (a ChangeoverActual) Validate() error {
	if a.FromSKUID == "" || a.ToSKUID == "" {
		return fmt.Errorf("%w: from and to sku are required", ErrInvalidActual)
	}
	if a.ActualMinutes < 0 {
		return fmt.Errorf("%w: actual minutes must not be negative", ErrInvalidActual)
	}
	return nil
}

// ProductionActual is the measured performance of a production order
type ProductionActual struct {
	OrderID    string    `bson:"orderId" json:"orderId"`
	LineID     string    `bson:"lineId" json:"lineId"`
	ActualRate float64   `bson:"actualRate" json:"actualRate"`
	OEE        float64   `bson:"oee" json:"oee"`
	RecordedAt time.Time `bson:"recordedAt" json:"recordedAt"`
}

// Validate checks a production actual before it is stored
func (a ProductionActual) Validate() error {
	if a.OrderID == "" {
		return fmt.Errorf("%w: order id is required", ErrInvalidActual)
	}
	if a.ActualRate < 0 {
		return fmt.Errorf("%w: actual rate must not be negative", ErrInvalidActual)
	}
	if a.OEE < 0 || a.OEE > 1 {
		return fmt.Errorf("%w: oee must be between 0 and 1", ErrInvalidActual)
	}
	return nil
}

// SummarizeActuals groups actuals by pair and computes count, mean,
// population standard deviation and the latest recording time
func SummarizeActuals(actuals []ChangeoverActual) map[PairKey]ChangeoverHistory {
	grouped := make(map[PairKey][]ChangeoverActual)
	for _, a := range actuals {
		key := PairKey{From: a.FromSKUID, To: a.ToSKUID}
		grouped[key] = append(grouped[key], a)
	}

	history := make(map[PairKey]ChangeoverHistory, len(grouped))
	for key, group := range grouped {
		var sum float64
		var last time.Time
		for _, a := range group {
			sum += a.ActualMinutes
			if a.RecordedAt.After(last) {
				last = a.RecordedAt
			}
		}
		mean := sum / float64(len(group))

		var sq float64
		for _, a := range group {
			d := a.ActualMinutes - mean
			sq += d * d
		}

		history[key] = ChangeoverHistory{
			Count:          len(group),
			MeanMinutes:    mean,
			StdDevMinutes:  math.Sqrt(sq / float64(len(group))),
			LastRecordedAt: last,
		}
	}
	return history
}
