package domain

import (
	"math"
	"slices"
	"time"
)

const (
	bottleneckUtilization = 95.0
	adherenceRatio        = 0.90
)

// ScheduleMetrics is a derived aggregate over a block set. Percentages are
// 0-100, AvgOEE is a 0-1 fraction, Makespan is in minutes and Throughput in
// units per hour.
type ScheduleMetrics struct {
	LineUtilization         map[string]float64 `bson:"lineUtilization" json:"lineUtilization"`
	AvgUtilization          float64            `bson:"avgUtilization" json:"avgUtilization"`
	TotalChangeovers        int                `bson:"totalChangeovers" json:"totalChangeovers"`
	TotalChangeoverMinutes  int                `bson:"totalChangeoverMinutes" json:"totalChangeoverMinutes"`
	AvgChangeoverMinutes    float64            `bson:"avgChangeoverMinutes" json:"avgChangeoverMinutes"`
	ChangeoversByComplexity map[Complexity]int `bson:"changeoversByComplexity" json:"changeoversByComplexity"`
	TotalProductionHours    float64            `bson:"totalProductionHours" json:"totalProductionHours"`
	TotalUnits              int                `bson:"totalUnits" json:"totalUnits"`
	ScheduledOrders         int                `bson:"scheduledOrders" json:"scheduledOrders"`
	CompletedOrders         int                `bson:"completedOrders" json:"completedOrders"`
	OnTimePercentage        float64            `bson:"onTimePercentage" json:"onTimePercentage"`
	ScheduleAdherence       float64            `bson:"scheduleAdherence" json:"scheduleAdherence"`
	AvgOEE                  float64            `bson:"avgOee" json:"avgOee"`
	Makespan                float64            `bson:"makespan" json:"makespan"`
	Throughput              float64            `bson:"throughput" json:"throughput"`
	Bottlenecks             []string           `bson:"bottlenecks" json:"bottlenecks"`
}

// AggregateMetrics derives schedule metrics from blocks. Completion is
// judged at now. Every ratio is guarded so the result never holds NaN or Inf.
func AggregateMetrics(blocks []ScheduleBlock, lines []ProductionLine, window Window, now time.Time) ScheduleMetrics {
	m := ScheduleMetrics{
		LineUtilization:         make(map[string]float64, len(lines)),
		ChangeoversByComplexity: make(map[Complexity]int, len(Complexities)),
		Bottlenecks:             []string{},
	}
	for _, c := range Complexities {
		m.ChangeoversByComplexity[c] = 0
	}

	windowMinutes := window.Minutes()
	if windowMinutes == 0 {
		windowMinutes = DefaultWindowLength.Minutes()
	}

	productionByLine := make(map[string]int, len(lines))
	productionMinutes := 0
	scheduled := make(map[string]bool, len(blocks))
	completedOrders := make(map[string]bool)
	var completed, onTime, adherent int
	var oeeSum float64

	for _, b := range blocks {
		production := b.Duration - b.ChangeoverMinutes
		productionByLine[b.LineID] += production
		productionMinutes += production
		m.TotalUnits += b.Quantity
		scheduled[b.OrderID] = true

		if b.ChangeoverMinutes > 0 {
			m.TotalChangeovers++
			m.TotalChangeoverMinutes += b.ChangeoverMinutes
		}
		if b.ChangeoverType != nil {
			m.ChangeoversByComplexity[*b.ChangeoverType]++
		}

		if BlockStatusAt(b, now) != BlockStatusCompleted {
			continue
		}
		completed++
		completedOrders[b.OrderID] = true
		if !b.DueDate.IsZero() && !b.EndTime.After(b.DueDate) {
			onTime++
		}
		if b.ActualRate != nil && b.TargetRate > 0 && *b.ActualRate/b.TargetRate > adherenceRatio {
			adherent++
		}
		if b.OEE != nil {
			oeeSum += *b.OEE
		}
	}

	activeLines := 0
	var utilizationSum float64
	for _, line := range lines {
		utilization := safeDiv(float64(productionByLine[line.ID]), windowMinutes) * 100
		m.LineUtilization[line.ID] = utilization
		if utilization > bottleneckUtilization {
			m.Bottlenecks = append(m.Bottlenecks, line.ID)
		}
		if line.IsActive() {
			activeLines++
			utilizationSum += utilization
		}
	}
	slices.Sort(m.Bottlenecks)

	m.AvgUtilization = safeDiv(utilizationSum, float64(activeLines))
	m.AvgChangeoverMinutes = safeDiv(float64(m.TotalChangeoverMinutes), float64(m.TotalChangeovers))
	m.TotalProductionHours = float64(productionMinutes) / 60
	m.ScheduledOrders = len(scheduled)
	m.CompletedOrders = len(completedOrders)
	m.OnTimePercentage = safeDiv(float64(onTime), float64(completed)) * 100
	m.ScheduleAdherence = safeDiv(float64(adherent), float64(completed)) * 100
	m.AvgOEE = safeDiv(oeeSum, float64(completed))
	m.Makespan = makespan(blocks)
	m.Throughput = safeDiv(float64(m.TotalUnits), m.TotalProductionHours)
	return m
}

func makespan(blocks []ScheduleBlock) float64 {
	if len(blocks) == 0 {
		return 0
	}
	first, last := blocks[0].StartTime, blocks[0].EndTime
	for _, b := range blocks[1:] {
		if b.StartTime.Before(first) {
			first = b.StartTime
		}
		if b.EndTime.After(last) {
			last = b.EndTime
		}
	}
	return last.Sub(first).Minutes()
}

func safeDiv(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	v := num / den
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
