package domain

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testWindowStart = time.Date(2024, 6, 3, 6, 0, 0, 0, time.UTC)

func createTestWindow() Window {
	return Window{Start: testWindowStart, End: testWindowStart.Add(7 * 24 * time.Hour)}
}

func createTestLine(id string, status LineStatus) ProductionLine {
	return ProductionLine{
		ID:       id,
		Code:     id,
		Name:     "Line " + id,
		Capacity: LineCapacity{MaxRate: 5000, Efficiency: 0.9, Availability: 0.95, OEETarget: 0.85},
		Status:   status,
	}
}

func createTestOrder(id, skuID string, quantity int) ProductionOrder {
	return ProductionOrder{
		ID:          id,
		OrderNumber: "PO-" + id,
		SKUID:       skuID,
		Quantity:    quantity,
		Priority:    5,
		DueDate:     testWindowStart.Add(48 * time.Hour),
		Status:      OrderStatusPlanned,
	}
}

func TestProductionMinutes(t *testing.T) {
	tests := []struct {
		name     string
		quantity int
		rate     float64
		expected int
	}{
		{"Exact hours", 6000, 3000, 120},
		{"Rounds up", 1001, 3000, 21},
		{"Zero quantity", 0, 3000, 0},
		{"Negative quantity", -50, 3000, 0},
		{"Zero rate", 6000, 0, 0},
		{"Negative rate", 6000, -10, 0},
		{"Huge ratio is clamped", 1_000_000_000, 1e-12, MaxProductionMinutes},
		{"Infinite ratio is clamped", 1, 1e-320, MaxProductionMinutes},
		{"Just under the cap", 8783, 1, 526_980},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ProductionMinutes(tt.quantity, tt.rate))
		})
	}
}

func TestGreedyFirstFit_HugeOrderStaysConsistent(t *testing.T) {
	sku := createTestSKU("S1", FamilyA, "red")
	sku.Production.StandardRate = 1
	line := createTestLine("LINE-1", LineStatusActive)
	window := createTestWindow()

	in := SequenceInput{
		Orders: []ProductionOrder{
			createTestOrder("O1", "S1", 1_000_000_000_000),
			createTestOrder("O2", "S1", 60),
		},
		Lines:  []ProductionLine{line},
		SKUs:   IndexSKUs([]SKU{sku}),
		Matrix: BuildMatrix([]SKU{sku}, MatrixOptions{}),
		Window: window,
	}

	result, err := NewGreedyFirstFit().Sequence(context.Background(), in)
	require.NoError(t, err)
	require.Len(t, result.Scheduled, 1)

	block := result.Scheduled[0]
	assert.Equal(t, MaxProductionMinutes, block.ProductionMinutes)
	assert.Equal(t, MaxProductionMinutes, block.Duration)
	assert.Equal(t, time.Duration(block.Duration)*time.Minute, block.EndTime.Sub(block.StartTime))

	m := AggregateMetrics(result.Scheduled, in.Lines, window, window.Start)
	assertNoNaN(t, m)
	assert.InDelta(t, float64(MaxProductionMinutes), m.Makespan, 1e-9)
}

func TestGreedyFirstFit_SameSKUHasNoChangeover(t *testing.T) {
	sku := createTestSKU("SKU-1", FamilyA, "red")
	in := SequenceInput{
		Orders: []ProductionOrder{createTestOrder("O1", "SKU-1", 6000), createTestOrder("O2", "SKU-1", 3000)},
		Lines:  []ProductionLine{createTestLine("LINE-1", LineStatusActive)},
		SKUs:   IndexSKUs([]SKU{sku}),
		Matrix: BuildMatrix([]SKU{sku}, MatrixOptions{}),
		Window: createTestWindow(),
	}

	result, err := NewGreedyFirstFit().Sequence(context.Background(), in)

	require.NoError(t, err)
	require.Len(t, result.Scheduled, 2)
	assert.Empty(t, result.Unscheduled)

	first, second := result.Scheduled[0], result.Scheduled[1]
	assert.Equal(t, "BLK-O1", first.ID)
	assert.Equal(t, testWindowStart, first.StartTime)
	assert.Equal(t, 0, first.ChangeoverMinutes)
	assert.Empty(t, first.PreviousSKUID)
	assert.Nil(t, first.ChangeoverType)
	assert.Equal(t, 120, first.ProductionMinutes)
	assert.Equal(t, testWindowStart.Add(120*time.Minute), first.EndTime)

	assert.Equal(t, 0, second.ChangeoverMinutes)
	assert.Equal(t, second.SetupStart(), second.ProductionStart)
	assert.Equal(t, first.EndTime, second.StartTime)
	assert.Equal(t, "SKU-1", second.PreviousSKUID)
	assert.Equal(t, 60, second.Duration)
	assert.Equal(t, FamilyA.Color(), second.Color)
	assert.Equal(t, 3000.0, second.TargetRate)
}

func TestGreedyFirstFit_ChangeoverFromMatrix(t *testing.T) {
	skus := []SKU{createTestSKU("SKU-1", FamilyA, "red"), createTestSKU("SKU-2", FamilyA, "blue")}
	matrix := BuildMatrix(skus, MatrixOptions{})
	in := SequenceInput{
		Orders: []ProductionOrder{createTestOrder("O1", "SKU-1", 3000), createTestOrder("O2", "SKU-2", 3000)},
		Lines:  []ProductionLine{createTestLine("LINE-1", LineStatusActive)},
		SKUs:   IndexSKUs(skus),
		Matrix: matrix,
		Window: createTestWindow(),
	}

	result, err := NewGreedyFirstFit().Sequence(context.Background(), in)

	require.NoError(t, err)
	require.Len(t, result.Scheduled, 2)
	second := result.Scheduled[1]
	assert.Equal(t, 28, second.ChangeoverMinutes)
	require.NotNil(t, second.ChangeoverType)
	assert.Equal(t, ComplexityModerate, *second.ChangeoverType)
	assert.Equal(t, second.StartTime.Add(28*time.Minute), second.ProductionStart)
	assert.Equal(t, second.ProductionStart.Add(60*time.Minute), second.EndTime)
	assert.Equal(t, 88, second.Duration)
}

func TestGreedyFirstFit_MissingMatrixUsesFallback(t *testing.T) {
	skus := []SKU{createTestSKU("SKU-1", FamilyA, "red"), createTestSKU("SKU-2", FamilyB, "blue")}
	in := SequenceInput{
		Orders: []ProductionOrder{createTestOrder("O1", "SKU-1", 3000), createTestOrder("O2", "SKU-2", 3000)},
		Lines:  []ProductionLine{createTestLine("LINE-1", LineStatusActive)},
		SKUs:   IndexSKUs(skus),
		Window: createTestWindow(),
	}

	result, err := NewGreedyFirstFit().Sequence(context.Background(), in)

	require.NoError(t, err)
	require.Len(t, result.Scheduled, 2)
	assert.Equal(t, FallbackChangeoverMinutes, result.Scheduled[1].ChangeoverMinutes)
	assert.Equal(t, ComplexityModerate, *result.Scheduled[1].ChangeoverType)
}

func TestGreedyFirstFit_FirstFitAndUnscheduled(t *testing.T) {
	onBoth := createTestSKU("SKU-1", FamilyA, "red")
	onBoth.Compatibility.AllowedLines = []string{"LINE-2", "LINE-3"}
	onlyDown := createTestSKU("SKU-2", FamilyA, "blue")
	onlyDown.Compatibility.AllowedLines = []string{"LINE-1"}
	nowhere := createTestSKU("SKU-3", FamilyA, "green")
	nowhere.Compatibility.AllowedLines = nil

	in := SequenceInput{
		Orders: []ProductionOrder{
			createTestOrder("O1", "SKU-1", 3000),
			createTestOrder("O2", "SKU-2", 3000),
			createTestOrder("O3", "SKU-3", 3000),
			createTestOrder("O4", "SKU-X", 3000),
			createTestOrder("O5", "SKU-1", 3000),
		},
		Lines: []ProductionLine{
			createTestLine("LINE-1", LineStatusMaintenance),
			createTestLine("LINE-2", LineStatusActive),
			createTestLine("LINE-3", LineStatusActive),
		},
		SKUs:   IndexSKUs([]SKU{onBoth, onlyDown, nowhere}),
		Window: createTestWindow(),
	}

	result, err := NewGreedyFirstFit().Sequence(context.Background(), in)

	require.NoError(t, err)
	require.Len(t, result.Scheduled, 2)
	for _, b := range result.Scheduled {
		assert.Equal(t, "LINE-2", b.LineID)
	}
	assert.Equal(t, "O1", result.Scheduled[0].OrderID)
	assert.Equal(t, "O5", result.Scheduled[1].OrderID)

	require.Len(t, result.Unscheduled, 3)
	reasons := map[string]UnscheduledReason{}
	for _, u := range result.Unscheduled {
		reasons[u.Order.ID] = u.Reason
	}
	assert.Equal(t, ReasonNoCompatibleLine, reasons["O2"])
	assert.Equal(t, ReasonNoCompatibleLine, reasons["O3"])
	assert.Equal(t, ReasonUnknownSKU, reasons["O4"])
}

func TestGreedyFirstFit_WindowFilter(t *testing.T) {
	sku := createTestSKU("SKU-1", FamilyA, "red")
	window := Window{Start: testWindowStart, End: testWindowStart.Add(3 * time.Hour)}
	in := SequenceInput{
		Orders: []ProductionOrder{
			createTestOrder("O1", "SKU-1", 6000),
			createTestOrder("O2", "SKU-1", 3000),
			createTestOrder("O3", "SKU-1", 3000),
			createTestOrder("O4", "SKU-1", 3000),
		},
		Lines:  []ProductionLine{createTestLine("LINE-1", LineStatusActive)},
		SKUs:   IndexSKUs([]SKU{sku}),
		Window: window,
	}

	result, err := NewGreedyFirstFit().Sequence(context.Background(), in)

	require.NoError(t, err)
	// O1 at 0h, O2 at 2h, O3 at 3h (end is inclusive), O4 at 4h is filtered
	require.Len(t, result.Scheduled, 3)
	assert.Equal(t, "O3", result.Scheduled[2].OrderID)
	assert.Equal(t, window.End, result.Scheduled[2].StartTime)
	assert.Empty(t, result.Unscheduled)
}

func TestGreedyFirstFit_EveryCompatibleOrderGetsOneBlock(t *testing.T) {
	catalog := createTestCatalog()
	for i := range catalog {
		catalog[i].Compatibility.AllowedLines = []string{fmt.Sprintf("LINE-%d", i%3+1)}
	}
	lines := []ProductionLine{
		createTestLine("LINE-1", LineStatusActive),
		createTestLine("LINE-2", LineStatusActive),
		createTestLine("LINE-3", LineStatusActive),
	}

	orders := make([]ProductionOrder, 0, 40)
	for i := 0; i < 40; i++ {
		sku := catalog[(i*7)%len(catalog)]
		orders = append(orders, createTestOrder(fmt.Sprintf("O%02d", i), sku.ID, 500+i*250))
	}

	in := SequenceInput{
		Orders: orders,
		Lines:  lines,
		SKUs:   IndexSKUs(catalog),
		Matrix: BuildMatrix(catalog, MatrixOptions{Variance: NewSeededVariance(7)}),
		Window: Window{Start: testWindowStart, End: testWindowStart.Add(365 * 24 * time.Hour)},
	}

	result, err := NewGreedyFirstFit().Sequence(context.Background(), in)

	require.NoError(t, err)
	assert.Empty(t, result.Unscheduled)
	require.Len(t, result.Scheduled, len(orders))

	count := map[string]int{}
	for _, b := range result.Scheduled {
		count[b.OrderID]++
		assert.Equal(t, b.ChangeoverMinutes+b.ProductionMinutes, b.Duration)
		assert.Equal(t, b.StartTime.Add(time.Duration(b.Duration)*time.Minute), b.EndTime)
	}
	for _, o := range orders {
		assert.Equal(t, 1, count[o.ID], o.ID)
	}
	for _, issue := range ValidateSchedule(result.Scheduled) {
		assert.NotEqual(t, IssueOverlap, issue.Type)
	}
}

func TestGreedyFirstFit_Cancelled(t *testing.T) {
	sku := createTestSKU("SKU-1", FamilyA, "red")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewGreedyFirstFit().Sequence(ctx, SequenceInput{
		Orders: []ProductionOrder{createTestOrder("O1", "SKU-1", 100)},
		Lines:  []ProductionLine{createTestLine("LINE-1", LineStatusActive)},
		SKUs:   IndexSKUs([]SKU{sku}),
		Window: createTestWindow(),
	})

	assert.ErrorIs(t, err, context.Canceled)
}
