package domain

import (
	"cmp"
	"math"
	"slices"
	"sync"
	"time"
)

// Fallback used when a pair is missing from the matrix
const (
	FallbackChangeoverMinutes    = 20
	FallbackChangeoverComplexity = ComplexityModerate
)

// deviation beyond which recorded actuals flag a cell for review
const reviewDeviationRatio = 0.25

const criticalNote = "Requires thorough documentation and quality sign-off"

// PairKey identifies a directed SKU pair
type PairKey struct {
	From string `bson:"fromSkuId" json:"fromSkuId"`
	To   string `bson:"toSkuId" json:"toSkuId"`
}

// ValidationStatus tells how trustworthy a cell's times are
type ValidationStatus string

const (
	ValidationValidated   ValidationStatus = "validated"
	ValidationEstimated   ValidationStatus = "estimated"
	ValidationNeedsReview ValidationStatus = "needs_review"
)

// CellValidation is the validation metadata of a matrix cell
type CellValidation struct {
	Status            ValidationStatus `json:"status"`
	Confidence        float64          `json:"confidence"`
	LastActual        *time.Time       `json:"lastActual,omitempty"`
	AvgActualTime     float64          `json:"avgActualTime,omitempty"`
	StandardDeviation float64          `json:"standardDeviation,omitempty"`
	SampleCount       int              `json:"sampleCount,omitempty"`
}

// ChangeoverCell is one directed entry of the changeover matrix
type ChangeoverCell struct {
	FromSKUID   string `json:"fromSkuId"`
	ToSKUID     string `json:"toSkuId"`
	FromSKUCode string `json:"fromSkuCode"`
	ToSKUCode   string `json:"toSkuCode"`
	ChangeoverResult
	Validation CellValidation `json:"validation"`
	Notes      string         `json:"notes,omitempty"`
}

// IsSelf reports whether the cell is a SKU-to-itself pair
func (c ChangeoverCell) IsSelf() bool {
	return c.FromSKUID == c.ToSKUID
}

// ChangeoverHistory summarizes recorded actuals for a pair
type ChangeoverHistory struct {
	Count          int       `bson:"count" json:"count"`
	MeanMinutes    float64   `bson:"meanMinutes" json:"meanMinutes"`
	StdDevMinutes  float64   `bson:"stdDevMinutes" json:"stdDevMinutes"`
	LastRecordedAt time.Time `bson:"lastRecordedAt" json:"lastRecordedAt"`
}

// MatrixOptions controls a matrix build
type MatrixOptions struct {
	// Variance is optional; nil builds exact values.
	Variance VarianceModel
	History  map[PairKey]ChangeoverHistory
	Version  string
}

// ChangeoverMatrix is the dense |skus|² changeover mapping
type ChangeoverMatrix struct {
	Version string
	skuIDs  []string
	cells   map[PairKey]ChangeoverCell
}

// BuildMatrix computes every ordered pair of the given SKUs, self pairs included.
// Duplicate IDs keep their first occurrence. Rows are computed concurrently.
func BuildMatrix(skus []SKU, opts MatrixOptions) *ChangeoverMatrix {
	unique := make([]SKU, 0, len(skus))
	seen := make(map[string]bool, len(skus))
	for _, s := range skus {
		if seen[s.ID] {
			continue
		}
		seen[s.ID] = true
		unique = append(unique, s)
	}

	rows := make([][]ChangeoverCell, len(unique))
	var wg sync.WaitGroup
	for i, from := range unique {
		wg.Add(1)
		go func(i int, from SKU) {
			defer wg.Done()
			row := make([]ChangeoverCell, len(unique))
			for j, to := range unique {
				row[j] = buildCell(from, to, opts)
			}
			rows[i] = row
		}(i, from)
	}
	wg.Wait()

	m := &ChangeoverMatrix{
		Version: opts.Version,
		skuIDs:  make([]string, len(unique)),
		cells:   make(map[PairKey]ChangeoverCell, len(unique)*len(unique)),
	}
	for i, s := range unique {
		m.skuIDs[i] = s.ID
		for _, cell := range rows[i] {
			m.cells[PairKey{From: cell.FromSKUID, To: cell.ToSKUID}] = cell
		}
	}
	return m
}

func buildCell(from, to SKU, opts MatrixOptions) ChangeoverCell {
	result := ComputeChangeover(from, to)
	if opts.Variance != nil {
		result.Time = opts.Variance.Apply(from.ID, to.ID, result.Time)
	}

	cell := ChangeoverCell{
		FromSKUID:        from.ID,
		ToSKUID:          to.ID,
		FromSKUCode:      from.Code,
		ToSKUCode:        to.Code,
		ChangeoverResult: result,
		Validation: CellValidation{
			Status:     ValidationEstimated,
			Confidence: ConfidenceFor(result.Complexity),
		},
	}
	if result.Complexity == ComplexityCritical {
		cell.Notes = criticalNote
	}

	if h, ok := opts.History[PairKey{From: from.ID, To: to.ID}]; ok && h.Count > 0 {
		last := h.LastRecordedAt
		cell.Validation.LastActual = &last
		cell.Validation.AvgActualTime = h.MeanMinutes
		cell.Validation.StandardDeviation = h.StdDevMinutes
		cell.Validation.SampleCount = h.Count
		cell.Validation.Status = ValidationValidated
		if result.Time.Total > 0 && math.Abs(h.MeanMinutes-float64(result.Time.Total))/float64(result.Time.Total) > reviewDeviationRatio {
			cell.Validation.Status = ValidationNeedsReview
		}
	}
	return cell
}

// ConfidenceFor returns the estimate confidence of a complexity tier
func ConfidenceFor(c Complexity) float64 {
	switch c {
	case ComplexitySimple:
		return 0.95
	case ComplexityModerate:
		return 0.85
	case ComplexityComplex:
		return 0.75
	default:
		return 0.65
	}
}

// SKUIDs returns the SKU IDs in build order
func (m *ChangeoverMatrix) SKUIDs() []string {
	return slices.Clone(m.skuIDs)
}

// Size returns the number of cells
func (m *ChangeoverMatrix) Size() int {
	return len(m.cells)
}

// Cell returns the cell for a directed pair
func (m *ChangeoverMatrix) Cell(fromSKUID, toSKUID string) (ChangeoverCell, bool) {
	if m == nil {
		return ChangeoverCell{}, false
	}
	cell, ok := m.cells[PairKey{From: fromSKUID, To: toSKUID}]
	return cell, ok
}

// ChangeoverMinutes returns the total minutes and tier for a pair, falling
// back to 20 minutes / MODERATE when the pair is unknown
func (m *ChangeoverMatrix) ChangeoverMinutes(fromSKUID, toSKUID string) (int, Complexity) {
	if cell, ok := m.Cell(fromSKUID, toSKUID); ok {
		return cell.Time.Total, cell.Complexity
	}
	return FallbackChangeoverMinutes, FallbackChangeoverComplexity
}

// Cells returns all cells row by row in build order
func (m *ChangeoverMatrix) Cells() []ChangeoverCell {
	out := make([]ChangeoverCell, 0, len(m.cells))
	for _, from := range m.skuIDs {
		for _, to := range m.skuIDs {
			out = append(out, m.cells[PairKey{From: from, To: to}])
		}
	}
	return out
}

// ForSKU returns every cell the SKU takes part in, outgoing first
func (m *ChangeoverMatrix) ForSKU(skuID string) []ChangeoverCell {
	if !slices.Contains(m.skuIDs, skuID) {
		return nil
	}
	out := make([]ChangeoverCell, 0, 2*len(m.skuIDs))
	for _, to := range m.skuIDs {
		out = append(out, m.cells[PairKey{From: skuID, To: to}])
	}
	for _, from := range m.skuIDs {
		if from == skuID {
			continue
		}
		out = append(out, m.cells[PairKey{From: from, To: skuID}])
	}
	return out
}

// FastestPairs returns up to limit non-self cells with the lowest totals
func (m *ChangeoverMatrix) FastestPairs(limit int) []ChangeoverCell {
	return m.rankedPairs(limit, func(a, b ChangeoverCell) int {
		return cmp.Compare(a.Time.Total, b.Time.Total)
	})
}

// SlowestPairs returns up to limit non-self cells with the highest totals
func (m *ChangeoverMatrix) SlowestPairs(limit int) []ChangeoverCell {
	return m.rankedPairs(limit, func(a, b ChangeoverCell) int {
		return cmp.Compare(b.Time.Total, a.Time.Total)
	})
}

func (m *ChangeoverMatrix) rankedPairs(limit int, compare func(a, b ChangeoverCell) int) []ChangeoverCell {
	pairs := make([]ChangeoverCell, 0, len(m.cells))
	for _, cell := range m.Cells() {
		if !cell.IsSelf() {
			pairs = append(pairs, cell)
		}
	}
	slices.SortStableFunc(pairs, compare)
	if limit >= 0 && limit < len(pairs) {
		pairs = pairs[:limit]
	}
	return pairs
}

// ComplexityBreakdown counts non-self cells per tier. Every tier is present.
func (m *ChangeoverMatrix) ComplexityBreakdown() map[Complexity]int {
	breakdown := make(map[Complexity]int, len(Complexities))
	for _, c := range Complexities {
		breakdown[c] = 0
	}
	for _, cell := range m.cells {
		if !cell.IsSelf() {
			breakdown[cell.Complexity]++
		}
	}
	return breakdown
}

// SequenceCost sums the changeover totals along a SKU sequence. Repeated
// consecutive SKUs cost nothing and unknown pairs use the fallback.
func (m *ChangeoverMatrix) SequenceCost(skuIDs []string) int {
	total := 0
	for i := 1; i < len(skuIDs); i++ {
		if skuIDs[i] == skuIDs[i-1] {
			continue
		}
		minutes, _ := m.ChangeoverMinutes(skuIDs[i-1], skuIDs[i])
		total += minutes
	}
	return total
}
