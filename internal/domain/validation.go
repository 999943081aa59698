package domain

import (
	"fmt"
	"slices"
)

// IssueSeverity grades a validation issue
type IssueSeverity string

const (
	SeverityError   IssueSeverity = "error"
	SeverityWarning IssueSeverity = "warning"
)

// Issue types
const (
	IssueOverlap = "overlap"
	IssueLate    = "late"
)

// ValidationIssue is a problem found in a block set
type ValidationIssue struct {
	Type     string        `json:"type"`
	Severity IssueSeverity `json:"severity"`
	LineID   string        `json:"lineId"`
	BlockID  string        `json:"blockId"`
	Message  string        `json:"message"`
}

// ValidateSchedule reports overlapping blocks per line and blocks that end
// after their order due date
func ValidateSchedule(blocks []ScheduleBlock) []ValidationIssue {
	issues := make([]ValidationIssue, 0)

	byLine := make(map[string][]ScheduleBlock)
	lineOrder := make([]string, 0)
	for _, b := range blocks {
		if _, ok := byLine[b.LineID]; !ok {
			lineOrder = append(lineOrder, b.LineID)
		}
		byLine[b.LineID] = append(byLine[b.LineID], b)
	}

	for _, lineID := range lineOrder {
		lineBlocks := slices.Clone(byLine[lineID])
		slices.SortStableFunc(lineBlocks, func(a, b ScheduleBlock) int {
			return a.StartTime.Compare(b.StartTime)
		})
		for i := 1; i < len(lineBlocks); i++ {
			prev, cur := lineBlocks[i-1], lineBlocks[i]
			if cur.StartTime.Before(prev.EndTime) {
				issues = append(issues, ValidationIssue{
					Type:     IssueOverlap,
					Severity: SeverityError,
					LineID:   lineID,
					BlockID:  cur.ID,
					Message:  fmt.Sprintf("block %s starts before block %s ends", cur.ID, prev.ID),
				})
			}
		}
	}

	for _, b := range blocks {
		if !b.DueDate.IsZero() && b.EndTime.After(b.DueDate) {
			issues = append(issues, ValidationIssue{
				Type:     IssueLate,
				Severity: SeverityWarning,
				LineID:   b.LineID,
				BlockID:  b.ID,
				Message:  fmt.Sprintf("order %s finishes %s after its due date", b.OrderNumber, b.EndTime.Sub(b.DueDate)),
			})
		}
	}
	return issues
}
