package domain

// LineStatus is the operational status of a production line
type LineStatus string

const (
	LineStatusActive      LineStatus = "active"
	LineStatusMaintenance LineStatus = "maintenance"
	LineStatusOffline     LineStatus = "offline"
	LineStatusLimited     LineStatus = "limited"
)

// LineCapacity holds line throughput parameters
type LineCapacity struct {
	MaxRate      float64 `bson:"maxRate" json:"maxRate" yaml:"maxRate"`
	Efficiency   float64 `bson:"efficiency" json:"efficiency" yaml:"efficiency"`
	Availability float64 `bson:"availability" json:"availability" yaml:"availability"`
	OEETarget    float64 `bson:"oeeTarget" json:"oeeTarget" yaml:"oeeTarget"`
}

// ProductionLine is a packaging line orders are assigned to
type ProductionLine struct {
	ID       string       `bson:"lineId" json:"id" yaml:"id"`
	Code     string       `bson:"code" json:"code" yaml:"code"`
	Name     string       `bson:"name" json:"name" yaml:"name"`
	Capacity LineCapacity `bson:"capacity" json:"capacity" yaml:"capacity"`
	Status   LineStatus   `bson:"status" json:"status" yaml:"status"`
}

// IsActive reports whether the line participates in assignment
func (l ProductionLine) IsActive() bool {
	return l.Status == LineStatusActive
}

// ActiveLines filters lines to the active ones, preserving order
func ActiveLines(lines []ProductionLine) []ProductionLine {
	active := make([]ProductionLine, 0, len(lines))
	for _, l := range lines {
		if l.IsActive() {
			active = append(active, l)
		}
	}
	return active
}

// WithoutLines drops the listed line IDs, preserving order
func WithoutLines(lines []ProductionLine, excluded []string) []ProductionLine {
	if len(excluded) == 0 {
		return lines
	}
	skip := make(map[string]bool, len(excluded))
	for _, id := range excluded {
		skip[id] = true
	}
	kept := make([]ProductionLine, 0, len(lines))
	for _, l := range lines {
		if !skip[l.ID] {
			kept = append(kept, l)
		}
	}
	return kept
}
