package domain

import (
	"fmt"
	"slices"
	"time"
)

// ProductFamily is the categorical family tag of a SKU
type ProductFamily string

const (
	FamilyA ProductFamily = "A"
	FamilyB ProductFamily = "B"
	FamilyC ProductFamily = "C"
	FamilyD ProductFamily = "D"
	FamilyE ProductFamily = "E"
	FamilyF ProductFamily = "F"
	FamilyG ProductFamily = "G"
	FamilyH ProductFamily = "H"
	FamilyI ProductFamily = "I"
	FamilyJ ProductFamily = "J"
)

// DefaultBlockColor is used for SKUs whose family has no registered color
const DefaultBlockColor = "#999999"

// FamilyInfo describes a product family
type FamilyInfo struct {
	Code           ProductFamily `json:"code" yaml:"code"`
	Name           string        `json:"name" yaml:"name"`
	Color          string        `json:"color" yaml:"color"`
	ChangeoverTier int           `json:"changeoverTier" yaml:"changeoverTier"`
}

// ProductFamilies is the fixed family table
var ProductFamilies = map[ProductFamily]FamilyInfo{
	FamilyA: {Code: FamilyA, Name: "Beverages - Carbonated", Color: "#FF6B6B", ChangeoverTier: 2},
	FamilyB: {Code: FamilyB, Name: "Beverages - Still", Color: "#4ECDC4", ChangeoverTier: 1},
	FamilyC: {Code: FamilyC, Name: "Dairy Products", Color: "#45B7D1", ChangeoverTier: 4},
	FamilyD: {Code: FamilyD, Name: "Sauces - Tomato Based", Color: "#F7DC6F", ChangeoverTier: 3},
	FamilyE: {Code: FamilyE, Name: "Sauces - Cream Based", Color: "#BB8FCE", ChangeoverTier: 4},
	FamilyF: {Code: FamilyF, Name: "Snacks - Sweet", Color: "#F8B4D9", ChangeoverTier: 2},
	FamilyG: {Code: FamilyG, Name: "Snacks - Savory", Color: "#FFA07A", ChangeoverTier: 2},
	FamilyH: {Code: FamilyH, Name: "Frozen Foods", Color: "#87CEEB", ChangeoverTier: 3},
	FamilyI: {Code: FamilyI, Name: "Baked Goods", Color: "#D2691E", ChangeoverTier: 3},
	FamilyJ: {Code: FamilyJ, Name: "Confectionery", Color: "#FF69B4", ChangeoverTier: 2},
}

// IsValid reports whether the family is one of the registered families
func (f ProductFamily) IsValid() bool {
	_, ok := ProductFamilies[f]
	return ok
}

// Color returns the display color of the family
func (f ProductFamily) Color() string {
	if info, ok := ProductFamilies[f]; ok {
		return info.Color
	}
	return DefaultBlockColor
}

// Viscosity tier of a product
type Viscosity string

const (
	ViscosityLow    Viscosity = "low"
	ViscosityMedium Viscosity = "medium"
	ViscosityHigh   Viscosity = "high"
)

// TemperatureClass of a product
type TemperatureClass string

const (
	TemperatureAmbient TemperatureClass = "ambient"
	TemperatureChilled TemperatureClass = "chilled"
	TemperatureFrozen  TemperatureClass = "frozen"
)

// CleaningCategory is the ordinal cleaning requirement, A < B < C < D
type CleaningCategory string

const (
	CleaningCategoryA CleaningCategory = "A"
	CleaningCategoryB CleaningCategory = "B"
	CleaningCategoryC CleaningCategory = "C"
	CleaningCategoryD CleaningCategory = "D"
)

// Rank returns the ordinal of the category. Unknown values rank as A.
func (c CleaningCategory) Rank() int {
	switch c {
	case CleaningCategoryB:
		return 1
	case CleaningCategoryC:
		return 2
	case CleaningCategoryD:
		return 3
	default:
		return 0
	}
}

// ProductionParameters holds the run parameters of a SKU
type ProductionParameters struct {
	StandardRate    float64 `bson:"standardRate" json:"standardRate" yaml:"standardRate"` // units per hour
	MinBatch        int     `bson:"minBatch" json:"minBatch" yaml:"minBatch"`
	MaxBatch        int     `bson:"maxBatch" json:"maxBatch" yaml:"maxBatch"`
	SetupTime       float64 `bson:"setupTime" json:"setupTime" yaml:"setupTime"`
	CycleTime       float64 `bson:"cycleTime" json:"cycleTime" yaml:"cycleTime"`
	YieldPercentage float64 `bson:"yieldPercentage" json:"yieldPercentage" yaml:"yieldPercentage"`
}

// PhysicalAttributes are the product attributes that drive changeover cost
type PhysicalAttributes struct {
	Color       string           `bson:"color" json:"color" yaml:"color"`
	Viscosity   Viscosity        `bson:"viscosity,omitempty" json:"viscosity,omitempty" yaml:"viscosity,omitempty"`
	Allergens   []string         `bson:"allergens,omitempty" json:"allergens,omitempty" yaml:"allergens,omitempty"`
	Temperature TemperatureClass `bson:"temperature,omitempty" json:"temperature,omitempty" yaml:"temperature,omitempty"`
}

// EffectiveViscosity returns the viscosity, defaulting to low when unset
func (a PhysicalAttributes) EffectiveViscosity() Viscosity {
	if a.Viscosity == "" {
		return ViscosityLow
	}
	return a.Viscosity
}

// LineCompatibility lists the lines a SKU may run on
type LineCompatibility struct {
	AllowedLines   []string `bson:"allowedLines" json:"allowedLines" yaml:"allowedLines"`
	PreferredLines []string `bson:"preferredLines,omitempty" json:"preferredLines,omitempty" yaml:"preferredLines,omitempty"`
}

// SKU is a product variant. It is reference data during a scheduling run.
type SKU struct {
	ID                  string               `bson:"skuId" json:"id" yaml:"id"`
	Code                string               `bson:"code" json:"code" yaml:"code"`
	Name                string               `bson:"name" json:"name" yaml:"name"`
	Family              ProductFamily        `bson:"family" json:"family" yaml:"family"`
	Production          ProductionParameters `bson:"production" json:"production" yaml:"production"`
	Attributes          PhysicalAttributes   `bson:"attributes" json:"attributes" yaml:"attributes"`
	Compatibility       LineCompatibility    `bson:"compatibility" json:"compatibility" yaml:"compatibility"`
	CleaningRequirement CleaningCategory     `bson:"cleaningRequirement" json:"cleaningRequirement" yaml:"cleaningRequirement"`
	Version             int                  `bson:"version" json:"version" yaml:"-"`
	UpdatedAt           time.Time            `bson:"updatedAt" json:"updatedAt" yaml:"-"`
}

// CanRunOn reports whether the SKU lists the line as allowed
func (s SKU) CanRunOn(lineID string) bool {
	return slices.Contains(s.Compatibility.AllowedLines, lineID)
}

// Validate checks the fields an editor must supply
func (s SKU) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("%w: id is required", ErrInvalidSKU)
	}
	if !s.Family.IsValid() {
		return fmt.Errorf("%w: unknown family %q", ErrInvalidSKU, s.Family)
	}
	if s.Production.StandardRate < 0 {
		return fmt.Errorf("%w: standard rate must not be negative", ErrInvalidSKU)
	}
	switch s.Attributes.Viscosity {
	case "", ViscosityLow, ViscosityMedium, ViscosityHigh:
	default:
		return fmt.Errorf("%w: unknown viscosity %q", ErrInvalidSKU, s.Attributes.Viscosity)
	}
	switch s.CleaningRequirement {
	case "", CleaningCategoryA, CleaningCategoryB, CleaningCategoryC, CleaningCategoryD:
	default:
		return fmt.Errorf("%w: unknown cleaning category %q", ErrInvalidSKU, s.CleaningRequirement)
	}
	return nil
}

// IndexSKUs returns the SKUs keyed by ID
func IndexSKUs(skus []SKU) map[string]SKU {
	index := make(map[string]SKU, len(skus))
	for _, s := range skus {
		index[s.ID] = s
	}
	return index
}
