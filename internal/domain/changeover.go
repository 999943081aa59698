package domain

import "slices"

// Complexity is the coarse tier derived from total changeover minutes
type Complexity string

const (
	ComplexitySimple   Complexity = "SIMPLE"
	ComplexityModerate Complexity = "MODERATE"
	ComplexityComplex  Complexity = "COMPLEX"
	ComplexityCritical Complexity = "CRITICAL"
)

// Complexities lists every tier in ascending order
var Complexities = []Complexity{
	ComplexitySimple,
	ComplexityModerate,
	ComplexityComplex,
	ComplexityCritical,
}

// CleaningType is the cleaning procedure a changeover requires
type CleaningType string

const (
	CleaningNone          CleaningType = "NONE"
	CleaningRinse         CleaningType = "RINSE"
	CleaningWash          CleaningType = "WASH"
	CleaningSanitize      CleaningType = "SANITIZE"
	CleaningAllergenClean CleaningType = "ALLERGEN_CLEAN"
)

// Base times in minutes
const (
	baseDrainMinutes = 5
	baseCleanMinutes = 10
	baseSetupMinutes = 8
	baseFlushMinutes = 5

	selfSetupMinutes = 2
)

// ChangeoverTime is the per-phase breakdown of a changeover in minutes
type ChangeoverTime struct {
	Drain int `bson:"drain" json:"drain"`
	Clean int `bson:"clean" json:"clean"`
	Setup int `bson:"setup" json:"setup"`
	Flush int `bson:"flush" json:"flush"`
	Total int `bson:"total" json:"total"`
}

// Sum returns drain+clean+setup+flush
func (t ChangeoverTime) Sum() int {
	return t.Drain + t.Clean + t.Setup + t.Flush
}

// ChangeoverResult is the cost of switching a line from one SKU to another
type ChangeoverResult struct {
	Time           ChangeoverTime `bson:"time" json:"time"`
	Complexity     Complexity     `bson:"complexity" json:"complexity"`
	CleaningType   CleaningType   `bson:"cleaningType" json:"cleaningType"`
	RequiredSkills []string       `bson:"requiredSkills" json:"requiredSkills"`
	RequiredTools  []string       `bson:"requiredTools" json:"requiredTools"`
	LaborCount     int            `bson:"laborCount" json:"laborCount"`
}

// ComputeChangeover returns the changeover cost from one SKU to another.
// It is defined for every pair, including a SKU with itself.
func ComputeChangeover(from, to SKU) ChangeoverResult {
	if from.ID == to.ID {
		return newChangeoverResult(ChangeoverTime{Setup: selfSetupMinutes, Total: selfSetupMinutes}, false)
	}

	t := ChangeoverTime{
		Drain: baseDrainMinutes,
		Clean: baseCleanMinutes,
		Setup: baseSetupMinutes,
		Flush: baseFlushMinutes,
	}

	if from.Family == to.Family {
		t.Clean = 5
		t.Setup = 5
	} else {
		t.Clean = 15
		t.Setup = 12
	}

	if from.Attributes.Color != to.Attributes.Color {
		t.Clean += 5
		t.Flush += 3
	}

	if from.Attributes.EffectiveViscosity() == ViscosityHigh || to.Attributes.EffectiveViscosity() == ViscosityHigh {
		t.Drain += 5
		t.Clean += 10
	}

	allergenOut := false
	fromAllergens, toAllergens := from.Attributes.Allergens, to.Attributes.Allergens
	switch {
	case len(fromAllergens) > 0 && len(toAllergens) == 0:
		allergenOut = true
		t.Clean += 25
		t.Flush += 10
	case missingAllergen(fromAllergens, toAllergens):
		t.Clean += 15
		t.Flush += 5
	}

	if from.Attributes.Temperature != to.Attributes.Temperature {
		t.Setup += 10
	}

	switch max(from.CleaningRequirement.Rank(), to.CleaningRequirement.Rank()) {
	case CleaningCategoryD.Rank():
		t.Clean += 20
	case CleaningCategoryC.Rank():
		t.Clean += 10
	}

	t.Total = t.Sum()
	return newChangeoverResult(t, allergenOut)
}

func newChangeoverResult(t ChangeoverTime, allergenOut bool) ChangeoverResult {
	complexity := ClassifyComplexity(t.Total)
	cleaning := classifyCleaning(t, allergenOut)
	return ChangeoverResult{
		Time:           t,
		Complexity:     complexity,
		CleaningType:   cleaning,
		RequiredSkills: RequiredSkills(complexity),
		RequiredTools:  RequiredTools(cleaning),
		LaborCount:     LaborCount(complexity),
	}
}

func missingAllergen(from, to []string) bool {
	for _, a := range from {
		if !slices.Contains(to, a) {
			return true
		}
	}
	return false
}

// ClassifyComplexity maps total minutes to a complexity tier
func ClassifyComplexity(total int) Complexity {
	switch {
	case total < 15:
		return ComplexitySimple
	case total < 30:
		return ComplexityModerate
	case total < 60:
		return ComplexityComplex
	default:
		return ComplexityCritical
	}
}

func classifyCleaning(t ChangeoverTime, allergenOut bool) CleaningType {
	switch {
	case t.Total <= 5:
		return CleaningNone
	case allergenOut:
		return CleaningAllergenClean
	case t.Clean >= 30:
		return CleaningSanitize
	case t.Clean >= 15:
		return CleaningWash
	default:
		return CleaningRinse
	}
}

// RequiredSkills returns the crew skills a changeover of the given tier needs
func RequiredSkills(c Complexity) []string {
	switch c {
	case ComplexityCritical:
		return []string{"senior_operator", "maintenance_tech", "quality_lead"}
	case ComplexityComplex:
		return []string{"senior_operator", "quality_inspector"}
	default:
		return []string{"line_operator"}
	}
}

// RequiredTools returns the tools a cleaning type needs
func RequiredTools(c CleaningType) []string {
	switch c {
	case CleaningAllergenClean:
		return []string{"sanitizer_kit", "allergen_test_kit", "pressure_washer"}
	case CleaningSanitize:
		return []string{"sanitizer_kit", "pressure_washer"}
	case CleaningWash:
		return []string{"cleaning_solution", "brushes"}
	default:
		return []string{}
	}
}

// LaborCount returns the headcount a changeover of the given tier needs
func LaborCount(c Complexity) int {
	switch c {
	case ComplexityCritical:
		return 3
	case ComplexityComplex:
		return 2
	default:
		return 1
	}
}
