package domain

import (
	"hash/fnv"
	"math"
	"math/rand/v2"
	"time"
)

// VarianceModel perturbs the time breakdown of a single matrix cell.
// Implementations must keep Total equal to the sum of the parts.
type VarianceModel interface {
	Apply(fromSKUID, toSKUID string, t ChangeoverTime) ChangeoverTime
}

const (
	varianceLow  = 0.9
	varianceHigh = 1.1
)

// SeededVariance draws one factor in [0.9, 1.1] per cell from a generator
// seeded with the model seed and the pair, so a build is reproducible and
// independent of iteration order.
type SeededVariance struct {
	seed uint64
}

// NewSeededVariance creates a variance model for the given seed
func NewSeededVariance(seed int64) *SeededVariance {
	return &SeededVariance{seed: uint64(seed)}
}

// Apply scales each part, rounds it, and sets Total to the sum of the rounded parts
func (v *SeededVariance) Apply(fromSKUID, toSKUID string, t ChangeoverTime) ChangeoverTime {
	r := pairRand(v.seed, fromSKUID+"\x00"+toSKUID)
	factor := varianceLow + r.Float64()*(varianceHigh-varianceLow)

	varied := ChangeoverTime{
		Drain: scaleMinutes(t.Drain, factor),
		Clean: scaleMinutes(t.Clean, factor),
		Setup: scaleMinutes(t.Setup, factor),
		Flush: scaleMinutes(t.Flush, factor),
	}
	varied.Total = varied.Sum()
	return varied
}

func scaleMinutes(minutes int, factor float64) int {
	return int(math.Round(float64(minutes) * factor))
}

func pairRand(seed uint64, key string) *rand.Rand {
	h := fnv.New64a()
	_, _ = h.Write([]byte(key))
	return rand.New(rand.NewPCG(seed, h.Sum64()))
}

// ActualsSimulator fills synthetic actual rate and OEE on blocks for demo runs
type ActualsSimulator interface {
	Simulate(blocks []ScheduleBlock, now time.Time) []ScheduleBlock
}

// SeededActuals gives every block completed at now an actual rate of
// 85-100% of target and an OEE between 0.70 and 0.95.
type SeededActuals struct {
	seed uint64
}

// NewSeededActuals creates a simulator for the given seed
func NewSeededActuals(seed int64) *SeededActuals {
	return &SeededActuals{seed: uint64(seed)}
}

// Simulate returns a copy of blocks with actuals filled for completed blocks.
// Blocks that already carry actuals are left untouched.
func (s *SeededActuals) Simulate(blocks []ScheduleBlock, now time.Time) []ScheduleBlock {
	out := make([]ScheduleBlock, len(blocks))
	for i, b := range blocks {
		out[i] = b
		if BlockStatusAt(b, now) != BlockStatusCompleted || b.ActualRate != nil {
			continue
		}
		r := pairRand(s.seed, b.ID)
		rate := b.TargetRate * (0.85 + r.Float64()*0.15)
		oee := 0.70 + r.Float64()*0.25
		out[i].ActualRate = &rate
		out[i].OEE = &oee
	}
	return out
}
