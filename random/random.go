// Package random provides the seedable range helpers every scene factory
// draws from.
package random

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/chewxy/math32"
)

// Source is a deterministic PRNG. It is not safe for concurrent use.
type Source struct {
	r    *rand.Rand
	seed uint64
}

func New(seed uint64) *Source {
	return &Source{r: rand.New(rand.NewPCG(seed, 0)), seed: seed}
}

// NewTimeSeeded seeds from the wall clock; Seed reports the value used.
func NewTimeSeeded() *Source {
	return New(uint64(time.Now().UnixNano()))
}

func (s *Source) Seed() uint64 {
	return s.seed
}

// Float returns a uniform value in [min, max). min == max yields min.
// The bounds are not validated.
func (s *Source) Float(min, max float64) float64 {
	return s.r.Float64()*(max-min) + min
}

// Float32 is Float narrowed for geometry parameters. The result stays
// below float32(max) unless min == max.
func (s *Source) Float32(min, max float64) float32 {
	return narrow(s.Float(min, max), min, max)
}

// narrow converts v to float32 without rounding up onto max.
func narrow(v, min, max float64) float32 {
	f, hi := float32(v), float32(max)
	if f >= hi && v < max {
		return math32.Nextafter(hi, float32(min))
	}
	return f
}

// Int returns floor(Float(min, max)), so values lie in [min, max).
func (s *Source) Int(min, max int) int {
	return int(math.Floor(s.Float(float64(min), float64(max))))
}

// Choose returns a uniformly selected element. It panics if options is
// empty.
func Choose[T any](s *Source, options []T) T {
	if len(options) == 0 {
		panic("random: Choose called with no options")
	}
	return options[s.Int(0, len(options))]
}
