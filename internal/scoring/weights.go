package scoring

import (
	"errors"
	"fmt"
)

// Recognized KPI weight keys.
const (
	KeyAuthenticity = "authenticity"
	KeyRelevance    = "relevance"
	KeyResonance    = "resonance"
	KeyReturn       = "return"
)

// DefaultWeight applies to any recognized key missing from a WeightConfig.
const DefaultWeight = 0.25

// ErrInvalidWeightConfig is returned when the resolved weights sum to zero and
// the trust index average is undefined.
var ErrInvalidWeightConfig = errors.New("invalid weight config")

// WeightConfig maps KPI names to weights as configured on a brief. Keys other
// than the four recognized ones are ignored.
type WeightConfig map[string]float64

// DefaultWeightConfig returns the configuration stored on a brief when the
// caller supplies none.
func DefaultWeightConfig() WeightConfig {
	return WeightConfig{
		KeyAuthenticity: DefaultWeight,
		KeyRelevance:    DefaultWeight,
		KeyResonance:    DefaultWeight,
		KeyReturn:       DefaultWeight,
	}
}

// WeightSet holds the four resolved weights.
type WeightSet struct {
	Authenticity float64
	Relevance    float64
	Resonance    float64
	Return       float64
}

// Resolve looks up each recognized key. A present key is used as-is, even when
// zero or negative; only an absent key falls back to def.
func (c WeightConfig) Resolve(def float64) WeightSet {
	return WeightSet{
		Authenticity: c.lookup(KeyAuthenticity, def),
		Relevance:    c.lookup(KeyRelevance, def),
		Resonance:    c.lookup(KeyResonance, def),
		Return:       c.lookup(KeyReturn, def),
	}
}

func (c WeightConfig) lookup(key string, def float64) float64 {
	if v, ok := c[key]; ok {
		return v
	}
	return def
}

// Sum returns the total of all weights, accumulated left to right.
func (w WeightSet) Sum() float64 {
	return w.Authenticity + w.Relevance + w.Resonance + w.Return
}

// Validate reports ErrInvalidWeightConfig when the weights cannot be used as
// a divisor. Negative weights are accepted.
func (w WeightSet) Validate() error {
	if w.Sum() == 0 {
		return fmt.Errorf("%w: weights %s=%g %s=%g %s=%g %s=%g sum to zero", ErrInvalidWeightConfig,
			KeyAuthenticity, w.Authenticity, KeyRelevance, w.Relevance,
			KeyResonance, w.Resonance, KeyReturn, w.Return)
	}
	return nil
}

// ValidateWeights checks a brief's configuration using the default weight for
// absent keys.
func ValidateWeights(c WeightConfig) error {
	return c.Resolve(DefaultWeight).Validate()
}
