package scoring

import (
	"fmt"
	"strconv"
)

// ScoreReport is the engine's output for one influencer against one brief.
type ScoreReport struct {
	Authenticity float64  `json:"authenticity"`
	Relevance    float64  `json:"relevance"`
	Resonance    float64  `json:"resonance"`
	ExpectedROAS float64  `json:"expected_roas"`
	TrustIndex   float64  `json:"trust_index"`
	Signals      []string `json:"signals"`
}

// Signal labels, in report order.
const (
	SignalAuthenticity = "Stable L/C ratio proxy"
	SignalRelevance    = "Keyword similarity proxy"
	SignalResonance    = "Engagement depth proxy"
)

// Engine computes score reports from a fixed parameter set. It holds no
// mutable state and is safe for concurrent use.
type Engine struct {
	params Params
}

// NewEngine creates an Engine with the given parameters.
func NewEngine(params Params) *Engine {
	return &Engine{params: params}
}

// Params returns the engine's constants.
func (e *Engine) Params() Params { return e.params }

// ComputeScores derives the seed once and assembles the full report.
func (e *Engine) ComputeScores(handle string, weights WeightConfig) (ScoreReport, error) {
	p := e.params
	seed := p.DeriveSeed(handle)

	authenticity := p.ExtractMetric(seed, p.AuthenticityOffset)
	relevance := p.ExtractMetric(seed, p.RelevanceOffset)
	resonance := p.ExtractMetric(seed, p.ResonanceOffset)
	roas := p.ExpectedROAS(seed)

	// Trust uses the unrounded base metrics and the rounded ROAS.
	trust, err := e.ComputeTrustIndex(authenticity, relevance, resonance, roas, weights)
	if err != nil {
		return ScoreReport{}, err
	}

	return ScoreReport{
		Authenticity: Round(authenticity, 1),
		Relevance:    Round(relevance, 1),
		Resonance:    Round(resonance, 1),
		ExpectedROAS: roas,
		TrustIndex:   trust,
		Signals:      BuildSignals(authenticity, relevance, resonance),
	}, nil
}

// ComputeTrustIndex is the weighted mean of the three base metrics and the
// scaled ROAS, normalized by the sum of the resolved weights and rounded to
// one decimal.
//
//	trust = (a*w_a + r*w_r + s*w_s + (roas*30)*w_ret) / (w_a + w_r + w_s + w_ret)
func (e *Engine) ComputeTrustIndex(authenticity, relevance, resonance, expectedROAS float64, weights WeightConfig) (float64, error) {
	w := weights.Resolve(e.params.DefaultWeight)
	if err := w.Validate(); err != nil {
		return 0, err
	}

	// Explicit conversions prevent fused multiply-add.
	num := float64(authenticity*w.Authenticity) +
		float64(relevance*w.Relevance) +
		float64(resonance*w.Resonance) +
		float64(float64(expectedROAS*e.params.ROASScale)*w.Return)

	return Round(num/w.Sum(), 1), nil
}

// BuildSignals returns the three explanatory strings in authenticity,
// relevance, resonance order.
func BuildSignals(authenticity, relevance, resonance float64) []string {
	return []string{
		fmt.Sprintf("%s: %.1f", SignalAuthenticity, authenticity),
		fmt.Sprintf("%s: %.1f", SignalRelevance, relevance),
		fmt.Sprintf("%s: %.1f", SignalResonance, resonance),
	}
}

// Round rounds v to the given number of decimal places using the exact binary
// value of v, with ties to even.
func Round(v float64, places int) float64 {
	r, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', places, 64), 64)
	if err != nil {
		return v
	}
	return r
}

var defaultEngine = NewEngine(DefaultParams())

// ComputeScores scores a handle against a weight configuration with the
// default engine.
func ComputeScores(handle string, weights WeightConfig) (ScoreReport, error) {
	return defaultEngine.ComputeScores(handle, weights)
}

// ComputeTrustIndex uses the default engine.
func ComputeTrustIndex(authenticity, relevance, resonance, expectedROAS float64, weights WeightConfig) (float64, error) {
	return defaultEngine.ComputeTrustIndex(authenticity, relevance, resonance, expectedROAS, weights)
}
