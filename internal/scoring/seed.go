package scoring

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Params are the fixed constants of the scoring engine.
type Params struct {
	SeedBase    int64
	SeedModulus int64

	AuthenticityOffset uint
	RelevanceOffset    uint
	ResonanceOffset    uint
	ROASOffset         uint

	MetricMask  int64
	MetricFloor float64
	MetricSpan  float64

	ROASBase  float64
	ROASSpan  float64
	ROASScale float64

	DefaultWeight float64
}

// DefaultParams returns the canonical engine constants.
func DefaultParams() Params {
	return Params{
		SeedBase:    131,
		SeedModulus: 1_000_000_007,

		AuthenticityOffset: 2,
		RelevanceOffset:    12,
		ResonanceOffset:    22,
		ROASOffset:         6,

		MetricMask:  1023,
		MetricFloor: 50.0,
		MetricSpan:  45.0,

		ROASBase:  1.2,
		ROASSpan:  2.0,
		ROASScale: 30.0,

		DefaultWeight: DefaultWeight,
	}
}

// DeriveSeed hashes the lower-cased handle code point by code point with a
// polynomial rolling hash. The empty handle yields 0.
func (p Params) DeriveSeed(handle string) int64 {
	var acc int64
	for _, cp := range cases.Lower(language.Und).String(handle) {
		acc = (acc*p.SeedBase + int64(cp)) % p.SeedModulus
	}
	return acc
}

// ExtractMetric maps the ten bits of seed starting at bitOffset onto
// [MetricFloor, MetricFloor+MetricSpan].
func (p Params) ExtractMetric(seed int64, bitOffset uint) float64 {
	x := float64((seed>>bitOffset)&p.MetricMask) / float64(p.MetricMask)
	return p.MetricFloor + float64(x*p.MetricSpan)
}

// ExpectedROAS rescales the metric at ROASOffset to roughly [0.2, 3.2] and
// rounds it to two decimals. The result is not clamped.
func (p Params) ExpectedROAS(seed int64) float64 {
	m := p.ExtractMetric(seed, p.ROASOffset)
	return Round(p.ROASBase+float64((m-p.MetricFloor)/p.MetricSpan*p.ROASSpan), 2)
}

// DeriveSeed uses DefaultParams.
func DeriveSeed(handle string) int64 { return DefaultParams().DeriveSeed(handle) }

// ExtractMetric uses DefaultParams.
func ExtractMetric(seed int64, bitOffset uint) float64 {
	return DefaultParams().ExtractMetric(seed, bitOffset)
}
