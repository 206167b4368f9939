package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveSeed(t *testing.T) {
	tests := []struct {
		handle string
		want   int64
	}{
		{"", 0},
		{"x", 120},
		{"t", 116},
		{"te", 116*131 + 101},
		{"test", 262526998},
		{"TEST", 262526998},
		{"instagram_queen", 517539311},
		{"@fit.mike", 13495835},
		{"ÄBC", 3925645},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DeriveSeed(tt.handle), "DeriveSeed(%q)", tt.handle)
	}
}

func TestDeriveSeedStaysBelowModulus(t *testing.T) {
	p := DefaultParams()
	long := ""
	for i := 0; i < 500; i++ {
		long += "zZ9_"
	}
	seed := p.DeriveSeed(long)
	assert.GreaterOrEqual(t, seed, int64(0))
	assert.Less(t, seed, p.SeedModulus)
}

func TestExtractMetricGolden(t *testing.T) {
	const seed = 262526998

	assert.Equal(t, 72.74193548387098, ExtractMetric(seed, 2))
	assert.Equal(t, 76.61290322580645, ExtractMetric(seed, 12))
	assert.Equal(t, 52.72727272727273, ExtractMetric(seed, 22))
	assert.Equal(t, 88.00586510263929, ExtractMetric(seed, 6))
	assert.Equal(t, 2.89, DefaultParams().ExpectedROAS(seed))
}

func TestExtractMetricBounds(t *testing.T) {
	assert.Equal(t, 50.0, ExtractMetric(0, 2))
	assert.Equal(t, 95.0, ExtractMetric(1023<<2, 2))
	assert.Equal(t, 95.0, ExtractMetric(1023, 0))
	assert.Equal(t, 50.0, ExtractMetric(1023, 10))
}

func TestExpectedROASBounds(t *testing.T) {
	p := DefaultParams()
	assert.Equal(t, 1.2, p.ExpectedROAS(0))
	assert.Equal(t, 3.2, p.ExpectedROAS(1023<<6))
}
