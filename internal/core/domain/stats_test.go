package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewStats(t *testing.T) {
	s := NewStats(100, 10, 0.1, 0.5)

	assert.Equal(t, 100, s.ImpressionsCount)
	assert.Equal(t, 10, s.ClicksCount)
	assert.InDelta(t, 0.1, s.Conversion, 1e-9)
	assert.InDelta(t, 10.0, s.SpentImpressions, 1e-9)
	assert.InDelta(t, 5.0, s.SpentClicks, 1e-9)
	assert.InDelta(t, 15.0, s.SpentTotal, 1e-9)
}

func TestNewStatsZeroImpressions(t *testing.T) {
	s := NewStats(0, 0, 0.1, 0.5)

	assert.Zero(t, s.Conversion)
	assert.Zero(t, s.SpentTotal)
}

func TestStatsAdd(t *testing.T) {
	a := NewStats(100, 10, 0.1, 0.5)
	b := NewStats(50, 25, 0.2, 1.0)

	sum := a.Add(b)

	assert.Equal(t, 150, sum.ImpressionsCount)
	assert.Equal(t, 35, sum.ClicksCount)
	// conversion recomputed over combined counts, not averaged
	assert.InDelta(t, 35.0/150.0, sum.Conversion, 1e-9)
	assert.InDelta(t, 20.0, sum.SpentImpressions, 1e-9)
	assert.InDelta(t, 30.0, sum.SpentClicks, 1e-9)
	assert.InDelta(t, 50.0, sum.SpentTotal, 1e-9)
}

func TestAgeBucket(t *testing.T) {
	tests := []struct {
		age  int
		want string
	}{
		{10, "<18"}, {17, "<18"},
		{18, "18-24"}, {24, "18-24"},
		{25, "25-34"}, {34, "25-34"},
		{35, "35-44"}, {44, "35-44"},
		{45, "45-54"}, {54, "45-54"},
		{55, "55+"}, {90, "55+"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, AgeBucket(tt.age), "age %d", tt.age)
	}
}
