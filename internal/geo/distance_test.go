package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistance_IdenticalPoints(t *testing.T) {
	assert.Equal(t, 0.0, Distance(52.5200, 13.4050, 52.5200, 13.4050))
}

func TestDistance_Symmetry(t *testing.T) {
	d1 := Distance(52.5200, 13.4050, 48.1351, 11.5820)
	d2 := Distance(48.1351, 11.5820, 52.5200, 13.4050)
	assert.Equal(t, d1, d2)
}

func TestDistance_BerlinToMunich(t *testing.T) {
	// Berlin -> Munich is roughly 504 km great-circle.
	d := Distance(52.5200, 13.4050, 48.1351, 11.5820)
	assert.InDelta(t, 504.0, d, 2.0)
}

func TestDistance_RoundedToOneDecimal(t *testing.T) {
	d := Distance(52.5200, 13.4050, 52.5200, 13.9050)
	assert.InDelta(t, d, math.Round(d*10)/10, 1e-9)
}
