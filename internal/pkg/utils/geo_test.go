package utils

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateHaversineDistance_SamePoint(t *testing.T) {
	assert.Equal(t, 0.0, CalculateHaversineDistance(30.0444, 31.2357, 30.0444, 31.2357))
}

func TestCalculateHaversineDistance_Antipodal(t *testing.T) {
	d := CalculateHaversineDistance(0, 0, 0, 180)
	assert.InDelta(t, math.Pi*earthRadiusMeters, d, 1)
	assert.InDelta(t, 20015086.8, d, 1)

	d = CalculateHaversineDistance(30.0444, 31.2357, -30.0444, 31.2357-180)
	assert.InDelta(t, math.Pi*earthRadiusMeters, d, 1)
}

func TestCalculateHaversineDistance_KnownRoutes(t *testing.T) {
	// Cairo to Alexandria is roughly 180 km.
	d := CalculateHaversineDistance(30.0444, 31.2357, 31.2001, 29.9187)
	assert.InDelta(t, 180000, d, 5000)

	// 0.001 degrees of latitude is about 111 m.
	d = CalculateHaversineDistance(30.0, 31.0, 30.001, 31.0)
	assert.InDelta(t, 111.19, d, 0.1)
}

func TestCalculateHaversineDistance_Symmetric(t *testing.T) {
	a := CalculateHaversineDistance(21.4858, 39.1925, 30.0444, 31.2357)
	b := CalculateHaversineDistance(30.0444, 31.2357, 21.4858, 39.1925)
	assert.InDelta(t, a, b, 1e-6)
}

func TestIsValidCoordinate(t *testing.T) {
	assert.True(t, IsValidCoordinate(30.0444, 31.2357))
	assert.True(t, IsValidCoordinate(-90, 180))
	assert.False(t, IsValidCoordinate(91, 0))
	assert.False(t, IsValidCoordinate(0, -181))
	assert.False(t, IsValidCoordinate(math.NaN(), 0))
}
