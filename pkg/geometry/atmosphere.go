package geometry

import "math"

// Physical constants for the exponential atmosphere and gravity models.
const (
	// AirDensitySeaLevel is the air density at sea level in kg/m^3.
	AirDensitySeaLevel = 1.204

	// AirDensityScaleHeight is the e-folding height of the exponential
	// atmosphere in meters.
	AirDensityScaleHeight = 10.4e3

	// StandardGravity is the standard gravitational acceleration at mean
	// sea level in m/s^2.
	StandardGravity = 9.80665

	// EarthMeanRadius is the mean radius of the Earth in meters.
	EarthMeanRadius = 6378137
)

// AirDensityAt returns the air density in kg/m^3 at the given altitude in
// meters, per the exponential atmosphere model.
func AirDensityAt(altitude float64) float64 {
	return AirDensitySeaLevel * math.Exp(-altitude/AirDensityScaleHeight)
}

// GravityAt returns the gravitational acceleration in m/s^2 at the given
// altitude in meters, with an inverse-square falloff from sea level.
func GravityAt(altitude float64) float64 {
	ratio := EarthMeanRadius / (EarthMeanRadius + altitude)
	return StandardGravity * ratio * ratio
}
