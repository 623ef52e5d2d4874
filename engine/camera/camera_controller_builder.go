package camera

// ControllerOption is a functional option for configuring a Controller.
type ControllerOption func(*controllerImpl)

// WithRadius sets the initial orbit radius.
//
// Parameters:
//   - radius: distance from the origin
//
// Returns:
//   - ControllerOption: functional option to set the radius
func WithRadius(radius float32) ControllerOption {
	return func(cc *controllerImpl) {
		cc.radius = radius
	}
}

// WithAzimuth sets the initial horizontal angle around the Y axis.
//
// Parameters:
//   - azimuth: horizontal angle in radians (0 = +Z axis)
//
// Returns:
//   - ControllerOption: functional option to set the azimuth
func WithAzimuth(azimuth float32) ControllerOption {
	return func(cc *controllerImpl) {
		cc.azimuth = azimuth
	}
}

// WithElevation sets the initial vertical angle from the horizontal plane.
//
// Parameters:
//   - elevation: vertical angle in radians (0 = horizontal)
//
// Returns:
//   - ControllerOption: functional option to set the elevation
func WithElevation(elevation float32) ControllerOption {
	return func(cc *controllerImpl) {
		cc.elevation = elevation
	}
}

// WithRadiusBounds sets the minimum and maximum orbit radius.
//
// Parameters:
//   - min: minimum zoom distance
//   - max: maximum zoom distance
//
// Returns:
//   - ControllerOption: functional option to set radius bounds
func WithRadiusBounds(min, max float32) ControllerOption {
	return func(cc *controllerImpl) {
		cc.minRadius = min
		cc.maxRadius = max
	}
}

// WithElevationBounds sets the minimum and maximum elevation angles.
//
// Parameters:
//   - min: minimum vertical angle in radians
//   - max: maximum vertical angle in radians, below pi/2 to keep the view upright
//
// Returns:
//   - ControllerOption: functional option to set elevation bounds
func WithElevationBounds(min, max float32) ControllerOption {
	return func(cc *controllerImpl) {
		cc.minElevation = min
		cc.maxElevation = max
	}
}

// WithOrbitSpeed sets the keyboard orbit step.
//
// Parameters:
//   - speed: radians per orbit call
//
// Returns:
//   - ControllerOption: functional option to set orbit speed
func WithOrbitSpeed(speed float32) ControllerOption {
	return func(cc *controllerImpl) {
		cc.orbitSpeed = speed
	}
}

// WithZoomSpeed sets the zoom multiplier.
//
// Parameters:
//   - speed: multiplier for zoom input
//
// Returns:
//   - ControllerOption: functional option to set zoom speed
func WithZoomSpeed(speed float32) ControllerOption {
	return func(cc *controllerImpl) {
		cc.zoomSpeed = speed
	}
}
