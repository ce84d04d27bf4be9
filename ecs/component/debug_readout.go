package component

// DebugReadout carries values the debug overlay prints each frame.
type DebugReadout struct {
	Material     string
	Acceleration float64
	Deceleration float64
	Friction     float64
	Gravity      float64
}

var DebugReadoutComponent = NewComponent[DebugReadout]()
