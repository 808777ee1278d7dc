package caliper

// Tuning holds the interaction constants
type Tuning struct {
	MinDistanceForRotation int     // below this distance a resize drag does not rotate
	SnapAngle              float64 // snap tolerance in radians
	Deadzone               float64 // pointer travel before a resize drag acts
	EndMargin              int     // End key: monitor extent minus this margin
	WindowMargin           int     // extra window width beyond the monitor
	InitialDistance        int
	InitialAngle           float64
	MaxCanvasPixels        int
}

// DefaultTuning returns the standard constants
func DefaultTuning() Tuning {
	return Tuning{
		MinDistanceForRotation: 10,
		SnapAngle:              0.5,
		Deadzone:               10,
		EndMargin:              200,
		WindowMargin:           10,
		InitialDistance:        100,
		MaxCanvasPixels:        64 << 20,
	}
}
