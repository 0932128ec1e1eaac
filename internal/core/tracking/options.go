package tracking

// Options selects which signal categories the runtime should report.
// Disabled categories keep their zero values and zero timestamps in
// every snapshot.
type Options struct {
	EnableOrientation bool `json:"enable_orientation" yaml:"enable_orientation"`
	EnableTouch       bool `json:"enable_touch" yaml:"enable_touch"`
	EnableGyro        bool `json:"enable_gyro" yaml:"enable_gyro"`
	EnableAccel       bool `json:"enable_accel" yaml:"enable_accel"`
	EnableGestures    bool `json:"enable_gestures" yaml:"enable_gestures"`
}

// DefaultOptions enables everything except gestures.
func DefaultOptions() Options {
	return Options{
		EnableOrientation: true,
		EnableTouch:       true,
		EnableGyro:        true,
		EnableAccel:       true,
	}
}

func (o Options) enabled(sig Signal) bool {
	switch sig {
	case SignalOrientation:
		return o.EnableOrientation
	case SignalGyro:
		return o.EnableGyro
	case SignalAccel:
		return o.EnableAccel
	case SignalTouch:
		return o.EnableTouch
	case SignalButton:
		// Button reporting cannot be disabled.
		return true
	default:
		return false
	}
}
