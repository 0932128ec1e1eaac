package tracking

// Button identifies a physical controller button. The per-button
// arrays in ControllerState are indexed by Button ordinal.
//
// ButtonNone occupies index 0, so the arrays have ButtonCount elements
// for five physical buttons: the "+1 for none" offset is deliberate
// and index 0 never reports a press.
type Button int32

const (
	ButtonNone Button = iota
	// ButtonClick is the touchpad click.
	ButtonClick
	ButtonHome
	ButtonApp
	ButtonVolumeUp
	ButtonVolumeDown

	// ButtonCount is the length of the per-button state arrays. It is
	// not itself a valid index.
	ButtonCount
)

// Valid reports whether b can index the per-button arrays.
func (b Button) Valid() bool { return b >= ButtonNone && b < ButtonCount }

func (b Button) String() string {
	switch b {
	case ButtonNone:
		return "none"
	case ButtonClick:
		return "click"
	case ButtonHome:
		return "home"
	case ButtonApp:
		return "app"
	case ButtonVolumeUp:
		return "volume_up"
	case ButtonVolumeDown:
		return "volume_down"
	default:
		return "invalid"
	}
}
