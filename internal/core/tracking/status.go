package tracking

// APIStatus reports the health of the tracking service itself. OK does
// not mean a controller is connected, only that the underlying service
// works; connection state is carried separately.
//
// Every non-OK status is a permanent failure that requires external
// action (install, upgrade, grant permission, ...). This layer never
// retries on its own: retry and backoff, if any, belong to the
// runtime, not to the consumer.
type APIStatus int32

const (
	// StatusOK means the service is healthy and snapshots are
	// trustworthy.
	StatusOK APIStatus = iota
	// StatusUnsupported means this device cannot support controllers.
	StatusUnsupported
	// StatusNotAuthorized means this app may not use the service.
	StatusNotAuthorized
	// StatusUnavailable means the tracking service is not present.
	StatusUnavailable
	// StatusServiceObsolete means the service is too old for this
	// client.
	StatusServiceObsolete
	// StatusClientObsolete means this client is too old for the
	// service.
	StatusClientObsolete
	// StatusMalfunction means the service is present but misbehaving.
	StatusMalfunction

	numStatuses
)

// Healthy reports whether snapshots produced under this status can be
// relied on. Only StatusOK qualifies; for anything else the consumer
// must stop reading tracking fields and surface Remediation to the
// user.
func (s APIStatus) Healthy() bool { return s == StatusOK }

// Known reports whether s is one of the defined status values.
func (s APIStatus) Known() bool { return s >= StatusOK && s < numStatuses }

func (s APIStatus) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusUnsupported:
		return "unsupported"
	case StatusNotAuthorized:
		return "not_authorized"
	case StatusUnavailable:
		return "unavailable"
	case StatusServiceObsolete:
		return "service_obsolete"
	case StatusClientObsolete:
		return "client_obsolete"
	case StatusMalfunction:
		return "malfunction"
	default:
		return "unknown"
	}
}

// Remediation returns the user-facing message for a non-healthy
// status. It returns "" for StatusOK.
func (s APIStatus) Remediation() string {
	switch s {
	case StatusUnsupported:
		return "This device does not support motion controllers."
	case StatusNotAuthorized:
		return "This app is not authorized to use the tracking service. Check its permissions."
	case StatusUnavailable:
		return "The tracking service is not installed or not running."
	case StatusServiceObsolete:
		return "The tracking service is out of date. Update it to continue."
	case StatusClientObsolete:
		return "This app is too old for the installed tracking service. Update the app."
	case StatusMalfunction:
		return "The tracking service is malfunctioning. Restart the device if this persists."
	default:
		return ""
	}
}

// IsHealthy reports whether the snapshot was produced by a healthy
// service. It is a convenience over state.APIStatus.Healthy().
func IsHealthy(state ControllerState) bool {
	return state.APIStatus.Healthy()
}
