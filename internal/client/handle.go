package client

// Handle is the borrowed reference to a runtime-owned session context.
// The runtime allocates the underlying resource during the hello
// exchange and releases it when the connection closes; the client only
// carries the token and never gives it an independent lifetime.
type Handle struct {
	token string
}

// Valid reports whether the handle refers to an open session.
func (h Handle) Valid() bool { return h.token != "" }

// Token returns the opaque session token, for logging only.
func (h Handle) Token() string { return h.token }
