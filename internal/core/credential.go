package core

// Credential is the opaque bearer token representing an authenticated
// session. It is owned by the session store; every authenticated gateway
// call carries it in the Authorization header.
type Credential string

// IsZero reports whether no credential is present.
func (c Credential) IsZero() bool { return c == "" }
