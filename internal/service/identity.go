package service

// Identity is the caller as seen by the core. The identity provider (the
// auth middleware) supplies it; the core never authenticates by itself.
type Identity struct {
	UserID        int64
	Authenticated bool
}

// Anonymous returns the identity of a caller without a valid token.
func Anonymous() Identity {
	return Identity{}
}

// AuthenticatedAs returns the identity of a signed-in user.
func AuthenticatedAs(userID int64) Identity {
	return Identity{UserID: userID, Authenticated: true}
}

// UserIDPtr returns the user id, or nil for anonymous callers.
func (i Identity) UserIDPtr() *int64 {
	if !i.Authenticated {
		return nil
	}
	id := i.UserID
	return &id
}
