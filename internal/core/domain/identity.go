package domain

// IdentityKind is the caller variant derived from session state.
type IdentityKind int

const (
	Anonymous IdentityKind = iota
	Customer
	Administrator
)

func (k IdentityKind) String() string {
	switch k {
	case Customer:
		return "user"
	case Administrator:
		return "admin"
	default:
		return "anonymous"
	}
}

// Identity is who the caller is.
type Identity struct {
	Kind     IdentityKind
	UserID   int64
	Username string
}

// IdentityFromSession derives the caller identity. It is a pure function of
// the session: no store is consulted.
func IdentityFromSession(s *Session) Identity {
	if s == nil || s.UserID == nil {
		return Identity{Kind: Anonymous}
	}
	id := Identity{UserID: *s.UserID, Username: s.Username}
	switch s.Role {
	case RoleAdmin:
		id.Kind = Administrator
	case RoleUser:
		id.Kind = Customer
	default:
		return Identity{Kind: Anonymous}
	}
	return id
}

// Authenticated reports whether the caller is logged in.
func (i Identity) Authenticated() bool {
	return i.Kind != Anonymous
}

// RequireUser fails for anonymous callers.
func (i Identity) RequireUser() error {
	if !i.Authenticated() {
		return ErrUnauthorized
	}
	return nil
}

// RequireAdmin fails unless the caller is an administrator.
func (i Identity) RequireAdmin() error {
	if i.Kind != Administrator {
		return ErrForbidden
	}
	return nil
}
