package domain

// Session is the per-client state carried between requests.
// Identity fields are zero for anonymous callers.
type Session struct {
	ID       string `json:"id"`
	Cart     Cart   `json:"cart"`
	UserID   *int64 `json:"user_id,omitempty"`
	Username string `json:"username,omitempty"`
	Role     Role   `json:"role,omitempty"`

	destroyed bool
	renew     bool
}

// NewSession returns an empty anonymous session.
func NewSession(id string) *Session {
	return &Session{ID: id}
}

// SignIn records the authenticated user on the session and asks for a new
// session id, so an id handed out before login never carries the login.
func (s *Session) SignIn(u *User) {
	id := u.ID
	s.UserID = &id
	s.Username = u.Username
	s.Role = u.Role
	s.renew = true
}

// RenewalPending reports whether the id must change before the next save.
func (s *Session) RenewalPending() bool {
	return s.renew
}

// Renew moves the session to id and returns the previous id.
func (s *Session) Renew(id string) string {
	prev := s.ID
	s.ID = id
	s.renew = false
	return prev
}

// Destroy marks the session as ended; it must not be persisted again.
func (s *Session) Destroy() {
	s.destroyed = true
	s.UserID = nil
	s.Username = ""
	s.Role = ""
	s.Cart.Clear()
}

// Destroyed reports whether Destroy was called.
func (s *Session) Destroyed() bool {
	return s.destroyed
}
