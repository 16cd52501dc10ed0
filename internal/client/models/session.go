package models

// Session is the persisted proof of authentication: an opaque bearer token
// plus the profile it belongs to. A session with either part missing is not
// a session at all.
type Session struct {
	Token string       `json:"token"`
	User  *UserProfile `json:"user"`
}

// Valid reports whether both token and user are present.
func (s *Session) Valid() bool {
	return s != nil && s.Token != "" && s.User != nil
}

// PendingAuthContext is transient data carried across view transitions to
// complete a multi-step flow (e.g. the password held between login request
// and login verification). It must never be persisted.
type PendingAuthContext struct {
	Email      string
	GivenName  string
	FamilyName string
	Password   string
}

// ScrubPassword clears the password field. Called on every transition that
// renders a view not needing it.
func (p *PendingAuthContext) ScrubPassword() {
	p.Password = ""
}
