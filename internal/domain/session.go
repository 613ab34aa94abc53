package domain

// Account roles recognized by the backend.
const (
	RoleCustomer = "customer"
	RoleDriver   = "driver"
)

// Session is the locally persisted credential of the authenticated user.
// Repositories only ever read it; the auth flow owns its lifecycle.
type Session struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	Token  string `json:"token"`
}

// SessionReader provides synchronous, side-effect-free access to the current
// session. Read returns false when no session is stored; operations still
// proceed with an empty token and let the backend reject them.
type SessionReader interface {
	Read() (Session, bool)
}

// SessionStore adds the write half used only by the auth flow.
type SessionStore interface {
	SessionReader
	Save(session Session) error
	Clear() error
}
