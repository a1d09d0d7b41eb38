package model

// Role identifies what kind of caller a session belongs to.
type Role int

const (
	RoleGuest Role = iota
	RoleCustomer
	RoleStaff
)

// String returns the wire name of the role.
func (r Role) String() string {
	switch r {
	case RoleCustomer:
		return "customer"
	case RoleStaff:
		return "admin"
	default:
		return "guest"
	}
}

// Session is the caller identity resolved once at request time from the
// externally issued token. Guests carry no user ID.
type Session struct {
	Role   Role
	UserID string
	Email  string
}

// Guest is the anonymous session.
var Guest = Session{Role: RoleGuest}

// IsStaff reports whether the session may perform admin operations.
func (s Session) IsStaff() bool {
	return s.Role == RoleStaff
}

// IsCustomer reports whether the session belongs to a signed-in shopper.
func (s Session) IsCustomer() bool {
	return s.Role == RoleCustomer
}
