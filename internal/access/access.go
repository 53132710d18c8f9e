// Package access resolves the acting role from the session claim supplied by
// the upstream auth collaborator and gates mutations on it.
package access

// Role is the actor role attached to a session.
type Role string

const (
	// RoleStorekeeper holds full mutate privileges.
	RoleStorekeeper Role = "storekeeper"
	// RoleSupervisor is read-only.
	RoleSupervisor Role = "supervisor"
)

// ResolveRole maps the raw session role claim to a Role. Anything other than
// an exact storekeeper claim resolves to supervisor, the least-privilege
// default.
func ResolveRole(claim string) Role {
	if claim == string(RoleStorekeeper) {
		return RoleStorekeeper
	}
	return RoleSupervisor
}

// Session is the explicit per-request session value handed to every service
// operation. There is no ambient session state.
type Session struct {
	Role Role
}

// NewSession builds a session from the raw role claim.
func NewSession(claim string) Session {
	return Session{Role: ResolveRole(claim)}
}

// CanMutate reports whether the session's role may change inventory or
// ledger state.
func (s Session) CanMutate() bool {
	return s.Role == RoleStorekeeper
}
