// Package roles defines the fixed role set of the system.
//
// Roles are plain strings on the wire and in the store, this package is the
// single place that knows which ones exist and what they may do.
package roles

const (
	// SuperAdmin administrates the whole installation across tenants
	SuperAdmin = "super_admin"
	// Owner owns one or more restaurants
	Owner = "owner"
	// GeneralManager runs the day to day operation of a restaurant
	GeneralManager = "general_manager"
	// Staff is a regular staff member of a restaurant
	Staff = "staff"
)

// Known reports whether the given string is one of the defined roles.
func Known(role string) bool {
	switch role {
	case SuperAdmin, Owner, GeneralManager, Staff:
		return true
	}
	return false
}

// Invitable reports whether the role may be granted through an invite.
// The two highest privilege roles can never be obtained this way.
func Invitable(role string) bool {
	return role == GeneralManager || role == Staff
}

// CanInvite reports whether an actor with the role may issue invites.
func CanInvite(role string) bool {
	switch role {
	case SuperAdmin, Owner, GeneralManager:
		return true
	}
	return false
}

// CanManage reports whether the role may use the administrative endpoints
// of a restaurant (user, task and resource management).
func CanManage(role string) bool {
	return CanInvite(role)
}
