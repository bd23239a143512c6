package workflow

import "strings"

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleVendor   Role = "vendor"
	RoleCustomer Role = "customer"
)

// ParseRole matches s case-insensitively against the known roles.
func ParseRole(s string) (Role, bool) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleAdmin:
		return RoleAdmin, true
	case RoleVendor:
		return RoleVendor, true
	case RoleCustomer:
		return RoleCustomer, true
	}
	return "", false
}

// Actor is the authenticated caller of a workflow, supplied per request by the
// identity layer. The workflows trust it and only perform authorization.
type Actor struct {
	Role Role
	ID   int64
}

func Admin() Actor                 { return Actor{Role: RoleAdmin} }
func VendorActor(id int64) Actor   { return Actor{Role: RoleVendor, ID: id} }
func CustomerActor(id int64) Actor { return Actor{Role: RoleCustomer, ID: id} }

// actingAs allows admins, or the given role acting on its own id.
func (a Actor) actingAs(op string, role Role, id int64) error {
	if a.Role == RoleAdmin {
		return nil
	}
	if a.Role == role && a.ID == id && id != 0 {
		return nil
	}
	return newError(op, KindForbidden, "%s %d may not act as %s %d", a.Role, a.ID, role, id)
}
