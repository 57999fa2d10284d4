// Package admin holds the console-side policy for user role edits.
package admin

import (
	"errors"
	"slices"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/model"
)

var (
	ErrLastRole    = errors.New("a user must keep at least one role")
	ErrRoleMissing = errors.New("user does not have this role")
	ErrRoleExists  = errors.New("user already has this role")
	ErrUnknownRole = errors.New("unknown role")
)

// CanRemoveRole rejects removing a role the user lacks or their only role.
func CanRemoveRole(u model.User, role string) error {
	if !u.HasRole(role) {
		return ErrRoleMissing
	}
	if len(u.Roles) <= 1 {
		return ErrLastRole
	}
	return nil
}

func CanAddRole(u model.User, role string) error {
	if !slices.Contains(model.KnownRoles, role) {
		return ErrUnknownRole
	}
	if u.HasRole(role) {
		return ErrRoleExists
	}
	return nil
}

// RoleOption is one role chip in the user table.
type RoleOption struct {
	Role      string
	Held      bool
	Removable bool
}

// RoleOptions lists every known role for u, followed by any other role the
// user holds, with the actions allowed on each.
func RoleOptions(u model.User) []RoleOption {
	roles := slices.Clone(model.KnownRoles)
	for _, r := range u.Roles {
		if !slices.Contains(roles, r) {
			roles = append(roles, r)
		}
	}

	out := make([]RoleOption, 0, len(roles))
	for _, r := range roles {
		out = append(out, RoleOption{
			Role:      r,
			Held:      u.HasRole(r),
			Removable: CanRemoveRole(u, r) == nil,
		})
	}
	return out
}
