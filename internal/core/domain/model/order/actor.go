package order

import (
	"fmt"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

// Role is the resolved role of the caller, supplied by the authentication collaborator.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleSeller   Role = "seller"
	RoleAdmin    Role = "admin"
	// RoleSystem is used for actions taken by scheduled jobs.
	RoleSystem Role = "system"
)

func ParseRole(s string) (Role, error) {
	switch r := Role(s); r {
	case RoleCustomer, RoleSeller, RoleAdmin:
		return r, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not one of customer, seller, admin", s))
	}
}

func (r Role) String() string {
	return string(r)
}

// Actor is the identity an operation runs on behalf of. The engine trusts it and
// only compares it against the order's stored customer and seller.
type Actor struct {
	ID   kernel.UUID
	Role Role
}

// NewActor validates a caller identity coming from outside the core.
func NewActor(id kernel.UUID, role Role) (Actor, error) {
	if err := id.Validate(); err != nil {
		return Actor{}, errs.NewValueIsRequiredErrorWithCause("actor_id", err)
	}
	if _, err := ParseRole(string(role)); err != nil {
		return Actor{}, err
	}
	return Actor{ID: id, Role: role}, nil
}

// SystemActor identifies scheduled jobs in events and notifications.
func SystemActor() Actor {
	return Actor{Role: RoleSystem}
}

func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

func (a Actor) String() string {
	if a.Role == RoleSystem {
		return string(RoleSystem)
	}
	return fmt.Sprintf("%s %s", a.Role, a.ID)
}
