package shared

import "github.com/google/uuid"

// ActorRole identifies which side of the rental relationship is acting.
type ActorRole string

const (
	RoleOwner  ActorRole = "OWNER"
	RoleTenant ActorRole = "TENANT"
)

// IsValid checks if the role is a known ActorRole
func (r ActorRole) IsValid() bool {
	return r == RoleOwner || r == RoleTenant
}

// String returns the string representation of ActorRole
func (r ActorRole) String() string {
	return string(r)
}

// Actor is the per-request identity passed explicitly into every core
// operation. The domain never reads ambient or global authentication state.
type Actor struct {
	ID   uuid.UUID
	Role ActorRole
}

// NewActor creates an Actor
func NewActor(id uuid.UUID, role ActorRole) Actor {
	return Actor{ID: id, Role: role}
}

// IsOwner returns true if the actor acts in the owner role
func (a Actor) IsOwner() bool {
	return a.Role == RoleOwner
}

// IsTenant returns true if the actor acts in the tenant role
func (a Actor) IsTenant() bool {
	return a.Role == RoleTenant
}
