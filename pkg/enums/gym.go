package enums

// GymMembershipStatus tracks the lifecycle of a purchased membership.
type GymMembershipStatus string

const (
	GymMembershipActive  GymMembershipStatus = "active"
	GymMembershipExpired GymMembershipStatus = "expired"
)

func (s GymMembershipStatus) IsValid() bool {
	switch s {
	case GymMembershipActive, GymMembershipExpired:
		return true
	}
	return false
}
