package models

// MembershipStatus values. The backend recomputes these from renewal dates;
// the gateway derives them only when the backend omits the field.
const (
	MembershipActive  = "active"
	MembershipExpired = "expired"
)

// MemberStatus values for the administrative state of the record itself,
// independent of membership expiry.
const (
	MemberActive    = "Active"
	MemberInactive  = "Inactive"
	MemberSuspended = "Suspended"
)

// Member is a gym customer with a membership record. Dates are the backend's
// ISO strings, passed through unmodified.
type Member struct {
	ID               string  `json:"id"`
	FirstName        string  `json:"firstName"`
	LastName         string  `json:"lastName"`
	DNI              string  `json:"dni"`
	Email            string  `json:"email,omitempty"`
	Phone            string  `json:"phone,omitempty"`
	StartDate        string  `json:"startDate"`
	RenewalDate      string  `json:"renewalDate"`
	MembershipStatus string  `json:"membershipStatus"`
	MembershipPlanID *string `json:"membershipPlanId,omitempty"`
	Status           string  `json:"status"`
	CreatedAt        string  `json:"createdAt,omitempty"`
	UpdatedAt        string  `json:"updatedAt,omitempty"`
}

// CreateMemberRequest is the JSON payload for registering a member.
type CreateMemberRequest struct {
	FirstName        string  `json:"firstName" validate:"required"`
	LastName         string  `json:"lastName" validate:"required"`
	DNI              string  `json:"dni" validate:"required,alphanum"`
	Email            string  `json:"email,omitempty" validate:"omitempty,email"`
	Phone            string  `json:"phone,omitempty"`
	StartDate        string  `json:"startDate" validate:"required"`
	RenewalDate      string  `json:"renewalDate" validate:"required"`
	MembershipPlanID *string `json:"membershipPlanId,omitempty"`
}

// UpdateMemberRequest carries a partial member update. Nil fields are left
// untouched by the backend, so everything is a pointer.
type UpdateMemberRequest struct {
	FirstName        *string `json:"firstName,omitempty"`
	LastName         *string `json:"lastName,omitempty"`
	Email            *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone            *string `json:"phone,omitempty"`
	StartDate        *string `json:"startDate,omitempty"`
	RenewalDate      *string `json:"renewalDate,omitempty"`
	MembershipPlanID *string `json:"membershipPlanId,omitempty"`
	Status           *string `json:"status,omitempty" validate:"omitempty,oneof=Active Inactive Suspended"`
}

// RenewMembershipRequest renews a membership addressed by national ID.
type RenewMembershipRequest struct {
	DNI              string  `json:"dni" validate:"required,alphanum"`
	RenewalDate      string  `json:"renewalDate,omitempty"`
	MembershipPlanID *string `json:"membershipPlanId,omitempty"`
}

// MemberCheckInInfo is the reduced view shown at the check-in desk: identity,
// membership window, resolved plan name and an enabled/disabled verdict.
type MemberCheckInInfo struct {
	ID                   string  `json:"id"`
	FirstName            string  `json:"firstName"`
	LastName             string  `json:"lastName"`
	StartDate            string  `json:"startDate"`
	RenewalDate          string  `json:"renewalDate"`
	PlanName             *string `json:"planName"`
	MembershipStatusText string  `json:"membershipStatusText"`
}
