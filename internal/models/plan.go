package models

// Plan durations. Earlier revisions of the console stored a free-form month
// count; the categorical unit is the canonical representation now.
const (
	DurationDaily   = "daily"
	DurationWeekly  = "weekly"
	DurationMonthly = "monthly"
)

// MembershipPlan is a priced, timed subscription tier a member can be
// assigned to.
type MembershipPlan struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Duration string  `json:"duration"`
	Price    float64 `json:"price"`
}

// CreateMembershipPlanRequest is the JSON payload for creating a plan.
type CreateMembershipPlanRequest struct {
	Name     string  `json:"name" validate:"required"`
	Duration string  `json:"duration" validate:"required,oneof=daily weekly monthly"`
	Price    float64 `json:"price" validate:"required,gt=0"`
}

// UpdateMembershipPlanRequest carries a partial plan update.
type UpdateMembershipPlanRequest struct {
	Name     *string  `json:"name,omitempty"`
	Duration *string  `json:"duration,omitempty" validate:"omitempty,oneof=daily weekly monthly"`
	Price    *float64 `json:"price,omitempty" validate:"omitempty,gt=0"`
}
