package models

// CheckInMember is the member summary the backend embeds in a check-in row.
type CheckInMember struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email,omitempty"`
}

// CheckIn is a timestamped attendance event. Check-ins are append-only and
// never updated once created.
type CheckIn struct {
	ID       string        `json:"id"`
	MemberID string        `json:"memberId"`
	DateTime string        `json:"dateTime"`
	Member   CheckInMember `json:"member"`
}

// CreateCheckInRequest records an attendance event for a member.
type CreateCheckInRequest struct {
	MemberID string `json:"memberId" validate:"required"`
}
