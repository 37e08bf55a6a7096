package models

// Payment is an append-only charge record, either processor-backed or entered
// manually by staff.
type Payment struct {
	ID            string  `json:"id"`
	MemberID      string  `json:"memberId"`
	PlanID        string  `json:"planId,omitempty"`
	Amount        float64 `json:"amount"`
	Date          string  `json:"date"`
	Status        string  `json:"status"`
	PaymentMethod string  `json:"paymentMethod,omitempty"`
	Notes         string  `json:"notes,omitempty"`
}

// PaymentWithMember is a payment enriched with the member's resolved name.
// The join happens in the gateway because the backend returns raw ids only.
type PaymentWithMember struct {
	Payment
	MemberName string `json:"memberName"`
}

// ManualPaymentRequest records a payment taken outside the card processor.
type ManualPaymentRequest struct {
	MemberID      string  `json:"memberId" validate:"required"`
	PlanID        string  `json:"planId" validate:"required"`
	Amount        float64 `json:"amount" validate:"required,gt=0"`
	PaymentMethod string  `json:"paymentMethod" validate:"required"`
	Notes         string  `json:"notes,omitempty"`
}

// InitiatePaymentRequest starts a card payment through the external
// processor, mediated by the backend.
type InitiatePaymentRequest struct {
	MemberID string  `json:"memberId" validate:"required"`
	PlanID   string  `json:"planId" validate:"required"`
	Amount   float64 `json:"amount" validate:"required,gt=0"`
}

// InitiatePaymentResponse is the processor intent handed back to the console
// so it can collect the card details.
type InitiatePaymentResponse struct {
	ClientSecret    string `json:"clientSecret"`
	PaymentIntentID string `json:"paymentIntentId"`
}
