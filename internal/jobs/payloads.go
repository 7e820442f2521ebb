package jobs

import "time"

type WelcomePayload struct {
	Email        string    `json:"email"`
	FirstName    string    `json:"firstName"`
	MemberID     string    `json:"memberId,omitempty"`
	RegisteredAt time.Time `json:"registeredAt"`
}

type VerifiedPayload struct {
	Email      string    `json:"email"`
	FirstName  string    `json:"firstName"`
	MemberID   string    `json:"memberId"`
	VerifiedBy string    `json:"verifiedBy"`
	VerifiedAt time.Time `json:"verifiedAt"`
}
