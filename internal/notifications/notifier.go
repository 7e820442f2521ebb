package notifications

import "context"

type SendWelcomeInput struct {
	Email     string
	FirstName string
	MemberID  string
}

type SendMembershipVerifiedInput struct {
	Email      string
	FirstName  string
	MemberID   string
	VerifiedBy string
}

type Notifier interface {
	SendWelcome(ctx context.Context, input SendWelcomeInput) error
	SendMembershipVerified(ctx context.Context, input SendMembershipVerifiedInput) error
}
