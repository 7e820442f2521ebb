package member

import (
	"time"

	"github.com/google/uuid"
)

type CreateMemberRequest struct {
	FirstName    string
	LastName     string
	Email        string
	PasswordHash string
	Role         Role
	MemberID     string
}

// NewFromCreateRequest stamps identity and timestamps; validation has already
// happened at the HTTP boundary.
func NewFromCreateRequest(req CreateMemberRequest) Member {
	return Member{
		ID:           uuid.NewString(),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		PasswordHash: req.PasswordHash,
		Role:         req.Role,
		MemberID:     req.MemberID,
		IsVerified:   false,
		CreatedAt:    time.Now().UTC(),
	}
}
