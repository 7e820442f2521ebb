package member

import (
	"errors"
	"time"
)

var (
	ErrNotFound      = errors.New("member not found")
	ErrMemberIDTaken = errors.New("member id already in use")
	ErrEmailTaken    = errors.New("email already in use")
)

// Role is a closed set; anything else is rejected at the boundary.
type Role string

const (
	RoleMember  Role = "member"
	RoleOfficer Role = "officer"
)

// ParseRole maps an untrusted string onto the closed role set.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.IsValid() {
		return "", errors.New("unknown role: " + s)
	}

	return r, nil
}

func (r Role) IsValid() bool {
	switch r {
	case RoleMember, RoleOfficer:
		return true
	default:
		return false
	}
}

func (r Role) String() string {
	return string(r)
}

type Member struct {
	ID           string    `json:"id"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // never expose hash in JSON
	Role         Role      `json:"role"`
	MemberID     string    `json:"memberId,omitempty"` // set only when Role == RoleMember
	IsVerified   bool      `json:"isVerified"`
	CreatedAt    time.Time `json:"createdAt"`
}
