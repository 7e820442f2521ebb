package db

import (
	"context"
	"errors"

	"github.com/geocoder89/memberhub/internal/config"
	"github.com/geocoder89/memberhub/internal/domain/member"
	"github.com/geocoder89/memberhub/internal/security"
)

type memberCreator interface {
	Create(ctx context.Context, m member.Member) (member.Member, error)
}

// EnsureOfficer seeds the bootstrap officer account. Without one, nobody can
// ever call the verify endpoint. No-op if no seed credentials are configured.
//
// The insert goes straight through the store and a duplicate comes back as a
// taken-email/taken-id error, which just means another replica (or an earlier
// boot) already seeded the account. Checking for the row first would let two
// replicas both pass the check and one of them die on the constraint.
func EnsureOfficer(ctx context.Context, store memberCreator, cfg config.Config) error {
	if cfg.OfficerEmail == "" || cfg.OfficerPassword == "" {
		return nil
	}

	hash, err := security.HashPassword(cfg.OfficerPassword)

	if err != nil {
		return err
	}

	officer := member.NewFromCreateRequest(member.CreateMemberRequest{
		FirstName:    cfg.OfficerFirstName,
		LastName:     cfg.OfficerLastName,
		Email:        cfg.OfficerEmail,
		PasswordHash: hash,
		Role:         member.RoleOfficer,
		MemberID:     cfg.OfficerMemberID,
	})

	_, err = store.Create(ctx, officer)

	if errors.Is(err, member.ErrEmailTaken) || errors.Is(err, member.ErrMemberIDTaken) {
		return nil
	}

	return err
}
