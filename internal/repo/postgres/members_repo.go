package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/geocoder89/memberhub/internal/domain/member"
	"github.com/geocoder89/memberhub/internal/observability"
)

type MembersRepo struct {
	pool *pgxpool.Pool
	prom *observability.Prom
}

func NewMembersRepo(pool *pgxpool.Pool, prom *observability.Prom) *MembersRepo {
	return &MembersRepo{
		pool: pool,
		prom: prom,
	}
}

func (repo *MembersRepo) observe(op string, fn func() error) error {
	if repo.prom != nil {
		return repo.prom.ObserveDB(op, fn)
	}
	return fn()
}

// Create inserts the record and lets the database decide uniqueness. There is
// deliberately no "does it exist" query first: two concurrent signups for the
// same member id would both pass such a check and both insert. The unique
// constraints make the second insert fail instead.
func (repo *MembersRepo) Create(ctx context.Context, m member.Member) (member.Member, error) {
	err := repo.observe("members.create", func() error {
		_, e := repo.pool.Exec(ctx, `
			INSERT INTO members (id, first_name, last_name, email, password_hash, role, member_id, is_verified, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''), $8, $9)
		`, m.ID, m.FirstName, m.LastName, m.Email, m.PasswordHash, m.Role.String(), m.MemberID, m.IsVerified, m.CreatedAt)
		return e
	})

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			switch pgErr.ConstraintName {
			case "members_member_id_uniq":
				return member.Member{}, member.ErrMemberIDTaken
			case "members_email_uniq":
				return member.Member{}, member.ErrEmailTaken
			}
		}
		return member.Member{}, err
	}

	return m, nil
}

func (repo *MembersRepo) GetByMemberID(ctx context.Context, memberID string) (member.Member, error) {
	var m member.Member
	var role string

	err := repo.observe("members.get_by_member_id", func() error {
		return repo.pool.QueryRow(ctx, `
			SELECT id, first_name, last_name, email, password_hash, role, COALESCE(member_id, ''), is_verified, created_at
			FROM members
			WHERE member_id = $1
		`, memberID).Scan(
			&m.ID,
			&m.FirstName,
			&m.LastName,
			&m.Email,
			&m.PasswordHash,
			&role,
			&m.MemberID,
			&m.IsVerified,
			&m.CreatedAt,
		)
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return member.Member{}, member.ErrNotFound
		}

		return member.Member{}, err
	}

	m.Role = member.Role(role)
	return m, nil
}

// SetVerified flips is_verified to true. The update only ever moves the flag
// one way, so a repeat call is a no-op rather than a conflict.
func (repo *MembersRepo) SetVerified(ctx context.Context, memberID string) error {
	return repo.observe("members.set_verified", func() error {
		tag, err := repo.pool.Exec(ctx, `
			UPDATE members
			SET is_verified = TRUE
			WHERE member_id = $1
		`, memberID)

		if err != nil {
			return err
		}

		if tag.RowsAffected() == 0 {
			return member.ErrNotFound
		}

		return nil
	})
}
