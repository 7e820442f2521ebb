package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/geocoder89/memberhub/internal/domain/member"
)

// MembersRepo keeps records in process memory. It exists for tests and for
// running the API without Postgres; it honours the same error contract as the
// Postgres repo, including insert-or-fail uniqueness under the lock.
type MembersRepo struct {
	mu       sync.RWMutex
	byMember map[string]member.Member // keyed by member id
	emails   map[string]string        // lowercased email -> record id
}

func NewMembersRepo() *MembersRepo {
	return &MembersRepo{
		byMember: make(map[string]member.Member),
		emails:   make(map[string]string),
	}
}

func (r *MembersRepo) Create(ctx context.Context, m member.Member) (member.Member, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if m.MemberID != "" {
		if _, ok := r.byMember[m.MemberID]; ok {
			return member.Member{}, member.ErrMemberIDTaken
		}
	}

	emailKey := strings.ToLower(m.Email)
	if _, ok := r.emails[emailKey]; ok {
		return member.Member{}, member.ErrEmailTaken
	}

	if m.MemberID != "" {
		r.byMember[m.MemberID] = m
	}
	r.emails[emailKey] = m.ID

	return m, nil
}

func (r *MembersRepo) GetByMemberID(ctx context.Context, memberID string) (member.Member, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.byMember[memberID]
	if !ok {
		return member.Member{}, member.ErrNotFound
	}

	return m, nil
}

func (r *MembersRepo) SetVerified(ctx context.Context, memberID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.byMember[memberID]
	if !ok {
		return member.ErrNotFound
	}

	m.IsVerified = true
	r.byMember[memberID] = m

	return nil
}
