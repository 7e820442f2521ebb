package db_test

import (
	"context"
	"sync"
	"testing"

	"github.com/geocoder89/memberhub/internal/config"
	"github.com/geocoder89/memberhub/internal/db"
	"github.com/geocoder89/memberhub/internal/domain/member"
	"github.com/geocoder89/memberhub/internal/repo/memory"
	"github.com/geocoder89/memberhub/internal/security"
)

func seedConfig() config.Config {
	return config.Config{
		OfficerEmail:     "officer@example.com",
		OfficerPassword:  "seed-password-123",
		OfficerFirstName: "Club",
		OfficerLastName:  "Officer",
		OfficerMemberID:  "OFFICER-1",
	}
}

func TestEnsureOfficerCreatesAccount(t *testing.T) {
	store := memory.NewMembersRepo()

	if err := db.EnsureOfficer(context.Background(), store, seedConfig()); err != nil {
		t.Fatalf("EnsureOfficer returned error: %v", err)
	}

	got, err := store.GetByMemberID(context.Background(), "OFFICER-1")

	if err != nil {
		t.Fatalf("seeded officer not found: %v", err)
	}
	if got.Role != member.RoleOfficer {
		t.Errorf("seeded role = %q, want officer", got.Role)
	}
	if err := security.CheckPassword(got.PasswordHash, "seed-password-123"); err != nil {
		t.Errorf("seeded password hash does not verify: %v", err)
	}
}

func TestEnsureOfficerIdempotentAcrossBoots(t *testing.T) {
	store := memory.NewMembersRepo()

	if err := db.EnsureOfficer(context.Background(), store, seedConfig()); err != nil {
		t.Fatalf("first seed returned error: %v", err)
	}

	// second boot hits the uniqueness constraint; that is the no-op case,
	// not a startup failure
	if err := db.EnsureOfficer(context.Background(), store, seedConfig()); err != nil {
		t.Fatalf("second seed returned error: %v", err)
	}
}

func TestEnsureOfficerConcurrentReplicas(t *testing.T) {
	store := memory.NewMembersRepo()

	var wg sync.WaitGroup
	errs := make(chan error, 4)

	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- db.EnsureOfficer(context.Background(), store, seedConfig())
		}()
	}

	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			t.Errorf("replica seed returned error: %v", err)
		}
	}
}

func TestEnsureOfficerSkipsWithoutCredentials(t *testing.T) {
	store := memory.NewMembersRepo()

	if err := db.EnsureOfficer(context.Background(), store, config.Config{}); err != nil {
		t.Fatalf("EnsureOfficer returned error: %v", err)
	}

	if _, err := store.GetByMemberID(context.Background(), "OFFICER-1"); err == nil {
		t.Error("officer was seeded without credentials configured")
	}
}
