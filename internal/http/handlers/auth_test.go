package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/geocoder89/memberhub/internal/auth"
	"github.com/geocoder89/memberhub/internal/domain/member"
	"github.com/geocoder89/memberhub/internal/http/handlers"
	"github.com/geocoder89/memberhub/internal/jobs"
)

// Make sure Gin does not spam the console during the test

func init() {
	gin.SetMode(gin.TestMode)
}

const testSecret = "handler-test-secret"

// Fake repository implementation of the handlers store interfaces

type fakeMembersRepo struct {
	createFn      func(ctx context.Context, m member.Member) (member.Member, error)
	getFn         func(ctx context.Context, memberID string) (member.Member, error)
	setVerifiedFn func(ctx context.Context, memberID string) error
}

func (f *fakeMembersRepo) Create(ctx context.Context, m member.Member) (member.Member, error) {
	if f.createFn != nil {
		return f.createFn(ctx, m)
	}
	return m, nil
}

func (f *fakeMembersRepo) GetByMemberID(ctx context.Context, memberID string) (member.Member, error) {
	if f.getFn != nil {
		return f.getFn(ctx, memberID)
	}
	return member.Member{}, member.ErrNotFound
}

func (f *fakeMembersRepo) SetVerified(ctx context.Context, memberID string) error {
	if f.setVerifiedFn != nil {
		return f.setVerifiedFn(ctx, memberID)
	}
	return nil
}

// Fake hasher so tests skip real bcrypt work

type fakeHasher struct{}

func (fakeHasher) HashPassword(plain string) (string, error) {
	return "hashed:" + plain, nil
}

func (fakeHasher) CheckPassword(hash, plain string) error {
	if hash == "hashed:"+plain {
		return nil
	}
	return errors.New("mismatch")
}

type fakeEnqueuer struct {
	welcome []jobs.WelcomePayload
}

func (f *fakeEnqueuer) EnqueueWelcome(ctx context.Context, p jobs.WelcomePayload) error {
	f.welcome = append(f.welcome, p)
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newAuthRouter(repo *fakeMembersRepo, enq handlers.JobEnqueuer) *gin.Engine {
	jwtManager := auth.NewManager(testSecret, time.Hour)
	cookie := auth.NewSessionCookie("test", time.Hour)

	h := handlers.NewAuthHandler(repo, repo, fakeHasher{}, jwtManager, cookie, enq, discardLogger())

	r := gin.New()
	r.POST("/signup", h.SignUp)
	r.POST("/login", h.Login)
	r.POST("/logout", h.Logout)
	return r
}

func doJSON(r http.Handler, method, path, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	for _, c := range cookies {
		req.AddCookie(c)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func sessionCookieFrom(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()

	for _, c := range w.Result().Cookies() {
		if c.Name == auth.CookieName {
			return c
		}
	}

	t.Fatalf("session cookie not found in response")
	return nil
}

func TestSignUpCreatesMemberWithHashedPassword(t *testing.T) {
	var created member.Member

	repo := &fakeMembersRepo{
		createFn: func(ctx context.Context, m member.Member) (member.Member, error) {
			created = m
			return m, nil
		},
	}
	enq := &fakeEnqueuer{}

	r := newAuthRouter(repo, enq)

	w := doJSON(r, http.MethodPost, "/signup", `{
		"firstName": "Mina",
		"lastName": "Okafor",
		"email": "mina@example.com",
		"password": "super-secret-pass",
		"role": "member",
		"memberId": "M-1001"
	}`)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201, body=%s", w.Code, w.Body.String())
	}

	if created.PasswordHash == "super-secret-pass" {
		t.Error("plaintext password was stored")
	}
	if created.PasswordHash != "hashed:super-secret-pass" {
		t.Errorf("password hash = %q, want hashed form", created.PasswordHash)
	}
	if created.Role != member.RoleMember {
		t.Errorf("role = %q, want member", created.Role)
	}
	if created.ID == "" {
		t.Error("record id was not generated")
	}
	if created.IsVerified {
		t.Error("new member is verified")
	}

	if len(enq.welcome) != 1 {
		t.Fatalf("welcome jobs enqueued = %d, want 1", len(enq.welcome))
	}
	if enq.welcome[0].MemberID != "M-1001" {
		t.Errorf("welcome payload member id = %q, want M-1001", enq.welcome[0].MemberID)
	}
}

func TestSignUpDuplicateMemberID(t *testing.T) {
	repo := &fakeMembersRepo{
		createFn: func(ctx context.Context, m member.Member) (member.Member, error) {
			return member.Member{}, member.ErrMemberIDTaken
		},
	}

	r := newAuthRouter(repo, nil)

	w := doJSON(r, http.MethodPost, "/signup", `{
		"firstName": "Mina",
		"lastName": "Okafor",
		"email": "other@example.com",
		"password": "super-secret-pass",
		"role": "member",
		"memberId": "M-1001"
	}`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}

	var resp struct {
		Error handlers.APIError `json:"error"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp.Error.Code != "member_id_taken" {
		t.Errorf("error code = %q, want member_id_taken", resp.Error.Code)
	}
}

func TestSignUpDuplicateEmail(t *testing.T) {
	repo := &fakeMembersRepo{
		createFn: func(ctx context.Context, m member.Member) (member.Member, error) {
			return member.Member{}, member.ErrEmailTaken
		},
	}

	r := newAuthRouter(repo, nil)

	w := doJSON(r, http.MethodPost, "/signup", `{
		"firstName": "Mina",
		"lastName": "Okafor",
		"email": "mina@example.com",
		"password": "super-secret-pass",
		"role": "member",
		"memberId": "M-2002"
	}`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}

	var resp struct {
		Error handlers.APIError `json:"error"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp.Error.Code != "email_taken" {
		t.Errorf("error code = %q, want email_taken", resp.Error.Code)
	}
}

func TestSignUpMemberRequiresMemberID(t *testing.T) {
	createCalled := false
	repo := &fakeMembersRepo{
		createFn: func(ctx context.Context, m member.Member) (member.Member, error) {
			createCalled = true
			return m, nil
		},
	}

	r := newAuthRouter(repo, nil)

	w := doJSON(r, http.MethodPost, "/signup", `{
		"firstName": "Mina",
		"lastName": "Okafor",
		"email": "mina@example.com",
		"password": "super-secret-pass",
		"role": "member"
	}`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if createCalled {
		t.Error("create was called despite failed validation")
	}
}

func TestSignUpOfficerWithoutMemberID(t *testing.T) {
	repo := &fakeMembersRepo{}

	r := newAuthRouter(repo, nil)

	w := doJSON(r, http.MethodPost, "/signup", `{
		"firstName": "Omar",
		"lastName": "Haddad",
		"email": "omar@example.com",
		"password": "super-secret-pass",
		"role": "officer"
	}`)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201, body=%s", w.Code, w.Body.String())
	}
}

func TestLoginSetsSessionCookieWithClaims(t *testing.T) {
	stored := member.Member{
		ID:           "id-1",
		FirstName:    "Mina",
		LastName:     "Okafor",
		Email:        "mina@example.com",
		PasswordHash: "hashed:super-secret-pass",
		Role:         member.RoleMember,
		MemberID:     "M-1001",
	}

	repo := &fakeMembersRepo{
		getFn: func(ctx context.Context, memberID string) (member.Member, error) {
			if memberID == "M-1001" {
				return stored, nil
			}
			return member.Member{}, member.ErrNotFound
		},
	}

	r := newAuthRouter(repo, nil)

	w := doJSON(r, http.MethodPost, "/login", `{"memberId": "M-1001", "password": "super-secret-pass"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body=%s", w.Code, w.Body.String())
	}

	c := sessionCookieFrom(t, w)

	if !c.HttpOnly {
		t.Error("session cookie is not HttpOnly")
	}
	if c.SameSite != http.SameSiteStrictMode {
		t.Errorf("SameSite = %v, want Strict", c.SameSite)
	}
	if c.Secure {
		t.Error("Secure set outside prod")
	}

	claims, err := auth.NewManager(testSecret, time.Hour).VerifySessionToken(c.Value)
	if err != nil {
		t.Fatalf("cookie token did not verify: %v", err)
	}
	if claims.Email != stored.Email || claims.Role != stored.Role || claims.MemberID != stored.MemberID {
		t.Errorf("claims = {%s %s %s}, want {%s %s %s}",
			claims.Email, claims.Role, claims.MemberID,
			stored.Email, stored.Role, stored.MemberID)
	}
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	repo := &fakeMembersRepo{
		getFn: func(ctx context.Context, memberID string) (member.Member, error) {
			if memberID == "M-1001" {
				return member.Member{
					MemberID:     "M-1001",
					Email:        "mina@example.com",
					Role:         member.RoleMember,
					PasswordHash: "hashed:right-password",
				}, nil
			}
			return member.Member{}, member.ErrNotFound
		},
	}

	r := newAuthRouter(repo, nil)

	unknownID := doJSON(r, http.MethodPost, "/login", `{"memberId": "M-9999", "password": "whatever-pass"}`)
	wrongPass := doJSON(r, http.MethodPost, "/login", `{"memberId": "M-1001", "password": "wrong-password"}`)

	if unknownID.Code != http.StatusUnauthorized || wrongPass.Code != http.StatusUnauthorized {
		t.Fatalf("statuses = %d / %d, want 401 / 401", unknownID.Code, wrongPass.Code)
	}

	if unknownID.Body.String() != wrongPass.Body.String() {
		t.Errorf("bodies differ:\nunknown id: %s\nwrong pass: %s", unknownID.Body.String(), wrongPass.Body.String())
	}

	for _, c := range unknownID.Result().Cookies() {
		if c.Name == auth.CookieName {
			t.Error("failed login set a session cookie")
		}
	}
}

func TestLoginStoreFailureIsInternalError(t *testing.T) {
	repo := &fakeMembersRepo{
		getFn: func(ctx context.Context, memberID string) (member.Member, error) {
			return member.Member{}, errors.New("pgx: connection refused")
		},
	}

	r := newAuthRouter(repo, nil)

	w := doJSON(r, http.MethodPost, "/login", `{"memberId": "M-1001", "password": "whatever-pass"}`)

	// an unreachable store is not the caller's fault and must not read as
	// rejected credentials
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}

	if !strings.Contains(w.Body.String(), "internal_error") {
		t.Errorf("body = %s, want code internal_error", w.Body.String())
	}

	for _, c := range w.Result().Cookies() {
		if c.Name == auth.CookieName {
			t.Error("failed login set a session cookie")
		}
	}
}

func TestLogoutClearsCookieWithoutSession(t *testing.T) {
	r := newAuthRouter(&fakeMembersRepo{}, nil)

	w := doJSON(r, http.MethodPost, "/logout", "")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	c := sessionCookieFrom(t, w)

	if c.Value != "" {
		t.Errorf("cleared cookie has value %q", c.Value)
	}
	if c.MaxAge >= 0 {
		t.Errorf("cleared cookie MaxAge = %d, want negative", c.MaxAge)
	}
	if !c.HttpOnly {
		t.Error("cleared cookie lost HttpOnly flag")
	}
}
