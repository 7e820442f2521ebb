package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/geocoder89/memberhub/internal/auth"
	"github.com/geocoder89/memberhub/internal/config"
	"github.com/geocoder89/memberhub/internal/domain/member"
	"github.com/geocoder89/memberhub/internal/jobs"
)

type MemberReader interface {
	GetByMemberID(ctx context.Context, memberID string) (member.Member, error)
}

type MemberWriter interface {
	Create(ctx context.Context, m member.Member) (member.Member, error)
}

type PasswordHasher interface {
	HashPassword(plain string) (string, error)
	CheckPassword(hash, plain string) error
}

// JobEnqueuer hands notification work to the queue. Enqueue failures are
// logged and swallowed; a signup must not fail because Redis is down.
type JobEnqueuer interface {
	EnqueueWelcome(ctx context.Context, p jobs.WelcomePayload) error
}

type AuthHandler struct {
	members  MemberReader
	writer   MemberWriter
	hasher   PasswordHasher
	jwt      *auth.Manager
	cookie   *auth.SessionCookie
	enqueuer JobEnqueuer
	log      *slog.Logger
}

func NewAuthHandler(members MemberReader, writer MemberWriter, hasher PasswordHasher, jwtManager *auth.Manager, cookie *auth.SessionCookie, enqueuer JobEnqueuer, log *slog.Logger) *AuthHandler {
	return &AuthHandler{
		members:  members,
		writer:   writer,
		hasher:   hasher,
		jwt:      jwtManager,
		cookie:   cookie,
		enqueuer: enqueuer,
		log:      log,
	}
}

type SignUpRequest struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	Role      string `json:"role" binding:"required,oneof=member officer"`
	MemberID  string `json:"memberId" binding:"required_if=Role member"`
}

type LoginRequest struct {
	MemberID string `json:"memberId" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) SignUp(ctx *gin.Context) {
	var req SignUpRequest

	if !BindJSON(ctx, &req) {
		return
	}

	// binding's oneof already constrains the value; parse anyway so the
	// closed type is the only thing that crosses into the domain
	role, err := member.ParseRole(req.Role)

	if err != nil {
		RespondBadRequest(ctx, "invalid_request", "Invalid request body", gin.H{"field": "role"})
		return
	}

	hash, err := h.hasher.HashPassword(req.Password)

	if err != nil {
		RespondInternal(ctx, "Could not create member")
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	// Insert-or-fail: uniqueness is decided by the store, never by a lookup
	// here, so two racing signups cannot both get through.
	m, err := h.writer.Create(cctx, member.NewFromCreateRequest(member.CreateMemberRequest{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         role,
		MemberID:     req.MemberID,
	}))

	if err != nil {
		switch {
		case errors.Is(err, member.ErrMemberIDTaken):
			RespondBadRequest(ctx, "member_id_taken", "Member ID is already in use.", nil)
		case errors.Is(err, member.ErrEmailTaken):
			RespondBadRequest(ctx, "email_taken", "Email is already in use.", nil)
		default:
			h.log.Error("signup failed", "err", err)
			RespondInternal(ctx, "Could not create member")
		}
		return
	}

	if h.enqueuer != nil {
		err = h.enqueuer.EnqueueWelcome(cctx, jobs.WelcomePayload{
			Email:        m.Email,
			FirstName:    m.FirstName,
			MemberID:     m.MemberID,
			RegisteredAt: m.CreatedAt,
		})
		if err != nil {
			h.log.Warn("welcome notification enqueue failed", "err", err, "member_id", m.MemberID)
		}
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"message": "Member created successfully",
	})
}

func (h *AuthHandler) Login(ctx *gin.Context) {
	var req LoginRequest

	if !BindJSON(ctx, &req) {
		return
	}

	// short timeout for DB lookup
	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	found, err := h.members.GetByMemberID(cctx, req.MemberID)
	if err != nil {
		// Same status and message as a wrong password; the caller must not
		// learn which half of the credential failed. Only a confirmed miss
		// counts: a store outage is an internal failure, not bad credentials.
		if errors.Is(err, member.ErrNotFound) {
			RespondUnAuthorized(ctx, "invalid_credentials", "Member ID or password is incorrect.")
			return
		}

		h.log.Error("login lookup failed", "err", err)
		RespondInternal(ctx, "Could not log in")
		return
	}

	err = h.hasher.CheckPassword(found.PasswordHash, req.Password)

	if err != nil {
		RespondUnAuthorized(ctx, "invalid_credentials", "Member ID or password is incorrect.")
		return
	}

	token, err := h.jwt.GenerateSessionToken(found.Email, found.Role, found.MemberID)

	if err != nil {
		h.log.Error("session token generation failed", "err", err)
		RespondInternal(ctx, "Could not create session")
		return
	}

	h.cookie.Issue(ctx, token)

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
	})
}

// Logout clears the cookie no matter what; doing it for an absent session is
// harmless and keeps the endpoint idempotent.
func (h *AuthHandler) Logout(ctx *gin.Context) {
	h.cookie.Clear(ctx)

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Logout successful",
	})
}
