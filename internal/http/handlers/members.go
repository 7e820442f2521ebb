package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/geocoder89/memberhub/internal/config"
	"github.com/geocoder89/memberhub/internal/domain/member"
	"github.com/geocoder89/memberhub/internal/http/middlewares"
	"github.com/geocoder89/memberhub/internal/jobs"
)

type MemberVerifier interface {
	GetByMemberID(ctx context.Context, memberID string) (member.Member, error)
	SetVerified(ctx context.Context, memberID string) error
}

type VerifiedEnqueuer interface {
	EnqueueVerified(ctx context.Context, p jobs.VerifiedPayload) error
}

type MembersHandler struct {
	members  MemberVerifier
	enqueuer VerifiedEnqueuer
	log      *slog.Logger
}

func NewMembersHandler(members MemberVerifier, enqueuer VerifiedEnqueuer, log *slog.Logger) *MembersHandler {
	return &MembersHandler{
		members:  members,
		enqueuer: enqueuer,
		log:      log,
	}
}

type VerifyRequest struct {
	MemberID string `json:"memberId" binding:"required"`
}

// Verify flips the target's verified flag. The officer gate has already run
// in middleware; the body names the target, the cookie names the caller.
func (h *MembersHandler) Verify(ctx *gin.Context) {
	var req VerifyRequest

	if !BindJSON(ctx, &req) {
		return
	}

	claims, _ := middlewares.ClaimsFromContext(ctx)

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	target, err := h.members.GetByMemberID(cctx, req.MemberID)

	if err != nil {
		if errors.Is(err, member.ErrNotFound) {
			RespondUnAuthorized(ctx, "invalid_member_id", "Invalid member ID")
			return
		}

		h.log.Error("verify lookup failed", "err", err)
		RespondInternal(ctx, "Could not verify membership")
		return
	}

	if target.IsVerified {
		ctx.JSON(http.StatusOK, gin.H{
			"message": "Membership already verified",
		})
		return
	}

	if err := h.members.SetVerified(cctx, target.MemberID); err != nil {
		h.log.Error("verify update failed", "err", err)
		RespondInternal(ctx, "Could not verify membership")
		return
	}

	if h.enqueuer != nil && claims != nil {
		err = h.enqueuer.EnqueueVerified(cctx, jobs.VerifiedPayload{
			Email:      target.Email,
			FirstName:  target.FirstName,
			MemberID:   target.MemberID,
			VerifiedBy: claims.Email,
			VerifiedAt: time.Now().UTC(),
		})
		if err != nil {
			h.log.Warn("verified notification enqueue failed", "err", err, "member_id", target.MemberID)
		}
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Membership verified",
	})
}
