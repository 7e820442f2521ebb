package auth

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// CookieName is the single cookie this service sets; its value is the signed
// session token and nothing else.
const CookieName = "token"

// SessionCookie binds session tokens to the transport cookie. The Secure flag
// follows the deployment mode so local development over plain HTTP still works.
type SessionCookie struct {
	secure bool
	maxAge time.Duration
}

func NewSessionCookie(env string, maxAge time.Duration) *SessionCookie {
	return &SessionCookie{
		secure: env == "prod",
		maxAge: maxAge,
	}
}

func (s *SessionCookie) Issue(ctx *gin.Context, token string) {
	ctx.SetSameSite(http.SameSiteStrictMode)

	ctx.SetCookie(
		CookieName,
		token,
		int(s.maxAge.Seconds()),
		"/",
		"",
		s.secure,
		true, // HttpOnly.
	)
}

// Clear instructs the client to drop the cookie. Flags must match Issue or
// some browsers keep the old cookie around.
func (s *SessionCookie) Clear(ctx *gin.Context) {
	ctx.SetSameSite(http.SameSiteStrictMode)

	ctx.SetCookie(
		CookieName,
		"",
		-1,
		"/",
		"",
		s.secure,
		true,
	)
}
