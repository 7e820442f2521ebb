package http

import (
	"context"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/geocoder89/memberhub/internal/auth"
	"github.com/geocoder89/memberhub/internal/config"
	"github.com/geocoder89/memberhub/internal/domain/member"
	"github.com/geocoder89/memberhub/internal/http/handlers"
	"github.com/geocoder89/memberhub/internal/http/middlewares"
	"github.com/geocoder89/memberhub/internal/jobs"
	"github.com/geocoder89/memberhub/internal/observability"
	"github.com/geocoder89/memberhub/internal/queue/redisclient"
	"github.com/geocoder89/memberhub/internal/repo/memory"
	"github.com/geocoder89/memberhub/internal/repo/postgres"
	"github.com/geocoder89/memberhub/internal/security"
)

const maxBodyBytes = 1 << 20 // 1 MiB; these payloads are tiny

// NewRouter wires middleware, repositories and handlers. A nil pool selects
// the in-memory store (tests, local hacking); a nil redis client disables
// the notification pipeline.
func NewRouter(log *slog.Logger, pool *pgxpool.Pool, rdb *redisclient.Client, cfg config.Config) *gin.Engine {
	if cfg.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	reg := prometheus.NewRegistry()
	prom := observability.NewProm(reg)

	// middleware

	r.Use(gin.Recovery())
	r.Use(middlewares.RequestID())
	r.Use(middlewares.RequestLogger(log))
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddleware(cfg.AllowedOrigins))
	r.Use(middlewares.RequireJSON())
	r.Use(middlewares.MaxBodyBytes(maxBodyBytes))
	r.Use(prom.GinHandleMiddleware())
	r.Use(otelgin.Middleware("memberhub"))

	// health
	ping := func() error {
		if pool == nil {
			return nil
		}

		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
		defer cancel()

		return pool.Ping(ctx)
	}

	health := handlers.NewHealthHandler(ping)
	r.GET("/healthz", health.Healthz)
	r.GET("/readyz", health.Readyz)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	// wire up the member store

	var members interface {
		handlers.MemberReader
		handlers.MemberWriter
		handlers.MemberVerifier
	}

	if pool != nil {
		members = postgres.NewMembersRepo(pool, prom)
	} else {
		members = memory.NewMembersRepo()
	}

	var welcomeEnq handlers.JobEnqueuer
	var verifiedEnq handlers.VerifiedEnqueuer

	if rdb != nil {
		producer := jobs.NewProducer(rdb, cfg.QueueKey)
		welcomeEnq = producer
		verifiedEnq = producer
	}

	jwtManager := auth.NewManager(cfg.JWTSecret, cfg.SessionTTL())
	cookie := auth.NewSessionCookie(cfg.Env, cfg.SessionTTL())
	gate := middlewares.NewAuthMiddleware(jwtManager)

	authHandler := handlers.NewAuthHandler(members, members, security.NewHasher(), jwtManager, cookie, welcomeEnq, log)
	membersHandler := handlers.NewMembersHandler(members, verifiedEnq, log)

	r.POST("/signup", authHandler.SignUp)
	r.POST("/login", authHandler.Login)
	r.POST("/verify", gate.RequireSession(), gate.RequireRole(member.RoleOfficer), membersHandler.Verify)
	r.POST("/logout", authHandler.Logout)

	return r
}
