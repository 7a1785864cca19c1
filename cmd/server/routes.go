package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"motes-generator.backend/internal/interfaces/http/handlers"
	"motes-generator.backend/internal/interfaces/http/middleware"
)

type routeDeps struct {
	profileHandler *handlers.ProfileHandler
	matchHandler   *handlers.MatchHandler
	blockHandler   *handlers.BlockHandler
	emailHandler   *handlers.EmailHandler
	healthHandler  *handlers.HealthHandler
	metricsHandler http.Handler
}

// registerAppRoutes serves every endpoint at the root and again under /api,
// the paths used by the existing frontend and email links.
func registerAppRoutes(r *gin.Engine, d routeDeps) {
	registerEndpoints(r, d)
	registerEndpoints(r.Group("/api"), d)
}

func registerEndpoints(g gin.IRoutes, d routeDeps) {
	idempotent := middleware.IdempotencyMiddleware()

	g.POST("/submitProfile", idempotent, d.profileHandler.SubmitProfile)
	g.GET("/submitProfile", d.profileHandler.SubmitProfileLive)
	g.GET("/profiles", d.profileHandler.ListProfiles)
	g.DELETE("/profiles", d.profileHandler.DeleteProfile)

	g.POST("/matchNow", idempotent, d.matchHandler.MatchNow)
	g.POST("/expireMatches", d.matchHandler.ExpireMatches)
	g.GET("/matchRespond", d.matchHandler.MatchRespond)

	g.POST("/blockPair", idempotent, d.blockHandler.BlockPair)

	g.POST("/sendTestEmail", d.emailHandler.SendTestEmail)
	g.GET("/sendTestEmail", d.emailHandler.SendTestEmail)
}

func registerHealthRoute(r *gin.Engine, d routeDeps) {
	r.GET("/health", d.healthHandler.Health)
	if d.metricsHandler != nil {
		r.GET("/metrics", gin.WrapH(d.metricsHandler))
	}
}

// applyCORSMiddleware wraps the engine so preflight requests are answered
// before gin routing.
func applyCORSMiddleware(r *gin.Engine, allowedOrigins []string) http.Handler {
	return middleware.CORS(allowedOrigins, r)
}
