package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"job-catalog/internal/resumes"
	"job-catalog/internal/services/health"
	"job-catalog/internal/shared/config"
	"job-catalog/internal/shared/metrics"
	"job-catalog/internal/shared/server/middleware"
	"job-catalog/internal/shared/server/respond"
	"job-catalog/internal/vacancies"
)

// RouterDeps holds dependencies for the catalog API router.
type RouterDeps struct {
	Config         config.Config
	VacancyHandler *vacancies.Handler
	ResumeHandler  *resumes.Handler
	Health         *health.Service
}

// NewRouter constructs the API engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
	)

	api := r.Group("/api")
	api.GET("/health", func(c *gin.Context) {
		status := deps.Health.Status(c.Request.Context())
		code := http.StatusOK
		if !status.OK {
			code = http.StatusServiceUnavailable
		}
		respond.JSON(c, code, status)
	})
	if deps.VacancyHandler != nil {
		deps.VacancyHandler.RegisterRoutes(api)
	}
	if deps.ResumeHandler != nil {
		deps.ResumeHandler.RegisterRoutes(api)
	}

	return r
}

// WebRoutes is implemented by the HTML front end.
type WebRoutes interface {
	RegisterRoutes(r gin.IRouter)
}

// WebDeps holds dependencies for the front-end router.
type WebDeps struct {
	Pages  WebRoutes
	Static http.FileSystem
}

// NewWebRouter constructs the front-end engine serving pages, static assets,
// health and metrics.
func NewWebRouter(deps WebDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
	)

	r.GET("/healthz", func(c *gin.Context) {
		respond.OK(c, gin.H{"ok": true})
	})
	r.GET("/metrics", metrics.Handler())
	if deps.Static != nil {
		r.StaticFS("/static", deps.Static)
	}
	if deps.Pages != nil {
		deps.Pages.RegisterRoutes(r)
	}

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
