package bootstrap

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"job-catalog/internal/apiclient"
	"job-catalog/internal/resource"
	"job-catalog/internal/shared/config"
	"job-catalog/internal/shared/server"
	"job-catalog/internal/web"
)

// Web holds the front-end dependencies.
type Web struct {
	Config    config.Config
	Router    *gin.Engine
	Resources *resource.Set
	API       *apiclient.Client
	Renderer  *web.Renderer
}

// BuildWeb loads descriptors and templates and wires the front-end router
// against the configured API base URL.
func BuildWeb(cfg config.Config) (*Web, error) {
	set, err := resource.Load(cfg.ResourcesFile)
	if err != nil {
		return nil, err
	}
	renderer, err := web.NewRenderer(cfg.NumberLocale)
	if err != nil {
		return nil, err
	}
	client := apiclient.New(cfg.APIBaseURL, cfg.APITimeout)

	w := &Web{Config: cfg, Resources: set, API: client, Renderer: renderer}
	w.Router = server.NewWebRouter(server.WebDeps{
		Pages:  web.NewHandler(set, client, renderer),
		Static: http.FS(web.StaticFS()),
	})
	return w, nil
}
