package router

import (
	"github.com/gin-gonic/gin"
	"github.com/swaggo/files"
	"github.com/swaggo/gin-swagger"
	_ "prism/docs"
	"prism/middleware"
	"prism/router/api"
	"prism/service"
)

// Services what the routes serve. Journal is nil when no database is configured.
type Services struct {
	Relay   *service.RelayService
	Artwork *service.ArtworkService
	Journal *service.Journal
	Signer  string
}

func New(s Services) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	// Allow cross-domain access, and those with nginx and other proxies can be closed
	r.Use(middleware.Cors())
	r.Use(middleware.RequestId())
	// Set up accessible routes
	api.Relay(r, s.Relay)
	api.Artwork(r, s.Artwork)
	if s.Journal != nil {
		api.Mint(r, s.Journal)
	}
	api.Health(r, s.Signer)
	r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	return r
}
