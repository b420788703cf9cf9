package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/bikramkgupta/care-circle-journal/controllers"
	"github.com/bikramkgupta/care-circle-journal/middlewares"
)

type Controllers struct {
	Auth      *controllers.AuthController
	Profiles  *controllers.CareProfileController
	Entries   *controllers.EntryController
	Media     *controllers.MediaController
	Summaries *controllers.SummaryController
}

func SetupRouter(ctrl Controllers, jwtSecret []byte) *gin.Engine {
	r := gin.Default()
	r.Use(cors.Default())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "timestamp": time.Now().UTC().Format(time.RFC3339)})
	})

	auth := r.Group("/auth")
	{
		auth.POST("/signup", ctrl.Auth.Signup)
		auth.POST("/login", ctrl.Auth.Login)
		auth.GET("/me", middlewares.AuthMiddleware(jwtSecret), ctrl.Auth.Me)
	}

	profiles := r.Group("/care-profiles")
	profiles.Use(middlewares.AuthMiddleware(jwtSecret))
	{
		profiles.GET("", ctrl.Profiles.List)
		profiles.POST("", ctrl.Profiles.Create)
		profiles.GET("/:id", ctrl.Profiles.Get)
	}

	entries := r.Group("/entries")
	entries.Use(middlewares.AuthMiddleware(jwtSecret))
	{
		entries.GET("/:profileId", ctrl.Entries.List)
		entries.POST("/:profileId", ctrl.Entries.Create)
	}

	media := r.Group("/media")
	media.Use(middlewares.AuthMiddleware(jwtSecret))
	{
		media.POST("/presign", ctrl.Media.Presign)
		media.GET("/:mediaId/url", ctrl.Media.GetURL)
	}

	summaries := r.Group("/summaries")
	summaries.Use(middlewares.AuthMiddleware(jwtSecret))
	{
		summaries.POST("/:profileId/daily", ctrl.Summaries.GenerateDaily)
		summaries.POST("/:profileId/insights", ctrl.Summaries.GenerateInsights)
		summaries.GET("/:profileId", ctrl.Summaries.List)
	}

	return r
}
