package server

import (
	"net/http"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"shopfront/internal/auth"
	"shopfront/internal/session"
)

func (s *Server) RegisterRoutes() http.Handler {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true, // session cookie
	}))

	r.GET("/health", s.healthHandler)

	api := r.Group("/api")
	{
		api.POST("/login", s.authDeps.Login)
		api.POST("/signup", s.authDeps.Signup)
		api.POST("/logout", s.authDeps.Logout)

		api.GET("/products", s.products.List)
		api.GET("/products/:id", s.products.Get)
		api.GET("/news", s.news.List)
		api.GET("/news/:id", s.news.Get)

		authed := api.Group("")
		authed.Use(session.AuthMiddleware(s.sessionMgr))
		{
			authed.GET("/me", s.authDeps.Me)

			admin := authed.Group("")
			admin.Use(auth.RequireAdmin(s.authSvc))
			{
				admin.POST("/products", s.products.Create)
				admin.PATCH("/products/:id", s.products.Update)
				admin.DELETE("/products/:id", s.products.Delete)
				admin.POST("/products/upload-url", s.products.UploadURL)
			}
		}
	}

	return r
}

func (s *Server) healthHandler(c *gin.Context) {
	response := make(map[string]interface{})

	response["database"] = s.db.Health()

	if s.storage != nil {
		storageHealth := make(map[string]string)
		if err := s.storage.Health(c.Request.Context()); err != nil {
			storageHealth["status"] = "down"
			storageHealth["error"] = err.Error()
		} else {
			storageHealth["status"] = "up"
		}
		response["storage"] = storageHealth
	}

	c.JSON(http.StatusOK, response)
}

func allowedOrigins() []string {
	if v := getEnv("CORS_ALLOW_ORIGINS", ""); v != "" {
		return strings.Split(v, ",")
	}
	return []string{"http://localhost:3000", "http://localhost:5173"}
}
