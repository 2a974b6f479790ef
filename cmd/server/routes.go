package main

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/lumacast/lumacast/internal/db"
	"github.com/lumacast/lumacast/internal/http/api"
	adminapi "github.com/lumacast/lumacast/internal/http/api/admin/endpoints"
	playerapi "github.com/lumacast/lumacast/internal/http/api/player/endpoints"
	"github.com/lumacast/lumacast/internal/storage"
)

// RegisterRoutes sets up all application routes
func RegisterRoutes(r *gin.Engine, env Environment, store db.Store, storageSystem storage.Storage) {
	// CORS
	r.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool { return true },
		AllowMethods: []string{
			"GET",
			"POST",
			"PUT",
			"PATCH",
			"DELETE",
			"OPTIONS",
			"HEAD",
		},
		AllowHeaders: []string{
			"Origin",
			"Content-Type",
			"Accept",
			"If-None-Match",
			"X-If-None-Match",
		},
		ExposeHeaders: []string{
			"Content-Length",
			"ETag",
			"X-Content-ETag",
		},
		AllowCredentials: false,
	}))

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "lumacast signage backend is running"})
	})

	api.MountGroup(r, api.GroupConfig{
		Prefix: "/api",
	},
		// operator-facing modules
		adminapi.PlayerModule(store),
		adminapi.PlaylistModule(store),
		adminapi.ContentModule(store, storageSystem),
		// device-facing read path
		playerapi.DeliveryModule(store),
	)

	// Static content
	if !env.UseSpaces {
		r.Static("/uploads", "./uploads")
	}
}
