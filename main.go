package main

import (
	"os"
	"server/auth"
	"server/config"
	"server/db"
	"server/handlers"
	"server/models"
	"server/storage"
	"server/utils"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/sessions"
	gormsessions "github.com/gin-contrib/sessions/gorm"
	"github.com/gin-gonic/autotls"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	sessionCookieName     = "token"
	sessionExpirationTime = 30 * 86400 // 30 days
	uploadsCacheTime      = 30 * 86400
)

func initLogging() {
	zerolog.TimeFieldFormat = time.RFC3339
	if config.DEBUG_MODE {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).
			Level(zerolog.DebugLevel)
	} else {
		log.Logger = log.Logger.Level(zerolog.InfoLevel)
	}
}

func main() {
	initLogging()
	db.Init()
	models.Init()
	storage.Init()

	if !config.DEBUG_MODE {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	_ = router.SetTrustedProxies([]string{})
	if config.DEBUG_MODE {
		router.Use(utils.ErrorLogMiddleware)
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "PUT", "POST", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           30 * 24 * time.Hour,
	}))

	cookieStore := gormsessions.NewStore(db.Instance, true, []byte(config.SESSION_KEY))
	cookieStore.Options(sessions.Options{Path: "/", MaxAge: sessionExpirationTime})
	router.Use(sessions.Sessions(sessionCookieName, cookieStore))
	if !config.DEBUG_MODE {
		router.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/uploads"})))
	}
	router.Use((&utils.CacheRouter{}).Handler()) // API responses are never cached

	// Public storefront API
	api := router.Group("/api")
	api.GET("/albums", handlers.AlbumList)
	api.GET("/albums/featured", handlers.AlbumFeatured)
	api.GET("/albums/:slug", handlers.AlbumGet)
	api.POST("/albums/:slug/like", handlers.AlbumLike)
	api.POST("/albums/:slug/unlike", handlers.AlbumUnlike)
	api.GET("/reviews", handlers.ReviewList)
	api.POST("/reviews", handlers.ReviewCreate)
	api.POST("/inquiries", handlers.InquiryCreate)
	api.GET("/faqs", handlers.FAQList)
	api.GET("/settings", handlers.SettingList)

	// Admin dashboard API
	api.POST("/admin/login", handlers.AdminLogin)
	api.GET("/admin/status", handlers.AdminStatus)
	adminRouter := &auth.Router{Base: api.Group("/admin")}
	adminRouter.POST("/logout", handlers.AdminLogout)
	adminRouter.GET("/albums", handlers.AdminAlbumList)
	adminRouter.GET("/albums/:id", handlers.AdminAlbumGet)
	adminRouter.POST("/albums", handlers.AdminAlbumCreate)
	adminRouter.PUT("/albums/:id", handlers.AdminAlbumUpdate)
	adminRouter.DELETE("/albums/:id", handlers.AdminAlbumDelete)
	adminRouter.GET("/albums/:id/media", handlers.AdminMediaList)
	adminRouter.POST("/albums/:id/media/reorder", handlers.AdminMediaReorder)
	adminRouter.GET("/stats", handlers.AdminAlbumStats)
	adminRouter.POST("/media/upload", handlers.AdminMediaUpload)
	adminRouter.PUT("/media/:id", handlers.AdminMediaUpdate)
	adminRouter.DELETE("/media/:id", handlers.AdminMediaDelete)
	adminRouter.POST("/media/delete", handlers.AdminMediaBatchDelete)
	adminRouter.GET("/reviews", handlers.AdminReviewList)
	adminRouter.PUT("/reviews/:id", handlers.AdminReviewModerate)
	adminRouter.DELETE("/reviews/:id", handlers.AdminReviewDelete)
	adminRouter.GET("/inquiries", handlers.AdminInquiryList)
	adminRouter.GET("/inquiries/unread", handlers.AdminInquiryUnreadCount)
	adminRouter.PUT("/inquiries/:id", handlers.AdminInquiryStatus)
	adminRouter.DELETE("/inquiries/:id", handlers.AdminInquiryDelete)
	adminRouter.GET("/faqs", handlers.AdminFAQList)
	adminRouter.POST("/faqs", handlers.AdminFAQCreate)
	adminRouter.PUT("/faqs/:id", handlers.AdminFAQUpdate)
	adminRouter.DELETE("/faqs/:id", handlers.AdminFAQDelete)
	adminRouter.POST("/faqs/reorder", handlers.AdminFAQReorder)
	adminRouter.GET("/settings", handlers.AdminSettingList)
	adminRouter.POST("/settings", handlers.AdminSettingSave)

	// Stored media, long-cached
	uploads := router.Group("/uploads", (&utils.CacheRouter{MaxAge: uploadsCacheTime}).Handler())
	uploads.GET("/*path", func(c *gin.Context) {
		path := strings.TrimPrefix(c.Param("path"), "/")
		if strings.Contains(path, "..") {
			c.Status(400)
			return
		}
		storage.Default().Serve(path, c.Request, c.Writer)
	})

	var err error
	if config.TLS_DOMAINS != "" {
		err = autotls.Run(router, strings.Split(config.TLS_DOMAINS, ",")...)
	} else {
		err = router.Run(config.BIND_ADDRESS)
	}
	log.Fatal().Err(err).Msg("server stopped")
}
