package routes

import (
	"net/http"

	"movie-app/internal/api/actors"
	adminapi "movie-app/internal/api/admin"
	authapi "movie-app/internal/api/auth"
	"movie-app/internal/api/billing"
	"movie-app/internal/api/files"
	"movie-app/internal/api/genres"
	"movie-app/internal/api/movies"
	"movie-app/internal/api/paymentwebhook"
	"movie-app/internal/api/reviews"
	"movie-app/internal/api/users"
	"movie-app/internal/app/http/middleware"
	"movie-app/internal/auth"
	domainusers "movie-app/internal/domain/users"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Deps carries everything the HTTP layer needs.
type Deps struct {
	Issuer    *auth.Issuer
	Gatherer  prometheus.Gatherer
	UploadDir string

	Auth     *authapi.Handler
	Google   *authapi.Google // nil when Google sign-in is not configured
	Users    *users.Handler
	Movies   *movies.Handler
	Actors   *actors.Handler
	Genres   *genres.Handler
	Reviews  *reviews.Handler
	Files    *files.Handler
	Payments *billing.Handler
	Webhook  *paymentwebhook.Handler
	Admin    *adminapi.Handler
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	// The provider signs the raw body, so the webhook must not be rewritten
	// by the sanitizer.
	r.POST("/payment/status", d.Webhook.PaymentStatus)
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{})))
	r.Static("/uploads", d.UploadDir)

	api := r.Group("/")
	api.Use(middleware.SanitizeAndCleanInputMiddleware())

	authed := middleware.AuthMiddleware(d.Issuer)
	requireAdmin := middleware.RequireRole(domainusers.RoleAdmin)
	admin := func(h gin.HandlerFunc) []gin.HandlerFunc {
		return []gin.HandlerFunc{authed, requireAdmin, h}
	}

	// auth
	api.POST("/auth/register", d.Auth.Register)
	api.POST("/auth/login", d.Auth.Login)
	api.POST("/auth/login/access-token", d.Auth.NewTokens)
	if d.Google != nil {
		api.GET("/auth/google", d.Google.Start)
		api.GET("/auth/google/callback", d.Google.Callback)
	}

	// users
	u := api.Group("/users")
	u.GET("/profile", authed, d.Users.GetProfile)
	u.POST("/profile/favorites", authed, d.Users.ToggleFavorite)
	u.GET("/all", admin(d.Users.List)...)
	u.GET("/get/:id", admin(d.Users.Get)...)
	u.PUT("/update/:id", admin(d.Users.Update)...)
	u.DELETE("/delete/:id", admin(d.Users.Delete)...)

	// movies
	m := api.Group("/movies")
	m.GET("/all", d.Movies.List)
	m.GET("/get/by-slug/:slug", d.Movies.GetBySlug)
	m.GET("/get/most-popular", d.Movies.MostPopular)
	m.GET("/get/by-actor/:id", d.Movies.ByActor)
	m.POST("/get/by-genres", d.Movies.ByGenres)
	m.PUT("/update-count-views", d.Movies.UpdateCountViews)
	m.GET("/get/by-id/:id", admin(d.Movies.GetByID)...)
	m.POST("/create", admin(d.Movies.Create)...)
	m.PUT("/update/:id", admin(d.Movies.Update)...)
	m.DELETE("/delete/:id", admin(d.Movies.Delete)...)

	// actors
	a := api.Group("/actors")
	a.GET("/all", d.Actors.List)
	a.GET("/get/by-slug/:slug", d.Actors.GetBySlug)
	a.GET("/get/by-id/:id", admin(d.Actors.GetByID)...)
	a.POST("/create", admin(d.Actors.Create)...)
	a.PUT("/update/:id", admin(d.Actors.Update)...)
	a.DELETE("/delete/:id", admin(d.Actors.Delete)...)

	// genres
	g := api.Group("/genres")
	g.GET("/all", d.Genres.List)
	g.GET("/get/by-slug/:slug", d.Genres.GetBySlug)
	g.GET("/get/by-id/:id", admin(d.Genres.GetByID)...)
	g.POST("/create", admin(d.Genres.Create)...)
	g.PUT("/update/:id", admin(d.Genres.Update)...)
	g.DELETE("/delete/:id", admin(d.Genres.Delete)...)

	// reviews
	rv := api.Group("/reviews")
	rv.POST("/create/:movieId", authed, d.Reviews.Create)
	rv.GET("/get/all", admin(d.Reviews.List)...)
	rv.DELETE("/delete/:id", admin(d.Reviews.Delete)...)

	// files
	api.POST("/files", admin(d.Files.Upload)...)

	// payments
	p := api.Group("/payment")
	p.POST("", authed, d.Payments.Checkout)
	p.GET("/history", authed, d.Payments.GetPaymentHistory)
	p.GET("/get/all", admin(d.Payments.ListAllPayments)...)
	p.DELETE("/delete/:id", admin(d.Payments.DeletePayment)...)

	// statistics
	api.GET("/statistics/main", admin(d.Admin.MainStatistics)...)
}
