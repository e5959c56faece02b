package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"movie-app/config"
	"movie-app/database"
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
	routes "movie-app/internal/app/http"
	"movie-app/internal/app/http/middleware"
	"movie-app/internal/auth"
	redisledger "movie-app/internal/infra/redis"
	stripeprovider "movie-app/internal/infra/stripe"
	"movie-app/internal/infra/yookassa"
	"movie-app/internal/logger"
	"movie-app/internal/metrics"
	"movie-app/internal/repository"
	"movie-app/internal/service"
	"movie-app/internal/storage"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	zl, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer zl.Sync()

	if err := run(cfg, zl); err != nil {
		zl.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, zl *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(cfg.DBURL)
	if err != nil {
		return err
	}
	if err := database.Migrate(db); err != nil {
		return err
	}
	zl.Info("connected and migrated")

	m := metrics.New(prometheus.DefaultRegisterer)
	issuer := auth.NewIssuer(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)

	userRepo := repository.NewUserRepository(db)
	orderRepo := repository.NewOrderRepository(db)

	ledger, closeLedger, err := newEventLedger(ctx, cfg, db, zl)
	if err != nil {
		return err
	}
	defer closeLedger()

	provider := newPaymentProvider(cfg)
	payments := service.NewPaymentService(orderRepo, userRepo, ledger, provider, m, zl, service.PaymentConfig{
		ReturnURL: cfg.AppURL + "/thanks",
		Currency:  cfg.Payment.Currency,
	})
	authSvc := service.NewAuthService(userRepo, issuer, zl)

	deps := routes.Deps{
		Issuer:    issuer,
		Gatherer:  prometheus.DefaultGatherer,
		UploadDir: cfg.UploadDir,

		Auth:     authapi.NewHandler(authSvc, zl),
		Users:    users.NewHandler(userRepo, zl),
		Movies:   movies.NewHandler(repository.NewMovieRepository(db), zl),
		Actors:   actors.NewHandler(repository.NewActorRepository(db), zl),
		Genres:   genres.NewHandler(repository.NewGenreRepository(db), zl),
		Reviews:  reviews.NewHandler(repository.NewReviewRepository(db), zl),
		Files:    files.NewHandler(storage.NewLocalStorage(cfg.UploadDir, "/uploads"), zl),
		Payments: billing.NewHandler(payments, zl),
		Webhook:  paymentwebhook.NewHandler(payments, zl),
		Admin:    adminapi.NewHandler(repository.NewStatisticsRepository(db), zl),
	}
	if cfg.Google.Enabled() {
		g, err := authapi.NewGoogle(ctx, cfg.Google, authSvc, zl)
		if err != nil {
			return err
		}
		deps.Google = g
	}

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(zl), middleware.Metrics(m))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.CORSOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.RegisterRoutes(r, deps)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		zl.Info("listening", zap.String("addr", srv.Addr), zap.String("payment_provider", provider.Name()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	zl.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func newPaymentProvider(cfg *config.Config) service.PaymentProvider {
	if cfg.Payment.Provider == config.ProviderStripe {
		return stripeprovider.New(cfg.Payment.StripeSecretKey, cfg.Payment.StripeWebhookSecret)
	}
	return yookassa.New(cfg.Payment.ShopID, cfg.Payment.SecretKey, cfg.Payment.WebhookSecret)
}

// newEventLedger uses redis when REDIS_ADDR is set and the webhook_events
// table otherwise.
func newEventLedger(ctx context.Context, cfg *config.Config, db *gorm.DB, zl *zap.Logger) (service.EventLedger, func(), error) {
	if cfg.RedisAddr == "" {
		return repository.NewWebhookEventRepository(db), func() {}, nil
	}

	client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, nil, err
	}
	zl.Info("webhook ledger on redis", zap.String("addr", cfg.RedisAddr))
	return redisledger.NewEventLedger(client, "webhook:", redisledger.DefaultEventTTL), func() { client.Close() }, nil
}
