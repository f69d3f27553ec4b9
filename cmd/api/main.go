package main

import (
	"context"
	"errors"
	"io/fs"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	goredis "github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"

	httpadp "loan-application-backend/internal/adapter/http"
	"loan-application-backend/internal/adapter/middleware"
	"loan-application-backend/internal/adapter/notify"
	"loan-application-backend/internal/adapter/repository/kvstore"
	redisrepo "loan-application-backend/internal/adapter/repository/redis"
	"loan-application-backend/internal/adapter/repository/sqlstore"
	"loan-application-backend/internal/config"
	domain "loan-application-backend/internal/domain/application"
	"loan-application-backend/internal/domain/kv"
	"loan-application-backend/internal/domain/uow"
	"loan-application-backend/internal/infrastructure/cache"
	"loan-application-backend/internal/infrastructure/db"
	ucApplication "loan-application-backend/internal/usecase/application"
	"loan-application-backend/internal/usecase/auth"
	"loan-application-backend/internal/usecase/review"
	"loan-application-backend/pkg/token"
)

// lockWait bounds how long a request queues behind another writer.
const lockWait = 5 * time.Second

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("dotenv: %v", err)
	}
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}
	defer rdb.Close()

	store, tx, notifier, err := openStore(cfg, rdb)
	if err != nil {
		log.Fatalf("store: %v", err)
	}

	apps := kvstore.NewApplicationRepository(store, cfg.MaxRecordBytes)
	identities := kvstore.NewIdentityRepository(store)

	adminHash, err := adminPasswordHash(cfg)
	if err != nil {
		log.Fatalf("admin password: %v", err)
	}
	tokens := token.NewIssuer(cfg.JWTSecret, cfg.TokenTTL())

	appUC := ucApplication.NewUsecase(apps, tx, notifier)
	reviewUC := review.NewUsecase(apps, tx, notifier)
	authUC := auth.NewUsecase(identities, tokens, auth.Config{
		OTPTTL:            cfg.OTPTTL(),
		FixedOTP:          cfg.OTPFixedCode,
		AdminUsername:     cfg.AdminUsername,
		AdminPasswordHash: adminHash,
	})

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(echomw.Logger(), echomw.Recover())

	h := httpadp.NewHandler()
	authH := httpadp.NewAuthHandler(authUC)
	appH := httpadp.NewApplicationHandler(appUC)
	adminH := httpadp.NewAdminHandler(reviewUC)

	// routes
	e.GET("/health", h.Health)
	e.POST("/auth/otp", authH.SendOTP)
	e.POST("/auth/otp/verify", authH.VerifyOTP)
	e.POST("/admin/login", authH.AdminLogin)

	user := e.Group("/applications",
		middleware.Authenticate(tokens, token.RoleUser),
		middleware.IdempotencyMiddleware(rdb, cfg.IdempotencyTTL()),
	)
	user.POST("", appH.Submit)
	user.GET("/current", appH.Current)
	user.GET("/eligibility", appH.Eligibility)
	user.POST("/current/amount", appH.ConfirmAmount)

	admin := e.Group("/admin/applications", middleware.Authenticate(tokens, token.RoleAdmin))
	admin.GET("", adminH.List)
	admin.GET("/stats", adminH.Stats)
	admin.GET("/:application_id", adminH.Get)
	admin.POST("/:application_id/decision", adminH.Decide)

	addr := ":" + cfg.AppPort
	go func() {
		log.Printf("listening on %s (store: %s)", addr, cfg.StoreDriver)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}

// openStore picks the record store. Redis is always connected because the
// idempotency middleware needs it; it is also the record store by default.
func openStore(cfg *config.Config, rdb *goredis.Client) (kv.Store, uow.UnitOfWork, domain.Notifier, error) {
	switch cfg.StoreDriver {
	case config.DriverMySQL, config.DriverSQLite:
		gdb, err := db.OpenGorm(cfg.StoreDriver, cfg.SQLDSN())
		if err != nil {
			return nil, nil, nil, err
		}
		s := sqlstore.NewStore(gdb)
		if err := s.Migrate(context.Background()); err != nil {
			return nil, nil, nil, err
		}
		return s, sqlstore.NewGormUoW(gdb, cfg.MaxRecordBytes, lockWait), notify.LogNotifier{}, nil
	default:
		tx := redisrepo.NewRedisUoW(rdb, cfg.MaxRecordBytes, cfg.LockTTL(), lockWait)
		return redisrepo.NewStore(rdb), tx, notify.NewPublisher(rdb, cfg.NotifyChannel), nil
	}
}

func adminPasswordHash(cfg *config.Config) (string, error) {
	if cfg.AdminPasswordHash != "" {
		return cfg.AdminPasswordHash, nil
	}
	if cfg.AdminPassword == "" {
		log.Printf("admin login disabled: set ADMIN_PASSWORD_HASH or ADMIN_PASSWORD")
		return "", nil
	}
	b, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
