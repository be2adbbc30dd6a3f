package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"github.com/BruksfildServices01/barbershop-booking/internal/audit"
	"github.com/BruksfildServices01/barbershop-booking/internal/auth"
	"github.com/BruksfildServices01/barbershop-booking/internal/config"
	dbpkg "github.com/BruksfildServices01/barbershop-booking/internal/db"
	bookingdomain "github.com/BruksfildServices01/barbershop-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barbershop-booking/internal/events"
	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/infra/cache"
	"github.com/BruksfildServices01/barbershop-booking/internal/infra/storage"
	"github.com/BruksfildServices01/barbershop-booking/internal/logger"
	"github.com/BruksfildServices01/barbershop-booking/internal/metrics"
	"github.com/BruksfildServices01/barbershop-booking/internal/middleware"
	"github.com/BruksfildServices01/barbershop-booking/internal/notification"
	"github.com/BruksfildServices01/barbershop-booking/internal/realtime"
	"github.com/BruksfildServices01/barbershop-booking/internal/routes"
	"github.com/BruksfildServices01/barbershop-booking/internal/timezone"
	"github.com/BruksfildServices01/barbershop-booking/internal/validators"
)

func main() {

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	lg := logger.New(cfg.LogLevel, cfg.LogFormat)
	timezone.SetDefault(cfg.DefaultTimezone)

	if err := validators.Register(); err != nil {
		log.Fatalf("failed to register validators: %v", err)
	}

	db := dbpkg.NewDB(cfg)
	m := metrics.New("barbershop")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ======================================================
	// 🔧 REDIS (opcional)
	// ======================================================
	var (
		rdb    *redis.Client
		locker bookingdomain.SlotLocker = cache.NoopLocker{}
	)
	if cfg.Redis.URL != "" {
		rdb, err = cache.NewRedisClient(cfg.Redis.URL)
		if err != nil {
			log.Fatalf("failed to configure redis: %v", err)
		}
		defer rdb.Close()

		ttl := time.Duration(cfg.Redis.SlotLockMS) * time.Millisecond
		locker = cache.NewRedisSlotLocker(rdb, ttl, lg)
		lg.Info("redis enabled", "channel", cfg.Redis.EventChannel)
	}

	// ======================================================
	// 📣 NOTIFICAÇÕES
	// ======================================================
	senders := buildSenders(cfg, lg)
	notifier := notification.NewDispatcher(lg, m, senders...)

	// ======================================================
	// 🔌 REALTIME
	// ======================================================
	hub := realtime.NewHub(lg, m, cfg.CORSAllowedOrigins)

	var live events.Publisher = hub
	if rdb != nil {
		bridge := realtime.NewRedisBridge(rdb, cfg.Redis.EventChannel, hub, lg)
		go func() {
			if err := bridge.Run(ctx); err != nil {
				lg.Error("realtime bridge stopped", "error", err)
			}
		}()
		live = bridge
	}

	publisher := events.Multi{live, notifier, m}

	// ======================================================
	// 📜 AUDIT
	// ======================================================
	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger, lg)

	// ======================================================
	// 🖼️ STORAGE (opcional)
	// ======================================================
	var images storage.ImageStore
	if cfg.S3.Bucket != "" {
		images = storage.NewS3Store(cfg.S3)
		lg.Info("s3 storage enabled", "bucket", cfg.S3.Bucket)
	}

	// ======================================================
	// 🌍 HTTP
	// ======================================================
	r := gin.New()
	r.Use(
		gin.Recovery(),
		logger.Middleware(lg),
		m.Middleware(),
		middleware.CORSMiddleware(cfg.CORSAllowedOrigins),
		httperr.ErrorHandler(),
	)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if cfg.Metrics.Enabled {
		r.GET(cfg.Metrics.Path, gin.WrapH(m.Handler()))
	}

	routes.RegisterRoutes(r, routes.Deps{
		DB:          db,
		Config:      cfg,
		Log:         lg,
		Issuer:      auth.NewTokenIssuer(cfg.JWTSecret, cfg.JWTTTL()),
		Events:      publisher,
		Audit:       auditDispatcher,
		AuditLogger: auditLogger,
		Locker:      locker,
		Images:      images,
		Hub:         hub,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		lg.Info("server running", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	lg.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout())
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		lg.Error("http shutdown failed", "error", err)
	}
	if err := notifier.Close(shutdownCtx); err != nil {
		lg.Warn("notification queue not drained", "error", err)
	}
	if err := auditDispatcher.Close(shutdownCtx); err != nil {
		lg.Warn("audit queue not drained", "error", err)
	}
	for _, s := range senders {
		if c, ok := s.(interface{ Close() error }); ok {
			_ = c.Close()
		}
	}
}

// buildSenders liga os canais configurados; sem nenhum, só registra em log.
func buildSenders(cfg *config.Config, lg *slog.Logger) []notification.Sender {
	var senders []notification.Sender

	if cfg.SMTP.Host != "" {
		email, err := notification.NewEmailSender(cfg.SMTP)
		if err != nil {
			lg.Error("smtp disabled", "error", err)
		} else {
			senders = append(senders, email)
		}
	}

	if cfg.AMQP.URL != "" {
		pub, err := notification.NewAMQPSender(cfg.AMQP.URL, cfg.AMQP.Exchange)
		if err != nil {
			lg.Error("amqp disabled", "error", err)
		} else {
			senders = append(senders, pub)
		}
	}

	if len(senders) == 0 {
		senders = append(senders, notification.NewLogSender(lg))
	}
	return senders
}
