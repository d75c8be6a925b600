package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/Vovarama1992/go-utils/logger"

	"github.com/Vovarama1992/spaces_gateway/internal/config"
	"github.com/Vovarama1992/spaces_gateway/internal/delivery"
	"github.com/Vovarama1992/spaces_gateway/internal/domain"
	"github.com/Vovarama1992/spaces_gateway/internal/error_notificator"
	"github.com/Vovarama1992/spaces_gateway/internal/infra"
	"github.com/Vovarama1992/spaces_gateway/internal/metrics"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

const serviceName = "spaces_gateway"

func main() {

	// =========================================================================
	// ENV / CONFIG
	// =========================================================================

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	baseLogger, _ := zap.NewProduction()
	defer baseLogger.Sync()
	zl := logger.NewZapLogger(baseLogger.Sugar())

	if !cfg.HasCredentials() {
		zl.Log(logger.LogEntry{
			Level:   "warn",
			Message: "DIGITAL_OCEAN_ACCESS_KEY / DIGITAL_OCEAN_SECRET_KEY not fully set, storage calls will fail",
			Service: serviceName,
		})
	}

	// =========================================================================
	// INFRASTRUCTURE
	// =========================================================================

	s3Client, err := infra.NewS3Client(cfg)
	if err != nil {
		log.Fatalf("failed to init s3: %v", err)
	}

	errInfra := error_notificator.NewInfra(zl, serviceName)
	errService := error_notificator.NewService(errInfra)

	m := metrics.New()

	// =========================================================================
	// DOMAIN / HTTP
	// =========================================================================

	s3Service := domain.NewS3Service(s3Client, errService, cfg.PresignExpiry)
	storageHandler := delivery.NewStorageHandler(s3Service, zl, m, cfg.MaxUploadBytes)

	r := delivery.NewRouter(storageHandler, m, delivery.RouterOptions{
		AllowedOrigins:  cfg.AllowedOrigins,
		UploadRateLimit: cfg.UploadRateLimit,
	})

	// =========================================================================
	// START SERVER
	// =========================================================================

	addr := ":" + cfg.Port
	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("shutdown: %v", err)
		}
	}()

	zl.Log(logger.LogEntry{
		Level:   "info",
		Message: "listening at " + addr + ", bucket " + cfg.Bucket + ", origins " + strings.Join(cfg.AllowedOrigins, ","),
		Service: serviceName,
	})

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("server error: %v", err)
	}
}
