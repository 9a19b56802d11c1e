package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"

	grpcAdapter "github.com/Abdurahmanit/GroupProject/hostlecart/internal/adapter/grpc"
	"github.com/Abdurahmanit/GroupProject/hostlecart/internal/adapter/http/handler"
	"github.com/Abdurahmanit/GroupProject/hostlecart/internal/adapter/http/router"
	natsAdapter "github.com/Abdurahmanit/GroupProject/hostlecart/internal/adapter/messaging/nats"
	"github.com/Abdurahmanit/GroupProject/hostlecart/internal/adapter/repository/cache"
	"github.com/Abdurahmanit/GroupProject/hostlecart/internal/adapter/repository/mongodb"
	"github.com/Abdurahmanit/GroupProject/hostlecart/internal/adapter/storage/s3"
	authdomain "github.com/Abdurahmanit/GroupProject/hostlecart/internal/auth/domain"
	authuc "github.com/Abdurahmanit/GroupProject/hostlecart/internal/auth/usecase"
	"github.com/Abdurahmanit/GroupProject/hostlecart/internal/config"
	"github.com/Abdurahmanit/GroupProject/hostlecart/internal/listing/usecase"
	"github.com/Abdurahmanit/GroupProject/hostlecart/internal/mailer"
	"github.com/Abdurahmanit/GroupProject/hostlecart/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/hostlecart/internal/platform/metrics"
	"github.com/Abdurahmanit/GroupProject/hostlecart/internal/platform/tracer"
	"github.com/Abdurahmanit/GroupProject/hostlecart/internal/tips"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API, the gRPC health server and the metrics endpoint",
		RunE:  runServe,
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, appLogger, err := bootstrap()
	if err != nil {
		return err
	}
	defer func() { _ = appLogger.Sync() }()
	appLogger.Info("Application starting...",
		zap.String("service_name", cfg.ServiceName),
		zap.String("http_port", cfg.HTTPPort),
		zap.String("grpc_port", cfg.GRPCPort),
		zap.String("prometheus_port", cfg.PrometheusMetricsPort),
	)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tp := tracer.InitTracer(cfg.ServiceName, cfg.OTExporterOTLPEndpoint, appLogger)
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(shutdownCtx); err != nil {
			appLogger.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}()

	mongoClient, err := connectMongo(ctx, cfg.MongoURI, appLogger)
	if err != nil {
		return err
	}
	defer disconnectMongo(mongoClient, appLogger)
	db := mongoClient.Database(cfg.MongoDatabase)

	redisClient, err := cache.NewRedisClient(cfg.RedisAddress, cfg.RedisPassword, cfg.RedisDB, appLogger)
	if err != nil {
		return err
	}
	defer redisClient.Close()

	publisher, err := natsAdapter.NewPublisher(cfg.NATSURL, appLogger, cfg.ServiceName)
	if err != nil {
		return err
	}
	defer publisher.Close()

	storage, err := s3.NewS3Storage(cfg.MinIOEndpoint, cfg.MinIOAccessKey, cfg.MinIOSecretKey, cfg.MinIOBucket, cfg.MinIOUseSSL, appLogger)
	if err != nil {
		return err
	}

	mm := metrics.NewMetricsManager(cfg.ServiceName)
	authUC := newAuthUsecase(cfg, db, redisClient, mm, appLogger)
	rotator := tips.NewRotator(cfg.TipRotateInterval, tips.DefaultDecks)

	httpServer := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           newAPI(cfg, db, redisClient, storage, publisher, authUC, rotator, mm, appLogger),
		ReadHeaderTimeout: 10 * time.Second,
	}
	grpcServer, healthServer := grpcAdapter.NewGRPCServer(appLogger, cfg.ServiceName)
	grpcListener, err := net.Listen("tcp", ":"+cfg.GRPCPort)
	if err != nil {
		return err
	}
	metricsServer := metrics.NewMetricsServer(cfg.PrometheusMetricsPort, appLogger, mm.Registry)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		appLogger.Info("Starting HTTP server", zap.String("port", cfg.HTTPPort))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		appLogger.Info("Starting gRPC server", zap.String("port", cfg.GRPCPort))
		if err := grpcServer.Serve(grpcListener); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			return err
		}
		return nil
	})
	if metricsServer != nil {
		g.Go(func() error {
			if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
	}
	g.Go(func() error { return rotator.Run(gctx) })
	g.Go(func() error {
		<-gctx.Done()
		appLogger.Info("Shutting down...")

		healthServer.Shutdown()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			appLogger.Error("HTTP server shutdown failed", zap.Error(err))
		}
		grpcServer.GracefulStop()
		if metricsServer != nil {
			if err := metricsServer.Shutdown(shutdownCtx); err != nil {
				appLogger.Error("Metrics server shutdown failed", zap.Error(err))
			}
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		appLogger.Error("Server stopped with error", zap.Error(err))
		return err
	}
	appLogger.Info("Application stopped.")
	return nil
}

func newAuthUsecase(cfg *config.Config, db *mongo.Database, redisClient *redis.Client, mm *metrics.MetricsManager, appLogger *logger.Logger) *authuc.AuthUsecase {
	users := mongodb.NewUserRepository(db, appLogger)
	secrets := cache.NewSecretStore(redisClient)
	smtp := mailer.NewSMTPMailer(mailer.SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		Sender:   cfg.SMTPSender,
	}, appLogger)

	providers := []authdomain.IdentityProvider{
		authuc.NewMagicLinkProvider(users, secrets, smtp, cfg.MagicLinkVerifyURL, cfg.MagicLinkTTL, appLogger),
	}
	if cfg.OAuthClientID != "" {
		providers = append(providers, authuc.NewOAuthRedirectProvider(authuc.OAuthConfig{
			Name:         cfg.OAuthProvider,
			AuthURL:      cfg.OAuthAuthURL,
			TokenURL:     cfg.OAuthTokenURL,
			UserInfoURL:  cfg.OAuthUserInfoURL,
			ClientID:     cfg.OAuthClientID,
			ClientSecret: cfg.OAuthClientSecret,
			CallbackURL:  cfg.OAuthCallbackURL,
		}, cfg.JWTSecret))
	} else {
		appLogger.Info("OAuth provider disabled (OAUTH_CLIENT_ID not set)")
	}

	return authuc.NewAuthUsecase(
		users,
		secrets,
		cache.NewSessionStore(redisClient),
		authuc.NewTokenManager(cfg.JWTSecret, cfg.JWTTTL),
		authuc.NewRedirectPolicy(cfg.AuthRedirectOrigins),
		mm,
		appLogger,
		providers...,
	)
}

// newAPI builds the listing use cases and the router in front of them.
func newAPI(
	cfg *config.Config,
	db *mongo.Database,
	redisClient *redis.Client,
	storage *s3.S3Storage,
	publisher *natsAdapter.Publisher,
	authUC *authuc.AuthUsecase,
	tipSource handler.TipSource,
	mm *metrics.MetricsManager,
	appLogger *logger.Logger,
) http.Handler {
	products := mongodb.NewProductRepository(db, appLogger)
	favorites := mongodb.NewFavoriteRepository(db, appLogger)
	listingCache := cache.NewListingCache(redisClient)

	listings := usecase.NewListingUsecase(products, listingCache, usecase.ListingOptions{
		FetchLimit: cfg.ListingFetchLimit,
		PageSize:   cfg.ListingPageSize,
		CacheTTL:   cfg.ListingCacheTTL,
	}, appLogger)
	uploads := usecase.NewUploadUsecase(products, storage, listingCache, publisher, mm, cfg.UploadParallelism, appLogger)
	moderation := usecase.NewModerationUsecase(products, listingCache, publisher, mm, appLogger)
	favs := usecase.NewFavoriteUsecase(favorites, products, appLogger)

	return router.New(cfg.ServiceName, router.Handlers{
		Listings: handler.NewListingHandler(listings, uploads, moderation, favs, cfg.WhatsAppCountryCode, cfg.UploadMaxBytes, appLogger),
		Auth:     handler.NewAuthHandler(authUC, appLogger),
		System:   handler.NewSystemHandler(tipSource),
	}, authUC, mm, appLogger)
}
