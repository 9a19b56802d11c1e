// Command hostlecart runs the HostleCart marketplace API.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/Abdurahmanit/GroupProject/hostlecart/internal/config"
	"github.com/Abdurahmanit/GroupProject/hostlecart/internal/platform/logger"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "hostlecart",
		Short: "HostleCart hostel marketplace API",
		Long: `HostleCart serves the hostel marketplace: browsing approved listings,
uploading new ones for moderation, favorites and sign-in.

Running without a subcommand is the same as "hostlecart serve".`,
		SilenceUsage: true,
		RunE:         runServe,
	}
	root.AddCommand(newServeCmd(), newCreateUserCmd())
	return root
}

// bootstrap loads .env, the configuration and the logger shared by every command.
func bootstrap() (*config.Config, *logger.Logger, error) {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("INFO: .env file not found or error loading: %v. Relying on OS environment variables.\n", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load configuration: %w", err)
	}

	appLogger := logger.NewLogger(logger.LoggerConfig{Level: cfg.LogLevel, Format: cfg.LogFormat})
	if cfg.UsesDefaultSecret() {
		appLogger.Warn("JWT_SECRET is using the built-in default; set it before deploying")
	}
	return cfg, appLogger, nil
}

func connectMongo(ctx context.Context, uri string, appLogger *logger.Logger) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect to mongodb: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}
	appLogger.Info("Successfully connected and pinged MongoDB.")
	return client, nil
}

func disconnectMongo(client *mongo.Client, appLogger *logger.Logger) {
	appLogger.Info("Disconnecting from MongoDB...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Disconnect(ctx); err != nil {
		appLogger.Error("Error disconnecting from MongoDB", zap.Error(err))
	}
}
