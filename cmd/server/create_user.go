package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Abdurahmanit/GroupProject/hostlecart/internal/adapter/repository/mongodb"
	authdomain "github.com/Abdurahmanit/GroupProject/hostlecart/internal/auth/domain"
	authuc "github.com/Abdurahmanit/GroupProject/hostlecart/internal/auth/usecase"
	"github.com/Abdurahmanit/GroupProject/hostlecart/internal/platform/metrics"
)

func newCreateUserCmd() *cobra.Command {
	var email, name, password, role string
	cmd := &cobra.Command{
		Use:   "create-user",
		Short: "Create a password user for POST /api/login",
		Example: `  hostlecart create-user --email warden@hostel.in --password s3cret --role admin
  hostlecart create-user --email student@hostel.in --name Asha --password pw`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, appLogger, err := bootstrap()
			if err != nil {
				return err
			}
			defer func() { _ = appLogger.Sync() }()

			mongoClient, err := connectMongo(cmd.Context(), cfg.MongoURI, appLogger)
			if err != nil {
				return err
			}
			defer disconnectMongo(mongoClient, appLogger)

			users := mongodb.NewUserRepository(mongoClient.Database(cfg.MongoDatabase), appLogger)
			tokens := authuc.NewTokenManager(cfg.JWTSecret, cfg.JWTTTL)
			auth := authuc.NewAuthUsecase(users, nil, nil, tokens, authuc.NewRedirectPolicy(nil), metrics.NewMetricsManager(cfg.ServiceName), appLogger)

			user, err := auth.CreateUser(cmd.Context(), email, name, password, role)
			if err != nil {
				appLogger.Error("Failed to create user", zap.String("email", email), zap.Error(err))
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created user %s (%s, role %s)\n", user.ID, user.Email, user.Role)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "email address used to log in")
	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&password, "password", "", "plain-text password, stored as a bcrypt hash")
	cmd.Flags().StringVar(&role, "role", authdomain.RoleCustomer, "customer or admin")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}
