// Command createsuperuser adds a staff account with superuser rights.
//
//	createsuperuser --email admin@example.com --password s3cretpass --name Admin
//
// The password may instead be supplied through CREATESUPERUSER_PASSWORD so it
// stays out of shell history.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"recipe-be/internal/config"
	"recipe-be/internal/database"
	"recipe-be/internal/jwt"
	"recipe-be/internal/logger"
	"recipe-be/internal/repository"
	"recipe-be/internal/service"
)

const minPasswordLen = 8

type options struct {
	email    string
	password string
	name     string
}

func parseFlags(args []string) (*options, error) {
	fs := pflag.NewFlagSet("createsuperuser", pflag.ContinueOnError)
	opts := &options{}
	fs.StringVarP(&opts.email, "email", "e", "", "email address of the new superuser (required)")
	fs.StringVarP(&opts.password, "password", "p", os.Getenv("CREATESUPERUSER_PASSWORD"), "password (default $CREATESUPERUSER_PASSWORD)")
	fs.StringVarP(&opts.name, "name", "n", "", "display name")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if opts.email == "" {
		return nil, errors.New("--email is required")
	}
	if len(opts.password) < minPasswordLen {
		return nil, fmt.Errorf("password must be at least %d characters", minPasswordLen)
	}
	return opts, nil
}

func main() {
	opts, err := parseFlags(os.Args[1:])
	if errors.Is(err, pflag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "createsuperuser:", err)
		os.Exit(2)
	}

	cfg := config.Load()
	zlog, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, "createsuperuser:", err)
		os.Exit(1)
	}
	defer zlog.Sync()

	if err := run(cfg, opts, zlog); err != nil {
		zlog.Fatal("Failed to create superuser", zap.Error(err))
	}
}

func run(cfg *config.Config, opts *options, zlog *zap.Logger) error {
	db, err := database.NewConnection(cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := database.RunMigrations(db); err != nil {
		return err
	}

	authService := service.NewAuthService(
		repository.NewUserRepository(db),
		jwt.NewJWTService(cfg.JWTSecret, time.Duration(cfg.JWTTTL)*time.Hour),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	user, err := authService.RegisterSuperuser(ctx, opts.email, opts.password, opts.name)
	if err != nil {
		return err
	}

	zlog.Info("Superuser created", zap.Int64("id", user.ID), zap.String("email", user.Email))
	return nil
}
