// Command tokengen issues a signed token for the maintenance routes.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/hogwarts/school/internal/bootstrap"
	"github.com/hogwarts/school/internal/config"
	"github.com/hogwarts/school/internal/pkg/auth"
	"github.com/hogwarts/school/internal/pkg/logger"
)

func main() {
	configPath := flag.String("config", bootstrap.DefaultConfigPath, "path to the yaml configuration")
	subject := flag.String("subject", "maintenance", "token subject")
	role := flag.String("role", auth.RoleAdmin, "role claim")
	ttl := flag.Duration("ttl", 0, "token lifetime, defaults to auth.token_expiration")
	flag.Parse()

	// stdout carries only the token
	logger.Configure(logger.Config{Level: logger.InfoLevel, Output: os.Stderr})

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to load configuration")
	}

	exp := *ttl
	if exp == 0 {
		exp, err = time.ParseDuration(cfg.Auth.TokenExpiration)
		if err != nil {
			logger.Fatal().Err(err).Msg("Invalid token expiration")
		}
	}

	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:      cfg.Auth.Secret,
		AccessTokenExp: exp,
		TokenIssuer:    cfg.Auth.Issuer,
	})

	token, expiresAt, err := jwtService.GenerateToken(*subject, *role)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to issue token")
	}

	logger.Info().Str("subject", *subject).Str("role", *role).Time("expiresAt", expiresAt).Msg("Token issued")
	fmt.Fprintln(os.Stdout, token)
}
