// Command token mints a session token for local development and load tests.
//
//	token -role seller -tenant <uuid> [-user <uuid>] [-name "Acme Outfitters"]
//
// The JWT secret and issuer come from the same config as the server.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/identity"
	"github.com/marketplace/backend/internal/infrastructure/auth"
	"github.com/marketplace/backend/internal/infrastructure/config"
	"github.com/marketplace/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

func main() {
	var (
		role     string
		tenant   string
		user     string
		name     string
		validFor time.Duration
	)
	flag.StringVar(&role, "role", "buyer", "Session role (buyer, seller, shipping_company, admin)")
	flag.StringVar(&tenant, "tenant", "", "Tenant ID (default: a new random tenant)")
	flag.StringVar(&user, "user", "", "User ID (default: a new random user)")
	flag.StringVar(&name, "name", "", "Display name")
	flag.DurationVar(&validFor, "ttl", 0, "Token lifetime (default: jwt.token_expiration)")
	flag.Parse()

	log, err := logger.New(&logger.Config{Level: "info", Format: "console", Output: "stderr"})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("failed to load configuration", zap.Error(err))
	}
	if cfg.App.IsProduction() {
		log.Fatal("refusing to mint tokens with production configuration")
	}
	if validFor > 0 {
		cfg.JWT.TokenExpiration = validFor
	}

	tenantID, err := parseOrNew(tenant)
	if err != nil {
		log.Fatal("invalid tenant id", zap.String("value", tenant))
	}
	userID, err := parseOrNew(user)
	if err != nil {
		log.Fatal("invalid user id", zap.String("value", user))
	}
	if name == "" {
		name = role
	}

	token, expiresAt, err := auth.NewJWTService(cfg.JWT).GenerateToken(auth.GenerateTokenInput{
		TenantID: tenantID,
		UserID:   userID,
		Role:     identity.Role(role),
		Name:     name,
	})
	if err != nil {
		log.Fatal("failed to generate token", zap.Error(err))
	}

	log.Info("token minted",
		zap.String("tenant_id", tenantID.String()),
		zap.String("user_id", userID.String()),
		zap.String("role", role),
		zap.Time("expires_at", expiresAt),
	)
	// token alone on stdout so it can be captured by scripts
	fmt.Println(token)
}

func parseOrNew(value string) (uuid.UUID, error) {
	if value == "" {
		return uuid.New(), nil
	}
	return uuid.Parse(value)
}
