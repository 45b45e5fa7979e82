package auth

import (
	"context"
	"testing"
	"time"

	"go.uber.org/fx"
	"golang.org/x/crypto/bcrypt"

	"github.com/polkiloo/storefront/internal/config"
)

func resolve(t *testing.T, cfg *config.Config) (PasswordHasher, Strategy) {
	t.Helper()
	var (
		hasher   PasswordHasher
		strategy Strategy
	)
	app := fx.New(fx.NopLogger, fx.Supply(cfg), Module, fx.Populate(&hasher, &strategy))
	t.Cleanup(func() { _ = app.Stop(context.Background()) })
	if err := app.Err(); err != nil {
		t.Fatalf("fx app failed: %v", err)
	}
	return hasher, strategy
}

func TestModuleDefaults(t *testing.T) {
	hasher, strategy := resolve(t, &config.Config{JWTSecret: "top-secret"})

	bcryptHasher, ok := hasher.(*BcryptHasher)
	if !ok {
		t.Fatalf("expected *BcryptHasher, got %T", hasher)
	}
	if bcryptHasher.cost != bcrypt.DefaultCost {
		t.Fatalf("unexpected cost: %d", bcryptHasher.cost)
	}

	hmacStrategy, ok := strategy.(*HMACStrategy)
	if !ok {
		t.Fatalf("expected *HMACStrategy, got %T", strategy)
	}
	if string(hmacStrategy.secret) != "top-secret" {
		t.Fatalf("unexpected secret: %q", string(hmacStrategy.secret))
	}
	if hmacStrategy.ttl != defaultTokenTTL {
		t.Fatalf("unexpected ttl: %s", hmacStrategy.ttl)
	}
}

func TestModuleUsesConfiguredCostAndTTL(t *testing.T) {
	hasher, strategy := resolve(t, &config.Config{JWTSecret: "s", BcryptCost: bcrypt.MinCost, TokenTTL: time.Hour})

	if cost := hasher.(*BcryptHasher).cost; cost != bcrypt.MinCost {
		t.Fatalf("expected min cost, got %d", cost)
	}
	if ttl := strategy.(*HMACStrategy).ttl; ttl != time.Hour {
		t.Fatalf("expected 1h ttl, got %s", ttl)
	}

	token, err := strategy.IssueToken(Claims{UserID: 1, Role: "user"})
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	claims, err := strategy.ParseToken(token)
	if err != nil || claims.UserID != 1 {
		t.Fatalf("unexpected round trip %+v %v", claims, err)
	}
}
