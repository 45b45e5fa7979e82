package test

import (
	"context"
	"errors"

	"github.com/polkiloo/storefront/internal/domain/model"
	pkgAuth "github.com/polkiloo/storefront/internal/pkg/auth"
)

// HasherStub provides deterministic hashing for tests.
type HasherStub struct {
	HashFn    func(string) (string, error)
	CompareFn func(string, string) error
}

// Hash returns a predictable hash for the supplied password.
func (h HasherStub) Hash(password string) (string, error) {
	if h.HashFn != nil {
		return h.HashFn(password)
	}
	return "hash:" + password, nil
}

// Compare validates password against stored hash.
func (h HasherStub) Compare(hash string, password string) error {
	if h.CompareFn != nil {
		return h.CompareFn(hash, password)
	}
	if hash != "hash:"+password {
		return errors.New("mismatch")
	}
	return nil
}

// StrategyStub issues and parses tokens via function overrides.
type StrategyStub struct {
	IssueFn func(pkgAuth.Claims) (string, error)
	ParseFn func(string) (pkgAuth.Claims, error)
	NameVal string
}

// IssueToken returns deterministic tokens for tests.
func (s StrategyStub) IssueToken(claims pkgAuth.Claims) (string, error) {
	if s.IssueFn != nil {
		return s.IssueFn(claims)
	}
	return "token", nil
}

// ParseToken parses previously issued token strings.
func (s StrategyStub) ParseToken(token string) (pkgAuth.Claims, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	return pkgAuth.Claims{UserID: 1, Role: string(model.RoleUser)}, nil
}

// Name returns the strategy identifier used in tests.
func (s StrategyStub) Name() string {
	if s.NameVal != "" {
		return s.NameVal
	}
	return "stub"
}

// TokenParserStub implements middleware token parsing contract.
type TokenParserStub struct {
	Actor   model.Actor
	Err     error
	ParseFn func(string) (model.Actor, error)
}

// ParseToken either delegates to override or returns predefined result.
func (s TokenParserStub) ParseToken(token string) (model.Actor, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	if s.Err != nil {
		return model.Actor{}, s.Err
	}
	return s.Actor, nil
}

// AuthFacadeStub simulates authentication facade interactions.
type AuthFacadeStub struct {
	RegisterFn     func(context.Context, string, string, string) (string, error)
	AuthenticateFn func(context.Context, string, string) (string, error)
	ParseFn        func(string) (model.Actor, error)
}

// Register returns token for successful registration scenarios.
func (s AuthFacadeStub) Register(ctx context.Context, name, email, password string) (string, error) {
	if s.RegisterFn != nil {
		return s.RegisterFn(ctx, name, email, password)
	}
	return "token", nil
}

// Authenticate returns token for successful authentication scenarios.
func (s AuthFacadeStub) Authenticate(ctx context.Context, email, password string) (string, error) {
	if s.AuthenticateFn != nil {
		return s.AuthenticateFn(ctx, email, password)
	}
	return "token", nil
}

// ParseToken returns stored identity for authenticated user.
func (s AuthFacadeStub) ParseToken(token string) (model.Actor, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	return model.Actor{UserID: 1, Role: model.RoleUser}, nil
}

// StoreFacadeStub aggregates facade dependencies for HTTP layer tests.
type StoreFacadeStub struct {
	AuthFacadeStub
	OrderFacadeStub
	ProductFacadeStub
	HealthErr error
}

// HealthCheck returns the configured error.
func (s StoreFacadeStub) HealthCheck(context.Context) error {
	return s.HealthErr
}

var _ pkgAuth.PasswordHasher = HasherStub{}
var _ pkgAuth.Strategy = StrategyStub{}
