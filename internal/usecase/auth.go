package usecase

import (
	"context"
	"errors"
	"net/mail"
	"strings"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/domain/repository"
	pkgAuth "github.com/polkiloo/storefront/internal/pkg/auth"
)

// AuthOptions configures account registration.
type AuthOptions struct {
	// AdminEmails receive the admin role on registration. Lowercase.
	AdminEmails []string
}

// AuthUseCase handles user lifecycle and token management.
type AuthUseCase struct {
	users  repository.UserRepository
	hasher pkgAuth.PasswordHasher
	tokens pkgAuth.Strategy
	admins map[string]struct{}
}

// NewAuthUseCase constructs AuthUseCase.
func NewAuthUseCase(users repository.UserRepository, hasher pkgAuth.PasswordHasher, strategy pkgAuth.Strategy, opts AuthOptions) *AuthUseCase {
	admins := make(map[string]struct{}, len(opts.AdminEmails))
	for _, email := range opts.AdminEmails {
		admins[strings.ToLower(email)] = struct{}{}
	}
	return &AuthUseCase{users: users, hasher: hasher, tokens: strategy, admins: admins}
}

// Register creates a customer account and returns an auth token.
func (u *AuthUseCase) Register(ctx context.Context, name, email, password string) (*model.User, string, error) {
	name = strings.TrimSpace(name)
	email, ok := normalizeEmail(email)
	if name == "" || !ok || password == "" {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	hash, err := u.hasher.Hash(password)
	if err != nil {
		return nil, "", err
	}

	role := model.RoleUser
	if _, ok := u.admins[email]; ok {
		role = model.RoleAdmin
	}

	usr, err := u.users.Create(ctx, model.User{Name: name, Email: email, PasswordHash: hash, Role: role})
	if err != nil {
		if errors.Is(err, domainErrors.ErrAlreadyExists) {
			return nil, "", domainErrors.ErrAlreadyExists
		}
		return nil, "", err
	}

	token, err := u.issue(usr)
	if err != nil {
		return nil, "", err
	}

	return usr, token, nil
}

// Authenticate validates credentials and returns auth token.
func (u *AuthUseCase) Authenticate(ctx context.Context, email, password string) (*model.User, string, error) {
	email, ok := normalizeEmail(email)
	if !ok || password == "" {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	usr, err := u.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, "", domainErrors.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := u.hasher.Compare(usr.PasswordHash, password); err != nil {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	token, err := u.issue(usr)
	if err != nil {
		return nil, "", err
	}

	return usr, token, nil
}

// ParseToken extracts the session identity from provided token.
func (u *AuthUseCase) ParseToken(token string) (model.Actor, error) {
	if token == "" {
		return model.Actor{}, pkgAuth.ErrInvalidToken
	}
	claims, err := u.tokens.ParseToken(token)
	if err != nil {
		return model.Actor{}, err
	}
	return model.Actor{UserID: claims.UserID, Role: model.Role(claims.Role)}, nil
}

// GetByID fetches user by identifier.
func (u *AuthUseCase) GetByID(ctx context.Context, id int64) (*model.User, error) {
	return u.users.GetByID(ctx, id)
}

func (u *AuthUseCase) issue(usr *model.User) (string, error) {
	return u.tokens.IssueToken(pkgAuth.Claims{UserID: usr.ID, Role: string(usr.Role)})
}

func normalizeEmail(raw string) (string, bool) {
	email := strings.ToLower(strings.TrimSpace(raw))
	if email == "" {
		return "", false
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", false
	}
	return email, true
}
