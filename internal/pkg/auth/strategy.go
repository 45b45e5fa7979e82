package auth

import "time"

// Claims identify the session holder carried by a token.
type Claims struct {
	UserID int64
	Role   string
}

// Strategy issues and verifies session tokens.
type Strategy interface {
	IssueToken(claims Claims) (string, error)
	ParseToken(token string) (Claims, error)
	Name() string
}

// Options tune token issuing.
type Options struct {
	TTL time.Duration
	Now func() time.Time
}
