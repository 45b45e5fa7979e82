package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var ErrInvalidToken = errors.New("invalid auth token")

const defaultTokenTTL = 24 * time.Hour

// HMACStrategy signs "<user>.<role>.<expiry>" payloads with HMAC-SHA256.
type HMACStrategy struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewHMACStrategy builds HMACStrategy with provided secret and options.
func NewHMACStrategy(secret string, opts Options) *HMACStrategy {
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &HMACStrategy{secret: []byte(secret), ttl: ttl, now: now}
}

// IssueToken generates a URL-safe signed token for the claims.
func (s *HMACStrategy) IssueToken(claims Claims) (string, error) {
	if claims.UserID <= 0 {
		return "", fmt.Errorf("issue token: invalid user id %d", claims.UserID)
	}
	if strings.Contains(claims.Role, ".") {
		return "", fmt.Errorf("issue token: invalid role %q", claims.Role)
	}
	expires := s.now().Add(s.ttl).Unix()
	payload := fmt.Sprintf("%d.%s.%d", claims.UserID, claims.Role, expires)
	raw := payload + "." + s.sign(payload)
	return base64.RawURLEncoding.EncodeToString([]byte(raw)), nil
}

// ParseToken validates signature and expiry and returns the claims.
func (s *HMACStrategy) ParseToken(token string) (Claims, error) {
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return Claims{}, ErrInvalidToken
	}

	parts := strings.Split(string(raw), ".")
	if len(parts) != 4 {
		return Claims{}, ErrInvalidToken
	}

	payload := strings.Join(parts[:3], ".")
	if !hmac.Equal([]byte(s.sign(payload)), []byte(parts[3])) {
		return Claims{}, ErrInvalidToken
	}

	userID, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil || userID <= 0 {
		return Claims{}, ErrInvalidToken
	}

	expires, err := strconv.ParseInt(parts[2], 10, 64)
	if err != nil {
		return Claims{}, ErrInvalidToken
	}
	if time.Unix(expires, 0).Before(s.now()) {
		return Claims{}, ErrInvalidToken
	}

	return Claims{UserID: userID, Role: parts[1]}, nil
}

func (s *HMACStrategy) Name() string {
	return "hmac"
}

func (s *HMACStrategy) sign(payload string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(payload))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}
