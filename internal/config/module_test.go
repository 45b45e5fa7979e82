package config

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestLogSettingsOmitsSecrets(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	logSettings(&Config{
		RunAddress:  ":8080",
		DatabaseURI: "postgres://user:hunter2@db/shop",
		JWTSecret:   "very-secret",
		RedisAddr:   "redis://:pw@cache:6379",
		StockPolicy: StockPolicyOnce,
		AdminEmails: []string{"root@shop.io"},
	}, logger)

	out := buf.String()
	if !strings.Contains(out, `"catalog_cache":true`) || !strings.Contains(out, `"stock_policy":"once"`) {
		t.Fatalf("expected settings summary, got %s", out)
	}
	for _, secret := range []string{"hunter2", "very-secret", "pw@cache", "root@shop.io"} {
		if strings.Contains(out, secret) {
			t.Fatalf("expected %q to be omitted, got %s", secret, out)
		}
	}
}
