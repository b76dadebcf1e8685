package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalizeEnvKey(t *testing.T) {
	existing := map[string]any{
		"secretKey": map[string]any{
			"access": "x",
		},
		"auth": map[string]any{
			"bcryptCost":        10,
			"accessTokenTtl":    "24h",
			"passwordMinLength": 8,
		},
		"shareCode": map[string]any{
			"maxAttempts": 5,
		},
	}

	tests := []struct {
		name   string
		rawKey string
		want   string
	}{
		{"matches camelCase section", "SECRETKEY_ACCESS", "secretKey.access"},
		{"matches camelCase leaf", "AUTH_BCRYPTCOST", "auth.bcryptCost"},
		{"matches multi-word leaf", "AUTH_PASSWORDMINLENGTH", "auth.passwordMinLength"},
		{"matches camelCase nested section", "SHARECODE_MAXATTEMPTS", "shareCode.maxAttempts"},
		{"unknown keys fall back to lowercase", "HTTP_PORT", "http.port"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, canonicalizeEnvKey(tt.rawKey, existing))
		})
	}
}

func TestNormalizeToken(t *testing.T) {
	assert.Equal(t, "sharecode", normalizeToken("shareCode"))
	assert.Equal(t, "maxattempts", normalizeToken("max_attempts"))
	assert.Equal(t, "ttl24h", normalizeToken("TTL-24h"))
}
