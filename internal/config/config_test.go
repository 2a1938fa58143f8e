package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateJWTSecret(t *testing.T) {
	cases := []struct {
		name   string
		secret string
		ok     bool
	}{
		{"empty is rejected", "", false},
		{"short is rejected", "tooshort", false},
		{"known placeholder rejected", "changeme", false},
		{"placeholder rejected case-insensitively", "ChangeMe", false},
		{"placeholder with hyphen rejected", "your-secret-key", false},
		{"long random value accepted", "f3c1b2a4d5e6978801122334455667788990aabb", true},
		{"exactly minimum length accepted", "abcdefghijklmnopqrstuvwxyz012345", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateJWTSecret(tc.secret)
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestLoadRefusesWeakSecret(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "changeme")

	_, err := Load()
	require.Error(t, err)
}

func TestLoadAppliesDefaults(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "f3c1b2a4d5e6978801122334455667788990aabb")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 30, cfg.Auth.AccessTokenTTLMinutes)
	assert.Equal(t, 168, cfg.Auth.RefreshTokenTTLHours)
	assert.Equal(t, 300, cfg.Auth.ResendCooldownSeconds)
	assert.Equal(t, 12, cfg.Auth.BcryptCost)
	assert.Equal(t, "0.0.0.0:8080", cfg.App.Addr())
}
