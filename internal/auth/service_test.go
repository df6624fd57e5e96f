package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sheetdash/backend/internal/config"
)

func testConfig() config.AuthConfig {
	return config.AuthConfig{
		AdminUsername: "admin",
		AdminPassword: "s3cret",
		JWTSecret:     "test-signing-key",
	}
}

func TestLogin_IssuesVerifiableToken(t *testing.T) {
	svc := NewService(testConfig())

	token, err := svc.Login("admin", "s3cret")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	assert.NoError(t, svc.Verify(token))
}

func TestLogin_WrongCredentials(t *testing.T) {
	svc := NewService(testConfig())

	cases := []struct {
		name     string
		username string
		password string
	}{
		{"wrong password", "admin", "nope"},
		{"wrong username", "root", "s3cret"},
		{"both wrong", "root", "nope"},
		{"empty", "", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Login(tc.username, tc.password)
			assert.ErrorIs(t, err, ErrInvalidCredentials)
		})
	}
}

func TestLogin_Misconfigured(t *testing.T) {
	cases := []struct {
		name string
		cfg  config.AuthConfig
	}{
		{"no secret", config.AuthConfig{AdminUsername: "admin", AdminPassword: "s3cret"}},
		{"no username", config.AuthConfig{AdminPassword: "s3cret", JWTSecret: "k"}},
		{"no password", config.AuthConfig{AdminUsername: "admin", JWTSecret: "k"}},
		{"nothing set", config.AuthConfig{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewService(tc.cfg).Login("admin", "s3cret")
			assert.ErrorIs(t, err, ErrMisconfigured)
		})
	}
}

func TestVerify_RejectsGarbage(t *testing.T) {
	svc := NewService(testConfig())

	assert.ErrorIs(t, svc.Verify("not-a-token"), ErrInvalidCredentials)
	assert.ErrorIs(t, svc.Verify(""), ErrInvalidCredentials)
}

func TestVerify_RejectsTamperedToken(t *testing.T) {
	svc := NewService(testConfig())

	token, err := svc.Login("admin", "s3cret")
	require.NoError(t, err)

	tampered := token[:len(token)-2] + "xx"
	assert.ErrorIs(t, svc.Verify(tampered), ErrInvalidCredentials)
}

func TestVerify_RejectsForeignSignature(t *testing.T) {
	cfg := testConfig()
	cfg.JWTSecret = "some-other-key"
	other := NewService(cfg)

	token, err := other.Login("admin", "s3cret")
	require.NoError(t, err)

	assert.ErrorIs(t, NewService(testConfig()).Verify(token), ErrInvalidCredentials)
}

func TestVerify_RejectsExpiredToken(t *testing.T) {
	svc := NewService(testConfig())
	svc.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	token, err := svc.Login("admin", "s3cret")
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Verify(token), ErrInvalidCredentials)
}
