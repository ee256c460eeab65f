package token

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testKey = []byte("test-secret")

func sign(t *testing.T, claims jwt.Claims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(testKey)
	require.NoError(t, err)
	return s
}

// handmade builds an unsigned token from raw header and payload JSON.
func handmade(header, payload string) string {
	enc := base64.RawURLEncoding.EncodeToString
	return enc([]byte(header)) + "." + enc([]byte(payload)) + ".sig"
}

func TestDecodePayload(t *testing.T) {
	exp := time.Unix(1_900_000_000, 0)
	iat := time.Unix(1_800_000_000, 0)
	tok := sign(t, jwt.MapClaims{"sub": "alice", "role": "ADMIN", "exp": exp.Unix(), "iat": iat.Unix()})

	claims := DecodePayload(tok)
	require.NotNil(t, claims)
	assert.Equal(t, "alice", claims.Subject())
	assert.Equal(t, "ADMIN", claims.Role())

	got, ok := claims.ExpiresAt()
	require.True(t, ok)
	assert.True(t, exp.Equal(got))

	got, ok = claims.IssuedAt()
	require.True(t, ok)
	assert.True(t, iat.Equal(got))
}

func TestDecodePayload_LooselyTypedClaims(t *testing.T) {
	const hs256 = `{"alg":"HS256","typ":"JWT"}`
	now := time.Unix(1_700_000_000, 0)

	tests := []struct {
		name    string
		token   string
		subject string
		role    string
	}{
		{name: "numeric sub", token: handmade(hs256, `{"sub":42,"exp":1900000000}`), subject: "42"},
		{name: "array role", token: handmade(hs256, `{"sub":"bob","role":["ADMIN"],"exp":1900000000}`), subject: "bob"},
		{name: "unknown alg", token: handmade(`{"alg":"XX512"}`, `{"sub":"bob","role":"USER","exp":1900000000}`), subject: "bob", role: "USER"},
		{name: "no alg", token: handmade(`{"typ":"JWT"}`, `{"sub":"bob","exp":1900000000}`), subject: "bob"},
		{name: "header not json", token: "garbage." + base64.RawURLEncoding.EncodeToString([]byte(`{"exp":1900000000}`)) + ".sig"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims := DecodePayload(tt.token)
			require.NotNil(t, claims)
			assert.Equal(t, tt.subject, claims.Subject())
			assert.Equal(t, tt.role, claims.Role())
			assert.False(t, IsExpired(tt.token, now))
		})
	}
}

func TestDecodePayload_Malformed(t *testing.T) {
	inputs := []string{
		"",
		"abc",
		"a.b",
		"a.b.c",
		"header." + base64.RawURLEncoding.EncodeToString([]byte("not json")) + ".sig",
		"header." + base64.RawURLEncoding.EncodeToString([]byte("null")) + ".sig",
		"eyJhbGciOiJIUzI1NiJ9.!!!.sig",
	}
	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			assert.NotPanics(t, func() {
				assert.Nil(t, DecodePayload(in))
			})
		})
	}
}

func TestDecodePayload_IgnoresSignatureAndExpiry(t *testing.T) {
	tok := sign(t, jwt.RegisteredClaims{Subject: "bob", ExpiresAt: jwt.NewNumericDate(time.Unix(10, 0))})
	claims := DecodePayload(tok[:len(tok)-2] + "xx")
	require.NotNil(t, claims)
	assert.Equal(t, "bob", claims.Subject())
}

func TestIsExpired(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)

	tests := []struct {
		name  string
		token string
		want  bool
	}{
		{name: "future exp", token: sign(t, jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour))})},
		{name: "exp equals now", token: sign(t, jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(now)})},
		{name: "past exp", token: sign(t, jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(now.Add(-time.Second))}), want: true},
		{name: "no exp", token: sign(t, jwt.RegisteredClaims{Subject: "x"}), want: true},
		{name: "string exp", token: handmade(`{"alg":"HS256"}`, `{"exp":"tomorrow"}`), want: true},
		{name: "garbage", token: "not-a-token", want: true},
		{name: "empty", token: "", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsExpired(tt.token, now))
		})
	}
}

func TestExpiresAt(t *testing.T) {
	exp := time.Unix(1_800_000_000, 0)
	got, ok := ExpiresAt(sign(t, jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(exp)}))
	require.True(t, ok)
	assert.True(t, exp.Equal(got))

	_, ok = ExpiresAt("bad")
	assert.False(t, ok)
}

func TestPrefix(t *testing.T) {
	assert.Equal(t, "short", Prefix("short", 20))
	assert.Equal(t, "abcdefghijklmnopqrst...", Prefix("abcdefghijklmnopqrstuvwxyz", 20))
}
