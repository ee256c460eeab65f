// Package token inspects session tokens locally. Signatures are not
// verified; the server does that on every request.
package token

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the decoded token payload. Any JSON object is accepted; the
// accessors read the claims the client cares about and tolerate
// unexpected types.
type Claims jwt.MapClaims

var parser = jwt.NewParser()

// DecodePayload returns the claims in the token's middle segment, or nil
// if that segment is not base64url-encoded JSON. The header and signature
// are not looked at.
func DecodePayload(token string) Claims {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return nil
	}
	raw, err := parser.DecodeSegment(parts[1])
	if err != nil {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var claims jwt.MapClaims
	if err := dec.Decode(&claims); err != nil || claims == nil {
		return nil
	}
	return Claims(claims)
}

// Subject returns the sub claim rendered as text, whatever its JSON type.
func (c Claims) Subject() string {
	return text(c["sub"])
}

// Role returns the role claim when it is a string.
func (c Claims) Role() string {
	s, _ := c["role"].(string)
	return s
}

// ExpiresAt returns the exp claim if it is a number.
func (c Claims) ExpiresAt() (time.Time, bool) {
	return numericDate(jwt.MapClaims(c).GetExpirationTime())
}

// IssuedAt returns the iat claim if it is a number.
func (c Claims) IssuedAt() (time.Time, bool) {
	return numericDate(jwt.MapClaims(c).GetIssuedAt())
}

func numericDate(d *jwt.NumericDate, err error) (time.Time, bool) {
	if err != nil || d == nil {
		return time.Time{}, false
	}
	return d.Time, true
}

func text(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

// IsExpired reports whether token must be treated as expired at now.
// Malformed tokens and tokens without a numeric exp claim are expired.
func IsExpired(token string, now time.Time) bool {
	exp, ok := ExpiresAt(token)
	if !ok {
		return true
	}
	return exp.Unix() < now.Unix()
}

// ExpiresAt returns the exp claim.
func ExpiresAt(token string) (time.Time, bool) {
	claims := DecodePayload(token)
	if claims == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt()
}

// Prefix returns at most the first n characters of token, for display.
func Prefix(token string, n int) string {
	if len(token) <= n {
		return token
	}
	return token[:n] + "..."
}
