package api

import (
	"errors"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/linesmerrill/lostfound-api/registry"
)

// ErrInvalidAssertion is returned for identity assertions that fail verification
var ErrInvalidAssertion = errors.New("invalid identity assertion")

// VerifyAssertion checks an HS256 identity assertion minted by the sign in gateway
// and returns the identity it vouches for
func VerifyAssertion(token string, secret []byte) (registry.Identity, error) {
	if len(secret) == 0 {
		return registry.Identity{}, fmt.Errorf("%w: no signing secret configured", ErrInvalidAssertion)
	}
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return registry.Identity{}, fmt.Errorf("%w: %v", ErrInvalidAssertion, err)
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return registry.Identity{}, fmt.Errorf("%w: unexpected claims", ErrInvalidAssertion)
	}

	email, _ := claims["email"].(string)
	if strings.TrimSpace(email) == "" {
		return registry.Identity{}, fmt.Errorf("%w: missing email claim", ErrInvalidAssertion)
	}
	if verified, ok := claims["email_verified"].(bool); ok && !verified {
		return registry.Identity{}, fmt.Errorf("%w: email not verified", ErrInvalidAssertion)
	}
	name, _ := claims["name"].(string)
	picture, _ := claims["picture"].(string)
	return registry.Identity{Email: email, Name: name, Picture: picture}, nil
}
