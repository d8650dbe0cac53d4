package auth

import (
	"fmt"
	"time"

	"chat-relay/domain"
	"chat-relay/errors"

	"github.com/golang-jwt/jwt/v5"
)

// Claims defines the structure of the data stored inside the JWT.
// The field names mirror what the token issuer (the CMS) signs.
type Claims struct {
	ID    string `json:"id"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// Verifier validates opaque bearer credentials against the shared secret.
// It is a pure gate: no state, no side effects. It runs exactly once per
// websocket handshake and once per REST request.
type Verifier struct {
	secret []byte
}

func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(secret)}
}

// Verify parses and validates the signature and expiration of a credential
// and yields the identity it asserts. Every failure mode (bad signature,
// expiry, malformed token) collapses into ErrUnauthenticated.
func (v *Verifier) Verify(credential string) (domain.Identity, error) {
	token, err := jwt.ParseWithClaims(credential, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return v.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return domain.Identity{}, fmt.Errorf("%w: %v", errors.ErrUnauthenticated, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.ID == "" {
		return domain.Identity{}, errors.ErrUnauthenticated
	}

	return domain.Identity{
		UserID:      claims.ID,
		DisplayName: claims.Name,
		Email:       claims.Email,
	}, nil
}

// GenerateToken creates a signed JWT for a specific user. The relay only
// verifies credentials in production; issuance lives here for the probe
// client and the tests.
func GenerateToken(secret string, identity domain.Identity, lifetime time.Duration) (string, error) {
	claims := &Claims{
		ID:    identity.UserID,
		Name:  identity.DisplayName,
		Email: identity.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(lifetime)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "chat-relay",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
