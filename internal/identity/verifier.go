// AngelaMos | 2026
// verifier.go

// Package identity resolves inbound credentials against the external
// identity provider. The provider owns sign-in/up and sessions; this
// service only verifies the RS256 session JWTs it mints and extracts the
// subject id.
package identity

import (
	"context"
	"fmt"
	"os"

	"github.com/lestrrat-go/jwx/v3/jwa"
	"github.com/lestrrat-go/jwx/v3/jwk"
	"github.com/lestrrat-go/jwx/v3/jwt"

	"github.com/makao-dev/makao-api/internal/config"
	"github.com/makao-dev/makao-api/internal/core"
)

// Subject is an authenticated caller identity, prior to role resolution.
type Subject struct {
	ID string
}

type Verifier struct {
	publicKey jwk.Key
	config    config.IdentityConfig
}

func NewVerifier(cfg config.IdentityConfig) (*Verifier, error) {
	publicKeyPEM, err := os.ReadFile(cfg.PublicKeyPath)
	if err != nil {
		return nil, fmt.Errorf("read identity public key: %w", err)
	}

	publicKey, err := jwk.ParseKey(publicKeyPEM, jwk.WithPEM(true))
	if err != nil {
		return nil, fmt.Errorf("parse identity public key: %w", err)
	}

	return &Verifier{
		publicKey: publicKey,
		config:    cfg,
	}, nil
}

// VerifySessionToken fails closed: any parse, signature, or claim failure
// yields an unauthenticated error, never a panic or partial subject.
func (v *Verifier) VerifySessionToken(
	ctx context.Context,
	tokenString string,
) (*Subject, error) {
	opts := []jwt.ParseOption{
		jwt.WithKey(jwa.RS256(), v.publicKey),
		jwt.WithValidate(true),
	}

	if v.config.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.config.Issuer))
	}

	token, err := jwt.Parse([]byte(tokenString), opts...)
	if err != nil {
		return nil, fmt.Errorf("verify session token: %w", core.ErrUnauthenticated)
	}

	subject, ok := token.Subject()
	if !ok || subject == "" {
		return nil, fmt.Errorf(
			"verify session token: missing subject: %w",
			core.ErrUnauthenticated,
		)
	}

	return &Subject{ID: subject}, nil
}
