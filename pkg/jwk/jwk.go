// Package jwk manages the key pair that signs and verifies access tokens.
package jwk

import (
	"crypto"
	"crypto/sha256"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/punch/pkg/config"
	"github.com/go-jose/go-jose/v3"
	"github.com/golang-jwt/jwt/v5"
)

// SigningMethod is a JSON Web Token signing method. It uses Ed25519 keys to
// sign and verify tokens.
var SigningMethod = &jwt.SigningMethodEd25519{}

// ErrInvalidToken is returned when a token is invalid.
var ErrInvalidToken = errors.New("invalid token")

// Pair is a JSON Web Key pair.
type Pair struct {
	privateKey crypto.PrivateKey
	publicKey  crypto.PublicKey
	jwk        jose.JSONWebKey
}

// PrivateKey returns the private key.
func (p Pair) PrivateKey() crypto.PrivateKey {
	return p.privateKey
}

// PublicKey returns the public key.
func (p Pair) PublicKey() crypto.PublicKey {
	return p.publicKey
}

// JWK returns the JSON Web Key.
func (p Pair) JWK() jose.JSONWebKey {
	return p.jwk
}

// JWKS returns the key set published by the server.
func (p Pair) JWKS() jose.JSONWebKeySet {
	return jose.JSONWebKeySet{Keys: []jose.JSONWebKey{p.jwk}}
}

// NewPair creates a new JSON Web Key pair.
func NewPair(cfg *config.Config) (Pair, error) {
	kp, err := config.KeyPair(cfg)
	if err != nil {
		return Pair{}, err
	}

	sum := sha256.Sum256(kp.RawPrivateKey())
	kid := fmt.Sprintf("%x", sum)
	jwk := jose.JSONWebKey{
		Key:       kp.CryptoPublicKey(),
		KeyID:     kid,
		Algorithm: SigningMethod.Alg(),
		Use:       "sig",
	}

	return Pair{privateKey: kp.PrivateKey(), publicKey: kp.CryptoPublicKey(), jwk: jwk}, nil
}

// Subject returns the token subject of a user.
func Subject(email string, id int64) string {
	return fmt.Sprintf("%s#%d", email, id)
}

// ParseSubject splits a token subject into email and user id.
func ParseSubject(sub string) (string, int64, error) {
	i := strings.LastIndexByte(sub, '#')
	if i <= 0 {
		return "", 0, ErrInvalidToken
	}
	id, err := strconv.ParseInt(sub[i+1:], 10, 64)
	if err != nil || id <= 0 {
		return "", 0, ErrInvalidToken
	}
	return sub[:i], id, nil
}

// NewToken signs an access token for a user. The issuer is the public URL
// and the audience is the server name.
func (p Pair) NewToken(cfg *config.Config, email string, id int64, now time.Time, expiresIn time.Duration) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   Subject(email, id),
		ExpiresAt: jwt.NewNumericDate(now.Add(expiresIn)),
		NotBefore: jwt.NewNumericDate(now),
		IssuedAt:  jwt.NewNumericDate(now),
		Issuer:    cfg.HTTP.PublicURL,
		Audience:  []string{cfg.Name},
	}

	token := jwt.NewWithClaims(SigningMethod, claims)
	token.Header["kid"] = p.jwk.KeyID
	return token.SignedString(p.privateKey)
}

// ParseToken verifies a signed token and returns its claims.
func (p Pair) ParseToken(cfg *config.Config, bearer string) (*jwt.RegisteredClaims, error) {
	token, err := jwt.ParseWithClaims(bearer, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodEd25519); !ok {
			return nil, errors.New("invalid signing method")
		}

		return p.publicKey, nil
	},
		jwt.WithIssuer(cfg.HTTP.PublicURL),
		jwt.WithIssuedAt(),
		jwt.WithAudience(cfg.Name),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !token.Valid || !ok {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
