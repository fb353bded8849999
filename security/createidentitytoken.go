package security

import (
	"encoding/base64"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	RoleAdmin       = "admin"
	RoleSiteManager = "site_manager"
	RoleViewer      = "viewer"
)

// FleetIdentity is the user a token is issued for.
type FleetIdentity struct {
	ID       string
	UserName string
	Email    string
	Role     string
}

type Identity struct {
	UserID     string `json:"nameid"`
	UniqueName string `json:"unique_name"`
	Email      string `json:"email"`
	Role       string `json:"role"`
}

type IdentityClaims struct {
	Identity
	jwt.RegisteredClaims
}

// DecodeSecret turns the base64 signing secret from configuration into key bytes.
func DecodeSecret(base64Secret string) ([]byte, error) {
	if base64Secret == "" {
		return nil, errors.New("signing secret is not configured")
	}
	return base64.StdEncoding.DecodeString(base64Secret)
}

func CreateIdentityToken(identity *FleetIdentity, base64Secret string, expiresInSeconds int64) (string, error) {
	secretBytes, err := DecodeSecret(base64Secret)
	if err != nil {
		return "", err
	}
	now := time.Now()
	claims := IdentityClaims{
		Identity: Identity{
			UserID:     identity.ID,
			UniqueName: identity.UserName,
			Email:      identity.Email,
			Role:       identity.Role,
		},
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "fleetops",
			Subject:   identity.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expiresInSeconds) * time.Second)),
		},
	}

	// HS256, same key verifies in the middleware
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString(secretBytes)
}
