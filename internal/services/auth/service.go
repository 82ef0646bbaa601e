// Package auth issues and refreshes the JWT pairs that identify callers by
// their ledger address. The administrator authenticates with a shared secret
// verified against a bcrypt hash from configuration.
package auth

import (
	"errors"
	"log"

	"tribute/internal/models"
	"tribute/internal/utils"

	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type Service interface {
	Login(address models.Address, secret string) (string, string, error)
	RefreshTokens(refreshToken string) (string, string, error)
}

type service struct {
	admin      models.Address
	secretHash string
}

// NewService creates the auth service. secretHash is the bcrypt hash of the
// administrator secret.
func NewService(admin models.Address, secretHash string) Service {
	if secretHash == "" {
		panic("admin secret hash is required")
	}
	return &service{
		admin:      admin,
		secretHash: secretHash,
	}
}

func (s *service) Login(address models.Address, secret string) (string, string, error) {
	if address.IsZero() {
		return "", "", ErrInvalidCredentials
	}

	role := "holder"
	if address == s.admin {
		if err := bcrypt.CompareHashAndPassword([]byte(s.secretHash), []byte(secret)); err != nil {
			log.Printf("login failed: bad admin secret for %s", address)
			return "", "", ErrInvalidCredentials
		}
		role = "admin"
	}

	accessToken, refreshToken, err := utils.GenerateTokens(&models.UserClaims{
		Address:     address,
		Role:        role,
		Permissions: models.GetDefaultPermissions(role),
	})
	if err != nil {
		log.Println("error generating tokens:", err)
		return "", "", errors.New("error generating tokens")
	}

	return accessToken, refreshToken, nil
}

func (s *service) RefreshTokens(refreshToken string) (string, string, error) {
	_, claims, err := utils.ParseToken(refreshToken)
	if err != nil {
		return "", "", errors.New("invalid refresh token")
	}

	return utils.GenerateTokens(&models.UserClaims{
		Address:     claims.Address,
		Role:        claims.Role,
		Permissions: models.GetDefaultPermissions(claims.Role),
	})
}
