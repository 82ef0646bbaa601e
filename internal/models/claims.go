package models

import "github.com/golang-jwt/jwt/v5"

// Application permissions
const (
	// Admin permissions
	PermissionLedgerAdmin = "ledger:admin"

	// Holder permissions
	PermissionTransferWrite = "transfer:write"
	PermissionBalanceRead   = "balance:read"
)

type UserClaims struct {
	jwt.RegisteredClaims
	Address     Address  `json:"address"`
	Role        string   `json:"role"`
	Permissions []string `json:"permissions"`
}

// HasPermission checks if the claims include a specific permission
func (c *UserClaims) HasPermission(permission string) bool {
	for _, p := range c.Permissions {
		if p == permission {
			return true
		}
	}
	return false
}

// GetDefaultPermissions returns default permissions based on role
func GetDefaultPermissions(role string) []string {
	switch role {
	case "admin":
		return []string{
			PermissionLedgerAdmin,
			PermissionTransferWrite,
			PermissionBalanceRead,
		}
	default:
		return []string{
			PermissionTransferWrite,
			PermissionBalanceRead,
		}
	}
}
