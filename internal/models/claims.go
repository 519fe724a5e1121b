package models

import "github.com/golang-jwt/jwt/v5"

// UserClaims are the JWT claims attached to every authenticated request.
// The wallet core trusts UserID as the owner identity and Role for the
// admin gate on validate/reject.
type UserClaims struct {
	jwt.RegisteredClaims
	UserID uint   `json:"user_id"`
	Phone  string `json:"phone"`
	Role   string `json:"role"`
}

// IsAdmin reports whether the claims carry the admin role.
func (c *UserClaims) IsAdmin() bool {
	return c.Role == RoleAdmin
}
