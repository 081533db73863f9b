package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// AccessTokenPayload captures the data available when minting a JWT.
type AccessTokenPayload struct {
	AdminID  uuid.UUID
	Username string
	JTI      string
}

// AccessTokenClaims is the typed JWT issued to admins. Subject carries the admin id.
type AccessTokenClaims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// AdminID parses the subject claim.
func (c *AccessTokenClaims) AdminID() (uuid.UUID, error) {
	return uuid.Parse(c.Subject)
}
