package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// AccessClaims are the JWT claims issued by the identity provider.
// The file subsystem trusts the verified subject and never re-checks it.
type AccessClaims struct {
	jwt.RegisteredClaims
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"` // "instructor" or "student"
}
