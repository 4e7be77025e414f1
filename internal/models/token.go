package models

import "github.com/golang-jwt/jwt/v5"

// JWTClaims is the principal attached to every authenticated request.
type JWTClaims struct {
	UserID int64    `json:"uid"`
	Role   UserRole `json:"role"`
	jwt.RegisteredClaims
}
