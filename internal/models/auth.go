package models

import "github.com/golang-jwt/jwt/v5"

// UserRole enumerates the caller roles recognised by route guards. Identity
// itself is owned by an external service; only the claims travel here.
type UserRole string

const (
	RoleAdmin   UserRole = "ADMIN"
	RoleStaff   UserRole = "STAFF"
	RoleTeacher UserRole = "TEACHER"
)

// JWTClaims are the token claims issued by the identity service.
type JWTClaims struct {
	UserID string   `json:"user_id"`
	Role   UserRole `json:"role"`
	jwt.RegisteredClaims
}
