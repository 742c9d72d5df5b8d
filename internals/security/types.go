package security

import "github.com/golang-jwt/jwt/v5"

type RequestClaims struct {
	UserID   string `json:"sub"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}
