package domain

import "github.com/golang-jwt/jwt/v5"

const RoleAdmin = "admin"

// Claims são as declarações esperadas no token de acesso à API
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}
