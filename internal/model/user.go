package model

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type User struct {
	ID        int
	Name      string
	Login     string
	Password  string
	CreatedAt time.Time
}

type UserClaims struct {
	jwt.RegisteredClaims
}
