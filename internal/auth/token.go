package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidClaims = errors.New("invalid token claims")

// Claims carregadas no JWT. ShopID é zero para quem não tem barbearia.
type Claims struct {
	UserID uint
	Role   string
	ShopID uint
}

type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (t *TokenIssuer) Generate(c Claims) (string, error) {
	now := t.now()
	claims := jwt.MapClaims{
		"sub":    c.UserID,
		"role":   c.Role,
		"shopId": c.ShopID,
		"exp":    now.Add(t.ttl).Unix(),
		"iat":    now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

func (t *TokenIssuer) Parse(tokenString string) (Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenMalformed
		}
		return t.secret, nil
	}, jwt.WithTimeFunc(t.now))
	if err != nil {
		return Claims{}, fmt.Errorf("parse token: %w", err)
	}
	if !token.Valid {
		return Claims{}, jwt.ErrTokenUnverifiable
	}

	mc, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, ErrInvalidClaims
	}

	sub, ok1 := mc["sub"].(float64)
	role, ok2 := mc["role"].(string)
	if !ok1 || !ok2 || sub <= 0 {
		return Claims{}, ErrInvalidClaims
	}
	shopID, _ := mc["shopId"].(float64)

	return Claims{
		UserID: uint(sub),
		Role:   role,
		ShopID: uint(shopID),
	}, nil
}
