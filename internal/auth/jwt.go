package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenVerifier validates bearer tokens minted by the external auth provider
// and extracts the identity claims they carry. The secret is injected so
// tests can mint their own tokens.
type TokenVerifier struct {
	secret []byte
}

func NewTokenVerifier(secret string) (*TokenVerifier, error) {
	if secret == "" {
		return nil, fmt.Errorf("jwt secret is empty")
	}
	return &TokenVerifier{secret: []byte(secret)}, nil
}

func (v *TokenVerifier) GenerateToken(identity Identity) (string, error) {
	claims := jwt.MapClaims{
		"email":       identity.Email,
		"full_name":   identity.Metadata.FullName,
		"user_name":   identity.Metadata.UserName,
		"provider_id": identity.Metadata.ProviderID,
		"avatar_url":  identity.Metadata.AvatarURL,
		"exp":         time.Now().Add(time.Hour * 168).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(v.secret)
}

func (v *TokenVerifier) VerifyToken(tokenString string) (Identity, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return v.secret, nil
	})

	if err != nil || !token.Valid {
		return Identity{}, fmt.Errorf("invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)

	if !ok {
		return Identity{}, fmt.Errorf("invalid token claims")
	}

	email, _ := claims["email"].(string)

	if email == "" {
		return Identity{}, fmt.Errorf("token carries no email claim")
	}

	identity := Identity{Email: email}
	identity.Metadata.FullName, _ = claims["full_name"].(string)
	identity.Metadata.UserName, _ = claims["user_name"].(string)
	identity.Metadata.ProviderID, _ = claims["provider_id"].(string)
	identity.Metadata.AvatarURL, _ = claims["avatar_url"].(string)

	return identity, nil
}
