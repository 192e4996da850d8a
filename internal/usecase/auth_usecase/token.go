package auth

import (
	"strconv"
	"time"

	"github.com/Larissa2801/Projeto-UaiFood-Back/internal/config"
	"github.com/Larissa2801/Projeto-UaiFood-Back/internal/domain/model"

	"github.com/golang-jwt/jwt/v4"
)

// JWTIssuer signs HS256 access tokens carrying the user id (sub) and role.
type JWTIssuer struct {
	secret []byte
	ttl    time.Duration
	issuer string
}

func NewJWTIssuer(cfg config.JWTConfig) *JWTIssuer {
	return &JWTIssuer{secret: []byte(cfg.Secret), ttl: cfg.AccessTokenExpire, issuer: cfg.Issuer}
}

func (i *JWTIssuer) Issue(userID int64, role model.Role, now time.Time) (string, time.Time, error) {
	expiresAt := now.Add(i.ttl)

	claims := jwt.MapClaims{
		"sub":  strconv.FormatInt(userID, 10),
		"role": string(role),
		"iat":  now.Unix(),
		"exp":  expiresAt.Unix(),
	}
	if i.issuer != "" {
		claims["iss"] = i.issuer
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}
