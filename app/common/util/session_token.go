package util

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

var ErrSessionExpired = errors.New("session token expired")

type sessionClaims struct {
	SessionId int64 `json:"sid,string"`
	jwt.RegisteredClaims
}

// SignSessionToken issues an HS256 token carrying the session id.
func SignSessionToken(secret string, ttl time.Duration, sessionId int64) (string, time.Time, error) {
	if secret == "" {
		return "", time.Time{}, errors.New("session secret is empty")
	}
	if ttl <= 0 {
		return "", time.Time{}, errors.New("session ttl must be positive")
	}

	now := time.Now()
	expireAt := now.Add(ttl)
	claims := sessionClaims{
		SessionId: sessionId,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(sessionId, 10),
			ExpiresAt: jwt.NewNumericDate(expireAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expireAt, nil
}

// ParseSessionToken returns the session id of a valid token.
func ParseSessionToken(tokenStr, secret string) (int64, error) {
	if tokenStr == "" {
		return 0, errors.New("session token is empty")
	}
	if secret == "" {
		return 0, errors.New("session secret is empty")
	}

	token, err := jwt.ParseWithClaims(tokenStr, &sessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		var ve *jwt.ValidationError
		if errors.As(err, &ve) && ve.Errors&jwt.ValidationErrorExpired != 0 {
			return 0, ErrSessionExpired
		}
		return 0, err
	}

	claims, ok := token.Claims.(*sessionClaims)
	if !ok || !token.Valid || claims.SessionId == 0 {
		return 0, errors.New("invalid session claims")
	}
	return claims.SessionId, nil
}
