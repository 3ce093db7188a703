package util

import (
	"net/http"
	"time"

	"ClerkAI/app/common/consts/biz"
)

// SetSessionCookie refreshes the session cookie on every response.
func SetSessionCookie(w http.ResponseWriter, token string, expireAt time.Time) {
	if token == "" {
		return
	}
	ttl := time.Until(expireAt)
	if ttl <= 0 {
		ttl = biz.SessionExpire
		expireAt = time.Now().Add(ttl)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     biz.SESSIONCOOKIE,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  expireAt,
		MaxAge:   int(ttl.Seconds()),
	})
}
