package middleware

import (
	"net/http"
	"time"

	"ClerkAI/app/common/consts/biz"
	"ClerkAI/app/common/snowflake"
	"ClerkAI/app/common/util"

	"github.com/zeromicro/go-zero/core/logx"
)

// SessionMiddleware resolves the shopper session from the signed cookie,
// minting a fresh one when it is missing or invalid. The cookie is
// refreshed on every response.
type SessionMiddleware struct {
	Secret string
	Expire time.Duration
}

func NewSessionMiddleware(secret string, expire time.Duration) *SessionMiddleware {
	if expire <= 0 {
		expire = biz.SessionExpire
	}
	return &SessionMiddleware{
		Secret: secret,
		Expire: expire,
	}
}

func (m *SessionMiddleware) Handle(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := ""
		if cookie, err := r.Cookie(biz.SESSIONCOOKIE); err == nil {
			token = cookie.Value
		} else if headerToken := r.Header.Get(biz.SESSIONCOOKIE); headerToken != "" {
			token = headerToken
		}

		var sessionId int64
		if token != "" {
			id, err := util.ParseSessionToken(token, m.Secret)
			if err != nil {
				logx.WithContext(r.Context()).Infof("session token rejected, starting a new session: %v", err)
			} else {
				sessionId = id
			}
		}
		if sessionId == 0 {
			sessionId = snowflake.Next()
		}

		signed, expireAt, err := util.SignSessionToken(m.Secret, m.Expire, sessionId)
		if err != nil {
			logx.WithContext(r.Context()).Errorf("sign session token failed: %v", err)
		} else {
			util.SetSessionCookie(w, signed, expireAt)
		}

		util.InjectSessionId2Ctx(r, sessionId)
		next(w, r)
	}
}
