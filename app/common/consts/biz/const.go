package biz

import "time"

type CtxKey string

const (
	SESSION_KEY CtxKey = "clerk_session_id"

	SessionExpire = time.Hour * 24 * 30

	SESSIONCOOKIE = "clerk_session"
)
