package util

import (
	"context"
	"net/http"
	"strconv"

	"ClerkAI/app/common/consts/biz"
	"ClerkAI/app/common/consts/errno"

	"github.com/zeromicro/x/errors"
)

func SessionIdFromCtx(ctx context.Context) (string, error) {
	if ctx == nil {
		return "", errors.New(int(errno.SessionInvalid), "missing context")
	}

	switch val := ctx.Value(biz.SESSION_KEY).(type) {
	case int64:
		return strconv.FormatInt(val, 10), nil
	case string:
		if val != "" {
			return val, nil
		}
	}

	return "", errors.New(int(errno.SessionInvalid), "missing session")
}

func InjectSessionId2Ctx(r *http.Request, sessionId int64) {
	ctx := context.WithValue(r.Context(), biz.SESSION_KEY, sessionId)
	*r = *r.WithContext(ctx)
}
