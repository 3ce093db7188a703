package response

import (
	"context"
	"errors"
	"net/http"

	"ClerkAI/app/common/consts/errno"

	xerrors "github.com/zeromicro/x/errors"
)

type Response struct {
	StatusCode int    `json:"code"`
	StatusMsg  string `json:"msg"`
}

func NewResponse(statusCode int, statusMsg string) Response {
	return Response{
		StatusCode: statusCode,
		StatusMsg:  statusMsg,
	}
}

// ErrorHandler renders coded errors as {code, msg}; anything else is an
// internal error. Register it with httpx.SetErrorHandlerCtx.
func ErrorHandler(_ context.Context, err error) (int, any) {
	var cm *xerrors.CodeMsg
	if errors.As(err, &cm) {
		return statusOf(cm.Code), NewResponse(cm.Code, cm.Msg)
	}
	return http.StatusInternalServerError, NewResponse(errno.InternalError, "internal error")
}

func statusOf(code int) int {
	switch code {
	case errno.InvalidParam, errno.SessionInvalid, errno.SessionExpired:
		return http.StatusBadRequest
	case errno.ProductNotFound:
		return http.StatusNotFound
	case errno.ClerkNotConfigured, errno.ClerkUnavailable:
		return http.StatusServiceUnavailable
	case errno.InternalError:
		return http.StatusInternalServerError
	}
	return http.StatusOK
}
