package response

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"ClerkAI/app/common/consts/errno"

	"github.com/stretchr/testify/assert"
	xerrors "github.com/zeromicro/x/errors"
)

func TestErrorHandler(t *testing.T) {
	status, body := ErrorHandler(context.Background(), xerrors.New(errno.InvalidParam, "message is empty"))
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, NewResponse(errno.InvalidParam, "message is empty"), body)

	status, body = ErrorHandler(context.Background(), fmt.Errorf("wrapped: %w", xerrors.New(errno.SessionInvalid, "bad session")))
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, NewResponse(errno.SessionInvalid, "bad session"), body)

	status, _ = ErrorHandler(context.Background(), xerrors.New(errno.ClerkNotConfigured, "not configured"))
	assert.Equal(t, http.StatusServiceUnavailable, status)

	status, body = ErrorHandler(context.Background(), fmt.Errorf("boom"))
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, NewResponse(errno.InternalError, "internal error"), body)
}
