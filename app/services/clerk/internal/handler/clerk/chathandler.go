// Code scaffolded by goctl. Safe to edit.
// goctl 1.9.2

package clerk

import (
	"net/http"

	"ClerkAI/app/services/clerk/internal/logic/clerk"
	"ClerkAI/app/services/clerk/internal/svc"
	"ClerkAI/app/services/clerk/internal/types"

	"github.com/zeromicro/go-zero/rest/httpx"
)

func ChatHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.ChatRequest
		if err := httpx.Parse(r, &req); err != nil {
			httpx.ErrorCtx(r.Context(), w, err)
			return
		}

		l := clerk.NewChatLogic(r.Context(), svcCtx)
		resp, err := l.Chat(&req)
		if err != nil {
			httpx.ErrorCtx(r.Context(), w, err)
		} else {
			httpx.OkJsonCtx(r.Context(), w, resp)
		}
	}
}
