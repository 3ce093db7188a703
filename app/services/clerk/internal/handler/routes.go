// Code scaffolded by goctl. Safe to edit.
// goctl 1.9.2

package handler

import (
	"net/http"

	clerk "ClerkAI/app/services/clerk/internal/handler/clerk"
	"ClerkAI/app/services/clerk/internal/svc"

	"github.com/zeromicro/go-zero/rest"
)

func RegisterHandlers(server *rest.Server, serverCtx *svc.ServiceContext, session rest.Middleware) {
	server.AddRoutes(
		rest.WithMiddlewares(
			[]rest.Middleware{session},
			[]rest.Route{
				{
					Method:  http.MethodPost,
					Path:    "/chat",
					Handler: clerk.ChatHandler(serverCtx),
				},
			}...,
		),
		rest.WithPrefix("/api/clerk"),
	)
}
