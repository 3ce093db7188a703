package main

import (
	"flag"
	"fmt"
	"time"

	"ClerkAI/app/common/middleware"
	"ClerkAI/app/common/response"
	boot "ClerkAI/app/services/clerk/internal/bootstrap"
	"ClerkAI/app/services/clerk/internal/config"
	"ClerkAI/app/services/clerk/internal/handler"
	"ClerkAI/app/services/clerk/internal/svc"

	"github.com/joho/godotenv"
	"github.com/zeromicro/go-zero/core/conf"
	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/go-zero/rest"
	"github.com/zeromicro/go-zero/rest/httpx"
)

var (
	configFile = flag.String("f", "etc/clerk.yaml", "the config file")
	envFile    = flag.String("env", ".env", "optional dotenv file")
)

func main() {
	flag.Parse()

	if err := godotenv.Load(*envFile); err != nil {
		logx.Infof("no dotenv loaded from %s: %v", *envFile, err)
	}

	var c config.Config
	conf.MustLoad(*configFile, &c, conf.UseEnv())

	server := rest.MustNewServer(c.RestConf)
	defer server.Stop()

	ctx := svc.NewServiceContext(c)
	session := middleware.NewSessionMiddleware(c.Session.Secret, time.Duration(c.Session.Expire)*time.Second)
	handler.RegisterHandlers(server, ctx, session.Handle)
	httpx.SetErrorHandlerCtx(response.ErrorHandler)

	if stop := boot.StartKafka(ctx); stop != nil {
		defer stop()
	}
	if stop := boot.StartAsynq(ctx); stop != nil {
		defer stop()
	}

	fmt.Printf("Starting clerk server at %s:%d...\n", c.Host, c.Port)
	server.Start()
}
