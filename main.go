package main

import (
	"context"
	"linetutor/app/client/gemini"
	"linetutor/app/client/line"
	"linetutor/app/client/perplexity"
	"linetutor/app/config"
	"linetutor/app/server"
	"linetutor/app/service/conversation"
	"linetutor/app/service/engine"
	"linetutor/app/service/queue"
	"linetutor/app/util/mylog"
	"log/slog"
	"os"
	"os/signal"

	"github.com/gofiber/fiber/v2/log"
	"github.com/samber/do"
)

func main() {
	di := do.New()
	defer di.Shutdown()
	defer log.Info("Waiting for services to finish...")

	mylog.Preinit()

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()
	do.ProvideValue(di, appCtx)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}
	do.ProvideValue(di, cfg)

	if err = mylog.Init(cfg); err != nil {
		log.Fatalf("logging init failed: %v", err)
	}

	do.Provide(di, line.NewClient)
	do.Provide(di, gemini.NewClient)
	do.Provide(di, perplexity.NewClient)
	do.Provide(di, conversation.New)
	do.Provide(di, queue.New)
	do.Provide(di, engine.New)
	do.Provide(di, server.New)

	slog.Info("Service started")

	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt)
		<-sigint

		log.Info("Shutting down...")

		cancel()
	}()

	go do.MustInvoke[*engine.Service](di).Run(appCtx)
	go do.MustInvoke[*server.Service](di).Run(appCtx)

	<-appCtx.Done()
}
