package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"

	"odoosense/app/client/llm"
	"odoosense/app/client/odoo"
	"odoosense/app/config"
	"odoosense/app/service/catalog"
	"odoosense/app/service/conversation"
	"odoosense/app/service/engine"
	"odoosense/app/service/mcpserver"
	"odoosense/app/service/queue"
	"odoosense/app/util/mylog"

	"github.com/gofiber/fiber/v2/log"
	"github.com/samber/do"
)

func main() {
	mcpMode := flag.Bool("mcp", false, "serve the data tool catalog over stdio MCP instead of the interactive assistant")
	flag.Parse()

	di := do.New()
	defer di.Shutdown()

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

	do.Provide(di, odoo.NewClient)
	do.Provide(di, llm.NewCompleter)
	do.Provide(di, conversation.New)
	do.Provide(di, catalog.New)
	do.Provide(di, mcpserver.New)
	do.Provide(di, queue.New)
	do.Provide(di, engine.New)

	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt)
		<-sigint

		log.Info("Shutting down...")

		cancel()
	}()

	if *mcpMode {
		if err := do.MustInvoke[*mcpserver.Service](di).Serve(); err != nil {
			log.Fatalf("mcp server failed: %v", err)
		}
		return
	}

	slog.Info("Service started")

	do.MustInvoke[*engine.Service](di).Run(appCtx)
}
