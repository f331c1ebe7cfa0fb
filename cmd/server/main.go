package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"vaultkeeper/internal/app/server"
	"vaultkeeper/internal/app/server/config"
	"vaultkeeper/internal/utils/logger"
)

func main() {
	conf := config.MustLoad()
	log := logger.New(conf.Env, conf.Logger.LogLevel)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	app, err := server.New(conf, log)
	if err != nil {
		log.Error("failed to initialize server", "error", err)
		os.Exit(1)
	}

	if err := app.Run(ctx); err != nil {
		log.Error("server stopped with error", "error", err)
		os.Exit(1)
	}
}
