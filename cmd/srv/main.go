package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
)

var server srv

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server.ctx = ctx
	server.loadApp()
	if err := server.app.Run(os.Args); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}
