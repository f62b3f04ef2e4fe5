package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/alphabill-org/alphabill-multisend/cli/multisend/cmd"
	"github.com/alphabill-org/alphabill-multisend/logger"
)

var log = logger.CreateForPackage()

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cmd.New().Execute(ctx); err != nil {
		log.Error("multisend failed: %s", err)
		stop()
		os.Exit(1)
	}
}
