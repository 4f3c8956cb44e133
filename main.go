package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/gopak/gopak-query/cmd"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := cmd.Run(ctx)
	stop()
	os.Exit(code)
}
