// Command fsstore reads and writes JSON records kept as one file per record
// in a directory per namespace.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	cmd, a := newRootCmd()
	if err := execute(ctx, cmd, a); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(os.Stderr, "fsstore: %v\n", err)
		os.Exit(1)
	}
}
