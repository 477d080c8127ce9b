// Command esvalid validates Spanish postal codes, phone numbers, tax
// identifiers and bank account numbers from the command line or over HTTP.
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
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := newCommand().Run(ctx, os.Args); err != nil {
		if !errors.Is(err, ErrInvalidValues) {
			fmt.Fprintln(os.Stderr, "esvalid:", err)
		}
		cancel()
		os.Exit(1)
	}
}
