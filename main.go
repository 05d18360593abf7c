// Command vscodiff is the diagnostic CLI wrapper around internal/diffcore.
package main

import (
	"context"
	"os"

	"github.com/vscodediff/vscodediff/internal/cli"
)

func main() {
	code := cli.Run(context.Background(), cli.RunOptions{
		Args: os.Args[1:],
		Out:  os.Stdout,
		Err:  os.Stderr,
	})
	os.Exit(code)
}
