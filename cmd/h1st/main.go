// Command h1st replays a build log into a provenance graph and prints which
// commands still matter for the files it produced.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/Caian/h1st/internal/app"
	"github.com/Caian/h1st/internal/config"
)

func main() {
	// Minimal logger until the configured one takes over.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Stdout, os.Stderr, os.Stdin, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// run holds the whole program so tests can drive it without exiting.
func run(ctx context.Context, outW, errW io.Writer, in io.Reader, args []string) error {
	cfg, shouldExit, err := config.Load(args, outW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}
	return app.New(outW, errW, in, cfg).Run(ctx)
}
