package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/vk/mvngraph/internal/app"
	"github.com/vk/mvngraph/internal/cli"
)

// main is the entrypoint for the mvngraph application.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Stdin, os.Stdout, os.Stderr, os.Args[1:])
	stop()
	os.Exit(code)
}

// run parses the arguments, runs the application and returns the process
// exit code. Errors are printed to errW.
func run(ctx context.Context, inR io.Reader, outW, errW io.Writer, args []string) (code int) {
	if err := execute(ctx, inR, outW, errW, args); err != nil {
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			fmt.Fprintln(errW, exitErr.Message)
			return exitErr.Code
		}
		fmt.Fprintf(errW, "ERROR: %v\n", err)
		return cli.ExitRuntime
	}
	return 0
}

func execute(ctx context.Context, inR io.Reader, outW, errW io.Writer, args []string) (err error) {
	appConfig, shouldExit, err := cli.Parse(args, outW, errW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("application panicked: %v", r)
		}
	}()

	mvngraph, err := app.NewApp(inR, outW, errW, appConfig)
	if err != nil {
		return fmt.Errorf("application startup failed: %w", err)
	}
	return mvngraph.Run(ctx)
}
