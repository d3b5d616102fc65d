package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/jacoelho/jpq/internal/config"
	"github.com/jacoelho/jpq/internal/exit"
	"github.com/jacoelho/jpq/internal/runner"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	exitCode := run(ctx, os.Args, os.Stdin, os.Stdout, os.Stderr)
	cancel()
	os.Exit(exitCode)
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cfg, exitResult := config.Parse(args)
	if exitResult != nil {
		return printResult(exitResult, stdout, stderr)
	}

	r, exitResult := runner.New(cfg)
	if exitResult != nil {
		return printResult(exitResult, stdout, stderr)
	}
	r.SetInput(stdin)
	r.SetOutput(stdout)
	r.SetErrorOutput(stderr)
	r.SetLogger(newLogger(stderr, cfg.Debug))

	return r.Run(ctx)
}

// printResult prints to the stream matching the result's own destination.
func printResult(result *exit.Result, stdout, stderr io.Writer) int {
	if result.Output == os.Stdout {
		result.Output = stdout
	} else {
		result.Output = stderr
	}
	result.Print()
	return result.ExitCode
}
