package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"rag-console/internal/bootstrap"
	"rag-console/internal/tui/chatview"
	"rag-console/internal/tui/docsview"
)

const usage = `usage: ragconsole [-config file] <command>

commands:
  chat                     interactive chat
  docs                     interactive document manager
  docs list                print all documents
  docs upload <file>       upload a document
  docs delete [-yes] <id>  delete a document
`

func main() {
	flags := flag.NewFlagSet("ragconsole", flag.ExitOnError)
	configPath := flags.String("config", "", "path to a TOML config file (default $CONFIG_FILE or configs/config.toml)")
	flags.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	_ = flags.Parse(os.Args[1:])

	args := flags.Args()
	if len(args) == 0 {
		flags.Usage()
		os.Exit(2)
	}

	interactive := args[0] == "chat" || (args[0] == "docs" && len(args) == 1)
	app, err := bootstrap.New(bootstrap.Options{ConfigPath: *configPath, Interactive: interactive})
	if err != nil {
		log.Fatalf("bootstrap failed: %v", err)
	}

	ctx, stop := withShutdown(context.Background())
	code := run(ctx, app, args)
	stop()

	if err := app.Close(); err != nil {
		log.Printf("close resources failed: %v", err)
	}
	os.Exit(code)
}

func run(ctx context.Context, app *bootstrap.App, args []string) int {
	switch args[0] {
	case "chat":
		return finishTUI(app, chatview.Run(ctx, app.ChatResponder()))
	case "docs":
		if len(args) == 1 {
			return finishTUI(app, docsview.Run(ctx, app.DocumentManager()))
		}
		return runDocs(ctx, app.DocumentManager(), args[1:], os.Stdin, os.Stdout)
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n%s", args[0], usage)
		return 2
	}
}

func finishTUI(app *bootstrap.App, err error) int {
	if err == nil || errors.Is(err, tea.ErrProgramKilled) {
		return 0
	}
	app.Logger.Error().Err(err).Msg("terminal ui failed")
	fmt.Fprintf(os.Stderr, "ui failed: %v\n", err)
	return 1
}

// withShutdown cancels the returned context on SIGINT or SIGTERM.
func withShutdown(parent context.Context) (context.Context, func()) {
	ctx, cancel := context.WithCancel(parent)
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case <-quit:
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, func() {
		signal.Stop(quit)
		cancel()
	}
}
