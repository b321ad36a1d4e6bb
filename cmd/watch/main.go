package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/benvansteenbergen/console-sub000/internal/config"
	"github.com/benvansteenbergen/console-sub000/internal/dto"
	"github.com/benvansteenbergen/console-sub000/internal/pkg/logger"
	"github.com/benvansteenbergen/console-sub000/internal/service"
	"github.com/benvansteenbergen/console-sub000/internal/upstream"
	"github.com/benvansteenbergen/console-sub000/pkg/polling"

	"github.com/fatih/color"
)

// watch follows one workflow execution from the terminal, printing trace
// steps as they appear. Same watch loop the live websocket channel uses.
func main() {
	email := flag.String("email", "", "console account email")
	password := flag.String("password", "", "console account password")
	executionID := flag.String("execution", "", "execution id to follow")
	interval := flag.Duration("interval", 2*time.Second, "poll interval")
	flag.Parse()

	if *email == "" || *password == "" || *executionID == "" {
		fmt.Fprintln(os.Stderr, "usage: watch -email <email> -password <password> -execution <id>")
		os.Exit(2)
	}

	cfg := config.Load()
	cliLogger := logger.NewIsolatedLogger("logs/watch.log")
	defer cliLogger.Sync()

	client := upstream.NewClient(cfg.Upstream, cliLogger)
	authService := service.NewAuthService(client, cliLogger)
	executionService := service.NewExecutionService(client)

	ctx := context.Background()

	token, err := authService.Login(ctx, &dto.LoginRequest{Email: *email, Password: *password})
	if err != nil {
		color.Red("login failed: %v", err)
		os.Exit(1)
	}

	dim := color.New(color.Faint)
	fresh := color.New(color.FgCyan)

	tracker := polling.NewTracker()
	watcher := polling.NewWatcher(*interval,
		func(ctx context.Context) (*dto.ExecutionResponse, error) {
			return executionService.Status(ctx, token, *executionID)
		},
		polling.WithUpdateFunc(func(execution *dto.ExecutionResponse) {
			for _, step := range tracker.Observe(execution.Trace) {
				if !step.Fresh {
					continue
				}
				fresh.Printf("▸ %s", step.Label)
				if step.Summary != "" {
					dim.Printf("  %s", step.Summary)
				}
				fmt.Println()
			}
		}),
	)

	fmt.Printf("watching execution %s...\n", *executionID)
	outcome, err := watcher.Run(ctx)
	if err != nil {
		color.Red("watch aborted: %v", err)
		os.Exit(1)
	}

	switch outcome.Status {
	case dto.ExecutionSuccess:
		color.Green("✔ execution succeeded")
		if outcome.DocumentID != "" {
			fmt.Printf("document: %s\n", outcome.DocumentID)
		} else {
			dim.Println("no document reference found in trace")
		}
	default:
		color.Red("✘ execution failed")
		os.Exit(1)
	}
}
