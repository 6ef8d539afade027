// Command briefctl fetches the avalanche forecast and its AI safety briefing
// from a running avybrief service and renders both to the terminal.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/peakwatch/avybrief/internal/client/api"
	"github.com/peakwatch/avybrief/internal/client/flow"
	"github.com/peakwatch/avybrief/internal/infra/config"
	"github.com/peakwatch/avybrief/pkg/fetch"
	"github.com/peakwatch/avybrief/pkg/logger"
)

func main() {
	server := flag.String("server", "", "briefing service base URL (overrides config)")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}
	if *server != "" {
		cfg.Client.BaseURL = *server
	}

	slogger := logger.New()
	fetcher := fetch.NewClient(nil, cfg.Client.MaxAttempts, cfg.Client.BaseBackoff, slogger)
	client := api.NewClient(cfg.Client.BaseURL, fetcher)
	presenter := newTerminalPresenter(os.Stdout)

	if state := flow.New(client, presenter, slogger).Run(ctx); state != flow.StateDone {
		os.Exit(1)
	}
}
