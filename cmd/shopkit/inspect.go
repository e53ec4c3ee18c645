package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/shopkit-dev/shopkit"
	"github.com/shopkit-dev/shopkit/internal/config"
	"github.com/shopkit-dev/shopkit/pkg/inspector"
	"github.com/shopkit-dev/shopkit/pkg/observe"
)

func inspectCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Serve live store state over HTTP",
		Long: `Start the store inspector.

The inspector serves the current store state as JSON, pushes live
snapshots over WebSocket, and exposes Prometheus metrics:

  GET /state    current session, cart, and checkout state
  GET /catalog  the product catalog
  GET /live     WebSocket snapshot feed
  GET /metrics  Prometheus metrics

Examples:
  shopkit inspect
  shopkit inspect --addr=127.0.0.1:9000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(addr)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "Listen address (default from shopkit.json)")

	return cmd
}

func runInspect(addr string) error {
	cfg, err := config.LoadFromWorkingDir()
	if err != nil {
		return err
	}
	if addr == "" {
		addr = cfg.Inspector.Addr
	}

	metrics := observe.NewMetrics()
	app, err := shopkit.FromProject(cfg, shopkit.WithMetrics(metrics), shopkit.WithTracer(observe.NewTracer()))
	if err != nil {
		return err
	}
	defer app.Close()

	ins := inspector.New(app.Session, app.Cart, app.Checkout, app.Catalog,
		inspector.WithAddr(addr),
	)
	defer ins.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	printBanner()
	success("inspector on http://%s", addr)
	info("state:   http://%s/state", addr)
	info("catalog: http://%s/catalog", addr)
	info("live:    ws://%s/live", addr)
	info("metrics: http://%s/metrics", addr)

	return ins.Start(ctx)
}
