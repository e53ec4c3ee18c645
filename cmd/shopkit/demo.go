package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/shopkit-dev/shopkit"
	"github.com/shopkit-dev/shopkit/internal/config"
)

func demoCmd() *cobra.Command {
	var fast bool

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run a scripted storefront session",
		Long: `Run a scripted storefront session against the stores:
log in, browse the catalog, fill the cart, and pay.

Latencies come from shopkit.json (or SHOPKIT_* environment
variables); --fast drops them to near zero.

Examples:
  shopkit demo
  shopkit demo --fast`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo(fast)
		},
	}

	cmd.Flags().BoolVarP(&fast, "fast", "f", false, "Skip the simulated latencies")

	return cmd
}

func runDemo(fast bool) error {
	cfg, err := config.LoadFromWorkingDir()
	if err != nil {
		return err
	}
	if fast {
		cfg.AuthLatencyMS = 1
		cfg.PaymentLatencyMS = 1
	}

	app, err := shopkit.FromProject(cfg)
	if err != nil {
		return err
	}
	defer app.Close()

	printBanner()
	ctx := context.Background()

	info("logging in as user@example.com ...")
	start := time.Now()
	user, err := app.Login(ctx, "user@example.com", "password123")
	if err != nil {
		errorMsg("login failed: %v", err)
		return err
	}
	success("logged in as %s in %s", user.Name, time.Since(start).Round(time.Millisecond))

	info("")
	info("catalog: %d products in %d categories", app.Catalog.Len(), len(app.Catalog.Categories()))

	products := app.Catalog.All()
	app.Cart.Add(products[0])
	app.Cart.Add(products[0])
	app.Cart.Add(products[3])
	for _, item := range app.Cart.Items() {
		info("in cart: %dx %s ($%.2f)", item.Quantity, item.Product.Name, item.Product.Price)
	}
	success("cart: %d items, $%.2f", app.Cart.TotalItems(), app.Cart.TotalPrice())

	summary := app.Checkout.Summary()
	info("")
	info("subtotal  $%.2f", summary.Subtotal)
	info("tax       $%.2f", summary.Tax)
	info("shipping  $%.2f", summary.Shipping)
	info("total     $%.2f", summary.Total)

	if addr, ok := app.Checkout.ShippingAddress(); ok {
		info("shipping to %s, %s %s", addr.Line1, addr.City, addr.PostalCode)
	}

	info("")
	info("processing payment ...")
	start = time.Now()
	receipt, err := app.Pay(ctx)
	if err != nil {
		errorMsg("payment failed: %v", err)
		return err
	}
	success("paid $%.2f in %s", receipt.Summary.Total, time.Since(start).Round(time.Millisecond))
	success("cart cleared: %d items remain", app.Cart.Len())

	fmt.Println()
	return nil
}
