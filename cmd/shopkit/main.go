package main

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/shopkit-dev/shopkit/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const banner = `
  ┌─┐┬ ┬┌─┐┌─┐┬┌─┬┌┬┐
  └─┐├─┤│ │├─┘├┴┐│ │
  └─┘┴ ┴└─┘┴  ┴ ┴┴ ┴
`

func main() {
	// Local .env overrides for latencies, storage, inspector address.
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "shopkit",
		Short: "Reactive state core for a mock storefront",
		Long: `Shopkit is a reactive state library for a mock e-commerce
storefront: catalog, session, cart, and checkout stores built on
observable signals.

The CLI drives the stores without an embedding UI:

  • demo     runs a scripted storefront session
  • inspect  serves live store state over HTTP and WebSocket`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		demoCmd(),
		inspectCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		var se *errors.ShopkitError
		if stderrors.As(err, &se) {
			fmt.Fprint(os.Stderr, se.Format())
		} else {
			fmt.Fprintf(os.Stderr, "\033[31mError:\033[0m %s\n", err)
		}
		os.Exit(1)
	}
}

// printBanner prints the shopkit ASCII art banner.
func printBanner() {
	fmt.Print(banner)
}

// success prints a success message.
func success(format string, args ...any) {
	fmt.Printf("\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(format string, args ...any) {
	fmt.Printf("  %s\n", fmt.Sprintf(format, args...))
}

// errorMsg prints an error message.
func errorMsg(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "\033[31m✗\033[0m %s\n", fmt.Sprintf(format, args...))
}
