package shopkit

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/shopkit-dev/shopkit/internal/config"
	"github.com/shopkit-dev/shopkit/internal/errors"
	"github.com/shopkit-dev/shopkit/pkg/observe"
	"github.com/shopkit-dev/shopkit/pkg/session"

	"github.com/prometheus/client_golang/prometheus"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	app := New(Config{
		AuthLatency:    time.Millisecond,
		PaymentLatency: time.Millisecond,
		Tracer:         observe.NewTracer(),
	})
	t.Cleanup(func() { app.Close() })
	return app
}

func TestAppFullPurchaseFlow(t *testing.T) {
	app := newTestApp(t)
	ctx := context.Background()

	if _, err := app.Login(ctx, "user@example.com", "password"); err != nil {
		t.Fatalf("Login() error: %v", err)
	}

	products := app.Catalog.All()
	app.Cart.Add(products[0])
	app.Cart.Add(products[1])
	app.Cart.Add(products[1])

	if got := app.Cart.TotalItems(); got != 3 {
		t.Fatalf("TotalItems() = %d, want 3", got)
	}

	receipt, err := app.Pay(ctx)
	if err != nil {
		t.Fatalf("Pay() error: %v", err)
	}
	if len(receipt.Items) != 2 {
		t.Errorf("len(receipt.Items) = %d, want 2", len(receipt.Items))
	}
	if app.Cart.Len() != 0 {
		t.Error("cart should be empty after a successful payment")
	}
	if !app.Session.IsAuthenticated() {
		t.Error("payment must not touch the session")
	}
}

func TestZeroRatesConfigurable(t *testing.T) {
	zero := 0.0
	app := New(Config{
		AuthLatency:    time.Millisecond,
		PaymentLatency: time.Millisecond,
		TaxRate:        &zero,
		ShippingFee:    &zero,
	})
	defer app.Close()

	if _, err := app.Login(context.Background(), "user@example.com", "pw"); err != nil {
		t.Fatalf("Login() error: %v", err)
	}
	app.Cart.Add(app.Catalog.All()[0])

	// An explicit zero must not fall back to the defaults.
	sum := app.Checkout.Summary()
	if sum.Tax != 0 {
		t.Errorf("Tax = %v, want 0", sum.Tax)
	}
	if sum.Shipping != 0 {
		t.Errorf("Shipping = %v, want 0", sum.Shipping)
	}
	if sum.Total != sum.Subtotal {
		t.Errorf("Total = %v, want subtotal %v", sum.Total, sum.Subtotal)
	}
}

func TestLogoutLeavesCartUntouched(t *testing.T) {
	app := newTestApp(t)

	if _, err := app.Login(context.Background(), "user@example.com", "pw"); err != nil {
		t.Fatalf("Login() error: %v", err)
	}
	app.Cart.Add(app.Catalog.All()[0])
	app.Cart.Add(app.Catalog.All()[0])

	app.Session.Logout()

	if app.Session.IsAuthenticated() {
		t.Error("expected anonymous session after logout")
	}
	if got := app.Session.Addresses(); len(got) != 0 {
		t.Errorf("len(Addresses()) = %d, want 0 after logout", len(got))
	}
	if got := app.Cart.TotalItems(); got != 2 {
		t.Errorf("TotalItems() = %d, want 2: logout must not clear the cart", got)
	}
}

func TestAppSubscribeSpansStores(t *testing.T) {
	app := newTestApp(t)

	var notified int
	unsub := app.Subscribe(func() { notified++ })

	app.Cart.Add(app.Catalog.All()[0])
	if notified == 0 {
		t.Fatal("expected a notification for a cart change")
	}

	seen := notified
	if _, err := app.Session.Login(context.Background(), "a@b.c", "pw"); err != nil {
		t.Fatalf("Login() error: %v", err)
	}
	if notified <= seen {
		t.Error("expected notifications for session changes")
	}

	unsub()
	seen = notified
	app.Cart.Add(app.Catalog.All()[1])
	if notified != seen {
		t.Error("expected no notifications after unsubscribe")
	}
}

func TestAppMetricsWiring(t *testing.T) {
	reg := prometheus.NewRegistry()
	app := New(Config{
		AuthLatency: time.Millisecond,
		Metrics:     observe.NewMetrics(observe.WithRegistry(reg)),
	})
	defer app.Close()

	app.Cart.Add(app.Catalog.All()[0])
	if _, err := app.Session.Login(context.Background(), "a@b.c", "pw"); err != nil {
		t.Fatalf("Login() error: %v", err)
	}

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather() error: %v", err)
	}
	names := make(map[string]bool, len(families))
	for _, fam := range families {
		names[fam.GetName()] = true
	}
	for _, want := range []string{"shopkit_cart_operations_total", "shopkit_auth_operations_total"} {
		if !names[want] {
			t.Errorf("metric %s not recorded", want)
		}
	}
}

func TestAppPersistsAcrossRestarts(t *testing.T) {
	storage := session.NewMemoryStorage()

	app := New(Config{Storage: storage, AuthLatency: time.Millisecond})
	if _, err := app.Session.Login(context.Background(), "user@example.com", "pw"); err != nil {
		t.Fatalf("Login() error: %v", err)
	}

	restarted := New(Config{Storage: storage, AuthLatency: time.Millisecond})
	defer restarted.Close()

	if !restarted.Session.IsAuthenticated() {
		t.Error("expected the restarted app to restore the session")
	}
	// Login yields the seeded identity regardless of the submitted
	// email; the restore must round-trip that record.
	u := restarted.Session.User()
	if u == nil {
		t.Fatal("User() = nil, want restored identity")
	}
	if u.ID != "user1" || u.Email != "john.doe@example.com" {
		t.Errorf("User() = %+v, want the seeded identity", u)
	}
}

func TestFromProject(t *testing.T) {
	t.Run("memory backend", func(t *testing.T) {
		pc := config.New()
		pc.AuthLatencyMS = 1

		app, err := FromProject(pc)
		if err != nil {
			t.Fatalf("FromProject() error: %v", err)
		}
		defer app.Close()

		if _, err := app.Session.Login(context.Background(), "a@b.c", "pw"); err != nil {
			t.Fatalf("Login() error: %v", err)
		}
	})

	t.Run("redis backend requires a client", func(t *testing.T) {
		pc := config.New()
		pc.Storage.Kind = "redis"
		pc.Storage.RedisAddr = "localhost:6379"

		_, err := FromProject(pc)
		var se *errors.ShopkitError
		if !stderrors.As(err, &se) || se.Code != "E101" {
			t.Errorf("FromProject() error = %v, want E101", err)
		}
	})
}
