package checkout

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopkit-dev/shopkit/pkg/cart"
	"github.com/shopkit-dev/shopkit/pkg/catalog"
	"github.com/shopkit-dev/shopkit/pkg/session"
)

var mug = catalog.Product{ID: "coffee-mug", Name: "Coffee Mug", Price: 12.99, Category: "Kitchenware"}

func newTestFlow(t *testing.T) (*Flow, *session.Store, *cart.Store) {
	t.Helper()
	sess := session.New(session.WithLatency(0))
	c := cart.New()
	f := NewFlow(sess, c, WithLatency(0))
	return f, sess, c
}

func TestSummary(t *testing.T) {
	f, _, c := newTestFlow(t)

	t.Run("EmptyCart", func(t *testing.T) {
		s := f.Summary()
		if s.Subtotal != 0 || s.Tax != 0 || s.Shipping != 0 || s.Total != 0 {
			t.Errorf("Expected zero summary for empty cart, got %+v", s)
		}
	})

	t.Run("WithItems", func(t *testing.T) {
		c.Add(mug)
		c.Add(mug)

		s := f.Summary()
		if s.Subtotal != 25.98 {
			t.Errorf("Expected subtotal 25.98, got %f", s.Subtotal)
		}
		if s.Tax != 2.60 {
			t.Errorf("Expected 10%% tax 2.60, got %f", s.Tax)
		}
		if s.Shipping != 5.99 {
			t.Errorf("Expected flat shipping 5.99, got %f", s.Shipping)
		}
		if s.Total != 34.57 {
			t.Errorf("Expected total 34.57, got %f", s.Total)
		}
	})
}

func TestShippingAddressPrefill(t *testing.T) {
	f, sess, _ := newTestFlow(t)
	ctx := context.Background()

	if _, ok := f.ShippingAddress(); ok {
		t.Error("Expected no prefill for anonymous session")
	}

	if _, err := sess.Login(ctx, "a@b.com", "pw"); err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	addr, ok := f.ShippingAddress()
	if !ok {
		t.Fatal("Expected prefilled address")
	}
	if !addr.IsDefault || addr.Name != "Home" {
		t.Errorf("Expected the default seeded address, got %+v", addr)
	}

	method, ok := f.PaymentMethod()
	if !ok {
		t.Fatal("Expected default payment method")
	}
	if method.Last4 != "4242" {
		t.Errorf("Expected seeded Visa, got %+v", method)
	}
}

func TestPayGuards(t *testing.T) {
	f, sess, c := newTestFlow(t)
	ctx := context.Background()

	if _, err := f.Pay(ctx); !errors.Is(err, ErrNotAuthenticated) {
		t.Errorf("Expected ErrNotAuthenticated, got %v", err)
	}

	if _, err := sess.Login(ctx, "a@b.com", "pw"); err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if _, err := f.Pay(ctx); !errors.Is(err, ErrEmptyCart) {
		t.Errorf("Expected ErrEmptyCart, got %v", err)
	}

	c.Add(mug)
	if _, err := f.Pay(ctx); err != nil {
		t.Errorf("Expected payment to succeed, got %v", err)
	}
}

func TestPayClearsCartAndSetsSuccess(t *testing.T) {
	f, sess, c := newTestFlow(t)
	ctx := context.Background()

	if _, err := sess.Login(ctx, "a@b.com", "pw"); err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	c.Add(mug)
	c.Add(mug)

	successNotified := false
	f.SubscribeSuccess(func() { successNotified = true })

	receipt, err := f.Pay(ctx)
	if err != nil {
		t.Fatalf("Pay failed: %v", err)
	}

	if c.Len() != 0 {
		t.Error("Successful payment must clear the cart")
	}
	if !f.Success() {
		t.Error("Expected success flag set")
	}
	if !successNotified {
		t.Error("Expected success subscriber notified")
	}

	if len(receipt.Items) != 1 || receipt.Items[0].Quantity != 2 {
		t.Errorf("Receipt must capture the purchased lines, got %+v", receipt.Items)
	}
	if receipt.Summary.Subtotal != 25.98 {
		t.Errorf("Expected receipt subtotal 25.98, got %f", receipt.Summary.Subtotal)
	}
	if receipt.Address.Name != "Home" {
		t.Errorf("Expected receipt shipped to default address, got %+v", receipt.Address)
	}
}

func TestPayLeavesSessionIntact(t *testing.T) {
	f, sess, c := newTestFlow(t)
	ctx := context.Background()

	sess.Login(ctx, "a@b.com", "pw")
	c.Add(mug)

	if _, err := f.Pay(ctx); err != nil {
		t.Fatalf("Pay failed: %v", err)
	}
	if !sess.IsAuthenticated() {
		t.Error("Payment must not touch the session")
	}
}

func TestPayHook(t *testing.T) {
	sess := session.New(session.WithLatency(0))
	c := cart.New()

	var hookErr error
	hooked := false
	f := NewFlow(sess, c, WithLatency(0), WithHook(func(err error, d time.Duration) {
		hooked = true
		hookErr = err
	}))

	sess.Login(context.Background(), "a@b.com", "pw")
	c.Add(mug)

	if _, err := f.Pay(context.Background()); err != nil {
		t.Fatalf("Pay failed: %v", err)
	}
	if !hooked || hookErr != nil {
		t.Errorf("Expected hook with nil error, got hooked=%v err=%v", hooked, hookErr)
	}
}

func TestCustomRates(t *testing.T) {
	sess := session.New(session.WithLatency(0))
	c := cart.New()
	f := NewFlow(sess, c, WithTaxRate(0.2), WithShippingFee(10), WithLatency(0))

	c.Add(catalog.Product{ID: "x", Price: 100})

	s := f.Summary()
	if s.Tax != 20 || s.Shipping != 10 || s.Total != 130 {
		t.Errorf("Unexpected summary: %+v", s)
	}
}
