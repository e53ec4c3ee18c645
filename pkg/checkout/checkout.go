// Package checkout procedurally links the session and cart stores: it
// prefills shipping from the session's addresses, prices the cart, and
// runs the simulated payment that empties the cart on success.
//
// Payment is the only place the two stores touch; they stay otherwise
// independent so cart contents survive logout.
package checkout

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/shopkit-dev/shopkit/pkg/cart"
	"github.com/shopkit-dev/shopkit/pkg/reactive"
	"github.com/shopkit-dev/shopkit/pkg/session"
)

// ErrNotAuthenticated is returned by Pay when no user is logged in.
var ErrNotAuthenticated = errors.New("checkout: authentication required")

// ErrEmptyCart is returned by Pay when there is nothing to purchase.
var ErrEmptyCart = errors.New("checkout: cart is empty")

// ErrPaymentInProgress is returned by Pay while a payment attempt is
// already running.
var ErrPaymentInProgress = errors.New("checkout: payment already in progress")

// Summary is the priced breakdown shown before payment.
type Summary struct {
	Subtotal float64 `json:"subtotal"`
	Tax      float64 `json:"tax"`
	Shipping float64 `json:"shipping"`
	Total    float64 `json:"total"`
}

// Receipt records a successful simulated payment.
type Receipt struct {
	Items   []cart.Item           `json:"items"`
	Summary Summary               `json:"summary"`
	Address session.Address       `json:"address"`
	Method  session.PaymentMethod `json:"method"`
	PaidAt  time.Time             `json:"paid_at"`
}

// Hook observes completed payment attempts.
type Hook func(err error, d time.Duration)

// Flow drives a checkout over the given stores.
type Flow struct {
	session *session.Store
	cart    *cart.Store

	taxRate  float64
	shipping float64
	latency  time.Duration
	hook     Hook

	success *reactive.Signal[bool]
	pay     *reactive.Action[struct{}, Receipt]
}

// Option configures a Flow.
type Option func(*Flow)

// WithTaxRate sets the tax rate applied to the subtotal. Default: 10%.
func WithTaxRate(rate float64) Option {
	return func(f *Flow) { f.taxRate = rate }
}

// WithShippingFee sets the flat shipping fee. Default: $5.99.
func WithShippingFee(fee float64) Option {
	return func(f *Flow) { f.shipping = fee }
}

// WithLatency sets the simulated payment processing delay.
// Default: 2 seconds, matching the storefront.
func WithLatency(d time.Duration) Option {
	return func(f *Flow) { f.latency = d }
}

// WithHook registers a payment observation hook.
func WithHook(h Hook) Option {
	return func(f *Flow) { f.hook = h }
}

// NewFlow creates a checkout flow over the given stores.
func NewFlow(sess *session.Store, c *cart.Store, opts ...Option) *Flow {
	f := &Flow{
		session:  sess,
		cart:     c,
		taxRate:  0.10,
		shipping: 5.99,
		latency:  2 * time.Second,
		success:  reactive.NewSignal(false),
	}
	for _, opt := range opts {
		opt(f)
	}

	f.pay = reactive.NewAction(f.doPay,
		reactive.WithLatency(f.latency),
		reactive.WithName("checkout:pay"),
	)
	return f
}

// Summary prices the current cart: subtotal, tax on the subtotal, the
// flat shipping fee, and their sum, each rounded to cents.
func (f *Flow) Summary() Summary {
	subtotal := roundCents(f.cart.TotalPrice())
	tax := roundCents(subtotal * f.taxRate)
	shipping := f.shipping
	if f.cart.Len() == 0 {
		shipping = 0
	}
	return Summary{
		Subtotal: subtotal,
		Tax:      tax,
		Shipping: shipping,
		Total:    roundCents(subtotal + tax + shipping),
	}
}

// ShippingAddress returns the address to prefill the shipping form
// with: the session's default address, or the first one if none is
// flagged.
func (f *Flow) ShippingAddress() (session.Address, bool) {
	if a, ok := f.session.DefaultAddress(); ok {
		return a, true
	}
	addrs := f.session.Addresses()
	if len(addrs) > 0 {
		return addrs[0], true
	}
	return session.Address{}, false
}

// PaymentMethod returns the session's default payment method, if any.
func (f *Flow) PaymentMethod() (session.PaymentMethod, bool) {
	return f.session.DefaultPaymentMethod()
}

// Pay runs the simulated payment. It rejects synchronously when the
// visitor is anonymous, the cart is empty, or a payment is already in
// flight; otherwise it blocks for the processing delay and always
// succeeds, clearing the cart. A started payment cannot be cancelled.
func (f *Flow) Pay(ctx context.Context) (Receipt, error) {
	if !f.session.IsAuthenticated() {
		return Receipt{}, ErrNotAuthenticated
	}
	if f.cart.Len() == 0 {
		return Receipt{}, ErrEmptyCart
	}

	start := time.Now()
	r, err := f.pay.Do(ctx, struct{}{})
	if errors.Is(err, reactive.ErrBusy) {
		err = ErrPaymentInProgress
	}
	if f.hook != nil {
		f.hook(err, time.Since(start))
	}
	return r, err
}

// Processing reports whether a payment attempt is in flight.
func (f *Flow) Processing() bool {
	return f.pay.Running()
}

// Success reports whether the last payment attempt succeeded.
func (f *Flow) Success() bool {
	return f.success.Get()
}

// SubscribeSuccess registers fn to run when the success flag changes
// and returns the unsubscribe function.
func (f *Flow) SubscribeSuccess(fn func()) func() {
	return f.success.Watch(fn)
}

func (f *Flow) doPay(ctx context.Context, _ struct{}) (Receipt, error) {
	addr, _ := f.ShippingAddress()
	method, _ := f.PaymentMethod()

	r := Receipt{
		Items:   f.cart.Items(),
		Summary: f.Summary(),
		Address: addr,
		Method:  method,
		PaidAt:  time.Now(),
	}

	// Success path only: the simulated gateway never declines.
	f.cart.Clear()
	f.success.Set(true)
	return r, nil
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
