// Package shopkit is a reactive state core for a mock e-commerce
// storefront: catalog, session, cart, and checkout stores built on
// observable signals, with simulated latency standing in for real
// backends. The App type composes the stores and is the single object
// an embedding application passes around.
package shopkit

import (
	"context"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/shopkit-dev/shopkit/internal/config"
	"github.com/shopkit-dev/shopkit/internal/errors"
	"github.com/shopkit-dev/shopkit/pkg/cart"
	"github.com/shopkit-dev/shopkit/pkg/catalog"
	"github.com/shopkit-dev/shopkit/pkg/checkout"
	"github.com/shopkit-dev/shopkit/pkg/media"
	"github.com/shopkit-dev/shopkit/pkg/observe"
	"github.com/shopkit-dev/shopkit/pkg/session"
)

// Config configures an App. The zero value is usable: in-memory
// session storage, default catalog, default latencies and rates.
type Config struct {
	// Catalog is the product catalog (default: catalog.Default()).
	Catalog *catalog.Catalog

	// Storage persists the logged-in identity across restarts
	// (default: in-memory).
	Storage session.Storage

	// Media stores avatars and other binary assets. Optional.
	Media media.Store

	// AuthLatency is the simulated login/register delay (default: 1s).
	AuthLatency time.Duration

	// PaymentLatency is the simulated payment delay (default: 2s).
	PaymentLatency time.Duration

	// TaxRate is the checkout tax rate (default: 0.10). Nil means
	// unset; an explicit zero disables tax.
	TaxRate *float64

	// ShippingFee is the flat shipping fee (default: 5.99). Nil means
	// unset; an explicit zero ships for free.
	ShippingFee *float64

	// Metrics records store operations into Prometheus. Optional.
	Metrics *observe.Metrics

	// Tracer wraps the App's Login, Register, and Pay in
	// OpenTelemetry spans. Optional.
	Tracer *observe.Tracer

	// Logger is the structured logger (default: slog.Default()).
	Logger *slog.Logger
}

// App composes the storefront stores. One App is one storefront
// client: its session, its cart, its checkout flow.
type App struct {
	Catalog  *catalog.Catalog
	Session  *session.Store
	Cart     *cart.Store
	Checkout *checkout.Flow
	Media    media.Store

	tracer *observe.Tracer
	logger *slog.Logger
}

// New creates an App with the given configuration.
func New(cfg Config) *App {
	if cfg.Catalog == nil {
		cfg.Catalog = catalog.Default()
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	sessionOpts := []session.Option{
		session.WithLogger(cfg.Logger),
	}
	if cfg.Storage != nil {
		sessionOpts = append(sessionOpts, session.WithStorage(cfg.Storage))
	}
	if cfg.AuthLatency > 0 {
		sessionOpts = append(sessionOpts, session.WithLatency(cfg.AuthLatency))
	}

	var cartOpts []cart.Option
	checkoutOpts := []checkout.Option{}
	if cfg.TaxRate != nil {
		checkoutOpts = append(checkoutOpts, checkout.WithTaxRate(*cfg.TaxRate))
	}
	if cfg.ShippingFee != nil {
		checkoutOpts = append(checkoutOpts, checkout.WithShippingFee(*cfg.ShippingFee))
	}
	if cfg.PaymentLatency > 0 {
		checkoutOpts = append(checkoutOpts, checkout.WithLatency(cfg.PaymentLatency))
	}

	if cfg.Metrics != nil {
		sessionOpts = append(sessionOpts, session.WithHook(cfg.Metrics.SessionHook()))
		cartOpts = append(cartOpts, cart.WithHook(cfg.Metrics.CartHook()))
		checkoutOpts = append(checkoutOpts, checkout.WithHook(cfg.Metrics.CheckoutHook()))
	}

	if cfg.Media != nil {
		if url, err := media.EnsureTemplateAvatar(cfg.Media); err != nil {
			cfg.Logger.Warn("shopkit: failed to seed template avatar", "error", err)
		} else {
			sessionOpts = append(sessionOpts, session.WithTemplateAvatar(url))
		}
	}

	sess := session.New(sessionOpts...)
	crt := cart.New(cartOpts...)

	return &App{
		Catalog:  cfg.Catalog,
		Session:  sess,
		Cart:     crt,
		Checkout: checkout.NewFlow(sess, crt, checkoutOpts...),
		Media:    cfg.Media,
		tracer:   cfg.Tracer,
		logger:   cfg.Logger,
	}
}

// Login authenticates through the session store, tracing the attempt
// when a Tracer is configured. Equivalent to App.Session.Login.
func (a *App) Login(ctx context.Context, email, password string) (session.User, error) {
	if a.tracer == nil {
		return a.Session.Login(ctx, email, password)
	}
	ctx, span := a.tracer.StartOp(ctx, "session.login", a.tracer.AuthAttrs(email)...)
	u, err := a.Session.Login(ctx, email, password)
	observe.EndOp(span, err)
	return u, err
}

// Register creates a user through the session store, tracing the
// attempt when a Tracer is configured.
func (a *App) Register(ctx context.Context, name, email, password string) (session.User, error) {
	if a.tracer == nil {
		return a.Session.Register(ctx, name, email, password)
	}
	ctx, span := a.tracer.StartOp(ctx, "session.register", a.tracer.AuthAttrs(email)...)
	u, err := a.Session.Register(ctx, name, email, password)
	observe.EndOp(span, err)
	return u, err
}

// Pay runs the checkout flow's simulated payment, tracing it when a
// Tracer is configured.
func (a *App) Pay(ctx context.Context) (checkout.Receipt, error) {
	if a.tracer == nil {
		return a.Checkout.Pay(ctx)
	}
	ctx, span := a.tracer.StartOp(ctx, "checkout.pay")
	r, err := a.Checkout.Pay(ctx)
	observe.EndOp(span, err)
	return r, err
}

// FromProject creates an App from a shopkit.json project
// configuration, constructing the storage backends it names.
func FromProject(pc *config.Config, opts ...ProjectOption) (*App, error) {
	po := projectOptions{logger: slog.Default()}
	for _, opt := range opts {
		opt(&po)
	}

	cfg := Config{
		AuthLatency:    pc.AuthLatency(),
		PaymentLatency: pc.PaymentLatency(),
		TaxRate:        pc.TaxRate,
		ShippingFee:    pc.ShippingFee,
		Metrics:        po.metrics,
		Tracer:         po.tracer,
		Logger:         po.logger,
	}

	switch pc.Storage.Kind {
	case "memory", "":
		cfg.Storage = session.NewMemoryStorage()
	case "file":
		fs, err := session.NewFileStorage(pc.Storage.Path)
		if err != nil {
			return nil, errors.New("E101").Wrap(err)
		}
		cfg.Storage = fs
	case "redis":
		if po.redis == nil {
			return nil, errors.New("E101").
				WithDetail("storage.kind is \"redis\" but no Redis client was provided")
		}
		var redisOpts []session.RedisStorageOption
		if pc.Storage.RedisKey != "" {
			redisOpts = append(redisOpts, session.WithRedisKey(pc.Storage.RedisKey))
		}
		cfg.Storage = session.NewRedisStorage(po.redis, redisOpts...)
	default:
		return nil, errors.New("E003").
			WithDetail("storage.kind must be memory, file, or redis")
	}

	switch pc.Media.Kind {
	case "disk":
		if pc.Media.Dir != "" {
			store, err := media.NewDiskStore(pc.Media.Dir, 0)
			if err != nil {
				return nil, errors.New("E101").Wrap(err)
			}
			cfg.Media = store
		}
	case "s3":
		if po.s3 == nil {
			return nil, errors.New("E101").
				WithDetail("media.kind is \"s3\" but no S3 client was provided")
		}
		cfg.Media = media.NewS3Store(po.s3, pc.Media.Bucket, "media/")
	}

	return New(cfg), nil
}

// ProjectOption injects clients that shopkit.json alone cannot
// construct.
type ProjectOption func(*projectOptions)

type projectOptions struct {
	logger  *slog.Logger
	metrics *observe.Metrics
	tracer  *observe.Tracer
	redis   session.RedisClient
	s3      *s3.Client
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) ProjectOption {
	return func(o *projectOptions) {
		o.logger = logger
	}
}

// WithMetrics records store operations into the given metrics.
func WithMetrics(m *observe.Metrics) ProjectOption {
	return func(o *projectOptions) {
		o.metrics = m
	}
}

// WithTracer wraps the App's Login, Register, and Pay in spans.
func WithTracer(t *observe.Tracer) ProjectOption {
	return func(o *projectOptions) {
		o.tracer = t
	}
}

// WithRedis provides the client for the "redis" storage backend.
func WithRedis(client session.RedisClient) ProjectOption {
	return func(o *projectOptions) {
		o.redis = client
	}
}

// WithS3 provides the client for the "s3" media backend.
func WithS3(client *s3.Client) ProjectOption {
	return func(o *projectOptions) {
		o.s3 = client
	}
}

// Subscribe registers fn to run after any store change: session, cart,
// or checkout completion. Returns an unsubscribe function.
func (a *App) Subscribe(fn func()) func() {
	unsubs := []func(){
		a.Session.Subscribe(fn),
		a.Cart.Subscribe(fn),
		a.Checkout.SubscribeSuccess(fn),
	}
	return func() {
		for _, unsub := range unsubs {
			unsub()
		}
	}
}

// Close releases the session storage.
func (a *App) Close() error {
	return a.Session.Close()
}
