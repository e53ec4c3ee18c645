// Package inspector serves a development-time HTTP view into the
// storefront stores: JSON state snapshots, a WebSocket feed that pushes
// a fresh snapshot on every store change, and Prometheus metrics.
package inspector

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/shopkit-dev/shopkit/pkg/cart"
	"github.com/shopkit-dev/shopkit/pkg/catalog"
	"github.com/shopkit-dev/shopkit/pkg/checkout"
	"github.com/shopkit-dev/shopkit/pkg/session"
)

// Snapshot is the JSON view of the current store state.
type Snapshot struct {
	Status         string                  `json:"status"`
	User           *session.User           `json:"user,omitempty"`
	Addresses      []session.Address       `json:"addresses,omitempty"`
	PaymentMethods []session.PaymentMethod `json:"paymentMethods,omitempty"`
	Orders         []session.Order         `json:"orders,omitempty"`
	CartItems      []cart.Item             `json:"cartItems"`
	CartCount      int                     `json:"cartCount"`
	CartTotal      float64                 `json:"cartTotal"`
	Checkout       checkout.Summary        `json:"checkout"`
	Processing     bool                    `json:"processing"`
	Time           time.Time               `json:"time"`
}

// Config configures the inspector.
type Config struct {
	// Addr is the listen address (default: "127.0.0.1:8990").
	Addr string

	// Logger is the structured logger (default: slog.Default()).
	Logger *slog.Logger

	// Gatherer serves /metrics (default: prometheus.DefaultGatherer).
	Gatherer prometheus.Gatherer
}

// Option configures the inspector.
type Option func(*Config)

// WithAddr sets the listen address.
func WithAddr(addr string) Option {
	return func(c *Config) {
		c.Addr = addr
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

// WithGatherer sets the metrics gatherer served on /metrics.
func WithGatherer(g prometheus.Gatherer) Option {
	return func(c *Config) {
		c.Gatherer = g
	}
}

// Inspector exposes the stores over HTTP.
type Inspector struct {
	cfg      Config
	session  *session.Store
	cart     *cart.Store
	checkout *checkout.Flow
	catalog  *catalog.Catalog

	upgrader websocket.Upgrader
	mu       sync.RWMutex
	clients  map[*websocket.Conn]bool

	httpServer  *http.Server
	unsubscribe []func()
}

// New creates an inspector over the given stores.
func New(sess *session.Store, c *cart.Store, flow *checkout.Flow, cat *catalog.Catalog, opts ...Option) *Inspector {
	cfg := Config{
		Addr:     "127.0.0.1:8990",
		Logger:   slog.Default(),
		Gatherer: prometheus.DefaultGatherer,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	ins := &Inspector{
		cfg:      cfg,
		session:  sess,
		cart:     c,
		checkout: flow,
		catalog:  cat,
		clients:  make(map[*websocket.Conn]bool),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true // Local development tool
			},
		},
	}

	ins.unsubscribe = append(ins.unsubscribe,
		sess.Subscribe(ins.broadcast),
		c.Subscribe(ins.broadcast),
		flow.SubscribeSuccess(ins.broadcast),
	)
	return ins
}

// Handler returns the HTTP handler serving the inspector routes.
func (i *Inspector) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/state", i.handleState)
	r.Get("/catalog", i.handleCatalog)
	r.Get("/live", i.handleLive)
	r.Handle("/metrics", promhttp.HandlerFor(i.cfg.Gatherer, promhttp.HandlerOpts{}))

	return r
}

// Start serves the inspector until ctx is cancelled.
func (i *Inspector) Start(ctx context.Context) error {
	i.httpServer = &http.Server{
		Addr:    i.cfg.Addr,
		Handler: i.Handler(),
	}

	errCh := make(chan error, 1)
	go func() {
		i.cfg.Logger.Info("inspector listening", "addr", i.cfg.Addr)
		if err := i.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return i.httpServer.Shutdown(shutdownCtx)
	}
}

// Close detaches the inspector from the stores and drops all
// WebSocket clients.
func (i *Inspector) Close() {
	for _, unsub := range i.unsubscribe {
		unsub()
	}

	i.mu.Lock()
	for conn := range i.clients {
		conn.Close()
	}
	i.clients = make(map[*websocket.Conn]bool)
	i.mu.Unlock()
}

func (i *Inspector) snapshot() Snapshot {
	return Snapshot{
		Status:         i.session.Status().String(),
		User:           i.session.User(),
		Addresses:      i.session.Addresses(),
		PaymentMethods: i.session.PaymentMethods(),
		Orders:         i.session.Orders(),
		CartItems:      i.cart.Items(),
		CartCount:      i.cart.TotalItems(),
		CartTotal:      i.cart.TotalPrice(),
		Checkout:       i.checkout.Summary(),
		Processing:     i.checkout.Processing(),
		Time:           time.Now(),
	}
}

func (i *Inspector) handleState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, i.snapshot())
}

func (i *Inspector) handleCatalog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, i.catalog.All())
}

// handleLive upgrades to WebSocket and pushes a snapshot on every
// store change. The initial snapshot is sent immediately.
func (i *Inspector) handleLive(w http.ResponseWriter, r *http.Request) {
	conn, err := i.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}

	i.mu.Lock()
	i.clients[conn] = true
	i.mu.Unlock()

	if err := conn.WriteJSON(i.snapshot()); err != nil {
		i.drop(conn)
		return
	}

	// Drain reads until the client disconnects.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
	i.drop(conn)
}

// broadcast pushes the current snapshot to all connected clients.
func (i *Inspector) broadcast() {
	snap := i.snapshot()

	i.mu.RLock()
	clients := make([]*websocket.Conn, 0, len(i.clients))
	for conn := range i.clients {
		clients = append(clients, conn)
	}
	i.mu.RUnlock()

	for _, conn := range clients {
		if err := conn.WriteJSON(snap); err != nil {
			i.drop(conn)
		}
	}
}

func (i *Inspector) drop(conn *websocket.Conn) {
	i.mu.Lock()
	delete(i.clients, conn)
	i.mu.Unlock()
	conn.Close()
}

// ClientCount returns the number of connected WebSocket clients.
func (i *Inspector) ClientCount() int {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return len(i.clients)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
