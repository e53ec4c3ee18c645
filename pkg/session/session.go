package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/shopkit-dev/shopkit/pkg/reactive"
)

// Status is the identity state machine's current state.
type Status int

const (
	// StatusAnonymous means no user is logged in.
	StatusAnonymous Status = iota

	// StatusAuthenticating means a login or register attempt is in flight.
	StatusAuthenticating

	// StatusAuthenticated means a user is logged in.
	StatusAuthenticated
)

// String returns a human-readable name for the status.
func (s Status) String() string {
	switch s {
	case StatusAnonymous:
		return "anonymous"
	case StatusAuthenticating:
		return "authenticating"
	case StatusAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// Hook observes completed store operations. Used by the observe
// package to record metrics without coupling this package to it.
type Hook func(op string, err error, d time.Duration)

// credentials is the login argument.
type credentials struct {
	email    string
	password string
}

// registration is the register argument.
type registration struct {
	name     string
	email    string
	password string
}

// Store owns the identity and its dependent collections. Construct one
// per process with New and inject it into consumers; there is no
// package-level singleton.
type Store struct {
	storage Storage
	logger  *slog.Logger
	latency time.Duration
	avatar  string
	hook    Hook

	user      *reactive.Signal[*User]
	status    *reactive.Signal[Status]
	loading   *reactive.Signal[bool]
	addresses *reactive.Signal[[]Address]
	payments  *reactive.Signal[[]PaymentMethod]
	orders    *reactive.Signal[[]Order]

	login    *reactive.Action[credentials, User]
	register *reactive.Action[registration, User]

	// authBusy guards login and register together: while either is in
	// flight the other is dropped with ErrBusy, not just a duplicate of
	// the same operation.
	authBusy atomic.Bool

	// prevStatus is captured when an attempt starts so a failed attempt
	// can revert. Safe without locking: authBusy guarantees at most one
	// attempt in flight across both actions.
	prevStatus Status

	idSeq atomic.Uint64
}

// Option configures a Store.
type Option func(*Store)

// WithStorage sets the persistence backend for the identity key.
// Default: an in-memory storage.
func WithStorage(storage Storage) Option {
	return func(s *Store) { s.storage = storage }
}

// WithLogger sets the structured logger. Default: slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) { s.logger = logger }
}

// WithLatency sets the simulated network latency for login and
// register. Default: 1 second, matching the storefront's fixed delay.
func WithLatency(d time.Duration) Option {
	return func(s *Store) { s.latency = d }
}

// WithTemplateAvatar sets the avatar assigned to newly registered
// users. Default: the seed placeholder.
func WithTemplateAvatar(url string) Option {
	return func(s *Store) { s.avatar = url }
}

// WithHook registers an operation hook.
func WithHook(h Hook) Option {
	return func(s *Store) { s.hook = h }
}

// New creates a Store and runs the startup restore: if a parseable
// identity record exists in storage the session starts authenticated
// with re-seeded collections, otherwise anonymous. The loading flag is
// true until the restore check completes.
func New(opts ...Option) *Store {
	s := &Store{
		latency: time.Second,
		avatar:  avatarPlaceholder,

		user:      reactive.NewSignal[*User](nil),
		status:    reactive.NewSignal(StatusAnonymous),
		loading:   reactive.NewSignal(true),
		addresses: reactive.NewSignal([]Address(nil)),
		payments:  reactive.NewSignal([]PaymentMethod(nil)),
		orders:    reactive.NewSignal([]Order(nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.storage == nil {
		s.storage = NewMemoryStorage()
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	s.idSeq.Store(uint64(time.Now().UnixMilli()))

	s.login = reactive.NewAction(s.doLogin,
		reactive.WithLatency(s.latency),
		reactive.WithName("session:login"),
	).OnStart(s.beginAuth).OnSuccess(s.finishLogin).OnError(s.failAuth)

	s.register = reactive.NewAction(s.doRegister,
		reactive.WithLatency(s.latency),
		reactive.WithName("session:register"),
	).OnStart(s.beginAuth).OnSuccess(s.finishRegister).OnError(s.failAuth)

	s.restore()
	return s
}

// Login authenticates with the given credentials. Placeholder
// validation only: any non-empty email and password succeed and yield
// the seeded identity. The call blocks for the configured latency;
// while any auth attempt is in flight — login or register — further
// calls fail with ErrBusy without starting an attempt. A started
// attempt cannot be cancelled.
func (s *Store) Login(ctx context.Context, email, password string) (User, error) {
	start := time.Now()
	if !s.authBusy.CompareAndSwap(false, true) {
		s.observe("login", ErrBusy, time.Since(start))
		return User{}, ErrBusy
	}
	defer s.authBusy.Store(false)

	u, err := s.login.Do(ctx, credentials{email: email, password: password})
	if errors.Is(err, reactive.ErrBusy) {
		err = ErrBusy
	}
	s.observe("login", err, time.Since(start))
	return u, err
}

// Register creates a new user from the supplied fields over the
// template identity. The new user starts with empty address, payment
// and order collections. Same async contract as Login.
func (s *Store) Register(ctx context.Context, name, email, password string) (User, error) {
	start := time.Now()
	if !s.authBusy.CompareAndSwap(false, true) {
		s.observe("register", ErrBusy, time.Since(start))
		return User{}, ErrBusy
	}
	defer s.authBusy.Store(false)

	u, err := s.register.Do(ctx, registration{name: name, email: email, password: password})
	if errors.Is(err, reactive.ErrBusy) {
		err = ErrBusy
	}
	s.observe("register", err, time.Since(start))
	return u, err
}

// Logout clears the user and all dependent collections and removes the
// persisted identity. Synchronous. Cart state is untouched: visitors
// keep their cart across logout.
func (s *Store) Logout() {
	reactive.Batch(func() {
		s.user.Set(nil)
		s.status.Set(StatusAnonymous)
		s.addresses.Set(nil)
		s.payments.Set(nil)
		s.orders.Set(nil)
	})

	if err := s.storage.Delete(context.Background()); err != nil {
		s.logger.Warn("session: failed to remove persisted identity", "error", err)
	}
	s.observe("logout", nil, 0)
}

// AddAddress appends a new address with a fresh id. If the address is
// marked default, or it is the first address, every existing address
// is demoted to non-default first.
func (s *Store) AddAddress(a Address) {
	a.ID = fmt.Sprintf("addr%d", s.idSeq.Add(1))

	s.addresses.Update(func(cur []Address) []Address {
		out := cloneAddresses(cur)
		if a.IsDefault || len(out) == 0 {
			for i := range out {
				out[i].IsDefault = false
			}
		}
		return append(out, a)
	})
	s.observe("add_address", nil, 0)
}

// AddPaymentMethod appends a new payment method with a fresh id,
// applying the same default-demotion rule to its own collection.
func (s *Store) AddPaymentMethod(m PaymentMethod) {
	m.ID = fmt.Sprintf("pm%d", s.idSeq.Add(1))

	s.payments.Update(func(cur []PaymentMethod) []PaymentMethod {
		out := clonePaymentMethods(cur)
		if m.IsDefault || len(out) == 0 {
			for i := range out {
				out[i].IsDefault = false
			}
		}
		return append(out, m)
	})
	s.observe("add_payment_method", nil, 0)
}

// User returns a copy of the current user, or nil when anonymous.
func (s *Store) User() *User {
	u := s.user.Get()
	if u == nil {
		return nil
	}
	c := *u
	return &c
}

// IsAuthenticated reports whether a user is logged in.
func (s *Store) IsAuthenticated() bool {
	return s.user.Get() != nil
}

// Status returns the identity state machine's current state.
func (s *Store) Status() Status {
	return s.status.Get()
}

// Loading reports whether the startup restore or an auth attempt is in
// progress. Callers use it to disable submission UI.
func (s *Store) Loading() bool {
	return s.loading.Get()
}

// Addresses returns a copy of the address collection.
func (s *Store) Addresses() []Address {
	return cloneAddresses(s.addresses.Get())
}

// PaymentMethods returns a copy of the payment method collection.
func (s *Store) PaymentMethods() []PaymentMethod {
	return clonePaymentMethods(s.payments.Get())
}

// Orders returns a copy of the order history.
func (s *Store) Orders() []Order {
	return cloneOrders(s.orders.Get())
}

// DefaultAddress returns the address flagged as default, if any.
func (s *Store) DefaultAddress() (Address, bool) {
	for _, a := range s.addresses.Get() {
		if a.IsDefault {
			return a, true
		}
	}
	return Address{}, false
}

// DefaultPaymentMethod returns the payment method flagged as default,
// if any.
func (s *Store) DefaultPaymentMethod() (PaymentMethod, bool) {
	for _, m := range s.payments.Get() {
		if m.IsDefault {
			return m, true
		}
	}
	return PaymentMethod{}, false
}

// Subscribe registers fn to run on every state change (identity,
// collections, or the loading flag) and returns the unsubscribe
// function. Changes batched together notify once.
func (s *Store) Subscribe(fn func()) func() {
	l := reactive.NewWatcher(fn)
	unsubs := []func(){
		s.user.Subscribe(l),
		s.status.Subscribe(l),
		s.loading.Subscribe(l),
		s.addresses.Subscribe(l),
		s.payments.Subscribe(l),
		s.orders.Subscribe(l),
	}
	return func() {
		for _, unsub := range unsubs {
			unsub()
		}
	}
}

// Close releases the persistence backend.
func (s *Store) Close() error {
	return s.storage.Close()
}

func (s *Store) doLogin(ctx context.Context, c credentials) (User, error) {
	if c.email == "" || c.password == "" {
		return User{}, ErrInvalidCredentials
	}

	u := seedUser
	s.persist(ctx, u)
	return u, nil
}

func (s *Store) doRegister(ctx context.Context, r registration) (User, error) {
	if r.name == "" || r.email == "" || r.password == "" {
		return User{}, ErrInvalidRegistration
	}

	// New user over the template identity: supplied name and email,
	// template avatar.
	u := seedUser
	u.Name = r.name
	u.Email = r.email
	u.Avatar = s.avatar
	s.persist(ctx, u)
	return u, nil
}

func (s *Store) beginAuth() {
	s.prevStatus = s.status.Get()
	reactive.Batch(func() {
		s.status.Set(StatusAuthenticating)
		s.loading.Set(true)
	})
}

func (s *Store) finishLogin(u User) {
	reactive.Batch(func() {
		s.user.Set(&u)
		s.addresses.Set(cloneAddresses(seedAddresses))
		s.payments.Set(clonePaymentMethods(seedPaymentMethods))
		s.orders.Set(cloneOrders(seedOrders))
		s.status.Set(StatusAuthenticated)
		s.loading.Set(false)
	})
}

func (s *Store) finishRegister(u User) {
	reactive.Batch(func() {
		s.user.Set(&u)
		s.addresses.Set([]Address{})
		s.payments.Set([]PaymentMethod{})
		s.orders.Set([]Order{})
		s.status.Set(StatusAuthenticated)
		s.loading.Set(false)
	})
}

func (s *Store) failAuth(err error) {
	reactive.Batch(func() {
		s.status.Set(s.prevStatus)
		s.loading.Set(false)
	})
}

// persist writes the identity to the client-local key. Persistence is
// best-effort: a write failure is logged, never surfaced, because the
// session itself is already established in memory.
func (s *Store) persist(ctx context.Context, u User) {
	data, err := serializeUser(u)
	if err != nil {
		s.logger.Warn("session: failed to serialize identity", "error", err)
		return
	}
	if err := s.storage.Save(ctx, data); err != nil {
		s.logger.Warn("session: failed to persist identity", "error", err)
	}
}

// restore implements the startup check: load the persisted identity and
// re-seed the collections. A present-but-unparseable record is logged
// and recovered by staying anonymous.
func (s *Store) restore() {
	defer s.loading.Set(false)

	data, err := s.storage.Load(context.Background())
	if err != nil {
		s.logger.Warn("session: failed to read persisted identity", "error", err)
		return
	}
	if data == nil {
		return
	}

	u, err := deserializeUser(data)
	if err != nil {
		s.logger.Error("session: failed to parse persisted identity", "error", err)
		return
	}

	reactive.Batch(func() {
		s.user.Set(&u)
		s.addresses.Set(cloneAddresses(seedAddresses))
		s.payments.Set(clonePaymentMethods(seedPaymentMethods))
		s.orders.Set(cloneOrders(seedOrders))
		s.status.Set(StatusAuthenticated)
	})
}

func (s *Store) observe(op string, err error, d time.Duration) {
	if s.hook != nil {
		s.hook(op, err, d)
	}
}
