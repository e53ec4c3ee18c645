package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

// newTestStore builds a store with no simulated latency and an
// in-memory backend shared with the caller.
func newTestStore(t *testing.T) (*Store, *MemoryStorage) {
	t.Helper()
	storage := NewMemoryStorage()
	s := New(WithStorage(storage), WithLatency(0))
	return s, storage
}

func TestLoginValidation(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	if _, err := s.Login(ctx, "", "x"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("Empty email: expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := s.Login(ctx, "x", ""); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("Empty password: expected ErrInvalidCredentials, got %v", err)
	}
	if s.IsAuthenticated() {
		t.Error("Failed login must leave the session anonymous")
	}
	if s.Status() != StatusAnonymous {
		t.Errorf("Expected anonymous after failure, got %s", s.Status())
	}
}

func TestLoginSuccess(t *testing.T) {
	s, storage := newTestStore(t)

	u, err := s.Login(context.Background(), "a@b.com", "pw")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if u.ID != "user1" || u.Name != "John Doe" || u.Email != "john.doe@example.com" {
		t.Errorf("Unexpected user: %+v", u)
	}
	if !s.IsAuthenticated() {
		t.Error("Expected authenticated session")
	}
	if s.Status() != StatusAuthenticated {
		t.Errorf("Expected authenticated status, got %s", s.Status())
	}

	if got := len(s.Addresses()); got != 2 {
		t.Errorf("Expected 2 seeded addresses, got %d", got)
	}
	if got := len(s.PaymentMethods()); got != 2 {
		t.Errorf("Expected 2 seeded payment methods, got %d", got)
	}
	if got := len(s.Orders()); got != 2 {
		t.Errorf("Expected 2 seeded orders, got %d", got)
	}

	// Identity is persisted to the client-local key.
	data, err := storage.Load(context.Background())
	if err != nil || data == nil {
		t.Fatalf("Expected persisted identity, got data=%v err=%v", data, err)
	}
}

func TestRegister(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	t.Run("Validation", func(t *testing.T) {
		for _, c := range []struct{ name, email, pw string }{
			{"", "jane@x.com", "pw"},
			{"Jane", "", "pw"},
			{"Jane", "jane@x.com", ""},
		} {
			if _, err := s.Register(ctx, c.name, c.email, c.pw); !errors.Is(err, ErrInvalidRegistration) {
				t.Errorf("Register(%q,%q,%q): expected ErrInvalidRegistration, got %v", c.name, c.email, c.pw, err)
			}
		}
	})

	t.Run("Success", func(t *testing.T) {
		u, err := s.Register(ctx, "Jane", "jane@x.com", "pw")
		if err != nil {
			t.Fatalf("Register failed: %v", err)
		}
		if u.Name != "Jane" || u.Email != "jane@x.com" {
			t.Errorf("Expected supplied name/email, got %+v", u)
		}
		if len(s.Addresses()) != 0 || len(s.PaymentMethods()) != 0 || len(s.Orders()) != 0 {
			t.Error("New user must start with empty collections")
		}
	})
}

func TestLogout(t *testing.T) {
	s, storage := newTestStore(t)
	ctx := context.Background()

	if _, err := s.Login(ctx, "a@b.com", "pw"); err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	s.Logout()

	if s.User() != nil {
		t.Error("Expected nil user after logout")
	}
	if s.Status() != StatusAnonymous {
		t.Errorf("Expected anonymous, got %s", s.Status())
	}
	if len(s.Addresses()) != 0 || len(s.PaymentMethods()) != 0 || len(s.Orders()) != 0 {
		t.Error("Logout must clear all dependent collections")
	}

	data, err := storage.Load(ctx)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if data != nil {
		t.Error("Logout must remove the persisted identity")
	}
}

func TestAddAddressSingleDefaultInvariant(t *testing.T) {
	s, _ := newTestStore(t)

	countDefaults := func() int {
		n := 0
		for _, a := range s.Addresses() {
			if a.IsDefault {
				n++
			}
		}
		return n
	}

	// Arbitrary interleaving of default and non-default adds.
	s.AddAddress(Address{Name: "Home", Line1: "1 Main St", IsDefault: false})
	s.AddAddress(Address{Name: "Work", Line1: "2 Biz Ave", IsDefault: true})
	s.AddAddress(Address{Name: "Cabin", Line1: "3 Lake Rd", IsDefault: false})
	s.AddAddress(Address{Name: "New Home", Line1: "4 Oak St", IsDefault: true})

	if got := len(s.Addresses()); got != 4 {
		t.Fatalf("Expected 4 addresses, got %d", got)
	}
	if countDefaults() > 1 {
		t.Errorf("Invariant violated: %d defaults", countDefaults())
	}
	addrs := s.Addresses()
	if !addrs[3].IsDefault {
		t.Error("Most recently added default address must be the default")
	}

	// IDs are unique.
	seen := make(map[string]bool)
	for _, a := range addrs {
		if seen[a.ID] {
			t.Errorf("Duplicate address id %s", a.ID)
		}
		seen[a.ID] = true
	}
}

func TestAddPaymentMethodSingleDefaultInvariant(t *testing.T) {
	s, _ := newTestStore(t)

	s.AddPaymentMethod(PaymentMethod{Type: PaymentCard, Name: "Visa", Last4: "4242", IsDefault: true})
	s.AddPaymentMethod(PaymentMethod{Type: PaymentPayPal, Name: "PayPal", IsDefault: true})
	s.AddPaymentMethod(PaymentMethod{Type: PaymentCard, Name: "Amex", Last4: "0005", IsDefault: false})

	defaults := 0
	for _, m := range s.PaymentMethods() {
		if m.IsDefault {
			defaults++
		}
	}
	if defaults != 1 {
		t.Errorf("Expected exactly 1 default payment method, got %d", defaults)
	}
}

func TestDefaultDemotionIsPerCollection(t *testing.T) {
	s, _ := newTestStore(t)

	s.AddAddress(Address{Name: "Home", IsDefault: true})
	s.AddPaymentMethod(PaymentMethod{Type: PaymentCard, Name: "Visa", IsDefault: true})

	if _, ok := s.DefaultAddress(); !ok {
		t.Error("Adding a default payment method must not demote the default address")
	}
	if _, ok := s.DefaultPaymentMethod(); !ok {
		t.Error("Expected a default payment method")
	}
}

func TestRestoreReseedsCollections(t *testing.T) {
	storage := NewMemoryStorage()

	first := New(WithStorage(storage), WithLatency(0))
	if _, err := first.Login(context.Background(), "a@b.com", "pw"); err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	// Simulate restart: same storage, fresh store.
	second := New(WithStorage(storage), WithLatency(0))

	if !second.IsAuthenticated() {
		t.Fatal("Expected restored session to be authenticated")
	}
	if second.Loading() {
		t.Error("Loading must be false once the startup check completes")
	}
	u := second.User()
	if u == nil || u.ID != "user1" {
		t.Errorf("Expected restored seed identity, got %+v", u)
	}
	if len(second.Addresses()) != 2 || len(second.PaymentMethods()) != 2 || len(second.Orders()) != 2 {
		t.Error("Restore must re-seed the three collections from fixed mock data")
	}
}

func TestRestoreCorruptRecordStaysAnonymous(t *testing.T) {
	storage := NewMemoryStorage()
	if err := storage.Save(context.Background(), []byte("{not json")); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	s := New(WithStorage(storage), WithLatency(0))

	if s.IsAuthenticated() {
		t.Error("Corrupt persisted identity must be recovered as anonymous")
	}
	if s.Loading() {
		t.Error("Loading must be false after the startup check")
	}
}

func TestDuplicateLoginDropped(t *testing.T) {
	storage := NewMemoryStorage()
	s := New(WithStorage(storage), WithLatency(30*time.Millisecond))
	ctx := context.Background()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if _, err := s.Login(ctx, "a@b.com", "pw"); err != nil {
			t.Errorf("First login failed: %v", err)
		}
	}()

	deadline := time.Now().Add(time.Second)
	for s.Status() != StatusAuthenticating {
		if time.Now().After(deadline) {
			t.Fatal("Login never entered authenticating state")
		}
		time.Sleep(time.Millisecond)
	}
	if !s.Loading() {
		t.Error("Loading must be true while an attempt is in flight")
	}

	if _, err := s.Login(ctx, "c@d.com", "pw"); !errors.Is(err, ErrBusy) {
		t.Errorf("Expected ErrBusy for duplicate submission, got %v", err)
	}

	wg.Wait()
	if s.Status() != StatusAuthenticated {
		t.Errorf("Expected authenticated, got %s", s.Status())
	}
}

func TestCrossAuthAttemptsDropped(t *testing.T) {
	storage := NewMemoryStorage()
	s := New(WithStorage(storage), WithLatency(30*time.Millisecond))
	ctx := context.Background()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if _, err := s.Register(ctx, "Jane", "jane@example.com", "pw"); err != nil {
			t.Errorf("Register failed: %v", err)
		}
	}()

	deadline := time.Now().Add(time.Second)
	for s.Status() != StatusAuthenticating {
		if time.Now().After(deadline) {
			t.Fatal("Register never entered authenticating state")
		}
		time.Sleep(time.Millisecond)
	}

	// A login while a register is in flight is dropped too, not just a
	// duplicate of the same operation.
	if _, err := s.Login(ctx, "a@b.com", "pw"); !errors.Is(err, ErrBusy) {
		t.Errorf("Expected ErrBusy for login during register, got %v", err)
	}
	if _, err := s.Register(ctx, "Bob", "bob@example.com", "pw"); !errors.Is(err, ErrBusy) {
		t.Errorf("Expected ErrBusy for concurrent register, got %v", err)
	}

	wg.Wait()
	if s.Status() != StatusAuthenticated {
		t.Errorf("Expected authenticated, got %s", s.Status())
	}
	if u := s.User(); u == nil || u.Email != "jane@example.com" {
		t.Errorf("User() = %+v, want the registered identity", u)
	}
}

func TestFailedLoginRevertsStatus(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	// From anonymous.
	s.Login(ctx, "", "")
	if s.Status() != StatusAnonymous {
		t.Errorf("Expected revert to anonymous, got %s", s.Status())
	}

	// From authenticated: a failed re-login keeps the session.
	if _, err := s.Login(ctx, "a@b.com", "pw"); err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	s.Login(ctx, "", "")
	if s.Status() != StatusAuthenticated {
		t.Errorf("Expected revert to authenticated, got %s", s.Status())
	}
	if s.User() == nil {
		t.Error("Failed re-login must not clear the current user")
	}
}

func TestSubscribeNotifiesOncePerBatch(t *testing.T) {
	s, _ := newTestStore(t)

	notified := 0
	unsub := s.Subscribe(func() { notified++ })

	// Login mutates user, three collections, status, and loading in a
	// single batch.
	if _, err := s.Login(context.Background(), "a@b.com", "pw"); err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	after := notified
	if after == 0 {
		t.Fatal("Expected subscriber notification on login")
	}

	unsub()
	s.Logout()
	if notified != after {
		t.Error("Expected no notifications after unsubscribe")
	}
}

func TestFileStorageRoundTrip(t *testing.T) {
	path := t.TempDir() + "/user.json"

	storage, err := NewFileStorage(path)
	if err != nil {
		t.Fatalf("NewFileStorage failed: %v", err)
	}
	ctx := context.Background()

	// Missing file is not an error.
	data, err := storage.Load(ctx)
	if err != nil || data != nil {
		t.Fatalf("Expected (nil, nil) for missing record, got (%v, %v)", data, err)
	}

	s := New(WithStorage(storage), WithLatency(0))
	if _, err := s.Login(ctx, "a@b.com", "pw"); err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	restored := New(WithStorage(storage), WithLatency(0))
	if !restored.IsAuthenticated() {
		t.Error("Expected identity restored from file storage")
	}

	s.Logout()
	data, err = storage.Load(ctx)
	if err != nil || data != nil {
		t.Errorf("Expected record removed on logout, got (%v, %v)", data, err)
	}
}

func TestMemoryStorageClosed(t *testing.T) {
	storage := NewMemoryStorage()
	storage.Close()

	ctx := context.Background()
	if err := storage.Save(ctx, []byte("x")); err == nil {
		t.Error("Expected error saving to closed storage")
	}
	if _, err := storage.Load(ctx); err == nil {
		t.Error("Expected error loading from closed storage")
	}
}

func TestHookObservesOperations(t *testing.T) {
	var ops []string
	storage := NewMemoryStorage()
	s := New(WithStorage(storage), WithLatency(0), WithHook(func(op string, err error, d time.Duration) {
		ops = append(ops, op)
	}))

	s.Login(context.Background(), "a@b.com", "pw")
	s.AddAddress(Address{Name: "Home"})
	s.Logout()

	want := []string{"login", "add_address", "logout"}
	if len(ops) != len(want) {
		t.Fatalf("Expected ops %v, got %v", want, ops)
	}
	for i := range want {
		if ops[i] != want[i] {
			t.Errorf("Op %d: expected %s, got %s", i, want[i], ops[i])
		}
	}
}
