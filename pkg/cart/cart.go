// Package cart models the visitor's purchase intent list. The cart is
// independent of identity: it survives logout and is only emptied by an
// explicit clear or a successful checkout.
package cart

import (
	"github.com/shopkit-dev/shopkit/pkg/catalog"
	"github.com/shopkit-dev/shopkit/pkg/reactive"
)

// Item is one cart line: a product and its quantity. Quantity is
// always >= 1; decrementing a quantity-1 line removes it instead.
type Item struct {
	Product  catalog.Product `json:"product"`
	Quantity int             `json:"quantity"`
}

// Hook observes completed cart operations, keyed by operation name.
type Hook func(op string)

// Store owns the cart line items, keyed by product id. Not persisted:
// a fresh process starts with an empty cart.
type Store struct {
	items *reactive.Signal[[]Item]
	hook  Hook

	totalPrice *reactive.Memo[float64]
	totalItems *reactive.Memo[int]
}

// Option configures a Store.
type Option func(*Store)

// WithHook registers an operation hook.
func WithHook(h Hook) Option {
	return func(s *Store) { s.hook = h }
}

// New creates an empty cart store.
func New(opts ...Option) *Store {
	s := &Store{
		items: reactive.NewSignal([]Item(nil)),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.totalPrice = reactive.NewMemo(func() float64 {
		var sum float64
		for _, it := range s.items.Get() {
			sum += it.Product.Price * float64(it.Quantity)
		}
		return sum
	}, s.items)

	s.totalItems = reactive.NewMemo(func() int {
		var n int
		for _, it := range s.items.Get() {
			n += it.Quantity
		}
		return n
	}, s.items)

	return s
}

// Add puts the product in the cart: an existing line's quantity is
// incremented by one, otherwise a new line starts at quantity 1.
func (s *Store) Add(p catalog.Product) {
	s.items.Update(func(cur []Item) []Item {
		out := cloneItems(cur)
		for i := range out {
			if out[i].Product.ID == p.ID {
				out[i].Quantity++
				return out
			}
		}
		return append(out, Item{Product: p, Quantity: 1})
	})
	s.observe("add")
}

// Remove deletes the line for the given product id. Removing an absent
// id is a no-op, not an error.
func (s *Store) Remove(id string) {
	s.items.Update(func(cur []Item) []Item {
		out := make([]Item, 0, len(cur))
		for _, it := range cur {
			if it.Product.ID != id {
				out = append(out, it)
			}
		}
		if len(out) == len(cur) {
			return cur
		}
		return out
	})
	s.observe("remove")
}

// Increase increments the line's quantity by one. No-op for an absent id.
func (s *Store) Increase(id string) {
	s.items.Update(func(cur []Item) []Item {
		out := cloneItems(cur)
		for i := range out {
			if out[i].Product.ID == id {
				out[i].Quantity++
				return out
			}
		}
		return cur
	})
	s.observe("increase")
}

// Decrease decrements the line's quantity by one. A line at quantity 1
// is removed: quantities below 1 do not exist. No-op for an absent id.
func (s *Store) Decrease(id string) {
	s.items.Update(func(cur []Item) []Item {
		for i := range cur {
			if cur[i].Product.ID != id {
				continue
			}
			if cur[i].Quantity <= 1 {
				out := cloneItems(cur)
				return append(out[:i], out[i+1:]...)
			}
			out := cloneItems(cur)
			out[i].Quantity--
			return out
		}
		return cur
	})
	s.observe("decrease")
}

// Clear empties the cart.
func (s *Store) Clear() {
	s.items.Set(nil)
	s.observe("clear")
}

// Items returns a copy of the cart lines in insertion order.
func (s *Store) Items() []Item {
	return cloneItems(s.items.Get())
}

// Len returns the number of distinct lines.
func (s *Store) Len() int {
	return len(s.items.Get())
}

// TotalPrice returns the sum of price x quantity over all lines.
func (s *Store) TotalPrice() float64 {
	return s.totalPrice.Get()
}

// TotalItems returns the sum of quantities over all lines.
func (s *Store) TotalItems() int {
	return s.totalItems.Get()
}

// Subscribe registers fn to run on every cart change and returns the
// unsubscribe function.
func (s *Store) Subscribe(fn func()) func() {
	return s.items.Watch(fn)
}

func (s *Store) observe(op string) {
	if s.hook != nil {
		s.hook(op)
	}
}

func cloneItems(src []Item) []Item {
	out := make([]Item, len(src))
	copy(out, src)
	return out
}
