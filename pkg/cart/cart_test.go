package cart

import (
	"testing"

	"github.com/shopkit-dev/shopkit/pkg/catalog"
)

var (
	mug      = catalog.Product{ID: "coffee-mug", Name: "Coffee Mug", Price: 12.99, Category: "Kitchenware"}
	notebook = catalog.Product{ID: "notebook", Name: "Notebook", Price: 4.99, Category: "Stationery"}
)

func TestAddAccumulatesQuantity(t *testing.T) {
	s := New()

	s.Add(mug)
	s.Add(mug)

	items := s.Items()
	if len(items) != 1 {
		t.Fatalf("Expected 1 line, got %d", len(items))
	}
	if items[0].Quantity != 2 {
		t.Errorf("Expected quantity 2, got %d", items[0].Quantity)
	}
	if got := s.TotalItems(); got != 2 {
		t.Errorf("Expected 2 total items, got %d", got)
	}
	if got := s.TotalPrice(); got != 2*mug.Price {
		t.Errorf("Expected %f, got %f", 2*mug.Price, got)
	}
}

func TestTotalsAcrossLines(t *testing.T) {
	s := New()

	s.Add(mug)
	s.Add(notebook)
	s.Increase(notebook.ID)
	s.Increase(notebook.ID)

	if got := s.TotalItems(); got != 4 {
		t.Errorf("Expected 4 total items, got %d", got)
	}
	want := mug.Price + 3*notebook.Price
	if got := s.TotalPrice(); got != want {
		t.Errorf("Expected %f, got %f", want, got)
	}
}

func TestDecreaseBelowOneRemovesLine(t *testing.T) {
	s := New()

	s.Add(mug)
	s.Increase(mug.ID)

	s.Decrease(mug.ID)
	if got := s.Items()[0].Quantity; got != 1 {
		t.Fatalf("Expected quantity 1, got %d", got)
	}

	// The chosen policy: decrementing a quantity-1 line removes it.
	s.Decrease(mug.ID)
	if s.Len() != 0 {
		t.Error("Expected line removed when quantity would drop below 1")
	}
}

func TestRemoveAbsentIsNoOp(t *testing.T) {
	s := New()
	s.Add(mug)

	notified := 0
	s.Subscribe(func() { notified++ })

	s.Remove("missing")
	if s.Len() != 1 {
		t.Error("Removing an absent id must not change the cart")
	}
	if notified != 0 {
		t.Error("A no-op remove must not notify subscribers")
	}

	s.Remove(mug.ID)
	if s.Len() != 0 {
		t.Error("Expected line removed")
	}
	if notified != 1 {
		t.Errorf("Expected 1 notification, got %d", notified)
	}
}

func TestIncreaseDecreaseAbsentIsNoOp(t *testing.T) {
	s := New()

	s.Increase("missing")
	s.Decrease("missing")

	if s.Len() != 0 || s.TotalItems() != 0 {
		t.Error("Adjusting an absent id must not create lines")
	}
}

func TestClear(t *testing.T) {
	s := New()
	s.Add(mug)
	s.Add(notebook)

	s.Clear()

	if s.Len() != 0 {
		t.Errorf("Expected empty cart, got %d lines", s.Len())
	}
	if s.TotalPrice() != 0 || s.TotalItems() != 0 {
		t.Error("Expected zero totals after clear")
	}
}

func TestSubscribe(t *testing.T) {
	s := New()

	notified := 0
	unsub := s.Subscribe(func() { notified++ })

	s.Add(mug)
	s.Increase(mug.ID)
	if notified != 2 {
		t.Errorf("Expected 2 notifications, got %d", notified)
	}

	unsub()
	s.Clear()
	if notified != 2 {
		t.Error("Expected no notification after unsubscribe")
	}
}

func TestHook(t *testing.T) {
	var ops []string
	s := New(WithHook(func(op string) { ops = append(ops, op) }))

	s.Add(mug)
	s.Decrease(mug.ID)

	if len(ops) != 2 || ops[0] != "add" || ops[1] != "decrease" {
		t.Errorf("Unexpected ops: %v", ops)
	}
}

func TestItemsReturnsCopy(t *testing.T) {
	s := New()
	s.Add(mug)

	items := s.Items()
	items[0].Quantity = 99

	if s.Items()[0].Quantity != 1 {
		t.Error("Cart state must not be mutable through Items()")
	}
}
