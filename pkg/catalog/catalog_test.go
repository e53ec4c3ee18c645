package catalog

import "testing"

func TestDefaultCatalog(t *testing.T) {
	c := Default()

	if c.Len() != 12 {
		t.Errorf("Expected 12 seed products, got %d", c.Len())
	}

	t.Run("ByID", func(t *testing.T) {
		p, ok := c.ByID("coffee-mug")
		if !ok {
			t.Fatal("coffee-mug not found")
		}
		if p.Name != "Coffee Mug" || p.Price != 12.99 {
			t.Errorf("Unexpected product: %+v", p)
		}

		if _, ok := c.ByID("missing"); ok {
			t.Error("Expected lookup miss for unknown id")
		}
	})

	t.Run("ByCategory", func(t *testing.T) {
		electronics := c.ByCategory("Electronics")
		if len(electronics) != 5 {
			t.Errorf("Expected 5 electronics, got %d", len(electronics))
		}
		if len(c.ByCategory("Nope")) != 0 {
			t.Error("Expected no products for unknown category")
		}
	})

	t.Run("Categories", func(t *testing.T) {
		cats := c.Categories()
		want := []string{"Accessories", "Audio", "Electronics", "Home", "Kitchenware", "Stationery"}
		if len(cats) != len(want) {
			t.Fatalf("Expected %d categories, got %d: %v", len(want), len(cats), cats)
		}
		for i, cat := range want {
			if cats[i] != cat {
				t.Errorf("Category %d: expected %s, got %s", i, cat, cats[i])
			}
		}
	})
}

func TestCatalogIsolation(t *testing.T) {
	c := New([]Product{{ID: "a", Name: "A", Price: 1}})

	all := c.All()
	all[0].Name = "mutated"

	p, _ := c.ByID("a")
	if p.Name != "A" {
		t.Error("Catalog contents must not be mutable through All()")
	}
}
