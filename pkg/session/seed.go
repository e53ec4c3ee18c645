package session

const avatarPlaceholder = "/placeholder.svg?height=200&width=200"
const imagePlaceholder = "/placeholder.svg?height=80&width=80"

// Seed data substituted for real per-user records on every login and
// restore. A real system would fetch live data here.

var seedUser = User{
	ID:     "user1",
	Name:   "John Doe",
	Email:  "john.doe@example.com",
	Avatar: avatarPlaceholder,
}

var seedAddresses = []Address{
	{
		ID:         "addr1",
		Name:       "Home",
		Line1:      "123 Main St",
		City:       "New York",
		State:      "NY",
		PostalCode: "10001",
		Country:    "United States",
		IsDefault:  true,
	},
	{
		ID:         "addr2",
		Name:       "Work",
		Line1:      "456 Business Ave",
		Line2:      "Suite 500",
		City:       "New York",
		State:      "NY",
		PostalCode: "10002",
		Country:    "United States",
		IsDefault:  false,
	},
}

var seedPaymentMethods = []PaymentMethod{
	{
		ID:         "pm1",
		Type:       PaymentCard,
		Name:       "Visa ending in 4242",
		Last4:      "4242",
		ExpiryDate: "12/25",
		IsDefault:  true,
	},
	{
		ID:        "pm2",
		Type:      PaymentPayPal,
		Name:      "PayPal - john.doe@example.com",
		IsDefault: false,
	},
}

var seedOrders = []Order{
	{
		ID:     "ord1",
		Date:   "2025-03-10T14:30:00Z",
		Total:  124.95,
		Status: OrderDelivered,
		Items: []OrderItem{
			{ID: "headphones", Name: "Headphones", Quantity: 1, Price: 59.99, Image: imagePlaceholder},
			{ID: "bluetooth-speaker", Name: "Bluetooth Speaker", Quantity: 1, Price: 49.99, Image: imagePlaceholder},
		},
	},
	{
		ID:     "ord2",
		Date:   "2025-03-05T10:15:00Z",
		Total:  39.98,
		Status: OrderShipped,
		Items: []OrderItem{
			{ID: "coffee-mug", Name: "Coffee Mug", Quantity: 2, Price: 12.99, Image: imagePlaceholder},
			{ID: "notebook", Name: "Notebook", Quantity: 3, Price: 4.99, Image: imagePlaceholder},
		},
	},
}

func cloneAddresses(src []Address) []Address {
	out := make([]Address, len(src))
	copy(out, src)
	return out
}

func clonePaymentMethods(src []PaymentMethod) []PaymentMethod {
	out := make([]PaymentMethod, len(src))
	copy(out, src)
	return out
}

func cloneOrders(src []Order) []Order {
	out := make([]Order, len(src))
	copy(out, src)
	return out
}
