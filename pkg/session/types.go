package session

// User is the authenticated identity. Zero or one is live at a time;
// anonymous visitors have none.
type User struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Avatar string `json:"avatar,omitempty"`
}

// Address is a shipping address belonging to the current session.
// Within the collection at most one address has IsDefault set.
type Address struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Line1      string `json:"line1"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
	IsDefault  bool   `json:"is_default"`
}

// PaymentType identifies the kind of payment method.
type PaymentType string

const (
	PaymentCard   PaymentType = "card"
	PaymentPayPal PaymentType = "paypal"
)

// PaymentMethod is a stored payment method. Last4 and ExpiryDate are
// only set for cards. The single-default invariant is enforced
// independently of the address collection.
type PaymentMethod struct {
	ID         string      `json:"id"`
	Type       PaymentType `json:"type"`
	Name       string      `json:"name"`
	Last4      string      `json:"last4,omitempty"`
	ExpiryDate string      `json:"expiry_date,omitempty"`
	IsDefault  bool        `json:"is_default"`
}

// OrderStatus is the fulfillment state of an order.
type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderProcessing OrderStatus = "processing"
	OrderShipped    OrderStatus = "shipped"
	OrderDelivered  OrderStatus = "delivered"
	OrderCancelled  OrderStatus = "cancelled"
)

// OrderItem is a line item within an order.
type OrderItem struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
	Image    string  `json:"image,omitempty"`
}

// Order is a past purchase. Orders are read-only in this scope: all
// order data is seed data tied to login, and no store operation
// creates or transitions one.
type Order struct {
	ID     string      `json:"id"`
	Date   string      `json:"date"`
	Total  float64     `json:"total"`
	Status OrderStatus `json:"status"`
	Items  []OrderItem `json:"items"`
}
