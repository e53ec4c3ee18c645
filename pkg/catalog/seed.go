package catalog

const placeholderImage = "/placeholder.svg?height=300&width=300"

// seedProducts is the storefront's fixed product list.
var seedProducts = []Product{
	{
		ID:          "coffee-mug",
		Name:        "Coffee Mug",
		Price:       12.99,
		Category:    "Kitchenware",
		Image:       placeholderImage,
		Description: "A premium ceramic coffee mug perfect for your morning brew. Holds 12oz of your favorite beverage.",
	},
	{
		ID:          "wireless-mouse",
		Name:        "Wireless Mouse",
		Price:       24.99,
		Category:    "Electronics",
		Image:       placeholderImage,
		Description: "Ergonomic wireless mouse with precision tracking and long battery life.",
	},
	{
		ID:          "notebook",
		Name:        "Notebook",
		Price:       4.99,
		Category:    "Stationery",
		Image:       placeholderImage,
		Description: "High-quality lined notebook with 120 pages and durable cover.",
	},
	{
		ID:          "water-bottle",
		Name:        "Water Bottle",
		Price:       15.99,
		Category:    "Kitchenware",
		Image:       placeholderImage,
		Description: "Insulated stainless steel water bottle that keeps drinks cold for 24 hours or hot for 12 hours.",
	},
	{
		ID:          "headphones",
		Name:        "Headphones",
		Price:       59.99,
		Category:    "Electronics",
		Image:       placeholderImage,
		Description: "Over-ear headphones with noise cancellation and premium sound quality.",
	},
	{
		ID:          "desk-lamp",
		Name:        "Desk Lamp",
		Price:       29.99,
		Category:    "Home",
		Image:       placeholderImage,
		Description: "Adjustable LED desk lamp with multiple brightness levels and color temperatures.",
	},
	{
		ID:          "usb-drive",
		Name:        "USB Drive",
		Price:       14.99,
		Category:    "Electronics",
		Image:       placeholderImage,
		Description: "64GB USB 3.0 flash drive for fast data transfer and storage.",
	},
	{
		ID:          "backpack",
		Name:        "Backpack",
		Price:       39.99,
		Category:    "Accessories",
		Image:       placeholderImage,
		Description: "Durable backpack with multiple compartments, perfect for work or school.",
	},
	{
		ID:          "bluetooth-speaker",
		Name:        "Bluetooth Speaker",
		Price:       49.99,
		Category:    "Audio",
		Image:       placeholderImage,
		Description: "Portable Bluetooth speaker with 20-hour battery life and waterproof design.",
	},
	{
		ID:          "smart-watch",
		Name:        "Smart Watch",
		Price:       129.99,
		Category:    "Electronics",
		Image:       placeholderImage,
		Description: "Feature-rich smartwatch with fitness tracking, notifications, and customizable watch faces.",
	},
	{
		ID:          "wireless-charger",
		Name:        "Wireless Charger",
		Price:       19.99,
		Category:    "Electronics",
		Image:       placeholderImage,
		Description: "Fast wireless charging pad compatible with all Qi-enabled devices.",
	},
	{
		ID:          "plant-pot",
		Name:        "Plant Pot",
		Price:       8.99,
		Category:    "Home",
		Image:       placeholderImage,
		Description: "Ceramic plant pot with drainage hole, perfect for indoor plants and herbs.",
	},
}
