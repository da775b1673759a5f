package store

func seedProducts() []Product {
	return []Product{
		{
			ID: 1, Name: "Wireless Headphones Pro", Price: 129.99, Inventory: 45,
			Status: StatusActive, Sales: 230, Image: "🎧", SKU: "WH-001", Category: "Electronics",
			Description: "Experience immersive sound with our top-of-the-line wireless headphones. Featuring noise cancellation and 20-hour battery life.",
		},
		{
			ID: 2, Name: "Smart Watch Elite", Price: 299.99, Inventory: 12,
			Status: StatusActive, Sales: 85, Image: "⌚", SKU: "SW-002", Category: "Wearables",
			Description: "Stay connected and track your fitness with this sleek smartwatch. GPS, heart rate monitor, and customizable watch faces.",
		},
		{
			ID: 3, Name: "Premium Phone Case", Price: 24.99, Inventory: 0,
			Status: StatusOutOfStock, Sales: 1560, Image: "📱", SKU: "PC-003", Category: "Accessories",
			Description: "Protect your phone in style with our durable and elegant premium case. Available in multiple colors.",
		},
		{
			ID: 4, Name: "Organic Coffee Beans", Price: 18.50, Inventory: 75,
			Status: StatusActive, Sales: 450, Image: "☕", SKU: "CB-004", Category: "Groceries",
			Description: "Start your day right with our ethically sourced, fair-trade organic coffee beans. Rich aroma and smooth taste.",
		},
		{
			ID: 5, Name: "Yoga Mat Deluxe", Price: 45.00, Inventory: 30,
			Status: StatusActive, Sales: 120, Image: "🧘", SKU: "YM-005", Category: "Fitness",
			Description: "Enhance your yoga practice with our extra-thick, non-slip deluxe yoga mat. Eco-friendly materials.",
		},
	}
}

func seedOrders() []Order {
	return []Order{
		{ID: "#ORD-12345", Customer: "John Doe", Total: 129.99, Status: OrderFulfilled, Date: "2025-06-10", Items: []string{"Wireless Headphones Pro"}},
		{ID: "#ORD-12346", Customer: "Jane Smith", Total: 324.98, Status: OrderPending, Date: "2025-06-11", Items: []string{"Smart Watch Elite", "Premium Phone Case"}},
		{ID: "#ORD-12347", Customer: "Alice Brown", Total: 18.50, Status: OrderProcessing, Date: "2025-06-11", Items: []string{"Organic Coffee Beans"}},
		{ID: "#ORD-12348", Customer: "Robert Green", Total: 90.00, Status: OrderFulfilled, Date: "2025-06-09", Items: []string{"Yoga Mat Deluxe", "Yoga Mat Deluxe"}},
		{ID: "#ORD-12349", Customer: "Emily White", Total: 299.99, Status: OrderCancelled, Date: "2025-06-08", Items: []string{"Smart Watch Elite"}},
	}
}

func seedAnalytics() Analytics {
	return Analytics{
		TodaySales:     12450.50,
		TodayOrders:    18,
		ConversionRate: 3.2,
		TopProduct:     "Premium Phone Case",
		MonthlySalesData: []MonthlySales{
			{Name: "Jan", Sales: 4000},
			{Name: "Feb", Sales: 3000},
			{Name: "Mar", Sales: 5000},
			{Name: "Apr", Sales: 4500},
			{Name: "May", Sales: 6000},
			{Name: "Jun", Sales: 5500},
		},
		CategoryDistribution: []CategoryShare{
			{Name: "Electronics", Value: 400},
			{Name: "Wearables", Value: 300},
			{Name: "Accessories", Value: 200},
			{Name: "Groceries", Value: 150},
			{Name: "Fitness", Value: 100},
		},
	}
}
