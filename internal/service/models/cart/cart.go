package cart

// Cart is an immutable snapshot read from the cart service. Prices on it are
// trusted only at the instant the snapshot is taken.
type Cart struct {
	ID              int64      `json:"id"`
	CustomerID      int64      `json:"customerId"`
	Items           []CartItem `json:"items"`
	TotalPriceCents int64      `json:"totalPriceCents"`
	ItemCount       int        `json:"itemCount"`
	Status          string     `json:"status"`
}

type CartItem struct {
	ProductID      int64  `json:"productId"`
	ProductName    string `json:"productName"`
	UnitPriceCents int64  `json:"unitPriceCents"`
	Quantity       int    `json:"quantity"`
}
