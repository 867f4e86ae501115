package domain

// OrderItem is a single line of an order request, mirroring the cart line it
// was built from.
type OrderItem struct {
	ProductID string  `json:"product_id"`
	Title     string  `json:"title"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

// Order is the order request submitted to the backend. It is built
// transiently at checkout time from the current cart and is not retained
// after a successful submission.
type Order struct {
	UserEmail       string      `json:"user_email"`
	ShippingAddress string      `json:"shipping_address"`
	PaymentMethod   string      `json:"payment_method"`
	Items           []OrderItem `json:"items"`
	Total           float64     `json:"total"`
}

// BuildOrder constructs an order from the given cart lines and user identity.
// The total is recomputed from the lines, not carried over.
func BuildOrder(cart Cart, userEmail, shippingAddress, paymentMethod string) Order {
	items := make([]OrderItem, len(cart.Lines))
	for i, line := range cart.Lines {
		items[i] = OrderItem{
			ProductID: line.ProductID,
			Title:     line.Title,
			Price:     line.Price,
			Quantity:  line.Quantity,
		}
	}

	return Order{
		UserEmail:       userEmail,
		ShippingAddress: shippingAddress,
		PaymentMethod:   paymentMethod,
		Items:           items,
		Total:           cart.Total(),
	}
}
