package domain

// CartLine is one aggregated (product, quantity) pair in the cart. Title and
// unit price are captured from the product at the time of first add.
type CartLine struct {
	ProductID string  `json:"product_id"`
	Title     string  `json:"title"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

// Subtotal returns price times quantity for this line.
func (l CartLine) Subtotal() float64 {
	return l.Price * float64(l.Quantity)
}

// Cart holds the session-local cart lines. At most one line exists per
// product ID; repeated adds of the same product increment the quantity of
// the existing line. Insertion order of first-added products is preserved.
type Cart struct {
	Lines []CartLine `json:"lines"`
}

// Add merges the product into the cart: an existing line for the same
// product ID gets its quantity incremented by one, otherwise a new line
// with quantity 1 is appended.
func (c *Cart) Add(p Product) {
	if i := c.FindLineIndex(p.ID); i >= 0 {
		c.Lines[i].Quantity++
		return
	}
	c.Lines = append(c.Lines, CartLine{
		ProductID: p.ID,
		Title:     p.Title,
		Price:     p.Price,
		Quantity:  1,
	})
}

// FindLineIndex returns the index of the line matching the given product ID,
// or -1 if no such line exists.
func (c *Cart) FindLineIndex(productID string) int {
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			return i
		}
	}
	return -1
}

// Total recomputes the cart total from current lines on every call; it is
// never cached, so it cannot drift from line mutations.
func (c Cart) Total() float64 {
	var total float64
	for _, line := range c.Lines {
		total += line.Subtotal()
	}
	return total
}

// ItemCount returns the total number of units across all lines.
func (c Cart) ItemCount() int {
	var count int
	for _, line := range c.Lines {
		count += line.Quantity
	}
	return count
}

// IsEmpty reports whether the cart has no lines.
func (c Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// Clear removes all lines. Called only after a confirmed order placement.
func (c *Cart) Clear() {
	c.Lines = nil
}

// Clone returns a deep copy of the cart.
func (c Cart) Clone() Cart {
	if len(c.Lines) == 0 {
		return Cart{}
	}
	lines := make([]CartLine, len(c.Lines))
	copy(lines, c.Lines)
	return Cart{Lines: lines}
}
