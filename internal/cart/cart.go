package cart

import (
	"github.com/shopspring/decimal"
	"github.com/wichananm65/soko-storefront/internal/product"
)

// Snapshot is the product data copied into a cart line when it is first
// added. Later catalog edits do not change lines already in the cart.
type Snapshot struct {
	ProductID string
	Name      string
	Price     decimal.Decimal
	Unit      string
	Image     string
}

func SnapshotOf(p product.Product) Snapshot {
	return Snapshot{
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Unit:      p.Unit,
		Image:     p.PrimaryImage(),
	}
}

type Line struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Unit      string          `json:"unit"`
	Image     string          `json:"image,omitempty"`
	Quantity  int             `json:"quantity"`
}

func (l Line) Total() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart holds at most one line per product. Quantities are always positive;
// a line whose quantity would reach zero is removed.
type Cart struct {
	Lines []Line `json:"items"`
}

func (c *Cart) index(productID string) int {
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			return i
		}
	}
	return -1
}

// AddItem puts one unit of the product in the cart, merging with an
// existing line for the same product.
func (c *Cart) AddItem(s Snapshot) {
	if i := c.index(s.ProductID); i >= 0 {
		c.Lines[i].Quantity++
		return
	}
	c.Lines = append(c.Lines, Line{
		ProductID: s.ProductID,
		Name:      s.Name,
		Price:     s.Price,
		Unit:      s.Unit,
		Image:     s.Image,
		Quantity:  1,
	})
}

func (c *Cart) RemoveItem(productID string) {
	if i := c.index(productID); i >= 0 {
		c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
	}
}

// UpdateQuantity sets an absolute quantity; n <= 0 removes the line. Unknown
// products are ignored.
func (c *Cart) UpdateQuantity(productID string, n int) {
	if n <= 0 {
		c.RemoveItem(productID)
		return
	}
	if i := c.index(productID); i >= 0 {
		c.Lines[i].Quantity = n
	}
}

func (c *Cart) Clear() {
	c.Lines = nil
}

func (c Cart) Quantity(productID string) int {
	if i := c.index(productID); i >= 0 {
		return c.Lines[i].Quantity
	}
	return 0
}

func (c Cart) Contains(productID string) bool {
	return c.index(productID) >= 0
}

// ItemCount is the number of units across all lines.
func (c Cart) ItemCount() int {
	n := 0
	for _, l := range c.Lines {
		n += l.Quantity
	}
	return n
}

func (c Cart) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.Lines {
		total = total.Add(l.Total())
	}
	return total
}

func (c Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}
