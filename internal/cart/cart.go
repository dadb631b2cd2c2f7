package cart

import (
	"log/slog"

	"github.com/nebulashop/storefront/internal/catalog"
)

// Line is one product paired with a quantity. It embeds a full product
// snapshot, matching the serialized shape the storefront persists.
type Line struct {
	catalog.Product
	Quantity int `json:"quantity"`
}

// Storage is the durability boundary. State transitions never know how
// lines are stored; they only ask for a flush after each mutation.
type Storage interface {
	LoadCart() ([]Line, error)
	SaveCart([]Line) error
}

// Cart tracks the in-progress selection plus the drawer/checkout UI flags.
// There is a single logical writer (the active session), so transitions are
// plain synchronous methods with no locking.
type Cart struct {
	store Storage
	log   *slog.Logger

	lines          []Line
	isOpen         bool
	isCheckoutOpen bool
	newItemCount   int
}

// New rehydrates the cart from storage. A nil store keeps the cart purely
// in memory; a failed load starts empty.
func New(store Storage, log *slog.Logger) *Cart {
	if log == nil {
		log = slog.Default()
	}
	c := &Cart{store: store, log: log}
	if store != nil {
		lines, err := store.LoadCart()
		if err != nil {
			log.Warn("cart rehydrate failed", "error", err)
		} else {
			c.lines = lines
		}
	}
	return c
}

// AddToCart increments the quantity of an existing line or appends a new
// line with quantity 1. Items added while the drawer is closed bump the
// unseen-item counter behind the badge.
func (c *Cart) AddToCart(p catalog.Product) {
	found := false
	for i := range c.lines {
		if c.lines[i].ID == p.ID {
			c.lines[i].Quantity++
			found = true
			break
		}
	}
	if !found {
		c.lines = append(c.lines, Line{Product: p, Quantity: 1})
	}
	if !c.isOpen {
		c.newItemCount++
	}
	c.flush()
}

// RemoveFromCart drops the line for the product id. Removing an absent line
// is a no-op.
func (c *Cart) RemoveFromCart(id int) {
	for i := range c.lines {
		if c.lines[i].ID == id {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			break
		}
	}
	c.flush()
}

// UpdateQuantity sets the quantity for the product id; a quantity of zero
// or less removes the line.
func (c *Cart) UpdateQuantity(id, qty int) {
	if qty <= 0 {
		c.RemoveFromCart(id)
		return
	}
	for i := range c.lines {
		if c.lines[i].ID == id {
			c.lines[i].Quantity = qty
			break
		}
	}
	c.flush()
}

func (c *Cart) ClearCart() {
	c.lines = nil
	c.flush()
}

// Open shows the drawer and marks everything as seen.
func (c *Cart) Open() {
	c.isOpen = true
	c.newItemCount = 0
}

func (c *Cart) Close() {
	c.isOpen = false
}

func (c *Cart) OpenCheckout() {
	c.isCheckoutOpen = true
}

func (c *Cart) CloseCheckout() {
	c.isCheckoutOpen = false
}

func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c *Cart) IsOpen() bool         { return c.isOpen }
func (c *Cart) IsCheckoutOpen() bool { return c.isCheckoutOpen }
func (c *Cart) NewItemCount() int    { return c.newItemCount }

// flush persists after every mutation. Storage failures keep the in-memory
// state authoritative and are only logged.
func (c *Cart) flush() {
	if c.store == nil {
		return
	}
	if err := c.store.SaveCart(c.lines); err != nil {
		c.log.Warn("cart persist failed", "error", err)
	}
}
