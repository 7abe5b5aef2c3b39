package cart

import (
	"github.com/shopspring/decimal"
	"github.com/turkmasale/backend/internal/domain/shared"
)

// ErrNotHydrated is returned when a cart is mutated before its persisted
// state has been loaded. Callers must Hydrate first, even with an empty
// item list, so that a late-loading store cannot be overwritten by writes
// that raced ahead of it.
var ErrNotHydrated = shared.NewDomainError("CART_NOT_HYDRATED", "Cart has not been loaded yet")

// Item is a single cart line, keyed by product slug and size variant.
// Adding the same (slug, size) twice merges quantities; the same slug in
// a different size is a separate line.
type Item struct {
	Slug     string          `json:"slug"`
	Title    string          `json:"title"`
	Size     string          `json:"size"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
	Image    string          `json:"image,omitempty"`
}

type lineKey struct {
	slug string
	size string
}

// Cart accumulates items before checkout. A new cart starts unhydrated
// and rejects mutations until Hydrate is called with the previously
// persisted lines (or none).
type Cart struct {
	items    []Item
	index    map[lineKey]int
	hydrated bool
}

// New creates an unhydrated cart
func New() *Cart {
	return &Cart{index: make(map[lineKey]int)}
}

// Hydrate loads the cart's persisted lines and marks it ready.
// Hydrating an already-hydrated cart replaces its contents.
func (c *Cart) Hydrate(items []Item) {
	c.items = c.items[:0]
	c.index = make(map[lineKey]int, len(items))
	for _, it := range items {
		if it.Quantity <= 0 {
			continue
		}
		key := lineKey{slug: it.Slug, size: it.Size}
		if i, ok := c.index[key]; ok {
			c.items[i].Quantity += it.Quantity
			continue
		}
		c.index[key] = len(c.items)
		c.items = append(c.items, it)
	}
	c.hydrated = true
}

// Ready reports whether the cart has been hydrated
func (c *Cart) Ready() bool {
	return c.hydrated
}

// AddOutcome reports how Add changed the cart, so the caller can phrase
// its confirmation: a brand-new line or a bumped quantity.
type AddOutcome string

const (
	OutcomeAdded   AddOutcome = "added"
	OutcomeUpdated AddOutcome = "updated"
)

// Add puts one unit of the item into the cart. An existing (slug, size)
// line has its quantity incremented by one; a new line starts at
// quantity one. The item's own Quantity field is ignored.
func (c *Cart) Add(item Item) (AddOutcome, error) {
	if !c.hydrated {
		return "", ErrNotHydrated
	}
	if item.Slug == "" || item.Size == "" {
		return "", shared.NewDomainError("INVALID_CART_ITEM", "Cart item must have a product slug and size")
	}

	key := lineKey{slug: item.Slug, size: item.Size}
	if i, ok := c.index[key]; ok {
		c.items[i].Quantity++
		return OutcomeUpdated, nil
	}
	item.Quantity = 1
	c.index[key] = len(c.items)
	c.items = append(c.items, item)
	return OutcomeAdded, nil
}

// SetQuantity overwrites the quantity of an existing line. A quantity
// below one is a no-op; dropping a line is Remove's job.
func (c *Cart) SetQuantity(slug, size string, quantity int) error {
	if !c.hydrated {
		return ErrNotHydrated
	}
	if quantity < 1 {
		return nil
	}
	i, ok := c.index[lineKey{slug: slug, size: size}]
	if !ok {
		return shared.ErrNotFound
	}
	c.items[i].Quantity = quantity
	return nil
}

// Remove deletes a line from the cart. An absent line is a no-op.
func (c *Cart) Remove(slug, size string) error {
	if !c.hydrated {
		return ErrNotHydrated
	}
	key := lineKey{slug: slug, size: size}
	i, ok := c.index[key]
	if !ok {
		return nil
	}
	c.removeAt(key, i)
	return nil
}

// Clear removes all lines
func (c *Cart) Clear() error {
	if !c.hydrated {
		return ErrNotHydrated
	}
	c.items = c.items[:0]
	c.index = make(map[lineKey]int)
	return nil
}

// Items returns a copy of the cart lines in insertion order
func (c *Cart) Items() []Item {
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

// Len returns the number of distinct lines
func (c *Cart) Len() int {
	return len(c.items)
}

// TotalQuantity returns the summed quantity across all lines
func (c *Cart) TotalQuantity() int {
	total := 0
	for _, it := range c.items {
		total += it.Quantity
	}
	return total
}

// Total returns the summed price*quantity across all lines
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, it := range c.items {
		total = total.Add(it.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return total
}

func (c *Cart) removeAt(key lineKey, i int) {
	delete(c.index, key)
	c.items = append(c.items[:i], c.items[i+1:]...)
	for j := i; j < len(c.items); j++ {
		c.index[lineKey{slug: c.items[j].Slug, size: c.items[j].Size}] = j
	}
}
