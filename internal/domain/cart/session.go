package cart

import "context"

// Session ties a cart to its durable store. Every mutation that
// succeeds on the cart is written through to the store before the call
// returns, so the persisted state never lags more than one operation.
type Session struct {
	cart  *Cart
	store Store
}

// NewSession creates an unhydrated session over the given store
func NewSession(store Store) *Session {
	return &Session{cart: New(), store: store}
}

// Load hydrates the cart from the store. Corrupt or unreadable state
// falls back to an empty cart rather than blocking the shopper; the
// bad state is overwritten on the next successful mutation.
func (s *Session) Load(ctx context.Context) error {
	items, err := s.store.Load(ctx)
	if err != nil {
		s.cart.Hydrate(nil)
		return err
	}
	s.cart.Hydrate(items)
	return nil
}

// Ready reports whether Load has run
func (s *Session) Ready() bool {
	return s.cart.Ready()
}

// Add merges one unit of the item and persists the result
func (s *Session) Add(ctx context.Context, item Item) (AddOutcome, error) {
	outcome, err := s.cart.Add(item)
	if err != nil {
		return "", err
	}
	return outcome, s.persist(ctx)
}

// SetQuantity updates a line's quantity and persists the result
func (s *Session) SetQuantity(ctx context.Context, slug, size string, quantity int) error {
	if err := s.cart.SetQuantity(slug, size, quantity); err != nil {
		return err
	}
	return s.persist(ctx)
}

// Remove deletes a line and persists the result
func (s *Session) Remove(ctx context.Context, slug, size string) error {
	if err := s.cart.Remove(slug, size); err != nil {
		return err
	}
	return s.persist(ctx)
}

// Clear empties the cart and persists the result
func (s *Session) Clear(ctx context.Context) error {
	if err := s.cart.Clear(); err != nil {
		return err
	}
	return s.persist(ctx)
}

// Cart exposes the underlying cart for reads
func (s *Session) Cart() *Cart {
	return s.cart
}

func (s *Session) persist(ctx context.Context) error {
	return s.store.Save(ctx, s.cart.Items())
}
