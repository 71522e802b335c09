package cart

import "sync"

// Registry owns one cart per authenticated user for the lifetime of the
// process. Carts are session state and are never persisted.
type Registry struct {
	mu    sync.RWMutex
	carts map[string]*Cart
}

func NewRegistry() *Registry {
	return &Registry{carts: make(map[string]*Cart)}
}

// ForUser returns the user's cart, creating an empty one on first use.
func (r *Registry) ForUser(userID string) *Cart {
	r.mu.RLock()
	c, ok := r.carts[userID]
	r.mu.RUnlock()
	if ok {
		return c
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.carts[userID]; ok {
		return c
	}
	c = New()
	r.carts[userID] = c
	return c
}

// Drop discards the user's cart entirely (logout).
func (r *Registry) Drop(userID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.carts, userID)
}
