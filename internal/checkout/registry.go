package checkout

import (
	"log/slog"
	"sync"

	"github.com/cozythreads/storefront/internal/cart"
	"github.com/cozythreads/storefront/internal/cartstore"
	"github.com/cozythreads/storefront/internal/payment"
)

// Registry hands out one Orchestrator per session key.
type Registry struct {
	Store    cartstore.Store
	Catalog  cart.Lookup
	Gateway  payment.Gateway
	Currency string
	Log      *slog.Logger
	Notify   Notify

	mu       sync.Mutex
	sessions map[string]*Orchestrator
}

func NewRegistry(store cartstore.Store, catalog cart.Lookup, gateway payment.Gateway, currency string, log *slog.Logger, notify Notify) *Registry {
	return &Registry{
		Store:    store,
		Catalog:  catalog,
		Gateway:  gateway,
		Currency: currency,
		Log:      log,
		Notify:   notify,
		sessions: make(map[string]*Orchestrator),
	}
}

// For returns the session's orchestrator, creating it on first use. A session
// that already finished is replaced so that a repopulated cart can check out
// again.
func (r *Registry) For(key string) *Orchestrator {
	r.mu.Lock()
	defer r.mu.Unlock()
	if o, ok := r.sessions[key]; ok && o.State() != StateSucceeded {
		return o
	}
	o := New(cartstore.NewSession(r.Store, key), r.Catalog, r.Gateway, r.Currency, r.Log, r.Notify)
	r.sessions[key] = o
	return o
}

// Drop forgets a session's orchestrator.
func (r *Registry) Drop(key string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, key)
}
