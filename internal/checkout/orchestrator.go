package checkout

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/cozythreads/storefront/internal/cart"
	"github.com/cozythreads/storefront/internal/cartstore"
	"github.com/cozythreads/storefront/internal/models"
	"github.com/cozythreads/storefront/internal/payment"
)

// ErrIntentPending reports that an intent request is already in flight for
// this session; the new request is suppressed rather than duplicated.
var ErrIntentPending = errors.New("checkout: intent request already in flight")

// Notify receives diagnostic events (state transitions, catalog misses).
// Failures there never affect the flow.
type Notify func(ctx context.Context, event string, fields map[string]any)

// Orchestrator drives one checkout session. Cart mutations for a session are
// serialized by the mutex; the gateway call runs outside the lock and its
// result is applied only if no cart change intervened while it was in flight.
type Orchestrator struct {
	store    *cartstore.Session
	catalog  cart.Lookup
	gateway  payment.Gateway
	currency string
	log      *slog.Logger
	notify   Notify

	mu           sync.Mutex
	state        State
	entries      []models.CartEntry
	total        float64
	epoch        uint64
	clientSecret string
	inflight     bool
	lastError    string
}

func New(store *cartstore.Session, catalog cart.Lookup, gateway payment.Gateway, currency string, log *slog.Logger, notify Notify) *Orchestrator {
	if log == nil {
		log = slog.Default()
	}
	return &Orchestrator{
		store:    store,
		catalog:  catalog,
		gateway:  gateway,
		currency: currency,
		log:      log,
		notify:   notify,
		state:    StateLoading,
	}
}

func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

func (o *Orchestrator) Total() float64 {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.total
}

func (o *Orchestrator) ClientSecret() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.clientSecret
}

func (o *Orchestrator) LastError() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.lastError
}

// Load reads the cart from the store and settles into Empty or Reviewing.
func (o *Orchestrator) Load(ctx context.Context) error {
	entries, err := o.store.Load(ctx)
	if err != nil {
		return err
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	if o.state != StateLoading {
		return fmt.Errorf("%w: load from %s", ErrInvalidTransition, o.state)
	}
	o.applyEntriesLocked(ctx, entries)
	return nil
}

// Refresh re-reads the cart after a mutation. A changed total while an intent
// is held or requested invalidates it and drops the session back to Reviewing
// (or Empty), so the next RequestIntent creates a fresh one.
func (o *Orchestrator) Refresh(ctx context.Context) error {
	entries, err := o.store.Load(ctx)
	if err != nil {
		return err
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	switch o.state {
	case StateLoading:
		return fmt.Errorf("%w: refresh before load", ErrInvalidTransition)
	case StateSucceeded:
		return fmt.Errorf("%w: refresh after success", ErrInvalidTransition)
	}
	o.applyEntriesLocked(ctx, entries)
	return nil
}

// applyEntriesLocked recomputes derived state from entries and moves to
// Empty or Reviewing accordingly. Any held client secret is discarded when
// the total changed.
func (o *Orchestrator) applyEntriesLocked(ctx context.Context, entries []models.CartEntry) {
	items := o.joinReporting(ctx, entries)
	total := cart.Total(items)
	unchanged := total == o.total
	o.entries = entries
	o.total = total

	// An unchanged total leaves a held or requested intent valid.
	if unchanged && (o.state == StateAwaitingIntent || o.state == StatePaying) {
		return
	}
	if !unchanged {
		// Every total change bumps the epoch, so an in-flight request is
		// invalidated even if a later change restores the requested total.
		o.epoch++
		o.clientSecret = ""
	}

	if len(entries) == 0 {
		o.moveLocked(ctx, StateEmpty)
		return
	}
	o.moveLocked(ctx, StateReviewing)
}

// RequestIntent asks the gateway for a payment intent covering the current
// total. Overlapping requests are suppressed; a response outrun by a cart
// change is discarded, even when the change put the total back.
func (o *Orchestrator) RequestIntent(ctx context.Context) error {
	o.mu.Lock()
	if o.state != StateReviewing && o.state != StateAwaitingIntent {
		o.mu.Unlock()
		return fmt.Errorf("%w: request intent from %s", ErrInvalidTransition, o.state)
	}
	if o.inflight {
		o.mu.Unlock()
		return ErrIntentPending
	}
	if o.total <= 0 {
		o.mu.Unlock()
		return &payment.IntentError{Message: "cart total must be positive"}
	}
	requested := o.total
	requestedEpoch := o.epoch
	o.inflight = true
	o.moveLocked(ctx, StateAwaitingIntent)
	o.mu.Unlock()

	secret, err := o.gateway.CreateIntent(ctx, requested, o.currency)

	o.mu.Lock()
	defer o.mu.Unlock()
	o.inflight = false

	if requestedEpoch != o.epoch {
		// Stale response: the cart changed while the request was in flight.
		o.log.Info("discarding stale intent response",
			"requested_total", requested, "current_total", o.total)
		return nil
	}
	if err != nil {
		o.lastError = userMessage(err)
		o.log.Error("intent creation failed", "total", requested, "error", err)
		return err
	}
	o.lastError = ""
	o.clientSecret = secret
	o.moveLocked(ctx, StatePaying)
	return nil
}

// PaymentSucceeded finishes the flow: the cart is cleared in the store and
// the session becomes terminal.
func (o *Orchestrator) PaymentSucceeded(ctx context.Context) error {
	o.mu.Lock()
	if o.state != StatePaying {
		o.mu.Unlock()
		return fmt.Errorf("%w: payment success from %s", ErrInvalidTransition, o.state)
	}
	o.mu.Unlock()

	if err := o.store.Clear(ctx); err != nil {
		return err
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	o.entries = []models.CartEntry{}
	o.total = 0
	o.lastError = ""
	o.moveLocked(ctx, StateSucceeded)
	return nil
}

// PaymentFailed records the processor's message; the session stays in Paying
// and the held client secret remains usable for a retry.
func (o *Orchestrator) PaymentFailed(ctx context.Context, message string) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.state != StatePaying {
		return fmt.Errorf("%w: payment failure from %s", ErrInvalidTransition, o.state)
	}
	o.lastError = message
	o.emit(ctx, "payment_failed", map[string]any{"message": message})
	return nil
}

// joinReporting joins entries against the catalog, reporting dropped ids as
// catalog_miss diagnostics.
func (o *Orchestrator) joinReporting(ctx context.Context, entries []models.CartEntry) []models.CartLineItem {
	items := cart.Join(entries, o.catalog)
	if len(items) == len(entries) {
		return items
	}
	for _, e := range entries {
		if _, ok := o.catalog.ByID(e.ProductID); !ok {
			o.log.Warn("cart entry references unknown product", "product_id", e.ProductID)
			o.emit(ctx, "catalog_miss", map[string]any{"product_id": e.ProductID})
		}
	}
	return items
}

func (o *Orchestrator) moveLocked(ctx context.Context, to State) {
	if o.state == to {
		return
	}
	if !canTransition(o.state, to) {
		// Transition table bug if reached; states are only moved internally.
		o.log.Error("blocked checkout transition", "from", o.state.String(), "to", to.String())
		return
	}
	from := o.state
	o.state = to
	o.emit(ctx, "checkout_transition", map[string]any{
		"from":  from.String(),
		"to":    to.String(),
		"total": o.total,
	})
}

func (o *Orchestrator) emit(ctx context.Context, event string, fields map[string]any) {
	if o.notify != nil {
		o.notify(ctx, event, fields)
	}
}

func userMessage(err error) string {
	var ie *payment.IntentError
	if errors.As(err, &ie) {
		return ie.Message
	}
	return "could not start payment, please try again"
}
