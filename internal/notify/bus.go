// Package notify implements the in-process document-update notification
// registry used to refresh namespace views when ingestion tasks finish.
package notify

import (
	"fmt"
	"sync"

	"github.com/oklog/ulid/v2"

	"github.com/pinecone-io/ragcli/internal/log"
)

// BusConfig is the configuration for the notification bus.
type BusConfig struct {
	Logger log.Logger
}

func (c *BusConfig) defaults() error {
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "notify.Bus"})
	return nil
}

type subscription struct {
	id string
	fn func()
}

// Bus maps namespace names to ordered lists of callbacks invoked when the
// documents of that namespace change. It is an explicit, injected registry,
// never ambient process state, so it can be tested and scoped to the app
// lifecycle.
type Bus struct {
	subs   map[string][]subscription
	mu     sync.Mutex
	logger log.Logger
}

// NewBus creates a new notification bus.
func NewBus(cfg BusConfig) (*Bus, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Bus{
		subs:   map[string][]subscription{},
		logger: cfg.Logger,
	}, nil
}

// Subscribe registers a callback for a namespace and returns the function
// that removes exactly that registration. Removal is token based, so
// unsubscribing is safe while other callbacks are added or removed for the
// same namespace.
func (b *Bus) Subscribe(namespace string, fn func()) (unsubscribe func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := ulid.Make().String()
	b.subs[namespace] = append(b.subs[namespace], subscription{id: id, fn: fn})

	b.logger.Debugf("Subscribed %s to namespace %s", id, namespace)

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()

		subs := b.subs[namespace]
		for i, s := range subs {
			if s.id == id {
				b.subs[namespace] = append(subs[:i:i], subs[i+1:]...)
				return
			}
		}
	}
}

// Notify invokes every callback registered for a namespace in registration
// order. A panicking callback is recovered and logged and doesn't prevent
// the remaining callbacks from running.
//
// Callers triggering a notification from inside a state mutation must call
// Notify on a separate goroutine, after the mutation committed, so refresh
// side effects never run inside the mutating call stack.
func (b *Bus) Notify(namespace string) {
	b.mu.Lock()
	subs := make([]subscription, len(b.subs[namespace]))
	copy(subs, b.subs[namespace])
	b.mu.Unlock()

	for _, s := range subs {
		b.invoke(namespace, s)
	}
}

func (b *Bus) invoke(namespace string, s subscription) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Errorf("Document update callback %s for namespace %s panicked: %v", s.id, namespace, r)
		}
	}()

	s.fn()
}
