package notify

import (
	"sync"

	"github.com/oklog/ulid/v2"
)

type panelHandler struct {
	id string
	fn func()
}

// Panel is the registry for the single "open the notification panel"
// affordance a host exposes. Hosts register an open handler explicitly;
// the most recently registered still-active handler wins, matching a single
// on-screen entry point, but registrations can be removed so a replaced
// host never silently clobbers another.
type Panel struct {
	handlers []panelHandler
	mu       sync.Mutex
}

// NewPanel creates a new panel registry.
func NewPanel() *Panel {
	return &Panel{}
}

// Register adds an open handler and returns the function that removes it.
func (p *Panel) Register(fn func()) (unregister func()) {
	p.mu.Lock()
	defer p.mu.Unlock()

	id := ulid.Make().String()
	p.handlers = append(p.handlers, panelHandler{id: id, fn: fn})

	return func() {
		p.mu.Lock()
		defer p.mu.Unlock()

		for i, h := range p.handlers {
			if h.id == id {
				p.handlers = append(p.handlers[:i:i], p.handlers[i+1:]...)
				return
			}
		}
	}
}

// Open invokes the most recently registered active handler and reports
// whether there was one to invoke.
func (p *Panel) Open() bool {
	p.mu.Lock()
	var fn func()
	if len(p.handlers) > 0 {
		fn = p.handlers[len(p.handlers)-1].fn
	}
	p.mu.Unlock()

	if fn == nil {
		return false
	}
	fn()

	return true
}
