package loader

import (
	"sync"

	"launchpads/internal/eventbus"
)

// Service is the loading indicator shared by everything that fetches
type Service interface {
	Show()
	Hide()
	Visible() bool
}

// Indicator is a reference counted loading indicator. It stays visible while
// more Show calls than Hide calls have been made; surplus Hide calls are ignored.
type Indicator struct {
	mu     sync.Mutex
	active int
	bus    eventbus.EventBus
}

// New creates a hidden indicator. bus may be nil.
func New(bus eventbus.EventBus) *Indicator {
	return &Indicator{bus: bus}
}

// Show marks one more operation as loading
func (i *Indicator) Show() {
	i.mu.Lock()
	i.active++
	flipped := i.active == 1
	i.mu.Unlock()

	if flipped {
		i.publish(true)
	}
}

// Hide marks one loading operation as done
func (i *Indicator) Hide() {
	i.mu.Lock()
	if i.active == 0 {
		i.mu.Unlock()
		return
	}
	i.active--
	flipped := i.active == 0
	i.mu.Unlock()

	if flipped {
		i.publish(false)
	}
}

// Visible reports whether any operation is loading
func (i *Indicator) Visible() bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.active > 0
}

func (i *Indicator) publish(visible bool) {
	if i.bus != nil {
		i.bus.Publish(eventbus.LoaderChangedEvent{Visible: visible})
	}
}
