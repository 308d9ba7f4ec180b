// Package notifier fans out reload events to connected dashboard pages.
package notifier

import "sync"

// Notifier delivers a ping to every subscribed page. A page that has not
// consumed its previous ping is not pinged twice.
type Notifier struct {
	mu   sync.Mutex
	subs map[chan struct{}]struct{}
}

// New creates an empty Notifier.
func New() *Notifier {
	return &Notifier{subs: make(map[chan struct{}]struct{})}
}

// Subscribe registers a listener. The returned cancel func removes it and
// must be called exactly once.
func (n *Notifier) Subscribe() (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)

	n.mu.Lock()
	n.subs[ch] = struct{}{}
	n.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			n.mu.Lock()
			delete(n.subs, ch)
			n.mu.Unlock()
		})
	}
}

// Broadcast pings every listener without blocking and returns how many
// listeners received a new ping.
func (n *Notifier) Broadcast() int {
	n.mu.Lock()
	defer n.mu.Unlock()

	sent := 0
	for ch := range n.subs {
		select {
		case ch <- struct{}{}:
			sent++
		default:
		}
	}
	return sent
}

// Len returns the number of listeners.
func (n *Notifier) Len() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.subs)
}
