package safeany

import (
	"sort"
	"sync"
)

// borrows tracks the outstanding guards and payload borrows of a container
// so that violations can name them.
type borrows struct {
	mu   sync.Mutex
	live map[string]struct{}
}

func (b *borrows) add(id string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.live == nil {
		b.live = make(map[string]struct{})
	}
	b.live[id] = struct{}{}
}

func (b *borrows) remove(id string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.live, id)
}

func (b *borrows) len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.live)
}

func (b *borrows) ids() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.live) == 0 {
		return nil
	}
	out := make([]string, 0, len(b.live))
	for id := range b.live {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
