package graph

import (
	"fmt"
	"sync"
	"time"
)

// IDGenerator issues entity ids from a monotonically increasing sequence
// combined with a millisecond timestamp. Collision-safe within a session,
// not across sessions or distributed editors.
type IDGenerator struct {
	mu  sync.Mutex
	seq uint64
}

// Next returns a fresh id with the given entity prefix, e.g. "concept-3-1714070000000".
func (g *IDGenerator) Next(prefix string) string {
	g.mu.Lock()
	g.seq++
	seq := g.seq
	g.mu.Unlock()
	return fmt.Sprintf("%s-%d-%d", prefix, seq, time.Now().UnixMilli())
}
