package imaging

import "sync"

// SequenceGate serializes preview loads against reselection. Preview
// decoding resolves asynchronously and cannot be cancelled, so a slow load
// for an earlier file can finish after a faster load for a newer one. Each
// load takes a ticket from Begin; Accept admits only results whose ticket
// is still the latest, and stale resolutions are dropped on the floor.
type SequenceGate struct {
	mu     sync.Mutex
	latest uint64
}

// Begin registers a new load and returns its ticket. Every later ticket
// supersedes all earlier ones.
func (g *SequenceGate) Begin() uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.latest++
	return g.latest
}

// Accept reports whether a resolved load is still current.
func (g *SequenceGate) Accept(seq uint64) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return seq == g.latest
}
