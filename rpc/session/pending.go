package session

import (
	"sync/atomic"

	"github.com/VictoriaMetrics/metrics"
	"github.com/puzpuzpuz/xsync/v3"
)

var (
	resolvedTotal = metrics.GetOrCreateCounter(`ckv_requests_resolved_total`)
	failedTotal   = metrics.GetOrCreateCounter(`ckv_requests_failed_total`)
	strayTotal    = metrics.GetOrCreateCounter(`ckv_responses_stray_total`)
)

// Result is the outcome of a single request: an opaque success payload or
// an error. Exactly one Result is delivered per registered request.
type Result struct {
	Payload []byte
	Err     error
}

// pendingTable maps in-flight request identifiers to their outcome
// channels. It is the only mutable state shared between callers and the
// read pump; every mutation is atomic with respect to concurrent access.
type pendingTable struct {
	entries       *xsync.MapOf[uint64, chan Result]
	nextRequestID uint64 // Atomic counter for unique request IDs
}

func newPendingTable() *pendingTable {
	return &pendingTable{
		entries: xsync.NewMapOf[uint64, chan Result](),
	}
}

// reserve allocates a fresh request identifier together with its outcome
// channel. Identifiers start at 1; id 0 is reserved for the bootstrap
// handshake. The channel is buffered so resolution never blocks on a
// caller that has not started waiting yet (or never will).
func (t *pendingTable) reserve() (uint64, chan Result) {
	id := atomic.AddUint64(&t.nextRequestID, 1)
	ch := make(chan Result, 1)
	t.entries.Store(id, ch)
	return id, ch
}

// abort drops a reservation that never reached the wire, so a pre-write
// failure leaves no orphaned entry behind.
func (t *pendingTable) abort(id uint64) {
	t.entries.Delete(id)
}

// resolve completes the entry for the given identifier exactly once and
// removes it. Resolving an unknown or already-resolved identifier is a
// no-op; the caller is expected to log it, the core may in theory emit a
// stray or duplicate frame.
func (t *pendingTable) resolve(id uint64, res Result) bool {
	ch, ok := t.entries.LoadAndDelete(id)
	if !ok {
		strayTotal.Inc()
		return false
	}
	ch <- res
	resolvedTotal.Inc()
	return true
}

// failAll resolves every still-pending entry with the given error. Used
// during session teardown so no request is left unresolved forever.
func (t *pendingTable) failAll(err error) int {
	count := 0
	t.entries.Range(func(id uint64, _ chan Result) bool {
		// LoadAndDelete again under the id so a concurrent resolve wins or
		// loses atomically, never both
		if ch, ok := t.entries.LoadAndDelete(id); ok {
			ch <- Result{Err: err}
			failedTotal.Inc()
			count++
		}
		return true
	})
	return count
}

// size returns the number of in-flight entries
func (t *pendingTable) size() int {
	return t.entries.Size()
}
