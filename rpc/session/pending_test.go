package session

import (
	"errors"
	"sync"
	"testing"
)

// TestReserveUniqueIDs tests that concurrent reservations never hand out
// the same identifier twice while entries are pending
func TestReserveUniqueIDs(t *testing.T) {
	table := newPendingTable()

	const n = 1000
	ids := make(chan uint64, n)

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id, _ := table.reserve()
			ids <- id
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[uint64]bool, n)
	for id := range ids {
		if id == 0 {
			t.Error("id 0 handed out, it is reserved for the bootstrap handshake")
		}
		if seen[id] {
			t.Errorf("id %d handed out twice", id)
		}
		seen[id] = true
	}

	if table.size() != n {
		t.Errorf("expected %d pending entries, got %d", n, table.size())
	}
}

// TestResolveExactlyOnce tests exactly-once resolution and that duplicates
// are no-ops
func TestResolveExactlyOnce(t *testing.T) {
	table := newPendingTable()

	id, ch := table.reserve()

	if !table.resolve(id, Result{Payload: []byte("ok")}) {
		t.Fatal("first resolve reported unknown id")
	}
	if table.resolve(id, Result{Payload: []byte("dup")}) {
		t.Error("second resolve of the same id succeeded")
	}
	if table.resolve(9999, Result{}) {
		t.Error("resolve of a never-reserved id succeeded")
	}

	res := <-ch
	if string(res.Payload) != "ok" || res.Err != nil {
		t.Errorf("unexpected result: %+v", res)
	}

	select {
	case res := <-ch:
		t.Errorf("entry resolved twice: %+v", res)
	default:
	}

	if table.size() != 0 {
		t.Errorf("entry not removed after resolution, size %d", table.size())
	}
}

// TestAbortDropsReservation tests that an aborted reservation leaves no
// entry behind and cannot be resolved
func TestAbortDropsReservation(t *testing.T) {
	table := newPendingTable()

	id, _ := table.reserve()
	table.abort(id)

	if table.size() != 0 {
		t.Errorf("aborted entry still present, size %d", table.size())
	}
	if table.resolve(id, Result{}) {
		t.Error("aborted entry was resolvable")
	}
}

// TestFailAll tests that teardown resolves every pending entry with the
// given failure
func TestFailAll(t *testing.T) {
	table := newPendingTable()

	cause := errors.New("teardown")
	chans := make([]chan Result, 0, 10)
	for i := 0; i < 10; i++ {
		_, ch := table.reserve()
		chans = append(chans, ch)
	}

	if n := table.failAll(cause); n != 10 {
		t.Errorf("failAll resolved %d entries, expected 10", n)
	}

	for i, ch := range chans {
		res := <-ch
		if !errors.Is(res.Err, cause) {
			t.Errorf("entry %d: expected teardown error, got %+v", i, res)
		}
	}

	if table.size() != 0 {
		t.Errorf("entries left after failAll, size %d", table.size())
	}

	// A second failAll finds nothing
	if n := table.failAll(cause); n != 0 {
		t.Errorf("second failAll resolved %d entries", n)
	}
}

// TestConcurrentResolveAndFailAll tests that a racing resolve and failAll
// deliver exactly one result per entry
func TestConcurrentResolveAndFailAll(t *testing.T) {
	table := newPendingTable()

	const n = 200
	ids := make([]uint64, n)
	chans := make([]chan Result, n)
	for i := 0; i < n; i++ {
		ids[i], chans[i] = table.reserve()
	}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for _, id := range ids {
			table.resolve(id, Result{Payload: []byte("ok")})
		}
	}()
	go func() {
		defer wg.Done()
		table.failAll(errors.New("teardown"))
	}()
	wg.Wait()

	for i, ch := range chans {
		// Exactly one result per entry, success or failure
		<-ch
		select {
		case res := <-ch:
			t.Errorf("entry %d resolved twice: %+v", i, res)
		default:
		}
	}
}
