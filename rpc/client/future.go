package client

import (
	"context"

	"github.com/ckv-io/ckv/rpc/session"
)

// Future is the outcome handle of a dispatched command. It completes when
// the matching response frame arrives or the session tears down. A Future
// belongs to the caller that obtained it and must not be shared between
// goroutines.
type Future struct {
	ch       <-chan session.Result
	resolved bool
	result   session.Result
}

// Wait blocks until the outcome is available or the context is done.
// Cancelling the context abandons the wait but not the request: the pending
// entry still resolves when the real response arrives (or on teardown), and
// a later Wait call observes that outcome.
func (f *Future) Wait(ctx context.Context) ([]byte, error) {
	if f.resolved {
		return f.result.Payload, f.result.Err
	}

	select {
	case res := <-f.ch:
		f.result = res
		f.resolved = true
		return res.Payload, res.Err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
