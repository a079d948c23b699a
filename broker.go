package deso

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

type response struct {
	payload json.RawMessage
	err     error
}

type pendingRequest struct {
	id             string
	method         Method
	expectedOrigin string
	done           chan response
}

// broker matches custody responses to waiting requests by id. An entry is
// inserted when a request is sent and removed by whichever of response,
// cancellation, timeout or teardown happens first.
type broker struct {
	mu      sync.Mutex
	pending map[string]*pendingRequest
	log     *zerolog.Logger
}

func newBroker() *broker {
	return &broker{
		pending: make(map[string]*pendingRequest),
		log:     Log(),
	}
}

func (b *broker) open(id string, method Method, origin string) *pendingRequest {
	p := &pendingRequest{
		id:             id,
		method:         method,
		expectedOrigin: origin,
		done:           make(chan response, 1),
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.pending[id] = p

	return p
}

func (b *broker) take(id string) (p *pendingRequest, ok bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	p, ok = b.pending[id]
	if ok {
		delete(b.pending, id)
	}
	return
}

// settle hands r to the request with this id if the message came from the
// origin that request was sent to.
func (b *broker) settle(origin, id string, r response) bool {
	b.mu.Lock()
	p, ok := b.pending[id]
	if !ok || p.expectedOrigin != origin {
		b.mu.Unlock()
		return false
	}
	delete(b.pending, id)
	b.mu.Unlock()

	p.done <- r
	return true
}

// failAll settles every outstanding request with err.
func (b *broker) failAll(err error) {
	b.mu.Lock()
	pending := b.pending
	b.pending = make(map[string]*pendingRequest)
	b.mu.Unlock()

	for _, p := range pending {
		p.done <- response{err: err}
	}
	if len(pending) > 0 {
		b.log.Warn().Msgf("failed %d pending custody requests: %v", len(pending), err)
	}
}

// wait blocks until p settles, ctx ends or timeout passes. A zero timeout
// leaves ctx as the only bound.
func (b *broker) wait(ctx context.Context, p *pendingRequest, timeout time.Duration) (payload json.RawMessage, err error) {
	defer b.take(p.id)

	var expired <-chan time.Time
	if timeout > 0 {
		timer := time.NewTimer(timeout)
		defer timer.Stop()
		expired = timer.C
	}

	select {
	case r := <-p.done:
		return r.payload, r.err
	case <-ctx.Done():
		err = errors.Wrapf(ctx.Err(), "%s request %s abandoned", p.method, p.id)
	case <-expired:
		err = errors.Wrapf(ErrSigningTimedOut, "%s request %s got no response within %s", p.method, p.id, timeout)
	}
	return
}

func (b *broker) len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.pending)
}
