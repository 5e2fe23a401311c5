package listview

import (
	"context"
	"sync"
)

// Fetcher guarantees a newer list fetch always supersedes an older one.
// Each Begin cancels the in-flight predecessor and hands back a commit
// gate; results from a request whose generation is no longer current are
// discarded, so a slow early response can never overwrite a newer result.
type Fetcher struct {
	mu      sync.Mutex
	gen     uint64
	cancel  context.CancelFunc
	loading bool
	closed  bool
}

func NewFetcher() *Fetcher {
	return &Fetcher{}
}

// Begin starts a new fetch generation. The returned context is cancelled
// by any later Begin or by Close. Commit reports whether this fetch is
// still the current one; callers apply results only when it returns true.
func (f *Fetcher) Begin(parent context.Context) (context.Context, func() bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.cancel != nil {
		f.cancel()
	}
	ctx, cancel := context.WithCancel(parent)
	if f.closed {
		cancel()
	}
	f.cancel = cancel
	f.gen++
	f.loading = true

	gen := f.gen
	commit := func() bool {
		f.mu.Lock()
		defer f.mu.Unlock()
		if f.closed || gen != f.gen {
			return false
		}
		f.loading = false
		return true
	}
	return ctx, commit
}

// Loading reports whether a fetch is outstanding. List pages render this
// as an overlay rather than blanking the table.
func (f *Fetcher) Loading() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.loading
}

// Close aborts any in-flight fetch; teardown of the governing page must
// call it so no state update lands after unmount.
func (f *Fetcher) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	f.loading = false
	if f.cancel != nil {
		f.cancel()
		f.cancel = nil
	}
}
