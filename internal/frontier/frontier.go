// Package frontier holds the per-job work queue and visited set.
package frontier

import "sync"

// Entry is one unit of crawl work. Owned by the frontier until a
// worker dequeues it; never persisted.
type Entry struct {
	URL       string
	Depth     int
	ParentURL string
}

// Frontier is an unbounded FIFO of crawl entries supporting concurrent
// producers and consumers. It tracks in-flight work so it can tell the
// difference between "momentarily empty" and "drained": Next blocks
// while workers may still discover links, and returns false once the
// queue is empty with nothing in flight, or after Close.
type Frontier struct {
	mu      sync.Mutex
	cond    *sync.Cond
	queue   []Entry
	pending int // queued plus in-flight entries
	closed  bool
}

// New constructs an open, empty Frontier.
func New() *Frontier {
	f := &Frontier{}
	f.cond = sync.NewCond(&f.mu)
	return f
}

// Add enqueues an entry. Returns false if the frontier has been closed
// (cancellation); the entry is dropped in that case.
func (f *Frontier) Add(e Entry) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return false
	}
	f.queue = append(f.queue, e)
	f.pending++
	f.cond.Signal()
	return true
}

// Next blocks until an entry is available and returns it. It returns
// ok=false when the frontier is drained or closed. Every entry returned
// by Next must be balanced by a Done call once processing finishes.
func (f *Frontier) Next() (Entry, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for len(f.queue) == 0 && !f.closed && f.pending > 0 {
		f.cond.Wait()
	}
	if len(f.queue) == 0 {
		return Entry{}, false
	}
	e := f.queue[0]
	f.queue = f.queue[1:]
	return e, true
}

// Done marks one dequeued entry as fully processed. When the last
// pending entry completes the frontier drains and all blocked Next
// calls return.
func (f *Frontier) Done() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.pending > 0 {
		f.pending--
	}
	if f.pending == 0 {
		f.cond.Broadcast()
	}
}

// Close stops the frontier: queued entries are discarded, Add is
// rejected from now on, and blocked Next calls return false. Used for
// cancellation and fatal errors; safe to call more than once.
func (f *Frontier) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return
	}
	f.closed = true
	f.queue = nil
	f.cond.Broadcast()
}

// Len reports the number of queued (not yet dequeued) entries.
func (f *Frontier) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.queue)
}
