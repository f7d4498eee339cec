package frontier

import "sync"

// VisitedSet records URLs already admitted for one job. Entries are
// added atomically at admission time, before fetching, so the same URL
// can never be dispatched twice within a job. The set only grows; it is
// discarded with the job.
type VisitedSet struct {
	mu   sync.Mutex
	seen map[string]struct{}
}

// NewVisitedSet constructs an empty VisitedSet.
func NewVisitedSet() *VisitedSet {
	return &VisitedSet{seen: make(map[string]struct{})}
}

// TryAdd marks url as visited. Returns false if it was already present;
// the check and the insert happen under one lock.
func (v *VisitedSet) TryAdd(url string) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	if _, ok := v.seen[url]; ok {
		return false
	}
	v.seen[url] = struct{}{}
	return true
}

// Contains reports whether url has been admitted.
func (v *VisitedSet) Contains(url string) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	_, ok := v.seen[url]
	return ok
}

// Len returns the number of admitted URLs.
func (v *VisitedSet) Len() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.seen)
}
