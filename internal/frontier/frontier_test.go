package frontier

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestFrontierFIFO(t *testing.T) {
	t.Parallel()

	f := New()
	f.Add(Entry{URL: "a", Depth: 0})
	f.Add(Entry{URL: "b", Depth: 1})

	first, ok := f.Next()
	if !ok || first.URL != "a" {
		t.Fatalf("Next() = %+v, %v; want a", first, ok)
	}
	second, ok := f.Next()
	if !ok || second.URL != "b" {
		t.Fatalf("Next() = %+v, %v; want b", second, ok)
	}
}

func TestFrontierDrainsWhenEmpty(t *testing.T) {
	t.Parallel()

	f := New()
	// Nothing was ever added, so Next must not block.
	if _, ok := f.Next(); ok {
		t.Fatal("Next() on empty frontier returned ok")
	}
}

func TestFrontierBlocksWhileWorkInFlight(t *testing.T) {
	t.Parallel()

	f := New()
	f.Add(Entry{URL: "root", Depth: 0})
	e, ok := f.Next()
	if !ok {
		t.Fatal("expected root entry")
	}

	done := make(chan struct{})
	go func() {
		// Blocks: queue is empty but root is still in flight and may
		// produce children.
		_, ok := f.Next()
		if ok {
			t.Error("expected drained frontier")
		}
		close(done)
	}()

	select {
	case <-done:
		t.Fatal("Next returned before in-flight entry finished")
	case <-time.After(50 * time.Millisecond):
	}

	_ = e
	f.Done()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Next did not unblock after drain")
	}
}

func TestFrontierCloseRejectsAdds(t *testing.T) {
	t.Parallel()

	f := New()
	f.Add(Entry{URL: "a"})
	f.Close()
	if f.Add(Entry{URL: "b"}) {
		t.Fatal("Add after Close succeeded")
	}
	if _, ok := f.Next(); ok {
		t.Fatal("Next after Close returned an entry")
	}
	f.Close() // idempotent
}

func TestFrontierConcurrentProducersConsumers(t *testing.T) {
	t.Parallel()

	f := New()
	const total = 200
	for i := 0; i < 8; i++ {
		f.Add(Entry{URL: "seed", Depth: 0})
	}

	var produced atomic.Int64
	produced.Store(8)
	var consumed atomic.Int64
	var wg sync.WaitGroup
	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				e, ok := f.Next()
				if !ok {
					return
				}
				consumed.Add(1)
				// Each consumed entry may fan out until the budget is spent.
				if e.Depth < 2 && produced.Add(2) <= total {
					f.Add(Entry{URL: "child", Depth: e.Depth + 1})
					f.Add(Entry{URL: "child", Depth: e.Depth + 1})
				}
				f.Done()
			}
		}()
	}
	wg.Wait()

	if got := consumed.Load(); got == 0 {
		t.Fatal("no entries consumed")
	}
	if f.Len() != 0 {
		t.Fatalf("frontier not drained, %d left", f.Len())
	}
}

func TestVisitedSetTryAdd(t *testing.T) {
	t.Parallel()

	v := NewVisitedSet()
	if !v.TryAdd("https://example.edu/") {
		t.Fatal("first TryAdd returned false")
	}
	if v.TryAdd("https://example.edu/") {
		t.Fatal("second TryAdd returned true")
	}
	if !v.Contains("https://example.edu/") {
		t.Fatal("Contains returned false for admitted URL")
	}
	if v.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", v.Len())
	}
}

func TestVisitedSetConcurrentTryAddAdmitsOnce(t *testing.T) {
	t.Parallel()

	v := NewVisitedSet()
	var wins atomic.Int64
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if v.TryAdd("https://example.edu/contended") {
				wins.Add(1)
			}
		}()
	}
	wg.Wait()
	if wins.Load() != 1 {
		t.Fatalf("TryAdd won %d times, want exactly 1", wins.Load())
	}
}
