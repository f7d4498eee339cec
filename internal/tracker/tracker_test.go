package tracker

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/campusdocs/webharvester/internal/crawler"
)

type fakeClock struct{ now time.Time }

func (c fakeClock) Now() time.Time { return c.now }

func newTestTracker() *Tracker {
	return New(fakeClock{now: time.Unix(1000, 0).UTC()}, zap.NewNop())
}

func TestTrackerCreateAndSnapshot(t *testing.T) {
	t.Parallel()

	tr := newTestTracker()
	tr.Create("job-1", "https://example.edu/", 2)

	job, ok := tr.Snapshot("job-1")
	require.True(t, ok)
	require.Equal(t, crawler.JobStatusRunning, job.Status)
	require.Equal(t, "https://example.edu/", job.RootURL)
	require.Equal(t, 2, job.MaxDepth)
	require.Zero(t, job.TotalPages)
	require.Nil(t, job.FinishedAt)

	_, ok = tr.Snapshot("missing")
	require.False(t, ok)
}

func TestTrackerConcurrentCounters(t *testing.T) {
	t.Parallel()

	tr := newTestTracker()
	tr.Create("job-1", "https://example.edu/", 1)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tr.IncrementTotal("job-1")
			tr.IncrementSuccess("job-1")
			tr.IncrementFailed("job-1")
		}()
	}
	wg.Wait()

	job, ok := tr.Snapshot("job-1")
	require.True(t, ok)
	require.EqualValues(t, 50, job.TotalPages)
	require.EqualValues(t, 50, job.SuccessPages)
	require.EqualValues(t, 50, job.FailedPages)
}

func TestTrackerTerminalTransitionsIdempotent(t *testing.T) {
	t.Parallel()

	tr := newTestTracker()
	tr.Create("job-1", "https://example.edu/", 0)

	tr.Complete("job-1")
	job, _ := tr.Snapshot("job-1")
	require.Equal(t, crawler.JobStatusCompleted, job.Status)
	require.NotNil(t, job.FinishedAt)

	// A later Fail must not overwrite the terminal state.
	tr.Fail("job-1", "too late")
	job, _ = tr.Snapshot("job-1")
	require.Equal(t, crawler.JobStatusCompleted, job.Status)
	require.Empty(t, job.ErrorText)
}

func TestTrackerFailRecordsMessage(t *testing.T) {
	t.Parallel()

	tr := newTestTracker()
	tr.Create("job-1", "https://example.edu/", 0)
	tr.Fail("job-1", "document store unavailable")

	job, _ := tr.Snapshot("job-1")
	require.Equal(t, crawler.JobStatusFailed, job.Status)
	require.Equal(t, "document store unavailable", job.ErrorText)

	tr.Complete("job-1")
	job, _ = tr.Snapshot("job-1")
	require.Equal(t, crawler.JobStatusFailed, job.Status)
}

func TestTrackerUnknownJobNoPanic(t *testing.T) {
	t.Parallel()

	tr := newTestTracker()
	tr.IncrementTotal("ghost")
	tr.Complete("ghost")
	tr.Fail("ghost", "x")
}
