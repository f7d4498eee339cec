// Package tracker keeps per-job crawl counters and lifecycle state.
package tracker

import (
	"sync"

	"go.uber.org/zap"

	"github.com/campusdocs/webharvester/internal/crawler"
)

// Tracker is the process-wide registry of crawl jobs. Counters are safe
// under concurrent workers; terminal transitions are idempotent and a
// late transition against a finished job is a silent no-op. Entries
// live until process restart.
type Tracker struct {
	mu     sync.RWMutex
	jobs   map[string]*jobState
	clock  crawler.Clock
	logger *zap.Logger
}

type jobState struct {
	mu  sync.Mutex
	job crawler.Job
}

// New constructs a Tracker.
func New(clock crawler.Clock, logger *zap.Logger) *Tracker {
	return &Tracker{
		jobs:   make(map[string]*jobState),
		clock:  clock,
		logger: logger,
	}
}

// Create registers a new RUNNING job with zeroed counters.
func (t *Tracker) Create(jobID, rootURL string, maxDepth int) crawler.Job {
	job := crawler.Job{
		ID:        jobID,
		RootURL:   rootURL,
		MaxDepth:  maxDepth,
		Status:    crawler.JobStatusRunning,
		StartedAt: t.clock.Now(),
	}
	t.mu.Lock()
	t.jobs[jobID] = &jobState{job: job}
	t.mu.Unlock()
	return job
}

// IncrementTotal bumps the dispatched-pages counter.
func (t *Tracker) IncrementTotal(jobID string) {
	t.increment(jobID, func(j *crawler.Job) { j.TotalPages++ })
}

// IncrementSuccess bumps the persisted-pages counter.
func (t *Tracker) IncrementSuccess(jobID string) {
	t.increment(jobID, func(j *crawler.Job) { j.SuccessPages++ })
}

// IncrementFailed bumps the failed-pages counter.
func (t *Tracker) IncrementFailed(jobID string) {
	t.increment(jobID, func(j *crawler.Job) { j.FailedPages++ })
}

func (t *Tracker) increment(jobID string, apply func(*crawler.Job)) {
	state, ok := t.lookup(jobID)
	if !ok {
		t.logger.Warn("counter update for unknown job", zap.String("job_id", jobID))
		return
	}
	state.mu.Lock()
	defer state.mu.Unlock()
	apply(&state.job)
}

// Complete transitions the job to COMPLETED and stamps the end time.
// No-op if the job is already terminal.
func (t *Tracker) Complete(jobID string) {
	t.finish(jobID, crawler.JobStatusCompleted, "")
}

// Fail transitions the job to FAILED with a human-readable message.
// No-op if the job is already terminal.
func (t *Tracker) Fail(jobID, message string) {
	t.finish(jobID, crawler.JobStatusFailed, message)
}

func (t *Tracker) finish(jobID string, status crawler.JobStatus, message string) {
	state, ok := t.lookup(jobID)
	if !ok {
		t.logger.Warn("terminal transition for unknown job", zap.String("job_id", jobID))
		return
	}
	state.mu.Lock()
	defer state.mu.Unlock()
	if state.job.Status.Terminal() {
		return
	}
	now := t.clock.Now()
	state.job.Status = status
	state.job.FinishedAt = &now
	state.job.ErrorText = message
}

// Snapshot returns a copy of the job's current state.
func (t *Tracker) Snapshot(jobID string) (crawler.Job, bool) {
	state, ok := t.lookup(jobID)
	if !ok {
		return crawler.Job{}, false
	}
	state.mu.Lock()
	defer state.mu.Unlock()
	job := state.job
	if state.job.FinishedAt != nil {
		finished := *state.job.FinishedAt
		job.FinishedAt = &finished
	}
	return job, true
}

func (t *Tracker) lookup(jobID string) (*jobState, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	state, ok := t.jobs[jobID]
	return state, ok
}
