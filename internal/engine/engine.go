// Package engine runs crawl jobs: it walks same-domain links from a
// root URL up to a depth limit, extracts text from every admitted
// resource, and persists the results.
package engine

import (
	"context"
	"errors"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/campusdocs/webharvester/internal/crawler"
	"github.com/campusdocs/webharvester/internal/extractor"
	"github.com/campusdocs/webharvester/internal/frontier"
	"github.com/campusdocs/webharvester/internal/links"
	"github.com/campusdocs/webharvester/internal/metrics"
	"github.com/campusdocs/webharvester/internal/tracker"
)

const defaultWorkers = 8

// Deps bundles the collaborators the engine needs. Publisher may be
// nil; document events are then skipped.
type Deps struct {
	Store     crawler.DocumentStore
	Extractor *extractor.Service
	Tracker   *tracker.Tracker
	Publisher crawler.Publisher
	Hasher    crawler.Hasher
	Clock     crawler.Clock
	IDs       crawler.IDGenerator
	Logger    *zap.Logger
}

// Options tunes engine behavior.
type Options struct {
	// Workers is the number of concurrent page processors per job.
	Workers int
	// Topic is the publish target for document events.
	Topic string
}

// Engine starts and supervises crawl jobs. Each Start call spawns an
// independent job with its own frontier and visited set; jobs share
// the document store, so a URL persisted by one job is skipped by all
// later ones.
type Engine struct {
	deps    Deps
	workers int
	topic   string

	mu     sync.Mutex
	active map[string]*jobRun
}

// jobRun is the mutable control block for one in-flight job.
type jobRun struct {
	frontier *frontier.Frontier
	visited  *frontier.VisitedSet
	cancel   context.CancelFunc

	mu       sync.Mutex
	canceled bool
	fatalErr error
}

func (r *jobRun) markCanceled() {
	r.mu.Lock()
	r.canceled = true
	r.mu.Unlock()
	r.cancel()
	r.frontier.Close()
}

func (r *jobRun) markFatal(err error) {
	r.mu.Lock()
	if r.fatalErr == nil {
		r.fatalErr = err
	}
	r.mu.Unlock()
	r.frontier.Close()
}

func (r *jobRun) outcome() (canceled bool, fatal error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.canceled, r.fatalErr
}

// New constructs an Engine.
func New(deps Deps, opts Options) *Engine {
	metrics.Init()
	workers := opts.Workers
	if workers <= 0 {
		workers = defaultWorkers
	}
	return &Engine{
		deps:    deps,
		workers: workers,
		topic:   opts.Topic,
		active:  make(map[string]*jobRun),
	}
}

// Start validates the request, registers a RUNNING job and launches the
// crawl in the background. It returns the new job ID immediately.
func (e *Engine) Start(ctx context.Context, rootURL string, maxDepth int) (string, error) {
	if err := crawler.ValidateRootURL(rootURL); err != nil {
		return "", err
	}
	if maxDepth < 0 {
		return "", errors.New("max depth must be >= 0")
	}
	baseDomain, err := crawler.BaseDomain(rootURL)
	if err != nil {
		return "", err
	}

	jobID, err := e.deps.IDs.NewID()
	if err != nil {
		return "", err
	}
	e.deps.Tracker.Create(jobID, rootURL, maxDepth)

	// The crawl outlives the HTTP request that started it.
	jobCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	run := &jobRun{
		frontier: frontier.New(),
		visited:  frontier.NewVisitedSet(),
		cancel:   cancel,
	}
	e.mu.Lock()
	e.active[jobID] = run
	e.mu.Unlock()

	go e.run(jobCtx, jobID, rootURL, baseDomain, maxDepth, run)
	return jobID, nil
}

// Cancel stops a running job; it transitions to FAILED once in-flight
// work unwinds. Canceling a finished job is a no-op.
func (e *Engine) Cancel(jobID string) error {
	if _, ok := e.deps.Tracker.Snapshot(jobID); !ok {
		return crawler.ErrJobNotFound
	}
	e.mu.Lock()
	run, ok := e.active[jobID]
	e.mu.Unlock()
	if !ok {
		return nil
	}
	e.deps.Logger.Info("canceling job", zap.String("job_id", jobID))
	run.markCanceled()
	return nil
}

// Shutdown cancels every in-flight job. Used on process exit.
func (e *Engine) Shutdown() {
	e.mu.Lock()
	runs := make([]*jobRun, 0, len(e.active))
	for _, run := range e.active {
		runs = append(runs, run)
	}
	e.mu.Unlock()
	for _, run := range runs {
		run.markCanceled()
	}
}

func (e *Engine) run(ctx context.Context, jobID, rootURL, baseDomain string, maxDepth int, run *jobRun) {
	defer func() {
		e.mu.Lock()
		delete(e.active, jobID)
		e.mu.Unlock()
	}()

	logger := e.deps.Logger.With(zap.String("job_id", jobID), zap.String("site", baseDomain))
	logger.Info("job started", zap.String("root_url", rootURL), zap.Int("max_depth", maxDepth))

	e.admit(ctx, jobID, run, frontier.Entry{URL: rootURL, Depth: 0})

	var wg sync.WaitGroup
	for i := 0; i < e.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			e.worker(ctx, jobID, baseDomain, maxDepth, run, logger)
		}()
	}
	wg.Wait()

	canceled, fatal := run.outcome()
	switch {
	case canceled:
		e.deps.Tracker.Fail(jobID, "crawl canceled")
		metrics.ObserveJob("canceled")
	case fatal != nil:
		e.deps.Tracker.Fail(jobID, fatal.Error())
		metrics.ObserveJob("failed")
	default:
		e.deps.Tracker.Complete(jobID)
		metrics.ObserveJob("completed")
	}

	if job, ok := e.deps.Tracker.Snapshot(jobID); ok {
		logger.Info("job finished",
			zap.String("status", string(job.Status)),
			zap.Int64("total_pages", job.TotalPages),
			zap.Int64("success_pages", job.SuccessPages),
			zap.Int64("failed_pages", job.FailedPages),
		)
	}
}

func (e *Engine) worker(ctx context.Context, jobID, baseDomain string, maxDepth int, run *jobRun, logger *zap.Logger) {
	for {
		entry, ok := run.frontier.Next()
		if !ok {
			return
		}
		metrics.IncActiveWorkers()
		e.process(ctx, jobID, baseDomain, maxDepth, run, entry, logger)
		metrics.DecActiveWorkers()
		run.frontier.Done()
	}
}

// admit reserves the URL in the visited set, probes the store for an
// earlier crawl of it, and enqueues it if new. A failing probe is fatal
// for the job since dedup can no longer be guaranteed.
func (e *Engine) admit(ctx context.Context, jobID string, run *jobRun, entry frontier.Entry) {
	if !run.visited.TryAdd(entry.URL) {
		return
	}
	exists, err := e.deps.Store.Exists(ctx, entry.URL)
	if err != nil {
		e.deps.Logger.Error("existence probe failed",
			zap.String("job_id", jobID), zap.String("url", entry.URL), zap.Error(err))
		run.markFatal(err)
		return
	}
	if exists {
		return
	}
	run.frontier.Add(entry)
}

func (e *Engine) process(ctx context.Context, jobID, baseDomain string, maxDepth int, run *jobRun, entry frontier.Entry, logger *zap.Logger) {
	e.deps.Tracker.IncrementTotal(jobID)

	fileType := crawler.ClassifyURL(entry.URL)
	result, err := e.deps.Extractor.Extract(ctx, entry.URL, fileType)
	if err != nil {
		e.deps.Tracker.IncrementFailed(jobID)
		metrics.ObservePage(entry.URL, metrics.PageStatusFailed, 0)
		logger.Warn("extraction failed",
			zap.String("url", entry.URL),
			zap.String("file_type", string(fileType)),
			zap.Error(err),
		)
		return
	}

	if strings.TrimSpace(result.Content) == "" {
		metrics.ObservePage(entry.URL, metrics.PageStatusEmpty, len(result.Body))
		logger.Debug("no text content, skipping",
			zap.String("url", entry.URL), zap.String("file_type", string(fileType)))
	} else if e.persist(ctx, jobID, run, entry, fileType, result, logger) {
		return
	}

	if fileType != crawler.FileTypeHTML || entry.Depth >= maxDepth {
		return
	}
	discovered, err := links.Discover(result.Body, entry.URL, baseDomain)
	if err != nil {
		logger.Warn("link discovery failed", zap.String("url", entry.URL), zap.Error(err))
		return
	}
	for _, list := range [][]string{discovered.Pages, discovered.Files} {
		for _, link := range list {
			e.admit(ctx, jobID, run, frontier.Entry{
				URL:       link,
				Depth:     entry.Depth + 1,
				ParentURL: entry.URL,
			})
		}
	}
}

// persist hashes and saves the extracted document. The returned bool is
// true only when the job must halt (store unreachable).
func (e *Engine) persist(ctx context.Context, jobID string, run *jobRun, entry frontier.Entry, fileType crawler.FileType, result extractor.Result, logger *zap.Logger) bool {
	hash, err := e.deps.Hasher.Hash([]byte(result.Content))
	if err != nil {
		e.deps.Tracker.IncrementFailed(jobID)
		logger.Warn("content hash failed", zap.String("url", entry.URL), zap.Error(err))
		return false
	}

	doc := crawler.Document{
		URL:         entry.URL,
		Title:       result.Title,
		Content:     result.Content,
		FileType:    fileType,
		CrawledAt:   e.deps.Clock.Now(),
		ContentHash: hash,
		Status:      crawler.DocumentStatusSuccess,
		ParentURL:   entry.ParentURL,
		Depth:       entry.Depth,
	}

	err = e.deps.Store.Save(ctx, doc)
	switch {
	case err == nil:
		e.deps.Tracker.IncrementSuccess(jobID)
		metrics.ObservePage(entry.URL, metrics.PageStatusSuccess, len(result.Body))
		e.publish(ctx, jobID, doc, logger)
	case errors.Is(err, crawler.ErrDuplicateURL):
		// Another writer won the race after our existence probe. The
		// document is persisted either way.
		e.deps.Tracker.IncrementSuccess(jobID)
		metrics.ObservePage(entry.URL, metrics.PageStatusDuplicate, len(result.Body))
		logger.Debug("duplicate url", zap.String("url", entry.URL))
	case crawler.IsStoreUnavailable(err):
		logger.Error("document store unreachable", zap.String("url", entry.URL), zap.Error(err))
		run.markFatal(err)
		return true
	default:
		e.deps.Tracker.IncrementFailed(jobID)
		metrics.ObservePage(entry.URL, metrics.PageStatusFailed, len(result.Body))
		logger.Warn("document save failed", zap.String("url", entry.URL), zap.Error(err))
	}
	return false
}

// DocumentEvent is the payload published for every persisted document.
type DocumentEvent struct {
	JobID       string           `json:"job_id"`
	URL         string           `json:"url"`
	Title       string           `json:"title"`
	FileType    crawler.FileType `json:"file_type"`
	ContentHash string           `json:"content_hash"`
	Depth       int              `json:"depth"`
}

func (e *Engine) publish(ctx context.Context, jobID string, doc crawler.Document, logger *zap.Logger) {
	if e.deps.Publisher == nil {
		return
	}
	event := DocumentEvent{
		JobID:       jobID,
		URL:         doc.URL,
		Title:       doc.Title,
		FileType:    doc.FileType,
		ContentHash: doc.ContentHash,
		Depth:       doc.Depth,
	}
	if _, err := e.deps.Publisher.Publish(ctx, e.topic, event); err != nil {
		logger.Warn("document event publish failed", zap.String("url", doc.URL), zap.Error(err))
	}
}
