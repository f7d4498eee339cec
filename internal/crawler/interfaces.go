package crawler

import (
	"context"
	"net/http"
	"time"
)

// DocumentStore persists extracted documents keyed by URL.
//
// Save must report ErrDuplicateURL when the URL already exists so the
// engine can treat a lost existence-check race as benign. Errors that
// indicate the store itself is unreachable must be wrapped in
// StoreUnavailableError; those abort the whole job.
type DocumentStore interface {
	Exists(ctx context.Context, url string) (bool, error)
	Save(ctx context.Context, doc Document) error
}

// Fetcher retrieves a single URL and returns the raw body plus metadata.
type Fetcher interface {
	Fetch(ctx context.Context, request FetchRequest) (FetchResponse, error)
}

// Publisher pushes document events to Pub/Sub (or similar).
type Publisher interface {
	Publish(ctx context.Context, topic string, payload any) (string, error)
}

// Hasher computes content fingerprints for deduplication.
type Hasher interface {
	Hash(data []byte) (string, error)
}

// Clock returns the current time (useful for testing).
type Clock interface {
	Now() time.Time
}

// IDGenerator produces job IDs (UUIDs).
type IDGenerator interface {
	NewID() (string, error)
}

// FetchRequest captures everything needed to fetch a URL.
type FetchRequest struct {
	JobID   string
	URL     string
	Depth   int
	Headers http.Header
}

// FetchResponse is the result returned by a Fetcher implementation.
type FetchResponse struct {
	URL        string
	StatusCode int
	Headers    http.Header
	Body       []byte
	Duration   time.Duration
}
