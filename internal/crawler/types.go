// Package crawler defines core types shared across subsystems.
package crawler

import "time"

// JobStatus represents the lifecycle state of a crawl job.
type JobStatus string

// Job status values exposed by the tracker. RUNNING is the only
// non-terminal state; terminal states are immutable.
const (
	JobStatusRunning   JobStatus = "RUNNING"
	JobStatusCompleted JobStatus = "COMPLETED"
	JobStatusFailed    JobStatus = "FAILED"
)

// Terminal reports whether the status admits no further transitions.
func (s JobStatus) Terminal() bool {
	return s == JobStatusCompleted || s == JobStatusFailed
}

// Job is the per-crawl status record held by the tracker and returned
// to status polls.
type Job struct {
	ID           string     `json:"job_id"`
	RootURL      string     `json:"root_url"`
	MaxDepth     int        `json:"max_depth"`
	Status       JobStatus  `json:"status"`
	StartedAt    time.Time  `json:"started_at"`
	FinishedAt   *time.Time `json:"finished_at,omitempty"`
	TotalPages   int64      `json:"total_pages"`
	SuccessPages int64      `json:"success_pages"`
	FailedPages  int64      `json:"failed_pages"`
	ErrorText    string     `json:"error,omitempty"`
}

// DocumentStatus marks the persistence outcome recorded on a document.
type DocumentStatus string

// Documents are only written after successful extraction.
const DocumentStatusSuccess DocumentStatus = "SUCCESS"

// Document is the extracted-text record persisted per URL. URL is the
// unique key; a URL is written at most once per store lifetime.
type Document struct {
	URL         string         `json:"url"`
	Title       string         `json:"title"`
	Content     string         `json:"content"`
	FileType    FileType       `json:"file_type"`
	CrawledAt   time.Time      `json:"crawled_at"`
	ContentHash string         `json:"content_hash"`
	Status      DocumentStatus `json:"status"`
	ParentURL   string         `json:"parent_url,omitempty"`
	Depth       int            `json:"depth"`
}
