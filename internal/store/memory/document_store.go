// Package memory provides an in-memory DocumentStore for development
// and tests.
package memory

import (
	"context"
	"sync"

	"github.com/campusdocs/webharvester/internal/crawler"
)

// DocumentStore keeps documents in a map keyed by URL. Writes enforce
// the unique-URL constraint the same way the SQL store does.
type DocumentStore struct {
	mu   sync.RWMutex
	docs map[string]crawler.Document
}

// NewDocumentStore constructs an empty DocumentStore.
func NewDocumentStore() *DocumentStore {
	return &DocumentStore{docs: make(map[string]crawler.Document)}
}

// Exists reports whether a document for url has been persisted.
func (s *DocumentStore) Exists(_ context.Context, url string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.docs[url]
	return ok, nil
}

// Save inserts the document, reporting ErrDuplicateURL if the URL is
// already present.
func (s *DocumentStore) Save(_ context.Context, doc crawler.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.docs[doc.URL]; ok {
		return crawler.ErrDuplicateURL
	}
	s.docs[doc.URL] = doc
	return nil
}

// Get returns the stored document for url, if any.
func (s *DocumentStore) Get(url string) (crawler.Document, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[url]
	return doc, ok
}

// Len returns the number of persisted documents.
func (s *DocumentStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.docs)
}
