package memory

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/campusdocs/webharvester/internal/crawler"
)

func TestDocumentStoreSaveAndExists(t *testing.T) {
	t.Parallel()

	s := NewDocumentStore()
	ctx := context.Background()

	exists, err := s.Exists(ctx, "https://example.edu/a")
	if err != nil || exists {
		t.Fatalf("Exists() = %v, %v; want false, nil", exists, err)
	}

	doc := crawler.Document{URL: "https://example.edu/a", Content: "text", Status: crawler.DocumentStatusSuccess}
	if err := s.Save(ctx, doc); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	exists, err = s.Exists(ctx, "https://example.edu/a")
	if err != nil || !exists {
		t.Fatalf("Exists() = %v, %v; want true, nil", exists, err)
	}

	if err := s.Save(ctx, doc); !errors.Is(err, crawler.ErrDuplicateURL) {
		t.Fatalf("second Save() error = %v, want ErrDuplicateURL", err)
	}
	if s.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", s.Len())
	}
}

func TestDocumentStoreConcurrentSaveSingleWinner(t *testing.T) {
	t.Parallel()

	s := NewDocumentStore()
	var wg sync.WaitGroup
	var mu sync.Mutex
	wins := 0
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := s.Save(context.Background(), crawler.Document{URL: "https://example.edu/race"})
			if err == nil {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	if wins != 1 {
		t.Fatalf("expected exactly one winning save, got %d", wins)
	}
}
