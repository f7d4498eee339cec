// Package extractor fetches resources and converts them to plain text.
package extractor

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/campusdocs/webharvester/internal/crawler"
)

// Result carries the converted document plus the raw fetched body so
// callers can run link discovery without a second fetch.
type Result struct {
	Title   string
	Content string
	Body    []byte
}

// Service dispatches extraction by file type. Extraction has no side
// effects beyond the outbound GET, so a failed URL is safe to retry.
type Service struct {
	fetcher crawler.Fetcher
	logger  *zap.Logger
}

// New constructs a Service.
func New(fetcher crawler.Fetcher, logger *zap.Logger) *Service {
	return &Service{fetcher: fetcher, logger: logger}
}

// Extract fetches url and converts it according to fileType.
//
// HTML yields body text with chrome elements stripped and the document
// title. PDF and DOCX yield concatenated text with the URL's filename
// as title. TEXT passes the body through. EXCEL and IMAGE produce no
// text; the engine discards empty content. Legacy .doc binaries are
// not parseable and surface as a ParseError.
func (s *Service) Extract(ctx context.Context, url string, fileType crawler.FileType) (Result, error) {
	resp, err := s.fetcher.Fetch(ctx, crawler.FetchRequest{URL: url})
	if err != nil {
		return Result{}, err
	}
	s.logger.Debug("fetched resource",
		zap.String("url", url),
		zap.String("file_type", string(fileType)),
		zap.Int("bytes", len(resp.Body)),
		zap.Duration("duration", resp.Duration),
	)

	switch fileType {
	case crawler.FileTypeHTML:
		title, content, err := extractHTML(resp.Body)
		if err != nil {
			return Result{}, crawler.NewParseError(url, err)
		}
		return Result{Title: title, Content: content, Body: resp.Body}, nil
	case crawler.FileTypePDF:
		content, err := extractPDF(resp.Body)
		if err != nil {
			return Result{}, crawler.NewParseError(url, err)
		}
		return Result{Title: crawler.Filename(url), Content: content, Body: resp.Body}, nil
	case crawler.FileTypeDOCX:
		content, err := extractDOCX(resp.Body)
		if err != nil {
			return Result{}, crawler.NewParseError(url, err)
		}
		return Result{Title: crawler.Filename(url), Content: content, Body: resp.Body}, nil
	case crawler.FileTypeDOC:
		// Legacy binary Word format; no parser available.
		return Result{}, crawler.NewParseError(url, errUnsupportedDOC)
	case crawler.FileTypeText:
		return Result{
			Title:   crawler.Filename(url),
			Content: normalizeWhitespace(string(resp.Body)),
			Body:    resp.Body,
		}, nil
	default:
		// EXCEL, IMAGE: fetchable but not convertible to text.
		return Result{Title: crawler.Filename(url), Body: resp.Body}, nil
	}
}

// normalizeWhitespace collapses whitespace runs to single spaces and
// trims the ends.
func normalizeWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
