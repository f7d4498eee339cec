// Package links discovers same-domain page and file links in fetched
// HTML documents.
package links

import (
	"bytes"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/campusdocs/webharvester/internal/crawler"
)

// Discovered holds the two link classes produced from one page. Both
// are deduplicated by exact string equality and sorted.
type Discovered struct {
	Pages []string
	Files []string
}

// Discover parses the fetched HTML body and returns absolute
// same-domain links. Page links have fragment and query stripped;
// javascript: and mailto: targets are dropped. File links are links
// ending in a downloadable suffix (case-insensitive). baseDomain is
// the crawl's host with any leading "www." removed.
func Discover(body []byte, pageURL, baseDomain string) (Discovered, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return Discovered{}, fmt.Errorf("parse html: %w", err)
	}

	base, err := url.Parse(pageURL)
	if err != nil {
		return Discovered{}, fmt.Errorf("parse page url %q: %w", pageURL, err)
	}
	// A <base href> overrides the page URL for relative resolution.
	if href, ok := doc.Find("base[href]").First().Attr("href"); ok {
		if resolved := resolve(base, href); resolved != nil {
			base = resolved
		}
	}

	pages := make(map[string]struct{})
	files := make(map[string]struct{})

	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		abs := resolve(base, href)
		if abs == nil {
			return
		}
		if abs.Scheme == "javascript" || abs.Scheme == "mailto" {
			return
		}
		absStr := abs.String()
		if !strings.Contains(absStr, baseDomain) {
			return
		}

		if crawler.IsDownloadable(absStr) {
			files[absStr] = struct{}{}
			return
		}

		clean := *abs
		clean.Fragment = ""
		clean.RawQuery = ""
		cleanStr := clean.String()
		if cleanStr == "" {
			return
		}
		pages[cleanStr] = struct{}{}
	})

	return Discovered{Pages: sortedKeys(pages), Files: sortedKeys(files)}, nil
}

func resolve(base *url.URL, href string) *url.URL {
	href = strings.TrimSpace(href)
	if href == "" {
		return nil
	}
	ref, err := url.Parse(href)
	if err != nil {
		return nil
	}
	return base.ResolveReference(ref)
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
