// The webharvester binary serves the crawl API: it accepts crawl jobs
// over HTTP, walks same-domain links from each root URL, extracts plain
// text from pages and documents, and persists the results.
package main
