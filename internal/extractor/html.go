package extractor

import (
	"bytes"
	"fmt"

	"github.com/PuerkitoBio/goquery"
)

// chromeSelector matches non-content page elements stripped before
// text extraction.
const chromeSelector = "script, style, nav, footer, header, aside, .menu, .sidebar"

func extractHTML(body []byte) (title, content string, err error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return "", "", fmt.Errorf("parse html: %w", err)
	}

	title = normalizeWhitespace(doc.Find("title").First().Text())

	doc.Find(chromeSelector).Remove()
	text := doc.Find("body").Text()
	if text == "" {
		text = doc.Selection.Text()
	}
	return title, normalizeWhitespace(text), nil
}
