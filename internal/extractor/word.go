package extractor

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

var errUnsupportedDOC = errors.New("legacy .doc format is not supported")

// extractDOCX pulls the text runs out of word/document.xml. Text inside
// table cells lives in the same w:t elements as paragraph text, so one
// pass over the part covers both.
func extractDOCX(body []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(body), int64(len(body)))
	if err != nil {
		return "", fmt.Errorf("open docx archive: %w", err)
	}

	var docXML io.ReadCloser
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			docXML, err = f.Open()
			if err != nil {
				return "", fmt.Errorf("open document part: %w", err)
			}
			break
		}
	}
	if docXML == nil {
		return "", errors.New("docx missing word/document.xml")
	}
	defer docXML.Close()

	text, err := wordMLText(docXML)
	if err != nil {
		return "", err
	}
	return normalizeWhitespace(text), nil
}

// wordMLText walks the WordprocessingML token stream collecting w:t
// character data, with paragraph and line-break boundaries turned into
// spaces.
func wordMLText(r io.Reader) (string, error) {
	decoder := xml.NewDecoder(r)
	var sb strings.Builder
	inText := false
	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("decode document part: %w", err)
		}
		switch tok := token.(type) {
		case xml.StartElement:
			switch tok.Name.Local {
			case "t":
				inText = true
			case "br", "tab":
				sb.WriteByte(' ')
			}
		case xml.EndElement:
			switch tok.Name.Local {
			case "t":
				inText = false
			case "p":
				sb.WriteByte(' ')
			}
		case xml.CharData:
			if inText {
				sb.Write(tok)
			}
		}
	}
	return sb.String(), nil
}
