// Package ingestion turns uploaded resume files into text or pre-structured
// records ready for extraction.
package ingestion

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Upload is the result of ingesting one uploaded file. Exactly one of Text
// and Record is set: a JSON upload skips LLM extraction entirely.
type Upload struct {
	Text   string
	Record json.RawMessage
}

// FromUpload extracts resume content from an uploaded file based on its
// extension: .txt and .md pass through as cleaned text, .html/.htm is
// reduced to text, and .json is accepted as an already-structured record.
func FromUpload(filename string, data []byte) (*Upload, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".txt", ".md", "":
		return &Upload{Text: CleanText(string(data))}, nil
	case ".html", ".htm":
		text, err := htmlToText(string(data))
		if err != nil {
			return nil, err
		}
		return &Upload{Text: CleanText(text)}, nil
	case ".json":
		if !json.Valid(data) {
			return nil, fmt.Errorf("uploaded JSON is not valid")
		}
		return &Upload{Record: json.RawMessage(data)}, nil
	default:
		return nil, fmt.Errorf("unsupported file type: %s", filepath.Ext(filename))
	}
}

// htmlToText strips markup and script content and returns the body text.
func htmlToText(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}
	doc.Find("script, style, noscript").Remove()
	return doc.Find("body").Text(), nil
}
