package ingestion

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/jonathan/resume-matcher/internal/fetch"
)

// Error represents a failure to read or decode a source
type Error struct {
	Source  string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("ingestion error for %s: %s: %v", e.Source, e.Message, e.Cause)
	}
	return fmt.Sprintf("ingestion error for %s: %s", e.Source, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Document is cleaned text ready for parsing
type Document struct {
	Text string `json:"text"`
	// HiddenLinks are hyperlink targets that do not appear in Text
	HiddenLinks []string  `json:"hidden_links"`
	Metadata    *Metadata `json:"metadata"`
}

// FromText cleans plain text
func FromText(content, source string) *Document {
	text := CleanText(content)
	return &Document{
		Text:        text,
		HiddenLinks: []string{},
		Metadata:    NewMetadata(text, source, FormatText),
	}
}

// FromHTML extracts visible text and hidden hyperlinks from an HTML document
func FromHTML(r io.Reader, source string) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, &Error{Source: source, Message: "failed to parse HTML", Cause: err}
	}
	doc.Find("script, style, noscript, template").Remove()

	body := doc.Find("body")
	if body.Length() == 0 {
		body = doc.Selection
	}
	text := CleanText(fetch.BlockText(body))

	return &Document{
		Text:        text,
		HiddenLinks: hiddenLinks(doc, text),
		Metadata:    NewMetadata(text, source, FormatHTML),
	}, nil
}

// hiddenLinks returns the distinct http(s) link targets that are not spelled out in text
func hiddenLinks(doc *goquery.Document, text string) []string {
	lowerText := strings.ToLower(text)
	seen := make(map[string]bool)
	links := []string{}
	doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href := strings.TrimSpace(a.AttrOr("href", ""))
		u, err := url.Parse(href)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return
		}
		visible := strings.TrimPrefix(strings.TrimPrefix(strings.ToLower(href), "https://"), "http://")
		visible = strings.TrimSuffix(visible, "/")
		if strings.Contains(lowerText, visible) || seen[href] {
			return
		}
		seen[href] = true
		links = append(links, href)
	})
	return links
}

// FromFile reads a file, decoding HTML when the extension says so
func FromFile(path string) (*Document, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &Error{Source: path, Message: "file not found", Cause: err}
		}
		return nil, &Error{Source: path, Message: "failed to read file", Cause: err}
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		return FromHTML(bytes.NewReader(content), path)
	default:
		return FromText(string(content), path), nil
	}
}

// FromURL fetches a job posting and cleans its text
func FromURL(ctx context.Context, f fetch.Fetcher, urlStr string) (*Document, error) {
	result, err := f.Job(ctx, urlStr)
	if err != nil {
		return nil, err
	}
	text := CleanText(result.Text)
	meta := NewMetadata(text, urlStr, FormatHTML)
	meta.Platform = string(result.Platform)
	return &Document{Text: text, HiddenLinks: []string{}, Metadata: meta}, nil
}
