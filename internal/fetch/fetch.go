// Package fetch retrieves job postings over HTTP and reduces their HTML to text.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
)

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 20 * time.Second

// DefaultUserAgent is the user agent string for HTTP requests.
const DefaultUserAgent = "Mozilla/5.0 (compatible; ResumeMatcher/1.0)"

// MaxBodyBytes caps how much of a response body is read.
const MaxBodyBytes = 4 << 20

// Result holds the raw and processed content from a URL fetch.
type Result struct {
	URL         string   `json:"url"`
	HTML        string   `json:"-"`
	Text        string   `json:"text"`
	ContentType string   `json:"content_type,omitempty"`
	StatusCode  int      `json:"status_code"`
	Platform    Platform `json:"platform"`
	// Rendered is true when the text came from the headless browser
	Rendered bool `json:"rendered"`
}

// Error represents an error during URL fetching.
type Error struct {
	URL     string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("fetch error for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("fetch error for %s: %s", e.URL, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Options configures the fetch behavior.
type Options struct {
	Timeout   time.Duration
	UserAgent string
	Headers   map[string]string
	// UseBrowser enables the headless browser fallback for script-rendered pages
	UseBrowser bool
	// HTTPClient overrides the client built from Timeout
	HTTPClient *http.Client
}

// DefaultOptions returns sensible defaults for fetching.
func DefaultOptions() *Options {
	return &Options{
		Timeout:   DefaultTimeout,
		UserAgent: DefaultUserAgent,
	}
}

// URL retrieves HTML content from a URL. On a non-200 status the partial
// result is returned together with the error.
func URL(ctx context.Context, urlStr string, opts *Options) (*Result, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	parsedURL, err := url.Parse(urlStr)
	if err != nil || parsedURL.Host == "" || (parsedURL.Scheme != "http" && parsedURL.Scheme != "https") {
		return nil, &Error{
			URL:     urlStr,
			Message: "invalid URL",
			Cause:   err,
		}
	}

	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: opts.Timeout}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return nil, &Error{
			URL:     urlStr,
			Message: "failed to create request",
			Cause:   err,
		}
	}
	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	req.Header.Set("User-Agent", userAgent)
	for key, value := range opts.Headers {
		req.Header.Set(key, value)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, &Error{
			URL:     urlStr,
			Message: "HTTP request failed",
			Cause:   err,
		}
	}
	defer func() { _ = resp.Body.Close() }()

	bodyBytes, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodyBytes))
	if err != nil {
		return nil, &Error{
			URL:     urlStr,
			Message: "failed to read response body",
			Cause:   err,
		}
	}

	result := &Result{
		URL:         urlStr,
		HTML:        string(bodyBytes),
		ContentType: resp.Header.Get("Content-Type"),
		StatusCode:  resp.StatusCode,
		Platform:    DetectPlatform(urlStr),
	}
	if resp.StatusCode != http.StatusOK {
		return result, &Error{
			URL:     urlStr,
			Message: fmt.Sprintf("HTTP status %d", resp.StatusCode),
		}
	}
	return result, nil
}

// Fetcher returns the text of a job posting
type Fetcher interface {
	Job(ctx context.Context, urlStr string) (*Result, error)
}

// Client fetches job postings, falling back to a headless browser for pages
// whose HTML carries too little text.
type Client struct {
	opts   *Options
	logger *zap.Logger
	render func(ctx context.Context, urlStr string, timeout time.Duration, logger *zap.Logger) (string, error)
}

// NewClient creates a Client. A nil logger disables logging.
func NewClient(opts *Options, logger *zap.Logger) *Client {
	if opts == nil {
		opts = DefaultOptions()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{opts: opts, logger: logger, render: WithBrowser}
}

// Job fetches a posting and extracts its main text with platform-specific selectors
func (c *Client) Job(ctx context.Context, urlStr string) (*Result, error) {
	result, err := URL(ctx, urlStr, c.opts)
	if err != nil {
		return nil, err
	}
	log := c.logger.With(zap.String("url", urlStr), zap.String("platform", string(result.Platform)))
	log.Debug("fetched posting", zap.Int("html_bytes", len(result.HTML)))

	contentSelectors := PlatformContentSelectors(result.Platform)
	noiseSelectors := PlatformNoiseSelectors(result.Platform)

	text, err := ExtractMainText(result.HTML, contentSelectors, noiseSelectors...)
	if err != nil {
		return nil, &Error{URL: urlStr, Message: "content extraction failed", Cause: err}
	}

	if c.opts.UseBrowser && ShouldUseBrowser(text) {
		log.Debug("content too short, rendering in browser", zap.Int("chars", len(text)), zap.Int("min", MinContentLength))
		html, renderErr := c.render(ctx, urlStr, c.opts.Timeout, c.logger)
		if renderErr != nil {
			// the HTTP text is still usable
			log.Warn("browser rendering failed", zap.Error(renderErr))
		} else if rendered, extractErr := ExtractMainText(html, contentSelectors, noiseSelectors...); extractErr == nil && len(rendered) > len(text) {
			result.HTML = html
			result.Rendered = true
			text = rendered
		}
	}

	result.Text = text
	if strings.TrimSpace(text) == "" {
		return nil, &Error{URL: urlStr, Message: "no text content"}
	}
	log.Info("extracted posting text", zap.Int("chars", len(text)), zap.Bool("rendered", result.Rendered))
	return result, nil
}

// ExtractMainText parses HTML and returns the main body text, one block per line.
// It removes noise elements using noiseSelectors, then finds content using contentSelectors.
// If no content selectors match, it falls back to the body element.
func ExtractMainText(html string, contentSelectors []string, noiseSelectors ...string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	doc.Find("nav, footer, header, script, style, noscript, .ad, .advertisement, .ads, .sidebar, .cookie-banner, .popup").Remove()
	if noiseSelector := strings.Join(noiseSelectors, ", "); noiseSelector != "" {
		doc.Find(noiseSelector).Remove()
	}

	var mainContent *goquery.Selection
	for _, selector := range contentSelectors {
		if selection := doc.Find(selector); selection.Length() > 0 {
			mainContent = selection.First()
			break
		}
	}
	if mainContent == nil {
		mainContent = doc.Find("body")
	}

	return BlockText(mainContent), nil
}

// DefaultTextSelectors returns standard selectors for general web content.
func DefaultTextSelectors() []string {
	return []string{
		"main",
		"article",
		".content",
		"#content",
		".main-content",
		"#main-content",
	}
}

// JobPostingSelectors returns selectors optimized for job board pages.
func JobPostingSelectors() []string {
	return []string{
		".job-description",
		".job-content",
		"#job-description",
		"#job-content",
		".posting-content",
		".job-details",
		"[data-testid='job-description']",
		"main",
		"article",
		".content",
		"#content",
	}
}
