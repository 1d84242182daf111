package ingestion

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jonathan/resume-matcher/internal/fetch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const resumeHTML = `<!doctype html>
<html><head><title>CV</title><style>body { font: 12px }</style></head>
<body>
  <h1>Jane Doe</h1>
  <p><a href="mailto:jane@example.com">jane@example.com</a> |
     <a href="https://www.linkedin.com/in/janedoe">LinkedIn</a> |
     <a href="https://github.com/janedoe">github.com/janedoe</a></p>
  <h2>Experience</h2>
  <p><b>Backend Engineer</b>, Acme Corp, 2020 - Present</p>
  <ul>
    <li>Cut p99 latency by 40% across 12 services</li>
    <li>Led migration to <a href="https://kubernetes.io">Kubernetes</a></li>
  </ul>
  <script>track()</script>
</body></html>`

func TestFromHTML(t *testing.T) {
	doc, err := FromHTML(strings.NewReader(resumeHTML), "cv.html")
	require.NoError(t, err)

	assert.Equal(t, strings.Join([]string{
		"Jane Doe",
		"jane@example.com | LinkedIn | github.com/janedoe",
		"Experience",
		"Backend Engineer, Acme Corp, 2020 - Present",
		"- Cut p99 latency by 40% across 12 services",
		"- Led migration to Kubernetes",
	}, "\n"), doc.Text)
	assert.Equal(t, []string{"https://www.linkedin.com/in/janedoe", "https://kubernetes.io"}, doc.HiddenLinks)
	assert.Equal(t, FormatHTML, doc.Metadata.Format)
	assert.NotContains(t, doc.Text, "track()")
}

func TestFromFile(t *testing.T) {
	dir := t.TempDir()
	textPath := filepath.Join(dir, "cv.txt")
	htmlPath := filepath.Join(dir, "cv.HTML")
	require.NoError(t, os.WriteFile(textPath, []byte("Jane Doe\r\n\r\n\r\n\r\nSkills:  Go"), 0o600))
	require.NoError(t, os.WriteFile(htmlPath, []byte(resumeHTML), 0o600))

	doc, err := FromFile(textPath)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe\n\nSkills: Go", doc.Text)
	assert.Equal(t, FormatText, doc.Metadata.Format)
	assert.Equal(t, textPath, doc.Metadata.Source)
	assert.Empty(t, doc.HiddenLinks)

	doc, err = FromFile(htmlPath)
	require.NoError(t, err)
	assert.Equal(t, FormatHTML, doc.Metadata.Format)
	assert.Len(t, doc.HiddenLinks, 2)
}

func TestFromFile_NotFound(t *testing.T) {
	_, err := FromFile("/nonexistent/cv.txt")
	var ingestErr *Error
	require.ErrorAs(t, err, &ingestErr)
	assert.Equal(t, "file not found", ingestErr.Message)
	assert.True(t, os.IsNotExist(ingestErr.Cause))
}

type stubFetcher struct {
	result *fetch.Result
	err    error
}

func (s stubFetcher) Job(context.Context, string) (*fetch.Result, error) {
	return s.result, s.err
}

func TestFromURL(t *testing.T) {
	f := stubFetcher{result: &fetch.Result{Text: "Backend Engineer\n\n\n\nRequirements:   Go", Platform: fetch.PlatformLever}}
	doc, err := FromURL(context.Background(), f, "https://jobs.lever.co/acme/1")
	require.NoError(t, err)
	assert.Equal(t, "Backend Engineer\n\nRequirements: Go", doc.Text)
	assert.Equal(t, "lever", doc.Metadata.Platform)
	assert.Equal(t, "https://jobs.lever.co/acme/1", doc.Metadata.Source)

	fetchErr := &fetch.Error{URL: "https://jobs.lever.co/acme/2", Message: "HTTP status 404"}
	_, err = FromURL(context.Background(), stubFetcher{err: fetchErr}, "https://jobs.lever.co/acme/2")
	assert.ErrorIs(t, err, fetchErr)
}
