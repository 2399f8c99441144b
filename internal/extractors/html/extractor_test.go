package html

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quarrylabs/quarry-cli/internal/core/domain"
)

func TestNew(t *testing.T) {
	extractor := New()
	require.NotNil(t, extractor)
}

func TestSupportedMIMETypes(t *testing.T) {
	extractor := New()
	mimeTypes := extractor.SupportedMIMETypes()

	assert.Contains(t, mimeTypes, "text/html")
	assert.Contains(t, mimeTypes, "application/xhtml+xml")
}

func TestPriority(t *testing.T) {
	extractor := New()
	assert.Equal(t, 50, extractor.Priority())
}

func TestExtract_Success(t *testing.T) {
	extractor := New()
	ctx := context.Background()

	page := `<!DOCTYPE html>
<html>
<head>
<title>Quarterly Report</title>
<style>body { color: red; }</style>
<script>console.log("noise");</script>
</head>
<body>
<h1>Results</h1>
<p>Revenue grew by 12%.</p>
</body>
</html>`

	raw := &domain.RawDocument{
		CorpusID: "test-corpus",
		Path:     "reports/q3.html",
		MIMEType: "text/html",
		Content:  []byte(page),
	}

	result, err := extractor.Extract(ctx, raw)
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, "Quarterly Report", result.Title)
	assert.Contains(t, result.Text, "Results")
	assert.Contains(t, result.Text, "Revenue grew by 12%.")
	assert.NotContains(t, result.Text, "console.log")
	assert.NotContains(t, result.Text, "color: red")
	assert.NotContains(t, result.Text, "<p>")
}

func TestExtract_NilDocument(t *testing.T) {
	extractor := New()
	ctx := context.Background()

	result, err := extractor.Extract(ctx, nil)
	assert.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Nil(t, result)
}

func TestExtractHTMLTitle(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		path     string
		expected string
	}{
		{
			name:     "title tag",
			content:  "<html><head><title>My Page</title></head></html>",
			path:     "/page.html",
			expected: "My Page",
		},
		{
			name:     "title with entities",
			content:  "<title>Q&amp;A Session</title>",
			path:     "/page.html",
			expected: "Q&A Session",
		},
		{
			name:     "empty title falls back to filename",
			content:  "<title>  </title>",
			path:     "/docs/user_guide.html",
			expected: "user guide",
		},
		{
			name:     "no title tag",
			content:  "<p>content</p>",
			path:     "/faq-page.html",
			expected: "faq page",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, extractHTMLTitle(tc.content, tc.path))
		})
	}
}

func TestStripHTML_Entities(t *testing.T) {
	text := stripHTML("<p>fish &amp; chips &lt;tasty&gt;</p>")
	assert.Equal(t, "fish & chips <tasty>", text)
}

func TestStripHTML_Comments(t *testing.T) {
	text := stripHTML("before<!-- hidden -->after")
	assert.Equal(t, "beforeafter", text)
}
