package opml

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_FlattensNestedOutlines(t *testing.T) {
	doc := `<?xml version="1.0" encoding="UTF-8"?>
<opml version="2.0">
  <head><title>Subscriptions</title></head>
  <body>
    <outline text="Example" title="Example" type="rss" xmlUrl="https://example.com/feed.xml"/>
    <outline text="Tech">
      <outline text="Go Blog" type="rss" xmlUrl="https://go.dev/blog/feed.atom"/>
      <outline text="Inner">
        <outline text="Deep Feed" xmlUrl="https://deep.example.com/rss"/>
      </outline>
    </outline>
  </body>
</opml>`

	entries, err := Parse(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, Entry{Title: "Example", URL: "https://example.com/feed.xml"}, entries[0])
	assert.Equal(t, Entry{Title: "Go Blog", URL: "https://go.dev/blog/feed.atom"}, entries[1])
	assert.Equal(t, Entry{Title: "Deep Feed", URL: "https://deep.example.com/rss"}, entries[2])
}

func TestParse_TitleFallsBackToText(t *testing.T) {
	doc := `<opml version="2.0"><body>
		<outline text="Only Text" xmlUrl="https://example.com/feed.xml"/>
	</body></opml>`

	entries, err := Parse(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Only Text", entries[0].Title)
}

func TestParse_InvalidXML(t *testing.T) {
	_, err := Parse(strings.NewReader("<opml><body>"))
	require.Error(t, err)
}

func TestExport_RoundTrip(t *testing.T) {
	entries := []Entry{
		{Title: "Example", URL: "https://example.com/feed.xml"},
		{Title: "Go Blog", URL: "https://go.dev/blog/feed.atom"},
	}

	var buf bytes.Buffer
	require.NoError(t, Export(&buf, "rsso subscriptions", entries))

	out := buf.String()
	assert.Contains(t, out, `<opml version="2.0">`)
	assert.Contains(t, out, "rsso subscriptions")

	parsed, err := Parse(strings.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, entries, parsed)
}
