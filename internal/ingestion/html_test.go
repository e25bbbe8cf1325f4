package ingestion

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLooksLikeHTML(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"<!DOCTYPE html><html><body>x</body></html>", true},
		{"<p>Hello</p>", true},
		{"Line one<br>Line two", true},
		{"<LI>Upper case tag", true},
		{"Experience with C++ and <5 years", false},
		{"plain text", false},
		{"a <b>bold</b> word", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, LooksLikeHTML(tt.input), tt.input)
	}
}

func TestHTMLToText_StructureAndNoise(t *testing.T) {
	html := `<html><head><style>.x{}</style><script>var a = 1;</script></head>
<body>
  <nav>Home | Jobs</nav>
  <h2>Requirements</h2>
  <ul>
    <li>Go   experience</li>
    <li>Kubernetes</li>
  </ul>
  <p>Nice to have:<br>Terraform</p>
  <footer>© Acme</footer>
</body></html>`

	text, err := HTMLToText(html)
	require.NoError(t, err)

	assert.Equal(t, "## Requirements\n\n- Go experience\n- Kubernetes\n\nNice to have:\nTerraform", text)
	assert.NotContains(t, text, "var a")
	assert.NotContains(t, text, "Home")
	assert.NotContains(t, text, "Acme")
}

func TestHTMLToText_PrefersJobDescriptionContainer(t *testing.T) {
	html := `<body><div class="sidebar-ish">Other jobs</div><div class="job-description"><p>Build APIs in Go</p></div></body>`

	text, err := HTMLToText(html)
	require.NoError(t, err)
	assert.Equal(t, "Build APIs in Go", text)
}

func TestHTMLToText_Empty(t *testing.T) {
	text, err := HTMLToText("")
	require.NoError(t, err)
	assert.Empty(t, text)
}
