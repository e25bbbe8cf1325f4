package ingestion

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"Empty input", "", ""},
		{"Only whitespace", "   \n  \n  ", ""},
		{"Collapses inner spaces", "Line    with \t multiple    spaces", "Line with multiple spaces"},
		{"Normalizes line endings", "Line 1\r\nLine 2\rLine 3", "Line 1\nLine 2\nLine 3"},
		{"Keeps one blank line between blocks", "Line 1\n\n\n\n\nLine 2", "Line 1\n\nLine 2"},
		{"Headings flush left", "   ## Responsibilities", "## Responsibilities"},
		{"Markdown bullets kept", "- Item 1\n* Item 2", "- Item 1\n* Item 2"},
		{"Bullet glyphs become dashes", "• Go\n·  Rust\n▪Python", "- Go\n- Rust\n- Python"},
		{"Non-breaking spaces", "Senior\u00a0\u00a0Engineer", "Senior Engineer"},
		{"Unicode kept", "Test with émojis 🚀 and spéciàl chàracters", "Test with émojis 🚀 and spéciàl chàracters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanText(tt.input))
		})
	}
}

func TestCleanText_DeterministicOutput(t *testing.T) {
	input := "Test content   with   spaces\n\n\nMultiple   blank   lines"
	assert.Equal(t, CleanText(input), CleanText(input))
}

func TestNormalize_PlainText(t *testing.T) {
	doc, err := Normalize("paste", "Go  developer\n\n\nKubernetes")
	require.NoError(t, err)

	assert.Equal(t, FormatText, doc.Format)
	assert.Equal(t, "Go developer\n\nKubernetes", doc.Text)
	assert.Equal(t, "paste", doc.Source)
	assert.Len(t, doc.Hash, 64)
}

func TestNormalize_HTML(t *testing.T) {
	doc, err := Normalize("paste", "<p>We need <b>Go</b> and <ul><li>Kubernetes</li></ul></p>")
	require.NoError(t, err)

	assert.Equal(t, FormatHTML, doc.Format)
	assert.Contains(t, doc.Text, "We need Go and")
	assert.Contains(t, doc.Text, "- Kubernetes")
}

func TestNormalize_SameTextSameHash(t *testing.T) {
	a, err := Normalize("a", "Go   developer")
	require.NoError(t, err)
	b, err := Normalize("b", "Go developer")
	require.NoError(t, err)
	c, err := Normalize("c", "Rust developer")
	require.NoError(t, err)

	assert.Equal(t, a.Hash, b.Hash)
	assert.NotEqual(t, a.Hash, c.Hash)
}

func TestFromFile_Success(t *testing.T) {
	path := filepath.Join(t.TempDir(), "job.txt")
	require.NoError(t, os.WriteFile(path, []byte("# Job Title\n\nDescription   here"), 0644))

	doc, err := FromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "# Job Title\n\nDescription here", doc.Text)
	assert.Equal(t, path, doc.Source)
}

func TestFromFile_FileNotFound(t *testing.T) {
	doc, err := FromFile("/nonexistent/file.txt")

	assert.Nil(t, doc)
	var inputErr *InputError
	require.True(t, errors.As(err, &inputErr))
	assert.Equal(t, "file not found", inputErr.Message)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestFromReader_TooLarge(t *testing.T) {
	big := strings.NewReader(strings.Repeat("a", MaxInputBytes+1))

	_, err := FromReader("stdin", big)

	var inputErr *InputError
	require.True(t, errors.As(err, &inputErr))
	assert.Contains(t, err.Error(), "stdin")
	assert.Nil(t, inputErr.Unwrap())
}

func TestNormalize_TooLarge(t *testing.T) {
	_, err := Normalize("job", strings.Repeat("a", MaxInputBytes+1))

	var inputErr *InputError
	require.True(t, errors.As(err, &inputErr))
	assert.Equal(t, "job", inputErr.Source)
}
