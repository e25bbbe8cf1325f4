// Package ingestion turns pasted or loaded resume and job-description input, plain text
// or HTML, into clean text for scanning.
package ingestion

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"regexp"
	"strings"
)

// MaxInputBytes caps how much text a single document may contain.
const MaxInputBytes = 2 << 20

var (
	innerSpace  = regexp.MustCompile(`[ \t\f\v\x{00a0}]+`)
	blankRuns   = regexp.MustCompile(`\n{3,}`)
	bulletGlyph = regexp.MustCompile(`^[•·▪◦‣∙]\s*`)
)

// CleanText normalizes line endings and whitespace while keeping headings, bullets and
// paragraph breaks. At most one blank line separates blocks.
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = cleanLine(line)
	}

	result := blankRuns.ReplaceAllString(strings.Join(lines, "\n"), "\n\n")
	return strings.TrimSpace(result)
}

func cleanLine(line string) string {
	trimmed := strings.TrimSpace(innerSpace.ReplaceAllString(line, " "))
	if trimmed == "" {
		return ""
	}

	// Markdown headings are kept flush left
	if strings.HasPrefix(trimmed, "#") {
		return trimmed
	}

	// Bullet glyphs pasted from word processors become Markdown bullets
	if bulletGlyph.MatchString(trimmed) {
		return "- " + bulletGlyph.ReplaceAllString(trimmed, "")
	}

	return trimmed
}

// Normalize cleans raw input from source, reducing it from HTML first when it looks like markup.
// Inputs over MaxInputBytes are rejected.
func Normalize(source, raw string) (*Document, error) {
	if len(raw) > MaxInputBytes {
		return nil, &InputError{Source: source, Message: "input is larger than 2 MiB"}
	}
	if !LooksLikeHTML(raw) {
		return newDocument(source, FormatText, CleanText(raw)), nil
	}
	text, err := HTMLToText(raw)
	if err != nil {
		return nil, &InputError{Source: source, Message: "could not read HTML", Cause: err}
	}
	return newDocument(source, FormatHTML, text), nil
}

// FromReader reads at most MaxInputBytes from r and normalizes it.
func FromReader(source string, r io.Reader) (*Document, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxInputBytes+1))
	if err != nil {
		return nil, &InputError{Source: source, Message: "failed to read input", Cause: err}
	}
	if len(data) > MaxInputBytes {
		return nil, &InputError{Source: source, Message: "input is larger than 2 MiB"}
	}
	return Normalize(source, string(data))
}

// FromFile reads and normalizes the file at path.
func FromFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &InputError{Source: path, Message: "file not found", Cause: err}
		}
		return nil, &InputError{Source: path, Message: "failed to open file", Cause: err}
	}
	defer func() { _ = f.Close() }()

	return FromReader(path, f)
}
