package ingestion

import (
	"crypto/sha256"
	"encoding/hex"
)

// Format is how a document's raw input was interpreted.
type Format string

const (
	// FormatText is plain or Markdown-ish text
	FormatText Format = "text"
	// FormatHTML is markup that was reduced to text
	FormatHTML Format = "html"
)

// Document is cleaned text together with where it came from.
type Document struct {
	Source string `json:"source"`
	Format Format `json:"format"`
	Text   string `json:"text"`
	Hash   string `json:"hash"` // SHA256 hex digest of Text
}

func newDocument(source string, format Format, text string) *Document {
	return &Document{
		Source: source,
		Format: format,
		Text:   text,
		Hash:   computeHash(text),
	}
}

func computeHash(content string) string {
	hash := sha256.Sum256([]byte(content))
	return hex.EncodeToString(hash[:])
}
