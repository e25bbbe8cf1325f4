// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/resume-editor/internal/ingestion"
	"github.com/jonathan/resume-editor/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
	// maxPreviewLines is how many lines of an input document are shown
	maxPreviewLines = 8
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s │\n", pad(title, boxWidth-4))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %s │\n", pad(truncate(line, boxWidth-4), boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintDocument outputs how an input was read: its format, hash and the first lines of
// the cleaned text.
func (p *Printer) PrintDocument(label string, doc *ingestion.Document) {
	if doc == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Source:  %s\n", doc.Source))
	sb.WriteString(fmt.Sprintf("Format:  %s\n", doc.Format))
	sb.WriteString(fmt.Sprintf("SHA256:  %s\n", truncate(doc.Hash, 16)))

	lines := strings.Split(doc.Text, "\n")
	sb.WriteString(fmt.Sprintf("Lines:   %d\n\n", len(lines)))
	count := min(len(lines), maxPreviewLines)
	for i := 0; i < count; i++ {
		sb.WriteString(lines[i])
		sb.WriteString("\n")
	}
	if len(lines) > maxPreviewLines {
		sb.WriteString(fmt.Sprintf("... and %d more lines\n", len(lines)-maxPreviewLines))
	}

	p.printBox(strings.ToUpper(label), strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSections outputs an outline of the sections with a preview of each one's content.
func (p *Printer) PrintSections(sections []types.Section) {
	if len(sections) == 0 {
		p.printBox("RESUME SECTIONS", "No sections")
		return
	}

	var sb strings.Builder
	for i, s := range sections {
		sb.WriteString(fmt.Sprintf("#%d  %s [%s]\n", i, s.Name, s.Type))
		for _, line := range preview(s.Content) {
			sb.WriteString("    ")
			sb.WriteString(line)
			sb.WriteString("\n")
		}
		if i < len(sections)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("RESUME SECTIONS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintMissingKeywords groups the missing keywords of a scan by category.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintMissingKeywords(result types.ScanResult) {
	if len(result.Missing) == 0 {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %s │\n", pad("✅ NO MISSING KEYWORDS", boxWidth-4))
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	order := []types.KeywordCategory{
		types.CategoryTechnical,
		types.CategorySoft,
		types.CategoryCredential,
		types.CategoryGeneral,
	}
	byCategory := map[types.KeywordCategory][]string{}
	for _, kw := range result.Missing {
		byCategory[kw.Category] = append(byCategory[kw.Category], kw.Term)
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Missing %d of %d keywords:\n", result.MissingCount, result.TotalKeywords))
	for _, category := range order {
		terms := byCategory[category]
		if len(terms) == 0 {
			continue
		}
		sb.WriteString(fmt.Sprintf("\n%s:\n", category))
		count := min(len(terms), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", terms[i]))
		}
		if len(terms) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(terms)-maxItemsToShow))
		}
	}

	p.printBox("MISSING KEYWORDS", strings.TrimSuffix(sb.String(), "\n"))
}

// preview summarizes section content in at most maxItemsToShow+1 lines.
func preview(content types.Content) []string {
	var items []string
	switch c := content.(type) {
	case types.TextContent:
		if text := strings.TrimSpace(string(c)); text != "" {
			return []string{strings.Join(strings.Fields(text), " ")}
		}
		return nil
	case types.ExperienceContent:
		for _, e := range c {
			items = append(items, fmt.Sprintf("%s, %s (%s)", e.Title, e.Company, e.Dates))
		}
	case types.EducationContent:
		for _, e := range c {
			items = append(items, fmt.Sprintf("%s, %s (%s)", e.Degree, e.School, e.Year))
		}
	case types.ListContent:
		for _, item := range c {
			items = append(items, item.Text)
		}
	}

	count := min(len(items), maxItemsToShow)
	lines := make([]string, 0, count+1)
	for _, item := range items[:count] {
		lines = append(lines, "• "+item)
	}
	if len(items) > maxItemsToShow {
		lines = append(lines, fmt.Sprintf("... and %d more", len(items)-maxItemsToShow))
	}
	return lines
}

func truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width-3]) + "..."
}

func pad(s string, width int) string {
	n := len([]rune(s))
	if n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}
