package ingestion

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

var htmlMarker = regexp.MustCompile(`(?i)<(!doctype|html|body|p|div|ul|ol|li|br|h[1-6]|span|section|article|table)\b`)

// noiseSelector lists elements that never carry resume or job content.
const noiseSelector = "script, style, noscript, template, iframe, svg, nav, footer, header, form, button, .cookie-banner, .popup"

var contentSelectors = []string{
	".job-description",
	"#job-description",
	"[data-testid='job-description']",
	"main",
	"article",
	"[role='main']",
}

var blockElements = map[string]bool{
	"p": true, "div": true, "section": true, "article": true, "main": true,
	"ul": true, "ol": true, "table": true, "tr": true, "blockquote": true,
	"pre": true, "dl": true, "dt": true, "dd": true,
}

// LooksLikeHTML reports whether text appears to be markup rather than plain text.
func LooksLikeHTML(text string) bool {
	return htmlMarker.MatchString(text)
}

// HTMLToText reduces an HTML document or fragment to cleaned text. Source formatting
// whitespace is ignored; list items become "- " bullets and headings become Markdown
// headings so CleanText keeps the structure.
func HTMLToText(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	doc.Find(noiseSelector).Remove()

	var root *goquery.Selection
	for _, selector := range contentSelectors {
		if selection := doc.Find(selector); selection.Length() > 0 {
			root = selection.First()
			break
		}
	}
	if root == nil {
		root = doc.Find("body")
	}

	var b strings.Builder
	render(root, &b)

	lines := strings.Split(b.String(), "\n")
	for i, line := range lines {
		lines[i] = strings.Join(strings.Fields(line), " ")
	}
	return CleanText(strings.Join(lines, "\n")), nil
}

func render(sel *goquery.Selection, b *strings.Builder) {
	sel.Contents().Each(func(_ int, child *goquery.Selection) {
		name := goquery.NodeName(child)
		switch {
		case name == "#text":
			b.WriteString(whitespaceRun.ReplaceAllString(child.Text(), " "))
		case name == "br":
			b.WriteString("\n")
		case name == "li":
			b.WriteString("\n- ")
			render(child, b)
		case headingLevel(name) > 0:
			b.WriteString("\n\n" + strings.Repeat("#", headingLevel(name)) + " ")
			render(child, b)
			b.WriteString("\n\n")
		case blockElements[name]:
			b.WriteString("\n")
			render(child, b)
			b.WriteString("\n")
		case name == "td" || name == "th":
			render(child, b)
			b.WriteString(" ")
		default:
			render(child, b)
		}
	})
}

func headingLevel(name string) int {
	if len(name) == 2 && name[0] == 'h' && name[1] >= '1' && name[1] <= '6' {
		return int(name[1] - '0')
	}
	return 0
}
