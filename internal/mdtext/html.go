package mdtext

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const (
	htmlNoise  = "script, style, noscript, template, nav, footer, pre, code"
	htmlBlocks = "p, h1, h2, h3, h4, h5, h6, li, blockquote, dt, dd, td, th, figcaption"
)

// HTMLBlocks parses an HTML document and returns the text of its block
// elements in document order. Scripts, styles, navigation and code are
// dropped. A document without block elements yields its body text.
func HTMLBlocks(r io.Reader) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}
	doc.Find(htmlNoise).Remove()

	var blocks []string
	doc.Find(htmlBlocks).Each(func(_ int, s *goquery.Selection) {
		// Nested blocks are visited on their own.
		if s.Find(htmlBlocks).Length() > 0 {
			return
		}
		if text := cleanWhitespace(s.Text()); text != "" {
			blocks = append(blocks, text)
		}
	})
	if len(blocks) == 0 {
		if text := cleanWhitespace(doc.Find("body").Text()); text != "" {
			blocks = append(blocks, text)
		}
	}
	return blocks, nil
}

// ExtractHTMLText returns the prose of an HTML document, one block per
// line.
func ExtractHTMLText(r io.Reader) (string, error) {
	blocks, err := HTMLBlocks(r)
	if err != nil {
		return "", err
	}
	return JoinBlocks(blocks), nil
}

func cleanWhitespace(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
