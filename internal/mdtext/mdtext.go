// Package mdtext extracts prose from Markdown and HTML and splits it into
// words and sentences.
package mdtext

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/yuin/goldmark/ast"

	"github.com/jeduden/readscore/internal/segment"
)

// wordPattern matches letter/digit runs joined by inner apostrophes,
// hyphens or periods: "don't", "well-known", "3.14", "e.g".
var wordPattern = regexp.MustCompile(`[\p{L}\p{N}]+(?:['’.\-][\p{L}\p{N}]+)*`)

// ExtractPlainText returns the text content of node with inline markup
// removed. Soft and hard line breaks become spaces and block children are
// separated by a newline.
func ExtractPlainText(node ast.Node, source []byte) string {
	var b strings.Builder
	_ = ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			if n != node && n.Type() == ast.TypeBlock {
				b.WriteByte('\n')
			}
			return ast.WalkContinue, nil
		}
		switch t := n.(type) {
		case *ast.Text:
			b.Write(t.Segment.Value(source))
			if t.SoftLineBreak() || t.HardLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(t.Value)
		case *ast.AutoLink:
			b.Write(t.Label(source))
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(b.String())
}

// Blocks returns the plain text of each paragraph, heading and list text
// block under node, in document order. Code blocks are not included.
func Blocks(node ast.Node, source []byte) []string {
	var out []string
	_ = ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n.(type) {
		case *ast.Paragraph, *ast.Heading, *ast.TextBlock:
			if s := ExtractPlainText(n, source); s != "" {
				out = append(out, s)
			}
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return out
}

// ExtractProse returns the document text under node as prose, one block
// per line. Blocks without terminal punctuation (headings, list items) get
// a period so that they end their own sentence.
func ExtractProse(node ast.Node, source []byte) string {
	return JoinBlocks(Blocks(node, source))
}

// JoinBlocks joins text blocks into prose, closing each block that lacks
// terminal punctuation with a period.
func JoinBlocks(blocks []string) string {
	lines := make([]string, 0, len(blocks))
	for _, blk := range blocks {
		blk = strings.TrimSpace(blk)
		if blk == "" {
			continue
		}
		if !endsSentence(blk) {
			blk += "."
		}
		lines = append(lines, blk)
	}
	return strings.Join(lines, "\n")
}

func endsSentence(s string) bool {
	s = strings.TrimRight(s, "\"')]”’")
	r, _ := utf8.DecodeLastRuneInString(s)
	return r == '.' || r == '!' || r == '?'
}

// Words splits text into words.
func Words(text string) []string {
	return wordPattern.FindAllString(text, -1)
}

// CountWords returns the number of words in text.
func CountWords(text string) int {
	return len(wordPattern.FindAllStringIndex(text, -1))
}

// Tokenizer is the default word tokenizer for readability analysis.
type Tokenizer struct{}

// Words implements readability.Tokenizer.
func (Tokenizer) Words(text string) []string {
	return Words(text)
}

// SplitSentences returns the sentences of text.
func SplitSentences(text string) []string {
	spans := segment.Segment(text)
	out := make([]string, 0, len(spans))
	for _, s := range spans {
		out = append(out, s.Text)
	}
	return out
}

// CountSentences returns the number of sentences in text.
func CountSentences(text string) int {
	return segment.Count(text)
}
