package lint

import (
	"bytes"
	"path/filepath"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Format is the source format of a file, derived from its extension.
type Format string

// Supported formats.
const (
	Markdown Format = "markdown"
	HTML     Format = "html"
	Plain    Format = "text"
)

// FormatOf returns the format for path. Unknown extensions are plain text.
func FormatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		return Markdown
	case ".html", ".htm":
		return HTML
	default:
		return Plain
	}
}

// File holds a parsed Markdown document and its source. Front matter is
// stripped before parsing; LineOffset records how many lines it spanned
// so that reported line numbers match the file on disk.
type File struct {
	Path        string
	Source      []byte
	FrontMatter []byte
	LineOffset  int
	AST         ast.Node
}

// NewFile strips front matter from source and parses the remainder as
// Markdown.
func NewFile(path string, source []byte) (*File, error) {
	prefix, content := StripFrontMatter(source)
	node := goldmark.DefaultParser().Parse(text.NewReader(content))

	return &File{
		Path:        path,
		Source:      content,
		FrontMatter: prefix,
		LineOffset:  bytes.Count(prefix, []byte("\n")),
		AST:         node,
	}, nil
}

// LineOfOffset converts a byte offset in Source to a 1-based line number
// in the original file.
func (f *File) LineOfOffset(offset int) int {
	if offset > len(f.Source) {
		offset = len(f.Source)
	}
	if offset < 0 {
		offset = 0
	}
	return 1 + f.LineOffset + bytes.Count(f.Source[:offset], []byte("\n"))
}

// LineOfNode returns the line of the first content line of a block node,
// or 0 when the node carries no lines.
func (f *File) LineOfNode(n ast.Node) int {
	if n.Type() != ast.TypeBlock {
		return 0
	}
	lines := n.Lines()
	if lines.Len() == 0 {
		return 0
	}
	return f.LineOfOffset(lines.At(0).Start)
}
