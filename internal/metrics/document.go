package metrics

import (
	"bytes"
	"context"
	"fmt"

	"github.com/jeduden/readscore/internal/lint"
	"github.com/jeduden/readscore/internal/mdtext"
	"github.com/jeduden/readscore/internal/readability"
)

// Document is the shared metric input for a single file. The prose and
// its analysis are computed lazily and cached, so every metric of a row
// reuses one readability pass. A Document is not safe for concurrent use.
type Document struct {
	Path   string
	Source []byte
	Format lint.Format

	calc *readability.Calculator

	prose      string
	proseReady bool
	proseErr   error

	analysis      readability.Metrics
	analysisReady bool
}

// NewDocument constructs a Document for path. The format is derived from
// the extension. A nil calculator uses the default word tokenizer.
func NewDocument(path string, source []byte, calc *readability.Calculator) *Document {
	if calc == nil {
		calc = readability.New(mdtext.Tokenizer{})
	}
	return &Document{
		Path:   path,
		Source: source,
		Format: lint.FormatOf(path),
		calc:   calc,
	}
}

// Prose returns the analyzable text of the document: Markdown and HTML
// are reduced to their prose blocks, plain text is used as is.
func (d *Document) Prose() (string, error) {
	if d.proseReady {
		return d.prose, d.proseErr
	}
	d.proseReady = true

	switch d.Format {
	case lint.Markdown:
		f, err := lint.NewFile(d.Path, d.Source)
		if err != nil {
			d.proseErr = fmt.Errorf("parsing markdown: %w", err)
			return "", d.proseErr
		}
		d.prose = mdtext.ExtractProse(f.AST, f.Source)
	case lint.HTML:
		text, err := mdtext.ExtractHTMLText(bytes.NewReader(d.Source))
		if err != nil {
			d.proseErr = err
			return "", d.proseErr
		}
		d.prose = text
	default:
		d.prose = string(d.Source)
	}
	return d.prose, nil
}

// Analysis returns the readability metrics of the document prose.
func (d *Document) Analysis() (readability.Metrics, error) {
	return d.AnalysisContext(context.Background())
}

// AnalysisContext is Analysis with cancellation. A cancelled analysis is
// not cached.
func (d *Document) AnalysisContext(ctx context.Context) (readability.Metrics, error) {
	if d.analysisReady {
		return d.analysis, nil
	}
	text, err := d.Prose()
	if err != nil {
		return readability.Empty, err
	}
	m, err := d.calc.AnalyzeContext(ctx, text)
	if err != nil {
		return readability.Empty, err
	}
	d.analysis = m
	d.analysisReady = true
	return d.analysis, nil
}

// Sentences returns the sentences of the document prose.
func (d *Document) Sentences() ([]string, error) {
	text, err := d.Prose()
	if err != nil {
		return nil, err
	}
	return mdtext.SplitSentences(text), nil
}
