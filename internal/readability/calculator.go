// Package readability computes Flesch-Kincaid grade level, Flesch
// reading ease and Gunning fog index for English prose.
//
// A Calculator is safe for concurrent use. It holds no per-call state;
// every analysis segments, tokenizes and counts the text from scratch.
package readability

import (
	"context"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"

	"github.com/jeduden/readscore/internal/segment"
	"github.com/jeduden/readscore/internal/syllable"
)

// Tokenizer splits text into words. The calculator does not decide what
// a word is; the host supplies the tokenizer.
type Tokenizer interface {
	Words(text string) []string
}

// TokenizerFunc adapts a function to the Tokenizer interface.
type TokenizerFunc func(text string) []string

// Words implements Tokenizer.
func (f TokenizerFunc) Words(text string) []string { return f(text) }

// Completion is delivered to observers after each finished analysis.
type Completion struct {
	ID       uuid.UUID
	Metrics  Metrics
	Duration time.Duration
}

// Observer receives completion notifications. Observers run on the
// goroutine that performed the analysis and must not block.
type Observer func(Completion)

// Option configures a Calculator.
type Option func(*Calculator)

// WithObserver registers an observer for completion notifications.
func WithObserver(o Observer) Option {
	return func(c *Calculator) {
		if o != nil {
			c.observers = append(c.observers, o)
		}
	}
}

// WithClock replaces the clock used to measure analysis duration.
func WithClock(now func() time.Time) Option {
	return func(c *Calculator) {
		if now != nil {
			c.now = now
		}
	}
}

// Calculator turns text into Metrics.
type Calculator struct {
	tokenizer Tokenizer
	observers []Observer
	now       func() time.Time
}

// New returns a Calculator that splits words with tok. A nil tok splits
// on runs of letters, digits and inner apostrophes.
func New(tok Tokenizer, opts ...Option) *Calculator {
	if tok == nil {
		tok = TokenizerFunc(letterRuns)
	}
	c := &Calculator{
		tokenizer: tok,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Analyze computes metrics for text. Empty or whitespace-only text, and
// text without sentences or words, yields Empty.
func (c *Calculator) Analyze(text string) Metrics {
	start := c.now()
	m := c.analyze(text)
	c.notify(m, c.now().Sub(start))
	return m
}

// Result is the outcome of an asynchronous analysis.
type Result struct {
	Metrics Metrics
	Err     error
}

// AnalyzeAsync runs Analyze on a new goroutine. The returned channel
// receives exactly one Result and is then closed. If ctx is done before
// the analysis starts, the Result carries ctx.Err() and nothing is
// computed; once started, the analysis runs to completion.
func (c *Calculator) AnalyzeAsync(ctx context.Context, text string) <-chan Result {
	ch := make(chan Result, 1)
	go func() {
		defer close(ch)
		if err := ctx.Err(); err != nil {
			ch <- Result{Err: err}
			return
		}
		ch <- Result{Metrics: c.Analyze(text)}
	}()
	return ch
}

// AnalyzeContext is the blocking form of AnalyzeAsync. It returns early
// with ctx.Err() if ctx is done while waiting; an analysis that already
// started still finishes and notifies observers.
func (c *Calculator) AnalyzeContext(ctx context.Context, text string) (Metrics, error) {
	select {
	case res := <-c.AnalyzeAsync(ctx, text):
		return res.Metrics, res.Err
	case <-ctx.Done():
		return Empty, ctx.Err()
	}
}

func (c *Calculator) analyze(text string) Metrics {
	if strings.TrimSpace(text) == "" {
		return Empty
	}

	sentences := segment.Count(text)
	if sentences == 0 {
		return Empty
	}
	words := c.tokenizer.Words(text)
	if len(words) == 0 {
		return Empty
	}

	syllables, complexWords := 0, 0
	for _, w := range words {
		syllables += syllable.Count(w)
		if syllable.IsComplex(w) {
			complexWords++
		}
	}
	return compute(len(words), sentences, syllables, complexWords)
}

func (c *Calculator) notify(m Metrics, d time.Duration) {
	if len(c.observers) == 0 {
		return
	}
	ev := Completion{
		ID:       uuid.New(),
		Metrics:  m,
		Duration: d,
	}
	for _, o := range c.observers {
		o(ev)
	}
}

// letterRuns splits text on everything but letters, digits and
// apostrophes, then trims apostrophes that quote rather than join.
func letterRuns(text string) []string {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\'' && r != '’'
	})
	words := fields[:0]
	for _, f := range fields {
		if f = strings.Trim(f, "'’"); f != "" {
			words = append(words, f)
		}
	}
	return words
}
