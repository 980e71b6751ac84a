// Package segment splits prose into sentences. Periods that belong to
// abbreviations, initials, ellipses and decimal numbers do not end a
// sentence.
package segment

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Span is one sentence of the input. Start and End are byte offsets into
// the segmented text, so text[Start:End] == Text.
type Span struct {
	Text      string
	Start     int
	End       int
	WordCount int
}

// Segment splits text into ordered, non-overlapping sentence spans.
// Whitespace-only input yields no spans. Text after the last terminal
// punctuation mark becomes a final span.
func Segment(text string) []Span {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	var spans []Span
	start := skipSpace(text, 0)
	i := start
	for i < len(text) {
		r, size := utf8.DecodeRuneInString(text[i:])
		if !isTerminal(r) {
			i += size
			continue
		}

		// Extend over the whole cluster ("?!", "...") and any closing
		// quotes or brackets that follow it.
		last := i
		j := i + size
		for j < len(text) {
			r, size := utf8.DecodeRuneInString(text[j:])
			if !isTerminal(r) {
				break
			}
			last = j
			j += size
		}
		end := j
		for end < len(text) {
			r, size := utf8.DecodeRuneInString(text[end:])
			if !isCloser(r) {
				break
			}
			end += size
		}

		if end < len(text) && !isSpaceAt(text, end) {
			i = j
			continue
		}
		if text[last] == '.' && !confirmPeriod(text, last, end) {
			i = end
			continue
		}

		spans = appendSpan(spans, text, start, end)
		start = skipSpace(text, end)
		i = start
	}

	if start < len(text) {
		end := len(strings.TrimRightFunc(text, unicode.IsSpace))
		spans = appendSpan(spans, text, start, end)
	}
	return spans
}

// Count returns the number of sentences in text.
func Count(text string) int {
	return len(Segment(text))
}

// confirmPeriod decides whether the period at p ends a sentence. after
// is the offset just past the punctuation cluster.
func confirmPeriod(text string, p, after int) bool {
	if p >= 2 && text[p-1] == '.' && text[p-2] == '.' {
		return false
	}

	next := skipSpace(text, after)
	token := tokenBefore(text, p)
	if token != "" {
		if k, ok := lookup(token); ok {
			return k.closesSentence() && upperAt(text, next)
		}
		if isInitial(token) {
			if initialAt(text, next) || initialBefore(text, p-len(token)) {
				return false
			}
		}
	}

	return !continuesLower(text, next)
}

// tokenBefore returns the run of letters and periods that ends just
// before offset p, without leading periods.
func tokenBefore(text string, p int) string {
	start := p
	for start > 0 {
		r, size := utf8.DecodeLastRuneInString(text[:start])
		if r != '.' && !unicode.IsLetter(r) {
			break
		}
		start -= size
	}
	return strings.TrimLeft(text[start:p], ".")
}

func isInitial(token string) bool {
	r, size := utf8.DecodeRuneInString(token)
	return size == len(token) && unicode.IsUpper(r)
}

// initialAt reports whether a standalone "X." initial starts at pos.
func initialAt(text string, pos int) bool {
	if pos >= len(text) {
		return false
	}
	r, size := utf8.DecodeRuneInString(text[pos:])
	if !unicode.IsUpper(r) {
		return false
	}
	return pos+size < len(text) && text[pos+size] == '.'
}

// initialBefore reports whether a standalone "X." initial ends, followed
// by whitespace, just before pos.
func initialBefore(text string, pos int) bool {
	head := strings.TrimRightFunc(text[:pos], unicode.IsSpace)
	if len(head) == pos || !strings.HasSuffix(head, ".") {
		return false
	}
	head = head[:len(head)-1]
	r, size := utf8.DecodeLastRuneInString(head)
	if !unicode.IsUpper(r) {
		return false
	}
	head = head[:len(head)-size]
	if head == "" {
		return true
	}
	prev, _ := utf8.DecodeLastRuneInString(head)
	return !unicode.IsLetter(prev)
}

func upperAt(text string, pos int) bool {
	if pos >= len(text) {
		return false
	}
	r, _ := utf8.DecodeRuneInString(text[pos:])
	return unicode.IsUpper(r)
}

// continuesLower reports whether the text at pos starts with a
// lower-case letter, directly or after an opening quotation mark.
func continuesLower(text string, pos int) bool {
	if pos >= len(text) {
		return false
	}
	r, size := utf8.DecodeRuneInString(text[pos:])
	if isQuote(r) && pos+size < len(text) {
		r, _ = utf8.DecodeRuneInString(text[pos+size:])
	}
	return unicode.IsLower(r)
}

func appendSpan(spans []Span, text string, start, end int) []Span {
	if end <= start {
		return spans
	}
	s := text[start:end]
	return append(spans, Span{
		Text:      s,
		Start:     start,
		End:       end,
		WordCount: countWords(s),
	})
}

// countWords counts maximal runs of letters and digits.
func countWords(s string) int {
	n := 0
	inWord := false
	for _, r := range s {
		alnum := unicode.IsLetter(r) || unicode.IsDigit(r)
		if alnum && !inWord {
			n++
		}
		inWord = alnum
	}
	return n
}

func skipSpace(text string, pos int) int {
	for pos < len(text) {
		r, size := utf8.DecodeRuneInString(text[pos:])
		if !unicode.IsSpace(r) {
			break
		}
		pos += size
	}
	return pos
}

func isSpaceAt(text string, pos int) bool {
	r, _ := utf8.DecodeRuneInString(text[pos:])
	return unicode.IsSpace(r)
}

func isTerminal(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

func isCloser(r rune) bool {
	switch r {
	case '"', '\'', '”', '’', ')', ']':
		return true
	}
	return false
}

func isQuote(r rune) bool {
	switch r {
	case '"', '\'', '“', '‘', '”', '’':
		return true
	}
	return false
}
