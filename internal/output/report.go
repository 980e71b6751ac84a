package output

import (
	"fmt"
	"io"
	"math"
	"text/tabwriter"

	"github.com/jeduden/readscore/internal/readability"
)

// Report is the analysis of one input. Path is "-" for standard input.
// Sentences is only written when non-nil.
type Report struct {
	Path      string
	Metrics   readability.Metrics
	Sentences []string
}

// WriteReports writes analysis reports in the given format.
func WriteReports(w io.Writer, format string, reports []Report) error {
	switch format {
	case "text":
		return writeReportsText(w, reports)
	case "json":
		return writeReportsJSON(w, reports)
	}
	return unknownFormat(format)
}

func writeReportsText(w io.Writer, reports []Report) error {
	for i, r := range reports {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if err := writeReportText(w, r); err != nil {
			return err
		}
	}
	return nil
}

func writeReportText(w io.Writer, r Report) error {
	m := r.Metrics
	if _, err := fmt.Fprintln(w, r.Path); err != nil {
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	lines := [][2]string{
		{"words", fmt.Sprint(m.WordCount)},
		{"sentences", fmt.Sprint(m.SentenceCount)},
		{"syllables", fmt.Sprint(m.SyllableCount)},
		{"complex words", fmt.Sprintf("%d (%.1f%%)", m.ComplexWordCount, m.ComplexWordPercentage())},
		{"avg sentence length", fmt.Sprintf("%.1f words", m.AvgWordsPerSentence())},
		{"avg syllables/word", fmt.Sprintf("%.2f", m.AvgSyllablesPerWord())},
		{"grade level", fmt.Sprintf("%.1f (%s)", m.GradeLevel, m.GradeInterpretation())},
		{"reading ease", fmt.Sprintf("%.1f (%s)", m.ReadingEase, m.EaseInterpretation())},
		{"fog index", fmt.Sprintf("%.1f", m.FogIndex)},
	}
	for _, l := range lines {
		if _, err := fmt.Fprintf(tw, "  %s\t%s\n", l[0], l[1]); err != nil {
			return err
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if r.Sentences == nil {
		return nil
	}
	if _, err := fmt.Fprintln(w, "  sentence list:"); err != nil {
		return err
	}
	for i, s := range r.Sentences {
		if _, err := fmt.Fprintf(w, "  %4d  %s\n", i+1, s); err != nil {
			return err
		}
	}
	return nil
}

type jsonReport struct {
	Path                string   `json:"path"`
	WordCount           int      `json:"word_count"`
	SentenceCount       int      `json:"sentence_count"`
	SyllableCount       int      `json:"syllable_count"`
	ComplexWordCount    int      `json:"complex_word_count"`
	GradeLevel          float64  `json:"grade_level"`
	ReadingEase         float64  `json:"reading_ease"`
	FogIndex            float64  `json:"fog_index"`
	AvgWordsPerSentence float64  `json:"avg_words_per_sentence"`
	AvgSyllablesPerWord float64  `json:"avg_syllables_per_word"`
	Grade               string   `json:"grade"`
	Ease                string   `json:"ease"`
	Sentences           []string `json:"sentences,omitempty"`
}

func writeReportsJSON(w io.Writer, reports []Report) error {
	items := make([]jsonReport, 0, len(reports))
	for _, r := range reports {
		m := r.Metrics
		items = append(items, jsonReport{
			Path:                r.Path,
			WordCount:           m.WordCount,
			SentenceCount:       m.SentenceCount,
			SyllableCount:       m.SyllableCount,
			ComplexWordCount:    m.ComplexWordCount,
			GradeLevel:          round(m.GradeLevel, 2),
			ReadingEase:         round(m.ReadingEase, 2),
			FogIndex:            round(m.FogIndex, 2),
			AvgWordsPerSentence: round(m.AvgWordsPerSentence(), 2),
			AvgSyllablesPerWord: round(m.AvgSyllablesPerWord(), 2),
			Grade:               m.GradeInterpretation(),
			Ease:                m.EaseInterpretation(),
			Sentences:           r.Sentences,
		})
	}
	return encodeJSON(w, items)
}

func round(v float64, places int) float64 {
	scale := math.Pow10(places)
	return math.Round(v*scale) / scale
}
