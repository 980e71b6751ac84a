package readability

// Metrics is the result of one analysis. Averages and interpretations
// are derived from the stored counts on demand.
type Metrics struct {
	GradeLevel       float64 `json:"grade_level"`
	ReadingEase      float64 `json:"reading_ease"`
	FogIndex         float64 `json:"fog_index"`
	WordCount        int     `json:"word_count"`
	SentenceCount    int     `json:"sentence_count"`
	SyllableCount    int     `json:"syllable_count"`
	ComplexWordCount int     `json:"complex_word_count"`
}

// Empty is the result for empty or unanalyzable text.
var Empty = Metrics{}

// IsEmpty reports whether m is the empty result.
func (m Metrics) IsEmpty() bool {
	return m == Empty
}

// AvgWordsPerSentence returns WordCount / SentenceCount, or 0.
func (m Metrics) AvgWordsPerSentence() float64 {
	if m.SentenceCount == 0 {
		return 0
	}
	return float64(m.WordCount) / float64(m.SentenceCount)
}

// AvgSyllablesPerWord returns SyllableCount / WordCount, or 0.
func (m Metrics) AvgSyllablesPerWord() float64 {
	if m.WordCount == 0 {
		return 0
	}
	return float64(m.SyllableCount) / float64(m.WordCount)
}

// ComplexWordPercentage returns the share of complex words in percent.
func (m Metrics) ComplexWordPercentage() float64 {
	if m.WordCount == 0 {
		return 0
	}
	return 100 * float64(m.ComplexWordCount) / float64(m.WordCount)
}

// GradeInterpretation describes GradeLevel as a school level.
func (m Metrics) GradeInterpretation() string {
	if m.IsEmpty() {
		return "n/a"
	}
	switch g := m.GradeLevel; {
	case g < 6:
		return "elementary school"
	case g < 9:
		return "middle school"
	case g < 13:
		return "high school"
	case g < 17:
		return "college"
	default:
		return "graduate"
	}
}

// EaseInterpretation describes ReadingEase using the Flesch bands.
func (m Metrics) EaseInterpretation() string {
	if m.IsEmpty() {
		return "n/a"
	}
	switch e := m.ReadingEase; {
	case e >= 90:
		return "very easy"
	case e >= 80:
		return "easy"
	case e >= 70:
		return "fairly easy"
	case e >= 60:
		return "standard"
	case e >= 50:
		return "fairly difficult"
	case e >= 30:
		return "difficult"
	default:
		return "very confusing"
	}
}

// compute applies the three formulas to the given counts.
func compute(words, sentences, syllables, complexWords int) Metrics {
	m := Metrics{
		WordCount:        words,
		SentenceCount:    sentences,
		SyllableCount:    syllables,
		ComplexWordCount: complexWords,
	}
	wps := m.AvgWordsPerSentence()
	spw := m.AvgSyllablesPerWord()
	m.GradeLevel = FleschKincaidGrade(wps, spw)
	m.ReadingEase = FleschReadingEase(wps, spw)
	m.FogIndex = GunningFog(wps, float64(complexWords)/float64(words))
	return m
}
