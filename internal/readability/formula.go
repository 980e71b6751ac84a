package readability

import "math"

// FleschKincaidGrade returns the Flesch-Kincaid grade level, floored at 0.
// Formula: 0.39*(words/sentences) + 11.8*(syllables/words) - 15.59
func FleschKincaidGrade(wordsPerSentence, syllablesPerWord float64) float64 {
	return math.Max(0, 0.39*wordsPerSentence+11.8*syllablesPerWord-15.59)
}

// FleschReadingEase returns the Flesch reading ease score clamped to
// [0, 100].
// Formula: 206.835 - 1.015*(words/sentences) - 84.6*(syllables/words)
func FleschReadingEase(wordsPerSentence, syllablesPerWord float64) float64 {
	return clamp(206.835-1.015*wordsPerSentence-84.6*syllablesPerWord, 0, 100)
}

// GunningFog returns the Gunning fog index, floored at 0.
// Formula: 0.4*((words/sentences) + 100*(complex/words))
func GunningFog(wordsPerSentence, complexRatio float64) float64 {
	return math.Max(0, 0.4*(wordsPerSentence+100*complexRatio))
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
