// Package syllable estimates English syllable counts by counting vowel
// groups and correcting for silent endings.
package syllable

import (
	"strings"
)

// step adjusts a running syllable count for one spelling rule.
type step func(word string, count int) int

// steps run in order after vowel groups are counted.
var steps = []step{silentE, silentEd, silentEs}

// Count returns the estimated number of syllables in word. It never
// returns less than 1, including for empty input.
func Count(word string) int {
	w := normalize(word)
	if w == "" {
		return 1
	}
	if n, ok := exceptions[w]; ok {
		return n
	}

	n := vowelGroups(w)
	for _, s := range steps {
		n = s(w, n)
	}
	return max(n, 1)
}

// IsComplex reports whether word has three or more syllables that do not
// come from an -ing, -ed or -ly inflection.
func IsComplex(word string) bool {
	w := normalize(word)
	if w == "" || Count(w) < 3 {
		return false
	}
	root, ok := inflectionRoot(w)
	if !ok {
		return true
	}
	return Count(root) >= 3
}

func normalize(word string) string {
	return strings.ToLower(strings.TrimSpace(word))
}

// vowelGroups counts maximal runs of vowels.
func vowelGroups(w string) int {
	n := 0
	prevVowel := false
	for _, r := range w {
		v := isVowel(r)
		if v && !prevVowel {
			n++
		}
		prevVowel = v
	}
	return n
}

// silentE drops the final e of "make" but keeps it in "table".
func silentE(w string, n int) int {
	if strings.HasSuffix(w, "e") && !strings.HasSuffix(w, "le") && n > 1 {
		return n - 1
	}
	return n
}

// silentEd drops the -ed of "jumped" but keeps it in "loaded" and
// "wanted".
func silentEd(w string, n int) int {
	if len(w) < 3 || !strings.HasSuffix(w, "ed") {
		return n
	}
	switch w[len(w)-3] {
	case 'd', 't':
		return n
	}
	return n - 1
}

// silentEs drops the -es of "makes" but keeps it in "boxes" and
// "matches".
func silentEs(w string, n int) int {
	if len(w) < 3 || !strings.HasSuffix(w, "es") {
		return n
	}
	if strings.HasSuffix(w, "ches") || strings.HasSuffix(w, "shes") {
		return n
	}
	c := w[len(w)-3]
	if !isConsonant(c) {
		return n
	}
	switch c {
	case 's', 'x', 'z':
		return n
	}
	return n - 1
}

// inflectionRoot strips one -ing, -ed or -ly suffix and rebuilds the
// spelling of the root where the suffix consumed part of it.
func inflectionRoot(w string) (string, bool) {
	switch {
	case len(w) > 5 && strings.HasSuffix(w, "ing"):
		return restoreE(strings.TrimSuffix(w, "ing")), true
	case len(w) > 4 && strings.HasSuffix(w, "ed"):
		return restoreE(strings.TrimSuffix(w, "ed")), true
	case len(w) > 4 && strings.HasSuffix(w, "ly"):
		return adverbRoot(strings.TrimSuffix(w, "ly")), true
	}
	return w, false
}

// restoreE re-adds the e that -ing and -ed drop ("troubling" -> "trouble",
// "using" -> "use").
func restoreE(root string) string {
	if len(root) < 4 {
		return root + "e"
	}
	last, prev := root[len(root)-1], root[len(root)-2]
	if last == 'l' && prev != 'l' && isConsonant(prev) {
		return root + "e"
	}
	return root
}

// adverbRoot rebuilds the adjective under an -ly adverb: "possib" ->
// "possible", "happi" -> "happy". Other roots are used as stripped.
func adverbRoot(root string) string {
	switch {
	case strings.HasSuffix(root, "ab"), strings.HasSuffix(root, "ib"):
		return root + "le"
	case strings.HasSuffix(root, "i"):
		return root[:len(root)-1] + "y"
	}
	return root
}

func isVowel(r rune) bool {
	switch r {
	case 'a', 'e', 'i', 'o', 'u', 'y':
		return true
	}
	return false
}

func isConsonant(c byte) bool {
	return c >= 'a' && c <= 'z' && !isVowel(rune(c))
}
