package segment

import "strings"

// kind classifies an abbreviation by how it behaves at a sentence
// boundary.
type kind uint8

const (
	// Titles and name prefixes are always followed by a name.
	kindTitle kind = iota
	// Latin forms (e.g., i.e., cf.) introduce the rest of a sentence.
	kindLatin
	// Reference markers precede a number (fig. 3, vol. 2).
	kindReference
	// Letter initials such as J.R.R. that are not tabulated.
	kindInitials

	// Kinds below may close a sentence. A following capital letter
	// confirms the break.
	kindSuffix
	kindBusiness
	kindGeographic
	kindTime
	kindMeasure
	kindTerminal
)

// closesSentence reports whether an abbreviation of this kind may be
// the last word of a sentence.
func (k kind) closesSentence() bool {
	return k >= kindSuffix
}

// abbreviations holds abbreviations written without embedded periods,
// keyed by lower-case form.
var abbreviations = map[string]kind{
	// titles
	"mr": kindTitle, "mrs": kindTitle, "ms": kindTitle, "dr": kindTitle,
	"prof": kindTitle, "rev": kindTitle, "hon": kindTitle, "messrs": kindTitle,
	"mme": kindTitle, "mlle": kindTitle, "fr": kindTitle, "st": kindTitle,
	"mt": kindTitle, "gen": kindTitle, "col": kindTitle, "capt": kindTitle,
	"lt": kindTitle, "sgt": kindTitle, "cmdr": kindTitle, "adm": kindTitle,
	"maj": kindTitle, "gov": kindTitle, "sen": kindTitle, "pres": kindTitle,
	"supt": kindTitle, "insp": kindTitle,

	// suffixes
	"jr": kindSuffix, "sr": kindSuffix, "esq": kindSuffix, "phd": kindSuffix,

	// business forms
	"inc": kindBusiness, "ltd": kindBusiness, "corp": kindBusiness,
	"co": kindBusiness, "llc": kindBusiness, "plc": kindBusiness,
	"bros": kindBusiness, "intl": kindBusiness, "assn": kindBusiness,
	"mfg": kindBusiness,

	// geographic
	"ave": kindGeographic, "blvd": kindGeographic, "rd": kindGeographic,
	"ln": kindGeographic, "hwy": kindGeographic, "pkwy": kindGeographic,
	"sq": kindGeographic, "apt": kindReference, "ste": kindReference,

	// latin
	"vs": kindLatin, "cf": kindLatin, "viz": kindLatin, "ca": kindLatin,
	"al": kindLatin, "ibid": kindLatin,
	"etc": kindTerminal,

	// time
	"jan": kindTime, "feb": kindTime, "apr": kindTime, "jun": kindTime,
	"jul": kindTime, "aug": kindTime, "sep": kindTime, "sept": kindTime,
	"oct": kindTime, "nov": kindTime, "dec": kindTime, "tue": kindTime,
	"tues": kindTime, "thu": kindTime, "thur": kindTime, "thurs": kindTime,
	"fri": kindTime, "hr": kindTime, "hrs": kindTime, "min": kindTime,
	"mins": kindTime, "sec": kindTime, "secs": kindTime, "pm": kindTime,
	"est": kindTime, "pst": kindTime, "cst": kindTime, "mst": kindTime,
	"utc": kindTime, "gmt": kindTime,

	// measures
	"ft": kindMeasure, "lb": kindMeasure, "lbs": kindMeasure,
	"oz": kindMeasure, "yd": kindMeasure, "yds": kindMeasure,
	"mi": kindMeasure, "km": kindMeasure, "kg": kindMeasure,
	"approx": kindReference,

	// references
	"fig": kindReference, "figs": kindReference, "vol": kindReference,
	"vols": kindReference, "pp": kindReference, "ch": kindReference,
	"chap": kindReference, "sect": kindReference, "nos": kindReference,
	"eq": kindReference, "eqn": kindReference, "ref": kindReference,
	"dept": kindReference, "esp": kindReference,
}

// embedded holds abbreviations written with embedded periods, keyed by
// their lower-case form with all periods removed.
var embedded = map[string]kind{
	"eg": kindLatin, "ie": kindLatin, "nb": kindLatin, "ps": kindLatin,
	"aka": kindLatin, "et": kindLatin,
	"am": kindTime, "pm": kindTime, "ad": kindTime, "bc": kindTime,
	"bce": kindTime, "ce": kindTime,
	"us": kindGeographic, "usa": kindGeographic, "uk": kindGeographic,
	"eu": kindGeographic, "un": kindGeographic, "dc": kindGeographic,
	"phd": kindSuffix, "md": kindSuffix, "ba": kindSuffix, "ma": kindSuffix,
	"bsc": kindSuffix, "msc": kindSuffix, "jd": kindSuffix, "dds": kindSuffix,
	"rn": kindSuffix,
}

// lookup reports the abbreviation kind of the token that precedes a
// period. Tokens with embedded periods are normalized before lookup and
// fall back to initials when every segment is a single letter.
func lookup(token string) (kind, bool) {
	lower := strings.ToLower(token)
	if !strings.Contains(lower, ".") {
		k, ok := abbreviations[lower]
		return k, ok
	}
	if k, ok := embedded[strings.ReplaceAll(lower, ".", "")]; ok {
		return k, true
	}
	if singleLetterSegments(lower) {
		return kindInitials, true
	}
	return 0, false
}

func singleLetterSegments(token string) bool {
	for _, seg := range strings.Split(token, ".") {
		if len([]rune(seg)) != 1 {
			return false
		}
	}
	return true
}
