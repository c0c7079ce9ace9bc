package foldinput

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/giygas/af3-jobgen/foldinput/entities"
)

// methylatedCCD maps a terminal base to the CCD code of its 2'-O-methyl form
var methylatedCCD = map[rune]string{
	'A': "MAD",
	'C': "OMC",
	'G': "OMG",
	'U': "OMU",
}

// CCDCode returns the 2'-O-methyl CCD code for base, case-insensitively
func CCDCode(base rune) (string, bool) {
	code, ok := methylatedCCD[unicode.ToUpper(base)]
	return code, ok
}

// TerminalMethylation returns the modification for the last residue of
// seq. ok is false when seq is empty or its last base has no CCD code.
func TerminalMethylation(seq string) (mod entities.Modification, last rune, ok bool) {
	upper := strings.ToUpper(seq)
	if upper == "" {
		return entities.Modification{}, 0, false
	}
	last, _ = utf8.DecodeLastRuneInString(upper)
	code, found := CCDCode(last)
	if !found {
		return entities.Modification{}, last, false
	}
	return entities.Modification{
		ModificationType: code,
		BasePosition:     utf8.RuneCountInString(upper),
	}, last, true
}
