// Package extract holds the stateless field extractors. Each one pulls a
// typed value out of unstructured text, returns the leftmost match only,
// and reports absence through its ok result instead of failing.
package extract

import "regexp"

var (
	pincodeRe = regexp.MustCompile(`\b[1-9][0-9]{5}\b`)
	coordsRe  = regexp.MustCompile(`([-+]?[0-9]{1,2}\.[0-9]+)(?:\s*,\s*|\s+)([-+]?[0-9]{1,3}\.[0-9]+)`)
	plusRe    = regexp.MustCompile(`\b[A-Z0-9]{4,8}\+[A-Z0-9]{2,3}\b`)
	emailRe   = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)
)

// Pincode returns the first 6-digit Indian pincode token in text.
func Pincode(text string) (string, bool) {
	m := pincodeRe.FindString(text)
	return m, m != ""
}

// Coordinates returns the first latitude/longitude pair in text, matching
// patterns like "@12.345,78.901" or "12.345 78.901". Sign is optional on
// both components.
func Coordinates(text string) (lat, lon string, ok bool) {
	m := coordsRe.FindStringSubmatch(text)
	if m == nil {
		return "", "", false
	}
	return m[1], m[2], true
}

// PlusCode returns the first Google Plus Code token in text. The code is
// surfaced for manual follow-up, never resolved to coordinates.
func PlusCode(text string) (string, bool) {
	m := plusRe.FindString(text)
	return m, m != ""
}

// Email returns the first email address token in text.
func Email(text string) (string, bool) {
	m := emailRe.FindString(text)
	return m, m != ""
}
