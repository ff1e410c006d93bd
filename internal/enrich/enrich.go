// Package enrich backfills empty canonical fields using the pincode
// reference index and the field extractors. Every pass is conservative:
// a field that already holds a value is never touched.
package enrich

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/intelligrit/listnorm/internal/extract"
	"github.com/intelligrit/listnorm/internal/refindex"
	"github.com/intelligrit/listnorm/internal/schema"
)

// plusCodePrefix labels plus codes surfaced into the description for
// manual follow-up; they are never resolved to coordinates.
const plusCodePrefix = "Google Plus Code: "

// noteSeparator joins an appended note onto an existing description.
const noteSeparator = " | "

// Stats counts the fields filled while enriching one or more rows.
type Stats struct {
	Pincodes    int
	Cities      int
	States      int
	Areas       int
	Coordinates int
	Emails      int
	PlusCodes   int
}

// Add accumulates other into s.
func (s *Stats) Add(other Stats) {
	s.Pincodes += other.Pincodes
	s.Cities += other.Cities
	s.States += other.States
	s.Areas += other.Areas
	s.Coordinates += other.Coordinates
	s.Emails += other.Emails
	s.PlusCodes += other.PlusCodes
}

// Enricher runs the ordered enrichment passes against a reference index.
// The index is read-only, so one Enricher may serve many files.
type Enricher struct {
	index  *refindex.Index
	titler cases.Caser
}

// New returns an Enricher over the given index. A nil index behaves like
// an empty one.
func New(idx *refindex.Index) *Enricher {
	if idx == nil {
		idx = refindex.Empty()
	}
	return &Enricher{index: idx, titler: cases.Title(language.English)}
}

// Enrich mutates row in place, running each pass in order, and returns
// counts of what was filled. Passes only ever fill empty fields, so
// running Enrich twice yields the same row as running it once.
func (e *Enricher) Enrich(row schema.Row) Stats {
	var st Stats
	e.pincodeFromAddress(row, &st)
	e.decomposeAddress(row, &st)
	e.coordinatesFromPincode(row, &st)
	e.flagPlusCode(row, &st)
	e.coordinatesFromSource(row, &st)
	e.backfillEmail(row, &st)
	row.Finalize()
	return st
}

func (e *Enricher) pincodeFromAddress(row schema.Row, st *Stats) {
	if !schema.IsEmpty(row["pincode"]) || schema.IsEmpty(row["address"]) {
		return
	}
	if pin, ok := extract.Pincode(row["address"]); ok {
		row["pincode"] = pin
		st.Pincodes++
	}
}

func (e *Enricher) decomposeAddress(row schema.Row, st *Stats) {
	addr := row["address"]
	if schema.IsEmpty(addr) {
		return
	}
	if !schema.IsEmpty(row["city"]) && !schema.IsEmpty(row["state"]) {
		return
	}

	// Exact pincode lookup beats free-text matching; a hit also ends
	// decomposition for the row.
	if !schema.IsEmpty(row["pincode"]) {
		if rec, ok := e.index.Lookup(row["pincode"]); ok {
			if row.SetIfEmpty("city", rec.District) {
				st.Cities++
			}
			if row.SetIfEmpty("state", rec.StateName) {
				st.States++
			}
			return
		}
	}

	tokens := tokenize(addr)
	for _, tok := range tokens {
		if e.index.IsState(tok) {
			if row.SetIfEmpty("state", e.titler.String(tok)) {
				st.States++
			}
			break
		}
	}
	for _, tok := range tokens {
		if e.index.IsCity(tok) {
			if row.SetIfEmpty("city", e.titler.String(tok)) {
				st.Cities++
			}
			break
		}
	}

	seg, _, _ := strings.Cut(addr, ",")
	if row.SetIfEmpty("area", strings.TrimSpace(seg)) {
		st.Areas++
	}
}

func (e *Enricher) coordinatesFromPincode(row schema.Row, st *Stats) {
	if !schema.IsEmpty(row["latitude"]) && !schema.IsEmpty(row["longitude"]) {
		return
	}
	if schema.IsEmpty(row["pincode"]) {
		return
	}
	rec, ok := e.index.Lookup(row["pincode"])
	if !ok {
		return
	}
	filled := row.SetIfEmpty("latitude", rec.Latitude)
	if row.SetIfEmpty("longitude", rec.Longitude) {
		filled = true
	}
	if filled {
		st.Coordinates++
	}
}

// flagPlusCode surfaces a plus code found in the area field as a note on
// the description. Latitude/longitude are deliberately left alone.
func (e *Enricher) flagPlusCode(row schema.Row, st *Stats) {
	if schema.IsEmpty(row["area"]) {
		return
	}
	code, ok := extract.PlusCode(row["area"])
	if !ok {
		return
	}
	note := plusCodePrefix + code
	if strings.Contains(row["description"], note) {
		return
	}
	if schema.IsEmpty(row["description"]) {
		row["description"] = note
	} else {
		row["description"] += noteSeparator + note
	}
	st.PlusCodes++
}

func (e *Enricher) coordinatesFromSource(row schema.Row, st *Stats) {
	if !schema.IsEmpty(row["latitude"]) && !schema.IsEmpty(row["longitude"]) {
		return
	}
	lat, lon, ok := extract.Coordinates(row["source"])
	if !ok {
		return
	}
	filled := row.SetIfEmpty("latitude", lat)
	if row.SetIfEmpty("longitude", lon) {
		filled = true
	}
	if filled {
		st.Coordinates++
	}
}

func (e *Enricher) backfillEmail(row schema.Row, st *Stats) {
	if !schema.IsEmpty(row["email"]) {
		return
	}
	for _, field := range []string{"address", "description", "source"} {
		if email, ok := extract.Email(row[field]); ok {
			row["email"] = email
			st.Emails++
			return
		}
	}
}

// tokenize lowercases text and splits it on commas and whitespace.
func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
}
