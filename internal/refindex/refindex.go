// Package refindex loads the India Post pincode reference table into a
// lookup keyed by pincode, plus derived sets of known district and state
// names for reverse matching against free-text addresses.
package refindex

import (
	"fmt"
	"strings"

	"github.com/intelligrit/listnorm/internal/schema"
	"github.com/intelligrit/listnorm/internal/table"
)

// Record is the location data held for one pincode.
type Record struct {
	District  string
	StateName string
	Latitude  string
	Longitude string
}

// Index is a read-only pincode lookup. Safe to share across goroutines
// once built.
type Index struct {
	records map[string]Record
	cities  map[string]bool
	states  map[string]bool
}

// Empty returns an index with no entries. Lookups miss and name matching
// always fails, degrading enrichment to a no-op for pincode-derived fields.
func Empty() *Index {
	return &Index{
		records: map[string]Record{},
		cities:  map[string]bool{},
		states:  map[string]bool{},
	}
}

// Build reads the reference CSV at path. It always returns a usable index:
// on any read or parse failure the index is empty and the error describes
// why, so the caller can warn and continue.
func Build(path string) (*Index, error) {
	t, err := table.ReadFile(path)
	if err != nil {
		return Empty(), err
	}
	return FromTable(t)
}

// FromTable builds an index from an already-loaded table. The table must
// carry a pincode column; district, statename, latitude and longitude are
// read when present. Rows without a pincode are dropped and the first
// occurrence of a pincode wins.
func FromTable(t *table.Table) (*Index, error) {
	pinCol, ok := t.Column("pincode")
	if !ok {
		return Empty(), fmt.Errorf("reference table has no pincode column")
	}
	distCol, _ := t.Column("district")
	stateCol, _ := t.Column("statename")
	latCol, _ := t.Column("latitude")
	lonCol, _ := t.Column("longitude")

	idx := Empty()
	for i := 0; i < t.Len(); i++ {
		pin := strings.TrimSpace(t.Cell(i, pinCol))
		if schema.IsEmpty(pin) {
			continue
		}

		district := strings.TrimSpace(t.Cell(i, distCol))
		state := strings.TrimSpace(t.Cell(i, stateCol))
		if district != "" {
			idx.cities[strings.ToLower(district)] = true
		}
		if state != "" {
			idx.states[strings.ToLower(state)] = true
		}

		if _, seen := idx.records[pin]; seen {
			continue
		}
		idx.records[pin] = Record{
			District:  district,
			StateName: state,
			Latitude:  strings.TrimSpace(t.Cell(i, latCol)),
			Longitude: strings.TrimSpace(t.Cell(i, lonCol)),
		}
	}
	return idx, nil
}

// Lookup returns the record for a pincode, trimming the key first.
func (idx *Index) Lookup(pincode string) (Record, bool) {
	rec, ok := idx.records[strings.TrimSpace(pincode)]
	return rec, ok
}

// IsCity reports whether token matches a known district name. Token must
// already be lowercased.
func (idx *Index) IsCity(token string) bool {
	return idx.cities[token]
}

// IsState reports whether token matches a known state name. Token must
// already be lowercased.
func (idx *Index) IsState(token string) bool {
	return idx.states[token]
}

// Size returns the number of indexed pincodes.
func (idx *Index) Size() int {
	return len(idx.records)
}
