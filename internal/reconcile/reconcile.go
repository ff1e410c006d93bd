// Package reconcile maps arbitrary source columns onto the canonical
// schema using a priority-ordered alias table.
package reconcile

import (
	"strings"

	"github.com/intelligrit/listnorm/internal/schema"
	"github.com/intelligrit/listnorm/internal/table"
)

// Config is the immutable data the reconciler runs on. Tests may inject
// alternate schemas and alias sets.
type Config struct {
	Fields  []string
	Aliases map[string][]string
	Country string
}

// DefaultConfig returns the production schema, aliases and country default.
func DefaultConfig() Config {
	return Config{
		Fields:  schema.Fields,
		Aliases: schema.Aliases,
		Country: schema.DefaultCountry,
	}
}

// Binding records that one source column feeds one canonical field.
type Binding struct {
	Field  string
	Source string
	col    int
}

// Reconciler maps source columns to canonical fields.
type Reconciler struct {
	cfg Config
}

// New returns a Reconciler over the given configuration.
func New(cfg Config) *Reconciler {
	return &Reconciler{cfg: cfg}
}

// Fields returns the canonical field order this reconciler emits.
func (r *Reconciler) Fields() []string {
	return r.cfg.Fields
}

// Mapping computes the claim plan for a table without copying any values.
//
// Canonical fields are walked in declared order and their alias lists in
// priority order; each alias claims the first unclaimed source column whose
// name matches case-insensitively. A source column is claimed at most once,
// so an ambiguous header goes to whichever canonical field is processed
// first. After the alias pass, a second source column named like a primary
// phone is bound to phone_no2 unless phone_no2 was already claimed through
// its own alias list (an explicit alias wins over the positional override).
func (r *Reconciler) Mapping(t *table.Table) []Binding {
	claimed := make(map[int]bool)
	bound := make(map[string]bool)
	var bindings []Binding

	for _, field := range r.cfg.Fields {
		for _, alias := range r.cfg.Aliases[field] {
			col := -1
			for i, h := range t.Headers {
				if !claimed[i] && strings.EqualFold(strings.TrimSpace(h), alias) {
					col = i
					break
				}
			}
			if col < 0 {
				continue
			}
			claimed[col] = true
			bound[field] = true
			bindings = append(bindings, Binding{Field: field, Source: t.Headers[col], col: col})
			break
		}
	}

	if !bound["phone_no2"] {
		phoneAliases := make(map[string]bool)
		for _, a := range r.cfg.Aliases["phone_no_1"] {
			phoneAliases[strings.ToLower(a)] = true
		}
		var phoneCols []int
		for i, h := range t.Headers {
			if phoneAliases[strings.ToLower(strings.TrimSpace(h))] {
				phoneCols = append(phoneCols, i)
			}
		}
		if len(phoneCols) > 1 {
			col := phoneCols[1]
			claimed[col] = true
			bindings = append(bindings, Binding{Field: "phone_no2", Source: t.Headers[col], col: col})
		}
	}

	return bindings
}

// Reconcile turns raw table rows into partially-populated canonical rows.
// Mapped values are copied through nan normalization, country is stamped
// with the configured default, and unmapped fields stay empty.
func (r *Reconciler) Reconcile(t *table.Table) []schema.Row {
	bindings := r.Mapping(t)

	rows := make([]schema.Row, t.Len())
	for i := range rows {
		row := make(schema.Row, len(r.cfg.Fields))
		for _, f := range r.cfg.Fields {
			row[f] = ""
		}
		for _, b := range bindings {
			row[b.Field] = schema.Normalize(t.Cell(i, b.col))
		}
		row["country"] = r.cfg.Country
		rows[i] = row
	}
	return rows
}
