package inventory

// resolver.go links a record's free-text department name to a canonical
// Department. Resolution is exact-or-case-insensitive against name and short
// name only; there is no fuzzy matching, and a miss is a soft condition: the
// record keeps an empty DepartmentID and is retained.

import "strings"

// Resolver matches department names against a canonical roster.
type Resolver struct {
	byKey map[string]*Department
}

// NewResolver builds a resolver over the given roster. Both Name and
// ShortName are valid match keys, compared case-insensitively after trimming.
func NewResolver(roster []Department) *Resolver {
	r := &Resolver{byKey: make(map[string]*Department, len(roster)*2)}
	for i := range roster {
		d := &roster[i]
		for _, key := range []string{d.Name, d.ShortName} {
			key = strings.ToLower(strings.TrimSpace(key))
			if key == "" {
				continue
			}
			if _, exists := r.byKey[key]; !exists {
				r.byKey[key] = d
			}
		}
	}
	return r
}

// Lookup returns the canonical department for a free-text name, or nil when
// no roster entry matches.
func (r *Resolver) Lookup(name string) *Department {
	return r.byKey[strings.ToLower(strings.TrimSpace(name))]
}

// Resolve populates rec.DepartmentID when the department name matches the
// roster. Unmatched names leave the ID empty; the record is still valid.
func (r *Resolver) Resolve(rec *Record) {
	if d := r.Lookup(rec.DepartmentName); d != nil {
		rec.DepartmentID = d.ID
	}
}
