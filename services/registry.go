package services

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultCampus is the canonical identifier assigned when a free-text campus
// description matches nothing in the registry. The main campus absorbs the
// unknowns; this mirrors the office's own bookkeeping.
const DefaultCampus = "Pablo Borbon"

// nameFragment maps a lowercase substring of a free-text description to a
// canonical identifier. First match wins, so more specific fragments are
// listed before the ones they contain.
type nameFragment struct {
	Fragment  string `yaml:"fragment"`
	Canonical string `yaml:"canonical"`
}

// Registry resolves free-text campus and college descriptions to canonical
// identifiers. The zero value is unusable; construct with DefaultRegistry or
// LoadRegistry.
type Registry struct {
	Campuses []nameFragment `yaml:"campuses"`
	Colleges []nameFragment `yaml:"colleges"`
}

// DefaultRegistry returns the built-in campus and college tables of the
// university.
func DefaultRegistry() *Registry {
	return &Registry{
		Campuses: []nameFragment{
			{"pablo borbon", "Pablo Borbon"},
			{"main campus", "Pablo Borbon"},
			{"alangilan", "Alangilan"},
			{"arasof", "ARASOF-Nasugbu"},
			{"nasugbu", "ARASOF-Nasugbu"},
			{"jplpc", "JPLPC-Malvar"},
			{"malvar", "JPLPC-Malvar"},
			{"lipa", "Lipa"},
			{"lemery", "Lemery"},
			{"balayan", "Balayan"},
			{"rosario", "Rosario"},
			{"san juan", "San Juan"},
			{"lobo", "Lobo"},
			{"mabini", "Mabini"},
		},
		Colleges: []nameFragment{
			{"informatics", "CICS"},
			{"computing", "CICS"},
			{"cics", "CICS"},
			{"engineering", "COE"},
			{"coe", "COE"},
			{"arts and sciences", "CAS"},
			{"cas", "CAS"},
			{"accountancy", "CABE"},
			{"business", "CABE"},
			{"cabe", "CABE"},
			{"teacher", "CTE"},
			{"education", "CTE"},
			{"cte", "CTE"},
			{"nursing", "CON"},
			{"allied health", "CON"},
			{"agriculture", "CAF"},
			{"forestry", "CAF"},
			{"industrial technology", "CIT"},
			{"cit", "CIT"},
			{"architecture", "CAFAD"},
			{"fine arts", "CAFAD"},
			{"law", "CoL"},
			{"medicine", "CoM"},
		},
	}
}

// LoadRegistry reads extra campus/college fragments from a YAML file and
// appends them after the built-in tables, so built-in matches keep priority.
// A missing path returns the defaults unchanged.
func LoadRegistry(path string) (*Registry, error) {
	reg := DefaultRegistry()
	if path == "" {
		return reg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return reg, nil
		}
		return nil, fmt.Errorf("read registry file: %w", err)
	}

	var extra Registry
	if err := yaml.Unmarshal(data, &extra); err != nil {
		return nil, fmt.Errorf("parse registry file: %w", err)
	}

	reg.Campuses = append(reg.Campuses, extra.Campuses...)
	reg.Colleges = append(reg.Colleges, extra.Colleges...)
	return reg, nil
}

// ResolveCampus maps a free-text campus description to a canonical campus
// identifier. Unmatched text falls back to DefaultCampus rather than failing
// the row.
func (r *Registry) ResolveCampus(s string) string {
	lower := strings.ToLower(strings.TrimSpace(s))
	if lower == "" {
		return DefaultCampus
	}
	for _, f := range r.Campuses {
		if strings.Contains(lower, f.Fragment) {
			return f.Canonical
		}
	}
	return DefaultCampus
}

// ResolveCollege maps a free-text college description to a canonical college
// identifier, or "" when nothing matches. Unlike campuses there is no default
// college; records without one are campus-level.
func (r *Registry) ResolveCollege(s string) string {
	lower := strings.ToLower(strings.TrimSpace(s))
	if lower == "" {
		return ""
	}
	for _, f := range r.Colleges {
		if strings.Contains(lower, f.Fragment) {
			return f.Canonical
		}
	}
	return ""
}

// CampusNames returns the distinct canonical campus identifiers in table
// order, for the collection's select field.
func (r *Registry) CampusNames() []string {
	seen := make(map[string]bool)
	var names []string
	for _, f := range r.Campuses {
		if !seen[f.Canonical] {
			seen[f.Canonical] = true
			names = append(names, f.Canonical)
		}
	}
	return names
}
