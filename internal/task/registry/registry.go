// Package registry implements task-name/alias resolution, glob matching, and
// dedup (C7). Grounded on the original's name-resolution contract,
// generalized to Go's bmatcuk/doublestar for glob matching (the glob engine
// used elsewhere in this module's domain stack).
package registry

import (
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/sirupsen/logrus"
)

// Registry holds the sorted set of known task names and an alias table.
type Registry struct {
	names   map[string]struct{}
	aliases map[string][]string
	Log     *logrus.Entry
}

func New(log *logrus.Entry) *Registry {
	return &Registry{
		names:   map[string]struct{}{},
		aliases: map[string][]string{},
		Log:     log,
	}
}

func (r *Registry) Register(name string) {
	r.names[name] = struct{}{}
}

func (r *Registry) RegisterAll(names []string) {
	for _, name := range names {
		r.Register(name)
	}
}

func (r *Registry) RegisterAlias(alias string, targets []string) {
	r.aliases[alias] = targets
}

func (r *Registry) sortedNames() []string {
	out := make([]string, 0, len(r.names))
	for name := range r.names {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// MatchPattern returns pat unchanged if it is an exact registered name;
// otherwise it is treated as a doublestar glob and matched against every
// registered name, sorted.
func (r *Registry) MatchPattern(pat string) []string {
	if _, ok := r.names[pat]; ok {
		return []string{pat}
	}
	var matches []string
	for _, name := range r.sortedNames() {
		if ok, _ := doublestar.Match(pat, name); ok {
			matches = append(matches, name)
		}
	}
	if len(matches) == 0 {
		r.Log.Warnf("registry: pattern %q matched no task", pat)
	}
	return matches
}

// ResolveAliases expands each pattern that is an alias into its targets
// (recursively), emitting non-aliases unchanged, preserving input order.
func (r *Registry) ResolveAliases(patterns []string) []string {
	var out []string
	for _, p := range patterns {
		out = append(out, r.resolveAlias(p, map[string]struct{}{})...)
	}
	return out
}

func (r *Registry) resolveAlias(name string, seen map[string]struct{}) []string {
	if _, cyclic := seen[name]; cyclic {
		return nil
	}
	targets, ok := r.aliases[name]
	if !ok {
		return []string{name}
	}
	seen[name] = struct{}{}
	var out []string
	for _, t := range targets {
		out = append(out, r.resolveAlias(t, seen)...)
	}
	return out
}

// Resolve expands aliases (ResolveAliases), matches each result against the
// registered names (MatchPattern), then dedups preserving order, matching
// SPEC_FULL.md §4.7's composition.
func (r *Registry) Resolve(specs []string) []string {
	var expanded []string
	for _, spec := range r.ResolveAliases(specs) {
		expanded = append(expanded, r.MatchPattern(spec)...)
	}
	return dedupPreserveOrder(expanded)
}

func dedupPreserveOrder(in []string) []string {
	seen := map[string]struct{}{}
	out := make([]string, 0, len(in))
	for _, v := range in {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
