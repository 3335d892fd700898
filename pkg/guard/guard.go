// Package guard decides whether a data field still holds an untouched template
// (safe to overwrite) or author-edited content (must be preserved).
//
// The decision is a pluggable Strategy so the marker heuristic can later be
// replaced by an explicit provenance flag without touching call sites.
package guard

import (
	"strings"

	"github.com/aretw0/scenarist/pkg/catalog"
	"github.com/aretw0/scenarist/pkg/jsonfield"
)

// Strategy reports whether raw is still a template.
// Empty text is handled by callers, not by strategies.
type Strategy func(raw string) bool

// Markers returns the heuristic strategy: raw must parse, and its canonical
// serialization must contain at least one of the phrases.
// Malformed text is treated as author content and is never overwritten.
func Markers(phrases ...string) Strategy {
	phrases = append([]string(nil), phrases...)
	return func(raw string) bool {
		canonical, err := jsonfield.Canonical(raw)
		if err != nil {
			return false
		}
		for _, p := range phrases {
			if p != "" && strings.Contains(canonical, p) {
				return true
			}
		}
		return false
	}
}

// ForCatalog builds the marker strategy from the phrases declared by cat.
func ForCatalog(cat *catalog.Catalog) Strategy {
	return Markers(cat.Markers()...)
}

// Default is the marker strategy of the built-in catalog.
func Default() Strategy {
	return ForCatalog(catalog.Default())
}

// Overwritable reports whether current may be replaced: empty text always may,
// anything else only when the strategy recognizes a template.
func Overwritable(s Strategy, current string) bool {
	if strings.TrimSpace(current) == "" {
		return true
	}
	return s(current)
}
