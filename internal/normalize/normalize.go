package normalize

import (
	"sort"
	"strings"
	"sync"
)

// DefaultCategory is the fallback bucket for unmatched names and composers.
const DefaultCategory = "Andere"

// Person canonicalizes a raw person name: lookup is case-insensitive on
// the trimmed raw name, and unknown names pass through unchanged.
func Person(raw string) string {
	if canonical, ok := personCanonical[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return canonical
	}
	return raw
}

// Composer canonicalizes a composer attribution; "" stays "".
func Composer(raw string) string {
	if raw == "" {
		return ""
	}
	if canonical, ok := composerCanonical[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return canonical
	}
	return raw
}

// ComposerForTitle scans a record title for work or role keywords and
// returns the composer they imply. Rules apply in declaration order, so
// the attribution is stable when a title matches several composers.
func ComposerForTitle(title string) (string, bool) {
	lower := strings.ToLower(title)
	for _, rule := range composerTitleRules {
		if strings.Contains(lower, rule.Keyword) {
			return rule.Composer, true
		}
	}
	return "", false
}

// IsComposerName reports whether the name refers to a known composer.
func IsComposerName(name string) bool {
	lower := strings.ToLower(strings.TrimSpace(name))
	for composer := range composerNames {
		if strings.Contains(lower, composer) {
			return true
		}
	}
	return false
}

// IsJunkName reports whether a name is a placeholder that must never
// produce an index entry: entries of two characters or fewer ("Y.") and
// bracket-wrapped fragments ("[Organi]").
func IsJunkName(name string) bool {
	if len([]rune(name)) <= 2 {
		return true
	}
	return strings.HasPrefix(name, "[") && strings.HasSuffix(name, "]")
}

var (
	rankedOnce  sync.Once
	rankedRules []CategoryRule
)

// Rules returns the category rules ranked longest-keyword-first. The
// ranking is what makes "wieland wagner" → Regisseur win over the generic
// "wagner" → Komponist.
func Rules() []CategoryRule {
	rankedOnce.Do(func() {
		rankedRules = make([]CategoryRule, len(categoryRules))
		copy(rankedRules, categoryRules)
		sort.SliceStable(rankedRules, func(i, j int) bool {
			return len(rankedRules[i].Keyword) > len(rankedRules[j].Keyword)
		})
	})
	return rankedRules
}

// Category classifies a person name by the first matching ranked rule.
func Category(name string) string {
	if name == "" {
		return DefaultCategory
	}
	lower := strings.ToLower(name)
	for _, rule := range Rules() {
		if strings.Contains(lower, rule.Keyword) {
			return rule.Category
		}
	}
	return DefaultCategory
}
