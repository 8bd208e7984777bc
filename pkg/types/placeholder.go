package types

import (
	"regexp"
	"sort"
	"strings"
)

// placeholderPattern matches a bracketed token with a non-empty name that
// itself contains no brackets.
var placeholderPattern = regexp.MustCompile(`\[([^\[\]]+)\]`)

// ResolvePlaceholders returns the entity content with every [KEY] token
// replaced by values[KEY]. All occurrences of a mapped token are replaced.
// Tokens whose key is absent from values are left as they are, so a clause
// can be filled in over several passes. Substitution is a single pass:
// a replacement value is never scanned for further tokens. The entity
// itself is not modified.
func ResolvePlaceholders(entity Entity, values map[string]string) string {
	return ResolveText(entity.Content, values)
}

// ResolveText applies placeholder substitution to arbitrary text.
func ResolveText(text string, values map[string]string) string {
	if len(values) == 0 || text == "" {
		return text
	}

	// Longest token first so that overlapping keys resolve deterministically.
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})

	pairs := make([]string, 0, 2*len(keys))
	for _, k := range keys {
		pairs = append(pairs, "["+k+"]", values[k])
	}
	return strings.NewReplacer(pairs...).Replace(text)
}

// Placeholders returns the distinct placeholder names in text, in order of
// first occurrence.
func Placeholders(text string) []string {
	matches := placeholderPattern.FindAllStringSubmatch(text, -1)
	seen := make(map[string]bool, len(matches))
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		if seen[m[1]] {
			continue
		}
		seen[m[1]] = true
		names = append(names, m[1])
	}
	return names
}

// Unresolved returns the placeholder names still present in text after a
// partial resolution.
func Unresolved(text string) []string {
	return Placeholders(text)
}
