// Package template renders outbound message templates by substituting
// named placeholders of the form {key} with values from a context map.
package template

import "regexp"

var placeholderRe = regexp.MustCompile(`\{([a-zA-Z][a-zA-Z0-9]*)\}`)

// Render replaces every {key} occurrence in tmpl with ctx[key].
// Keys missing from ctx are left as literal {key} text.
func Render(tmpl string, ctx map[string]string) string {
	return placeholderRe.ReplaceAllStringFunc(tmpl, func(match string) string {
		key := match[1 : len(match)-1]
		if value, ok := ctx[key]; ok {
			return value
		}
		return match
	})
}
