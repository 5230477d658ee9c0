package render

import "strings"

// Conditional class grammar: {% if active_page == "X" %}active{% endif %}
// embedded inside a class attribute value.
const (
	classAttrPrefix = `class="`
	condOpenPrefix  = `{% if active_page == "`
	condSuffix      = `" %}active{% endif %}`
	activeToken     = "active"
)

// substitute replaces every {{ key }} placeholder with its context value.
// Each key is applied as an independent whole-document replacement;
// inserted values are not re-scanned, so a value containing placeholder
// syntax stays literal. Placeholders for keys absent from ctx are left
// verbatim in the output. Values are not HTML-escaped; the mock site's
// context values are trusted constants.
func substitute(doc string, ctx Context) string {
	for key, value := range ctx {
		doc = strings.ReplaceAll(doc, "{{ "+key+" }}", value)
	}
	return doc
}

// resolveActiveClasses rewrites every conditional active-page fragment
// found inside a class attribute value: the directive is removed, and the
// active token is emitted in its place only when the captured target
// equals activePage. Text around the directive inside the attribute is
// preserved. Fragments outside a class attribute, or not matching the
// grammar exactly, are left untouched.
func resolveActiveClasses(doc, activePage string) string {
	var b strings.Builder
	for {
		i := strings.Index(doc, condOpenPrefix)
		if i == -1 {
			b.WriteString(doc)
			return b.String()
		}
		rest := doc[i+len(condOpenPrefix):]
		q := strings.IndexByte(rest, '"')
		if q == -1 || !strings.HasPrefix(rest[q:], condSuffix) || !insideClassAttr(doc[:i]) {
			// Not a complete fragment in a class attribute; emit up to and
			// including the partial marker and keep scanning after it.
			b.WriteString(doc[:i+len(condOpenPrefix)])
			doc = rest
			continue
		}
		b.WriteString(doc[:i])
		if rest[:q] == activePage {
			b.WriteString(activeToken)
		}
		doc = rest[q+len(condSuffix):]
	}
}

// insideClassAttr reports whether the text ending at the directive sits
// inside an open class attribute value: the nearest preceding quote must
// be the one that opens class="...".
func insideClassAttr(before string) bool {
	q := strings.LastIndexByte(before, '"')
	if q == -1 {
		return false
	}
	return strings.HasSuffix(before[:q+1], classAttrPrefix)
}
