/*
Package render implements the minimal template engine used by the mock
content server. It resolves single-level template inheritance
({% extends %} / {% block %} markers), substitutes {{ name }} placeholders
from a per-request context, and evaluates the conditional active-page
class fragment used for navigation highlighting.

It is deliberately not a general template language: there are no loops,
no expressions, no escaping, and no nesting beyond one base template. The
marker grammar is matched byte for byte so that the template files of the
real application render identically here.

Each render operates on freshly loaded, immutable template text and a
freshly built context, so an Engine is safe for concurrent use without
locking.
*/
package render
