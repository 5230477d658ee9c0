package render

// Context keys populated by Routes.Context. Templates may reference
// arbitrary additional keys; these three are the ones the mock site's
// templates actually use.
const (
	KeyTitle      = "title"
	KeyCSRFToken  = "csrf_token"
	KeyActivePage = "active_page"
)

// Context maps placeholder names to the string values substituted for
// them. It is built fresh for every render and never shared across calls.
type Context map[string]string

// Context builds the variable context for a request path. It is a pure
// function of the route and the lookup tables: unknown routes get the
// default title and an empty active-page identifier.
func (r *Routes) Context(route string) Context {
	title, ok := r.Titles[route]
	if !ok {
		title = r.DefaultTitle
	}
	return Context{
		KeyTitle:      title,
		KeyCSRFToken:  r.CSRFToken,
		KeyActivePage: r.ActivePages[route],
	}
}
