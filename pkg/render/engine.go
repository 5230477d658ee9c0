package render

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// Loader supplies template text by logical name. Implementations must
// return ErrTemplateNotFound (possibly wrapped) when no document backs
// the name, and release any underlying handle before returning.
type Loader interface {
	Load(name string) (string, error)
}

// Engine renders template documents for the mock site. It holds no
// mutable state: every render works on its own document text and
// context, so one Engine may serve concurrent requests.
type Engine struct {
	loader Loader
	routes *Routes
	logger *slog.Logger
}

// New creates an Engine backed by the given loader and routing tables.
func New(loader Loader, routes *Routes, logger *slog.Logger) *Engine {
	return &Engine{
		loader: loader,
		routes: routes,
		logger: logger,
	}
}

// Render produces the final page for a request path from raw template
// text. The caller is responsible for loading doc; Render builds the
// context for the route and runs the full pipeline: inheritance
// resolution, variable substitution, then conditional class resolution.
func (e *Engine) Render(route, doc string) (string, error) {
	return e.Execute(doc, e.routes.Context(route))
}

// Execute renders doc against an explicit context. A document without an
// extends directive and an empty context passes through unchanged.
func (e *Engine) Execute(doc string, ctx Context) (string, error) {
	out, err := e.compose(doc, ctx)
	if err != nil {
		return "", err
	}
	out = substitute(out, ctx)
	out = resolveActiveClasses(out, ctx[KeyActivePage])
	return out, nil
}

// compose resolves template inheritance. A document is in one of two
// states: standalone (no extends directive, returned as-is) or
// inheriting (merged into the base template).
func (e *Engine) compose(child string, ctx Context) (string, error) {
	if !strings.Contains(child, extendsMarker) {
		return child, nil
	}
	if err := validateMarkers(child); err != nil {
		return "", fmt.Errorf("child template: %w", err)
	}
	e.logger.Debug("resolving template inheritance", "base", baseTemplateName)

	base, err := e.loader.Load(baseTemplateName)
	if err != nil {
		if errors.Is(err, ErrTemplateNotFound) {
			return "", fmt.Errorf("%w: %s", ErrMissingBaseTemplate, baseTemplateName)
		}
		return "", fmt.Errorf("loading %s: %w", baseTemplateName, err)
	}
	if err := validateMarkers(base); err != nil {
		return "", fmt.Errorf("base template: %w", err)
	}

	doc, err := e.spliceContent(base, child)
	if err != nil {
		return "", err
	}
	return e.spliceTitle(doc, child, ctx)
}

// spliceContent replaces the base's content block with the child's. A
// child without a content block keeps the base's default body, but the
// base must declare the block either way.
func (e *Engine) spliceContent(base, child string) (string, error) {
	body, found, err := extractBlock(child, blockContent)
	if err != nil {
		return "", err
	}
	if !found {
		// No override: unwrap the base's own default body.
		body, found, err = extractBlock(base, blockContent)
		if err != nil {
			return "", err
		}
		if !found {
			return "", ErrNoContentBlock
		}
	}
	doc, found, err := spliceBlock(base, blockContent, body)
	if err != nil {
		return "", err
	}
	if !found {
		return "", ErrNoContentBlock
	}
	return doc, nil
}

// spliceTitle replaces the base's title block with the child's, falling
// back to the context's title value when the child declares none. A base
// without a title block is left alone.
func (e *Engine) spliceTitle(doc, child string, ctx Context) (string, error) {
	title, found, err := extractBlock(child, blockTitle)
	if err != nil {
		return "", err
	}
	if !found {
		title = ctx[KeyTitle]
	}
	out, _, err := spliceBlock(doc, blockTitle, title)
	if err != nil {
		return "", err
	}
	return out, nil
}
