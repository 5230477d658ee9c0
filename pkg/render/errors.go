package render

import "errors"

var (
	// ErrTemplateNotFound is returned by a Loader when no document backs
	// the requested logical template name.
	ErrTemplateNotFound = errors.New("template not found")

	// ErrMissingBaseTemplate is returned when an inheriting document
	// references a base template that cannot be loaded.
	ErrMissingBaseTemplate = errors.New("base template missing")

	// ErrMalformedBlock is returned when a block marker pair is not well
	// formed: an open marker without a matching close marker, or a close
	// marker with no preceding open marker.
	ErrMalformedBlock = errors.New("malformed block markers")

	// ErrNoContentBlock is returned when the base template of an
	// inheriting document declares no content block to splice into.
	ErrNoContentBlock = errors.New("base template has no content block")
)
