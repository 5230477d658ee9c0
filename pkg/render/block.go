package render

import (
	"fmt"
	"strings"
)

// Marker grammar. These literals must match the template files byte for
// byte, single spaces included.
const (
	baseTemplateName = "base.html"

	extendsMarker   = `{% extends "base.html" %}`
	blockOpenPrefix = "{% block "
	blockOpenSuffix = " %}"
	blockEndMarker  = "{% endblock %}"
)

// Block names the composer resolves during inheritance.
const (
	blockContent = "content"
	blockTitle   = "title"
)

func blockOpenMarker(name string) string {
	return blockOpenPrefix + name + blockOpenSuffix
}

// extractBlock returns the trimmed text between the first open marker for
// name and the nearest following end marker. The scan is a linear walk
// with an early exit, so "first occurrence wins" is explicit: a second
// block of the same name is never looked at. found is false when the
// document declares no such block, which is a valid state (no override).
func extractBlock(doc, name string) (body string, found bool, err error) {
	open := blockOpenMarker(name)
	i := strings.Index(doc, open)
	if i == -1 {
		return "", false, nil
	}
	rest := doc[i+len(open):]
	j := strings.Index(rest, blockEndMarker)
	if j == -1 {
		return "", false, fmt.Errorf("%w: unterminated %q block", ErrMalformedBlock, name)
	}
	return strings.TrimSpace(rest[:j]), true, nil
}

// spliceBlock replaces the first block span for name in doc, markers
// included, with replacement. found reports whether the document had such
// a block at all; a missing block leaves doc unchanged.
func spliceBlock(doc, name, replacement string) (out string, found bool, err error) {
	open := blockOpenMarker(name)
	i := strings.Index(doc, open)
	if i == -1 {
		return doc, false, nil
	}
	j := strings.Index(doc[i+len(open):], blockEndMarker)
	if j == -1 {
		return "", false, fmt.Errorf("%w: unterminated %q block", ErrMalformedBlock, name)
	}
	end := i + len(open) + j + len(blockEndMarker)
	return doc[:i] + replacement + doc[end:], true, nil
}

// validateMarkers walks every block marker in doc and checks that open
// and end markers strictly alternate. This catches the two malformed
// shapes the per-block scans cannot: an orphaned end marker, and a block
// opened inside another block.
func validateMarkers(doc string) error {
	inBlock := false
	for {
		open := strings.Index(doc, blockOpenPrefix)
		end := strings.Index(doc, blockEndMarker)
		switch {
		case open == -1 && end == -1:
			if inBlock {
				return fmt.Errorf("%w: block opened without %s", ErrMalformedBlock, blockEndMarker)
			}
			return nil
		case end == -1 || (open != -1 && open < end):
			if inBlock {
				return fmt.Errorf("%w: nested block open marker", ErrMalformedBlock)
			}
			inBlock = true
			doc = doc[open+len(blockOpenPrefix):]
		default:
			if !inBlock {
				return fmt.Errorf("%w: %s without open marker", ErrMalformedBlock, blockEndMarker)
			}
			inBlock = false
			doc = doc[end+len(blockEndMarker):]
		}
	}
}
