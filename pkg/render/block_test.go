package render

import (
	"errors"
	"strings"
	"testing"
)

func TestExtractBlock(t *testing.T) {
	t.Run("Simple", func(t *testing.T) {
		doc := `<html>{% block content %} <p>hello</p> {% endblock %}</html>`
		body, found, err := extractBlock(doc, "content")
		if err != nil {
			t.Fatalf("extractBlock failed: %v", err)
		}
		if !found {
			t.Fatal("expected block to be found")
		}
		if body != "<p>hello</p>" {
			t.Errorf("expected trimmed body '<p>hello</p>', got %q", body)
		}
	})

	t.Run("Multiline", func(t *testing.T) {
		doc := "{% block content %}\n<div>\n  <span>a</span>\n</div>\n{% endblock %}"
		body, found, err := extractBlock(doc, "content")
		if err != nil {
			t.Fatalf("extractBlock failed: %v", err)
		}
		if !found {
			t.Fatal("expected block to be found")
		}
		// Nested angle-bracket markup must not confuse the scanner; only
		// the literal delimiters matter.
		if !strings.Contains(body, "<span>a</span>") {
			t.Errorf("multiline body lost content: %q", body)
		}
		if strings.HasPrefix(body, "\n") || strings.HasSuffix(body, "\n") {
			t.Errorf("body should be trimmed, got %q", body)
		}
	})

	t.Run("Absent", func(t *testing.T) {
		_, found, err := extractBlock("<html>no blocks</html>", "content")
		if err != nil {
			t.Fatalf("extractBlock failed: %v", err)
		}
		if found {
			t.Error("expected found=false for a document with no block")
		}
	})

	t.Run("FirstOccurrenceWins", func(t *testing.T) {
		doc := "{% block content %}first{% endblock %}{% block content %}second{% endblock %}"
		body, found, err := extractBlock(doc, "content")
		if err != nil {
			t.Fatalf("extractBlock failed: %v", err)
		}
		if !found || body != "first" {
			t.Errorf("expected first block only, got %q (found=%v)", body, found)
		}
	})

	t.Run("Unterminated", func(t *testing.T) {
		_, _, err := extractBlock("{% block content %}no end", "content")
		if !errors.Is(err, ErrMalformedBlock) {
			t.Errorf("expected ErrMalformedBlock, got %v", err)
		}
	})
}

func TestSpliceBlock(t *testing.T) {
	t.Run("ReplacesFirstSpan", func(t *testing.T) {
		doc := "<a>{% block content %}one{% endblock %}</a>{% block content %}two{% endblock %}"
		out, found, err := spliceBlock(doc, "content", "X")
		if err != nil {
			t.Fatalf("spliceBlock failed: %v", err)
		}
		if !found {
			t.Fatal("expected block to be found")
		}
		if out != "<a>X</a>{% block content %}two{% endblock %}" {
			t.Errorf("unexpected splice result: %q", out)
		}
	})

	t.Run("MissingBlockUnchanged", func(t *testing.T) {
		out, found, err := spliceBlock("<html></html>", "title", "X")
		if err != nil {
			t.Fatalf("spliceBlock failed: %v", err)
		}
		if found || out != "<html></html>" {
			t.Errorf("expected unchanged document, got %q (found=%v)", out, found)
		}
	})

	t.Run("Unterminated", func(t *testing.T) {
		_, _, err := spliceBlock("{% block title %}oops", "title", "X")
		if !errors.Is(err, ErrMalformedBlock) {
			t.Errorf("expected ErrMalformedBlock, got %v", err)
		}
	})
}

func TestValidateMarkers(t *testing.T) {
	valid := []string{
		"",
		"<html>no markers</html>",
		"{% block content %}x{% endblock %}",
		"{% block title %}t{% endblock %}{% block content %}c{% endblock %}",
	}
	for _, doc := range valid {
		if err := validateMarkers(doc); err != nil {
			t.Errorf("validateMarkers(%q) = %v, want nil", doc, err)
		}
	}

	invalid := []string{
		"{% block content %}never closed",
		"stray {% endblock %}",
		"{% block a %}{% block b %}{% endblock %}{% endblock %}",
		"{% block content %}x{% endblock %}{% endblock %}",
	}
	for _, doc := range invalid {
		if err := validateMarkers(doc); !errors.Is(err, ErrMalformedBlock) {
			t.Errorf("validateMarkers(%q) = %v, want ErrMalformedBlock", doc, err)
		}
	}
}
