package htmlsanitize_test

import (
	"strings"
	"testing"

	"github.com/dalemusser/tasktracker/internal/app/system/htmlsanitize"
)

func TestText_Empty(t *testing.T) {
	if got := htmlsanitize.Text(""); got != "" {
		t.Errorf("expected empty string, got %q", got)
	}
}

func TestText_PlainTextUnchanged(t *testing.T) {
	if got := htmlsanitize.Text("Looks good, ship it"); got != "Looks good, ship it" {
		t.Errorf("got %q", got)
	}
}

func TestText_KeepsAmpersand(t *testing.T) {
	if got := htmlsanitize.Text("R&D review"); got != "R&D review" {
		t.Errorf("got %q", got)
	}
}

func TestText_StripsTags(t *testing.T) {
	if got := htmlsanitize.Text("<b>bold</b> move"); got != "bold move" {
		t.Errorf("got %q", got)
	}
}

func TestText_RemovesHandlers(t *testing.T) {
	got := htmlsanitize.Text(`<a href="#" onclick="steal()">link</a>`)
	if strings.Contains(got, "onclick") || strings.Contains(got, "<a") {
		t.Errorf("expected markup removed, got %q", got)
	}
}

func TestText_WhitespaceOnlyBecomesEmpty(t *testing.T) {
	if got := htmlsanitize.Text("   <br>  "); got != "" {
		t.Errorf("expected empty, got %q", got)
	}
}
