package uischema

import (
	"strings"
	"testing"
)

func TestSanitizeIconMarkup(t *testing.T) {
	input := `  <svg viewBox="0 0 24 24" onload="steal()"><script>alert('x')</script><use href="https://evil.test/x.svg#a"/><path d="M0 0h24v24H0z" onclick="x()"/></svg>`
	got := sanitizeIconMarkup(input)

	for _, banned := range []string{"script", "onload", "onclick", "use", "evil.test"} {
		if strings.Contains(got, banned) {
			t.Fatalf("expected %q to be removed, got %q", banned, got)
		}
	}
	if !strings.Contains(got, "<svg") || !strings.Contains(got, `<path d="M0 0h24v24H0z"`) {
		t.Fatalf("expected svg/path elements to remain, got %q", got)
	}
}

func TestSanitizeIconMarkup_Blank(t *testing.T) {
	if got := sanitizeIconMarkup("   "); got != "" {
		t.Fatalf("expected empty result, got %q", got)
	}
}
