package signupform

import (
	"io/fs"
	"strings"
	"testing"
)

func TestRuntimeAssetsFSContainsRuntimeScript(t *testing.T) {
	data, err := fs.ReadFile(RuntimeAssetsFS(), RuntimeScript)
	if err != nil {
		t.Fatalf("expected runtime script to be readable: %v", err)
	}
	for _, marker := range []string{"data-events-url", "X-Signup-Session", "toggle_password"} {
		if !strings.Contains(string(data), marker) {
			t.Fatalf("expected runtime script to reference %q", marker)
		}
	}
}

func TestEmbeddedTemplatesExposePage(t *testing.T) {
	if _, err := fs.Stat(EmbeddedTemplates(), "templates/page.tpl"); err != nil {
		t.Fatalf("expected page template: %v", err)
	}
}
