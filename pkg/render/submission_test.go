package render_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-signupform/pkg/render"
)

func TestMergeAndSortHiddenFields(t *testing.T) {
	base := map[string]string{
		" existing ": "keep",
		"":           "ignored",
	}

	merged := render.MergeHiddenFields(base,
		render.SessionToken("tok"),
		render.HiddenField{Name: " locale ", Value: "es"},
		render.HiddenField{Name: "  ", Value: "skip"},
	)

	wantMerged := map[string]string{
		"existing":               "keep",
		render.SessionTokenField: "tok",
		"locale":                 "es",
	}
	if diff := cmp.Diff(wantMerged, merged); diff != "" {
		t.Fatalf("merged mismatch (-want +got):\n%s", diff)
	}

	wantSorted := []render.HiddenField{
		{Name: render.SessionTokenField, Value: "tok"},
		{Name: "existing", Value: "keep"},
		{Name: "locale", Value: "es"},
	}
	if diff := cmp.Diff(wantSorted, render.SortedHiddenFields(merged)); diff != "" {
		t.Fatalf("sorted mismatch (-want +got):\n%s", diff)
	}
}

func TestMergeHiddenFields_Empty(t *testing.T) {
	if got := render.MergeHiddenFields(nil); got != nil {
		t.Fatalf("expected nil, got %v", got)
	}
	if got := render.SortedHiddenFields(nil); got != nil {
		t.Fatalf("expected nil, got %v", got)
	}
}
