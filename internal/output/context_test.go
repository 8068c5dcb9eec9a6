package output

import (
	"context"
	"testing"
)

func TestOptionsFromContext(t *testing.T) {
	if got := OptionsFromContext(nil); got.Format != FormatText { //nolint:staticcheck // nil context falls back to defaults
		t.Errorf("expected text default for nil context, got %q", got.Format)
	}

	ctx := WithFormat(context.Background(), FormatYAML)
	ctx = WithQuery(ctx, ".[0]")
	ctx = WithLimit(ctx, 3)
	ctx = WithSort(ctx, "type", true)
	ctx = WithQuiet(ctx, true)

	want := Options{Format: FormatYAML, Query: ".[0]", Limit: 3, SortBy: "type", SortDesc: true, Quiet: true}
	if got := OptionsFromContext(ctx); got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}

	parent := ctx
	child := WithFormat(parent, FormatJSON)
	if FormatFromContext(parent) != FormatYAML {
		t.Errorf("setting a child option changed the parent")
	}
	if FormatFromContext(child) != FormatJSON || QueryFromContext(child) != ".[0]" {
		t.Errorf("expected child to keep other options, got %+v", OptionsFromContext(child))
	}
}
