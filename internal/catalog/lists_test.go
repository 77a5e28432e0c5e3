package catalog

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
)

func TestListControllerStates(t *testing.T) {
	lc := NewListController(nil, ProductSchema)

	if lc.State() != ListIdle {
		t.Fatalf("Expected idle before first fetch, got %v", lc.State())
	}

	lc.Begin()
	if lc.State() != ListLoading {
		t.Fatalf("Expected loading after Begin, got %v", lc.State())
	}

	loaded := []Entity{{ID: "1", Name: "A"}}
	lc.Resolve(loaded, Outcome{Kind: OutcomeSuccess})
	if lc.State() != ListLoaded {
		t.Fatalf("Expected loaded, got %v", lc.State())
	}
	if len(lc.Entities()) != 1 {
		t.Fatalf("Expected snapshot of 1, got %d", len(lc.Entities()))
	}

	// A failed refetch surfaces the error but keeps the snapshot.
	lc.Begin()
	lc.Resolve(nil, Outcome{Kind: OutcomeTimeout, Message: "request timed out"})
	if lc.State() != ListError {
		t.Fatalf("Expected error state, got %v", lc.State())
	}
	if lc.Err() != "request timed out" {
		t.Errorf("Expected error message, got %q", lc.Err())
	}
	if len(lc.Entities()) != 1 {
		t.Error("Expected previous snapshot to survive a failed refetch")
	}

	// The next successful fetch clears the error.
	lc.Begin()
	lc.Resolve(loaded, Outcome{Kind: OutcomeSuccess})
	if lc.State() != ListLoaded || lc.Err() != "" {
		t.Errorf("Expected recovery, got state=%v err=%q", lc.State(), lc.Err())
	}
}

func TestListControllerFilterIsPureProjection(t *testing.T) {
	lc := NewListController(nil, ProductSchema)
	lc.Resolve([]Entity{
		{ID: "1", Name: "Jeans", Category: "pants"},
		{ID: "2", Name: "Tee", Category: "shirts"},
		{ID: "3", Name: "Chinos", Category: "pants"},
	}, Outcome{Kind: OutcomeSuccess})

	lc.SetCategory("pants")
	got := lc.Filtered()
	if len(got) != 2 || got[0].ID != "1" || got[1].ID != "3" {
		t.Errorf("Unexpected projection: %+v", got)
	}
	if len(lc.Entities()) != 3 {
		t.Error("Expected the underlying snapshot to be untouched")
	}

	lc.SetCategory("")
	if len(lc.Filtered()) != 3 {
		t.Error("Expected empty filter to show everything")
	}
}

func TestListControllerFind(t *testing.T) {
	lc := NewListController(nil, OfferSchema)
	lc.Resolve([]Entity{{ID: "o1", Name: "Sale"}}, Outcome{Kind: OutcomeSuccess})

	if e, ok := lc.Find("o1"); !ok || e.Name != "Sale" {
		t.Errorf("Expected to find o1, got %+v ok=%v", e, ok)
	}
	if _, ok := lc.Find("missing"); ok {
		t.Error("Expected miss for unknown id")
	}
}

func TestListControllerFetch(t *testing.T) {
	client, _, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]Entity{{ID: "o1", Name: "Sale"}})
	}))

	lc := NewListController(client, OfferSchema)
	if out := lc.Fetch(context.Background()); out.Kind.Failed() {
		t.Fatalf("Expected success, got %v: %s", out.Kind, out.Message)
	}
	if lc.State() != ListLoaded || len(lc.Entities()) != 1 {
		t.Errorf("Expected loaded snapshot, state=%v len=%d", lc.State(), len(lc.Entities()))
	}
}
