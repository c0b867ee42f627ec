package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/klasique2/Bellak-voting/internal/upstream"
)

// newFakeUpstream serves a two-category catalog. Handlers can be overridden
// per test via the mux.
func newFakeUpstream(t *testing.T) (*http.ServeMux, *CatalogService, func()) {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/categories/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"count":2,"next":null,"previous":null,"results":[
			{"id":1,"name":"Artist of the Year","description":"","voting_price":"50.00","is_voting_open":true,"nominee_count":2},
			{"id":2,"name":"Best New Act","description":"","voting_price":"25.00","is_voting_open":true,"nominee_count":1}
		]}`)
	})
	mux.HandleFunc("/categories/1/nominees/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"count":2,"next":null,"previous":null,"results":[
			{"id":11,"name":"Ama","description":"","photo":null,"vote_count":3,"total_amount_raised":"150.00","category_id":1},
			{"id":12,"name":"Kojo","description":"","photo":null,"vote_count":1,"total_amount_raised":"50.00","category_id":1}
		]}`)
	})
	mux.HandleFunc("/categories/2/nominees/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"count":1,"next":null,"previous":null,"results":[
			{"id":21,"name":"Esi","description":"","photo":null,"vote_count":0,"total_amount_raised":"0.00","category_id":2}
		]}`)
	})

	srv := httptest.NewServer(mux)
	svc := NewCatalogService(upstream.New(srv.URL, 2*time.Second))
	return mux, svc, srv.Close
}

func TestCatalog_GetAllNomineesFlattensInCategoryOrder(t *testing.T) {
	_, svc, done := newFakeUpstream(t)
	defer done()

	nominees, err := svc.GetAllNominees(context.Background())
	if err != nil {
		t.Fatalf("GetAllNominees: %v", err)
	}

	wantIDs := []int{11, 12, 21}
	if len(nominees) != len(wantIDs) {
		t.Fatalf("got %d nominees, want %d", len(nominees), len(wantIDs))
	}
	for i, want := range wantIDs {
		if nominees[i].ID != want {
			t.Errorf("nominees[%d].ID = %d, want %d", i, nominees[i].ID, want)
		}
	}
}

func TestCatalog_GetAllNomineesFailsWhenOneCategoryFails(t *testing.T) {
	// Category 2's nominee fetch fails upstream.
	mux := http.NewServeMux()
	mux.HandleFunc("/categories/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"count":2,"next":null,"previous":null,"results":[
			{"id":1,"name":"A","description":"","voting_price":"50.00","is_voting_open":true,"nominee_count":0},
			{"id":2,"name":"B","description":"","voting_price":"25.00","is_voting_open":true,"nominee_count":0}
		]}`)
	})
	mux.HandleFunc("/categories/1/nominees/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"count":0,"next":null,"previous":null,"results":[]}`)
	})
	mux.HandleFunc("/categories/2/nominees/", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()
	svc := NewCatalogService(upstream.New(srv.URL, 2*time.Second))

	_, err := svc.GetAllNominees(context.Background())
	if err == nil {
		t.Fatal("expected failure when one category fetch fails")
	}
	var apiErr *upstream.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error type = %T, want *upstream.APIError", err)
	}
	if apiErr.Status != http.StatusInternalServerError {
		t.Errorf("APIError.Status = %d, want 500", apiErr.Status)
	}
}

func TestCatalog_GetCategoryWithNomineesMerges(t *testing.T) {
	mux, svc, done := newFakeUpstream(t)
	defer done()

	var detailCalls atomic.Int32
	mux.HandleFunc("/categories/1/", func(w http.ResponseWriter, r *http.Request) {
		detailCalls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"id":1,"name":"Artist of the Year","description":"","voting_price":"50.00",
			"is_voting_open":true,"nominee_count":2,
			"voting_starts":"2026-01-01T00:00:00Z","voting_ends":"2026-12-31T23:59:59Z","nominees":[]}`)
	})

	details, err := svc.GetCategoryWithNominees(context.Background(), 1)
	if err != nil {
		t.Fatalf("GetCategoryWithNominees: %v", err)
	}
	if details.Name != "Artist of the Year" {
		t.Errorf("Name = %q", details.Name)
	}
	if len(details.Nominees) != 2 {
		t.Fatalf("merged %d nominees, want 2", len(details.Nominees))
	}
	if details.Nominees[0].ID != 11 || details.Nominees[1].ID != 12 {
		t.Errorf("nominee IDs = %d,%d", details.Nominees[0].ID, details.Nominees[1].ID)
	}
	if detailCalls.Load() != 1 {
		t.Errorf("detail endpoint called %d times", detailCalls.Load())
	}
}

func TestCatalog_NonOKBecomesAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	svc := NewCatalogService(upstream.New(srv.URL, 2*time.Second))
	_, err := svc.GetCategoryDetails(context.Background(), 404)
	var apiErr *upstream.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error type = %T, want *upstream.APIError", err)
	}
	if apiErr.Status != http.StatusNotFound || apiErr.StatusText != "Not Found" {
		t.Errorf("got APIError{%d %q}", apiErr.Status, apiErr.StatusText)
	}
}
