package corpus

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pressfeed/newsearch/pkg/config"
	pkgerrors "github.com/pressfeed/newsearch/pkg/errors"
)

func httpSourceFor(url string, attempts int) *HTTPSource {
	return NewHTTPSource(config.CorpusConfig{
		URL:          url,
		FetchTimeout: 2 * time.Second,
		MaxAttempts:  attempts,
	})
}

func TestHTTPSourceFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Accept"); got != "application/json" {
			t.Errorf("Accept header = %q", got)
		}
		w.Write([]byte(`{
			"business": [{"id": "b1", "title": "Markets rally"}],
			"_meta": [{"id": "meta"}]
		}`))
	}))
	defer srv.Close()

	sections, err := httpSourceFor(srv.URL, 1).Fetch(context.Background())
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(sections["business"]) != 1 || sections["business"][0].ID != "b1" {
		t.Errorf("sections = %v", sections)
	}
}

func TestHTTPSourceRetriesTransientFailure(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(`{"business": [{"id": "b1"}]}`))
	}))
	defer srv.Close()

	sections, err := httpSourceFor(srv.URL, 3).Fetch(context.Background())
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if hits.Load() != 3 {
		t.Errorf("server hits = %d, want 3", hits.Load())
	}
	if len(sections["business"]) != 1 {
		t.Errorf("sections = %v", sections)
	}
}

func TestHTTPSourceUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := httpSourceFor(srv.URL, 2).Fetch(context.Background())
	if !errors.Is(err, pkgerrors.ErrCorpusUnavailable) {
		t.Errorf("error = %v, want ErrCorpusUnavailable", err)
	}
}

func TestHTTPSourceMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"business": "not an array"`))
	}))
	defer srv.Close()

	_, err := httpSourceFor(srv.URL, 1).Fetch(context.Background())
	if err == nil {
		t.Fatal("malformed body accepted")
	}
	// The retry wrapper reports unavailability; the malformed detail stays
	// in the message.
	if !errors.Is(err, pkgerrors.ErrCorpusUnavailable) {
		t.Errorf("error = %v, want ErrCorpusUnavailable", err)
	}
}
