package infrastructure

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

func newTestGeminiClient(key, baseURL string) *GeminiClient {
	return &GeminiClient{apiKey: key, baseURL: baseURL, httpClient: http.DefaultClient}
}

func TestGenerateResponse_TrimsWhitespace(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"  Bonjour !\n"}]}}]}`))
	}))
	defer srv.Close()

	c := newTestGeminiClient("key", srv.URL)
	got, err := c.GenerateResponse("salut")
	if err != nil {
		t.Fatal(err)
	}
	if got != "Bonjour !" {
		t.Errorf("expected trimmed text, got %q", got)
	}
}

func TestGenerateResponse_NoKeyNoCall(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))
	defer srv.Close()

	c := newTestGeminiClient("", srv.URL)
	if _, err := c.GenerateResponse("salut"); err == nil {
		t.Error("expected error without an API key")
	}
	if atomic.LoadInt32(&calls) != 0 {
		t.Errorf("expected zero HTTP calls, got %d", calls)
	}
}

func TestGenerateResponse_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"message":"API key not valid"}}`))
	}))
	defer srv.Close()

	c := newTestGeminiClient("bad-key", srv.URL)
	if _, err := c.GenerateResponse("salut"); err == nil {
		t.Error("expected error on non-2xx status")
	}
}

func TestGenerateResponse_EmptyCandidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates":[]}`))
	}))
	defer srv.Close()

	c := newTestGeminiClient("key", srv.URL)
	if _, err := c.GenerateResponse("salut"); err == nil {
		t.Error("expected error when no candidates returned")
	}
}

func TestGenerateResponse_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer srv.Close()

	c := newTestGeminiClient("key", srv.URL)
	if _, err := c.GenerateResponse("salut"); err == nil {
		t.Error("expected error on malformed response body")
	}
}
