package infrastructure

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"
)

func newTestWhatsAppClient(token, phoneID, baseURL string) *WhatsAppBusinessClient {
	return &WhatsAppBusinessClient{
		accessToken:   token,
		phoneNumberID: phoneID,
		baseURL:       baseURL,
		httpClient:    http.DefaultClient,
		log:           zerolog.Nop(),
	}
}

func TestSendMessage_PostsEnvelope(t *testing.T) {
	var gotAuth string
	var gotBody map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		body, _ := io.ReadAll(r.Body)
		json.Unmarshal(body, &gotBody)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := newTestWhatsAppClient("tok", "12345", srv.URL)
	if err := c.SendMessage("111", "hello"); err != nil {
		t.Fatal(err)
	}

	if gotAuth != "Bearer tok" {
		t.Errorf("expected bearer auth, got %q", gotAuth)
	}
	if gotBody["messaging_product"] != "whatsapp" {
		t.Errorf("wrong messaging_product: %v", gotBody["messaging_product"])
	}
	if gotBody["to"] != "111" || gotBody["type"] != "text" {
		t.Errorf("wrong envelope: %v", gotBody)
	}
	text, _ := gotBody["text"].(map[string]interface{})
	if text["body"] != "hello" {
		t.Errorf("wrong text body: %v", gotBody["text"])
	}
}

func TestSendMessage_EmptyBodyNoCall(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))
	defer srv.Close()

	c := newTestWhatsAppClient("tok", "12345", srv.URL)
	if err := c.SendMessage("111", ""); err != nil {
		t.Errorf("empty body should be a silent no-op, got %v", err)
	}
	if atomic.LoadInt32(&calls) != 0 {
		t.Errorf("expected zero HTTP calls, got %d", calls)
	}
}

func TestSendMessage_MissingCredentialsNoCall(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))
	defer srv.Close()

	c := newTestWhatsAppClient("", "", srv.URL)
	if err := c.SendMessage("111", "hello"); err == nil {
		t.Error("expected error when credentials missing")
	}
	if atomic.LoadInt32(&calls) != 0 {
		t.Errorf("expected zero HTTP calls, got %d", calls)
	}
}

func TestSendMessage_ProviderErrorSwallowedByCaller(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"message":"Invalid OAuth access token"}}`))
	}))
	defer srv.Close()

	c := newTestWhatsAppClient("bad", "12345", srv.URL)
	if err := c.SendMessage("111", "hello"); err == nil {
		t.Error("expected error on non-2xx status")
	}
}
