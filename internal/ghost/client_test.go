package ghost

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestAskSuccess(t *testing.T) {
	var gotQuestion string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s; want POST", r.Method)
		}
		var body struct {
			Question string `json:"question"`
		}
		raw, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(raw, &body); err != nil {
			t.Errorf("request body not JSON: %v", err)
		}
		gotQuestion = body.Question
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"text":"an echo from beyond"}`))
	}))
	defer srv.Close()

	text, err := NewClient(srv.URL).Ask(context.Background(), "what was lost?")
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}
	if text != "an echo from beyond" {
		t.Fatalf("text = %q", text)
	}
	if gotQuestion != "what was lost?" {
		t.Fatalf("server saw question %q", gotQuestion)
	}
}

func TestAskCapsQuestionLength(t *testing.T) {
	var gotLen int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Question string `json:"question"`
		}
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &body)
		gotLen = len(body.Question)
		_, _ = w.Write([]byte(`{"text":"ok"}`))
	}))
	defer srv.Close()

	long := strings.Repeat("a", MaxQuestionChars*2)
	if _, err := NewClient(srv.URL).Ask(context.Background(), long); err != nil {
		t.Fatalf("Ask: %v", err)
	}
	if gotLen != MaxQuestionChars {
		t.Fatalf("question sent with %d chars; want %d", gotLen, MaxQuestionChars)
	}
}

func TestTruncateQuestionRuneBoundary(t *testing.T) {
	// The cap counts characters: multi-byte runes must clamp to 150 whole
	// runes, never a split byte sequence.
	in := strings.Repeat("é", MaxQuestionChars+50)
	got := TruncateQuestion(in)
	if !utf8.ValidString(got) {
		t.Fatal("truncation produced invalid UTF-8")
	}
	if n := utf8.RuneCountInString(got); n != MaxQuestionChars {
		t.Fatalf("truncated to %d runes; want %d", n, MaxQuestionChars)
	}

	short := "short and plain"
	if TruncateQuestion(short) != short {
		t.Fatal("short question should pass through unchanged")
	}
}

func TestAskServerErrorMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"OPENAI_API_KEY not set"}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Ask(context.Background(), "hello?")
	if err == nil {
		t.Fatal("expected error from 500")
	}
	if err.Error() != "OPENAI_API_KEY not set" {
		t.Fatalf("error = %q; want the server's error string", err)
	}
}

func TestAskHTTPStatusFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream exploded, not json"))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Ask(context.Background(), "hello?")
	if err == nil {
		t.Fatal("expected error from 502")
	}
	if !strings.Contains(err.Error(), "502") {
		t.Fatalf("error = %q; want HTTP status fallback", err)
	}
}

func TestAskSilenceOnMissingText(t *testing.T) {
	for _, body := range []string{`{}`, `{"something":"else"}`, `not json at all`} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(body))
		}))
		text, err := NewClient(srv.URL).Ask(context.Background(), "hello?")
		srv.Close()
		if err != nil {
			t.Fatalf("body %q: unexpected error %v", body, err)
		}
		if text != "" {
			t.Fatalf("body %q: text = %q; want silence", body, text)
		}
	}
}

func TestIsAvailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusMethodNotAllowed) // GET probe on a POST route
	}))
	if !IsAvailable(srv.URL) {
		t.Fatal("4xx means the endpoint is up")
	}
	srv.Close()
	if IsAvailable(srv.URL) {
		t.Fatal("closed server should report unavailable")
	}
}

func TestFriendlyMapping(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"HTTP 429 Too Many Requests", "Rate limit reached. Please try again in a moment."},
		{"401 unauthorized", "Server auth failed (API key)."},
		{"OPENAI_API_KEY not set", "Server missing API key."},
		{"dial tcp: lookup x: no such host", "Network error. Check your connection."},
		{"context deadline exceeded", "Upstream timeout. Please retry."},
		{"HTTP 502 Bad Gateway", "Upstream failure (bad gateway)."},
		{"HTTP 404 Not Found", "The ghost endpoint was not found."},
		{"something else entirely", "An unexpected error occurred."},
	}
	for _, c := range cases {
		if got := Friendly(errors.New(c.in)); got != c.want {
			t.Fatalf("Friendly(%q) = %q; want %q", c.in, got, c.want)
		}
	}
	if Friendly(nil) != "" {
		t.Fatal("Friendly(nil) should be empty")
	}
}
