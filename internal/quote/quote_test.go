package quote

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ramanasai/prodhub/internal/db"
)

func TestPickerNeverRepeats(t *testing.T) {
	p := NewPicker(42)
	prev := p.Next()
	for i := 0; i < 500; i++ {
		q := p.Next()
		if q == prev {
			t.Fatalf("quote repeated at draw %d: %q", i, q.Text)
		}
		prev = q
	}
}

type staticSource struct {
	q     Quote
	err   error
	calls int
}

func (s *staticSource) Fetch(context.Context) (Quote, error) {
	s.calls++
	return s.q, s.err
}

func TestDailyCachesPerDay(t *testing.T) {
	kv := db.NewMemory()
	src := &staticSource{q: Quote{Text: "Ship it.", Author: "Someone"}}
	day := time.Date(2024, 5, 14, 8, 0, 0, 0, time.Local)

	if q := Daily(context.Background(), kv, src, day, nil); q.Text != "Ship it." {
		t.Fatalf("unexpected quote %+v", q)
	}
	src.q = Quote{Text: "Different", Author: "Other"}
	if q := Daily(context.Background(), kv, src, day.Add(10*time.Hour), nil); q.Text != "Ship it." {
		t.Errorf("same day should be served from cache, got %+v", q)
	}
	if src.calls != 1 {
		t.Errorf("expected one fetch, got %d", src.calls)
	}
	if q := Daily(context.Background(), kv, src, day.AddDate(0, 0, 1), nil); q.Text != "Different" {
		t.Errorf("next day should fetch again, got %+v", q)
	}

	c, err := Load(kv)
	if err != nil || c.Date != "2024-05-15" {
		t.Errorf("cache record not updated: %+v %v", c, err)
	}
}

func TestDailyFallback(t *testing.T) {
	kv := db.NewMemory()
	src := &staticSource{err: errors.New("offline")}
	if q := Daily(context.Background(), kv, src, time.Now(), nil); q != Fallback {
		t.Errorf("expected fallback, got %+v", q)
	}
	_ = kv.Put(db.KeyQuoteCache, []byte("garbage"))
	if q := Daily(context.Background(), kv, nil, time.Now(), nil); q != Fallback {
		t.Errorf("malformed cache without source should fall back, got %+v", q)
	}
}

func TestParse(t *testing.T) {
	type testCase struct {
		in     string
		expect Quote
	}
	var cases = []testCase{
		{`"Do one thing at a time" - Focus Master`, Quote{"Do one thing at a time", "Focus Master"}},
		{`"Start small" — Unknown`, Quote{"Start small", "Unknown"}},
		{`Keep going – Anon`, Quote{"Keep going", "Anon"}},
		{"\"Stay hungry\"\nSteve Jobs", Quote{"Stay hungry", "Steve Jobs"}},
		{"Just a line", Quote{"Just a line", "AI"}},
	}
	for _, c := range cases {
		if got := Parse(c.in); got != c.expect {
			t.Errorf("Parse(%q): expected %+v, got %+v", c.in, c.expect, got)
		}
	}
}

func TestChatFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Model != "tiny" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":" \"Less, but better\" - Dieter Rams "}}]}`))
	}))
	defer srv.Close()

	q, err := NewChat(srv.URL, "tiny", "secret", nil).Fetch(context.Background())
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if q.Text != "Less, but better" || q.Author != "Dieter Rams" {
		t.Errorf("unexpected quote %+v", q)
	}

	if _, err := NewChat(srv.URL, "tiny", "wrong", nil).Fetch(context.Background()); err == nil {
		t.Error("non-200 status should be an error")
	}
	if _, err := NewChat(srv.URL, "tiny", "", nil).Fetch(context.Background()); err == nil {
		t.Error("missing key should be an error")
	}
}
