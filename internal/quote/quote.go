// Package quote provides the quote of the day: a built-in collection, an
// optional chat-completion source and a once-per-day cache.
package quote

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"math/rand"
	"sync"
	"time"

	"github.com/ramanasai/prodhub/internal/db"
	"github.com/ramanasai/prodhub/internal/model"
)

type Quote struct {
	Text   string `json:"text"`
	Author string `json:"author"`
}

// Fallback is shown whenever no other quote can be had.
var Fallback = Quote{Text: "Focus on progress, not perfection.", Author: "Unknown"}

// Cached is the persisted daily record.
type Cached struct {
	Quote Quote  `json:"quote"`
	Date  string `json:"date"`
}

// Source produces a fresh quote.
type Source interface {
	Fetch(ctx context.Context) (Quote, error)
}

// Picker draws random quotes from the built-in collection, never the same
// one twice in a row.
type Picker struct {
	mu   sync.Mutex
	rng  *rand.Rand
	last int
}

func NewPicker(seed int64) *Picker {
	return &Picker{rng: rand.New(rand.NewSource(seed)), last: -1}
}

func (p *Picker) Next() Quote {
	p.mu.Lock()
	defer p.mu.Unlock()
	i := p.rng.Intn(len(collection))
	for i == p.last && len(collection) > 1 {
		i = p.rng.Intn(len(collection))
	}
	p.last = i
	return collection[i]
}

// Fetch lets a Picker serve as a Source.
func (p *Picker) Fetch(context.Context) (Quote, error) {
	return p.Next(), nil
}

// Daily returns today's quote, fetching and caching a new one when the
// cached record is from another day. Any failure yields Fallback.
func Daily(ctx context.Context, kv db.KV, src Source, now time.Time, l *log.Logger) Quote {
	today := model.DateKey(now)

	if c, err := Load(kv); err == nil && c.Date == today && c.Quote.Text != "" {
		return c.Quote
	} else if err != nil && !errors.Is(err, db.ErrNotFound) && l != nil {
		l.Printf("[WARN] Ignoring quote cache: %s\n", err.Error())
	}

	q := Fallback
	if src != nil {
		if fresh, err := src.Fetch(ctx); err != nil {
			if l != nil {
				l.Printf("[WARN] Cannot fetch quote, using default: %s\n", err.Error())
			}
		} else if fresh.Text != "" {
			q = fresh
		}
	}

	if err := Store(kv, Cached{Quote: q, Date: today}); err != nil && l != nil {
		l.Printf("[ERROR] Cannot cache quote: %s\n", err.Error())
	}
	return q
}

func Load(kv db.KV) (Cached, error) {
	var c Cached
	raw, err := kv.Get(db.KeyQuoteCache)
	if err != nil {
		return c, err
	}
	err = json.Unmarshal(raw, &c)
	return c, err
}

func Store(kv db.KV, c Cached) error {
	raw, err := json.Marshal(c)
	if err != nil {
		return err
	}
	return kv.Put(db.KeyQuoteCache, raw)
}
