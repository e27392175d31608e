package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ramanasai/prodhub/internal/db"
	"github.com/ramanasai/prodhub/internal/logging"
	"github.com/ramanasai/prodhub/internal/quote"
	"github.com/spf13/cobra"
)

var quoteRefresh bool

var quoteCmd = &cobra.Command{
	Use:   "quote",
	Short: "Show today's motivational quote",
	RunE: func(cmd *cobra.Command, args []string) error {
		if quoteRefresh {
			if err := cur.store.Delete(db.KeyQuoteCache); err != nil {
				logging.GetLogger(logging.Quote).Printf("[WARN] Cannot drop quote cache: %s\n", err.Error())
			}
		}
		q := cur.dailyQuote(cmd.Context())
		fmt.Printf("%q\n  - %s\n", q.Text, q.Author)
		return nil
	},
}

func init() {
	quoteCmd.Flags().BoolVar(&quoteRefresh, "refresh", false, "Ignore today's cached quote")
}

// quoteSource picks the configured provider. The chat source falls back to
// the built-in collection when no API key is set.
func (e *env) quoteSource() quote.Source {
	l := logging.GetLogger(logging.Quote)
	if strings.EqualFold(e.cfg.Quote.Source, "http") || strings.EqualFold(e.cfg.Quote.Source, "chat") {
		if key := os.Getenv(e.cfg.Quote.APIKeyEnv); key != "" {
			return quote.NewChat(e.cfg.Quote.Endpoint, e.cfg.Quote.Model, key, l)
		}
		l.Printf("[WARN] %s is not set, using built-in quotes\n", e.cfg.Quote.APIKeyEnv)
	}
	return quote.NewPicker(time.Now().UnixNano())
}

func (e *env) dailyQuote(ctx context.Context) quote.Quote {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return quote.Daily(ctx, e.store, e.quoteSource(), e.now(), logging.GetLogger(logging.Quote))
}
