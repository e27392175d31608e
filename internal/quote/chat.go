package quote

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/pquerna/ffjson/ffjson"
)

const prompt = "Generate one short productivity quote (max 80 chars). Return ONLY in this exact format:\n" +
	"\"Your quote here\" - Author Name\n\nExample:\n\"Do one thing at a time\" - Focus Master"

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Chat asks an OpenAI-compatible chat-completion endpoint for a quote.
type Chat struct {
	Endpoint string
	Model    string
	APIKey   string
	Client   http.Client
	log      *log.Logger
}

func NewChat(endpoint, model, apiKey string, l *log.Logger) *Chat {
	return &Chat{
		Endpoint: endpoint,
		Model:    model,
		APIKey:   apiKey,
		Client:   http.Client{Timeout: time.Second * 10},
		log:      l,
	}
}

func (c *Chat) Fetch(ctx context.Context) (Quote, error) {
	var (
		err     error
		sendBuf []byte
		rcvBuf  bytes.Buffer
		req     *http.Request
		hres    *http.Response
		ores    chatResponse
	)

	if c.APIKey == "" {
		return Quote{}, errors.New("no API key configured")
	}

	body := chatRequest{
		Model:       c.Model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		Temperature: 0.7,
		MaxTokens:   200,
	}
	if sendBuf, err = ffjson.Marshal(&body); err != nil {
		return Quote{}, fmt.Errorf("encode request: %w", err)
	}
	defer ffjson.Pool(sendBuf)

	if req, err = http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint, bytes.NewReader(sendBuf)); err != nil {
		return Quote{}, err
	}
	req.Header.Set("Authorization", "Bearer "+c.APIKey)
	req.Header.Set("Content-Type", "application/json")

	if hres, err = c.Client.Do(req); err != nil {
		return Quote{}, fmt.Errorf("POST %s: %w", c.Endpoint, err)
	}
	defer hres.Body.Close()

	if hres.StatusCode != http.StatusOK {
		return Quote{}, fmt.Errorf("unexpected status from %s: %s", c.Endpoint, hres.Status)
	} else if _, err = io.Copy(&rcvBuf, hres.Body); err != nil {
		return Quote{}, fmt.Errorf("read response: %w", err)
	} else if err = ffjson.Unmarshal(rcvBuf.Bytes(), &ores); err != nil {
		return Quote{}, fmt.Errorf("decode response: %w", err)
	} else if len(ores.Choices) == 0 {
		return Quote{}, errors.New("response has no choices")
	}

	raw := strings.TrimSpace(ores.Choices[0].Message.Content)
	if c.log != nil {
		c.log.Printf("[DEBUG] Raw quote from %s: %q\n", c.Endpoint, raw)
	}
	return Parse(raw), nil
}

var (
	quotedDash = regexp.MustCompile(`^"([^"]+)"\s*[-–—]\s*(.+)$`)
	plainDash  = regexp.MustCompile(`^([^-–—]+)\s*[-–—]\s*(.+)$`)
	edgeQuotes = regexp.MustCompile(`^["']|["']$`)
	leadDash   = regexp.MustCompile(`^[-–—*]\s*`)
)

// Parse splits model output into text and author. It understands
// `"Text" - Author`, `Text - Author` and text and author on separate lines;
// anything else becomes the text with an anonymous author.
func Parse(s string) Quote {
	s = strings.TrimSpace(s)
	if m := quotedDash.FindStringSubmatch(s); m != nil {
		return Quote{Text: strings.TrimSpace(m[1]), Author: strings.TrimSpace(m[2])}
	}
	if m := plainDash.FindStringSubmatch(s); m != nil {
		return Quote{Text: strings.TrimSpace(m[1]), Author: strings.TrimSpace(m[2])}
	}

	var lines []string
	for _, l := range strings.Split(s, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			lines = append(lines, l)
		}
	}
	if len(lines) >= 2 {
		return Quote{
			Text:   edgeQuotes.ReplaceAllString(lines[0], ""),
			Author: strings.TrimSpace(leadDash.ReplaceAllString(lines[1], "")),
		}
	}
	return Quote{Text: s, Author: "AI"}
}
