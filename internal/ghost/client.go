package ghost

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultURL is the hosted reply endpoint.
const DefaultURL = "https://memory-grove-api.vercel.app/api/ghost"

// MaxQuestionChars is the hard cap applied before a question is sent.
const MaxQuestionChars = 150

// TruncateQuestion clamps a question to MaxQuestionChars. The cap counts
// runes, not bytes, so a multi-byte character at the boundary is never split
// into invalid UTF-8.
func TruncateQuestion(s string) string {
	r := []rune(s)
	if len(r) <= MaxQuestionChars {
		return s
	}
	return string(r[:MaxQuestionChars])
}

// Client talks to the remote reply endpoint: POST {"question"} -> {"text"}.
type Client struct {
	URL        string
	HTTPClient *http.Client
}

func NewClient(url string) *Client {
	if url == "" {
		url = DefaultURL
	}
	return &Client{
		URL:        url,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

type askRequest struct {
	Question string `json:"question"`
}

type askResponse struct {
	Text  string `json:"text"`
	Error string `json:"error"`
}

// Ask sends the question and returns the reply text. A 2xx response with a
// missing text field (or an unparsable body) is "silence": empty string, no
// error. Non-2xx surfaces the server's error string when present, otherwise a
// generic HTTP status message.
func (c *Client) Ask(ctx context.Context, question string) (string, error) {
	question = TruncateQuestion(question)
	body, err := json.Marshal(askRequest{Question: question})
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	var data askResponse
	// Non-JSON bodies are tolerated; data stays zero.
	_ = json.Unmarshal(raw, &data)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := data.Error
		if msg == "" {
			msg = fmt.Sprintf("HTTP %d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
		}
		return "", fmt.Errorf("%s", msg)
	}
	return data.Text, nil
}

// IsAvailable reports whether the endpoint answers at all, with a short timeout.
func IsAvailable(url string) bool {
	if url == "" {
		url = DefaultURL
	}
	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get(url)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode < 500
}
