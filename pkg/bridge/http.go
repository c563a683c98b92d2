package bridge

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/urmzd/plasma-remote/pkg/tv"
)

// HTTPBridge calls a URL template for every key press.
type HTTPBridge struct {
	template string
	method   string
	client   *http.Client
}

// NewHTTPBridge creates an HTTPBridge. A nil client uses http.DefaultClient.
func NewHTTPBridge(template, method string, client *http.Client) *HTTPBridge {
	if client == nil {
		client = http.DefaultClient
	}
	if method == "" {
		method = http.MethodGet
	}
	return &HTTPBridge{template: template, method: method, client: client}
}

// BuildURL substitutes the key and protocol placeholders in template and
// escapes characters that are not valid in a URL, such as the spaces and
// braces in a Tasmota command.
func BuildURL(template string, key tv.Key, protocol string) string {
	s := strings.ReplaceAll(template, PlaceholderKey, string(key))
	s = strings.ReplaceAll(s, PlaceholderProtocol, protocol)
	return escapeURL(s)
}

// Send performs the request. The response body is discarded.
func (b *HTTPBridge) Send(ctx context.Context, key tv.Key, protocol string) Result {
	target := BuildURL(b.template, key, protocol)
	res := Result{Key: key, Protocol: protocol, Target: target}
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, b.method, target, nil)
	if err != nil {
		res.Err = fmt.Errorf("%w: %v", ErrInvalidURL, err)
		return res
	}

	resp, err := b.client.Do(req)
	res.Latency = time.Since(start)
	if err != nil {
		res.Err = fmt.Errorf("bridge request: %w", err)
		return res
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	res.StatusCode = resp.StatusCode
	return res
}

// Close is a no-op; the HTTP client owns its connections.
func (b *HTTPBridge) Close() error {
	return nil
}

// escapeURL percent-encodes bytes that may not appear raw in a URL while
// leaving existing escapes and the URL delimiters untouched.
func escapeURL(s string) string {
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if shouldKeep(c) {
			sb.WriteByte(c)
			continue
		}
		fmt.Fprintf(&sb, "%%%02X", c)
	}
	return sb.String()
}

func shouldKeep(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	switch c {
	case '-', '.', '_', '~', ':', '/', '?', '#', '[', ']', '@',
		'!', '$', '&', '\'', '(', ')', '*', '+', ',', ';', '=', '%':
		return true
	}
	return false
}
