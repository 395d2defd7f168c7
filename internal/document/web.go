package document

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/SAP-F-2025/examprep-service/internal/cache"
)

var ErrInvalidURL = errors.New("invalid url")

const defaultMaxPageBytes = 5 << 20

// WebFetcher downloads pages and reduces them to readable text. Results are
// cached when the cache helper is backed by redis.
type WebFetcher struct {
	client   *http.Client
	cache    *cache.CacheHelper
	maxBytes int64
}

func NewWebFetcher(client *http.Client, helper *cache.CacheHelper) *WebFetcher {
	if client == nil {
		client = &http.Client{Timeout: 20 * time.Second}
	}
	if helper == nil {
		helper = cache.NewCacheHelper(nil, "")
	}
	return &WebFetcher{
		client:   client,
		cache:    helper,
		maxBytes: defaultMaxPageBytes,
	}
}

// FetchText returns the visible text of the page at rawURL
func (f *WebFetcher) FetchText(ctx context.Context, rawURL string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", fmt.Errorf("%w: %q", ErrInvalidURL, rawURL)
	}

	key := cacheKey(u.String())
	if text, err := f.cache.GetString(ctx, key); err == nil {
		return text, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("User-Agent", "examprep-service/1.0")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch %s: %w", u.Host, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("failed to fetch %s: status %d", u.Host, resp.StatusCode)
	}

	text, err := HTMLText(io.LimitReader(resp.Body, f.maxBytes))
	if err != nil {
		return "", err
	}

	if err := f.cache.SetString(ctx, key, text, cache.WebCacheConfig.TTL); err != nil {
		slog.WarnContext(ctx, "Failed to cache page text", "error", err, "host", u.Host)
	}
	return text, nil
}

func cacheKey(u string) string {
	sum := sha256.Sum256([]byte(u))
	return hex.EncodeToString(sum[:])
}

// HTMLText extracts the text nodes of an HTML document, skipping script,
// style and noscript content, with whitespace collapsed to single spaces.
func HTMLText(r io.Reader) (string, error) {
	z := html.NewTokenizer(r)
	var (
		words []string
		skip  int
	)

	for {
		switch z.Next() {
		case html.ErrorToken:
			if errors.Is(z.Err(), io.EOF) {
				return strings.Join(words, " "), nil
			}
			return "", fmt.Errorf("failed to parse html: %w", z.Err())
		case html.StartTagToken:
			if hiddenTag(z) {
				skip++
			}
		case html.EndTagToken:
			if hiddenTag(z) && skip > 0 {
				skip--
			}
		case html.TextToken:
			if skip == 0 {
				words = append(words, strings.Fields(string(z.Text()))...)
			}
		}
	}
}

func hiddenTag(z *html.Tokenizer) bool {
	name, _ := z.TagName()
	switch string(name) {
	case "script", "style", "noscript":
		return true
	}
	return false
}
