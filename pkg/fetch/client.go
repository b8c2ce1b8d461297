// Package fetch issues catalog and reference-set requests, deduplicating
// through an injected response cache.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/solenne/marquee/pkg/cache"
	"github.com/solenne/marquee/pkg/model"
)

const (
	// DefaultTimeout bounds every request.
	DefaultTimeout = 10 * time.Second

	// responseTTL is how long successful payloads stay cached.
	responseTTL = 5 * time.Minute

	// catalogKey is the cache key for the home catalog.
	catalogKey = "home"

	// batchLimit caps concurrent reference-set requests in a batch. The
	// upstream contract permits unbounded fan-out; a modest cap keeps a
	// large catalog from opening dozens of sockets at once.
	batchLimit = 8
)

// Client fetches catalog data from the content API. It owns the response
// cache; nothing else mutates it.
type Client struct {
	baseURL string
	http    *http.Client
	cache   *cache.Cache
}

// NewClient creates a client with the default request timeout.
func NewClient(baseURL string, c *cache.Cache) *Client {
	return NewClientWithTimeout(baseURL, c, DefaultTimeout)
}

// NewClientWithTimeout creates a client with an explicit request timeout.
func NewClientWithTimeout(baseURL string, c *cache.Cache, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if c == nil {
		c = cache.New()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		cache:   c,
	}
}

// Cache exposes the client's cache for inspection (stats, clearing).
func (c *Client) Cache() *cache.Cache {
	return c.cache
}

// FetchCatalog loads the home catalog, serving from cache when possible.
func (c *Client) FetchCatalog(ctx context.Context) ([]model.CatalogRow, error) {
	if payload, ok := c.cache.Get(catalogKey); ok {
		return model.DecodeCatalog(payload)
	}

	payload, err := c.getBytes(ctx, c.baseURL+"/home.json", "failed to load catalog")
	if err != nil {
		return nil, err
	}

	rows, err := model.DecodeCatalog(payload)
	if err != nil {
		return nil, &Error{Kind: ErrShape, Message: "catalog response has unexpected structure", Err: err}
	}

	c.cache.Set(catalogKey, payload, responseTTL)
	return rows, nil
}

// FetchReferenceSet loads the item list for one deferred row.
func (c *Client) FetchReferenceSet(ctx context.Context, ref string) ([]model.ContentItem, error) {
	key := refKey(ref)
	if payload, ok := c.cache.Get(key); ok {
		return model.DecodeReferenceSet(payload)
	}

	payload, err := c.getBytes(ctx, c.baseURL+"/sets/"+url.PathEscape(ref)+".json", "failed to load reference set "+ref)
	if err != nil {
		return nil, err
	}

	items, err := model.DecodeReferenceSet(payload)
	if err != nil {
		return nil, &Error{Kind: ErrShape, Message: "reference set " + ref + " has unexpected structure", Err: err}
	}

	c.cache.Set(key, payload, responseTTL)
	return items, nil
}

// BatchFetchReferenceSets loads several reference sets at once. Cached sets
// are served directly; the rest are fetched concurrently. A failed reference
// is simply absent from the result map, so partial success is the expected
// outcome and never aborts sibling fetches.
func (c *Client) BatchFetchReferenceSets(ctx context.Context, refs []string) map[string][]model.ContentItem {
	results := make(map[string][]model.ContentItem, len(refs))

	var uncached []string
	for _, ref := range refs {
		if _, ok := results[ref]; ok {
			continue
		}
		if payload, ok := c.cache.Get(refKey(ref)); ok {
			if items, err := model.DecodeReferenceSet(payload); err == nil {
				results[ref] = items
				continue
			}
		}
		uncached = append(uncached, ref)
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(batchLimit)
	for _, ref := range uncached {
		g.Go(func() error {
			items, err := c.FetchReferenceSet(gctx, ref)
			if err != nil {
				// Swallowed: the ref stays absent from the result map.
				return nil
			}
			mu.Lock()
			results[ref] = items
			mu.Unlock()
			return nil
		})
	}
	g.Wait()

	return results
}

// getBytes performs one GET and classifies any failure.
func (c *Client) getBytes(ctx context.Context, reqURL, message string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, &Error{Kind: ErrNetwork, Message: message, Err: err}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, classify(message, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &Error{
			Kind:    ErrNetwork,
			Message: fmt.Sprintf("%s: unexpected status %s", message, resp.Status),
		}
	}

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, classify(message, err)
	}
	return payload, nil
}

func refKey(ref string) string {
	return "set:" + ref
}
