package npm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/avollmer/depvis/pkg/depgraph"
	"github.com/avollmer/depvis/pkg/httputil"
)

// DefaultBaseURL is the public npm registry endpoint.
const DefaultBaseURL = "https://registry.npmjs.org"

const userAgent = "depvis/1.0"

// Registry fetches package metadata from an npm-compatible registry over
// HTTP. Responses are cached on disk keyed by package name, so repeated
// builds of the same graph touch the network once per package per TTL.
type Registry struct {
	client  *Client
	baseURL string
	refresh bool
}

// NewRegistry creates a Registry against baseURL (DefaultBaseURL if empty).
// cacheTTL controls how long registry responses are reused; refresh forces
// every fetch past the cache.
func NewRegistry(baseURL string, cacheTTL time.Duration, refresh bool) (*Registry, error) {
	cache, err := httputil.NewCache("", cacheTTL)
	if err != nil {
		return nil, err
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Registry{
		client:  NewClient(cache, map[string]string{"User-Agent": userAgent}),
		baseURL: strings.TrimSuffix(baseURL, "/"),
		refresh: refresh,
	}, nil
}

// Fetch retrieves the raw metadata record for the named package.
// It implements [depgraph.Source].
func (r *Registry) Fetch(ctx context.Context, name string) (*depgraph.Record, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	key := "npm:" + name

	var rec depgraph.Record
	err := r.client.Cached(ctx, key, r.refresh, &rec, func() error {
		if err := r.client.Get(ctx, r.baseURL+"/"+name, &rec); err != nil {
			if errors.Is(err, ErrNotFound) {
				return fmt.Errorf("%w: npm package %s", err, name)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &rec, nil
}
