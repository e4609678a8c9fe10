package board

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/go-github/v79/github"
	"github.com/muesli/cache2go"
)

// RepoCache caches the node IDs needed to attach a Projects V2 board to a
// repository, so repeated boards for the same repository cost one lookup.
type RepoCache struct {
	client *github.Client
	mu     sync.Mutex
	cache  *cache2go.CacheTable
	ttl    time.Duration
	logger *slog.Logger
}

// RepoInfo captures repository metadata needed to create a Projects V2 board.
type RepoInfo struct {
	NodeID      string
	OwnerNodeID string
	OwnerLogin  string
	// OwnerType is "User" or "Organization".
	OwnerType string
	Private   bool
}

const (
	defaultRepoCacheTTL  = 20 * time.Minute
	defaultRepoCacheName = "repository-node-ids"
)

// RepoCacheOption configures RepoCache at construction time.
type RepoCacheOption func(*RepoCache)

// WithTTL overrides the default TTL applied to cache entries. A non-positive
// duration disables expiration.
func WithTTL(ttl time.Duration) RepoCacheOption {
	return func(c *RepoCache) {
		c.ttl = ttl
	}
}

// WithCacheLogger sets the logger used for cache diagnostics.
func WithCacheLogger(logger *slog.Logger) RepoCacheOption {
	return func(c *RepoCache) {
		c.logger = logger
	}
}

// WithCacheName overrides the cache table name used for storing entries. This option is intended for tests
// that need isolated cache instances.
func WithCacheName(name string) RepoCacheOption {
	return func(c *RepoCache) {
		if name != "" {
			c.cache = cache2go.Cache(name)
		}
	}
}

func NewRepoCache(client *github.Client, opts ...RepoCacheOption) *RepoCache {
	c := &RepoCache{
		client: client,
		cache:  cache2go.Cache(defaultRepoCacheName),
		ttl:    defaultRepoCacheTTL,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// Lookup returns the repository's metadata, from cache when possible.
func (c *RepoCache) Lookup(ctx context.Context, owner, repo string) (RepoInfo, error) {
	if c == nil {
		return RepoInfo{}, fmt.Errorf("nil repository cache")
	}

	key := cacheKey(owner, repo)
	c.mu.Lock()
	defer c.mu.Unlock()

	if item, err := c.cache.Value(key); err == nil {
		c.logDebug("repository cache hit", "owner", owner, "repo", repo)
		return item.Data().(RepoInfo), nil
	}

	c.logDebug("repository cache miss", "owner", owner, "repo", repo)
	info, err := c.fetch(ctx, owner, repo)
	if err != nil {
		return RepoInfo{}, err
	}
	c.cache.Add(key, c.ttl, info)
	return info, nil
}

func (c *RepoCache) fetch(ctx context.Context, owner, repo string) (RepoInfo, error) {
	if c.client == nil {
		return RepoInfo{}, fmt.Errorf("nil REST client")
	}

	r, resp, err := c.client.Repositories.Get(ctx, owner, repo)
	if err != nil {
		return RepoInfo{}, apiError(fmt.Sprintf("failed to get repository %s/%s", owner, repo), resp, err)
	}

	return RepoInfo{
		NodeID:      r.GetNodeID(),
		OwnerNodeID: r.GetOwner().GetNodeID(),
		OwnerLogin:  r.GetOwner().GetLogin(),
		OwnerType:   r.GetOwner().GetType(),
		Private:     r.GetPrivate(),
	}, nil
}

func cacheKey(owner, repo string) string {
	return fmt.Sprintf("%s/%s", strings.ToLower(owner), strings.ToLower(repo))
}

func (c *RepoCache) logDebug(msg string, args ...any) {
	if c != nil && c.logger != nil {
		c.logger.Debug(msg, args...)
	}
}
