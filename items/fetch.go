package items

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/curatehub/libcurate-go/registry"
)

// Batch is the result of one bounded indexer query.
type Batch struct {
	Items []registry.Item
	// HasMore reports whether another page may exist. It is a heuristic:
	// a batch that fills exactly to the batch size is assumed to possibly
	// have more, which can cost one wasted empty call when the true count
	// is an exact multiple of the batch size. Existing callers rely on
	// this batch-count behavior, so it is preserved rather than fixed.
	HasMore bool
}

// Progress reports retrieval progress after each batch. Total is only
// meaningful once TotalKnown is true, which happens when no more batches
// remain.
type Progress struct {
	Loaded     int
	Total      int
	TotalKnown bool
}

// FetchStats summarizes one FetchItems call.
type FetchStats struct {
	Batches int `json:"batches"`
	Total   int `json:"total"`
}

// FetchResult is the outcome of one FetchItems call.
type FetchResult struct {
	Items []registry.Item
	Stats FetchStats
}

// FetchOptions controls a FetchItems call. The zero value fetches
// everything, unfiltered, through the cache.
type FetchOptions struct {
	// Filters adds field_in predicates to every batch query.
	Filters map[string][]string
	// ForceRefresh bypasses the cache read and re-fetches.
	ForceRefresh bool
	// MaxBatches bounds the number of batch queries; 0 means unbounded.
	// Hitting the bound still writes the (partial) result to the cache.
	MaxBatches int
	// OnProgress, if set, is invoked after each batch.
	OnProgress func(Progress)
	// Cancel is checked before each batch. Cancellation is silent: the
	// call returns an empty result with zero stats, not an error.
	Cancel *Token
}

// Pipeline retrieves items from one indexer endpoint. Each pipeline owns
// its cache, so constructing a fresh pipeline gives test isolation
// without hidden global state.
type Pipeline struct {
	indexer   *IndexerClient
	cache     *Cache
	persist   *BoltCache
	batchSize int
	log       zerolog.Logger
}

// PipelineOption configures a Pipeline.
type PipelineOption func(*Pipeline)

// WithBatchSize overrides the indexer page size. Mostly useful in tests.
func WithBatchSize(n int) PipelineOption {
	return func(p *Pipeline) {
		if n > 0 {
			p.batchSize = n
		}
	}
}

// WithLogger sets the logger used for quiet-degradation warnings.
// The default is a no-op logger.
func WithLogger(log zerolog.Logger) PipelineOption {
	return func(p *Pipeline) { p.log = log }
}

// WithPersistentCache attaches a BoltCache that completed fetches are
// written through to, best effort. It is never read implicitly; use Warm
// to load it into the in-memory cache.
func WithPersistentCache(bc *BoltCache) PipelineOption {
	return func(p *Pipeline) { p.persist = bc }
}

// NewPipeline creates a pipeline over the given indexer client.
func NewPipeline(indexer *IndexerClient, opts ...PipelineOption) *Pipeline {
	p := &Pipeline{
		indexer:   indexer,
		cache:     NewCache(),
		batchSize: DefaultBatchSize,
		log:       zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// FetchItemsBatch issues one bounded query for items of registryAddr,
// ordered by descending latestRequestSubmissionTime. A non-nil cursor
// restricts results to timestamps strictly below it.
func (p *Pipeline) FetchItemsBatch(ctx context.Context, registryAddr string, cursor *int64, filters map[string][]string) (*Batch, error) {
	addr, err := registry.NormalizeAddress(registryAddr)
	if err != nil {
		return nil, err
	}

	query := buildItemsQuery(addr, cursor, filters, p.batchSize)
	var data litemsData
	if err := p.indexer.Query(ctx, query, &data); err != nil {
		return nil, err
	}

	batch := &Batch{
		Items:   make([]registry.Item, 0, len(data.Litems)),
		HasMore: len(data.Litems) == p.batchSize,
	}
	for i := range data.Litems {
		item, err := data.Litems[i].toModel()
		if err != nil {
			return nil, err
		}
		batch.Items = append(batch.Items, item)
	}
	return batch, nil
}

// FetchItems retrieves the item set for (registryAddr, chainID),
// paginating the indexer until exhaustion. Results are cached under the
// canonical (chain, registry, filters) key; a cache hit returns
// immediately with zero batches counted.
//
// Batches are strictly sequential: no batch is requested before the
// previous one's cursor is known. Indexer failures and cancellations
// degrade to an empty result with a nil error; compute paths elsewhere in
// the SDK stay loud, but listings are expected to render partial data.
func (p *Pipeline) FetchItems(ctx context.Context, registryAddr string, chainID uint64, opts FetchOptions) (*FetchResult, error) {
	return p.fetch(ctx, registryAddr, chainID, opts, true)
}

// FetchItemsByID retrieves specific items by identifier. The cache is
// bypassed in both directions: identifier sets are not a stable enough
// key to reuse cheaply.
func (p *Pipeline) FetchItemsByID(ctx context.Context, registryAddr string, chainID uint64, itemIDs []string) (*FetchResult, error) {
	opts := FetchOptions{
		Filters:      map[string][]string{"itemID": itemIDs},
		ForceRefresh: true,
	}
	return p.fetch(ctx, registryAddr, chainID, opts, false)
}

// FetchItemsByStatus retrieves items in the given lifecycle states.
// Like FetchItemsByID it always re-fetches and never caches.
func (p *Pipeline) FetchItemsByStatus(ctx context.Context, registryAddr string, chainID uint64, statuses []registry.Status) (*FetchResult, error) {
	names := make([]string, len(statuses))
	for i, s := range statuses {
		names[i] = s.String()
	}
	opts := FetchOptions{
		Filters:      map[string][]string{"status": names},
		ForceRefresh: true,
	}
	return p.fetch(ctx, registryAddr, chainID, opts, false)
}

func (p *Pipeline) fetch(ctx context.Context, registryAddr string, chainID uint64, opts FetchOptions, writeCache bool) (*FetchResult, error) {
	if _, err := registry.ParamsForChain(chainID); err != nil {
		return nil, err
	}
	key, err := CacheKey(chainID, registryAddr, opts.Filters)
	if err != nil {
		return nil, err
	}

	if !opts.ForceRefresh {
		if cached, ok := p.cache.Get(key); ok {
			return &FetchResult{
				Items: cached,
				Stats: FetchStats{Batches: 0, Total: len(cached)},
			}, nil
		}
	}

	items := []registry.Item{}
	batches := 0
	var cursor *int64

	for opts.MaxBatches == 0 || batches < opts.MaxBatches {
		if opts.Cancel.Cancelled() {
			p.log.Debug().Str("key", key).Int("batches", batches).
				Msg("item fetch cancelled")
			return emptyResult(), nil
		}

		batch, err := p.FetchItemsBatch(ctx, registryAddr, cursor, opts.Filters)
		if err != nil {
			p.log.Warn().Err(err).Str("key", key).Int("batches", batches).
				Msg("item fetch degraded to empty result")
			return emptyResult(), nil
		}

		items = append(items, batch.Items...)
		batches++
		if opts.OnProgress != nil {
			opts.OnProgress(Progress{Loaded: len(items)})
		}

		if !batch.HasMore || len(batch.Items) == 0 {
			break
		}
		last := batch.Items[len(batch.Items)-1].LatestRequestSubmissionTime
		cursor = &last
	}

	// Always cache the accumulated set, even when MaxBatches made it
	// partial: callers requesting partial loads accept a partial entry.
	if writeCache {
		p.cache.Set(key, items)
		if p.persist != nil {
			if err := p.persist.Put(key, items); err != nil {
				p.log.Warn().Err(err).Str("key", key).Msg("persistent cache write failed")
			}
		}
	}

	if opts.OnProgress != nil {
		opts.OnProgress(Progress{Loaded: len(items), Total: len(items), TotalKnown: true})
	}
	return &FetchResult{
		Items: items,
		Stats: FetchStats{Batches: batches, Total: len(items)},
	}, nil
}

// emptyResult is the silent-degradation result for cancelled or failed
// retrievals.
func emptyResult() *FetchResult {
	return &FetchResult{Items: []registry.Item{}}
}

// ClearItemsCache invalidates cached item sets. With a zero chainID and
// empty registryAddr it flushes everything. With both present it removes
// only the entry under the exact computed key. Partial argument
// combinations intentionally do nothing rather than guessing.
func (p *Pipeline) ClearItemsCache(registryAddr string, chainID uint64, filters map[string][]string) error {
	if registryAddr == "" && chainID == 0 {
		p.cache.Flush()
		if p.persist != nil {
			return p.persist.Flush()
		}
		return nil
	}
	if registryAddr == "" || chainID == 0 {
		return nil
	}

	key, err := CacheKey(chainID, registryAddr, filters)
	if err != nil {
		return err
	}
	p.cache.Delete(key)
	if p.persist != nil {
		return p.persist.Delete(key)
	}
	return nil
}

// Warm loads a persisted item set into the in-memory cache, so a process
// restart can serve listings before the first fetch completes. No-op
// without a persistent cache or a stored entry.
func (p *Pipeline) Warm(registryAddr string, chainID uint64, filters map[string][]string) error {
	if p.persist == nil {
		return nil
	}
	key, err := CacheKey(chainID, registryAddr, filters)
	if err != nil {
		return err
	}
	items, found, err := p.persist.Get(key)
	if err != nil {
		return fmt.Errorf("items: warm cache: %w", err)
	}
	if found {
		p.cache.Set(key, items)
	}
	return nil
}
