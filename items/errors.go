package items

import "errors"

var (
	// ErrNetwork indicates a transport-level failure reaching the indexer.
	ErrNetwork = errors.New("items: indexer unreachable")

	// ErrIndexerResponse indicates the indexer returned errors or a
	// malformed payload. A non-empty errors array is always fatal for
	// that call.
	ErrIndexerResponse = errors.New("items: indexer returned errors")

	// ErrCacheKey indicates malformed filter input that cannot form a
	// cache key.
	ErrCacheKey = errors.New("items: invalid cache key input")

	// ErrAborted indicates a cooperative cancellation. FetchItems swallows
	// it and returns an empty result; it is exported for callers driving
	// FetchItemsBatch directly.
	ErrAborted = errors.New("items: fetch aborted")
)
