package items

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/curatehub/libcurate-go/registry"
)

// DefaultBatchSize is the fixed page size of one indexer query.
const DefaultBatchSize = 1000

// itemFields is the fixed field set requested for every item.
const itemFields = `
      itemID
      data
      status
      disputed
      latestRequestSubmissionTime
      metadata {
        props {
          description
          isIdentifier
          label
          type
          value
        }
      }
      requests {
        challenger
        deposit
        disputeID
        disputed
        requester
        requestType
        resolutionTime
        resolved
        submissionTime
        rounds {
          amountPaidRequester
          amountPaidChallenger
          hasPaidRequester
          hasPaidChallenger
          appealPeriodStart
          appealPeriodEnd
          ruling
          appealed
        }
        evidenceGroup {
          evidences {
            party
            URI
            timestamp
          }
        }
      }`

// buildItemsQuery builds one bounded item query: descending
// latestRequestSubmissionTime order, filtered by registry address, an
// optional strictly-less-than cursor, and zero or more field_in filters.
// Filter keys are emitted in sorted order so identical inputs produce
// identical queries.
func buildItemsQuery(registryLower string, cursor *int64, filters map[string][]string, batchSize int) string {
	var where strings.Builder
	fmt.Fprintf(&where, "registryAddress: %q", registryLower)
	if cursor != nil {
		fmt.Fprintf(&where, ", latestRequestSubmissionTime_lt: %q", strconv.FormatInt(*cursor, 10))
	}
	for _, key := range sortedKeys(filters) {
		values := make([]string, len(filters[key]))
		for i, v := range filters[key] {
			values[i] = strconv.Quote(v)
		}
		fmt.Fprintf(&where, ", %s_in: [%s]", key, strings.Join(values, ", "))
	}

	return fmt.Sprintf(`{
  litems(
    first: %d
    orderBy: latestRequestSubmissionTime
    orderDirection: desc
    where: { %s }
  ) {%s
  }
}`, batchSize, where.String(), itemFields)
}

// CacheKey computes the cache key for a (chain, registry, filters)
// triple: "chainID-registryLower", followed by the canonical filter
// signature with map entries sorted by key and each value list sorted.
// Malformed input fails with ErrCacheKey.
func CacheKey(chainID uint64, registryAddr string, filters map[string][]string) (string, error) {
	addr, err := registry.NormalizeAddress(registryAddr)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrCacheKey, err)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%d-%s", chainID, addr)

	for _, key := range sortedKeys(filters) {
		if !isFilterKey(key) {
			return "", fmt.Errorf("%w: filter key %q", ErrCacheKey, key)
		}
		values := append([]string(nil), filters[key]...)
		sort.Strings(values)
		fmt.Fprintf(&sb, "|%s=%s", key, strings.Join(values, ","))
	}
	return sb.String(), nil
}

// sortedKeys returns the filter map's keys in sorted order.
func sortedKeys(filters map[string][]string) []string {
	keys := make([]string, 0, len(filters))
	for k := range filters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// isFilterKey reports whether key is a plain identifier usable as a
// GraphQL field name.
func isFilterKey(key string) bool {
	if key == "" {
		return false
	}
	for i, c := range key {
		switch {
		case c >= 'a' && c <= 'z':
		case c >= 'A' && c <= 'Z':
		case c == '_':
		case c >= '0' && c <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}
