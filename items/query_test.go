package items

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/curatehub/libcurate-go/registry"
)

const testRegistryAddr = "0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed"

func TestCacheKeyNoFilters(t *testing.T) {
	key, err := CacheKey(1, testRegistryAddr, nil)
	require.NoError(t, err)
	assert.Equal(t, "1-"+testRegistryAddr, key)
}

func TestCacheKeyNormalizesAddress(t *testing.T) {
	key, err := CacheKey(100, "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed", nil)
	require.NoError(t, err)
	assert.Equal(t, "100-"+testRegistryAddr, key)
}

func TestCacheKeyCanonicalOrder(t *testing.T) {
	// Map order and value order must not influence the key.
	a, err := CacheKey(1, testRegistryAddr, map[string][]string{
		"status": {"Registered", "Absent"},
		"itemID": {"0x2", "0x1"},
	})
	require.NoError(t, err)
	b, err := CacheKey(1, testRegistryAddr, map[string][]string{
		"itemID": {"0x1", "0x2"},
		"status": {"Absent", "Registered"},
	})
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.Equal(t, "1-"+testRegistryAddr+"|itemID=0x1,0x2|status=Absent,Registered", a)
}

func TestCacheKeyInvalidInput(t *testing.T) {
	_, err := CacheKey(1, "not-an-address", nil)
	assert.ErrorIs(t, err, ErrCacheKey)

	_, err = CacheKey(1, testRegistryAddr, map[string][]string{"bad key!": {"x"}})
	assert.ErrorIs(t, err, ErrCacheKey)

	_, err = CacheKey(1, testRegistryAddr, map[string][]string{"1leading": {"x"}})
	assert.ErrorIs(t, err, ErrCacheKey)
}

func TestBuildItemsQuery(t *testing.T) {
	cursor := int64(5000)
	query := buildItemsQuery(testRegistryAddr, &cursor, map[string][]string{
		"status": {"Registered", "ClearingRequested"},
	}, 250)

	assert.Contains(t, query, "first: 250")
	assert.Contains(t, query, "orderBy: latestRequestSubmissionTime")
	assert.Contains(t, query, "orderDirection: desc")
	assert.Contains(t, query, `registryAddress: "`+testRegistryAddr+`"`)
	assert.Contains(t, query, `latestRequestSubmissionTime_lt: "5000"`)
	assert.Contains(t, query, `status_in: ["Registered", "ClearingRequested"]`)
}

func TestBuildItemsQueryNoCursor(t *testing.T) {
	query := buildItemsQuery(testRegistryAddr, nil, nil, 1000)
	assert.NotContains(t, query, "latestRequestSubmissionTime_lt")
	assert.Contains(t, query, "first: 1000")
}

func TestIsFilterKey(t *testing.T) {
	for _, ok := range []string{"status", "itemID", "request_type", "a1"} {
		assert.True(t, isFilterKey(ok), ok)
	}
	for _, bad := range []string{"", "1a", "with space", "semi;colon", "da-sh"} {
		assert.False(t, isFilterKey(bad), bad)
	}
}

func TestParseRuling(t *testing.T) {
	for in, want := range map[string]registry.Ruling{
		"":       registry.RulingNone,
		"None":   registry.RulingNone,
		"0":      registry.RulingNone,
		"Accept": registry.RulingAccept,
		"1":      registry.RulingAccept,
		"Reject": registry.RulingReject,
		"2":      registry.RulingReject,
	} {
		got, err := parseRuling(in)
		require.NoError(t, err, "in %q", in)
		assert.Equal(t, want, got, "in %q", in)
	}

	_, err := parseRuling("Maybe")
	assert.Error(t, err)
}

func TestItemWireToModel(t *testing.T) {
	w := itemWire{
		ItemID:                      "0x01",
		Data:                        "/ipfs/QmItem/item.json",
		Status:                      "RegistrationRequested",
		Disputed:                    true,
		LatestRequestSubmissionTime: "1700000000",
		Requests: []requestWire{{
			RequestType:    "RegistrationRequested",
			Requester:      testRegistryAddr,
			Deposit:        "1500000000000000000",
			DisputeID:      "42",
			Disputed:       true,
			SubmissionTime: "1700000000",
			ResolutionTime: "",
			Rounds: []roundWire{{
				AmountPaidRequester:  "100",
				AmountPaidChallenger: "0",
				HasPaidRequester:     true,
				Ruling:               "Accept",
			}},
		}},
	}

	item, err := w.toModel()
	require.NoError(t, err)
	assert.Equal(t, registry.StatusRegistrationRequested, item.Status)
	assert.Equal(t, int64(1700000000), item.LatestRequestSubmissionTime)

	req := item.LatestRequest()
	require.NotNil(t, req)
	assert.Equal(t, "1500000000000000000", req.Deposit.String())
	assert.Equal(t, int64(42), req.DisputeID.Int64())
	assert.Equal(t, int64(0), req.ResolutionTime)
	require.Len(t, req.Rounds, 1)
	assert.Equal(t, registry.RulingAccept, req.Rounds[0].Ruling)
	assert.Equal(t, int64(100), req.Rounds[0].AmountPaidRequester.Int64())
}

func TestItemWireToModelBadStatus(t *testing.T) {
	w := itemWire{ItemID: "0x01", Status: "Pending", LatestRequestSubmissionTime: "1"}
	_, err := w.toModel()
	assert.ErrorIs(t, err, ErrIndexerResponse)
	assert.True(t, strings.Contains(err.Error(), "0x01"))
}
