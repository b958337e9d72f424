package items

import (
	"fmt"
	"math/big"
	"strconv"

	"github.com/curatehub/libcurate-go/registry"
)

// The indexer serializes big integers and timestamps as decimal strings;
// these wire types mirror that shape and convert into the registry model.

type litemsData struct {
	Litems []itemWire `json:"litems"`
}

type itemWire struct {
	ItemID                      string       `json:"itemID"`
	Data                        string       `json:"data"`
	Status                      string       `json:"status"`
	Disputed                    bool         `json:"disputed"`
	LatestRequestSubmissionTime string       `json:"latestRequestSubmissionTime"`
	Metadata                    *struct {
		Props []registry.Prop `json:"props"`
	} `json:"metadata"`
	Requests []requestWire `json:"requests"`
}

type requestWire struct {
	Challenger     string      `json:"challenger"`
	Deposit        string      `json:"deposit"`
	DisputeID      string      `json:"disputeID"`
	Disputed       bool        `json:"disputed"`
	Requester      string      `json:"requester"`
	RequestType    string      `json:"requestType"`
	ResolutionTime string      `json:"resolutionTime"`
	Resolved       bool        `json:"resolved"`
	SubmissionTime string      `json:"submissionTime"`
	Rounds         []roundWire `json:"rounds"`
	EvidenceGroup  *struct {
		Evidences []evidenceWire `json:"evidences"`
	} `json:"evidenceGroup"`
}

type roundWire struct {
	AmountPaidRequester  string `json:"amountPaidRequester"`
	AmountPaidChallenger string `json:"amountPaidChallenger"`
	HasPaidRequester     bool   `json:"hasPaidRequester"`
	HasPaidChallenger    bool   `json:"hasPaidChallenger"`
	AppealPeriodStart    string `json:"appealPeriodStart"`
	AppealPeriodEnd      string `json:"appealPeriodEnd"`
	Ruling               string `json:"ruling"`
	Appealed             bool   `json:"appealed"`
}

type evidenceWire struct {
	Party     string `json:"party"`
	URI       string `json:"URI"`
	Timestamp string `json:"timestamp"`
}

// toModel converts a wire item into the registry model.
func (w *itemWire) toModel() (registry.Item, error) {
	status, err := registry.ParseStatus(w.Status)
	if err != nil {
		return registry.Item{}, fmt.Errorf("%w: item %s: %w", ErrIndexerResponse, w.ItemID, err)
	}
	ts, err := parseUnix(w.LatestRequestSubmissionTime)
	if err != nil {
		return registry.Item{}, fmt.Errorf("%w: item %s: %w", ErrIndexerResponse, w.ItemID, err)
	}

	item := registry.Item{
		ID:                          w.ItemID,
		Data:                        w.Data,
		Status:                      status,
		Disputed:                    w.Disputed,
		LatestRequestSubmissionTime: ts,
	}
	if w.Metadata != nil {
		item.Props = w.Metadata.Props
	}

	for _, rw := range w.Requests {
		req, err := rw.toModel()
		if err != nil {
			return registry.Item{}, fmt.Errorf("%w: item %s: %w", ErrIndexerResponse, w.ItemID, err)
		}
		item.Requests = append(item.Requests, req)
	}
	return item, nil
}

func (w *requestWire) toModel() (registry.Request, error) {
	deposit, err := parseBig(w.Deposit)
	if err != nil {
		return registry.Request{}, fmt.Errorf("deposit: %w", err)
	}
	disputeID, err := parseBig(w.DisputeID)
	if err != nil {
		return registry.Request{}, fmt.Errorf("disputeID: %w", err)
	}
	submitted, err := parseUnix(w.SubmissionTime)
	if err != nil {
		return registry.Request{}, fmt.Errorf("submissionTime: %w", err)
	}
	resolved, err := parseUnix(w.ResolutionTime)
	if err != nil {
		return registry.Request{}, fmt.Errorf("resolutionTime: %w", err)
	}

	req := registry.Request{
		RequestType:    w.RequestType,
		Requester:      w.Requester,
		Challenger:     w.Challenger,
		Deposit:        deposit,
		DisputeID:      disputeID,
		Disputed:       w.Disputed,
		Resolved:       w.Resolved,
		SubmissionTime: submitted,
		ResolutionTime: resolved,
	}

	for _, rw := range w.Rounds {
		round, err := rw.toModel()
		if err != nil {
			return registry.Request{}, err
		}
		req.Rounds = append(req.Rounds, round)
	}
	if w.EvidenceGroup != nil {
		for _, ew := range w.EvidenceGroup.Evidences {
			ts, err := parseUnix(ew.Timestamp)
			if err != nil {
				return registry.Request{}, fmt.Errorf("evidence timestamp: %w", err)
			}
			req.Evidence = append(req.Evidence, registry.Evidence{
				Party:          ew.Party,
				URI:            ew.URI,
				SubmissionTime: ts,
			})
		}
	}
	return req, nil
}

func (w *roundWire) toModel() (registry.Round, error) {
	paidRequester, err := parseBig(w.AmountPaidRequester)
	if err != nil {
		return registry.Round{}, fmt.Errorf("amountPaidRequester: %w", err)
	}
	paidChallenger, err := parseBig(w.AmountPaidChallenger)
	if err != nil {
		return registry.Round{}, fmt.Errorf("amountPaidChallenger: %w", err)
	}
	start, err := parseUnix(w.AppealPeriodStart)
	if err != nil {
		return registry.Round{}, fmt.Errorf("appealPeriodStart: %w", err)
	}
	end, err := parseUnix(w.AppealPeriodEnd)
	if err != nil {
		return registry.Round{}, fmt.Errorf("appealPeriodEnd: %w", err)
	}
	ruling, err := parseRuling(w.Ruling)
	if err != nil {
		return registry.Round{}, err
	}

	return registry.Round{
		AmountPaidRequester:  paidRequester,
		AmountPaidChallenger: paidChallenger,
		HasPaidRequester:     w.HasPaidRequester,
		HasPaidChallenger:    w.HasPaidChallenger,
		AppealPeriodStart:    start,
		AppealPeriodEnd:      end,
		Ruling:               ruling,
		Appealed:             w.Appealed,
	}, nil
}

// parseUnix parses a decimal Unix timestamp. Empty strings decode to zero
// (the indexer omits unresolved timestamps).
func parseUnix(s string) (int64, error) {
	if s == "" {
		return 0, nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid timestamp %q", s)
	}
	return n, nil
}

// parseBig parses a decimal big integer. Empty strings decode to zero.
func parseBig(s string) (*big.Int, error) {
	if s == "" {
		return new(big.Int), nil
	}
	n, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, fmt.Errorf("invalid integer %q", s)
	}
	return n, nil
}

// parseRuling parses the indexer's ruling representation, which is either
// a name or a small decimal.
func parseRuling(s string) (registry.Ruling, error) {
	switch s {
	case "", "None", "0":
		return registry.RulingNone, nil
	case "Accept", "1":
		return registry.RulingAccept, nil
	case "Reject", "2":
		return registry.RulingReject, nil
	}
	return registry.RulingNone, fmt.Errorf("invalid ruling %q", s)
}
