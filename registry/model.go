// Package registry defines the data model for items in a generalized
// token-curated registry: items, their lifecycle requests, arbitration
// rounds, and the chain parameters of the deployments the SDK talks to.
package registry

import (
	"fmt"
	"math/big"
)

// Status is the lifecycle state of an item.
type Status int

const (
	// StatusAbsent means the item is not on the registry.
	StatusAbsent Status = iota
	// StatusRegistered means the item is on the registry.
	StatusRegistered
	// StatusRegistrationRequested means a registration request is pending.
	StatusRegistrationRequested
	// StatusClearingRequested means a removal request is pending.
	StatusClearingRequested
)

// statusNames maps Status values to their indexer string form.
var statusNames = map[Status]string{
	StatusAbsent:                "Absent",
	StatusRegistered:            "Registered",
	StatusRegistrationRequested: "RegistrationRequested",
	StatusClearingRequested:     "ClearingRequested",
}

// String returns the indexer string form of the status.
func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// ParseStatus converts an indexer status string into a Status.
func ParseStatus(s string) (Status, error) {
	for status, name := range statusNames {
		if name == s {
			return status, nil
		}
	}
	return StatusAbsent, fmt.Errorf("%w: %q", ErrInvalidStatus, s)
}

// Ruling is an arbitrator's current ruling on a dispute.
type Ruling int

const (
	// RulingNone means the arbitrator has not ruled, or refused to rule.
	RulingNone Ruling = iota
	// RulingAccept rules in favor of the requester.
	RulingAccept
	// RulingReject rules in favor of the challenger.
	RulingReject
)

// String returns a human-readable form of the ruling.
func (r Ruling) String() string {
	switch r {
	case RulingNone:
		return "None"
	case RulingAccept:
		return "Accept"
	case RulingReject:
		return "Reject"
	}
	return fmt.Sprintf("Ruling(%d)", int(r))
}

// Side identifies a party of a dispute.
type Side int

const (
	// SideRequester is the party that filed the request.
	SideRequester Side = 1
	// SideChallenger is the party that challenged the request.
	SideChallenger Side = 2
)

// String returns a human-readable form of the side.
func (s Side) String() string {
	switch s {
	case SideRequester:
		return "Requester"
	case SideChallenger:
		return "Challenger"
	}
	return fmt.Sprintf("Side(%d)", int(s))
}

// DepositKind identifies which base deposit a registry action requires.
type DepositKind int

const (
	// DepositSubmission is the deposit for submitting a new item.
	DepositSubmission DepositKind = iota
	// DepositSubmissionChallenge is the deposit for challenging a submission.
	DepositSubmissionChallenge
	// DepositRemoval is the deposit for requesting an item's removal.
	DepositRemoval
	// DepositRemovalChallenge is the deposit for challenging a removal.
	DepositRemovalChallenge
)

// String returns a human-readable form of the deposit kind.
func (k DepositKind) String() string {
	switch k {
	case DepositSubmission:
		return "submission"
	case DepositSubmissionChallenge:
		return "submission-challenge"
	case DepositRemoval:
		return "removal"
	case DepositRemovalChallenge:
		return "removal-challenge"
	}
	return fmt.Sprintf("DepositKind(%d)", int(k))
}

// Prop is one column of an item's decoded data.
type Prop struct {
	Label        string `json:"label"`
	Type         string `json:"type"`
	Value        string `json:"value"`
	Description  string `json:"description"`
	IsIdentifier bool   `json:"isIdentifier"`
}

// Evidence is one piece of evidence attached to a request.
type Evidence struct {
	Party          string `json:"party"`
	URI            string `json:"URI"`
	SubmissionTime int64  `json:"timestamp"`
}

// Round is one arbitration round of a disputed request. Rounds are
// append-only; a new round is created when an appeal is funded by both
// sides.
type Round struct {
	AmountPaidRequester  *big.Int
	AmountPaidChallenger *big.Int
	HasPaidRequester     bool
	HasPaidChallenger    bool
	AppealPeriodStart    int64
	AppealPeriodEnd      int64
	Ruling               Ruling
	Appealed             bool
}

// Request is one lifecycle event (registration or removal attempt) on an
// item. At most one unresolved request exists per item at a time; that
// invariant is enforced by the contract, not this layer.
type Request struct {
	RequestType    string
	Requester      string
	Challenger     string
	Deposit        *big.Int
	DisputeID      *big.Int
	Disputed       bool
	Resolved       bool
	SubmissionTime int64
	ResolutionTime int64
	Rounds         []Round
	Evidence       []Evidence
}

// Item is one registry entry.
type Item struct {
	// ID is the item's fixed-length hash identifier (0x-prefixed hex).
	ID string
	// Data is the item's on-chain data blob or content URI.
	Data string
	// Status is the item's current lifecycle state.
	Status Status
	// Disputed reports whether the latest request is disputed.
	Disputed bool
	// LatestRequestSubmissionTime is the Unix time of the latest request.
	// It is the sort key and pagination cursor for item retrieval.
	LatestRequestSubmissionTime int64
	// Props are the item's decoded columns, in declaration order.
	Props []Prop
	// Requests are the item's lifecycle events, oldest first.
	Requests []Request
}

// LatestRequest returns the most recent request, or nil if none exist.
func (it *Item) LatestRequest() *Request {
	if len(it.Requests) == 0 {
		return nil
	}
	return &it.Requests[len(it.Requests)-1]
}

// ItemInfo is the on-chain view of an item, read through the contract
// rather than the indexer.
type ItemInfo struct {
	Status           Status
	NumberOfRequests uint64
}

// RequestInfo is the on-chain view of one request, including its dispute
// state. This is the read channel the financial engine uses; it is
// independent of the indexer.
type RequestInfo struct {
	Disputed            bool
	DisputeID           *big.Int
	NumberOfRounds      uint64
	Resolved            bool
	Requester           string
	Challenger          string
	Arbitrator          string
	ArbitratorExtraData []byte
	CurrentRuling       Ruling
}

// RoundInfo is the on-chain view of one arbitration round.
type RoundInfo struct {
	Appealed             bool
	AmountPaidRequester  *big.Int
	AmountPaidChallenger *big.Int
	HasPaidRequester     bool
	HasPaidChallenger    bool
	FeeRewards           *big.Int
}
