// Package actions composes the financial engine, the contract bindings
// and content storage into the money-moving registry operations: submit,
// remove, challenge, evidence and appeal funding. It is thin
// coordination: every amount comes from a fresh engine computation and
// every failure surfaces its precise cause, so calling UIs can render an
// accurate message (including distinguishing an explicit signer
// rejection, via errors.Is with chain.ErrUserRejected).
package actions

import (
	"context"
	"encoding/json"
	"fmt"
	"math/big"
	"os"

	"github.com/rs/zerolog"

	"github.com/curatehub/libcurate-go/chain"
	"github.com/curatehub/libcurate-go/config"
	"github.com/curatehub/libcurate-go/fees"
	"github.com/curatehub/libcurate-go/ipfs"
	"github.com/curatehub/libcurate-go/items"
	"github.com/curatehub/libcurate-go/registry"
)

// Evidence is the document uploaded to content storage and referenced by
// evidence-bearing transactions.
type Evidence struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	FileURI     string `json:"fileURI,omitempty"`
}

// Uploader stores a named blob and returns its content path.
// *ipfs.Client satisfies it.
type Uploader interface {
	Upload(ctx context.Context, filename string, data []byte) (string, error)
}

// Client performs registry actions against one deployment.
type Client struct {
	reg     *chain.RegistryContract
	engine  *fees.Engine
	storage Uploader
}

// New creates an action client from already-wired components.
func New(reg *chain.RegistryContract, engine *fees.Engine, storage Uploader) *Client {
	return &Client{reg: reg, engine: engine, storage: storage}
}

// SDK bundles everything a caller needs for one deployment: the action
// client for writes and the retrieval pipeline for listings.
type SDK struct {
	Actions  *Client
	Pipeline *items.Pipeline
	Registry *chain.RegistryContract
	Engine   *fees.Engine
	Storage  *ipfs.Client
	Params   *registry.ChainParams
}

// NewFromConfig validates cfg and wires the full SDK: JSON-RPC caller,
// contract bindings, financial engine, content storage and retrieval
// pipeline. sender may be nil for a read-only SDK; writes then fail with
// chain.ErrNoSender. senderAddress is the account used for gas estimation.
func NewFromConfig(cfg config.Config, sender chain.Sender, senderAddress string) (*SDK, error) {
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	params, err := registry.ParamsForChain(cfg.ChainID)
	if err != nil {
		return nil, err
	}

	rpc := chain.NewRPCClient(cfg.RPCURL)
	var caller chain.Caller
	if sender != nil {
		caller = chain.NewEthCaller(rpc, chain.WithSender(sender, senderAddress))
	} else {
		caller = chain.NewEthCaller(rpc)
	}

	reg, err := chain.NewRegistryContract(caller, rpc, cfg.RegistryAddress)
	if err != nil {
		return nil, err
	}

	dial := func(address string) (fees.ArbitratorReader, error) {
		return chain.NewArbitratorContract(caller, address)
	}
	engine := fees.NewEngine(reg, dial, fees.WithDecimals(params.NativeDecimals))

	storage := ipfs.NewClient(cfg.IPFSAPIURL, cfg.IPFSGateways)

	pipelineOpts := []items.PipelineOption{}
	if cfg.BatchSize > 0 {
		pipelineOpts = append(pipelineOpts, items.WithBatchSize(cfg.BatchSize))
	}
	if cfg.LogLevel != "" {
		level, err := zerolog.ParseLevel(cfg.LogLevel)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", config.ErrInvalidLogLevel, cfg.LogLevel)
		}
		log := zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()
		pipelineOpts = append(pipelineOpts, items.WithLogger(log))
	}
	pipeline := items.NewPipeline(items.NewIndexerClient(cfg.SubgraphURL), pipelineOpts...)

	return &SDK{
		Actions:  New(reg, engine, storage),
		Pipeline: pipeline,
		Registry: reg,
		Engine:   engine,
		Storage:  storage,
		Params:   params,
	}, nil
}

// SubmitItem uploads the item document to content storage, reads the
// current submission deposit, and submits the item with exactly that
// value attached. Returns the transaction hash.
func (c *Client) SubmitItem(ctx context.Context, item interface{}) (string, error) {
	uri, err := c.uploadJSON(ctx, "item.json", item)
	if err != nil {
		return "", err
	}

	deposit, err := c.engine.DepositAmount(ctx, registry.DepositSubmission)
	if err != nil {
		return "", err
	}
	return c.reg.AddItem(ctx, uri, deposit.BaseUnits)
}

// RemoveItem requests the removal of itemID, attaching the removal
// deposit and an optional evidence document.
func (c *Client) RemoveItem(ctx context.Context, itemID string, evidence *Evidence) (string, error) {
	uri, err := c.optionalEvidenceURI(ctx, evidence)
	if err != nil {
		return "", err
	}

	deposit, err := c.engine.DepositAmount(ctx, registry.DepositRemoval)
	if err != nil {
		return "", err
	}
	return c.reg.RemoveItem(ctx, itemID, uri, deposit.BaseUnits)
}

// Challenge challenges the item's pending request. The deposit kind
// depends on the item's on-chain status: a pending registration takes the
// submission-challenge deposit, a pending removal the removal-challenge
// deposit. Items in any other state fail with ErrNotChallengeable.
func (c *Client) Challenge(ctx context.Context, itemID string, evidence *Evidence) (string, error) {
	info, err := c.reg.ItemInfo(ctx, itemID)
	if err != nil {
		return "", err
	}

	var kind registry.DepositKind
	switch info.Status {
	case registry.StatusRegistrationRequested:
		kind = registry.DepositSubmissionChallenge
	case registry.StatusClearingRequested:
		kind = registry.DepositRemovalChallenge
	default:
		return "", fmt.Errorf("%w: item %s is %s", ErrNotChallengeable, itemID, info.Status)
	}

	uri, err := c.optionalEvidenceURI(ctx, evidence)
	if err != nil {
		return "", err
	}

	deposit, err := c.engine.DepositAmount(ctx, kind)
	if err != nil {
		return "", err
	}
	return c.reg.ChallengeRequest(ctx, itemID, uri, deposit.BaseUnits)
}

// SubmitEvidence uploads the evidence document and attaches it to the
// item's latest request.
func (c *Client) SubmitEvidence(ctx context.Context, itemID string, evidence *Evidence) (string, error) {
	if evidence == nil {
		return "", ErrNilEvidence
	}
	uri, err := c.uploadJSON(ctx, "evidence.json", evidence)
	if err != nil {
		return "", err
	}
	return c.reg.SubmitEvidence(ctx, itemID, uri)
}

// FundAppeal contributes toward side's appeal fee for (itemID,
// requestID). See the engine for clamping and already-funded semantics.
func (c *Client) FundAppeal(ctx context.Context, itemID string, requestID uint64, side registry.Side, amount *big.Int) (string, error) {
	return c.engine.FundAppeal(ctx, itemID, requestID, side, amount)
}

// uploadJSON marshals v and uploads it under filename.
func (c *Client) uploadJSON(ctx context.Context, filename string, v interface{}) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("actions: marshal %s: %w", filename, err)
	}
	return c.storage.Upload(ctx, filename, data)
}

// optionalEvidenceURI uploads evidence when present, otherwise returns an
// empty URI.
func (c *Client) optionalEvidenceURI(ctx context.Context, evidence *Evidence) (string, error) {
	if evidence == nil {
		return "", nil
	}
	return c.uploadJSON(ctx, "evidence.json", evidence)
}
