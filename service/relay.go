package service

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"time"

	"prism/common/types"
	"prism/log"
	"prism/metrics"
)

// State is a step of the relay workflow.
type State int

const (
	Validating State = iota
	ResolvingSender
	ResolvingRecipients
	Publishing
	Minting
	Confirming
	Done
	Failed
)

var stateNames = [...]string{
	Validating:          "VALIDATING",
	ResolvingSender:     "RESOLVING_SENDER",
	ResolvingRecipients: "RESOLVING_RECIPIENTS",
	Publishing:          "PUBLISHING",
	Minting:             "MINTING",
	Confirming:          "CONFIRMING",
	Done:                "DONE",
	Failed:              "FAILED",
}

func (s State) String() string {
	if s >= 0 && int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// failureKinds is the error kind a step reports when it fails
var failureKinds = map[State]ErrorKind{
	Validating:          BadRequest,
	ResolvingSender:     SenderResolutionError,
	ResolvingRecipients: RecipientResolutionError,
	Publishing:          PublishError,
	Minting:             MintSubmissionError,
	Confirming:          MintConfirmationError,
}

// MintRequest body of POST /relay
type MintRequest struct {
	TxHash    string   `json:"txHash" example:"0x5f3c1d2b4a69870e7d6c5b4a39281706f5e4d3c2b1a09f8e7d6c5b4a39281706"`
	HexColors []string `json:"hexColors" example:"#FF5733,#33FF57"`
	ImageUrl  string   `json:"imageUrl" example:"data:image/png;base64,iVBORw0KGgo="`
}

// ExplorerUrls block explorer links of the two transactions
type ExplorerUrls struct {
	Payment string `json:"payment"`
	Mint    string `json:"mint"`
}

// MintResult outcome of a successful relay
type MintResult struct {
	PaymentTxHash     types.Hash       `json:"paymentTxHash"`
	MintTxHash        types.Hash       `json:"mintTxHash"`
	SenderAddress     types.Address    `json:"senderAddress"`
	HexColors         []types.HexColor `json:"hexColors"`
	RecipientMatches  []RecipientMatch `json:"recipientMatches"`
	MintRecipients    []types.Address  `json:"mintRecipients"`
	ImageUrl          string           `json:"imageUrl"` //Gateway URL of the pinned image
	ImageContentId    ContentID        `json:"imageContentId"`
	MetadataContentId ContentID        `json:"metadataContentId"`
	ImageUri          string           `json:"imageUri"`
	MetadataUri       string           `json:"metadataUri"`
	MetadataViewUrl   string           `json:"metadataViewUrl"`
	Status            string           `json:"status" example:"minted"`
	StartedAt         time.Time        `json:"startedAt"`
	ProcessedAt       time.Time        `json:"processedAt"`
	ExplorerUrls      ExplorerUrls     `json:"explorerUrls"`
}

// PendingMint a mint that was broadcast but whose receipt was never seen
type PendingMint struct {
	PaymentTxHash types.Hash
	MintTxHash    types.Hash
	Sender        types.Address
	Colors        []types.HexColor
	Recipients    []types.Address
	ImageCID      ContentID
	MetadataCID   ContentID
	MetadataUrl   string
}

// SenderResolver finds the account that sent a transaction.
type SenderResolver interface {
	TransactionSender(ctx context.Context, hash types.Hash) (types.Address, error)
}

// RecipientsResolver maps colors to royalty recipients.
type RecipientsResolver interface {
	ResolveRecipients(ctx context.Context, colors []types.HexColor) ([]RecipientMatch, error)
}

// ImageSource loads the artwork bytes a request points at.
type ImageSource interface {
	Fetch(ctx context.Context, imageUrl string) ([]byte, error)
}

// Publisher pins artwork and metadata.
type Publisher interface {
	PublishImage(ctx context.Context, image []byte) (ContentID, error)
	PublishMetadata(ctx context.Context, doc MetadataDocument) (ContentID, error)
}

// Minter submits mints and waits for them.
type Minter interface {
	SubmitMint(ctx context.Context, to types.Address, recipients []types.Address, tokenURI string) (types.Hash, error)
	WaitConfirmed(ctx context.Context, hash types.Hash) error
}

// Observer is told about every state change of a relay run.
type Observer func(from, to State, err error)

// Orchestrator runs the relay workflow. It holds no per-request state and is safe for concurrent use.
type Orchestrator struct {
	Sender     SenderResolver
	Recipients RecipientsResolver
	Images     ImageSource
	Publisher  Publisher
	Minter     Minter
	Gateway    string              //IPFS gateway base of token and view URLs
	Explorer   func(string) string //Block explorer URL of a transaction hash
	Observer   Observer
	Now        func() time.Time
}

// relayRun carries what the steps have produced so far.
type relayRun struct {
	req        MintRequest
	hash       types.Hash
	colors     []types.HexColor
	sender     types.Address
	matches    []RecipientMatch
	recipients []types.Address
	imageCID   ContentID
	metaCID    ContentID
	mintHash   types.Hash
	startedAt  time.Time
}

// Run executes the workflow for one request. It returns either a result or a *RelayError, never both.
func (o *Orchestrator) Run(ctx context.Context, req MintRequest) (*MintResult, error) {
	run := &relayRun{req: req, startedAt: o.now()}
	steps := [...]func(context.Context, *relayRun) error{
		Validating:          o.validate,
		ResolvingSender:     o.resolveSender,
		ResolvingRecipients: o.resolveRecipients,
		Publishing:          o.publish,
		Minting:             o.mint,
		Confirming:          o.confirm,
	}

	for state := Validating; state < Done; state++ {
		start := time.Now()
		err := o.exec(ctx, state, steps[state], run)
		metrics.RelayStepLatency.WithLabelValues(state.String()).Observe(time.Since(start).Seconds())
		if err != nil {
			o.transition(state, Failed, err)
			rerr := &RelayError{Kind: failureKinds[state], State: state, Err: err}
			if state == Confirming {
				rerr.Pending = run.pending(o.tokenURI(run.metaCID))
			}
			metrics.RelayRequests.WithLabelValues(rerr.Kind.String()).Inc()
			return nil, rerr
		}
		o.transition(state, state+1, nil)
	}

	metrics.RelayRequests.WithLabelValues("minted").Inc()
	return o.result(run), nil
}

// exec runs one step, turning a panic into that step's failure.
func (o *Orchestrator) exec(ctx context.Context, state State, step func(context.Context, *relayRun) error, run *relayRun) (err error) {
	defer func() {
		if r := recover(); r != nil {
			log.Errorf("relay step %s panicked: %v\n%s", state, r, debug.Stack())
			err = fmt.Errorf("panic in %s: %v", state, r)
		}
	}()
	return step(ctx, run)
}

func (o *Orchestrator) transition(from, to State, err error) {
	if o.Observer != nil {
		o.Observer(from, to, err)
	}
}

func (o *Orchestrator) validate(_ context.Context, run *relayRun) error {
	req := run.req
	if req.TxHash == "" || req.HexColors == nil || req.ImageUrl == "" {
		return &ValidationError{Msg: "txHash, hexColors, and imageUrl are required"}
	}
	hash, err := types.ParseHash(req.TxHash)
	if err != nil {
		return &ValidationError{Msg: "Invalid transaction hash format"}
	}
	colors, err := ValidateColors(req.HexColors)
	if err != nil {
		return err
	}
	run.hash, run.colors = hash, colors
	return nil
}

func (o *Orchestrator) resolveSender(ctx context.Context, run *relayRun) error {
	sender, err := o.Sender.TransactionSender(ctx, run.hash)
	if err != nil {
		return fmt.Errorf("sender of %s: %w", run.hash, err)
	}
	run.sender = sender
	return nil
}

func (o *Orchestrator) resolveRecipients(ctx context.Context, run *relayRun) error {
	matches, err := o.Recipients.ResolveRecipients(ctx, run.colors)
	if err != nil {
		return err
	}
	if len(matches) != len(run.colors) {
		return fmt.Errorf("resolver returned %d matches for %d colors", len(matches), len(run.colors))
	}
	run.matches = matches
	run.recipients = Recipients(matches)
	return nil
}

func (o *Orchestrator) publish(ctx context.Context, run *relayRun) error {
	image, err := o.Images.Fetch(ctx, run.req.ImageUrl)
	if err != nil {
		return fmt.Errorf("fetch image: %w", err)
	}
	run.imageCID, err = o.Publisher.PublishImage(ctx, image)
	if err != nil {
		return err
	}
	run.metaCID, err = o.Publisher.PublishMetadata(ctx, BuildMetadataDocument(run.imageCID, run.colors))
	return err
}

func (o *Orchestrator) mint(ctx context.Context, run *relayRun) error {
	hash, err := o.Minter.SubmitMint(ctx, run.sender, run.recipients, o.tokenURI(run.metaCID))
	if err != nil {
		return err
	}
	run.mintHash = hash
	return nil
}

func (o *Orchestrator) confirm(ctx context.Context, run *relayRun) error {
	return o.Minter.WaitConfirmed(ctx, run.mintHash)
}

func (o *Orchestrator) tokenURI(metaCID ContentID) string {
	if metaCID == "" {
		return ""
	}
	return metaCID.GatewayURL(o.Gateway)
}

func (o *Orchestrator) explorer(hash types.Hash) string {
	if o.Explorer == nil {
		return ""
	}
	return o.Explorer(string(hash))
}

func (o *Orchestrator) now() time.Time {
	if o.Now != nil {
		return o.Now()
	}
	return time.Now()
}

func (o *Orchestrator) result(run *relayRun) *MintResult {
	return &MintResult{
		PaymentTxHash:     run.hash,
		MintTxHash:        run.mintHash,
		SenderAddress:     run.sender,
		HexColors:         run.colors,
		RecipientMatches:  run.matches,
		MintRecipients:    run.recipients,
		ImageUrl:          run.imageCID.GatewayURL(o.Gateway),
		ImageContentId:    run.imageCID,
		MetadataContentId: run.metaCID,
		ImageUri:          run.imageCID.URI(),
		MetadataUri:       run.metaCID.URI(),
		MetadataViewUrl:   o.tokenURI(run.metaCID),
		Status:            "minted",
		StartedAt:         run.startedAt,
		ProcessedAt:       o.now(),
		ExplorerUrls: ExplorerUrls{
			Payment: o.explorer(run.hash),
			Mint:    o.explorer(run.mintHash),
		},
	}
}

func (run *relayRun) pending(metadataUrl string) *PendingMint {
	return &PendingMint{
		PaymentTxHash: run.hash,
		MintTxHash:    run.mintHash,
		Sender:        run.sender,
		Colors:        run.colors,
		Recipients:    run.recipients,
		ImageCID:      run.imageCID,
		MetadataCID:   run.metaCID,
		MetadataUrl:   metadataUrl,
	}
}

// AsRelayError extracts the workflow error, wrapping anything else as an internal mint failure.
func AsRelayError(err error) *RelayError {
	var rerr *RelayError
	if errors.As(err, &rerr) {
		return rerr
	}
	return &RelayError{Kind: MintSubmissionError, State: Failed, Err: err}
}
