package service

import (
	"context"
	"time"

	"prism/log"
	"prism/model"
)

const journalTimeout = 5 * time.Second

// MintStore persists finished relays.
type MintStore interface {
	Save(ctx context.Context, rec *model.MintRecord) error
}

// RelayService runs the relay workflow and records what reached the chain.
type RelayService struct {
	orch  *Orchestrator
	store MintStore
}

// NewRelayService store may be nil when no database is configured.
func NewRelayService(orch *Orchestrator, store MintStore) *RelayService {
	return &RelayService{orch: orch, store: store}
}

// Relay the returned error is always a *RelayError.
func (s *RelayService) Relay(ctx context.Context, requestId string, req MintRequest) (*MintResult, error) {
	res, err := s.orch.Run(ctx, req)
	if err != nil {
		rerr := AsRelayError(err)
		if rerr.Kind == BadRequest {
			log.Debugf("relay %s rejected: %v", requestId, rerr)
			return nil, rerr
		}
		log.Errorf("relay %s: %v", requestId, rerr)
		if p := rerr.Pending; p != nil {
			log.Alertf("mint %s for payment %s was not confirmed, manual intervention required: %v",
				p.MintTxHash, p.PaymentTxHash, rerr.Err)
			s.save(ctx, requestId, unconfirmedRecord(requestId, p))
		}
		return nil, rerr
	}
	log.Infof("relay %s minted payment=%s mint=%s sender=%s", requestId, res.PaymentTxHash, res.MintTxHash, res.SenderAddress)
	s.save(ctx, requestId, mintedRecord(requestId, res))
	return res, nil
}

// save outlives the request context: the mint already happened.
func (s *RelayService) save(ctx context.Context, requestId string, rec *model.MintRecord) {
	if s.store == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), journalTimeout)
	defer cancel()
	if err := s.store.Save(ctx, rec); err != nil {
		log.Errorf("journal relay %s mint %s: %v", requestId, rec.MintTxHash, err)
	}
}
