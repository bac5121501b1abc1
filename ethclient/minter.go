package ethclient

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	ptypes "prism/common/types"
	"prism/common/utils"
	"prism/log"
	"prism/metrics"
)

var ErrReverted = errors.New("mint transaction reverted")

// MinterConfig collection and timing settings of a Minter.
type MinterConfig struct {
	Collection      ptypes.Address
	Value           *big.Int      // payable amount sent with every mint
	SubmitTimeout   time.Duration // nonce lock, estimation and broadcast
	ConfirmTimeout  time.Duration
	ReceiptInterval time.Duration
}

// Minter signs and broadcasts mint transactions with the relayer key. It is safe for concurrent use,
// nonce assignment is serialized by the locker.
type Minter struct {
	backend    Backend
	locker     NonceLocker
	key        *utils.SigningKey
	from       common.Address
	collection common.Address
	signer     types.Signer
	cfg        MinterConfig
}

// NewMinter binds the key to the chain the backend reports.
func NewMinter(ctx context.Context, backend Backend, locker NonceLocker, key *utils.SigningKey, cfg MinterConfig) (*Minter, error) {
	if !common.IsHexAddress(string(cfg.Collection)) {
		return nil, fmt.Errorf("invalid collection address %q", cfg.Collection)
	}
	if cfg.Value == nil {
		cfg.Value = new(big.Int)
	}
	if cfg.ReceiptInterval <= 0 {
		cfg.ReceiptInterval = time.Second
	}
	chainId, err := backend.ChainID(ctx)
	if err != nil {
		return nil, fmt.Errorf("chain id: %w", err)
	}
	return &Minter{
		backend:    backend,
		locker:     locker,
		key:        key,
		from:       common.HexToAddress(string(key.Address)),
		collection: common.HexToAddress(string(cfg.Collection)),
		signer:     types.LatestSignerForChainID(chainId),
		cfg:        cfg,
	}, nil
}

// Address is the account paying for the mints.
func (m *Minter) Address() ptypes.Address {
	return m.key.Address
}

// SubmitMint broadcasts mint(to, recipients, tokenURI) and returns the transaction hash without
// waiting for inclusion.
func (m *Minter) SubmitMint(ctx context.Context, to ptypes.Address, recipients []ptypes.Address, tokenURI string) (ptypes.Hash, error) {
	if m.cfg.SubmitTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.cfg.SubmitTimeout)
		defer cancel()
	}

	addrs := make([]common.Address, len(recipients))
	for i, r := range recipients {
		addrs[i] = common.HexToAddress(string(r))
	}
	data, err := PackMint(common.HexToAddress(string(to)), addrs, tokenURI)
	if err != nil {
		return "", err
	}

	unlock, err := m.locker.Lock(ctx)
	if err != nil {
		return "", fmt.Errorf("nonce lock: %w", err)
	}
	defer unlock()

	start := time.Now()
	tx, err := m.sign(ctx, data)
	if err == nil {
		err = m.backend.SendTransaction(ctx, tx)
	}
	metrics.ObserveExternal("rpc", "mint", start, err)
	if err != nil {
		return "", err
	}
	log.Infof("mint submitted hash=%s nonce=%d to=%s recipients=%d", tx.Hash().Hex(), tx.Nonce(), to, len(recipients))
	return ptypes.Hash(tx.Hash().Hex()), nil
}

func (m *Minter) sign(ctx context.Context, data []byte) (*types.Transaction, error) {
	nonce, err := m.backend.PendingNonceAt(ctx, m.from)
	if err != nil {
		return nil, fmt.Errorf("pending nonce: %w", err)
	}
	gasPrice, err := m.backend.SuggestGasPrice(ctx)
	if err != nil {
		return nil, fmt.Errorf("gas price: %w", err)
	}
	gas, err := m.backend.EstimateGas(ctx, ethereum.CallMsg{
		From:     m.from,
		To:       &m.collection,
		GasPrice: gasPrice,
		Value:    m.cfg.Value,
		Data:     data,
	})
	if err != nil {
		return nil, fmt.Errorf("estimate gas: %w", err)
	}
	gas += gas / 5

	tx := types.NewTransaction(nonce, m.collection, m.cfg.Value, gas, gasPrice, data)
	return types.SignTx(tx, m.signer, m.key.Key)
}

// WaitConfirmed polls for the receipt until it shows up or the confirmation timeout passes.
// A reverted receipt is reported as ErrReverted.
func (m *Minter) WaitConfirmed(ctx context.Context, hash ptypes.Hash) error {
	if m.cfg.ConfirmTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.cfg.ConfirmTimeout)
		defer cancel()
	}

	txHash := common.HexToHash(string(hash))
	ticker := time.NewTicker(m.cfg.ReceiptInterval)
	defer ticker.Stop()

	var lastErr error
	for {
		receipt, err := m.backend.TransactionReceipt(ctx, txHash)
		switch {
		case err == nil:
			if receipt.Status != types.ReceiptStatusSuccessful {
				return fmt.Errorf("%s in block %v: %w", hash, receipt.BlockNumber, ErrReverted)
			}
			return nil
		case !errors.Is(err, ethereum.NotFound):
			log.Debugf("receipt %s: %v", hash, err)
			lastErr = err
		}

		select {
		case <-ticker.C:
		case <-ctx.Done():
			if lastErr != nil {
				return fmt.Errorf("receipt for %s: %w (last error: %v)", hash, ctx.Err(), lastErr)
			}
			return fmt.Errorf("receipt for %s: %w", hash, ctx.Err())
		}
	}
}
