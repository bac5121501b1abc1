package node

import (
	"context"
	"errors"
	"fmt"
	"time"

	"prism/common/types"
	"prism/metrics"
)

var NotFound = errors.New("not found")

// Client defines typed read wrappers for the Ethereum RPC API.
type Client struct {
	*RPC
	timeout time.Duration
}

// Dial connects a client to the given URL. Each call is bounded by timeout when it is positive.
func Dial(ctx context.Context, rawurl string, timeout time.Duration) (*Client, error) {
	rpc, err := NewRPC(ctx, rawurl)
	if err != nil {
		return nil, err
	}
	return &Client{RPC: rpc, timeout: timeout}, nil
}

// rpcTransaction is the subset of eth_getTransactionByHash the relay reads.
type rpcTransaction struct {
	Hash string `json:"hash"`
	From string `json:"from"`
}

// TransactionSender returns the account that sent the transaction with the given hash.
func (c *Client) TransactionSender(ctx context.Context, hash types.Hash) (types.Address, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	start := time.Now()
	var tx *rpcTransaction
	err := c.CallContext(ctx, &tx, "eth_getTransactionByHash", string(hash))
	metrics.ObserveExternal("rpc", "eth_getTransactionByHash", start, err)
	if err != nil {
		return "", err
	}
	if tx == nil {
		return "", fmt.Errorf("transaction %s: %w", hash, NotFound)
	}
	from, err := types.ParseAddress(tx.From)
	if err != nil {
		return "", fmt.Errorf("transaction %s: %w", hash, err)
	}
	return from, nil
}
