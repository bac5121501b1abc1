package ethclient

import (
	"context"
	"encoding/hex"
	"errors"
	"math/big"
	"sync"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	ptypes "prism/common/types"
	"prism/common/utils"
)

const collection = "0xAD7c065112dCF8891b10F8e70eF74F5E4A168Fa4"

type fakeBackend struct {
	mu       sync.Mutex
	sent     []*types.Transaction
	receipts map[common.Hash]*types.Receipt
	sendErr  error
	calls    []ethereum.CallMsg
}

func (b *fakeBackend) ChainID(ctx context.Context) (*big.Int, error) {
	return big.NewInt(11011), nil
}

func (b *fakeBackend) PendingNonceAt(ctx context.Context, account common.Address) (uint64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return uint64(len(b.sent)), nil
}

func (b *fakeBackend) SuggestGasPrice(ctx context.Context) (*big.Int, error) {
	return big.NewInt(1_000_000_000), nil
}

func (b *fakeBackend) EstimateGas(ctx context.Context, call ethereum.CallMsg) (uint64, error) {
	b.mu.Lock()
	b.calls = append(b.calls, call)
	b.mu.Unlock()
	return 100_000, nil
}

func (b *fakeBackend) SendTransaction(ctx context.Context, tx *types.Transaction) error {
	// widen the window between nonce read and broadcast
	time.Sleep(time.Millisecond)
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.sendErr != nil {
		return b.sendErr
	}
	b.sent = append(b.sent, tx)
	return nil
}

func (b *fakeBackend) TransactionReceipt(ctx context.Context, hash common.Hash) (*types.Receipt, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if r, ok := b.receipts[hash]; ok {
		return r, nil
	}
	return nil, ethereum.NotFound
}

func newTestMinter(t *testing.T, backend *fakeBackend) *Minter {
	prv, err := crypto.GenerateKey()
	require.NoError(t, err)
	key, err := utils.LoadSigningKey(hex.EncodeToString(crypto.FromECDSA(prv)))
	require.NoError(t, err)

	m, err := NewMinter(context.Background(), backend, NewLocalLocker(), key, MinterConfig{
		Collection:      collection,
		Value:           big.NewInt(1_000_000_000_000_000),
		SubmitTimeout:   time.Second,
		ConfirmTimeout:  100 * time.Millisecond,
		ReceiptInterval: 5 * time.Millisecond,
	})
	require.NoError(t, err)
	return m
}

func TestPackMintSelector(t *testing.T) {
	data, err := PackMint(common.HexToAddress(collection), []common.Address{common.HexToAddress(collection)}, "https://gw/ipfs/cid")
	require.NoError(t, err)
	assert.Equal(t, crypto.Keccak256([]byte("mint(address,address[],string)"))[:4], data[:4])

	args, err := collectionABI.Methods["mint"].Inputs.Unpack(data[4:])
	require.NoError(t, err)
	assert.Equal(t, "https://gw/ipfs/cid", args[2])
}

func TestSubmitMint(t *testing.T) {
	backend := &fakeBackend{}
	m := newTestMinter(t, backend)

	hash, err := m.SubmitMint(context.Background(), "0x8ba1f109551bD432803012645Ac136ddd64DBA72",
		[]ptypes.Address{"0x8ba1f109551bD432803012645Ac136ddd64DBA72"}, "https://gw/ipfs/cid")
	require.NoError(t, err)
	require.Len(t, backend.sent, 1)

	tx := backend.sent[0]
	assert.Equal(t, ptypes.Hash(tx.Hash().Hex()), hash)
	assert.Equal(t, common.HexToAddress(collection), *tx.To())
	assert.Equal(t, big.NewInt(1_000_000_000_000_000), tx.Value())
	assert.Equal(t, uint64(120_000), tx.Gas())

	from, err := types.Sender(m.signer, tx)
	require.NoError(t, err)
	assert.Equal(t, common.HexToAddress(string(m.Address())), from)
	assert.Equal(t, from, backend.calls[0].From)
}

func TestSubmitMintSerializesNonces(t *testing.T) {
	backend := &fakeBackend{}
	m := newTestMinter(t, backend)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := m.SubmitMint(context.Background(), collection, []ptypes.Address{collection}, "uri")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	seen := map[uint64]bool{}
	for _, tx := range backend.sent {
		assert.False(t, seen[tx.Nonce()], "nonce %d reused", tx.Nonce())
		seen[tx.Nonce()] = true
	}
	assert.Len(t, seen, 8)
}

func TestSubmitMintSendError(t *testing.T) {
	backend := &fakeBackend{sendErr: errors.New("insufficient funds")}
	m := newTestMinter(t, backend)

	_, err := m.SubmitMint(context.Background(), collection, nil, "uri")
	assert.ErrorContains(t, err, "insufficient funds")
}

func TestWaitConfirmed(t *testing.T) {
	ok := common.HexToHash("0x01")
	reverted := common.HexToHash("0x02")
	backend := &fakeBackend{receipts: map[common.Hash]*types.Receipt{
		ok:       {Status: types.ReceiptStatusSuccessful, BlockNumber: big.NewInt(7)},
		reverted: {Status: types.ReceiptStatusFailed, BlockNumber: big.NewInt(8)},
	}}
	m := newTestMinter(t, backend)

	assert.NoError(t, m.WaitConfirmed(context.Background(), ptypes.Hash(ok.Hex())))
	assert.ErrorIs(t, m.WaitConfirmed(context.Background(), ptypes.Hash(reverted.Hex())), ErrReverted)

	err := m.WaitConfirmed(context.Background(), ptypes.Hash(common.HexToHash("0x03").Hex()))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestLocalLockerHonoursContext(t *testing.T) {
	l := NewLocalLocker()
	unlock, err := l.Lock(context.Background())
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err = l.Lock(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	unlock()
	unlock2, err := l.Lock(context.Background())
	require.NoError(t, err)
	unlock2()
}
