package ledger

import (
	"context"
	"errors"
	"math/big"
	"testing"
	"time"

	"collector_dao/internal/governance"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	alice  = common.HexToAddress("0x00000000000000000000000000000000000a11ce")
	bob    = common.HexToAddress("0x0000000000000000000000000000000000000b0b")
	target = common.HexToAddress("0x000000000000000000000000000000000000beef")
)

func TestChain_Transfer(t *testing.T) {
	chain := NewChain()
	chain.Fund(alice, big.NewInt(100))

	err := chain.Transfer(context.Background(), alice, bob, big.NewInt(40))
	require.NoError(t, err)

	assert.Equal(t, int64(60), chain.Balance(alice).Int64())
	assert.Equal(t, int64(40), chain.Balance(bob).Int64())
}

func TestChain_TransferInsufficientBalance(t *testing.T) {
	chain := NewChain()
	chain.Fund(alice, big.NewInt(10))

	err := chain.Transfer(context.Background(), alice, bob, big.NewInt(11))
	assert.ErrorIs(t, err, ErrInsufficientBalance)
	assert.Equal(t, int64(10), chain.Balance(alice).Int64())
	assert.Equal(t, int64(0), chain.Balance(bob).Int64())
}

func TestChain_DefaultBalance(t *testing.T) {
	chain := NewChain(WithDefaultBalance(big.NewInt(5)))

	assert.Equal(t, int64(5), chain.Balance(alice).Int64())
	require.NoError(t, chain.Transfer(context.Background(), alice, bob, big.NewInt(5)))
	assert.Equal(t, int64(0), chain.Balance(alice).Int64())
	assert.Equal(t, int64(10), chain.Balance(bob).Int64())
}

func TestChain_AtomicRollsBackOnError(t *testing.T) {
	chain := NewChain()
	chain.Fund(alice, big.NewInt(100))
	failure := errors.New("revert")

	err := chain.Atomic(context.Background(), func(ctx context.Context) error {
		require.NoError(t, chain.Transfer(ctx, alice, bob, big.NewInt(30)))
		require.NoError(t, chain.Call(ctx, alice, governance.Call{Target: target, Value: big.NewInt(20)}))
		return failure
	})
	assert.ErrorIs(t, err, failure)

	assert.Equal(t, int64(100), chain.Balance(alice).Int64())
	assert.Equal(t, int64(0), chain.Balance(bob).Int64())
	assert.Equal(t, int64(0), chain.Balance(target).Int64())
	assert.Empty(t, chain.Calls())
}

func TestChain_NestedAtomicRollsBackInnerOnly(t *testing.T) {
	chain := NewChain()
	chain.Fund(alice, big.NewInt(100))

	err := chain.Atomic(context.Background(), func(ctx context.Context) error {
		require.NoError(t, chain.Transfer(ctx, alice, bob, big.NewInt(30)))

		inner := chain.Atomic(ctx, func(ctx context.Context) error {
			require.NoError(t, chain.Transfer(ctx, alice, bob, big.NewInt(30)))
			return errors.New("inner revert")
		})
		assert.Error(t, inner)
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, int64(70), chain.Balance(alice).Int64())
	assert.Equal(t, int64(30), chain.Balance(bob).Int64())
}

func TestChain_CallInvokesHandler(t *testing.T) {
	chain := NewChain()
	chain.Fund(alice, big.NewInt(10))

	var (
		gotFrom  common.Address
		gotValue *big.Int
		gotData  []byte
	)
	chain.Register(target, func(ctx context.Context, from common.Address, value *big.Int, data []byte) error {
		gotFrom, gotValue, gotData = from, value, data
		return nil
	})

	err := chain.Call(context.Background(), alice, governance.Call{Target: target, Value: big.NewInt(3), Data: []byte{0xca, 0xfe}})
	require.NoError(t, err)

	assert.Equal(t, alice, gotFrom)
	assert.Equal(t, int64(3), gotValue.Int64())
	assert.Equal(t, []byte{0xca, 0xfe}, gotData)
	assert.Equal(t, int64(3), chain.Balance(target).Int64())

	calls := chain.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, target, calls[0].Target)
}

func TestChain_CallHandlerFailureRevertsValue(t *testing.T) {
	chain := NewChain()
	chain.Fund(alice, big.NewInt(10))
	chain.Register(target, func(ctx context.Context, from common.Address, value *big.Int, data []byte) error {
		return errors.New("rejected")
	})

	err := chain.Call(context.Background(), alice, governance.Call{Target: target, Value: big.NewInt(3)})
	assert.Error(t, err)
	assert.Equal(t, int64(10), chain.Balance(alice).Int64())
	assert.Equal(t, int64(0), chain.Balance(target).Int64())
	assert.Empty(t, chain.Calls())
}

func TestChain_Height(t *testing.T) {
	chain := NewChain(WithHeight(5))

	height, err := chain.BlockHeight(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(5), height)

	assert.Equal(t, uint64(8), chain.Advance(3))
	chain.SetHeight(1)

	height, err = chain.BlockHeight(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(1), height)
}

func TestTimeClock_BlockHeight(t *testing.T) {
	genesis := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	clock, err := NewTimeClock(genesis, 12*time.Second)
	require.NoError(t, err)

	clock.now = func() time.Time { return genesis.Add(-time.Minute) }
	height, err := clock.BlockHeight(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(0), height)

	clock.now = func() time.Time { return genesis.Add(125 * time.Second) }
	height, err = clock.BlockHeight(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(10), height)
}

func TestTimeClock_InvalidInterval(t *testing.T) {
	_, err := NewTimeClock(time.Now(), 0)
	assert.Error(t, err)
}
