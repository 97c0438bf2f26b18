package governance_test

import (
	"context"
	"crypto/ecdsa"
	"math/big"
	"testing"

	"collector_dao/internal/governance"
	"collector_dao/internal/ledger"
	"collector_dao/internal/storage/memory"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/require"
)

var (
	engineAddress = common.HexToAddress("0x00000000000000000000000000000000000da0da")
	recipient     = common.HexToAddress("0x000000000000000000000000000000000000beef")
	membershipFee = big.NewInt(100)
)

type fixture struct {
	engine *governance.Engine
	chain  *ledger.Chain
	store  *memory.Store
}

func newParams(votingPeriod, quorum uint64) governance.Params {
	return governance.Params{
		MembershipFee:   membershipFee,
		VotingPeriod:    votingPeriod,
		QuorumThreshold: quorum,
		Domain: governance.Domain{
			Name:              "Collector DAO",
			ChainID:           big.NewInt(1337),
			VerifyingContract: engineAddress,
		},
	}
}

func newFixture(t *testing.T, votingPeriod, quorum uint64) *fixture {
	t.Helper()

	chain := ledger.NewChain(ledger.WithHeight(1))
	store := memory.NewStore()
	engine, err := governance.New(newParams(votingPeriod, quorum), store, chain, chain)
	require.NoError(t, err)

	return &fixture{engine: engine, chain: chain, store: store}
}

type account struct {
	key     *ecdsa.PrivateKey
	address common.Address
}

func newAccount(t *testing.T) account {
	t.Helper()

	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	return account{key: key, address: crypto.PubkeyToAddress(key.PublicKey)}
}

// newMember creates a funded account and joins it.
func (f *fixture) newMember(t *testing.T) account {
	t.Helper()

	acc := newAccount(t)
	f.chain.Fund(acc.address, membershipFee)
	require.NoError(t, f.engine.Join(context.Background(), acc.address, membershipFee))
	return acc
}

func (f *fixture) sign(t *testing.T, acc account, id common.Hash, support governance.Support) []byte {
	t.Helper()

	signature, err := f.engine.Verifier().SignVote(acc.key, id, support)
	require.NoError(t, err)
	return signature
}

func (f *fixture) vote(t *testing.T, acc account, id common.Hash, support governance.Support) error {
	t.Helper()
	return f.engine.CastVoteBySig(context.Background(), f.sign(t, acc, id, support), acc.address, id, support)
}

func (f *fixture) propose(t *testing.T, proposer account, bundle governance.Bundle) common.Hash {
	t.Helper()

	id, err := f.engine.Propose(context.Background(), proposer.address, bundle)
	require.NoError(t, err)
	return id
}

func (f *fixture) state(t *testing.T, id common.Hash) governance.ProposalState {
	t.Helper()

	state, err := f.engine.State(context.Background(), id)
	require.NoError(t, err)
	return state
}

func transferBundle(to common.Address, value int64, description string) governance.Bundle {
	return governance.Bundle{
		Targets:         []common.Address{to},
		Values:          []*big.Int{big.NewInt(value)},
		Calldatas:       [][]byte{{}},
		DescriptionHash: crypto.Keccak256Hash([]byte(description)),
	}
}
