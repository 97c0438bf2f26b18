package configs

import (
	"fmt"
	"math/big"
	"time"

	"collector_dao/internal/governance"

	"github.com/ethereum/go-ethereum/common"
)

type Engine struct {
	// MembershipFee is in wei.
	MembershipFee     string `env:"GOVERNANCE_MEMBERSHIP_FEE" envDefault:"100000000000000000"`
	VotingPeriod      uint64 `env:"GOVERNANCE_VOTING_PERIOD" envDefault:"50400"`
	QuorumThreshold   uint64 `env:"GOVERNANCE_QUORUM_THRESHOLD" envDefault:"1"`
	DomainName        string `env:"GOVERNANCE_DOMAIN_NAME" envDefault:"Collector DAO"`
	ChainID           int64  `env:"GOVERNANCE_CHAIN_ID" envDefault:"1"`
	VerifyingContract string `env:"GOVERNANCE_VERIFYING_CONTRACT,notEmpty"`
}

func (c Engine) Params() (governance.Params, error) {
	fee, ok := new(big.Int).SetString(c.MembershipFee, 10)
	if !ok {
		return governance.Params{}, fmt.Errorf("invalid membership fee %q", c.MembershipFee)
	}
	if !common.IsHexAddress(c.VerifyingContract) {
		return governance.Params{}, fmt.Errorf("invalid verifying contract %q", c.VerifyingContract)
	}

	return governance.Params{
		MembershipFee:   fee,
		VotingPeriod:    c.VotingPeriod,
		QuorumThreshold: c.QuorumThreshold,
		Domain: governance.Domain{
			Name:              c.DomainName,
			ChainID:           big.NewInt(c.ChainID),
			VerifyingContract: common.HexToAddress(c.VerifyingContract),
		},
	}, nil
}

// Clock selects the block height source: an Ethereum node when RPCURL is set,
// otherwise one block per BlockInterval since Genesis.
type Clock struct {
	RPCURL        string        `env:"CLOCK_RPC_URL"`
	Genesis       time.Time     `env:"CLOCK_GENESIS" envDefault:"2024-01-01T00:00:00Z"`
	BlockInterval time.Duration `env:"CLOCK_BLOCK_INTERVAL" envDefault:"12s"`
}

// Ledger configures the in-process ledger. Its balances, the engine's custody
// included, are kept in memory only. DevBalance (wei) funds every account the
// ledger has not seen yet.
type Ledger struct {
	DevBalance    string `env:"LEDGER_DEV_BALANCE" envDefault:"1000000000000000000000"`
	AllowVolatile bool   `env:"LEDGER_ALLOW_VOLATILE" envDefault:"false"`
}

func (c Ledger) DefaultBalance() (*big.Int, error) {
	balance, ok := new(big.Int).SetString(c.DevBalance, 10)
	if !ok || balance.Sign() < 0 {
		return nil, fmt.Errorf("invalid dev balance %q", c.DevBalance)
	}
	return balance, nil
}
