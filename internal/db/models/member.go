package models

import (
	"fmt"
	"math/big"
	"time"

	"collector_dao/internal/governance"

	"github.com/ethereum/go-ethereum/common"
)

type Member struct {
	Address   string    `json:"address" pg:",pk"`
	JoinedAt  uint64    `json:"joined_at" pg:",use_zero,notnull"`
	FeePaid   string    `json:"fee_paid" pg:"type:numeric,notnull"`
	CreatedAt time.Time `json:"created_at" pg:"default:now()"`
}

func NewMember(member governance.Member) *Member {
	fee := "0"
	if member.FeePaid != nil {
		fee = member.FeePaid.String()
	}
	return &Member{
		Address:  member.Address.Hex(),
		JoinedAt: member.JoinedAt,
		FeePaid:  fee,
	}
}

func (m *Member) ToGovernance() (governance.Member, error) {
	fee, ok := new(big.Int).SetString(m.FeePaid, 10)
	if !ok {
		return governance.Member{}, fmt.Errorf("invalid fee %q for member %s", m.FeePaid, m.Address)
	}
	return governance.Member{
		Address:  common.HexToAddress(m.Address),
		JoinedAt: m.JoinedAt,
		FeePaid:  fee,
	}, nil
}
