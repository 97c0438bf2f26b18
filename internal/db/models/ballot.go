package models

import (
	"time"

	"collector_dao/internal/governance"
)

type Ballot struct {
	ProposalID string    `json:"proposal_id" pg:",pk"`
	Voter      string    `json:"voter" pg:",pk"`
	Support    uint8     `json:"support" pg:",use_zero,notnull"`
	Height     uint64    `json:"height" pg:",use_zero,notnull"`
	CreatedAt  time.Time `json:"created_at" pg:"default:now()"`
}

func NewBallot(ballot governance.Ballot) *Ballot {
	return &Ballot{
		ProposalID: ballot.ProposalID.Hex(),
		Voter:      ballot.Voter.Hex(),
		Support:    uint8(ballot.Support),
		Height:     ballot.Height,
	}
}
