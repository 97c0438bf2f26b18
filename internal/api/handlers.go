package api

import (
	"context"
	"fmt"
	"math/big"
	"net/http"

	"collector_dao/internal/governance"
	"collector_dao/internal/relayer"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Engine is the part of the governance engine the API exposes.
type Engine interface {
	Join(ctx context.Context, account common.Address, paid *big.Int) error
	IsMember(ctx context.Context, account common.Address) (bool, error)
	HashProposal(bundle governance.Bundle) (common.Hash, error)
	Propose(ctx context.Context, proposer common.Address, bundle governance.Bundle) (common.Hash, error)
	Proposal(ctx context.Context, id common.Hash) (*governance.Proposal, error)
	State(ctx context.Context, id common.Hash) (governance.ProposalState, error)
	VerifyVote(signature []byte, voter common.Address, id common.Hash, support governance.Support) (bool, error)
	CastVoteBySig(ctx context.Context, signature []byte, voter common.Address, id common.Hash, support governance.Support) error
	CastVoteBySigBulk(ctx context.Context, signatures [][]byte, voters []common.Address, id common.Hash, supports []governance.Support) (governance.BulkReceipt, error)
	Execute(ctx context.Context, bundle governance.Bundle) (common.Hash, error)
	Treasury(ctx context.Context) (*big.Int, error)
}

type Handlers struct {
	engine  Engine
	relayer *relayer.Relayer
	logger  *zap.SugaredLogger
}

func NewHandlers(engine Engine, r *relayer.Relayer, logger *zap.SugaredLogger) *Handlers {
	return &Handlers{engine: engine, relayer: r, logger: logger}
}

func (h *Handlers) Healthcheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handlers) Join(c *gin.Context) {
	var req joinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}
	if req.Account == (common.Address{}) {
		h.badRequest(c, fmt.Errorf("%w: account", errMissingField))
		return
	}

	var paid *big.Int
	if req.Paid != nil {
		paid = (*big.Int)(req.Paid)
	}
	if err := h.engine.Join(c.Request.Context(), req.Account, paid); err != nil {
		h.abort(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"account": req.Account, "member": true})
}

func (h *Handlers) IsMember(c *gin.Context) {
	address, ok := h.addressParam(c, "address")
	if !ok {
		return
	}

	isMember, err := h.engine.IsMember(c.Request.Context(), address)
	if err != nil {
		h.abort(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"account": address, "member": isMember})
}

func (h *Handlers) Treasury(c *gin.Context) {
	total, err := h.engine.Treasury(c.Request.Context())
	if err != nil {
		h.abort(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"total": total.String()})
}

func (h *Handlers) HashProposal(c *gin.Context) {
	var req bundleDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}

	id, err := h.engine.HashProposal(req.toBundle())
	if err != nil {
		h.abort(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": id})
}

func (h *Handlers) Propose(c *gin.Context) {
	var req proposeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}

	id, err := h.engine.Propose(c.Request.Context(), req.Proposer, req.Bundle.toBundle())
	if err != nil {
		h.abort(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func (h *Handlers) Proposal(c *gin.Context) {
	id, ok := h.hashParam(c, "id")
	if !ok {
		return
	}

	proposal, err := h.engine.Proposal(c.Request.Context(), id)
	if err != nil {
		h.abort(c, err)
		return
	}
	state, err := h.engine.State(c.Request.Context(), id)
	if err != nil {
		h.abort(c, err)
		return
	}

	c.JSON(http.StatusOK, newProposalResponse(proposal, state))
}

func (h *Handlers) State(c *gin.Context) {
	id, ok := h.hashParam(c, "id")
	if !ok {
		return
	}

	state, err := h.engine.State(c.Request.Context(), id)
	if err != nil {
		h.abort(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": id, "state": state})
}

func (h *Handlers) VerifyVote(c *gin.Context) {
	var req ballotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}

	valid, err := h.engine.VerifyVote(req.Signature, req.Voter, req.ProposalID, governance.Support(req.Support))
	if err != nil {
		h.abort(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"valid": valid})
}

func (h *Handlers) CastVote(c *gin.Context) {
	var req ballotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}
	if err := req.validate(); err != nil {
		h.badRequest(c, err)
		return
	}

	err := h.engine.CastVoteBySig(c.Request.Context(), req.Signature, req.Voter, req.ProposalID, governance.Support(req.Support))
	if err != nil {
		h.abort(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"proposalId": req.ProposalID, "voter": req.Voter})
}

func (h *Handlers) CastVotesBulk(c *gin.Context) {
	var req bulkBallotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}

	signatures, supports := req.arrays()
	receipt, err := h.engine.CastVoteBySigBulk(c.Request.Context(), signatures, req.Voters, req.ProposalID, supports)
	if err != nil {
		h.abort(c, err)
		return
	}

	c.JSON(http.StatusOK, newBulkReceiptResponse(receipt))
}

func (h *Handlers) RelayVote(c *gin.Context) {
	var req relayer.SignedBallot
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}

	if err := h.relayer.Submit(c.Request.Context(), req); err != nil {
		h.abort(c, err)
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"proposalId": req.ProposalID, "voter": req.Voter, "queued": true})
}

func (h *Handlers) Execute(c *gin.Context) {
	var req bundleDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}

	id, err := h.engine.Execute(c.Request.Context(), req.toBundle())
	if err != nil {
		h.abort(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": id, "state": governance.StateExecuted})
}

func (h *Handlers) addressParam(c *gin.Context, name string) (common.Address, bool) {
	value := c.Param(name)
	if !common.IsHexAddress(value) {
		h.badRequest(c, fmt.Errorf("invalid address %q", value))
		return common.Address{}, false
	}
	return common.HexToAddress(value), true
}

func (h *Handlers) hashParam(c *gin.Context, name string) (common.Hash, bool) {
	value := c.Param(name)
	raw, err := hexutil.Decode(value)
	if err != nil || len(raw) != common.HashLength {
		h.badRequest(c, fmt.Errorf("invalid proposal id %q", value))
		return common.Hash{}, false
	}
	return common.BytesToHash(raw), true
}
