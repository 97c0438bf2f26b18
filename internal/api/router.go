// Package api is the HTTP transport of the governance engine.
package api

import (
	"github.com/gin-gonic/gin"
)

// NewRouter wires the routes. The relay route is only served when handlers
// carry a relayer.
func NewRouter(h *Handlers) *gin.Engine {
	g := gin.New()
	g.Use(requestID(), requestLogger(h.logger), gin.Recovery())

	g.GET("/healthcheck", h.Healthcheck)

	g.POST("/members", h.Join)
	g.GET("/members/:address", h.IsMember)
	g.GET("/treasury", h.Treasury)

	g.POST("/proposals", h.Propose)
	g.POST("/proposals/hash", h.HashProposal)
	g.POST("/proposals/execute", h.Execute)
	g.GET("/proposals/:id", h.Proposal)
	g.GET("/proposals/:id/state", h.State)

	g.POST("/ballots", h.CastVote)
	g.POST("/ballots/verify", h.VerifyVote)
	g.POST("/ballots/bulk", h.CastVotesBulk)
	if h.relayer != nil {
		g.POST("/ballots/relay", h.RelayVote)
	}

	return g
}
