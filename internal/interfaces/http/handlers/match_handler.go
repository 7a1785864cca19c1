package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"motes-generator.backend/internal/domain/entities"
	"motes-generator.backend/internal/interfaces/http/response"
)

type matchGenerator interface {
	Generate(ctx context.Context) (*entities.GenerationResult, error)
}

type matchLifecycle interface {
	ExpireMatches(ctx context.Context) (*entities.ExpiryResult, error)
	Respond(ctx context.Context, token, answer string) (*entities.OptInResult, error)
}

type MatchHandler struct {
	generator matchGenerator
	lifecycle matchLifecycle
}

func NewMatchHandler(generator matchGenerator, lifecycle matchLifecycle) *MatchHandler {
	return &MatchHandler{generator: generator, lifecycle: lifecycle}
}

// MatchNow creates at most one new match.
// POST /matchNow
func (h *MatchHandler) MatchNow(c *gin.Context) {
	result, err := h.generator.Generate(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	body := gin.H{"match": result.Match}
	if result.Reason != "" {
		body["reason"] = result.Reason
	}
	response.OK(c, http.StatusOK, body)
}

// ExpireMatches expires pending matches past their deadline.
// POST /expireMatches
func (h *MatchHandler) ExpireMatches(c *gin.Context) {
	result, err := h.lifecycle.ExpireMatches(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, gin.H{
		"expiredCount":    result.ExpiredCount,
		"expiredMatchIds": result.ExpiredMatchIDs,
	})
}

// MatchRespond records a yes/no answer from an emailed link.
// GET /matchRespond?token=...&answer=yes
func (h *MatchHandler) MatchRespond(c *gin.Context) {
	result, err := h.lifecycle.Respond(c.Request.Context(), c.Query("token"), c.Query("answer"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, gin.H{"matchId": result.MatchID, "status": result.Status})
}
