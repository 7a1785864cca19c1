package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	domainerrors "motes-generator.backend/internal/domain/errors"
	"motes-generator.backend/internal/interfaces/http/response"
	"motes-generator.backend/pkg/utils"
)

const blockPairUsage = "POST JSON: { blockerId: 14, blockedId: 15 }"

type blockService interface {
	BlockPair(ctx context.Context, blockerID, blockedID int64) error
}

type BlockHandler struct {
	service blockService
}

func NewBlockHandler(service blockService) *BlockHandler {
	return &BlockHandler{service: service}
}

// BlockPair stops blockerId from being matched with blockedId.
// POST /blockPair
func (h *BlockHandler) BlockPair(c *gin.Context) {
	var input struct {
		BlockerID utils.FlexibleID `json:"blockerId"`
		BlockedID utils.FlexibleID `json:"blockedId"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || !input.BlockerID.Valid || !input.BlockedID.Valid {
		response.Error(c, domainerrors.BadRequest(blockPairUsage))
		return
	}

	blockerID, blockedID := input.BlockerID.Value, input.BlockedID.Value
	if err := h.service.BlockPair(c.Request.Context(), blockerID, blockedID); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, gin.H{"blockerId": blockerID, "blockedId": blockedID})
}
