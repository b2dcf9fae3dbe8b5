package handler

import (
	"context"
	"net/http"

	"familysync/internal/checkpoint"
	"familysync/internal/middleware"

	"github.com/gin-gonic/gin"
)

// CheckpointApplier applies one uploaded checkpoint.
type CheckpointApplier interface {
	Apply(ctx context.Context, caller checkpoint.Caller, ops []checkpoint.Operation) ([]checkpoint.OpResult, error)
}

type CheckpointHandler struct {
	applier CheckpointApplier
}

func NewCheckpointHandler(applier CheckpointApplier) *CheckpointHandler {
	return &CheckpointHandler{applier: applier}
}

type WriteCheckpointRequest struct {
	Operations []checkpoint.Operation `json:"operations" binding:"required,dive"`
}

type WriteCheckpointResponse struct {
	Success   bool                  `json:"success"`
	Processed int                   `json:"processed"`
	Results   []checkpoint.OpResult `json:"results"`
}

type CheckpointErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// WriteCheckpoint applies an uploaded batch of client mutations. A batch
// that fails is still answered with 200 and success=false; nothing of it
// has been stored.
//
//	@Summary	Apply a write checkpoint
//	@Tags		Sync
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		checkpoint	body		WriteCheckpointRequest	true	"Operations in client order"
//	@Success	200			{object}	WriteCheckpointResponse
//	@Failure	400			{object}	map[string]string
//	@Failure	401			{object}	map[string]string
//	@Router		/api/powersync/write-checkpoint [post]
func (h *CheckpointHandler) WriteCheckpoint(c *gin.Context) {
	var req WriteCheckpointRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	caller := checkpoint.Caller{
		MemberID: middleware.MemberID(c),
		FamilyID: middleware.FamilyID(c),
	}
	results, err := h.applier.Apply(c.Request.Context(), caller, req.Operations)
	if err != nil {
		c.JSON(http.StatusOK, CheckpointErrorResponse{Success: false, Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, WriteCheckpointResponse{
		Success:   true,
		Processed: len(results),
		Results:   results,
	})
}
