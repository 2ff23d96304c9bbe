package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/Kusumkar-Deeepak/InterviewAI-Nexus/internal/plans"
	"github.com/Kusumkar-Deeepak/InterviewAI-Nexus/pkg/model"
	"github.com/Kusumkar-Deeepak/InterviewAI-Nexus/pkg/response"
)

// GetPlan returns the caller's plan record plus the limits attached to it.
// First explicit fetch materializes a Free record.
func (h *Handler) GetPlan(c *gin.Context) {
	email := h.EmailFromContext(c)
	if email == "" {
		response.BadRequest(c, "email is required")
		return
	}

	record, err := h.Plans.GetOrCreate(c.Request.Context(), email)
	if err != nil {
		h.Logger.Sugar().Errorw("failed to get user plan", "err", err)
		response.Error(c, err, nil)
		return
	}
	response.OK(c, gin.H{
		"plan":   record,
		"limits": plans.LimitsFor(record.Plan),
	})
}

func (h *Handler) UpdatePlan(c *gin.Context) {
	var req model.UpdatePlanReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	record, err := h.Plans.Update(c.Request.Context(), req.Email, req.Plan)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	// A tier change shifts every cached visibility set.
	h.Cache.Invalidate(c.Request.Context())

	response.OK(c, gin.H{
		"plan":   record,
		"limits": plans.LimitsFor(record.Plan),
	})
}
