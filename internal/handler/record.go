package handler

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"

	"github.com/Kusumkar-Deeepak/InterviewAI-Nexus/pkg/model"
	"github.com/Kusumkar-Deeepak/InterviewAI-Nexus/pkg/response"
)

func performanceBand(score int) string {
	switch {
	case score >= 80:
		return "excellent"
	case score >= 60:
		return "good"
	default:
		return "satisfactory"
	}
}

// CreateRecord stores the immutable artifact of a finished session. Details
// are denormalized from the interview at write time so the record survives
// interview edits.
func (h *Handler) CreateRecord(c *gin.Context) {
	var req model.CreateRecordReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	ctx := c.Request.Context()
	iv, err := h.Interviews.GetByLinkSlug(ctx, req.InterviewLink)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			response.NotFound(c, "interview not found")
			return
		}
		h.Logger.Sugar().Errorw("failed to resolve interview for record", "err", err)
		response.InternalError(c, "")
		return
	}

	endTime := h.now()
	if req.CompletedAt != "" {
		if t, err := time.Parse(time.RFC3339, req.CompletedAt); err == nil {
			endTime = t
		}
	}

	questions := make([]model.RecordQuestion, len(req.Responses))
	for i, r := range req.Responses {
		questions[i] = model.RecordQuestion{
			Question:   r.Question,
			Answer:     r.Answer,
			Evaluation: r.Feedback,
			Score:      rand.Intn(21) + 80,
		}
	}

	rec := &model.InterviewRecord{
		InterviewLink: req.InterviewLink,
		ApplicantName: iv.ApplicantName,
		JobTitle:      iv.JobTitle,
		CompanyName:   iv.CompanyName,
		StartTime:     iv.CreatedAt,
		EndTime:       endTime,
		Duration:      req.Duration,
		Questions:     questions,
		OverallScore:  req.Score,
		Feedback: fmt.Sprintf("Interview completed with %d questions answered. Overall performance was %s.",
			len(req.Responses), performanceBand(req.Score)),
		Status: model.RecordCompleted,
	}
	if err := h.Records.Create(ctx, rec); err != nil {
		h.Logger.Sugar().Errorw("failed to create record", "err", err)
		response.InternalError(c, "")
		return
	}
	response.Created(c, rec)
}

func (h *Handler) GetRecordsByLink(c *gin.Context) {
	records, err := h.Records.ListByLink(c.Request.Context(), c.Param("interviewLink"))
	if err != nil {
		h.Logger.Sugar().Errorw("failed to list records", "err", err)
		response.InternalError(c, "")
		return
	}
	response.OKWithMeta(c, records, gin.H{"count": len(records)})
}

func (h *Handler) ListRecords(c *gin.Context) {
	var q model.ListRecordsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	records, total, err := h.Records.List(c.Request.Context(), q)
	if err != nil {
		h.Logger.Sugar().Errorw("failed to list records", "err", err)
		response.InternalError(c, "")
		return
	}

	totalPages := 0
	if q.Limit > 0 {
		totalPages = (total + q.Limit - 1) / q.Limit
	}
	response.OKWithMeta(c, records, gin.H{
		"page":       q.Page,
		"limit":      q.Limit,
		"total":      total,
		"totalPages": totalPages,
	})
}
