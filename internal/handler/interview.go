package handler

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/Kusumkar-Deeepak/InterviewAI-Nexus/internal/plans"
	"github.com/Kusumkar-Deeepak/InterviewAI-Nexus/internal/schedule"
	"github.com/Kusumkar-Deeepak/InterviewAI-Nexus/pkg"
	"github.com/Kusumkar-Deeepak/InterviewAI-Nexus/pkg/errs"
	"github.com/Kusumkar-Deeepak/InterviewAI-Nexus/pkg/model"
	"github.com/Kusumkar-Deeepak/InterviewAI-Nexus/pkg/response"
)

const dateLayout = "2006-01-02"

// CreateInterview schedules a new interview: quota check, best-effort AI
// question seeding, then link and token issuance.
func (h *Handler) CreateInterview(c *gin.Context) {
	var req model.CreateInterviewReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if !model.InterviewType(req.InterviewType).Valid() {
		response.BadRequest(c, "invalid interview type")
		return
	}
	interviewDate, err := time.Parse(dateLayout, req.InterviewDate)
	if err != nil {
		response.BadRequest(c, "interview date must be YYYY-MM-DD")
		return
	}
	if d, err := schedule.Duration(req.StartTime, req.EndTime); err != nil || d <= 0 {
		response.Error(c, errs.NewValidation("start time must be before end time"), nil)
		return
	}

	ctx := c.Request.Context()
	email := strings.ToLower(req.Email)

	plan, err := h.Plans.Resolve(ctx, email)
	if err != nil {
		response.Error(c, err, nil)
		return
	}
	existing, err := h.Interviews.CountByCreator(ctx, email)
	if err != nil {
		h.Logger.Sugar().Errorw("failed to count interviews", "err", err)
		response.InternalError(c, "")
		return
	}
	if err := plans.CheckInterviewQuota(plan, existing); err != nil {
		response.Error(c, err, gin.H{"currentPlan": plan, "currentCount": existing})
		return
	}

	// Seeding is best effort: the interview is created even when the AI
	// backend is down or throttled.
	seed := h.Generator.SeedQuestions(ctx, &req)

	slug, err := pkg.NewLinkSlug()
	if err != nil {
		response.InternalError(c, "")
		return
	}
	token, err := pkg.NewAccessToken()
	if err != nil {
		response.InternalError(c, "")
		return
	}

	iv := &model.Interview{
		ID:                   uuid.New(),
		ApplicantName:        req.ApplicantName,
		CompanyName:          req.CompanyName,
		JobTitle:             req.JobTitle,
		JobDescription:       req.JobDescription,
		ResumeText:           req.ResumeText,
		AdditionalNotes:      req.AdditionalNotes,
		InterviewLink:        h.BaseURL + "/interview/" + slug,
		AccessToken:          token,
		InterviewDate:        interviewDate,
		StartTime:            req.StartTime,
		EndTime:              req.EndTime,
		InterviewType:        model.InterviewType(req.InterviewType),
		Skills:               req.Skills,
		AIGeneratedQuestions: seed,
		CustomQuestions:      append([]string(nil), seed...),
		Status:               model.StatusNotStarted,
		CreatedBy:            req.UserID,
		CreatorEmail:         email,
	}
	if err := h.Interviews.Create(ctx, iv); err != nil {
		h.Logger.Sugar().Errorw("failed to create interview", "err", err)
		response.InternalError(c, "")
		return
	}
	response.Created(c, iv)
}

func (h *Handler) ListInterviews(c *gin.Context) {
	var q model.ListInterviewsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if q.Email == "" {
		q.Email = h.EmailFromContext(c)
	}

	out, err := h.Interviews.List(c.Request.Context(), q)
	if err != nil {
		h.Logger.Sugar().Errorw("failed to list interviews", "err", err)
		response.InternalError(c, "")
		return
	}
	response.OKWithMeta(c, out, gin.H{"count": len(out)})
}

func (h *Handler) GetInterview(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid interview id")
		return
	}
	iv, err := h.Interviews.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			response.NotFound(c, "interview not found")
			return
		}
		h.Logger.Sugar().Errorw("failed to get interview", "err", err)
		response.InternalError(c, "")
		return
	}
	response.OK(c, iv)
}

// GetInterviewByLink resolves an interview by the trailing slug of its link.
func (h *Handler) GetInterviewByLink(c *gin.Context) {
	iv, err := h.Interviews.GetByLinkSlug(c.Request.Context(), c.Param("link"))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			response.NotFound(c, "interview not found")
			return
		}
		h.Logger.Sugar().Errorw("failed to get interview by link", "err", err)
		response.InternalError(c, "")
		return
	}
	// The candidate-facing lookup never leaks the access token.
	iv.AccessToken = ""
	response.OK(c, iv)
}

func (h *Handler) UpdateInterview(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid interview id")
		return
	}
	var req model.UpdateInterviewReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	ctx := c.Request.Context()
	iv, err := h.Interviews.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			response.NotFound(c, "interview not found")
			return
		}
		response.InternalError(c, "")
		return
	}

	if req.ApplicantName != nil {
		iv.ApplicantName = *req.ApplicantName
	}
	if req.CompanyName != nil {
		iv.CompanyName = *req.CompanyName
	}
	if req.JobTitle != nil {
		iv.JobTitle = *req.JobTitle
	}
	if req.JobDescription != nil {
		iv.JobDescription = *req.JobDescription
	}
	if req.ResumeText != nil {
		iv.ResumeText = *req.ResumeText
	}
	if req.AdditionalNotes != nil {
		iv.AdditionalNotes = *req.AdditionalNotes
	}
	if req.InterviewDate != nil {
		d, err := time.Parse(dateLayout, *req.InterviewDate)
		if err != nil {
			response.BadRequest(c, "interview date must be YYYY-MM-DD")
			return
		}
		iv.InterviewDate = d
	}
	if req.StartTime != nil {
		iv.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		iv.EndTime = *req.EndTime
	}
	if req.InterviewType != nil {
		t := model.InterviewType(*req.InterviewType)
		if !t.Valid() {
			response.BadRequest(c, "invalid interview type")
			return
		}
		iv.InterviewType = t
	}
	if req.Skills != nil {
		iv.Skills = *req.Skills
	}
	if d, err := schedule.Duration(iv.StartTime, iv.EndTime); err != nil || d <= 0 {
		response.Error(c, errs.NewValidation("start time must be before end time"), nil)
		return
	}

	if err := h.Interviews.Update(ctx, iv); err != nil {
		h.Logger.Sugar().Errorw("failed to update interview", "err", err)
		response.InternalError(c, "")
		return
	}
	response.OK(c, iv)
}

// UpdateInterviewQuestions adds a custom question or deletes a question from
// both lists by exact text match.
func (h *Handler) UpdateInterviewQuestions(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid interview id")
		return
	}
	var req model.UpdateQuestionsReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	ctx := c.Request.Context()
	iv, err := h.Interviews.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			response.NotFound(c, "interview not found")
			return
		}
		response.InternalError(c, "")
		return
	}

	switch req.Action {
	case "add":
		iv.CustomQuestions = append(iv.CustomQuestions, req.Question)
	case "delete":
		iv.AIGeneratedQuestions = removeQuestion(iv.AIGeneratedQuestions, req.Question)
		iv.CustomQuestions = removeQuestion(iv.CustomQuestions, req.Question)
	}

	if err := h.Interviews.UpdateQuestions(ctx, id, iv.AIGeneratedQuestions, iv.CustomQuestions); err != nil {
		h.Logger.Sugar().Errorw("failed to update questions", "err", err)
		response.InternalError(c, "")
		return
	}
	response.OK(c, gin.H{
		"aiGeneratedQuestions": iv.AIGeneratedQuestions,
		"customQuestions":      iv.CustomQuestions,
	})
}

func removeQuestion(list []string, question string) []string {
	out := list[:0]
	for _, q := range list {
		if q != question {
			out = append(out, q)
		}
	}
	return out
}

// UpdateInterviewStatus is the status override escape hatch, addressed by
// link slug.
func (h *Handler) UpdateInterviewStatus(c *gin.Context) {
	var req model.UpdateStatusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if !req.Status.Valid() {
		response.BadRequest(c, "invalid interview status")
		return
	}

	iv, err := h.Interviews.UpdateStatusByLinkSlug(c.Request.Context(), c.Param("link"), req.Status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			response.NotFound(c, "interview not found")
			return
		}
		h.Logger.Sugar().Errorw("failed to update status", "err", err)
		response.InternalError(c, "")
		return
	}
	response.OK(c, iv)
}

func (h *Handler) CompleteInterview(c *gin.Context) {
	var req model.CompleteInterviewReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	iv, err := h.Interviews.CompleteByLinkSlug(c.Request.Context(), c.Param("link"), req.Score)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			response.NotFound(c, "interview not found")
			return
		}
		h.Logger.Sugar().Errorw("failed to complete interview", "err", err)
		response.InternalError(c, "")
		return
	}
	response.OK(c, iv)
}

// ValidateInterviews sweeps the caller's pending interviews and expires every
// one whose window has already closed. Returns how many flipped.
func (h *Handler) ValidateInterviews(c *gin.Context) {
	email := h.EmailFromContext(c)
	if email == "" {
		response.BadRequest(c, "email is required")
		return
	}

	ctx := c.Request.Context()
	pending, err := h.Interviews.ListNotStartedByCreator(ctx, email)
	if err != nil {
		h.Logger.Sugar().Errorw("failed to list pending interviews", "err", err)
		response.InternalError(c, "")
		return
	}

	now := h.now()
	var stale []uuid.UUID
	for _, iv := range pending {
		state, _, err := schedule.Evaluate(iv.InterviewDate, iv.StartTime, iv.EndTime, now)
		if err != nil {
			h.Logger.Sugar().Warnw("skipping interview with bad schedule", "id", iv.ID, "err", err)
			continue
		}
		if state == schedule.StateExpired {
			stale = append(stale, iv.ID)
		}
	}

	expired, err := h.Interviews.BulkExpire(ctx, stale)
	if err != nil {
		h.Logger.Sugar().Errorw("failed to expire interviews", "err", err)
		response.InternalError(c, "")
		return
	}
	response.OK(c, gin.H{"expiredCount": expired})
}

// VerifyAccess is the candidate-side admission gate. An unknown link and a
// wrong token produce the same not-found answer so tokens cannot be probed.
func (h *Handler) VerifyAccess(c *gin.Context) {
	var req model.VerifyAccessReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	ctx := c.Request.Context()
	iv, err := h.Interviews.GetByLinkToken(ctx, req.InterviewLink, req.AccessToken)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			response.NotFound(c, "Invalid interview link or access token")
			return
		}
		h.Logger.Sugar().Errorw("failed to verify access", "err", err)
		response.InternalError(c, "")
		return
	}

	state, window, err := schedule.Evaluate(iv.InterviewDate, iv.StartTime, iv.EndTime, h.now())
	if err != nil {
		response.Error(c, errs.NewValidation("interview has an invalid schedule"), nil)
		return
	}

	switch state {
	case schedule.StateTooEarly:
		detail := fmt.Sprintf("admission opens at %s and closes at %s",
			window.AdmissionOpen.Format(time.RFC3339), window.End.Format(time.RFC3339))
		response.Error(c, errs.NewNotYetAvailable("Interview has not started yet", detail), gin.H{
			"interviewDate": iv.InterviewDate.Format(dateLayout),
			"startTime":     iv.StartTime,
			"endTime":       iv.EndTime,
			"admissionOpen": window.AdmissionOpen,
			"interviewEnd":  window.End,
		})
		return
	case schedule.StateExpired:
		// Persist the transition once; repeated expired verifications stay
		// idempotent.
		if iv.Status != model.StatusExpired {
			if err := h.Interviews.UpdateStatus(ctx, iv.ID, model.StatusExpired); err != nil {
				h.Logger.Sugar().Errorw("failed to expire interview", "id", iv.ID, "err", err)
			}
		}
		response.Error(c, errs.NewExpired("Interview link has expired"), gin.H{
			"interviewDate": iv.InterviewDate.Format(dateLayout),
			"endTime":       iv.EndTime,
		})
		return
	}

	// Admitted. The session state machine is driven elsewhere; verification
	// never flips the interview to in_progress.
	response.OK(c, iv)
}
