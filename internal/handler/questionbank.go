package handler

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/Kusumkar-Deeepak/InterviewAI-Nexus/internal/plans"
	"github.com/Kusumkar-Deeepak/InterviewAI-Nexus/pkg/errs"
	"github.com/Kusumkar-Deeepak/InterviewAI-Nexus/pkg/model"
	"github.com/Kusumkar-Deeepak/InterviewAI-Nexus/pkg/response"
)

const defaultBankLimit = 50

var allCategories = []model.Category{
	model.CategoryTechnical,
	model.CategoryBehavioral,
	model.CategorySituational,
	model.CategoryHR,
}

var allDifficulties = []model.Difficulty{
	model.DifficultyBeginner,
	model.DifficultyIntermediate,
	model.DifficultyAdvanced,
}

func limitParam(c *gin.Context) int {
	n, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultBankLimit)))
	if err != nil || n < 1 {
		return defaultBankLimit
	}
	return n
}

// planAccess is the visibility metadata attached to every bank response.
func planAccess(plan model.Plan) gin.H {
	limits := plans.LimitsFor(plan)
	return gin.H{
		"plan":             plan,
		"accessibleTiers":  plans.AccessibleTiers(plan),
		"questionsPerBank": limits.QuestionsPerBank,
	}
}

// capBanks truncates every bank's question list to the plan quota.
func capBanks(banks []model.QuestionBank, plan model.Plan) {
	quota := plans.LimitsFor(plan).QuestionsPerBank
	for i := range banks {
		banks[i].Questions = plans.CapQuestions(banks[i].Questions, quota)
		banks[i].TotalQuestions = len(banks[i].Questions)
	}
}

// bumpPopularity fires the served counter without blocking the response.
func (h *Handler) bumpPopularity(banks []model.QuestionBank) {
	if len(banks) == 0 {
		return
	}
	ids := make([]uuid.UUID, len(banks))
	for i, b := range banks {
		ids[i] = b.ID
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := h.Banks.IncrementPopularity(ctx, ids); err != nil {
			h.Logger.Sugar().Warnw("failed to bump bank popularity", "err", err)
		}
	}()
}

// GetBanksByJobTitle serves the tiered bank lookup. A miss triggers on-demand
// generation across every visible (tier, category, difficulty) cell, then the
// query re-runs against the warmed store.
func (h *Handler) GetBanksByJobTitle(c *gin.Context) {
	jobTitle := c.Param("jobTitle")
	category := c.Query("category")
	difficulty := c.Query("difficulty")

	ctx := c.Request.Context()
	plan, err := h.Plans.Resolve(ctx, h.EmailFromContext(c))
	if err != nil {
		response.Error(c, err, nil)
		return
	}
	tiers := plans.AccessibleTiers(plan)

	cacheKey := fmt.Sprintf("job-title:%s:%s:%s:%s", jobTitle, plan, category, difficulty)
	var cached []model.QuestionBank
	if h.Cache.Get(ctx, cacheKey, &cached) {
		h.bumpPopularity(cached)
		response.OKWithMeta(c, cached, gin.H{"planAccess": planAccess(plan), "cached": true})
		return
	}

	banks, err := h.Banks.ByJobTitle(ctx, jobTitle, tiers, category, difficulty, limitParam(c))
	if err != nil {
		h.Logger.Sugar().Errorw("failed to query banks", "err", err)
		response.InternalError(c, "")
		return
	}

	if len(banks) == 0 {
		h.warmBanks(ctx, jobTitle, category, difficulty, tiers)
		banks, err = h.Banks.ByJobTitle(ctx, jobTitle, tiers, category, difficulty, limitParam(c))
		if err != nil {
			h.Logger.Sugar().Errorw("failed to re-query banks", "err", err)
			response.InternalError(c, "")
			return
		}
	}

	capBanks(banks, plan)
	h.Cache.Set(ctx, cacheKey, banks)
	h.bumpPopularity(banks)
	response.OKWithMeta(c, banks, gin.H{"planAccess": planAccess(plan)})
}

// warmBanks generates and stores a bank for every missing cell visible to the
// caller. Generation never fails outright, so a warm always produces rows.
func (h *Handler) warmBanks(ctx context.Context, jobTitle, category, difficulty string, tiers []model.Plan) {
	categories := allCategories
	if category != "" {
		categories = []model.Category{model.Category(category)}
	}
	difficulties := allDifficulties
	if difficulty != "" {
		difficulties = []model.Difficulty{model.Difficulty(difficulty)}
	}

	for _, tier := range tiers {
		for _, cat := range categories {
			for _, diff := range difficulties {
				existing, err := h.Banks.FindTuple(ctx, jobTitle, cat, diff, tier)
				if err != nil {
					h.Logger.Sugar().Warnw("failed to check bank cell", "err", err)
					continue
				}
				if existing != nil {
					continue
				}
				questions, aiGenerated := h.Generator.Generate(ctx, jobTitle, cat, diff, tier, "", nil)
				bank := &model.QuestionBank{
					JobTitle:      jobTitle,
					Category:      cat,
					Difficulty:    diff,
					PlanType:      tier,
					Questions:     questions,
					IsAIGenerated: aiGenerated,
				}
				if err := h.Banks.Insert(ctx, bank); err != nil {
					h.Logger.Sugar().Warnw("failed to store generated bank", "err", err)
				}
			}
		}
	}
	h.Cache.Invalidate(ctx)
}

// GetQuestionsByCategory flattens every matching bank into one question list
// annotated with its origin.
func (h *Handler) GetQuestionsByCategory(c *gin.Context) {
	category := c.Param("category")
	if !model.Category(category).Valid() {
		response.BadRequest(c, "invalid category")
		return
	}

	ctx := c.Request.Context()
	plan, err := h.Plans.Resolve(ctx, h.EmailFromContext(c))
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	banks, err := h.Banks.ByCategory(ctx, category, plans.AccessibleTiers(plan),
		c.Query("jobTitle"), c.Query("difficulty"), limitParam(c))
	if err != nil {
		h.Logger.Sugar().Errorw("failed to query banks by category", "err", err)
		response.InternalError(c, "")
		return
	}

	// The quota applies to each bank's question list, not to the flattened
	// result: two full Free banks still contribute their per-bank share each.
	quota := plans.LimitsFor(plan).QuestionsPerCategory
	var questions []model.CategoryQuestion
	for _, b := range banks {
		for _, q := range plans.CapQuestions(b.Questions, quota) {
			questions = append(questions, model.CategoryQuestion{
				BankQuestion: q,
				JobTitle:     b.JobTitle,
				Difficulty:   b.Difficulty,
				Source:       b.ID,
			})
		}
	}

	h.bumpPopularity(banks)
	response.OKWithMeta(c, questions, gin.H{"planAccess": planAccess(plan), "count": len(questions)})
}

func (h *Handler) SearchBanks(c *gin.Context) {
	term := c.Query("q")
	if term == "" {
		response.BadRequest(c, "search term is required")
		return
	}

	ctx := c.Request.Context()
	plan, err := h.Plans.Resolve(ctx, h.EmailFromContext(c))
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	banks, err := h.Banks.Search(ctx, term, plans.AccessibleTiers(plan), limitParam(c))
	if err != nil {
		h.Logger.Sugar().Errorw("failed to search banks", "err", err)
		response.InternalError(c, "")
		return
	}

	capBanks(banks, plan)
	response.OKWithMeta(c, banks, gin.H{"planAccess": planAccess(plan), "count": len(banks)})
}

func (h *Handler) PopularBanks(c *gin.Context) {
	ctx := c.Request.Context()
	plan, err := h.Plans.Resolve(ctx, h.EmailFromContext(c))
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	banks, err := h.Banks.Popular(ctx, plans.AccessibleTiers(plan), limitParam(c))
	if err != nil {
		h.Logger.Sugar().Errorw("failed to query popular banks", "err", err)
		response.InternalError(c, "")
		return
	}

	capBanks(banks, plan)
	response.OKWithMeta(c, banks, gin.H{"planAccess": planAccess(plan)})
}

// ListJobTitles merges bank-derived titles with the caller's own interview
// titles so the picker always offers something relevant.
func (h *Handler) ListJobTitles(c *gin.Context) {
	ctx := c.Request.Context()
	email := h.EmailFromContext(c)
	plan, err := h.Plans.Resolve(ctx, email)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	summaries, err := h.Banks.DistinctJobTitles(ctx, plans.AccessibleTiers(plan))
	if err != nil {
		h.Logger.Sugar().Errorw("failed to query bank job titles", "err", err)
		response.InternalError(c, "")
		return
	}

	seen := make(map[string]bool, len(summaries))
	for _, s := range summaries {
		seen[s.Title] = true
	}

	if email != "" {
		own, err := h.Interviews.DistinctJobTitlesByCreator(ctx, email)
		if err != nil {
			h.Logger.Sugar().Warnw("failed to query interview job titles", "err", err)
		} else {
			for _, title := range own {
				if !seen[title] {
					seen[title] = true
					summaries = append(summaries, model.JobTitleSummary{Title: title})
				}
			}
		}
	}

	response.OKWithMeta(c, summaries, gin.H{"count": len(summaries)})
}

// GenerateBank explicitly generates the caller's bank cells for a job title,
// one per category at the requested difficulty.
func (h *Handler) GenerateBank(c *gin.Context) {
	var req model.GenerateBankReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	difficulty := model.Difficulty(req.Difficulty)
	if req.Difficulty == "" {
		difficulty = model.DifficultyIntermediate
	} else if !difficulty.Valid() {
		response.BadRequest(c, "invalid difficulty")
		return
	}

	ctx := c.Request.Context()
	email := req.Email
	if email == "" {
		email = h.EmailFromContext(c)
	}
	plan, err := h.Plans.Resolve(ctx, email)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	var created []model.QuestionBank
	for _, cat := range allCategories {
		existing, err := h.Banks.FindTuple(ctx, req.JobTitle, cat, difficulty, plan)
		if err != nil {
			h.Logger.Sugar().Errorw("failed to check bank cell", "err", err)
			response.InternalError(c, "")
			return
		}
		if existing != nil {
			created = append(created, *existing)
			continue
		}

		questions, aiGenerated := h.Generator.Generate(ctx, req.JobTitle, cat, difficulty, plan, req.Industry, req.Skills)
		bank := &model.QuestionBank{
			JobTitle:      req.JobTitle,
			Category:      cat,
			Difficulty:    difficulty,
			PlanType:      plan,
			Questions:     questions,
			Industry:      req.Industry,
			Skills:        req.Skills,
			IsAIGenerated: aiGenerated,
		}
		if err := h.Banks.Insert(ctx, bank); err != nil {
			h.Logger.Sugar().Errorw("failed to store generated bank", "err", err)
			response.InternalError(c, "")
			return
		}
		created = append(created, *bank)
	}

	h.Cache.Invalidate(ctx)
	response.Created(c, created)
}

// RateBank folds one 1-5 rating into the bank's running average.
func (h *Handler) RateBank(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid bank id")
		return
	}
	var req model.RateBankReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if req.Rating < 1 || req.Rating > 5 {
		response.Error(c, errs.NewValidation("Rating must be between 1 and 5"), nil)
		return
	}

	bank, err := h.Banks.Rate(c.Request.Context(), id, req.Rating)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			response.NotFound(c, "question bank not found")
			return
		}
		h.Logger.Sugar().Errorw("failed to rate bank", "err", err)
		response.InternalError(c, "")
		return
	}

	h.Cache.Invalidate(c.Request.Context())
	response.OK(c, gin.H{"ratings": bank.Ratings, "id": bank.ID})
}
