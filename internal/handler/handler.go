package handler

import (
	"context"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Kusumkar-Deeepak/InterviewAI-Nexus/internal/cache"
	"github.com/Kusumkar-Deeepak/InterviewAI-Nexus/internal/plans"
	"github.com/Kusumkar-Deeepak/InterviewAI-Nexus/internal/questionbank"
	"github.com/Kusumkar-Deeepak/InterviewAI-Nexus/pkg/model"
)

// InterviewStore is the interview persistence the handlers depend on,
// implemented by repository.InterviewRepository.
type InterviewStore interface {
	Create(ctx context.Context, iv *model.Interview) error
	GetByID(ctx context.Context, id uuid.UUID) (model.Interview, error)
	GetByLinkToken(ctx context.Context, link, token string) (model.Interview, error)
	GetByLinkSlug(ctx context.Context, slug string) (model.Interview, error)
	List(ctx context.Context, filter model.ListInterviewsQuery) ([]model.Interview, error)
	CountByCreator(ctx context.Context, email string) (int, error)
	Update(ctx context.Context, iv model.Interview) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.InterviewStatus) error
	UpdateStatusByLinkSlug(ctx context.Context, slug string, status model.InterviewStatus) (model.Interview, error)
	CompleteByLinkSlug(ctx context.Context, slug string, score int) (model.Interview, error)
	UpdateQuestions(ctx context.Context, id uuid.UUID, ai, custom []string) error
	ListNotStartedByCreator(ctx context.Context, email string) ([]model.Interview, error)
	BulkExpire(ctx context.Context, ids []uuid.UUID) (int64, error)
	DistinctJobTitlesByCreator(ctx context.Context, email string) ([]string, error)
}

// BankStore is the question bank persistence, implemented by
// repository.BankRepository.
type BankStore interface {
	ByJobTitle(ctx context.Context, jobTitle string, tiers []model.Plan, category, difficulty string, limit int) ([]model.QuestionBank, error)
	ByCategory(ctx context.Context, category string, tiers []model.Plan, jobTitle, difficulty string, limit int) ([]model.QuestionBank, error)
	Search(ctx context.Context, term string, tiers []model.Plan, limit int) ([]model.QuestionBank, error)
	Popular(ctx context.Context, tiers []model.Plan, limit int) ([]model.QuestionBank, error)
	FindTuple(ctx context.Context, jobTitle string, category model.Category, difficulty model.Difficulty, plan model.Plan) (*model.QuestionBank, error)
	Insert(ctx context.Context, b *model.QuestionBank) error
	IncrementPopularity(ctx context.Context, ids []uuid.UUID) error
	Rate(ctx context.Context, id uuid.UUID, rating int) (*model.QuestionBank, error)
	DistinctJobTitles(ctx context.Context, tiers []model.Plan) ([]model.JobTitleSummary, error)
}

// RecordStore is the interview record persistence, implemented by
// repository.RecordRepository.
type RecordStore interface {
	Create(ctx context.Context, rec *model.InterviewRecord) error
	ListByLink(ctx context.Context, link string) ([]model.InterviewRecord, error)
	List(ctx context.Context, filter model.ListRecordsQuery) ([]model.InterviewRecord, int, error)
}

type Handler struct {
	Logger     *zap.Logger
	Interviews InterviewStore
	Banks      BankStore
	Records    RecordStore
	Plans      *plans.Resolver
	Generator  *questionbank.Generator
	Cache      *cache.BankCache
	BaseURL    string

	// Now is the clock used for admission decisions, overridable in tests.
	Now func() time.Time
}

func (h *Handler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

// EmailFromContext returns the caller identity set by the auth middleware,
// falling back to the email query parameter for unauthenticated routes.
func (h *Handler) EmailFromContext(c *gin.Context) string {
	if v, ok := c.Get("email"); ok {
		if email, ok := v.(string); ok && email != "" {
			return strings.ToLower(email)
		}
	}
	return strings.ToLower(c.Query("email"))
}
