package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Kusumkar-Deeepak/InterviewAI-Nexus/internal/plans"
	"github.com/Kusumkar-Deeepak/InterviewAI-Nexus/internal/questionbank"
	"github.com/Kusumkar-Deeepak/InterviewAI-Nexus/pkg/model"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var errNotFound = fmt.Errorf("not found: %w", pgx.ErrNoRows)

// fakeInterviews is an in-memory InterviewStore.
type fakeInterviews struct {
	items map[uuid.UUID]*model.Interview
}

func newFakeInterviews() *fakeInterviews {
	return &fakeInterviews{items: make(map[uuid.UUID]*model.Interview)}
}

func (f *fakeInterviews) add(iv model.Interview) *model.Interview {
	if iv.ID == uuid.Nil {
		iv.ID = uuid.New()
	}
	f.items[iv.ID] = &iv
	return f.items[iv.ID]
}

func (f *fakeInterviews) Create(_ context.Context, iv *model.Interview) error {
	iv.CreatedAt = time.Now()
	f.items[iv.ID] = iv
	return nil
}

func (f *fakeInterviews) GetByID(_ context.Context, id uuid.UUID) (model.Interview, error) {
	if iv, ok := f.items[id]; ok {
		return *iv, nil
	}
	return model.Interview{}, errNotFound
}

func (f *fakeInterviews) GetByLinkToken(_ context.Context, link, token string) (model.Interview, error) {
	for _, iv := range f.items {
		if iv.InterviewLink == link && iv.AccessToken == token {
			return *iv, nil
		}
	}
	return model.Interview{}, errNotFound
}

func (f *fakeInterviews) GetByLinkSlug(_ context.Context, slug string) (model.Interview, error) {
	for _, iv := range f.items {
		if strings.HasSuffix(strings.ToLower(iv.InterviewLink), strings.ToLower(slug)) {
			return *iv, nil
		}
	}
	return model.Interview{}, errNotFound
}

func (f *fakeInterviews) List(_ context.Context, filter model.ListInterviewsQuery) ([]model.Interview, error) {
	var out []model.Interview
	for _, iv := range f.items {
		if filter.Email != "" && iv.CreatorEmail != strings.ToLower(filter.Email) {
			continue
		}
		if filter.Status != "" && string(iv.Status) != filter.Status {
			continue
		}
		out = append(out, *iv)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeInterviews) CountByCreator(_ context.Context, email string) (int, error) {
	n := 0
	for _, iv := range f.items {
		if iv.CreatorEmail == strings.ToLower(email) {
			n++
		}
	}
	return n, nil
}

func (f *fakeInterviews) Update(_ context.Context, iv model.Interview) error {
	if _, ok := f.items[iv.ID]; !ok {
		return errNotFound
	}
	existing := *f.items[iv.ID]
	existing.ApplicantName = iv.ApplicantName
	existing.CompanyName = iv.CompanyName
	existing.JobTitle = iv.JobTitle
	existing.JobDescription = iv.JobDescription
	existing.ResumeText = iv.ResumeText
	existing.AdditionalNotes = iv.AdditionalNotes
	existing.InterviewDate = iv.InterviewDate
	existing.StartTime = iv.StartTime
	existing.EndTime = iv.EndTime
	existing.InterviewType = iv.InterviewType
	existing.Skills = iv.Skills
	f.items[iv.ID] = &existing
	return nil
}

func (f *fakeInterviews) UpdateStatus(_ context.Context, id uuid.UUID, status model.InterviewStatus) error {
	iv, ok := f.items[id]
	if !ok {
		return errNotFound
	}
	iv.Status = status
	return nil
}

func (f *fakeInterviews) UpdateStatusByLinkSlug(ctx context.Context, slug string, status model.InterviewStatus) (model.Interview, error) {
	iv, err := f.GetByLinkSlug(ctx, slug)
	if err != nil {
		return model.Interview{}, err
	}
	f.items[iv.ID].Status = status
	return *f.items[iv.ID], nil
}

func (f *fakeInterviews) CompleteByLinkSlug(ctx context.Context, slug string, score int) (model.Interview, error) {
	iv, err := f.GetByLinkSlug(ctx, slug)
	if err != nil {
		return model.Interview{}, err
	}
	now := time.Now()
	f.items[iv.ID].Status = model.StatusCompleted
	f.items[iv.ID].Score = score
	f.items[iv.ID].CompletedAt = &now
	return *f.items[iv.ID], nil
}

func (f *fakeInterviews) UpdateQuestions(_ context.Context, id uuid.UUID, ai, custom []string) error {
	iv, ok := f.items[id]
	if !ok {
		return errNotFound
	}
	iv.AIGeneratedQuestions = ai
	iv.CustomQuestions = custom
	return nil
}

func (f *fakeInterviews) ListNotStartedByCreator(_ context.Context, email string) ([]model.Interview, error) {
	var out []model.Interview
	for _, iv := range f.items {
		if iv.CreatorEmail == strings.ToLower(email) && iv.Status == model.StatusNotStarted {
			out = append(out, *iv)
		}
	}
	return out, nil
}

func (f *fakeInterviews) BulkExpire(_ context.Context, ids []uuid.UUID) (int64, error) {
	var n int64
	for _, id := range ids {
		if iv, ok := f.items[id]; ok && iv.Status == model.StatusNotStarted {
			iv.Status = model.StatusExpired
			n++
		}
	}
	return n, nil
}

func (f *fakeInterviews) DistinctJobTitlesByCreator(_ context.Context, email string) ([]string, error) {
	seen := make(map[string]bool)
	var out []string
	for _, iv := range f.items {
		if iv.CreatorEmail == strings.ToLower(email) && !seen[iv.JobTitle] {
			seen[iv.JobTitle] = true
			out = append(out, iv.JobTitle)
		}
	}
	return out, nil
}

// fakeBanks is an in-memory BankStore.
type fakeBanks struct {
	items           []*model.QuestionBank
	popularityCalls int
}

func (f *fakeBanks) visible(b *model.QuestionBank, tiers []model.Plan) bool {
	for _, t := range tiers {
		if b.PlanType == t {
			return true
		}
	}
	return false
}

func copyBanks(in []*model.QuestionBank) []model.QuestionBank {
	out := make([]model.QuestionBank, len(in))
	for i, b := range in {
		out[i] = *b
		out[i].Questions = append([]model.BankQuestion(nil), b.Questions...)
	}
	return out
}

func (f *fakeBanks) ByJobTitle(_ context.Context, jobTitle string, tiers []model.Plan, category, difficulty string, limit int) ([]model.QuestionBank, error) {
	var out []*model.QuestionBank
	for _, b := range f.items {
		if !strings.Contains(strings.ToLower(b.JobTitle), strings.ToLower(jobTitle)) {
			continue
		}
		if !f.visible(b, tiers) {
			continue
		}
		if category != "" && string(b.Category) != category {
			continue
		}
		if difficulty != "" && string(b.Difficulty) != difficulty {
			continue
		}
		out = append(out, b)
		if len(out) == limit {
			break
		}
	}
	return copyBanks(out), nil
}

func (f *fakeBanks) ByCategory(_ context.Context, category string, tiers []model.Plan, jobTitle, difficulty string, limit int) ([]model.QuestionBank, error) {
	var out []*model.QuestionBank
	for _, b := range f.items {
		if string(b.Category) != category || !f.visible(b, tiers) {
			continue
		}
		if difficulty != "" && string(b.Difficulty) != difficulty {
			continue
		}
		out = append(out, b)
		if len(out) == limit {
			break
		}
	}
	return copyBanks(out), nil
}

func (f *fakeBanks) Search(_ context.Context, term string, tiers []model.Plan, limit int) ([]model.QuestionBank, error) {
	var out []*model.QuestionBank
	for _, b := range f.items {
		if f.visible(b, tiers) && strings.Contains(strings.ToLower(b.JobTitle), strings.ToLower(term)) {
			out = append(out, b)
		}
	}
	return copyBanks(out), nil
}

func (f *fakeBanks) Popular(_ context.Context, tiers []model.Plan, limit int) ([]model.QuestionBank, error) {
	var out []*model.QuestionBank
	for _, b := range f.items {
		if f.visible(b, tiers) {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Popularity > out[j].Popularity })
	if len(out) > limit {
		out = out[:limit]
	}
	return copyBanks(out), nil
}

func (f *fakeBanks) FindTuple(_ context.Context, jobTitle string, category model.Category, difficulty model.Difficulty, plan model.Plan) (*model.QuestionBank, error) {
	for _, b := range f.items {
		if strings.EqualFold(b.JobTitle, jobTitle) && b.Category == category && b.Difficulty == difficulty && b.PlanType == plan {
			out := *b
			return &out, nil
		}
	}
	return nil, nil
}

func (f *fakeBanks) Insert(_ context.Context, b *model.QuestionBank) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	b.TotalQuestions = len(b.Questions)
	b.GeneratedAt = time.Now()
	b.LastUpdated = b.GeneratedAt
	stored := *b
	f.items = append(f.items, &stored)
	return nil
}

func (f *fakeBanks) IncrementPopularity(_ context.Context, ids []uuid.UUID) error {
	f.popularityCalls++
	for _, id := range ids {
		for _, b := range f.items {
			if b.ID == id {
				b.Popularity++
			}
		}
	}
	return nil
}

func (f *fakeBanks) Rate(_ context.Context, id uuid.UUID, rating int) (*model.QuestionBank, error) {
	for _, b := range f.items {
		if b.ID == id {
			b.Ratings.Average = (b.Ratings.Average*float64(b.Ratings.Count) + float64(rating)) / float64(b.Ratings.Count+1)
			b.Ratings.Count++
			out := *b
			return &out, nil
		}
	}
	return nil, errNotFound
}

func (f *fakeBanks) DistinctJobTitles(_ context.Context, tiers []model.Plan) ([]model.JobTitleSummary, error) {
	agg := make(map[string]*model.JobTitleSummary)
	for _, b := range f.items {
		if !f.visible(b, tiers) {
			continue
		}
		s, ok := agg[b.JobTitle]
		if !ok {
			s = &model.JobTitleSummary{Title: b.JobTitle}
			agg[b.JobTitle] = s
		}
		s.Popularity += b.Popularity
		s.QuestionCount += len(b.Questions)
		s.HasQuestions = s.QuestionCount > 0
	}
	var out []model.JobTitleSummary
	for _, s := range agg {
		out = append(out, *s)
	}
	return out, nil
}

// fakeRecords is an in-memory RecordStore.
type fakeRecords struct {
	items []*model.InterviewRecord
}

func (f *fakeRecords) Create(_ context.Context, rec *model.InterviewRecord) error {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	rec.CreatedAt = time.Now()
	stored := *rec
	f.items = append(f.items, &stored)
	return nil
}

func (f *fakeRecords) ListByLink(_ context.Context, link string) ([]model.InterviewRecord, error) {
	var out []model.InterviewRecord
	for _, r := range f.items {
		if strings.HasSuffix(strings.ToLower(r.InterviewLink), strings.ToLower(link)) {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeRecords) List(_ context.Context, filter model.ListRecordsQuery) ([]model.InterviewRecord, int, error) {
	var out []model.InterviewRecord
	for _, r := range f.items {
		if filter.Status != "" && string(r.Status) != filter.Status {
			continue
		}
		out = append(out, *r)
	}
	return out, len(out), nil
}

// fakePlanStore satisfies plans.Store.
type fakePlanStore struct {
	records map[string]*model.UserPlan
}

func newFakePlanStore() *fakePlanStore {
	return &fakePlanStore{records: make(map[string]*model.UserPlan)}
}

func (f *fakePlanStore) GetPlan(_ context.Context, email string) (*model.UserPlan, error) {
	if p, ok := f.records[strings.ToLower(email)]; ok {
		out := *p
		return &out, nil
	}
	return nil, nil
}

func (f *fakePlanStore) UpsertPlan(_ context.Context, email string, plan model.Plan) (*model.UserPlan, error) {
	email = strings.ToLower(email)
	now := time.Now()
	p, ok := f.records[email]
	if !ok {
		p = &model.UserPlan{Email: email, Plan: plan, CreatedAt: now}
		f.records[email] = p
	}
	p.Plan = plan
	p.UpdatedAt = now
	out := *p
	return &out, nil
}

type testEnv struct {
	h          *Handler
	interviews *fakeInterviews
	banks      *fakeBanks
	records    *fakeRecords
	planStore  *fakePlanStore
	router     *gin.Engine
	now        time.Time
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	env := &testEnv{
		interviews: newFakeInterviews(),
		banks:      &fakeBanks{},
		records:    &fakeRecords{},
		planStore:  newFakePlanStore(),
		now:        time.Date(2026, 9, 15, 10, 30, 0, 0, time.UTC),
	}
	env.h = &Handler{
		Logger:     zap.NewNop(),
		Interviews: env.interviews,
		Banks:      env.banks,
		Records:    env.records,
		Plans:      plans.NewResolver(env.planStore),
		Generator:  questionbank.NewGenerator(nil, true, zap.NewNop()),
		BaseURL:    "https://nexus.test",
		Now:        func() time.Time { return env.now },
	}

	r := gin.New()
	api := r.Group("/api")
	iv := api.Group("/interviews")
	iv.POST("", env.h.CreateInterview)
	iv.GET("", env.h.ListInterviews)
	iv.GET("/validate", env.h.ValidateInterviews)
	iv.POST("/verify-token", env.h.VerifyAccess)
	iv.GET("/link/:link", env.h.GetInterviewByLink)
	iv.PATCH("/link/:link/status", env.h.UpdateInterviewStatus)
	iv.POST("/link/:link/complete", env.h.CompleteInterview)
	iv.GET("/:id", env.h.GetInterview)
	iv.PUT("/:id", env.h.UpdateInterview)
	iv.PATCH("/:id/questions", env.h.UpdateInterviewQuestions)

	plan := api.Group("/user/plan")
	plan.GET("", env.h.GetPlan)
	plan.PUT("", env.h.UpdatePlan)

	banks := api.Group("/question-banks")
	banks.GET("/job-titles", env.h.ListJobTitles)
	banks.GET("/popular", env.h.PopularBanks)
	banks.GET("/search", env.h.SearchBanks)
	banks.GET("/job-title/:jobTitle", env.h.GetBanksByJobTitle)
	banks.GET("/category/:category", env.h.GetQuestionsByCategory)
	banks.POST("/generate", env.h.GenerateBank)
	banks.POST("/rate/:id", env.h.RateBank)

	rec := api.Group("/interview-records")
	rec.POST("", env.h.CreateRecord)
	rec.GET("", env.h.ListRecords)
	rec.GET("/:interviewLink", env.h.GetRecordsByLink)

	env.router = r
	return env
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string          `json:"code"`
		Message string          `json:"message"`
		Details json.RawMessage `json:"details"`
	} `json:"error"`
	Meta map[string]any `json:"meta"`
}

func (e *testEnv) do(t *testing.T, method, path string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), "body: %s", w.Body.String())
	return w, env
}
