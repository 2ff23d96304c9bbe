package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kusumkar-Deeepak/InterviewAI-Nexus/pkg/model"
)

func bankFixture(jobTitle string, cat model.Category, diff model.Difficulty, plan model.Plan, nQuestions int, popularity int64) *model.QuestionBank {
	qs := make([]model.BankQuestion, nQuestions)
	for i := range qs {
		qs[i] = model.BankQuestion{
			Question:       fmt.Sprintf("%s question %d", cat, i),
			ExpectedAnswer: "answer",
			Tips:           []string{"tip"},
			Keywords:       []string{"kw"},
		}
	}
	return &model.QuestionBank{
		JobTitle:   jobTitle,
		Category:   cat,
		Difficulty: diff,
		PlanType:   plan,
		Questions:  qs,
		Popularity: popularity,
	}
}

func decodeBanks(t *testing.T, body envelope) []model.QuestionBank {
	t.Helper()
	var banks []model.QuestionBank
	require.NoError(t, json.Unmarshal(body.Data, &banks))
	return banks
}

func TestGetBanksByJobTitleWarmOnMiss(t *testing.T) {
	env := newTestEnv(t)

	w, body := env.do(t, http.MethodGet, "/api/question-banks/job-title/Backend%20Engineer?email=new@user.test", nil)
	require.Equal(t, http.StatusOK, w.Code)

	// A Free caller sees one tier; the miss warms 4 categories x 3
	// difficulties for it.
	assert.Len(t, env.banks.items, 12)
	banks := decodeBanks(t, body)
	assert.NotEmpty(t, banks)
	for _, b := range banks {
		assert.Equal(t, model.PlanFree, b.PlanType)
		assert.False(t, b.IsAIGenerated)
		assert.NotEmpty(t, b.Questions)
	}
	assert.NotNil(t, body.Meta["planAccess"])
}

func TestGetBanksByJobTitleWarmRespectsFilters(t *testing.T) {
	env := newTestEnv(t)

	w, _ := env.do(t, http.MethodGet, "/api/question-banks/job-title/Backend%20Engineer?category=technical&difficulty=advanced", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, env.banks.items, 1)
	assert.Equal(t, model.CategoryTechnical, env.banks.items[0].Category)
	assert.Equal(t, model.DifficultyAdvanced, env.banks.items[0].Difficulty)
}

func TestGetBanksByJobTitleTruncatesToPlanQuota(t *testing.T) {
	env := newTestEnv(t)
	env.banks.items = append(env.banks.items,
		bankFixture("Backend Engineer", model.CategoryTechnical, model.DifficultyBeginner, model.PlanFree, 20, 5))

	w, body := env.do(t, http.MethodGet, "/api/question-banks/job-title/Backend%20Engineer", nil)
	require.Equal(t, http.StatusOK, w.Code)

	banks := decodeBanks(t, body)
	require.Len(t, banks, 1)
	// Free callers see at most 15 questions per bank; the stored bank keeps
	// all 20.
	assert.Len(t, banks[0].Questions, 15)
	assert.Len(t, env.banks.items[0].Questions, 20)
}

func TestGetBanksVisibilityByTier(t *testing.T) {
	env := newTestEnv(t)
	env.banks.items = append(env.banks.items,
		bankFixture("Backend Engineer", model.CategoryTechnical, model.DifficultyBeginner, model.PlanFree, 5, 0),
		bankFixture("Backend Engineer", model.CategoryTechnical, model.DifficultyBeginner, model.PlanPro, 5, 0),
		bankFixture("Backend Engineer", model.CategoryTechnical, model.DifficultyBeginner, model.PlanEnterprise, 5, 0),
	)
	for _, b := range env.banks.items {
		b.ID = uuid.UUID{byte(len(b.PlanType))}
	}
	_, err := env.planStore.UpsertPlan(context.Background(), "pro@user.test", model.PlanPro)
	require.NoError(t, err)

	w, body := env.do(t, http.MethodGet, "/api/question-banks/job-title/Backend%20Engineer?email=pro@user.test", nil)
	require.Equal(t, http.StatusOK, w.Code)

	banks := decodeBanks(t, body)
	require.Len(t, banks, 2)
	for _, b := range banks {
		assert.NotEqual(t, model.PlanEnterprise, b.PlanType)
	}
}

func TestGetQuestionsByCategoryFlattensAndCaps(t *testing.T) {
	env := newTestEnv(t)
	env.banks.items = append(env.banks.items,
		bankFixture("Backend Engineer", model.CategoryBehavioral, model.DifficultyBeginner, model.PlanFree, 20, 0),
		bankFixture("Data Analyst", model.CategoryBehavioral, model.DifficultyAdvanced, model.PlanFree, 10, 0),
	)

	w, body := env.do(t, http.MethodGet, "/api/question-banks/category/behavioral", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var questions []model.CategoryQuestion
	require.NoError(t, json.Unmarshal(body.Data, &questions))
	// The Free quota of 15 trims each bank on its own, not the flattened
	// list: the 20-question bank contributes 15 and the 10-question bank
	// stays whole.
	require.Len(t, questions, 25)
	assert.Equal(t, "Backend Engineer", questions[0].JobTitle)
	assert.Equal(t, "Backend Engineer", questions[14].JobTitle)
	assert.Equal(t, "Data Analyst", questions[15].JobTitle)
	assert.Equal(t, "Data Analyst", questions[24].JobTitle)
}

func TestGetQuestionsByCategoryKeepsFullBanksUnderQuota(t *testing.T) {
	env := newTestEnv(t)
	env.banks.items = append(env.banks.items,
		bankFixture("Backend Engineer", model.CategoryBehavioral, model.DifficultyBeginner, model.PlanFree, 10, 0),
		bankFixture("Data Analyst", model.CategoryBehavioral, model.DifficultyAdvanced, model.PlanFree, 10, 0),
	)

	w, body := env.do(t, http.MethodGet, "/api/question-banks/category/behavioral", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var questions []model.CategoryQuestion
	require.NoError(t, json.Unmarshal(body.Data, &questions))
	// Both banks are under the per-bank quota, so nothing is dropped.
	assert.Len(t, questions, 20)
	assert.EqualValues(t, 20, body.Meta["count"])
}

func TestGetQuestionsByCategoryRejectsUnknown(t *testing.T) {
	env := newTestEnv(t)
	w, _ := env.do(t, http.MethodGet, "/api/question-banks/category/astrology", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGenerateBankCoversAllCategories(t *testing.T) {
	env := newTestEnv(t)

	w, body := env.do(t, http.MethodPost, "/api/question-banks/generate", model.GenerateBankReq{
		JobTitle: "Data Scientist",
		Email:    "free@user.test",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	banks := decodeBanks(t, body)
	require.Len(t, banks, 4)
	seen := make(map[model.Category]bool)
	for _, b := range banks {
		seen[b.Category] = true
		assert.Equal(t, model.DifficultyIntermediate, b.Difficulty)
		assert.Equal(t, model.PlanFree, b.PlanType)
		assert.Len(t, b.Questions, 15)
	}
	assert.Len(t, seen, 4)

	// Re-generating reuses the existing cells instead of duplicating them.
	w2, _ := env.do(t, http.MethodPost, "/api/question-banks/generate", model.GenerateBankReq{
		JobTitle: "Data Scientist",
		Email:    "free@user.test",
	})
	require.Equal(t, http.StatusCreated, w2.Code)
	assert.Len(t, env.banks.items, 4)
}

func TestRateBankValidatesRange(t *testing.T) {
	env := newTestEnv(t)
	bank := bankFixture("Backend Engineer", model.CategoryHR, model.DifficultyBeginner, model.PlanFree, 5, 0)
	bank.ID = uuid.UUID{1}
	env.banks.items = append(env.banks.items, bank)

	for _, rating := range []int{-1, 6} {
		w, body := env.do(t, http.MethodPost, "/api/question-banks/rate/"+bank.ID.String(),
			model.RateBankReq{Rating: rating})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "VALIDATION", body.Error.Code)
	}

	w, _ := env.do(t, http.MethodPost, "/api/question-banks/rate/"+bank.ID.String(),
		model.RateBankReq{Rating: 4})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 4.0, bank.Ratings.Average)
	assert.Equal(t, 1, bank.Ratings.Count)

	// Second rating folds into the running mean: (4+5)/2.
	w, _ = env.do(t, http.MethodPost, "/api/question-banks/rate/"+bank.ID.String(),
		model.RateBankReq{Rating: 5})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 4.5, bank.Ratings.Average)
}

func TestListJobTitlesMergesInterviewTitles(t *testing.T) {
	env := newTestEnv(t)
	env.banks.items = append(env.banks.items,
		bankFixture("Backend Engineer", model.CategoryTechnical, model.DifficultyBeginner, model.PlanFree, 5, 3))
	iv := scheduledInterview("ownslug00001", "10:00", "11:00")
	iv.JobTitle = "Platform Engineer"
	env.interviews.add(iv)

	w, body := env.do(t, http.MethodGet, "/api/question-banks/job-titles?email=hr@acme.test", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var summaries []model.JobTitleSummary
	require.NoError(t, json.Unmarshal(body.Data, &summaries))
	titles := make(map[string]model.JobTitleSummary)
	for _, s := range summaries {
		titles[s.Title] = s
	}
	require.Contains(t, titles, "Backend Engineer")
	require.Contains(t, titles, "Platform Engineer")
	assert.True(t, titles["Backend Engineer"].HasQuestions)
	assert.False(t, titles["Platform Engineer"].HasQuestions)
}

func TestSearchBanksRequiresTerm(t *testing.T) {
	env := newTestEnv(t)
	w, _ := env.do(t, http.MethodGet, "/api/question-banks/search", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	env.banks.items = append(env.banks.items,
		bankFixture("Backend Engineer", model.CategoryTechnical, model.DifficultyBeginner, model.PlanFree, 5, 0))
	w, body := env.do(t, http.MethodGet, "/api/question-banks/search?q=backend", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeBanks(t, body), 1)
}
