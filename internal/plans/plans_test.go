package plans

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kusumkar-Deeepak/InterviewAI-Nexus/pkg/errs"
	"github.com/Kusumkar-Deeepak/InterviewAI-Nexus/pkg/model"
)

func TestLimitsTable(t *testing.T) {
	free := LimitsFor(model.PlanFree)
	assert.Equal(t, 3, free.MaxInterviews)
	assert.Equal(t, 15, free.QuestionsPerCategory)
	assert.Equal(t, 15, free.QuestionsPerBank)
	assert.False(t, free.HasAIGeneration)
	assert.False(t, free.HasDetailedAnswers)

	pro := LimitsFor(model.PlanPro)
	assert.Equal(t, 15, pro.MaxInterviews)
	assert.Equal(t, 35, pro.QuestionsPerCategory)
	assert.True(t, pro.HasAIGeneration)
	assert.True(t, pro.HasDetailedAnswers)

	ent := LimitsFor(model.PlanEnterprise)
	assert.Equal(t, Unlimited, ent.MaxInterviews)
	assert.Equal(t, Unlimited, ent.QuestionsPerCategory)
	assert.True(t, ent.HasAIGeneration)

	// unknown plans degrade to Free
	assert.Equal(t, free, LimitsFor(model.Plan("Platinum")))
}

func TestAccessibleTiers(t *testing.T) {
	assert.Equal(t, []model.Plan{model.PlanFree}, AccessibleTiers(model.PlanFree))
	assert.Equal(t, []model.Plan{model.PlanFree, model.PlanPro}, AccessibleTiers(model.PlanPro))
	assert.Equal(t,
		[]model.Plan{model.PlanFree, model.PlanPro, model.PlanEnterprise},
		AccessibleTiers(model.PlanEnterprise))
}

func TestGenerationCount(t *testing.T) {
	assert.Equal(t, 15, GenerationCount(model.PlanFree))
	assert.Equal(t, 35, GenerationCount(model.PlanPro))
	assert.Equal(t, 50, GenerationCount(model.PlanEnterprise))
}

func TestCheckInterviewQuota(t *testing.T) {
	// Free: 3rd existing interview blocks the 4th
	assert.NoError(t, CheckInterviewQuota(model.PlanFree, 2))
	err := CheckInterviewQuota(model.PlanFree, 3)
	require.Error(t, err)
	assert.True(t, errs.IsKind(err, errs.KindQuotaExceeded))
	assert.Contains(t, err.Error(), "3 interviews")
	assert.Contains(t, err.Error(), "Free")

	// Pro: 16th fails
	assert.NoError(t, CheckInterviewQuota(model.PlanPro, 14))
	assert.Error(t, CheckInterviewQuota(model.PlanPro, 15))

	// Enterprise never fails
	assert.NoError(t, CheckInterviewQuota(model.PlanEnterprise, 100000))
}

func TestCapQuestions(t *testing.T) {
	questions := make([]model.BankQuestion, 40)
	assert.Len(t, CapQuestions(questions, 15), 15)
	assert.Len(t, CapQuestions(questions, Unlimited), 40)
	assert.Len(t, CapQuestions(questions, 50), 40)
}

type fakePlanStore struct {
	records map[string]*model.UserPlan
	upserts int
}

func (f *fakePlanStore) GetPlan(_ context.Context, email string) (*model.UserPlan, error) {
	return f.records[email], nil
}

func (f *fakePlanStore) UpsertPlan(_ context.Context, email string, plan model.Plan) (*model.UserPlan, error) {
	f.upserts++
	record := &model.UserPlan{Email: email, Plan: plan}
	if f.records == nil {
		f.records = map[string]*model.UserPlan{}
	}
	f.records[email] = record
	return record, nil
}

func TestResolveDefaultsToFreeWithoutMaterializing(t *testing.T) {
	store := &fakePlanStore{}
	r := NewResolver(store)

	plan, err := r.Resolve(context.Background(), "Nobody@Example.com")
	require.NoError(t, err)
	assert.Equal(t, model.PlanFree, plan)
	assert.Zero(t, store.upserts, "implicit resolution must not write")
}

func TestGetOrCreateMaterializesFree(t *testing.T) {
	store := &fakePlanStore{}
	r := NewResolver(store)

	record, err := r.GetOrCreate(context.Background(), "New@Example.com")
	require.NoError(t, err)
	assert.Equal(t, model.PlanFree, record.Plan)
	assert.Equal(t, "new@example.com", record.Email)
	assert.Equal(t, 1, store.upserts)

	// second fetch reads the stored record
	_, err = r.GetOrCreate(context.Background(), "new@example.com")
	require.NoError(t, err)
	assert.Equal(t, 1, store.upserts)
}

func TestUpdateRejectsUnknownPlan(t *testing.T) {
	r := NewResolver(&fakePlanStore{})

	_, err := r.Update(context.Background(), "a@b.com", "Platinum")
	require.Error(t, err)
	assert.True(t, errs.IsKind(err, errs.KindValidation))

	record, err := r.Update(context.Background(), "A@B.com", "Pro")
	require.NoError(t, err)
	assert.Equal(t, model.PlanPro, record.Plan)
	assert.Equal(t, "a@b.com", record.Email)
}
