// Package plans maps subscription tiers to their numeric quotas and
// visibility rules.
package plans

import (
	"context"
	"fmt"
	"strings"

	"github.com/Kusumkar-Deeepak/InterviewAI-Nexus/pkg/errs"
	"github.com/Kusumkar-Deeepak/InterviewAI-Nexus/pkg/model"
)

// Unlimited is the sentinel for quota fields with no ceiling.
const Unlimited = -1

// Limits is the quota row for one tier.
type Limits struct {
	MaxInterviews        int  `json:"maxInterviews"`
	QuestionsPerBank     int  `json:"questionsPerBank"`
	QuestionsPerCategory int  `json:"questionsPerCategory"`
	MaxJobTitles         int  `json:"maxJobTitles"`
	HasAIGeneration      bool `json:"hasAIGeneration"`
	HasDetailedAnswers   bool `json:"hasDetailedAnswers"`
}

// LimitsFor returns the quota table row for a plan. Unknown plans fall back
// to Free.
func LimitsFor(p model.Plan) Limits {
	switch p {
	case model.PlanEnterprise:
		return Limits{
			MaxInterviews:        Unlimited,
			QuestionsPerBank:     Unlimited,
			QuestionsPerCategory: Unlimited,
			MaxJobTitles:         Unlimited,
			HasAIGeneration:      true,
			HasDetailedAnswers:   true,
		}
	case model.PlanPro:
		return Limits{
			MaxInterviews:        15,
			QuestionsPerBank:     35,
			QuestionsPerCategory: 35,
			MaxJobTitles:         50,
			HasAIGeneration:      true,
			HasDetailedAnswers:   true,
		}
	default:
		return Limits{
			MaxInterviews:        3,
			QuestionsPerBank:     15,
			QuestionsPerCategory: 15,
			MaxJobTitles:         10,
			HasAIGeneration:      false,
			HasDetailedAnswers:   false,
		}
	}
}

// GenerationCount is the concrete number of questions the generator targets
// for a tier. The Enterprise serving quota is unlimited but generation still
// needs a bounded request size.
func GenerationCount(p model.Plan) int {
	switch p {
	case model.PlanEnterprise:
		return 50
	case model.PlanPro:
		return 35
	default:
		return 15
	}
}

// AccessibleTiers returns which bank tiers a plan may read. Visibility is
// downward-compatible: higher tiers also read the banks below them.
func AccessibleTiers(p model.Plan) []model.Plan {
	switch p {
	case model.PlanEnterprise:
		return []model.Plan{model.PlanFree, model.PlanPro, model.PlanEnterprise}
	case model.PlanPro:
		return []model.Plan{model.PlanFree, model.PlanPro}
	default:
		return []model.Plan{model.PlanFree}
	}
}

// CapQuestions truncates a question list to a per-bank quota, where Unlimited
// means no truncation.
func CapQuestions(questions []model.BankQuestion, quota int) []model.BankQuestion {
	if quota == Unlimited || len(questions) <= quota {
		return questions
	}
	return questions[:quota]
}

// Store is the UserPlan persistence needed by the resolver. Get returns
// (nil, nil) when no record exists for the email.
type Store interface {
	GetPlan(ctx context.Context, email string) (*model.UserPlan, error)
	UpsertPlan(ctx context.Context, email string, plan model.Plan) (*model.UserPlan, error)
}

type Resolver struct {
	store Store
}

func NewResolver(store Store) *Resolver {
	return &Resolver{store: store}
}

// Resolve returns the tier for an email without materializing anything:
// quota checks stay free of writes. Absent record means Free.
func (r *Resolver) Resolve(ctx context.Context, email string) (model.Plan, error) {
	if email == "" {
		return model.PlanFree, nil
	}
	record, err := r.store.GetPlan(ctx, strings.ToLower(email))
	if err != nil {
		return model.PlanFree, errs.NewPersistence(err)
	}
	if record == nil {
		return model.PlanFree, nil
	}
	return record.Plan, nil
}

// GetOrCreate returns the plan record for an email, lazily materializing a
// Free record on first explicit fetch.
func (r *Resolver) GetOrCreate(ctx context.Context, email string) (*model.UserPlan, error) {
	email = strings.ToLower(email)
	record, err := r.store.GetPlan(ctx, email)
	if err != nil {
		return nil, errs.NewPersistence(err)
	}
	if record != nil {
		return record, nil
	}
	record, err = r.store.UpsertPlan(ctx, email, model.PlanFree)
	if err != nil {
		return nil, errs.NewPersistence(err)
	}
	return record, nil
}

// Update upserts the tier for an email.
func (r *Resolver) Update(ctx context.Context, email, plan string) (*model.UserPlan, error) {
	p := model.Plan(plan)
	if !p.Valid() {
		return nil, errs.NewValidation("Invalid plan specified")
	}
	record, err := r.store.UpsertPlan(ctx, strings.ToLower(email), p)
	if err != nil {
		return nil, errs.NewPersistence(err)
	}
	return record, nil
}

// CheckInterviewQuota rejects creation once a non-Enterprise recruiter has
// reached the hard ceiling. All statuses count; this is not a rolling window.
func CheckInterviewQuota(plan model.Plan, existing int) error {
	limits := LimitsFor(plan)
	if limits.MaxInterviews == Unlimited {
		return nil
	}
	if existing >= limits.MaxInterviews {
		return errs.NewQuotaExceeded(fmt.Sprintf(
			"Maximum interview limit reached for %s plan (%d interviews)", plan, limits.MaxInterviews))
	}
	return nil
}
