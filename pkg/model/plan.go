package model

import "time"

type Plan string

const (
	PlanFree       Plan = "Free"
	PlanPro        Plan = "Pro"
	PlanEnterprise Plan = "Enterprise"
)

func (p Plan) Valid() bool {
	switch p {
	case PlanFree, PlanPro, PlanEnterprise:
		return true
	}
	return false
}

// UserPlan maps a recruiter email to a subscription tier. Absence of a row
// implies the Free tier.
type UserPlan struct {
	Email     string    `json:"email" db:"email"`
	Plan      Plan      `json:"plan" db:"plan"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

type GetPlanReq struct {
	Email string `json:"email"`
}

type UpdatePlanReq struct {
	Email string `json:"email" binding:"required"`
	Plan  string `json:"plan" binding:"required"`
}
