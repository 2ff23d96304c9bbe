package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Kusumkar-Deeepak/InterviewAI-Nexus/pkg/model"
)

type PlanRepository struct {
	db *pgxpool.Pool
}

// GetPlan returns (nil, nil) when no plan record exists for the email; a
// missing record means the caller defaults to Free without persisting
// anything.
func (r *PlanRepository) GetPlan(ctx context.Context, email string) (*model.UserPlan, error) {
	const q = `SELECT email, plan, created_at, updated_at FROM user_plans WHERE email = $1`
	var p model.UserPlan
	row := r.db.QueryRow(ctx, q, strings.ToLower(email))
	if err := row.Scan(&p.Email, &p.Plan, &p.CreatedAt, &p.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan user plan: %w", err)
	}
	return &p, nil
}

func (r *PlanRepository) UpsertPlan(ctx context.Context, email string, plan model.Plan) (*model.UserPlan, error) {
	const q = `
INSERT INTO user_plans (email, plan, created_at, updated_at)
VALUES ($1, $2, now(), now())
ON CONFLICT (email) DO UPDATE SET plan = EXCLUDED.plan, updated_at = now()
RETURNING email, plan, created_at, updated_at`
	var p model.UserPlan
	row := r.db.QueryRow(ctx, q, strings.ToLower(email), plan)
	if err := row.Scan(&p.Email, &p.Plan, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, fmt.Errorf("upsert user plan: %w", err)
	}
	return &p, nil
}
