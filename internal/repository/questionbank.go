package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Kusumkar-Deeepak/InterviewAI-Nexus/pkg/model"
)

// BankRepository is the concrete implementation for question banks.
type BankRepository struct {
	db *pgxpool.Pool
}

const bankColumns = `
id, job_title, category, difficulty, plan_type, questions, industry, skills,
total_questions, is_ai_generated, generated_at, last_updated, popularity,
ratings_average, ratings_count`

func scanBank(row pgx.Row) (model.QuestionBank, error) {
	var (
		b   model.QuestionBank
		raw []byte
	)
	err := row.Scan(
		&b.ID, &b.JobTitle, &b.Category, &b.Difficulty, &b.PlanType, &raw,
		&b.Industry, &b.Skills, &b.TotalQuestions, &b.IsAIGenerated,
		&b.GeneratedAt, &b.LastUpdated, &b.Popularity,
		&b.Ratings.Average, &b.Ratings.Count,
	)
	if err != nil {
		return model.QuestionBank{}, err
	}
	if err := json.Unmarshal(raw, &b.Questions); err != nil {
		return model.QuestionBank{}, fmt.Errorf("decode bank questions: %w", err)
	}
	return b, nil
}

func collectBanks(rows pgx.Rows) ([]model.QuestionBank, error) {
	defer rows.Close()
	var out []model.QuestionBank
	for rows.Next() {
		b, err := scanBank(rows)
		if err != nil {
			return nil, fmt.Errorf("scan question bank: %w", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func tierNames(tiers []model.Plan) []string {
	out := make([]string, len(tiers))
	for i, t := range tiers {
		out[i] = string(t)
	}
	return out
}

// fuzzyPattern relaxes a multi-word title so "Senior Backend Engineer" also
// matches "Backend Engineer" banks.
func fuzzyPattern(term string) string {
	words := strings.Fields(term)
	escaped := make([]string, len(words))
	for i, w := range words {
		escaped[i] = regexp.QuoteMeta(w)
	}
	return strings.Join(escaped, ".*")
}

// ByJobTitle returns plan-visible banks whose title matches exactly or
// fuzzily, most popular first.
func (r *BankRepository) ByJobTitle(ctx context.Context, jobTitle string, tiers []model.Plan, category, difficulty string, limit int) ([]model.QuestionBank, error) {
	args := []any{regexp.QuoteMeta(jobTitle), fuzzyPattern(jobTitle), tierNames(tiers)}
	q := `SELECT ` + bankColumns + ` FROM question_banks
WHERE (job_title ~* $1 OR job_title ~* $2) AND plan_type = ANY($3)`
	if category != "" {
		args = append(args, category)
		q += fmt.Sprintf(" AND category = $%d", len(args))
	}
	if difficulty != "" {
		args = append(args, difficulty)
		q += fmt.Sprintf(" AND difficulty = $%d", len(args))
	}
	args = append(args, limit)
	q += fmt.Sprintf(" ORDER BY popularity DESC, generated_at DESC LIMIT $%d", len(args))

	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query banks by job title: %w", err)
	}
	return collectBanks(rows)
}

func (r *BankRepository) ByCategory(ctx context.Context, category string, tiers []model.Plan, jobTitle, difficulty string, limit int) ([]model.QuestionBank, error) {
	args := []any{category, tierNames(tiers)}
	q := `SELECT ` + bankColumns + ` FROM question_banks
WHERE category = $1 AND plan_type = ANY($2)`
	if jobTitle != "" {
		args = append(args, regexp.QuoteMeta(jobTitle))
		q += fmt.Sprintf(" AND job_title ~* $%d", len(args))
	}
	if difficulty != "" {
		args = append(args, difficulty)
		q += fmt.Sprintf(" AND difficulty = $%d", len(args))
	}
	args = append(args, limit)
	q += fmt.Sprintf(" ORDER BY popularity DESC, generated_at DESC LIMIT $%d", len(args))

	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query banks by category: %w", err)
	}
	return collectBanks(rows)
}

// Search matches a free-text term against title, industry, skills, and the
// question text itself.
func (r *BankRepository) Search(ctx context.Context, term string, tiers []model.Plan, limit int) ([]model.QuestionBank, error) {
	q := `SELECT ` + bankColumns + ` FROM question_banks
WHERE plan_type = ANY($3)
  AND (job_title ~* $1 OR job_title ~* $2
    OR industry ~* $1
    OR array_to_string(skills, ' ') ~* $1
    OR questions::text ~* $1)
ORDER BY popularity DESC, generated_at DESC
LIMIT $4`
	rows, err := r.db.Query(ctx, q, regexp.QuoteMeta(term), fuzzyPattern(term), tierNames(tiers), limit)
	if err != nil {
		return nil, fmt.Errorf("search banks: %w", err)
	}
	return collectBanks(rows)
}

func (r *BankRepository) Popular(ctx context.Context, tiers []model.Plan, limit int) ([]model.QuestionBank, error) {
	q := `SELECT ` + bankColumns + ` FROM question_banks
WHERE plan_type = ANY($1)
ORDER BY popularity DESC, ratings_average DESC
LIMIT $2`
	rows, err := r.db.Query(ctx, q, tierNames(tiers), limit)
	if err != nil {
		return nil, fmt.Errorf("query popular banks: %w", err)
	}
	return collectBanks(rows)
}

// FindTuple looks up the single bank for one generation cell. Returns
// (nil, nil) when the cell has never been generated.
func (r *BankRepository) FindTuple(ctx context.Context, jobTitle string, category model.Category, difficulty model.Difficulty, plan model.Plan) (*model.QuestionBank, error) {
	q := `SELECT ` + bankColumns + ` FROM question_banks
WHERE lower(job_title) = lower($1) AND category = $2 AND difficulty = $3 AND plan_type = $4`
	b, err := scanBank(r.db.QueryRow(ctx, q, jobTitle, category, difficulty, plan))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan question bank: %w", err)
	}
	return &b, nil
}

func (r *BankRepository) Insert(ctx context.Context, b *model.QuestionBank) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	b.TotalQuestions = len(b.Questions)

	raw, err := json.Marshal(b.Questions)
	if err != nil {
		return fmt.Errorf("encode bank questions: %w", err)
	}

	const q = `
INSERT INTO question_banks (
  id, job_title, category, difficulty, plan_type, questions, industry, skills,
  total_questions, is_ai_generated, generated_at, last_updated, popularity,
  ratings_average, ratings_count
) VALUES ($1, $2, $3, $4, $5, $6::jsonb, $7, $8, $9, $10, now(), now(), $11, 0, 0)
RETURNING generated_at, last_updated`
	err = r.db.QueryRow(ctx, q,
		b.ID, b.JobTitle, b.Category, b.Difficulty, b.PlanType, raw,
		b.Industry, b.Skills, b.TotalQuestions, b.IsAIGenerated, b.Popularity,
	).Scan(&b.GeneratedAt, &b.LastUpdated)
	if err != nil {
		return fmt.Errorf("insert question bank: %w", err)
	}
	return nil
}

// IncrementPopularity bumps the served counter for every given bank in one
// statement. Callers fire this without waiting for the result.
func (r *BankRepository) IncrementPopularity(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	const q = `UPDATE question_banks SET popularity = popularity + 1, last_updated = now() WHERE id = ANY($1)`
	if _, err := r.db.Exec(ctx, q, ids); err != nil {
		return fmt.Errorf("increment bank popularity: %w", err)
	}
	return nil
}

// Rate folds one rating into the running average atomically. Both expressions
// read the pre-update row, so the average uses the old count.
func (r *BankRepository) Rate(ctx context.Context, id uuid.UUID, rating int) (*model.QuestionBank, error) {
	q := `
UPDATE question_banks SET
  ratings_average = (ratings_average * ratings_count + $2) / (ratings_count + 1),
  ratings_count = ratings_count + 1,
  last_updated = now()
WHERE id = $1
RETURNING ` + bankColumns
	b, err := scanBank(r.db.QueryRow(ctx, q, id, rating))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("question bank not found: %w", err)
		}
		return nil, fmt.Errorf("rate question bank: %w", err)
	}
	return &b, nil
}

// DistinctJobTitles aggregates the plan-visible banks per title.
func (r *BankRepository) DistinctJobTitles(ctx context.Context, tiers []model.Plan) ([]model.JobTitleSummary, error) {
	const q = `
SELECT job_title, sum(popularity), sum(total_questions), array_agg(DISTINCT category)
FROM question_banks
WHERE plan_type = ANY($1)
GROUP BY job_title
ORDER BY sum(popularity) DESC`
	rows, err := r.db.Query(ctx, q, tierNames(tiers))
	if err != nil {
		return nil, fmt.Errorf("query bank job titles: %w", err)
	}
	defer rows.Close()

	var out []model.JobTitleSummary
	for rows.Next() {
		var s model.JobTitleSummary
		if err := rows.Scan(&s.Title, &s.Popularity, &s.QuestionCount, &s.Categories); err != nil {
			return nil, fmt.Errorf("scan job title summary: %w", err)
		}
		s.HasQuestions = s.QuestionCount > 0
		out = append(out, s)
	}
	return out, rows.Err()
}
