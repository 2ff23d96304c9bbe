package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Kusumkar-Deeepak/InterviewAI-Nexus/pkg/model"
)

// InterviewRepository is the concrete implementation for interviews.
type InterviewRepository struct {
	db *pgxpool.Pool
}

const interviewColumns = `
id, applicant_name, company_name, job_title, job_description, resume_text,
additional_notes, interview_link, access_token, interview_date, start_time,
end_time, interview_type, skills, ai_generated_questions, custom_questions,
status, score, completed_at, created_by, creator_email, created_at`

func scanInterview(row pgx.Row) (model.Interview, error) {
	var iv model.Interview
	err := row.Scan(
		&iv.ID, &iv.ApplicantName, &iv.CompanyName, &iv.JobTitle, &iv.JobDescription,
		&iv.ResumeText, &iv.AdditionalNotes, &iv.InterviewLink, &iv.AccessToken,
		&iv.InterviewDate, &iv.StartTime, &iv.EndTime, &iv.InterviewType, &iv.Skills,
		&iv.AIGeneratedQuestions, &iv.CustomQuestions, &iv.Status, &iv.Score,
		&iv.CompletedAt, &iv.CreatedBy, &iv.CreatorEmail, &iv.CreatedAt,
	)
	return iv, err
}

func (r *InterviewRepository) Create(ctx context.Context, iv *model.Interview) error {
	const q = `
INSERT INTO interviews (
  id, applicant_name, company_name, job_title, job_description, resume_text,
  additional_notes, interview_link, access_token, interview_date, start_time,
  end_time, interview_type, skills, ai_generated_questions, custom_questions,
  status, score, created_by, creator_email, created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, now())
RETURNING created_at`
	err := r.db.QueryRow(ctx, q,
		iv.ID, iv.ApplicantName, iv.CompanyName, iv.JobTitle, iv.JobDescription,
		iv.ResumeText, iv.AdditionalNotes, iv.InterviewLink, iv.AccessToken,
		iv.InterviewDate, iv.StartTime, iv.EndTime, iv.InterviewType, iv.Skills,
		iv.AIGeneratedQuestions, iv.CustomQuestions, iv.Status, iv.Score,
		iv.CreatedBy, iv.CreatorEmail,
	).Scan(&iv.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert interview: %w", err)
	}
	return nil
}

func (r *InterviewRepository) GetByID(ctx context.Context, id uuid.UUID) (model.Interview, error) {
	q := `SELECT ` + interviewColumns + ` FROM interviews WHERE id = $1`
	iv, err := scanInterview(r.db.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Interview{}, fmt.Errorf("interview not found: %w", err)
		}
		return model.Interview{}, fmt.Errorf("scan interview by id: %w", err)
	}
	return iv, nil
}

// GetByLinkToken looks up the exact (link, token) pair. A wrong token and an
// unknown link are indistinguishable to the caller.
func (r *InterviewRepository) GetByLinkToken(ctx context.Context, link, token string) (model.Interview, error) {
	q := `SELECT ` + interviewColumns + ` FROM interviews WHERE interview_link = $1 AND access_token = $2`
	iv, err := scanInterview(r.db.QueryRow(ctx, q, link, token))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Interview{}, fmt.Errorf("interview not found: %w", err)
		}
		return model.Interview{}, fmt.Errorf("scan interview by link: %w", err)
	}
	return iv, nil
}

// GetByLinkSlug matches the trailing slug of the interview link, case
// insensitive.
func (r *InterviewRepository) GetByLinkSlug(ctx context.Context, slug string) (model.Interview, error) {
	q := `SELECT ` + interviewColumns + ` FROM interviews
WHERE lower(right(interview_link, length($1::text))) = lower($1)`
	iv, err := scanInterview(r.db.QueryRow(ctx, q, slug))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Interview{}, fmt.Errorf("interview not found: %w", err)
		}
		return model.Interview{}, fmt.Errorf("scan interview by slug: %w", err)
	}
	return iv, nil
}

var interviewSortColumns = map[string]string{
	"createdAt":     "created_at",
	"interviewDate": "interview_date",
	"applicantName": "applicant_name",
	"companyName":   "company_name",
	"jobTitle":      "job_title",
	"status":        "status",
}

func (r *InterviewRepository) List(ctx context.Context, filter model.ListInterviewsQuery) ([]model.Interview, error) {
	var (
		conds []string
		args  []any
	)
	addCond := func(cond string, val any) {
		args = append(args, val)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if filter.Email != "" {
		addCond("creator_email = $%d", strings.ToLower(filter.Email))
	}
	if filter.Status != "" {
		addCond("status = $%d", filter.Status)
	}
	if filter.JobTitle != "" {
		addCond("job_title ILIKE '%%' || $%d || '%%'", filter.JobTitle)
	}
	if filter.ApplicantName != "" {
		addCond("applicant_name ILIKE '%%' || $%d || '%%'", filter.ApplicantName)
	}
	if filter.CompanyName != "" {
		addCond("company_name ILIKE '%%' || $%d || '%%'", filter.CompanyName)
	}
	if filter.InterviewType != "" {
		addCond("interview_type = $%d", filter.InterviewType)
	}

	sortCol, ok := interviewSortColumns[filter.SortBy]
	if !ok {
		sortCol = "created_at"
	}
	order := "DESC"
	if strings.EqualFold(filter.SortOrder, "asc") {
		order = "ASC"
	}

	q := `SELECT ` + interviewColumns + ` FROM interviews`
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	q += fmt.Sprintf(" ORDER BY %s %s", sortCol, order)

	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query interviews: %w", err)
	}
	defer rows.Close()

	var out []model.Interview
	for rows.Next() {
		iv, err := scanInterview(rows)
		if err != nil {
			return nil, fmt.Errorf("scan interview: %w", err)
		}
		out = append(out, iv)
	}
	return out, rows.Err()
}

// CountByCreator counts every interview a recruiter has ever created,
// regardless of status. Quota checks depend on this.
func (r *InterviewRepository) CountByCreator(ctx context.Context, email string) (int, error) {
	const q = `SELECT count(*) FROM interviews WHERE creator_email = $1`
	var n int
	if err := r.db.QueryRow(ctx, q, strings.ToLower(email)).Scan(&n); err != nil {
		return 0, fmt.Errorf("count interviews: %w", err)
	}
	return n, nil
}

func (r *InterviewRepository) Update(ctx context.Context, iv model.Interview) error {
	const q = `
UPDATE interviews SET
  applicant_name = $2, company_name = $3, job_title = $4, job_description = $5,
  resume_text = $6, additional_notes = $7, interview_date = $8, start_time = $9,
  end_time = $10, interview_type = $11, skills = $12
WHERE id = $1`
	tag, err := r.db.Exec(ctx, q,
		iv.ID, iv.ApplicantName, iv.CompanyName, iv.JobTitle, iv.JobDescription,
		iv.ResumeText, iv.AdditionalNotes, iv.InterviewDate, iv.StartTime,
		iv.EndTime, iv.InterviewType, iv.Skills,
	)
	if err != nil {
		return fmt.Errorf("update interview: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("interview not found: %w", pgx.ErrNoRows)
	}
	return nil
}

func (r *InterviewRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.InterviewStatus) error {
	const q = `UPDATE interviews SET status = $2 WHERE id = $1`
	tag, err := r.db.Exec(ctx, q, id, status)
	if err != nil {
		return fmt.Errorf("update interview status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("interview not found: %w", pgx.ErrNoRows)
	}
	return nil
}

func (r *InterviewRepository) UpdateStatusByLinkSlug(ctx context.Context, slug string, status model.InterviewStatus) (model.Interview, error) {
	q := `
UPDATE interviews SET status = $2
WHERE lower(right(interview_link, length($1::text))) = lower($1)
RETURNING ` + interviewColumns
	iv, err := scanInterview(r.db.QueryRow(ctx, q, slug, status))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Interview{}, fmt.Errorf("interview not found: %w", err)
		}
		return model.Interview{}, fmt.Errorf("update interview status by slug: %w", err)
	}
	return iv, nil
}

func (r *InterviewRepository) CompleteByLinkSlug(ctx context.Context, slug string, score int) (model.Interview, error) {
	q := `
UPDATE interviews SET status = 'completed', score = $2, completed_at = now()
WHERE lower(right(interview_link, length($1::text))) = lower($1)
RETURNING ` + interviewColumns
	iv, err := scanInterview(r.db.QueryRow(ctx, q, slug, score))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Interview{}, fmt.Errorf("interview not found: %w", err)
		}
		return model.Interview{}, fmt.Errorf("complete interview: %w", err)
	}
	return iv, nil
}

// UpdateQuestions replaces both question lists in one statement.
func (r *InterviewRepository) UpdateQuestions(ctx context.Context, id uuid.UUID, ai, custom []string) error {
	const q = `UPDATE interviews SET ai_generated_questions = $2, custom_questions = $3 WHERE id = $1`
	tag, err := r.db.Exec(ctx, q, id, ai, custom)
	if err != nil {
		return fmt.Errorf("update interview questions: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("interview not found: %w", pgx.ErrNoRows)
	}
	return nil
}

// ListNotStartedByCreator returns candidates for the expiry sweep.
func (r *InterviewRepository) ListNotStartedByCreator(ctx context.Context, email string) ([]model.Interview, error) {
	q := `SELECT ` + interviewColumns + ` FROM interviews
WHERE creator_email = $1 AND status = 'not_started'`
	rows, err := r.db.Query(ctx, q, strings.ToLower(email))
	if err != nil {
		return nil, fmt.Errorf("query not started interviews: %w", err)
	}
	defer rows.Close()

	var out []model.Interview
	for rows.Next() {
		iv, err := scanInterview(rows)
		if err != nil {
			return nil, fmt.Errorf("scan interview: %w", err)
		}
		out = append(out, iv)
	}
	return out, rows.Err()
}

// BulkExpire flips the given interviews to expired and reports how many rows
// actually changed.
func (r *InterviewRepository) BulkExpire(ctx context.Context, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	const q = `UPDATE interviews SET status = 'expired' WHERE id = ANY($1) AND status = 'not_started'`
	tag, err := r.db.Exec(ctx, q, ids)
	if err != nil {
		return 0, fmt.Errorf("bulk expire interviews: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *InterviewRepository) DistinctJobTitlesByCreator(ctx context.Context, email string) ([]string, error) {
	const q = `SELECT DISTINCT job_title FROM interviews WHERE creator_email = $1 ORDER BY job_title`
	rows, err := r.db.Query(ctx, q, strings.ToLower(email))
	if err != nil {
		return nil, fmt.Errorf("query interview job titles: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var title string
		if err := rows.Scan(&title); err != nil {
			return nil, fmt.Errorf("scan job title: %w", err)
		}
		out = append(out, title)
	}
	return out, rows.Err()
}
