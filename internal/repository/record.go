package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Kusumkar-Deeepak/InterviewAI-Nexus/pkg/model"
)

type RecordRepository struct {
	db *pgxpool.Pool
}

const recordColumns = `
id, interview_link, applicant_name, job_title, company_name, start_time,
end_time, duration, questions, overall_score, feedback, status, created_at`

func scanRecord(row pgx.Row) (model.InterviewRecord, error) {
	var (
		rec model.InterviewRecord
		raw []byte
	)
	err := row.Scan(
		&rec.ID, &rec.InterviewLink, &rec.ApplicantName, &rec.JobTitle,
		&rec.CompanyName, &rec.StartTime, &rec.EndTime, &rec.Duration, &raw,
		&rec.OverallScore, &rec.Feedback, &rec.Status, &rec.CreatedAt,
	)
	if err != nil {
		return model.InterviewRecord{}, err
	}
	if err := json.Unmarshal(raw, &rec.Questions); err != nil {
		return model.InterviewRecord{}, fmt.Errorf("decode record questions: %w", err)
	}
	return rec, nil
}

func (r *RecordRepository) Create(ctx context.Context, rec *model.InterviewRecord) error {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	raw, err := json.Marshal(rec.Questions)
	if err != nil {
		return fmt.Errorf("encode record questions: %w", err)
	}

	const q = `
INSERT INTO interview_records (
  id, interview_link, applicant_name, job_title, company_name, start_time,
  end_time, duration, questions, overall_score, feedback, status, created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9::jsonb, $10, $11, $12, now())
RETURNING created_at`
	err = r.db.QueryRow(ctx, q,
		rec.ID, rec.InterviewLink, rec.ApplicantName, rec.JobTitle,
		rec.CompanyName, rec.StartTime, rec.EndTime, rec.Duration, raw,
		rec.OverallScore, rec.Feedback, rec.Status,
	).Scan(&rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert interview record: %w", err)
	}
	return nil
}

// ListByLink accepts either the full interview link or its trailing slug.
func (r *RecordRepository) ListByLink(ctx context.Context, link string) ([]model.InterviewRecord, error) {
	q := `SELECT ` + recordColumns + ` FROM interview_records
WHERE lower(right(interview_link, length($1::text))) = lower($1) ORDER BY created_at DESC`
	rows, err := r.db.Query(ctx, q, link)
	if err != nil {
		return nil, fmt.Errorf("query records by link: %w", err)
	}
	defer rows.Close()
	return collectRecords(rows)
}

var recordSortColumns = map[string]string{
	"createdAt":    "created_at",
	"startTime":    "start_time",
	"overallScore": "overall_score",
	"jobTitle":     "job_title",
}

// List returns one page of records plus the unpaginated total.
func (r *RecordRepository) List(ctx context.Context, filter model.ListRecordsQuery) ([]model.InterviewRecord, int, error) {
	var (
		conds []string
		args  []any
	)
	addCond := func(cond string, val any) {
		args = append(args, val)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	if filter.Status != "" {
		addCond("status = $%d", filter.Status)
	}
	if filter.JobTitle != "" {
		addCond("job_title ILIKE '%%' || $%d || '%%'", filter.JobTitle)
	}
	if filter.CompanyName != "" {
		addCond("company_name ILIKE '%%' || $%d || '%%'", filter.CompanyName)
	}

	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int
	if err := r.db.QueryRow(ctx, "SELECT count(*) FROM interview_records"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count records: %w", err)
	}

	sortCol, ok := recordSortColumns[filter.SortBy]
	if !ok {
		sortCol = "created_at"
	}
	order := "DESC"
	if strings.EqualFold(filter.SortOrder, "asc") {
		order = "ASC"
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 {
		limit = 10
	}
	args = append(args, limit, (page-1)*limit)
	q := fmt.Sprintf(`SELECT %s FROM interview_records%s ORDER BY %s %s LIMIT $%d OFFSET $%d`,
		recordColumns, where, sortCol, order, len(args)-1, len(args))

	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("query records: %w", err)
	}
	defer rows.Close()

	out, err := collectRecords(rows)
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func collectRecords(rows pgx.Rows) ([]model.InterviewRecord, error) {
	var out []model.InterviewRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
