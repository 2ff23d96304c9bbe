package model

import (
	"time"

	"github.com/google/uuid"
)

type RecordStatus string

const (
	RecordScheduled  RecordStatus = "scheduled"
	RecordInProgress RecordStatus = "in_progress"
	RecordCompleted  RecordStatus = "completed"
	RecordCancelled  RecordStatus = "cancelled"
)

// RecordQuestion captures one answered question of a completed session.
type RecordQuestion struct {
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	Evaluation string `json:"evaluation"`
	Score      int    `json:"score"`
}

// InterviewRecord is the immutable artifact of a completed or attempted
// session, joined to its Interview by interviewLink.
type InterviewRecord struct {
	ID            uuid.UUID        `json:"id" db:"id"`
	InterviewLink string           `json:"interviewLink" db:"interview_link"`
	ApplicantName string           `json:"applicantName" db:"applicant_name"`
	JobTitle      string           `json:"jobTitle" db:"job_title"`
	CompanyName   string           `json:"companyName" db:"company_name"`
	StartTime     time.Time        `json:"startTime" db:"start_time"`
	EndTime       time.Time        `json:"endTime" db:"end_time"`
	Duration      int              `json:"duration" db:"duration"`
	Questions     []RecordQuestion `json:"questions"`
	OverallScore  int              `json:"overallScore" db:"overall_score"`
	Feedback      string           `json:"feedback" db:"feedback"`
	Status        RecordStatus     `json:"status" db:"status"`
	CreatedAt     time.Time        `json:"createdAt" db:"created_at"`
}

type RecordResponse struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Feedback string `json:"feedback"`
}

type CreateRecordReq struct {
	InterviewLink string           `json:"interviewLink" binding:"required"`
	Status        string           `json:"status"`
	Score         int              `json:"score"`
	Responses     []RecordResponse `json:"responses"`
	Duration      int              `json:"duration"`
	CompletedAt   string           `json:"completedAt"`
}

type ListRecordsQuery struct {
	Page        int    `form:"page,default=1"`
	Limit       int    `form:"limit,default=10"`
	SortBy      string `form:"sortBy,default=createdAt"`
	SortOrder   string `form:"sortOrder,default=desc"`
	Status      string `form:"status"`
	JobTitle    string `form:"jobTitle"`
	CompanyName string `form:"companyName"`
}
