package model

import (
	"time"

	"github.com/google/uuid"
)

type InterviewStatus string

const (
	StatusNotStarted InterviewStatus = "not_started"
	StatusInProgress InterviewStatus = "in_progress"
	StatusCompleted  InterviewStatus = "completed"
	StatusExpired    InterviewStatus = "expired"
)

func (s InterviewStatus) Valid() bool {
	switch s {
	case StatusNotStarted, StatusInProgress, StatusCompleted, StatusExpired:
		return true
	}
	return false
}

type InterviewType string

const (
	TypeBasic        InterviewType = "basic"
	TypeIntermediate InterviewType = "intermediate"
	TypeHard         InterviewType = "hard"
)

func (t InterviewType) Valid() bool {
	switch t {
	case TypeBasic, TypeIntermediate, TypeHard:
		return true
	}
	return false
}

// Interview is a scheduled, link-addressable AI interview session owned by a
// recruiter. AccessToken is immutable after creation and never derivable from
// the link.
type Interview struct {
	ID                   uuid.UUID       `json:"id" db:"id"`
	ApplicantName        string          `json:"applicantName" db:"applicant_name"`
	CompanyName          string          `json:"companyName" db:"company_name"`
	JobTitle             string          `json:"jobTitle" db:"job_title"`
	JobDescription       string          `json:"jobDescription" db:"job_description"`
	ResumeText           string          `json:"resumeText" db:"resume_text"`
	AdditionalNotes      string          `json:"additionalNotes" db:"additional_notes"`
	InterviewLink        string          `json:"interviewLink" db:"interview_link"`
	AccessToken          string          `json:"accessToken,omitempty" db:"access_token"`
	InterviewDate        time.Time       `json:"interviewDate" db:"interview_date"`
	StartTime            string          `json:"startTime" db:"start_time"`
	EndTime              string          `json:"endTime" db:"end_time"`
	InterviewType        InterviewType   `json:"interviewType" db:"interview_type"`
	Skills               []string        `json:"skills" db:"skills"`
	AIGeneratedQuestions []string        `json:"aiGeneratedQuestions" db:"ai_generated_questions"`
	CustomQuestions      []string        `json:"customQuestions" db:"custom_questions"`
	Status               InterviewStatus `json:"status" db:"status"`
	Score                int             `json:"score" db:"score"`
	CompletedAt          *time.Time      `json:"completedAt,omitempty" db:"completed_at"`
	CreatedBy            string          `json:"createdBy" db:"created_by"`
	CreatorEmail         string          `json:"creatorEmail" db:"creator_email"`
	CreatedAt            time.Time       `json:"createdAt" db:"created_at"`
}

type CreateInterviewReq struct {
	ApplicantName   string   `json:"applicantName" binding:"required"`
	CompanyName     string   `json:"companyName" binding:"required"`
	JobTitle        string   `json:"jobTitle" binding:"required"`
	JobDescription  string   `json:"jobDescription" binding:"required"`
	ResumeText      string   `json:"resumeText" binding:"required"`
	AdditionalNotes string   `json:"additionalNotes"`
	InterviewDate   string   `json:"interviewDate" binding:"required"`
	StartTime       string   `json:"startTime" binding:"required"`
	EndTime         string   `json:"endTime" binding:"required"`
	Email           string   `json:"email" binding:"required"`
	UserID          string   `json:"userId" binding:"required"`
	InterviewType   string   `json:"interviewType" binding:"required"`
	Skills          []string `json:"skills" binding:"required"`
}

// ListInterviewsQuery filters and sorts a recruiter's interviews.
type ListInterviewsQuery struct {
	Email         string `form:"email"`
	Status        string `form:"status"`
	JobTitle      string `form:"jobTitle"`
	ApplicantName string `form:"applicantName"`
	CompanyName   string `form:"companyName"`
	InterviewType string `form:"interviewType"`
	SortBy        string `form:"sortBy,default=createdAt"`
	SortOrder     string `form:"sortOrder,default=desc"`
}

type VerifyAccessReq struct {
	InterviewLink string `json:"interviewLink" binding:"required"`
	AccessToken   string `json:"accessToken" binding:"required"`
}

type UpdateQuestionsReq struct {
	Action   string `json:"action" binding:"required,oneof=add delete"`
	Question string `json:"question" binding:"required"`
}

type UpdateStatusReq struct {
	Status InterviewStatus `json:"status" binding:"required"`
}

type CompleteInterviewReq struct {
	Score int `json:"score" binding:"min=0,max=100"`
}

// UpdateInterviewReq is the recruiter-facing full update. Pointer fields are
// only written when present.
type UpdateInterviewReq struct {
	ApplicantName   *string   `json:"applicantName,omitempty"`
	CompanyName     *string   `json:"companyName,omitempty"`
	JobTitle        *string   `json:"jobTitle,omitempty"`
	JobDescription  *string   `json:"jobDescription,omitempty"`
	ResumeText      *string   `json:"resumeText,omitempty"`
	AdditionalNotes *string   `json:"additionalNotes,omitempty"`
	InterviewDate   *string   `json:"interviewDate,omitempty"`
	StartTime       *string   `json:"startTime,omitempty"`
	EndTime         *string   `json:"endTime,omitempty"`
	InterviewType   *string   `json:"interviewType,omitempty"`
	Skills          *[]string `json:"skills,omitempty"`
}
