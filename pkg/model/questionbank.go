package model

import (
	"time"

	"github.com/google/uuid"
)

type Category string

const (
	CategoryTechnical   Category = "technical"
	CategoryBehavioral  Category = "behavioral"
	CategorySituational Category = "situational"
	CategoryHR          Category = "hr"
	CategoryGeneral     Category = "general"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryTechnical, CategoryBehavioral, CategorySituational, CategoryHR, CategoryGeneral:
		return true
	}
	return false
}

type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced:
		return true
	}
	return false
}

// BankQuestion is one entry of a question bank. Tips and Keywords always hold
// at least one element after generation.
type BankQuestion struct {
	Question       string   `json:"question"`
	ExpectedAnswer string   `json:"expectedAnswer"`
	Tips           []string `json:"tips"`
	Keywords       []string `json:"keywords"`
}

type Ratings struct {
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}

// QuestionBank is a cached, tiered, category/difficulty-scoped question set
// for a job title. Popularity only increases; TotalQuestions is recomputed on
// every save.
type QuestionBank struct {
	ID             uuid.UUID      `json:"id" db:"id"`
	JobTitle       string         `json:"jobTitle" db:"job_title"`
	Category       Category       `json:"category" db:"category"`
	Difficulty     Difficulty     `json:"difficulty" db:"difficulty"`
	PlanType       Plan           `json:"planType" db:"plan_type"`
	Questions      []BankQuestion `json:"questions" db:"questions"`
	Industry       string         `json:"industry" db:"industry"`
	Skills         []string       `json:"skills" db:"skills"`
	TotalQuestions int            `json:"totalQuestions" db:"total_questions"`
	IsAIGenerated  bool           `json:"isAIGenerated" db:"is_ai_generated"`
	GeneratedAt    time.Time      `json:"generatedAt" db:"generated_at"`
	LastUpdated    time.Time      `json:"lastUpdated" db:"last_updated"`
	Popularity     int64          `json:"popularity" db:"popularity"`
	Ratings        Ratings        `json:"ratings"`
}

// CategoryQuestion is a flattened bank question annotated with its origin,
// served by the by-category query.
type CategoryQuestion struct {
	BankQuestion
	JobTitle   string     `json:"jobTitle"`
	Difficulty Difficulty `json:"difficulty"`
	Source     uuid.UUID  `json:"source"`
}

// JobTitleSummary aggregates bank popularity per distinct job title.
type JobTitleSummary struct {
	Title         string   `json:"title"`
	Popularity    int64    `json:"popularity"`
	QuestionCount int      `json:"questionCount"`
	Categories    []string `json:"categories"`
	HasQuestions  bool     `json:"hasQuestions"`
}

type GenerateBankReq struct {
	JobTitle   string   `json:"jobTitle" binding:"required"`
	Industry   string   `json:"industry"`
	Skills     []string `json:"skills"`
	Email      string   `json:"email"`
	Difficulty string   `json:"difficulty"`
}

type RateBankReq struct {
	Rating int    `json:"rating" binding:"required"`
	Email  string `json:"email"`
}
