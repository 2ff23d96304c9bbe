package questionbank

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/Kusumkar-Deeepak/InterviewAI-Nexus/pkg/model"
)

var codeFence = regexp.MustCompile("```json\n?|\n?```")

// stringOrList accepts either a JSON string or an array of strings. Models
// frequently return a bare string where the prompt asked for a list.
type stringOrList []string

func (s *stringOrList) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*s = list
		return nil
	}
	var single string
	if err := json.Unmarshal(data, &single); err != nil {
		return err
	}
	*s = []string{single}
	return nil
}

type rawQuestion struct {
	Question       string       `json:"question"`
	ExpectedAnswer string       `json:"expectedAnswer"`
	Answer         string       `json:"answer"`
	Guidance       string       `json:"guidance"`
	Tips           stringOrList `json:"tips"`
	Keywords       stringOrList `json:"keywords"`
}

// ParseQuestions decodes a model completion into bank questions. The raw text
// may be wrapped in markdown fences; field names drift between expectedAnswer,
// answer, and guidance. Entries with an empty question are dropped and the
// result is capped at count.
func ParseQuestions(raw string, count int) ([]model.BankQuestion, error) {
	clean := codeFence.ReplaceAllString(strings.TrimSpace(raw), "")

	var parsed []rawQuestion
	if err := json.Unmarshal([]byte(clean), &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse generated questions: %w", err)
	}

	questions := make([]model.BankQuestion, 0, len(parsed))
	for _, q := range parsed {
		if q.Question == "" {
			continue
		}
		answer := q.ExpectedAnswer
		if answer == "" {
			answer = q.Answer
		}
		if answer == "" {
			answer = q.Guidance
		}
		questions = append(questions, model.BankQuestion{
			Question:       q.Question,
			ExpectedAnswer: answer,
			Tips:           q.Tips,
			Keywords:       q.Keywords,
		})
	}
	if len(questions) > count {
		questions = questions[:count]
	}
	return questions, nil
}
