package questionbank

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/Kusumkar-Deeepak/InterviewAI-Nexus/internal/plans"
	"github.com/Kusumkar-Deeepak/InterviewAI-Nexus/internal/schedule"
	"github.com/Kusumkar-Deeepak/InterviewAI-Nexus/pkg/model"
)

// AIClient is the completion backend the generator talks to. Retries and rate
// limiting live behind this interface.
type AIClient interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

var categoryPrompts = map[model.Category]string{
	model.CategoryTechnical:   "technical skills, programming concepts, tools, frameworks, and domain-specific knowledge",
	model.CategoryBehavioral:  "past experiences, teamwork, leadership, problem-solving approach, and interpersonal skills using STAR method",
	model.CategorySituational: "hypothetical scenarios, decision-making, prioritization, and how they would handle specific workplace situations",
	model.CategoryHR:          "company culture fit, career goals, motivation, salary expectations, and general professional background",
}

var difficultyDescriptions = map[model.Difficulty]string{
	model.DifficultyBeginner:     "entry-level, basic concepts, fundamental knowledge, and simple scenarios",
	model.DifficultyIntermediate: "mid-level, applied knowledge, moderate complexity, and real-world applications",
	model.DifficultyAdvanced:     "senior-level, complex scenarios, leadership situations, and strategic thinking",
}

type Generator struct {
	ai       AIClient
	disabled bool
	logger   *zap.Logger
}

func NewGenerator(ai AIClient, disabled bool, logger *zap.Logger) *Generator {
	return &Generator{ai: ai, disabled: disabled, logger: logger}
}

// Generate produces a full question set for one (jobTitle, category,
// difficulty, plan) cell. It never returns an error: any failure along the AI
// path, including the kill switch, a throttled backend, unparseable output, or
// too few usable questions, degrades to the curated fallback pool so callers
// always receive exactly the plan's question count.
func (g *Generator) Generate(ctx context.Context, jobTitle string, category model.Category, difficulty model.Difficulty, plan model.Plan, industry string, skills []string) ([]model.BankQuestion, bool) {
	count := plans.GenerationCount(plan)

	if g.disabled || g.ai == nil {
		g.logger.Info("AI generation disabled, using fallback questions",
			zap.String("jobTitle", jobTitle),
			zap.String("category", string(category)))
		return FallbackQuestions(jobTitle, category, difficulty, count), false
	}

	prompt := buildBankPrompt(jobTitle, category, difficulty, plan, industry, skills, count)

	raw, err := g.ai.Generate(ctx, prompt)
	if err != nil {
		g.logger.Warn("question generation failed, using fallback",
			zap.String("jobTitle", jobTitle),
			zap.String("category", string(category)),
			zap.String("difficulty", string(difficulty)),
			zap.Error(err))
		return FallbackQuestions(jobTitle, category, difficulty, count), false
	}

	questions, err := ParseQuestions(raw, count)
	if err != nil {
		g.logger.Warn("failed to parse generated questions, using fallback", zap.Error(err))
		return FallbackQuestions(jobTitle, category, difficulty, count), false
	}

	// Accept a slightly short batch, but not a mostly-empty one.
	if float64(len(questions)) < math.Min(float64(count)*0.7, 10) {
		g.logger.Warn("insufficient valid questions generated, using fallback",
			zap.Int("got", len(questions)),
			zap.Int("want", count))
		return FallbackQuestions(jobTitle, category, difficulty, count), false
	}
	return questions, true
}

func buildBankPrompt(jobTitle string, category model.Category, difficulty model.Difficulty, plan model.Plan, industry string, skills []string, count int) string {
	if industry == "" {
		industry = "General"
	}
	skillList := "General"
	if len(skills) > 0 {
		skillList = strings.Join(skills, ", ")
	}

	return fmt.Sprintf(`Generate %d %s interview questions for a %s position.

Context:
- Job Title: %s
- Category: %s (%s)
- Difficulty: %s (%s)
- Plan Type: %s
- Industry: %s
- Required Skills: %s

Requirements:
1. Questions should be specific to %s role
2. Focus on %s
3. Appropriate for %s level candidates
4. Include practical, real-world scenarios
5. Ensure questions assess relevant skills and competencies

For each question, provide:
- A clear, well-structured interview question
- Brief guidance on what constitutes a good answer
- 2-3 specific tips for answering effectively
- Relevant keywords/concepts being assessed

Return as a JSON array where each object has this exact structure:
{
  "question": "The interview question",
  "expectedAnswer": "Brief guidance on good answer components",
  "tips": ["Tip 1", "Tip 2", "Tip 3"],
  "keywords": ["keyword1", "keyword2", "keyword3"]
}

Important: Return ONLY the JSON array, no additional text or formatting.`,
		count, category, jobTitle,
		jobTitle,
		category, categoryPrompts[category],
		difficulty, difficultyDescriptions[difficulty],
		plan,
		industry,
		skillList,
		jobTitle,
		categoryPrompts[category],
		difficulty)
}

// Seed-question generation for newly scheduled interviews.

var questionsPerMinute = map[model.InterviewType]float64{
	model.TypeBasic:        0.15,
	model.TypeIntermediate: 0.20,
	model.TypeHard:         0.25,
}

// numberedLine drops list markers the model emits despite instructions.
var numberedLine = regexp.MustCompile(`^[0-9.\-]`)

// SeedQuestionCount scales question volume with interview length: roughly one
// question every four to seven minutes depending on difficulty, clamped to
// [5, 25].
func SeedQuestionCount(durationMinutes int, interviewType model.InterviewType) int {
	count := int(math.Floor(float64(durationMinutes) * questionsPerMinute[interviewType]))
	if count < 5 {
		return 5
	}
	if count > 25 {
		return 25
	}
	return count
}

// SeedQuestions generates the opening question list for an interview. It is
// best effort: on any failure it returns an empty slice and the interview is
// created without AI questions.
func (g *Generator) SeedQuestions(ctx context.Context, iv *model.CreateInterviewReq) []string {
	if g.disabled || g.ai == nil {
		return nil
	}

	durationMinutes, err := schedule.Duration(iv.StartTime, iv.EndTime)
	if err != nil {
		g.logger.Warn("cannot derive interview duration", zap.Error(err))
		return nil
	}
	count := SeedQuestionCount(durationMinutes, model.InterviewType(iv.InterviewType))

	raw, err := g.ai.Generate(ctx, buildSeedPrompt(iv, durationMinutes, count))
	if err != nil {
		g.logger.Warn("seed question generation failed",
			zap.String("jobTitle", iv.JobTitle),
			zap.Error(err))
		return nil
	}

	questions := make([]string, 0, count)
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || numberedLine.MatchString(line) {
			continue
		}
		questions = append(questions, line)
		if len(questions) == count {
			break
		}
	}
	return questions
}

func buildSeedPrompt(iv *model.CreateInterviewReq, durationMinutes, count int) string {
	var mix string
	switch model.InterviewType(iv.InterviewType) {
	case model.TypeBasic:
		mix = "- 40% technical\n- 40% behavioral\n- 20% situational"
	case model.TypeIntermediate:
		mix = "- 50% technical\n- 30% behavioral\n- 20% problem-solving"
	default:
		mix = "- 60% advanced technical\n- 20% system design\n- 20% leadership"
	}

	jobDescription := iv.JobDescription
	if len(jobDescription) > 1000 {
		jobDescription = jobDescription[:1000]
	}
	background := ""
	if iv.ResumeText != "" {
		resume := iv.ResumeText
		if len(resume) > 500 {
			resume = resume[:500]
		}
		background = "Candidate Background: " + resume
	}

	return fmt.Sprintf(`Generate %d interview questions for:
Position: %s at %s
Level: %s
Duration: %d minutes
Skills: %s
Job Description: %s
%s

Include:
%s

Generate only the questions, one per line, without numbering.`,
		count, iv.JobTitle, iv.CompanyName, iv.InterviewType, durationMinutes,
		strings.Join(iv.Skills, ", "), jobDescription, background, mix)
}
