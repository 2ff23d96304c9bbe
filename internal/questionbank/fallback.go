package questionbank

import (
	"fmt"
	"strings"

	"github.com/Kusumkar-Deeepak/InterviewAI-Nexus/pkg/model"
)

// fallbackEntry is a curated question template. The {jobTitle} marker is
// substituted at generation time; templates without the marker are served
// verbatim.
type fallbackEntry struct {
	question       string
	expectedAnswer string
	tips           []string
	keywords       []string
}

// FallbackQuestions builds exactly count questions from the curated pool for
// the given category and difficulty. It never fails: unknown categories fall
// back to behavioral, unknown difficulties to beginner, and when count
// exceeds the pool the pool is cycled with a scenario suffix so repeated
// entries stay distinguishable.
func FallbackQuestions(jobTitle string, category model.Category, difficulty model.Difficulty, count int) []model.BankQuestion {
	byDifficulty, ok := fallbackPool[category]
	if !ok {
		byDifficulty = fallbackPool[model.CategoryBehavioral]
	}
	pool, ok := byDifficulty[difficulty]
	if !ok {
		pool = byDifficulty[model.DifficultyBeginner]
	}

	questions := make([]model.BankQuestion, 0, count)
	for i := 0; i < count; i++ {
		base := pool[i%len(pool)]

		cycle := i / len(pool)
		question := strings.ReplaceAll(base.question, "{jobTitle}", jobTitle)
		if cycle > 0 {
			question += fmt.Sprintf(" (Scenario %d)", cycle+1)
		}

		keywords := make([]string, 0, len(base.keywords)+2)
		keywords = append(keywords, base.keywords...)
		keywords = append(keywords, strings.ToLower(jobTitle), string(difficulty))

		questions = append(questions, model.BankQuestion{
			Question:       question,
			ExpectedAnswer: base.expectedAnswer,
			Tips:           append([]string(nil), base.tips...),
			Keywords:       keywords,
		})
	}
	return questions
}

var fallbackPool = map[model.Category]map[model.Difficulty][]fallbackEntry{
	model.CategoryTechnical: {
		model.DifficultyBeginner: {
			{
				question:       "What are the fundamental skills required for a {jobTitle} role?",
				expectedAnswer: "Should mention relevant technologies, frameworks, and core competencies",
				tips:           []string{"Be specific about your experience", "Mention recent projects or coursework", "Show enthusiasm for learning"},
				keywords:       []string{"technical skills", "fundamentals", "experience"},
			},
			{
				question:       "Explain a basic concept in your field that relates to {jobTitle}.",
				expectedAnswer: "Should demonstrate understanding of core concepts with clear explanation",
				tips:           []string{"Use simple language", "Provide examples", "Show practical understanding"},
				keywords:       []string{"concepts", "explanation", "understanding"},
			},
			{
				question:       "What tools and technologies do you use for {jobTitle} work?",
				expectedAnswer: "Should mention relevant tools, software, and technologies specific to the role",
				tips:           []string{"Mention specific tools you've used", "Explain how you use them", "Show continuous learning"},
				keywords:       []string{"tools", "technologies", "software"},
			},
			{
				question:       "How do you stay updated with the latest trends in {jobTitle}?",
				expectedAnswer: "Should show commitment to continuous learning and professional development",
				tips:           []string{"Mention specific resources", "Show genuine interest", "Discuss recent learning"},
				keywords:       []string{"learning", "trends", "professional development"},
			},
			{
				question:       "Describe your typical workflow when starting a new {jobTitle} project.",
				expectedAnswer: "Should demonstrate systematic approach and understanding of project lifecycle",
				tips:           []string{"Show organized thinking", "Mention planning steps", "Include quality checks"},
				keywords:       []string{"workflow", "project management", "process"},
			},
		},
		model.DifficultyIntermediate: {
			{
				question:       "Describe a challenging technical problem you solved in a previous {jobTitle} role.",
				expectedAnswer: "Should use STAR method and demonstrate problem-solving approach",
				tips:           []string{"Structure your answer clearly", "Highlight your specific contributions", "Mention the impact"},
				keywords:       []string{"problem-solving", "technical challenges", "experience"},
			},
			{
				question:       "How do you approach debugging and troubleshooting in {jobTitle}?",
				expectedAnswer: "Should demonstrate systematic debugging methodology and tools knowledge",
				tips:           []string{"Mention specific debugging tools", "Show logical approach", "Include prevention strategies"},
				keywords:       []string{"debugging", "troubleshooting", "methodology"},
			},
			{
				question:       "Explain how you would optimize performance in a {jobTitle} context.",
				expectedAnswer: "Should show understanding of performance bottlenecks and optimization techniques",
				tips:           []string{"Mention specific optimization techniques", "Discuss monitoring and measurement", "Show analytical thinking"},
				keywords:       []string{"performance", "optimization", "analysis"},
			},
			{
				question:       "How do you ensure code quality and maintainability in {jobTitle} projects?",
				expectedAnswer: "Should demonstrate knowledge of best practices and quality assurance",
				tips:           []string{"Mention specific practices and tools", "Discuss code review processes", "Show attention to detail"},
				keywords:       []string{"code quality", "maintainability", "best practices"},
			},
		},
		model.DifficultyAdvanced: {
			{
				question:       "How would you architect a scalable solution for [specific scenario] in a {jobTitle} context?",
				expectedAnswer: "Should demonstrate architectural thinking and scalability considerations",
				tips:           []string{"Consider trade-offs", "Discuss scalability factors", "Mention monitoring and maintenance"},
				keywords:       []string{"architecture", "scalability", "system design"},
			},
			{
				question:       "Describe how you would lead a technical migration or major refactoring project.",
				expectedAnswer: "Should show leadership skills and technical project management",
				tips:           []string{"Discuss risk assessment", "Mention stakeholder communication", "Show strategic thinking"},
				keywords:       []string{"migration", "refactoring", "technical leadership"},
			},
			{
				question:       "How do you evaluate and choose between different technical solutions for {jobTitle}?",
				expectedAnswer: "Should demonstrate decision-making framework and technical judgment",
				tips:           []string{"Mention evaluation criteria", "Discuss pros and cons", "Show analytical approach"},
				keywords:       []string{"technical decisions", "evaluation", "judgment"},
			},
		},
	},
	model.CategoryBehavioral: {
		model.DifficultyBeginner: {
			{
				question:       "Tell me about yourself and why you want to work as a {jobTitle}.",
				expectedAnswer: "Should connect background to role requirements and show genuine interest",
				tips:           []string{"Keep it concise and relevant", "Focus on professional background", "Show enthusiasm"},
				keywords:       []string{"background", "motivation", "career goals"},
			},
			{
				question:       "Describe a time when you had to learn something new quickly.",
				expectedAnswer: "Should demonstrate learning agility and adaptability",
				tips:           []string{"Use STAR method", "Show learning strategy", "Highlight application"},
				keywords:       []string{"learning", "adaptability", "growth"},
			},
			{
				question:       "Tell me about a time you worked effectively in a team.",
				expectedAnswer: "Should demonstrate collaboration and teamwork skills",
				tips:           []string{"Focus on your specific contributions", "Show collaboration skills", "Highlight team success"},
				keywords:       []string{"teamwork", "collaboration", "communication"},
			},
			{
				question:       "Describe a challenge you faced and how you overcame it.",
				expectedAnswer: "Should show problem-solving approach and resilience",
				tips:           []string{"Use STAR method", "Focus on your actions", "Show positive outcome"},
				keywords:       []string{"challenge", "problem-solving", "resilience"},
			},
		},
		model.DifficultyIntermediate: {
			{
				question:       "Describe a time when you had to work with a difficult team member.",
				expectedAnswer: "Should demonstrate interpersonal skills and conflict resolution",
				tips:           []string{"Use STAR method", "Focus on your actions", "Highlight positive outcome"},
				keywords:       []string{"teamwork", "conflict resolution", "interpersonal skills"},
			},
			{
				question:       "Tell me about a time you had to manage competing priorities.",
				expectedAnswer: "Should demonstrate time management and prioritization skills",
				tips:           []string{"Explain your prioritization strategy", "Show decision-making process", "Highlight results"},
				keywords:       []string{"prioritization", "time management", "decision making"},
			},
			{
				question:       "Describe a situation where you had to adapt to significant changes.",
				expectedAnswer: "Should show flexibility and change management skills",
				tips:           []string{"Show positive attitude", "Mention adaptation strategies", "Highlight successful outcomes"},
				keywords:       []string{"adaptability", "change management", "flexibility"},
			},
		},
		model.DifficultyAdvanced: {
			{
				question:       "Tell me about a time you led a team through a significant change or challenge.",
				expectedAnswer: "Should demonstrate leadership skills and change management abilities",
				tips:           []string{"Focus on leadership actions", "Discuss communication strategies", "Highlight team outcomes"},
				keywords:       []string{"leadership", "change management", "team leadership"},
			},
			{
				question:       "Describe how you've mentored or developed junior team members.",
				expectedAnswer: "Should show coaching and development skills",
				tips:           []string{"Give specific examples", "Show empathy and patience", "Highlight mentee success"},
				keywords:       []string{"mentoring", "development", "coaching"},
			},
			{
				question:       "Tell me about a time you had to make a difficult decision with limited information.",
				expectedAnswer: "Should demonstrate decision-making under uncertainty",
				tips:           []string{"Explain your thought process", "Show risk assessment", "Highlight decision rationale"},
				keywords:       []string{"decision making", "uncertainty", "risk assessment"},
			},
		},
	},
	model.CategorySituational: {
		model.DifficultyBeginner: {
			{
				question:       "How would you prioritize tasks if given multiple assignments as a {jobTitle}?",
				expectedAnswer: "Should show understanding of prioritization frameworks and time management",
				tips:           []string{"Mention specific prioritization methods", "Consider stakeholder impact", "Show systematic thinking"},
				keywords:       []string{"prioritization", "time management", "organization"},
			},
			{
				question:       "What would you do if you didn't understand a requirement in a {jobTitle} project?",
				expectedAnswer: "Should show proactive communication and problem-solving approach",
				tips:           []string{"Show initiative to clarify", "Mention documentation", "Ask relevant questions"},
				keywords:       []string{"communication", "clarification", "proactive"},
			},
			{
				question:       "How would you handle a situation where you made a mistake in your {jobTitle} work?",
				expectedAnswer: "Should demonstrate accountability and learning approach",
				tips:           []string{"Take responsibility", "Focus on solutions", "Show learning mindset"},
				keywords:       []string{"accountability", "mistake handling", "learning"},
			},
		},
		model.DifficultyIntermediate: {
			{
				question:       "What would you do if you discovered a significant error in a project you delivered?",
				expectedAnswer: "Should demonstrate accountability and problem-solving approach",
				tips:           []string{"Take responsibility", "Focus on solution steps", "Mention prevention strategies"},
				keywords:       []string{"accountability", "error handling", "problem-solving"},
			},
			{
				question:       "How would you handle conflicting feedback from different stakeholders?",
				expectedAnswer: "Should show diplomatic communication and stakeholder management",
				tips:           []string{"Show active listening", "Seek common ground", "Propose solutions"},
				keywords:       []string{"stakeholder management", "communication", "conflict resolution"},
			},
			{
				question:       "What would you do if you disagreed with your manager's technical approach?",
				expectedAnswer: "Should demonstrate professional communication and respect",
				tips:           []string{"Show respect for authority", "Present alternative viewpoints professionally", "Seek collaborative solutions"},
				keywords:       []string{"professional communication", "disagreement", "collaboration"},
			},
		},
		model.DifficultyAdvanced: {
			{
				question:       "How would you handle a situation where your team disagrees with your technical decision?",
				expectedAnswer: "Should show leadership skills and ability to build consensus",
				tips:           []string{"Listen to concerns", "Provide clear rationale", "Seek collaborative solutions"},
				keywords:       []string{"leadership", "decision making", "consensus building"},
			},
			{
				question:       "How would you manage a project that's significantly behind schedule?",
				expectedAnswer: "Should demonstrate crisis management and recovery planning",
				tips:           []string{"Assess root causes", "Develop recovery plan", "Communicate transparently"},
				keywords:       []string{"crisis management", "project recovery", "planning"},
			},
			{
				question:       "How would you handle a situation where a key team member leaves during a critical project?",
				expectedAnswer: "Should show contingency planning and team management skills",
				tips:           []string{"Assess impact", "Redistribute responsibilities", "Maintain team morale"},
				keywords:       []string{"contingency planning", "team management", "adaptation"},
			},
		},
	},
	model.CategoryHR: {
		model.DifficultyBeginner: {
			{
				question:       "What do you know about our company and why do you want to work here?",
				expectedAnswer: "Should demonstrate research about the company and genuine interest",
				tips:           []string{"Research the company thoroughly", "Connect your goals with company mission", "Show specific interest"},
				keywords:       []string{"company research", "motivation", "cultural fit"},
			},
			{
				question:       "What are your strengths and how do they relate to this {jobTitle} position?",
				expectedAnswer: "Should connect personal strengths to role requirements",
				tips:           []string{"Give specific examples", "Connect to job requirements", "Show self-awareness"},
				keywords:       []string{"strengths", "self-awareness", "job fit"},
			},
			{
				question:       "What are your career goals for the next few years?",
				expectedAnswer: "Should show realistic planning and growth mindset",
				tips:           []string{"Be specific and realistic", "Connect to role opportunities", "Show ambition"},
				keywords:       []string{"career goals", "planning", "growth"},
			},
			{
				question:       "Why are you interested in {jobTitle} as a career?",
				expectedAnswer: "Should demonstrate genuine interest and understanding of the role",
				tips:           []string{"Show passion for the field", "Mention specific aspects you enjoy", "Connect to personal values"},
				keywords:       []string{"career interest", "passion", "motivation"},
			},
		},
		model.DifficultyIntermediate: {
			{
				question:       "Where do you see yourself in 5 years in your career?",
				expectedAnswer: "Should show realistic career planning and growth mindset",
				tips:           []string{"Be realistic but ambitious", "Connect to role opportunities", "Show commitment to growth"},
				keywords:       []string{"career goals", "growth", "planning"},
			},
			{
				question:       "What motivates you in your work?",
				expectedAnswer: "Should show intrinsic motivation and alignment with role",
				tips:           []string{"Be authentic", "Connect to job aspects", "Show long-term interest"},
				keywords:       []string{"motivation", "work satisfaction", "values"},
			},
			{
				question:       "How do you handle stress and pressure?",
				expectedAnswer: "Should demonstrate stress management strategies and resilience",
				tips:           []string{"Give specific strategies", "Show self-awareness", "Mention positive outcomes"},
				keywords:       []string{"stress management", "resilience", "coping strategies"},
			},
		},
		model.DifficultyAdvanced: {
			{
				question:       "What would make you leave this position?",
				expectedAnswer: "Should show thoughtfulness about career decisions and commitment",
				tips:           []string{"Be honest but diplomatic", "Focus on growth opportunities", "Avoid negative comments"},
				keywords:       []string{"retention", "career development", "job satisfaction"},
			},
			{
				question:       "How do you measure success in your career?",
				expectedAnswer: "Should show understanding of success metrics and personal values",
				tips:           []string{"Mention both personal and professional metrics", "Show alignment with company values", "Be specific"},
				keywords:       []string{"success metrics", "achievement", "values"},
			},
			{
				question:       "What kind of work environment do you thrive in?",
				expectedAnswer: "Should show self-awareness and cultural fit assessment",
				tips:           []string{"Be honest about preferences", "Connect to company culture", "Show adaptability"},
				keywords:       []string{"work environment", "cultural fit", "preferences"},
			},
		},
	},
}
