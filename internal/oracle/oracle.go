package oracle

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/Akhil21232123/hirematrix/internal/llm"
	"github.com/Akhil21232123/hirematrix/internal/models"
	"github.com/Akhil21232123/hirematrix/internal/prompts"
	"github.com/Akhil21232123/hirematrix/internal/utils"
)

// codePrefixLen is how much of each round's code makes it into the final
// report prompt.
const codePrefixLen = 500

// Oracle wraps every LLM call behind a typed result. Replies that fail the
// required-field checks come back as a ProviderError with ErrCodeMalformed —
// never as zero-valued verdicts, which could trip the kill switch by accident.
type Oracle struct {
	provider      llm.Provider
	promptManager prompts.PromptProvider
	logger        *zap.Logger
}

func NewOracle(provider llm.Provider, promptManager prompts.PromptProvider, logger *zap.Logger) *Oracle {
	return &Oracle{
		provider:      provider,
		promptManager: promptManager,
		logger:        logger,
	}
}

func (o *Oracle) ProviderName() string {
	return o.provider.GetProviderName()
}

func malformed(provider, message string, err error) error {
	return &llm.ProviderError{
		Provider: provider,
		Code:     llm.ErrCodeMalformed,
		Message:  message,
		Err:      err,
	}
}

// GenerateTask asks for a fresh coding task for the given role, difficulty
// and round number.
func (o *Oracle) GenerateTask(ctx context.Context, role, difficulty string, roundNumber int) (*models.Task, error) {
	variant := fmt.Sprintf("round%d", roundNumber)
	prompt, err := o.promptManager.BuildPrompt("task", variant, map[string]string{
		"Role":       role,
		"Difficulty": difficulty,
	})
	if err != nil {
		return nil, err
	}

	raw, err := o.provider.CompleteJSON(ctx, prompt, "Generate task.")
	if err != nil {
		return nil, err
	}

	var task models.Task
	if err := json.Unmarshal([]byte(utils.StripFences(raw)), &task); err != nil {
		return nil, malformed(o.ProviderName(), "task response is not valid JSON", err)
	}
	if task.Title == "" || task.Description == "" {
		return nil, malformed(o.ProviderName(), "task response missing title or description", nil)
	}

	o.logger.Info("Task generated",
		zap.Int("round", roundNumber),
		zap.String("title", task.Title),
		zap.String("provider", o.ProviderName()))

	return &task, nil
}

// gradePayload detects absent fields that a plain Analysis decode would
// silently zero out.
type gradePayload struct {
	Passed    *bool    `json:"passed"`
	Score     *int     `json:"score"`
	Feedback  string   `json:"feedback"`
	Questions []string `json:"questions"`
}

// GradeSubmission sends the candidate's code for the zero-tolerance review.
func (o *Oracle) GradeSubmission(ctx context.Context, taskTitle, code string) (*models.Analysis, error) {
	prompt, err := o.promptManager.BuildPrompt("grade", "default", map[string]string{
		"TaskTitle": taskTitle,
	})
	if err != nil {
		return nil, err
	}

	raw, err := o.provider.CompleteJSON(ctx, prompt, "CANDIDATE SUBMISSION:\n"+code)
	if err != nil {
		return nil, err
	}

	var payload gradePayload
	if err := json.Unmarshal([]byte(utils.StripFences(raw)), &payload); err != nil {
		return nil, malformed(o.ProviderName(), "grading response is not valid JSON", err)
	}
	if payload.Passed == nil || payload.Score == nil {
		return nil, malformed(o.ProviderName(), "grading response missing passed or score", nil)
	}
	if *payload.Score < 0 || *payload.Score > 100 {
		return nil, malformed(o.ProviderName(), "grading score out of range", nil)
	}

	analysis := &models.Analysis{
		Passed:    *payload.Passed,
		Score:     *payload.Score,
		Feedback:  payload.Feedback,
		Questions: payload.Questions,
	}

	o.logger.Info("Submission graded",
		zap.String("task", taskTitle),
		zap.Bool("passed", analysis.Passed),
		zap.Int("score", analysis.Score))

	return analysis, nil
}

type reviewPayload struct {
	IsValid  *bool  `json:"isValid"`
	Rating   string `json:"rating"`
	BotReply string `json:"botReply"`
}

// ValidateAnswer classifies a free-text interrogation answer. The recent
// transcript is appended for short context, as the interrogator expects.
func (o *Oracle) ValidateAnswer(ctx context.Context, question, answer string, previousChat []models.ChatMessage) (*models.AnswerReview, error) {
	prompt, err := o.promptManager.BuildPrompt("interrogate", "default", map[string]string{
		"Question": question,
		"Answer":   answer,
	})
	if err != nil {
		return nil, err
	}

	var transcript strings.Builder
	start := len(previousChat) - 2
	if start < 0 {
		start = 0
	}
	for _, msg := range previousChat[start:] {
		transcript.WriteString(msg.Sender + ": " + msg.Text + "\n")
	}

	raw, err := o.provider.CompleteJSON(ctx, prompt, transcript.String())
	if err != nil {
		return nil, err
	}

	var payload reviewPayload
	if err := json.Unmarshal([]byte(utils.StripFences(raw)), &payload); err != nil {
		return nil, malformed(o.ProviderName(), "answer review is not valid JSON", err)
	}
	if payload.IsValid == nil || payload.Rating == "" {
		return nil, malformed(o.ProviderName(), "answer review missing isValid or rating", nil)
	}
	switch payload.Rating {
	case models.RatingGood, models.RatingWeak, models.RatingSpam:
	default:
		return nil, malformed(o.ProviderName(), "answer review rating unknown: "+payload.Rating, nil)
	}

	return &models.AnswerReview{
		IsValid:  *payload.IsValid,
		Rating:   payload.Rating,
		BotReply: payload.BotReply,
	}, nil
}

type reportPayload struct {
	HirematrixScore *int                    `json:"hirematrix_score"`
	Verdict         string                  `json:"verdict"`
	ThinkingLevel   string                  `json:"thinking_level"`
	Breakdown       *models.ReportBreakdown `json:"breakdown"`
	Summary         string                  `json:"summary"`
	KeyStrength     string                  `json:"key_strength"`
	KeyWeakness     string                  `json:"key_weakness"`
}

// GenerateReport produces the final scorecard from the full round history.
// The raw JSON is returned alongside the typed report so it can be stored
// verbatim.
func (o *Oracle) GenerateReport(ctx context.Context, candidate *models.Candidate, rounds []models.Round) (*models.FinalReport, string, error) {
	var performance strings.Builder
	for _, r := range rounds {
		code := r.SubmittedCode
		if len(code) > codePrefixLen {
			code = code[:codePrefixLen] + "... (truncated)"
		}
		fmt.Fprintf(&performance, "Round %d: %s\nCode Submitted:\n%s\nAI Feedback: %s\n\n",
			r.RoundNumber, r.TaskTitle, code, r.AIFeedback)
	}

	prompt, err := o.promptManager.BuildPrompt("report", "default", map[string]string{
		"Name":           candidate.Name,
		"Role":           candidate.Role,
		"Seniority":      candidate.Seniority,
		"PerformanceLog": performance.String(),
	})
	if err != nil {
		return nil, "", err
	}

	raw, err := o.provider.CompleteJSON(ctx, prompt, "Generate final report.")
	if err != nil {
		return nil, "", err
	}

	cleaned := utils.StripFences(raw)
	var payload reportPayload
	if err := json.Unmarshal([]byte(cleaned), &payload); err != nil {
		return nil, "", malformed(o.ProviderName(), "report is not valid JSON", err)
	}
	if payload.HirematrixScore == nil || payload.Verdict == "" {
		return nil, "", malformed(o.ProviderName(), "report missing hirematrix_score or verdict", nil)
	}

	report := &models.FinalReport{
		HirematrixScore: *payload.HirematrixScore,
		Verdict:         payload.Verdict,
		ThinkingLevel:   payload.ThinkingLevel,
		Summary:         payload.Summary,
		KeyStrength:     payload.KeyStrength,
		KeyWeakness:     payload.KeyWeakness,
	}
	if payload.Breakdown != nil {
		report.Breakdown = *payload.Breakdown
	}

	o.logger.Info("Final report generated",
		zap.Uint("candidate_id", candidate.ID),
		zap.Int("hirematrix_score", report.HirematrixScore),
		zap.String("verdict", report.Verdict))

	return report, cleaned, nil
}
