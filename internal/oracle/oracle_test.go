package oracle

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/Akhil21232123/hirematrix/internal/llm"
	"github.com/Akhil21232123/hirematrix/internal/models"
	"github.com/Akhil21232123/hirematrix/internal/prompts"
)

type mockProvider struct {
	response   string
	err        error
	lastSystem string
	lastUser   string
}

func (m *mockProvider) CompleteJSON(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	m.lastSystem = systemPrompt
	m.lastUser = userPrompt
	if m.err != nil {
		return "", m.err
	}
	return m.response, nil
}

func (m *mockProvider) GetProviderName() string { return "mock" }

func newTestOracle(t *testing.T, provider llm.Provider) *Oracle {
	t.Helper()
	pm, err := prompts.NewPromptManager()
	if err != nil {
		t.Fatalf("failed to load prompt templates: %v", err)
	}
	return NewOracle(provider, pm, zap.NewNop())
}

func assertMalformed(t *testing.T, err error) {
	t.Helper()
	var provErr *llm.ProviderError
	if !errors.As(err, &provErr) {
		t.Fatalf("expected ProviderError, got %v", err)
	}
	if provErr.Code != llm.ErrCodeMalformed {
		t.Fatalf("expected malformed_response, got %s", provErr.Code)
	}
}

func TestGenerateTask(t *testing.T) {
	provider := &mockProvider{response: `{"title":"Rate Limiter","description":"Build one.","starterCode":"function solve() {}"}`}
	o := newTestOracle(t, provider)

	task, err := o.GenerateTask(context.Background(), "backend engineer", "hard", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if task.Title != "Rate Limiter" {
		t.Fatalf("unexpected task %+v", task)
	}
	if !strings.Contains(provider.lastSystem, "backend engineer") {
		t.Fatalf("role not interpolated into prompt")
	}
}

func TestGenerateTaskStripsCodeFences(t *testing.T) {
	provider := &mockProvider{response: "```json\n{\"title\":\"T\",\"description\":\"D\",\"starterCode\":\"\"}\n```"}
	o := newTestOracle(t, provider)

	task, err := o.GenerateTask(context.Background(), "r", "easy", 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if task.Title != "T" {
		t.Fatalf("fenced JSON not handled: %+v", task)
	}
}

func TestGenerateTaskMissingFieldsIsMalformed(t *testing.T) {
	provider := &mockProvider{response: `{"description":"no title"}`}
	o := newTestOracle(t, provider)

	_, err := o.GenerateTask(context.Background(), "r", "easy", 1)
	assertMalformed(t, err)
}

func TestGradeSubmission(t *testing.T) {
	provider := &mockProvider{response: `{"passed":true,"score":82,"feedback":"Clean.","questions":["Why recursion?"]}`}
	o := newTestOracle(t, provider)

	analysis, err := o.GradeSubmission(context.Background(), "Two Sum", "function twoSum() {}")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !analysis.Passed || analysis.Score != 82 || len(analysis.Questions) != 1 {
		t.Fatalf("unexpected analysis %+v", analysis)
	}
	if analysis.Rejected() {
		t.Fatalf("passing analysis must not be rejected")
	}
	if !strings.Contains(provider.lastUser, "function twoSum() {}") {
		t.Fatalf("submitted code not sent to the oracle")
	}
}

func TestGradeSubmissionMissingVerdictNeverDefaultsToFail(t *testing.T) {
	// a reply with no passed/score must never decode into a failing zero grade
	for _, response := range []string{
		`{"feedback":"looks fine"}`,
		`{"passed":true}`,
		`{"score":50}`,
		`not json at all`,
	} {
		provider := &mockProvider{response: response}
		o := newTestOracle(t, provider)

		analysis, err := o.GradeSubmission(context.Background(), "t", "code")
		if analysis != nil {
			t.Fatalf("response %q produced an analysis: %+v", response, analysis)
		}
		assertMalformed(t, err)
	}
}

func TestGradeSubmissionScoreOutOfRange(t *testing.T) {
	provider := &mockProvider{response: `{"passed":true,"score":250,"feedback":""}`}
	o := newTestOracle(t, provider)

	_, err := o.GradeSubmission(context.Background(), "t", "code")
	assertMalformed(t, err)
}

func TestGradeSubmissionTransportErrorPassesThrough(t *testing.T) {
	boom := &llm.ProviderError{Provider: "mock", Code: llm.ErrCodeServiceDown, Message: "down"}
	provider := &mockProvider{err: boom}
	o := newTestOracle(t, provider)

	_, err := o.GradeSubmission(context.Background(), "t", "code")
	var provErr *llm.ProviderError
	if !errors.As(err, &provErr) || provErr.Code != llm.ErrCodeServiceDown {
		t.Fatalf("transport error should pass through untouched, got %v", err)
	}
}

func TestValidateAnswer(t *testing.T) {
	provider := &mockProvider{response: `{"isValid":true,"rating":"GOOD","botReply":"Fair enough."}`}
	o := newTestOracle(t, provider)

	chat := []models.ChatMessage{
		{Sender: "AI", Text: "q1"},
		{Sender: "USER", Text: "a1"},
		{Sender: "AI", Text: "q2"},
	}
	review, err := o.ValidateAnswer(context.Background(), "q2", "because hashing", chat)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if review.Rating != models.RatingGood || !review.IsValid {
		t.Fatalf("unexpected review %+v", review)
	}
	// only the last two transcript entries travel with the request
	if strings.Contains(provider.lastUser, "q1") {
		t.Fatalf("transcript context should be capped at two messages")
	}
	if !strings.Contains(provider.lastUser, "q2") {
		t.Fatalf("recent transcript missing from request")
	}
}

func TestValidateAnswerUnknownRatingIsMalformed(t *testing.T) {
	provider := &mockProvider{response: `{"isValid":true,"rating":"MEDIOCRE"}`}
	o := newTestOracle(t, provider)

	_, err := o.ValidateAnswer(context.Background(), "q", "a", nil)
	assertMalformed(t, err)
}

func TestGenerateReport(t *testing.T) {
	raw := `{"hirematrix_score":640,"verdict":"HIRE","thinking_level":"Analytical","breakdown":{"correctness":70,"time_efficiency":60,"critical_thinking":65},"summary":"Did well.","key_strength":"APIs","key_weakness":"Edge cases"}`
	provider := &mockProvider{response: raw}
	o := newTestOracle(t, provider)

	candidate := &models.Candidate{Name: "Ada", Role: "backend engineer", Seniority: "senior"}
	rounds := []models.Round{
		{RoundNumber: 1, TaskTitle: "Two Sum", SubmittedCode: strings.Repeat("x", 900), AIFeedback: "ok"},
	}

	report, stored, err := o.GenerateReport(context.Background(), candidate, rounds)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.HirematrixScore != 640 || report.Verdict != "HIRE" {
		t.Fatalf("unexpected report %+v", report)
	}
	if report.Breakdown.Correctness != 70 {
		t.Fatalf("breakdown not decoded: %+v", report.Breakdown)
	}
	if stored != raw {
		t.Fatalf("raw JSON must be returned verbatim for storage")
	}
	// long submissions are truncated before entering the prompt
	if !strings.Contains(provider.lastSystem, "... (truncated)") {
		t.Fatalf("expected code truncation marker in prompt")
	}
	if strings.Contains(provider.lastSystem, strings.Repeat("x", 600)) {
		t.Fatalf("full code leaked into report prompt")
	}
}

func TestGenerateReportMissingScoreIsMalformed(t *testing.T) {
	provider := &mockProvider{response: `{"verdict":"HIRE"}`}
	o := newTestOracle(t, provider)

	_, _, err := o.GenerateReport(context.Background(), &models.Candidate{}, nil)
	assertMalformed(t, err)
}
