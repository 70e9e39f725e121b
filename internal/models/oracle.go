package models

// Task is one generated coding challenge.
type Task struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	StarterCode string `json:"starterCode"`
}

// FallbackTask is served when the oracle cannot produce a task. Matches the
// backup task the grading service has always shipped.
func FallbackTask() Task {
	return Task{
		Title:       "Backup Task",
		Description: "Write a function to reverse a string.",
		StarterCode: "function solve() {}",
	}
}

// Analysis is the oracle's verdict on a round submission.
type Analysis struct {
	Passed    bool     `json:"passed"`
	Score     int      `json:"score"`
	Feedback  string   `json:"feedback"`
	Questions []string `json:"questions"`
}

// PassThreshold is the minimum score a submission needs in addition to the
// oracle's passed verdict. Below it the candidate is terminated outright.
const PassThreshold = 30

// Rejected reports whether the analysis trips the kill switch.
func (a *Analysis) Rejected() bool {
	return !a.Passed || a.Score < PassThreshold
}

// FallbackQuestions are used when the oracle returns no follow-up questions.
func FallbackQuestions() []string {
	return []string{
		"Explain your implementation.",
		"What is the time complexity?",
		"How would you handle large inputs?",
	}
}

// Answer ratings from the interrogation validator.
const (
	RatingGood = "GOOD"
	RatingWeak = "WEAK"
	RatingSpam = "SPAM"
)

// AnswerReview classifies a free-text interrogation answer.
type AnswerReview struct {
	IsValid  bool   `json:"isValid"`
	Rating   string `json:"rating"`
	BotReply string `json:"botReply"`
}

// ChatMessage is one entry in the interrogation transcript.
type ChatMessage struct {
	Sender string `json:"sender"` // "AI" | "USER"
	Text   string `json:"text"`
}

// ReportBreakdown is the per-dimension score grid of the final report.
type ReportBreakdown struct {
	Correctness      int `json:"correctness"`
	TimeEfficiency   int `json:"time_efficiency"`
	CriticalThinking int `json:"critical_thinking"`
}

// FinalReport is the aggregate scorecard generated after round 3. Field names
// follow the oracle's output schema; the payload is stored verbatim.
type FinalReport struct {
	HirematrixScore int             `json:"hirematrix_score"`
	Verdict         string          `json:"verdict"`
	ThinkingLevel   string          `json:"thinking_level"`
	Breakdown       ReportBreakdown `json:"breakdown"`
	Summary         string          `json:"summary"`
	KeyStrength     string          `json:"key_strength"`
	KeyWeakness     string          `json:"key_weakness"`
}
