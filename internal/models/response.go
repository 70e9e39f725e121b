package models

// ErrorResponse is the uniform error payload. It implements error so request
// validators can return it directly.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *ErrorResponse) Error() string {
	return e.Message
}

// StartInterviewResponse is returned once a candidate is registered and
// their video room is provisioned.
type StartInterviewResponse struct {
	Success      bool   `json:"success"`
	CandidateID  uint   `json:"candidateId"`
	RoomURL      string `json:"roomUrl"`
	SessionToken string `json:"sessionToken"`
}

// RoundResponse carries a freshly generated task and its deadline.
type RoundResponse struct {
	RoundNumber int    `json:"roundNumber"`
	Task        Task   `json:"task"`
	TimeLeft    int    `json:"timeLeftSeconds"`
	State       string `json:"state"`
}

// SubmitRoundResponse reports the grading outcome. On termination the
// follow-up questions are absent and Reason explains the kill switch.
type SubmitRoundResponse struct {
	Success   bool     `json:"success"`
	Passed    bool     `json:"passed"`
	Terminate bool     `json:"terminate,omitempty"`
	Reason    string   `json:"reason,omitempty"`
	Feedback  string   `json:"feedback,omitempty"`
	Questions []string `json:"questions,omitempty"`
}

// AnswerResponse advances the interrogation loop.
type AnswerResponse struct {
	State        string       `json:"state"`
	NextQuestion string       `json:"nextQuestion,omitempty"`
	BotReply     string       `json:"botReply,omitempty"`
	Report       *FinalReport `json:"report,omitempty"`
}

// RunResponse carries captured code-runner output.
type RunResponse struct {
	Stdout   string `json:"stdout"`
	Stderr   string `json:"stderr"`
	ExitCode int    `json:"exitCode"`
	TimedOut bool   `json:"timedOut"`
}

// AdminCandidate is the read-only dashboard row.
type AdminCandidate struct {
	ID             uint   `json:"id"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	Role           string `json:"role"`
	Status         string `json:"status"`
	CurrentRound   int    `json:"currentRound"`
	IntegrityScore int    `json:"integrityScore"`
	FinalScore     int    `json:"finalScore"`
	FinalVerdict   string `json:"finalVerdict,omitempty"`
	ViolationLog   string `json:"violationLog,omitempty"`
}
