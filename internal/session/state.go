package session

import (
	"time"

	"github.com/Akhil21232123/hirematrix/internal/models"
)

// State is the controller's current position in the interview flow.
type State string

const (
	StateRegistration  State = "REGISTRATION"
	StateAccessDenied  State = "ACCESS_DENIED"
	StateLoading       State = "LOADING"
	StateRoundActive   State = "ROUND_ACTIVE"
	StateInterrogation State = "INTERROGATION"
	StateFeedback      State = "FEEDBACK"
	StateCompleted     State = "COMPLETED"
	StateTerminated    State = "TERMINATED"
)

// Terminal reports whether the state accepts no further events.
func (s State) Terminal() bool {
	return s == StateTerminated || s == StateCompleted || s == StateAccessDenied
}

// Session is the explicit, server-held state of one candidate's interview.
// It is never mutated directly: all changes flow through Transition, which
// returns the next session plus the side-effect commands to execute.
type Session struct {
	CandidateID uint
	Name        string
	Role        string
	Seniority   string
	Difficulty  string

	State        State
	CurrentRound int

	Task          models.Task
	Questions     []string
	QuestionIndex int
	Transcript    []models.ChatMessage

	// Deadline is the wall-clock end of the round countdown. It covers both
	// ROUND_ACTIVE and INTERROGATION; the zero value means no deadline.
	Deadline time.Time

	// Integrity mirrors the persisted integrity score so change
	// notifications carry it without a store read. FinalScore and
	// FinalVerdict are set once the report lands.
	Integrity    int
	FinalScore   int
	FinalVerdict string

	TerminationReason string

	// guards the final report against being requested more than once
	ReportRequested bool
}
