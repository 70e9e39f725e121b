package session

import (
	"time"

	"github.com/Akhil21232123/hirematrix/internal/models"
)

// Event is an input to the state machine. Events carry the already-resolved
// results of external calls (grading, validation); Transition itself never
// performs I/O.
type Event interface {
	isEvent()
}

// RoundLoaded carries a freshly generated task into the session.
type RoundLoaded struct {
	RoundNumber int
	Task        models.Task
	Deadline    time.Time
}

// SubmissionGraded carries the oracle's verdict on submitted code.
type SubmissionGraded struct {
	Code     string
	Analysis models.Analysis
}

// AnswerSubmitted advances the interrogation loop. Review is non-nil only
// when strict interrogation consulted the answer validator.
type AnswerSubmitted struct {
	Answer string
	Review *models.AnswerReview
}

// BreachDetected is a client-reported integrity violation.
type BreachDetected struct {
	Reason string
}

// DeadlineExpired fires when the round countdown reaches zero.
type DeadlineExpired struct{}

// ReportStored finalizes the session once the final report is persisted.
type ReportStored struct {
	Report models.FinalReport
}

func (RoundLoaded) isEvent()      {}
func (SubmissionGraded) isEvent() {}
func (AnswerSubmitted) isEvent()  {}
func (BreachDetected) isEvent()   {}
func (DeadlineExpired) isEvent()  {}
func (ReportStored) isEvent()     {}
