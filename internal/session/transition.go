package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/Akhil21232123/hirematrix/internal/models"
)

var (
	// ErrSessionClosed rejects input once the session is in a terminal state.
	ErrSessionClosed = errors.New("session is closed")
	// ErrInvalidTransition rejects events the current state does not accept.
	ErrInvalidTransition = errors.New("invalid transition for current state")
)

// Transition applies an event to a session and returns the next session plus
// the side-effect commands the caller must execute. It is a pure function:
// no I/O, no shared state.
func Transition(s Session, e Event) (Session, []Command, error) {
	if s.State.Terminal() {
		return s, nil, ErrSessionClosed
	}

	switch event := e.(type) {
	case RoundLoaded:
		return applyRoundLoaded(s, event)
	case SubmissionGraded:
		return applySubmissionGraded(s, event)
	case AnswerSubmitted:
		return applyAnswerSubmitted(s, event)
	case BreachDetected:
		return applyTermination(s, event.Reason, event.Reason)
	case DeadlineExpired:
		return applyTermination(s, models.BreachTimeExpired, models.BreachTimeExpired)
	case ReportStored:
		return applyReportStored(s, event)
	default:
		return s, nil, ErrInvalidTransition
	}
}

func applyRoundLoaded(s Session, e RoundLoaded) (Session, []Command, error) {
	var cmds []Command

	switch s.State {
	case StateRegistration, StateLoading:
		if e.RoundNumber != s.CurrentRound {
			return s, nil, fmt.Errorf("%w: expected round %d", ErrInvalidTransition, s.CurrentRound)
		}
	case StateFeedback:
		// feedback only advances the round counter and loads the next task
		if e.RoundNumber != s.CurrentRound+1 || e.RoundNumber > models.TotalRounds {
			return s, nil, fmt.Errorf("%w: expected round %d", ErrInvalidTransition, s.CurrentRound+1)
		}
		s.CurrentRound = e.RoundNumber
		cmds = append(cmds, AdvanceRound{RoundNumber: e.RoundNumber})
	default:
		return s, nil, ErrInvalidTransition
	}

	if s.ReportRequested {
		return s, nil, ErrInvalidTransition
	}

	s.State = StateRoundActive
	s.Task = e.Task
	s.Deadline = e.Deadline
	s.Questions = nil
	s.QuestionIndex = 0
	s.Transcript = nil
	return s, cmds, nil
}

func applySubmissionGraded(s Session, e SubmissionGraded) (Session, []Command, error) {
	if s.State != StateRoundActive {
		return s, nil, ErrInvalidTransition
	}

	// the attempt is logged unconditionally, accepted or not
	cmds := []Command{AppendRound{Round: models.Round{
		CandidateID:   s.CandidateID,
		RoundNumber:   s.CurrentRound,
		TaskTitle:     s.Task.Title,
		SubmittedCode: e.Code,
		AIFeedback:    e.Analysis.Feedback,
		Score:         e.Analysis.Score,
	}}}

	if e.Analysis.Rejected() {
		// the kill switch: no second chances
		s.State = StateTerminated
		s.Integrity = 0
		s.TerminationReason = "CODE REJECTED: " + e.Analysis.Feedback
		cmds = append(cmds,
			Terminate{
				Reason:       s.TerminationReason,
				ViolationLog: "Code Integrity Failure: " + e.Analysis.Feedback,
			},
			PublishUpdate{Reason: s.TerminationReason},
		)
		return s, cmds, nil
	}

	questions := e.Analysis.Questions
	if len(questions) == 0 {
		questions = models.FallbackQuestions()
	}

	s.State = StateInterrogation
	s.Integrity = e.Analysis.Score
	s.Questions = questions
	s.QuestionIndex = 0
	s.Transcript = []models.ChatMessage{{Sender: "AI", Text: questions[0]}}
	cmds = append(cmds,
		SetIntegrity{Score: e.Analysis.Score},
		PublishUpdate{},
	)
	return s, cmds, nil
}

func applyAnswerSubmitted(s Session, e AnswerSubmitted) (Session, []Command, error) {
	// A report that failed to generate leaves the session waiting in LOADING;
	// a repeated answer re-issues the command instead of dead-ending. The
	// transcript is already final at that point.
	if s.State == StateLoading && s.ReportRequested {
		return s, []Command{GenerateReport{}}, nil
	}

	if s.State != StateInterrogation {
		return s, nil, ErrInvalidTransition
	}

	s.Transcript = append(s.Transcript, models.ChatMessage{Sender: "USER", Text: e.Answer})

	// strict mode only: a SPAM rating from the answer validator terminates
	if e.Review != nil {
		if e.Review.BotReply != "" {
			s.Transcript = append(s.Transcript, models.ChatMessage{Sender: "AI", Text: e.Review.BotReply})
		}
		if e.Review.Rating == models.RatingSpam {
			return applyTermination(s, models.BreachSpamAnswer, models.BreachSpamAnswer)
		}
	}

	if s.QuestionIndex < len(s.Questions)-1 {
		s.QuestionIndex++
		s.Transcript = append(s.Transcript, models.ChatMessage{Sender: "AI", Text: s.Questions[s.QuestionIndex]})
		return s, nil, nil
	}

	// interrogation finished
	if s.CurrentRound < models.TotalRounds {
		s.State = StateFeedback
		s.Deadline = time.Time{}
		return s, nil, nil
	}

	// after round 3 no further round is loaded; the report is issued once
	s.State = StateLoading
	s.Deadline = time.Time{}
	s.ReportRequested = true
	return s, []Command{GenerateReport{}}, nil
}

func applyTermination(s Session, reason, violationLog string) (Session, []Command, error) {
	// the watchdog only runs while the candidate is being tested
	if s.State != StateRoundActive && s.State != StateInterrogation {
		return s, nil, ErrInvalidTransition
	}

	s.State = StateTerminated
	s.Integrity = 0
	s.TerminationReason = reason
	return s, []Command{
		Terminate{Reason: reason, ViolationLog: violationLog},
		PublishUpdate{Reason: reason},
	}, nil
}

func applyReportStored(s Session, e ReportStored) (Session, []Command, error) {
	if s.State != StateLoading || !s.ReportRequested {
		return s, nil, ErrInvalidTransition
	}
	s.State = StateCompleted
	s.FinalScore = e.Report.HirematrixScore
	s.FinalVerdict = e.Report.Verdict
	return s, nil, nil
}
