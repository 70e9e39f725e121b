package session

import (
	"github.com/Akhil21232123/hirematrix/internal/models"
)

// Command is a side-effect intent returned by Transition. The caller executes
// commands in order and can retry or surface failures; nothing inside the
// state machine fires them opportunistically.
type Command interface {
	isCommand()
}

// AppendRound persists one submission attempt to the append-only round log.
type AppendRound struct {
	Round models.Round
}

// SetIntegrity records the integrity score earned by an accepted submission.
type SetIntegrity struct {
	Score int
}

// AdvanceRound moves the persisted candidate record to the next round.
type AdvanceRound struct {
	RoundNumber int
}

// Terminate marks the candidate terminated: status TERMINATED, integrity 0,
// violation logged.
type Terminate struct {
	Reason       string
	ViolationLog string
}

// GenerateReport requests the one final-report generation after round 3.
type GenerateReport struct{}

// PublishUpdate pushes a change notification for the admin monitor.
type PublishUpdate struct {
	Reason string
}

func (AppendRound) isCommand()    {}
func (SetIntegrity) isCommand()   {}
func (AdvanceRound) isCommand()   {}
func (Terminate) isCommand()      {}
func (GenerateReport) isCommand() {}
func (PublishUpdate) isCommand()  {}
